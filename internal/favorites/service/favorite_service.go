package service

import (
	"context"
	"errors"

	"github.com/webmovie/backend/internal/common/clock"
	commoncrypto "github.com/webmovie/backend/internal/common/crypto"
	commonerrors "github.com/webmovie/backend/internal/common/errors"
	"github.com/webmovie/backend/internal/common/logger"
	"github.com/webmovie/backend/internal/favorites/domain"
	"github.com/webmovie/backend/internal/favorites/repository"
)

type AddFavoriteInput struct {
	MovieSlug      string
	MovieName      string
	MoviePosterURL *string
	MovieThumbURL  *string
	MovieYear      *int
}

type FavoriteService struct {
	favorites   repository.FavoriteRepository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewFavoriteService(
	favorites repository.FavoriteRepository,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *FavoriteService {
	return &FavoriteService{
		favorites:   favorites,
		idGenerator: idGenerator,
		clock:       clk,
		log:         log,
	}
}

// Add is idempotent: adding a movie that is already a favorite returns the
// existing row unchanged.
func (s *FavoriteService) Add(ctx context.Context, userID string, input AddFavoriteInput) (domain.Favorite, error) {
	if input.MovieSlug == "" || input.MovieName == "" {
		return domain.Favorite{}, ErrMissingMovieFields
	}

	existing, err := s.favorites.Find(ctx, userID, input.MovieSlug)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrFavoriteNotFound) {
		return domain.Favorite{}, commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Favorite{}, commonerrors.ErrInternalError.WithCause(err)
	}

	favorite := domain.Favorite{
		ID:             id,
		UserID:         userID,
		MovieSlug:      input.MovieSlug,
		MovieName:      input.MovieName,
		MoviePosterURL: input.MoviePosterURL,
		MovieThumbURL:  input.MovieThumbURL,
		MovieYear:      input.MovieYear,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.favorites.Add(ctx, favorite); err != nil {
		// A concurrent Add for the same slug won the insert.
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return s.findAfterRace(ctx, userID, input.MovieSlug)
		}
		return domain.Favorite{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{"user_id": userID, "movie_slug": input.MovieSlug}).Info("favorite added")

	return favorite, nil
}

// Remove of a movie that is not a favorite is a no-op.
func (s *FavoriteService) Remove(ctx context.Context, userID, movieSlug string) error {
	if err := s.favorites.Remove(ctx, userID, movieSlug); err != nil {
		return commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{"user_id": userID, "movie_slug": movieSlug}).Debug("favorite removed")

	return nil
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}
	return favorites, nil
}

func (s *FavoriteService) Exists(ctx context.Context, userID, movieSlug string) (bool, error) {
	exists, err := s.favorites.Exists(ctx, userID, movieSlug)
	if err != nil {
		return false, commonerrors.ErrInternalError.WithCause(err)
	}
	return exists, nil
}

func (s *FavoriteService) findAfterRace(ctx context.Context, userID, movieSlug string) (domain.Favorite, error) {
	existing, err := s.favorites.Find(ctx, userID, movieSlug)
	if err != nil {
		return domain.Favorite{}, commonerrors.ErrInternalError.WithCause(err)
	}
	return existing, nil
}
