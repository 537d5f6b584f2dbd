package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/webmovie/backend/internal/common/db"
	"github.com/webmovie/backend/internal/favorites/domain"
)

var (
	ErrFavoriteNotFound = pgx.ErrNoRows
	ErrDuplicateEntry   = errors.New("favorite already exists")
)

type FavoriteRepository interface {
	Add(ctx context.Context, favorite domain.Favorite) error
	Find(ctx context.Context, userID, movieSlug string) (domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
	Exists(ctx context.Context, userID, movieSlug string) (bool, error)
	Remove(ctx context.Context, userID, movieSlug string) error
}

type PgFavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewPgFavoriteRepository(pool *pgxpool.Pool) *PgFavoriteRepository {
	return &PgFavoriteRepository{pool: pool}
}

const favoriteColumns = `id, user_id, movie_slug, movie_name, movie_poster_url,
	 movie_thumb_url, movie_year, created_at`

func (r *PgFavoriteRepository) Add(ctx context.Context, favorite domain.Favorite) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO favorites (id, user_id, movie_slug, movie_name, movie_poster_url, movie_thumb_url, movie_year, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		favorite.ID,
		favorite.UserID,
		favorite.MovieSlug,
		favorite.MovieName,
		favorite.MoviePosterURL,
		favorite.MovieThumbURL,
		favorite.MovieYear,
		favorite.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEntry
		}
		return db.HandleExecError(err, "add favorite", start)
	}
	db.MeasureQueryDuration("add favorite", start)
	return nil
}

func (r *PgFavoriteRepository) Find(ctx context.Context, userID, movieSlug string) (domain.Favorite, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 AND movie_slug = $2`,
		userID,
		movieSlug,
	)

	var favorite domain.Favorite
	err := scanFavorite(row, &favorite)
	if err := db.HandleQueryError(err, ErrFavoriteNotFound, "find favorite", start); err != nil {
		return domain.Favorite{}, err
	}
	return favorite, nil
}

func (r *PgFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list favorites", start)
	}
	defer rows.Close()

	favorites := make([]domain.Favorite, 0)
	for rows.Next() {
		var favorite domain.Favorite
		if err := scanFavorite(rows, &favorite); err != nil {
			return nil, db.HandleQueryError(err, nil, "list favorites", start)
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "list favorites", start)
	}

	db.MeasureQueryDuration("list favorites", start)
	return favorites, nil
}

func (r *PgFavoriteRepository) Exists(ctx context.Context, userID, movieSlug string) (bool, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND movie_slug = $2)`,
		userID,
		movieSlug,
	)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, db.HandleQueryError(err, nil, "check favorite exists", start)
	}
	db.MeasureQueryDuration("check favorite exists", start)
	return exists, nil
}

func (r *PgFavoriteRepository) Remove(ctx context.Context, userID, movieSlug string) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND movie_slug = $2`,
		userID,
		movieSlug,
	)
	return db.HandleExecError(err, "remove favorite", start)
}

func scanFavorite(row pgx.Row, favorite *domain.Favorite) error {
	return row.Scan(
		&favorite.ID,
		&favorite.UserID,
		&favorite.MovieSlug,
		&favorite.MovieName,
		&favorite.MoviePosterURL,
		&favorite.MovieThumbURL,
		&favorite.MovieYear,
		&favorite.CreatedAt,
	)
}
