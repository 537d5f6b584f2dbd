package service

import (
	"context"
	"errors"
	"time"

	"github.com/webmovie/backend/internal/auth/domain"
	"github.com/webmovie/backend/internal/auth/repository"
	"github.com/webmovie/backend/internal/common/clock"
	commoncrypto "github.com/webmovie/backend/internal/common/crypto"
	commonerrors "github.com/webmovie/backend/internal/common/errors"
	"github.com/webmovie/backend/internal/common/logger"
)

// TokenMinter is the slice of TokenIssuer the workflow needs.
type TokenMinter interface {
	IssueTokens(user domain.User) (domain.TokenPair, error)
}

// AuthService drives the refresh-session lifecycle. An account has at most
// one active refresh session; every successful register, login and refresh
// replaces it wholesale.
type AuthService struct {
	users       repository.UserRepository
	hasher      commoncrypto.PasswordHasher
	tokens      TokenMinter
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewAuthService(
	users repository.UserRepository,
	hasher commoncrypto.PasswordHasher,
	tokens TokenMinter,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		idGenerator: idGenerator,
		clock:       clk,
		log:         log,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (domain.User, domain.TokenPair, error) {
	input = input.normalized()
	if err := validateInput(input); err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, commonerrors.ErrInternalError.WithCause(err)
	}
	if exists {
		return domain.User{}, domain.TokenPair{}, commonerrors.ErrEmailAlreadyExists
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.User{}, domain.TokenPair{}, commonerrors.ErrInternalError.WithCause(err)
	}

	now := s.clock.Now()
	user := domain.User{
		ID:           domain.ID(id),
		Email:        input.Email,
		PasswordHash: passwordHash,
		DisplayName:  input.DisplayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// ExistsByEmail raced with a concurrent insert.
		if errors.Is(err, repository.ErrEmailAlreadyExists) {
			return domain.User{}, domain.TokenPair{}, commonerrors.ErrEmailAlreadyExists
		}
		return domain.User{}, domain.TokenPair{}, commonerrors.ErrInternalError.WithCause(err)
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	s.log.WithFields(ctx, logger.Fields{"user_id": user.ID}).Info("user registered")

	return user, pair, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (domain.User, domain.TokenPair, error) {
	input = input.normalized()
	if err := validateInput(input); err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.TokenPair{}, commonerrors.ErrInternalError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{"user_id": user.ID}).Warn("login rejected: password mismatch")
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	s.log.WithFields(ctx, logger.Fields{"user_id": user.ID}).Info("user logged in")

	return user, pair, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.User, domain.TokenPair, error) {
	if refreshToken == "" {
		return domain.User{}, domain.TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.users.FindByRefreshTokenHash(ctx, HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidRefreshToken
		}
		return domain.User{}, domain.TokenPair{}, commonerrors.ErrInternalError.WithCause(err)
	}

	if user.RefreshTokenExpiry == nil || !user.RefreshTokenExpiry.After(s.clock.Now()) {
		if err := s.users.UpdateRefreshSession(ctx, user.ID, nil, nil); err != nil {
			return domain.User{}, domain.TokenPair{}, commonerrors.ErrInternalError.WithCause(err)
		}
		incrementRefreshTokensExpired()
		s.log.WithFields(ctx, logger.Fields{"user_id": user.ID}).Info("refresh rejected: session expired")
		return domain.User{}, domain.TokenPair{}, ErrRefreshTokenExpired
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	incrementRefreshTokensRotated()
	s.log.WithFields(ctx, logger.Fields{"user_id": user.ID}).Debug("refresh session rotated")

	return user, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	user, err := s.users.FindByRefreshTokenHash(ctx, HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return commonerrors.ErrInternalError.WithCause(err)
	}

	if err := s.users.UpdateRefreshSession(ctx, user.ID, nil, nil); err != nil {
		return commonerrors.ErrInternalError.WithCause(err)
	}

	incrementRefreshTokensRevoked()
	s.log.WithFields(ctx, logger.Fields{"user_id": user.ID}).Info("user logged out")

	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, id domain.ID) (domain.Profile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Profile{}, commonerrors.ErrAccountNotFound
		}
		return domain.Profile{}, commonerrors.ErrInternalError.WithCause(err)
	}

	return domain.Profile{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}, nil
}

// startSession issues a fresh token pair and persists its refresh hash and
// expiry, replacing whatever session the account had.
func (s *AuthService) startSession(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	pair, err := s.tokens.IssueTokens(user)
	if err != nil {
		return domain.TokenPair{}, commonerrors.ErrInternalError.WithCause(err)
	}

	hash := pair.RefreshTokenHash
	expiry := pair.RefreshExpiresAt
	if err := s.users.UpdateRefreshSession(ctx, user.ID, &hash, &expiry); err != nil {
		return domain.TokenPair{}, commonerrors.ErrInternalError.WithCause(err)
	}

	return pair, nil
}

// SessionRemaining reports how long the account's refresh session is still
// valid. Used by the handler to cap the cookie lifetime.
func SessionRemaining(expiry time.Time, now time.Time) time.Duration {
	if !expiry.After(now) {
		return 0
	}
	return expiry.Sub(now)
}
