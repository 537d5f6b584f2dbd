package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/webmovie/backend/internal/auth/domain"
	"github.com/webmovie/backend/internal/auth/repository"
	"github.com/webmovie/backend/internal/auth/service"
	"github.com/webmovie/backend/internal/common/clock"
	"github.com/webmovie/backend/internal/common/logger"
)

const testJWTSecret = "test-secret-key-must-be-at-least-32-bytes-long"

type mockUserRepo struct {
	createFunc                 func(ctx context.Context, user domain.User) error
	findByEmailFunc            func(ctx context.Context, email string) (domain.User, error)
	findByIDFunc               func(ctx context.Context, id domain.ID) (domain.User, error)
	findByRefreshTokenHashFunc func(ctx context.Context, hash string) (domain.User, error)
	existsByEmailFunc          func(ctx context.Context, email string) (bool, error)
	updateRefreshSessionFunc   func(ctx context.Context, id domain.ID, hash *string, expiry *time.Time) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) FindByRefreshTokenHash(ctx context.Context, hash string) (domain.User, error) {
	if m.findByRefreshTokenHashFunc != nil {
		return m.findByRefreshTokenHashFunc(ctx, hash)
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFunc != nil {
		return m.existsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepo) UpdateRefreshSession(ctx context.Context, id domain.ID, hash *string, expiry *time.Time) error {
	if m.updateRefreshSessionFunc != nil {
		return m.updateRefreshSessionFunc(ctx, id, hash, expiry)
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash != "hashed_"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "generated-id", nil
}

func setupAuthService(t *testing.T) (*service.AuthService, *mockUserRepo, *mockHasher, *clock.MockClock) {
	t.Helper()

	users := &mockUserRepo{}
	hasher := &mockHasher{}
	idGenerator := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))

	issuer := service.NewTokenIssuer(
		testJWTSecret,
		idGenerator,
		15*time.Minute,
		24*time.Hour,
		mockClock,
	)

	svc := service.NewAuthService(users, hasher, issuer, idGenerator, mockClock, logger.NewNop())

	return svc, users, hasher, mockClock
}
