package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/webmovie/backend/internal/auth/domain"
	"github.com/webmovie/backend/internal/auth/repository"
	"github.com/webmovie/backend/internal/auth/service"
)

func userWithSession(mockClockNow time.Time, refreshToken string, ttl time.Duration) domain.User {
	hash := service.HashToken(refreshToken)
	expiry := mockClockNow.Add(ttl)
	return domain.User{
		ID:                 "user-123",
		Email:              "user@example.com",
		PasswordHash:       "hashed_password123",
		DisplayName:        "Test User",
		RefreshTokenHash:   &hash,
		RefreshTokenExpiry: &expiry,
	}
}

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, users, _, mockClock := setupAuthService(t)

	refreshToken := "valid-refresh-token"
	stored := userWithSession(mockClock.Now(), refreshToken, 12*time.Hour)

	users.findByRefreshTokenHashFunc = func(ctx context.Context, hash string) (domain.User, error) {
		if hash != service.HashToken(refreshToken) {
			t.Errorf("expected lookup by token hash, got %q", hash)
		}
		return stored, nil
	}

	var persistedHash *string
	users.updateRefreshSessionFunc = func(ctx context.Context, id domain.ID, hash *string, expiry *time.Time) error {
		persistedHash = hash
		return nil
	}

	_, pair, err := svc.Refresh(context.Background(), refreshToken)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected a fresh token pair")
	}
	if pair.RefreshToken == refreshToken {
		t.Error("expected a new refresh token, not the consumed one")
	}
	if persistedHash == nil || *persistedHash == *stored.RefreshTokenHash {
		t.Error("expected rotation to replace the stored hash")
	}
}

// Once rotated, a lookup by the consumed token's hash finds nothing, so the
// old token is rejected immediately.
func TestAuthService_Refresh_ConsumedTokenRejected(t *testing.T) {
	svc, users, _, mockClock := setupAuthService(t)

	refreshToken := "rotating-token"
	currentHash := service.HashToken(refreshToken)
	expiry := mockClock.Now().Add(12 * time.Hour)

	users.findByRefreshTokenHashFunc = func(ctx context.Context, hash string) (domain.User, error) {
		if hash == currentHash {
			return domain.User{
				ID:                 "user-123",
				Email:              "user@example.com",
				RefreshTokenHash:   &currentHash,
				RefreshTokenExpiry: &expiry,
			}, nil
		}
		return domain.User{}, repository.ErrUserNotFound
	}
	users.updateRefreshSessionFunc = func(ctx context.Context, id domain.ID, hash *string, e *time.Time) error {
		currentHash = *hash
		return nil
	}

	_, _, err := svc.Refresh(context.Background(), refreshToken)
	if err != nil {
		t.Fatalf("expected first refresh to succeed, got %v", err)
	}

	_, _, err = svc.Refresh(context.Background(), refreshToken)
	if !errors.Is(err, service.ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken for the consumed token, got %v", err)
	}
}

func TestAuthService_Refresh_EmptyToken(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	_, _, err := svc.Refresh(context.Background(), "")
	if !errors.Is(err, service.ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	_, _, err := svc.Refresh(context.Background(), "never-issued")
	if !errors.Is(err, service.ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuthService_Refresh_ExpiredSessionRevoked(t *testing.T) {
	svc, users, _, mockClock := setupAuthService(t)

	refreshToken := "expired-refresh-token"
	stored := userWithSession(mockClock.Now(), refreshToken, 24*time.Hour)

	users.findByRefreshTokenHashFunc = func(ctx context.Context, hash string) (domain.User, error) {
		return stored, nil
	}

	cleared := false
	users.updateRefreshSessionFunc = func(ctx context.Context, id domain.ID, hash *string, expiry *time.Time) error {
		if hash == nil && expiry == nil {
			cleared = true
		}
		return nil
	}

	mockClock.Advance(25 * time.Hour)

	_, _, err := svc.Refresh(context.Background(), refreshToken)
	if !errors.Is(err, service.ErrRefreshTokenExpired) {
		t.Fatalf("expected ErrRefreshTokenExpired, got %v", err)
	}
	if !cleared {
		t.Error("expected the expired session to be cleared")
	}
}

func TestAuthService_Refresh_ExpiryBoundary(t *testing.T) {
	svc, users, _, mockClock := setupAuthService(t)

	refreshToken := "boundary-token"
	stored := userWithSession(mockClock.Now(), refreshToken, 24*time.Hour)

	users.findByRefreshTokenHashFunc = func(ctx context.Context, hash string) (domain.User, error) {
		return stored, nil
	}

	// Exactly at the expiry instant the session is no longer valid.
	mockClock.Advance(24 * time.Hour)

	_, _, err := svc.Refresh(context.Background(), refreshToken)
	if !errors.Is(err, service.ErrRefreshTokenExpired) {
		t.Errorf("expected ErrRefreshTokenExpired at the boundary, got %v", err)
	}
}
