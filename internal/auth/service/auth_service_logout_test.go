package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/webmovie/backend/internal/auth/domain"
)

func TestAuthService_Logout_ClearsSession(t *testing.T) {
	svc, users, _, mockClock := setupAuthService(t)

	refreshToken := "active-refresh-token"
	stored := userWithSession(mockClock.Now(), refreshToken, 12*time.Hour)

	users.findByRefreshTokenHashFunc = func(ctx context.Context, hash string) (domain.User, error) {
		return stored, nil
	}

	cleared := false
	users.updateRefreshSessionFunc = func(ctx context.Context, id domain.ID, hash *string, expiry *time.Time) error {
		if id != stored.ID {
			t.Errorf("expected session clear for %s, got %s", stored.ID, id)
		}
		if hash == nil && expiry == nil {
			cleared = true
		}
		return nil
	}

	if err := svc.Logout(context.Background(), refreshToken); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cleared {
		t.Error("expected the refresh session to be cleared")
	}
}

func TestAuthService_Logout_UnknownTokenIsNoOp(t *testing.T) {
	svc, users, _, _ := setupAuthService(t)

	users.updateRefreshSessionFunc = func(ctx context.Context, id domain.ID, hash *string, expiry *time.Time) error {
		t.Error("expected no session write for an unknown token")
		return nil
	}

	if err := svc.Logout(context.Background(), "never-issued"); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestAuthService_Logout_EmptyTokenIsNoOp(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
