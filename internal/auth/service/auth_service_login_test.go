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

func TestAuthService_Login_Success(t *testing.T) {
	svc, users, _, mockClock := setupAuthService(t)

	users.findByEmailFunc = func(ctx context.Context, email string) (domain.User, error) {
		if email != "user@example.com" {
			t.Errorf("expected trimmed email lookup, got %q", email)
		}
		return domain.User{
			ID:           "user-123",
			Email:        email,
			PasswordHash: "hashed_password123",
			DisplayName:  "Test User",
			CreatedAt:    mockClock.Now(),
		}, nil
	}

	_, pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "  user@example.com ",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
}

// A second login replaces the stored refresh session, so only the latest
// refresh token stays valid.
func TestAuthService_Login_OverwritesPreviousSession(t *testing.T) {
	svc, users, _, mockClock := setupAuthService(t)

	oldHash := service.HashToken("old-refresh-token")
	oldExpiry := mockClock.Now().Add(12 * time.Hour)

	stored := domain.User{
		ID:                 "user-123",
		Email:              "user@example.com",
		PasswordHash:       "hashed_password123",
		RefreshTokenHash:   &oldHash,
		RefreshTokenExpiry: &oldExpiry,
	}

	users.findByEmailFunc = func(ctx context.Context, email string) (domain.User, error) {
		return stored, nil
	}

	var persistedHash *string
	users.updateRefreshSessionFunc = func(ctx context.Context, id domain.ID, hash *string, expiry *time.Time) error {
		persistedHash = hash
		return nil
	}

	_, pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if persistedHash == nil {
		t.Fatal("expected refresh session to be written")
	}
	if *persistedHash == oldHash {
		t.Error("expected the previous session hash to be replaced")
	}
	if *persistedHash != service.HashToken(pair.RefreshToken) {
		t.Error("expected stored hash to match the new refresh token")
	}
}

// Lookup is by the email exactly as supplied; a different casing of a
// registered address is an unknown account.
func TestAuthService_Login_EmailCaseMismatch(t *testing.T) {
	svc, users, _, _ := setupAuthService(t)

	users.findByEmailFunc = func(ctx context.Context, email string) (domain.User, error) {
		if email != "alice@example.com" {
			t.Errorf("expected lookup with the supplied casing, got %q", email)
		}
		return domain.User{}, repository.ErrUserNotFound
	}

	_, _, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})

	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	_, _, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, users, _, _ := setupAuthService(t)

	users.findByEmailFunc = func(ctx context.Context, email string) (domain.User, error) {
		return domain.User{
			ID:           "user-123",
			Email:        email,
			PasswordHash: "hashed_password123",
		}, nil
	}

	_, _, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_NoAccountEnumeration(t *testing.T) {
	svc, users, _, _ := setupAuthService(t)

	_, _, unknownErr := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	users.findByEmailFunc = func(ctx context.Context, email string) (domain.User, error) {
		return domain.User{ID: "user-123", Email: email, PasswordHash: "hashed_other"}, nil
	}

	_, _, wrongPasswordErr := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "password123",
	})

	if unknownErr == nil || wrongPasswordErr == nil {
		t.Fatal("expected both logins to fail")
	}
	if unknownErr.Error() != wrongPasswordErr.Error() {
		t.Errorf("expected identical errors, got %q and %q", unknownErr, wrongPasswordErr)
	}
}
