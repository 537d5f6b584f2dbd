package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/webmovie/backend/internal/auth/domain"
	commonerrors "github.com/webmovie/backend/internal/common/errors"
)

func TestAuthService_GetProfile_Success(t *testing.T) {
	svc, users, _, _ := setupAuthService(t)

	avatar := "https://cdn.example.com/a.png"
	secret := "bcrypt-digest"
	users.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.User, error) {
		return domain.User{
			ID:           id,
			Email:        "user@example.com",
			PasswordHash: secret,
			DisplayName:  "Test User",
			AvatarURL:    &avatar,
		}, nil
	}

	profile, err := svc.GetProfile(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if profile.ID != "user-123" || profile.Email != "user@example.com" || profile.DisplayName != "Test User" {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if profile.AvatarURL == nil || *profile.AvatarURL != avatar {
		t.Error("expected avatar URL in the profile")
	}
}

func TestAuthService_GetProfile_NotFound(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	_, err := svc.GetProfile(context.Background(), "missing-user")
	if !errors.Is(err, commonerrors.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
