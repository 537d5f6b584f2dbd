package domain

import "time"

type ID string

// User carries at most one refresh session: RefreshTokenHash and
// RefreshTokenExpiry are set and cleared together, never one without the
// other.
type User struct {
	ID                 ID
	Email              string
	PasswordHash       string
	DisplayName        string
	AvatarURL          *string
	RefreshTokenHash   *string
	RefreshTokenExpiry *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Profile is the public view of a user returned by the profile endpoint.
type Profile struct {
	ID          ID
	Email       string
	DisplayName string
	AvatarURL   *string
}
