package domain

import "time"

// TokenPair is the ephemeral result of issuing tokens. RefreshToken is the
// plaintext handed to the caller exactly once; only RefreshTokenHash is ever
// persisted.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshTokenHash string
	RefreshExpiresAt time.Time
}
