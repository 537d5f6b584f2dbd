package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/webmovie/backend/internal/auth/domain"
	"github.com/webmovie/backend/internal/common/clock"
	"github.com/webmovie/backend/internal/common/constants"
	commoncrypto "github.com/webmovie/backend/internal/common/crypto"
)

// TokenIssuer mints the access/refresh pair. Access tokens are
// self-validating JWTs; refresh tokens are opaque random strings persisted
// only as a SHA-256 digest, so they can be revoked server-side while access
// tokens cannot.
type TokenIssuer struct {
	jwtSecret       []byte
	idGenerator     commoncrypto.IDGenerator
	clock           clock.Clock
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewTokenIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
	clk clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:       []byte(jwtSecret),
		idGenerator:     idGenerator,
		clock:           clk,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (ti *TokenIssuer) IssueTokens(user domain.User) (domain.TokenPair, error) {
	accessToken, err := ti.issueAccessToken(user)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refreshToken, err := GenerateRefreshToken()
	if err != nil {
		return domain.TokenPair{}, err
	}

	incrementAccessTokensIssued()
	incrementRefreshTokensIssued()

	return domain.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshTokenHash: HashToken(refreshToken),
		RefreshExpiresAt: ti.clock.Now().Add(ti.refreshTokenTTL),
	}, nil
}

func (ti *TokenIssuer) issueAccessToken(user domain.User) (string, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub":        string(user.ID),
		"email":      user.Email,
		"name":       user.DisplayName,
		"jti":        jti,
		"token_type": "access",
		"iat":        now.Unix(),
		"exp":        now.Add(ti.accessTokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(ti.jwtSecret)
}

func GenerateRefreshToken() (string, error) {
	b := make([]byte, constants.RefreshTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// HashToken is the single digest function used both when issuing and when
// validating a presented refresh token, so lookup is a plain equality match.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(sum[:])
}
