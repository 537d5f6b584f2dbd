package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/webmovie/backend/internal/common/constants"
	commonerrors "github.com/webmovie/backend/internal/common/errors"
)

type Config struct {
	HTTPPort    string
	DatabaseURL string

	JWTSecret           string
	AccessTokenTTL      time.Duration
	RefreshTokenTTLDays int

	MovieAPIBaseURL string
	MovieAPITimeout time.Duration
	CatalogCacheTTL time.Duration

	// Empty RedisAddr selects the in-process cache backend.
	RedisAddr     string
	RedisPassword string

	LogDir   string
	LogLevel string
}

func Load() (Config, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return Config{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:            getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:         databaseURL,
		JWTSecret:           jwtSecret,
		AccessTokenTTL:      getDurationEnv("ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
		RefreshTokenTTLDays: getIntEnv("REFRESH_TOKEN_TTL_DAYS", constants.DefaultRefreshTokenTTLDays),
		MovieAPIBaseURL:     getEnv("MOVIE_API_BASE_URL", constants.DefaultMovieAPIBaseURL),
		MovieAPITimeout:     getDurationEnv("MOVIE_API_TIMEOUT", constants.DefaultMovieAPITimeout),
		CatalogCacheTTL:     getDurationEnv("CATALOG_CACHE_TTL", constants.DefaultCatalogCacheTTL),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		LogDir:              getEnv("LOG_DIR", ""),
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
	}, nil
}

func (c Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLDays) * 24 * time.Hour
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return commonerrors.ErrInvalidJWTSecret.WithCause(
			fmt.Errorf("got %d bytes", len(secret)),
		)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
