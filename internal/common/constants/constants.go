package constants

import "time"

const (
	EmailMaxLength     = 254
	DisplayNameMin     = 1
	DisplayNameMax     = 64
	PasswordMinLength  = 8
	PasswordMaxLength  = 72
	JWTSecretMinLength = 32
	RefreshTokenSize   = 64

	DefaultAccessTokenTTL      = 15 * time.Minute
	DefaultRefreshTokenTTLDays = 1

	DefaultCatalogCacheTTL = 24 * time.Hour
	DefaultMovieAPIBaseURL = "https://phimapi.com"
	DefaultMovieAPITimeout = 10 * time.Second
	DefaultSearchLimit     = 10
	MaxSearchKeywordLength = 100

	MaxUpstreamResponseBytes int64 = 10 << 20

	DefaultMaxRequestSize int64 = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort = "8080"

	MemoryCacheCleanupInterval = time.Minute

	RateLimitCleanupInterval = 3 * time.Minute

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
