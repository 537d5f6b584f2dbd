package main

import (
	"context"
	stdlog "log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/webmovie/backend/internal/auth/http"
	authrepo "github.com/webmovie/backend/internal/auth/repository"
	authservice "github.com/webmovie/backend/internal/auth/service"
	"github.com/webmovie/backend/internal/cache"
	catalogclient "github.com/webmovie/backend/internal/catalog/client"
	cataloghttp "github.com/webmovie/backend/internal/catalog/http"
	catalogservice "github.com/webmovie/backend/internal/catalog/service"
	"github.com/webmovie/backend/internal/common/clock"
	"github.com/webmovie/backend/internal/common/config"
	"github.com/webmovie/backend/internal/common/crypto"
	"github.com/webmovie/backend/internal/common/db"
	commonhttp "github.com/webmovie/backend/internal/common/http"
	"github.com/webmovie/backend/internal/common/logger"
	"github.com/webmovie/backend/internal/common/server"
	favhttp "github.com/webmovie/backend/internal/favorites/http"
	favrepo "github.com/webmovie/backend/internal/favorites/repository"
	favservice "github.com/webmovie/backend/internal/favorites/service"
)

func main() {
	_ = godotenv.Load()

	cfg, cfgErr := config.Load()

	log, err := logger.New(cfg.LogDir, "webmovie-api", cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	if cfgErr != nil {
		log.Fatalf("failed to load configuration: %v", cfgErr)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	clk := clock.NewRealClock()
	idGenerator := crypto.NewUUIDGenerator()
	hasher := &crypto.BcryptHasher{}

	store, closeStore := buildCacheStore(cfg, clk, log)
	defer closeStore()

	tokenIssuer := authservice.NewTokenIssuer(
		cfg.JWTSecret,
		idGenerator,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL(),
		clk,
	)
	authSvc := authservice.NewAuthService(
		authrepo.NewPgUserRepository(pool),
		hasher,
		tokenIssuer,
		idGenerator,
		clk,
		log,
	)

	upstream := catalogclient.NewClient(cfg.MovieAPIBaseURL, cfg.MovieAPITimeout, log)
	catalog := catalogservice.NewCachedCatalog(upstream, store, cfg.CatalogCacheTTL, log)

	favoriteSvc := favservice.NewFavoriteService(
		favrepo.NewPgFavoriteRepository(pool),
		idGenerator,
		clk,
		log,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	authhttp.NewRouter(authSvc, cfg.JWTSecret, clk, log).Register(mux)
	cataloghttp.NewRouter(catalog, log).Register(mux)
	favhttp.NewRouter(favoriteSvc, cfg.JWTSecret, log).Register(mux)

	rateLimiter := commonhttp.NewStrictRateLimiter()
	handler := commonhttp.BuildBaseHandler(log, rateLimiter.Middleware(mux))

	srv := server.NewServer(server.DefaultServerConfig(cfg.HTTPPort), handler)
	server.StartWithGracefulShutdownAndHooks(srv, log, "webmovie-api", []server.ShutdownHook{
		func(ctx context.Context) error {
			pool.Close()
			return nil
		},
	})
}

func buildCacheStore(cfg config.Config, clk clock.Clock, log *logger.Logger) (cache.Store, func()) {
	if cfg.RedisAddr == "" {
		log.Info("no redis address configured, using in-memory catalog cache")
		memory := cache.NewMemoryStore(context.Background(), clk, log)
		return memory, memory.Close
	}

	redisStore := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	if err := redisStore.Ping(context.Background()); err != nil {
		// Cache outages are survivable; the catalog layer falls through to
		// the upstream on every backend error.
		log.Warnf("redis ping failed, continuing with degraded cache: %v", err)
	} else {
		log.Infof("redis catalog cache connected: %s", cfg.RedisAddr)
	}

	return redisStore, func() {
		if err := redisStore.Close(); err != nil {
			log.Warnf("failed to close redis client: %v", err)
		}
	}
}
