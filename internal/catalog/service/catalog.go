package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/webmovie/backend/internal/cache"
	"github.com/webmovie/backend/internal/catalog/domain"
	"github.com/webmovie/backend/internal/common/logger"
	"github.com/webmovie/backend/internal/observability/metrics"
)

// Provider is the catalog query surface. The raw upstream client and the
// caching wrapper both satisfy it, so callers never know whether a response
// came from cache.
type Provider interface {
	GetNewMovies(ctx context.Context, page int) (domain.MovieListResponse, error)
	GetMovieDetail(ctx context.Context, slug string) (domain.MovieDetailResponse, error)
	GetMoviesByType(ctx context.Context, movieType string, page int, category, country string, year int) (domain.FilteredMovieListResponse, error)
	SearchMovies(ctx context.Context, keyword string, limit int) (domain.FilteredMovieListResponse, error)
	GetMoviesByCategory(ctx context.Context, slug string, page int, country string, year int) (domain.FilteredMovieListResponse, error)
	GetCategories(ctx context.Context) (domain.CategoryListResponse, error)
	GetCountries(ctx context.Context) (domain.CountryListResponse, error)
}

// CachedCatalog is a cache-aside wrapper over another Provider. Cache backend
// failures degrade to pass-through: a broken backend must never make a
// catalog query fail that the upstream could have served.
type CachedCatalog struct {
	inner Provider
	store cache.Store
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedCatalog(inner Provider, store cache.Store, ttl time.Duration, log *logger.Logger) *CachedCatalog {
	return &CachedCatalog{
		inner: inner,
		store: store,
		ttl:   ttl,
		log:   log,
	}
}

func (c *CachedCatalog) GetNewMovies(ctx context.Context, page int) (domain.MovieListResponse, error) {
	return getOrSet(ctx, c, "new_movies", newMoviesKey(page), func(ctx context.Context) (domain.MovieListResponse, error) {
		return c.inner.GetNewMovies(ctx, page)
	})
}

func (c *CachedCatalog) GetMovieDetail(ctx context.Context, slug string) (domain.MovieDetailResponse, error) {
	return getOrSet(ctx, c, "movie_detail", movieDetailKey(slug), func(ctx context.Context) (domain.MovieDetailResponse, error) {
		return c.inner.GetMovieDetail(ctx, slug)
	})
}

func (c *CachedCatalog) GetMoviesByType(ctx context.Context, movieType string, page int, category, country string, year int) (domain.FilteredMovieListResponse, error) {
	key := moviesByTypeKey(movieType, page, category, country, year)
	return getOrSet(ctx, c, "movies_by_type", key, func(ctx context.Context) (domain.FilteredMovieListResponse, error) {
		return c.inner.GetMoviesByType(ctx, movieType, page, category, country, year)
	})
}

func (c *CachedCatalog) SearchMovies(ctx context.Context, keyword string, limit int) (domain.FilteredMovieListResponse, error) {
	return getOrSet(ctx, c, "search_movies", searchMoviesKey(keyword, limit), func(ctx context.Context) (domain.FilteredMovieListResponse, error) {
		return c.inner.SearchMovies(ctx, keyword, limit)
	})
}

func (c *CachedCatalog) GetMoviesByCategory(ctx context.Context, slug string, page int, country string, year int) (domain.FilteredMovieListResponse, error) {
	key := moviesByCategoryKey(slug, page, country, year)
	return getOrSet(ctx, c, "movies_by_category", key, func(ctx context.Context) (domain.FilteredMovieListResponse, error) {
		return c.inner.GetMoviesByCategory(ctx, slug, page, country, year)
	})
}

func (c *CachedCatalog) GetCategories(ctx context.Context) (domain.CategoryListResponse, error) {
	return getOrSet(ctx, c, "categories", categoriesKey, func(ctx context.Context) (domain.CategoryListResponse, error) {
		return c.inner.GetCategories(ctx)
	})
}

func (c *CachedCatalog) GetCountries(ctx context.Context) (domain.CountryListResponse, error) {
	return getOrSet(ctx, c, "countries", countriesKey, func(ctx context.Context) (domain.CountryListResponse, error) {
		return c.inner.GetCountries(ctx)
	})
}

// getOrSet is package-level because methods cannot have type parameters.
// Loader errors propagate untouched; store errors are counted, logged and
// swallowed.
func getOrSet[T any](ctx context.Context, c *CachedCatalog, operation, key string, loader func(context.Context) (T, error)) (T, error) {
	cached, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var value T
		if err := json.Unmarshal(cached, &value); err == nil {
			metrics.CatalogCacheHits.WithLabelValues(operation).Inc()
			c.log.WithFields(ctx, logger.Fields{"key": key}).Debug("catalog cache hit")
			return value, nil
		}
		// Undecodable entry is treated as a miss and overwritten below.
		metrics.CatalogCacheErrors.WithLabelValues(operation, "decode").Inc()
		c.log.WithFields(ctx, logger.Fields{"key": key}).Warn("dropping undecodable cache entry")
	case errors.Is(err, cache.ErrMiss):
		metrics.CatalogCacheMisses.WithLabelValues(operation).Inc()
	default:
		metrics.CatalogCacheErrors.WithLabelValues(operation, "read").Inc()
		c.log.WithFields(ctx, logger.Fields{"key": key}).Warnf("cache read failed, falling through: %v", err)
	}

	value, err := loader(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		metrics.CatalogCacheErrors.WithLabelValues(operation, "encode").Inc()
		c.log.WithFields(ctx, logger.Fields{"key": key}).Warnf("cache encode failed: %v", err)
		return value, nil
	}

	if err := c.store.Set(ctx, key, encoded, c.ttl); err != nil {
		metrics.CatalogCacheErrors.WithLabelValues(operation, "write").Inc()
		c.log.WithFields(ctx, logger.Fields{"key": key}).Warnf("cache write failed: %v", err)
	}

	return value, nil
}
