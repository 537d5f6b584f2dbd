package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/webmovie/backend/internal/catalog/domain"
	"github.com/webmovie/backend/internal/common/constants"
	commonerrors "github.com/webmovie/backend/internal/common/errors"
	"github.com/webmovie/backend/internal/common/logger"
	"github.com/webmovie/backend/internal/observability/metrics"
)

// Client talks to the upstream movie catalog API. Every method is exactly one
// HTTP round trip; there are no retries, the cache layer above absorbs
// upstream flakiness instead.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) GetNewMovies(ctx context.Context, page int) (domain.MovieListResponse, error) {
	var out domain.MovieListResponse
	query := url.Values{"page": {strconv.Itoa(page)}}
	err := c.getJSON(ctx, "new_movies", "/danh-sach/phim-moi-cap-nhat", query, &out)
	return out, err
}

func (c *Client) GetMovieDetail(ctx context.Context, slug string) (domain.MovieDetailResponse, error) {
	var out domain.MovieDetailResponse
	err := c.getJSON(ctx, "movie_detail", "/phim/"+url.PathEscape(slug), nil, &out)
	return out, err
}

func (c *Client) GetMoviesByType(ctx context.Context, movieType string, page int, category, country string, year int) (domain.FilteredMovieListResponse, error) {
	query := url.Values{"page": {strconv.Itoa(page)}}
	if category != "" {
		query.Set("category", category)
	}
	if country != "" {
		query.Set("country", country)
	}
	if year != 0 {
		query.Set("year", strconv.Itoa(year))
	}

	var out domain.FilteredMovieListResponse
	err := c.getJSON(ctx, "movies_by_type", "/v1/api/danh-sach/"+url.PathEscape(movieType), query, &out)
	return out, err
}

func (c *Client) SearchMovies(ctx context.Context, keyword string, limit int) (domain.FilteredMovieListResponse, error) {
	query := url.Values{
		"keyword": {keyword},
		"limit":   {strconv.Itoa(limit)},
	}

	var out domain.FilteredMovieListResponse
	err := c.getJSON(ctx, "search_movies", "/v1/api/tim-kiem", query, &out)
	return out, err
}

func (c *Client) GetMoviesByCategory(ctx context.Context, slug string, page int, country string, year int) (domain.FilteredMovieListResponse, error) {
	query := url.Values{"page": {strconv.Itoa(page)}}
	if country != "" {
		query.Set("country", country)
	}
	if year != 0 {
		query.Set("year", strconv.Itoa(year))
	}

	var out domain.FilteredMovieListResponse
	err := c.getJSON(ctx, "movies_by_category", "/v1/api/the-loai/"+url.PathEscape(slug), query, &out)
	return out, err
}

// GetCategories wraps the upstream's bare array into the enveloped shape the
// rest of the API uses.
func (c *Client) GetCategories(ctx context.Context) (domain.CategoryListResponse, error) {
	var items []domain.CategoryRef
	if err := c.getJSON(ctx, "categories", "/the-loai", nil, &items); err != nil {
		return domain.CategoryListResponse{}, err
	}

	return domain.CategoryListResponse{
		Status: true,
		Msg:    "Success",
		Data:   &domain.CategoryData{Items: items},
	}, nil
}

func (c *Client) GetCountries(ctx context.Context) (domain.CountryListResponse, error) {
	var items []domain.CountryRef
	if err := c.getJSON(ctx, "countries", "/quoc-gia", nil, &items); err != nil {
		return domain.CountryListResponse{}, err
	}

	return domain.CountryListResponse{
		Status: true,
		Msg:    "Success",
		Data:   &domain.CountryData{Items: items},
	}, nil
}

func (c *Client) getJSON(ctx context.Context, operation, path string, query url.Values, target any) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return commonerrors.ErrUpstreamUnavailable.WithCause(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDurationSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(operation, "error").Inc()
		c.log.WithFields(ctx, logger.Fields{"operation": operation}).Warnf("upstream request failed: %v", err)
		return commonerrors.ErrUpstreamUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.WithFields(ctx, logger.Fields{
			"operation": operation,
			"status":    resp.StatusCode,
		}).Warn("upstream returned non-success status")
		return commonerrors.ErrUpstreamUnavailable.WithCause(
			fmt.Errorf("%s: unexpected status %d", operation, resp.StatusCode))
	}

	// A misbehaving upstream must not be able to exhaust memory here.
	body := io.LimitReader(resp.Body, constants.MaxUpstreamResponseBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return commonerrors.ErrUpstreamUnavailable.WithCause(
			fmt.Errorf("%s: decode response: %w", operation, err))
	}

	return nil
}
