package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/webmovie/backend/internal/catalog/domain"
	cataloghttp "github.com/webmovie/backend/internal/catalog/http"
	commonerrors "github.com/webmovie/backend/internal/common/errors"
	"github.com/webmovie/backend/internal/common/logger"
)

type stubProvider struct {
	newMoviesFunc func(ctx context.Context, page int) (domain.MovieListResponse, error)
	detailFunc    func(ctx context.Context, slug string) (domain.MovieDetailResponse, error)
	byTypeFunc    func(ctx context.Context, movieType string, page int, category, country string, year int) (domain.FilteredMovieListResponse, error)
	searchFunc    func(ctx context.Context, keyword string, limit int) (domain.FilteredMovieListResponse, error)
}

func (s *stubProvider) GetNewMovies(ctx context.Context, page int) (domain.MovieListResponse, error) {
	if s.newMoviesFunc != nil {
		return s.newMoviesFunc(ctx, page)
	}
	return domain.MovieListResponse{Status: true}, nil
}

func (s *stubProvider) GetMovieDetail(ctx context.Context, slug string) (domain.MovieDetailResponse, error) {
	if s.detailFunc != nil {
		return s.detailFunc(ctx, slug)
	}
	return domain.MovieDetailResponse{Status: true, Movie: &domain.MovieInfo{Slug: slug}}, nil
}

func (s *stubProvider) GetMoviesByType(ctx context.Context, movieType string, page int, category, country string, year int) (domain.FilteredMovieListResponse, error) {
	if s.byTypeFunc != nil {
		return s.byTypeFunc(ctx, movieType, page, category, country, year)
	}
	return domain.FilteredMovieListResponse{Status: true}, nil
}

func (s *stubProvider) SearchMovies(ctx context.Context, keyword string, limit int) (domain.FilteredMovieListResponse, error) {
	if s.searchFunc != nil {
		return s.searchFunc(ctx, keyword, limit)
	}
	return domain.FilteredMovieListResponse{Status: true}, nil
}

func (s *stubProvider) GetMoviesByCategory(ctx context.Context, slug string, page int, country string, year int) (domain.FilteredMovieListResponse, error) {
	return domain.FilteredMovieListResponse{Status: true}, nil
}

func (s *stubProvider) GetCategories(ctx context.Context) (domain.CategoryListResponse, error) {
	return domain.CategoryListResponse{Status: true}, nil
}

func (s *stubProvider) GetCountries(ctx context.Context) (domain.CountryListResponse, error) {
	return domain.CountryListResponse{Status: true}, nil
}

func setupCatalogServer(provider *stubProvider) *http.ServeMux {
	mux := http.NewServeMux()
	cataloghttp.NewRouter(provider, logger.NewNop()).Register(mux)
	return mux
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCatalogRouter_NewMoviesDefaultsPage(t *testing.T) {
	provider := &stubProvider{}
	var gotPage int
	provider.newMoviesFunc = func(ctx context.Context, page int) (domain.MovieListResponse, error) {
		gotPage = page
		return domain.MovieListResponse{Status: true}, nil
	}

	rec := get(setupCatalogServer(provider), "/api/movies/new")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotPage != 1 {
		t.Errorf("expected default page 1, got %d", gotPage)
	}
}

func TestCatalogRouter_ListTypePassesFilters(t *testing.T) {
	provider := &stubProvider{}
	var gotType, gotCategory, gotCountry string
	var gotYear int
	provider.byTypeFunc = func(ctx context.Context, movieType string, page int, category, country string, year int) (domain.FilteredMovieListResponse, error) {
		gotType, gotCategory, gotCountry, gotYear = movieType, category, country, year
		return domain.FilteredMovieListResponse{Status: true}, nil
	}

	rec := get(setupCatalogServer(provider), "/api/movies/list/phim-le?category=hanh-dong&country=han-quoc&year=2024")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotType != "phim-le" || gotCategory != "hanh-dong" || gotCountry != "han-quoc" || gotYear != 2024 {
		t.Errorf("unexpected filters: %s %s %s %d", gotType, gotCategory, gotCountry, gotYear)
	}
}

func TestCatalogRouter_SearchRequiresKeyword(t *testing.T) {
	rec := get(setupCatalogServer(&stubProvider{}), "/api/movies/search")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCatalogRouter_DetailNotFound(t *testing.T) {
	provider := &stubProvider{}
	provider.detailFunc = func(ctx context.Context, slug string) (domain.MovieDetailResponse, error) {
		return domain.MovieDetailResponse{Status: false, Msg: ""}, nil
	}

	rec := get(setupCatalogServer(provider), "/api/movies/detail/unknown-slug")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCatalogRouter_UpstreamUnavailable(t *testing.T) {
	provider := &stubProvider{}
	provider.newMoviesFunc = func(ctx context.Context, page int) (domain.MovieListResponse, error) {
		return domain.MovieListResponse{}, commonerrors.ErrUpstreamUnavailable
	}

	rec := get(setupCatalogServer(provider), "/api/movies/new")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var envelope struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if envelope.Code != "UPSTREAM_UNAVAILABLE" {
		t.Errorf("expected UPSTREAM_UNAVAILABLE, got %q", envelope.Code)
	}
}

func TestCatalogRouter_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/movies/new", nil)
	rec := httptest.NewRecorder()
	setupCatalogServer(&stubProvider{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
