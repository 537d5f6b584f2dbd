package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/webmovie/backend/internal/catalog/client"
	"github.com/webmovie/backend/internal/common/constants"
	commonerrors "github.com/webmovie/backend/internal/common/errors"
	"github.com/webmovie/backend/internal/common/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return client.NewClient(srv.URL, 2*time.Second, logger.NewNop())
}

func TestClient_GetNewMovies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/danh-sach/phim-moi-cap-nhat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page=2, got %q", r.URL.Query().Get("page"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"items":[{"name":"Movie","slug":"movie","year":2024}],"pagination":{"totalItems":1,"totalItemsPerPage":10,"currentPage":2,"totalPages":1}}`))
	})

	result, err := c.GetNewMovies(context.Background(), 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !result.Status || len(result.Items) != 1 || result.Items[0].Slug != "movie" {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Pagination == nil || result.Pagination.CurrentPage != 2 {
		t.Error("expected pagination to be decoded")
	}
}

func TestClient_GetMovieDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/phim/the-matrix" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":true,"msg":"","movie":{"name":"The Matrix","slug":"the-matrix","year":1999},"episodes":[{"server_name":"#1","server_data":[{"name":"Full","slug":"full","link_m3u8":"https://cdn/x.m3u8"}]}]}`))
	})

	result, err := c.GetMovieDetail(context.Background(), "the-matrix")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Movie == nil || result.Movie.Slug != "the-matrix" {
		t.Errorf("unexpected movie: %+v", result.Movie)
	}
	if len(result.Episodes) != 1 || len(result.Episodes[0].ServerData) != 1 {
		t.Error("expected episode servers to be decoded")
	}
}

func TestClient_GetMoviesByType_QueryParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/api/danh-sach/phim-le" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "1" || q.Get("category") != "hanh-dong" || q.Get("country") != "han-quoc" || q.Get("year") != "2024" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"status":true,"msg":"","data":{"titlePage":"Phim Le","items":[]}}`))
	})

	_, err := c.GetMoviesByType(context.Background(), "phim-le", 1, "hanh-dong", "han-quoc", 2024)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestClient_GetMoviesByType_OmitsAbsentFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Has("category") || q.Has("country") || q.Has("year") {
			t.Errorf("expected absent filters to be omitted, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"status":true,"msg":"","data":{"items":[]}}`))
	})

	_, err := c.GetMoviesByType(context.Background(), "phim-le", 1, "", "", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestClient_GetCategories_WrapsBareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/the-loai" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`[{"_id":"1","name":"Hành Động","slug":"hanh-dong"}]`))
	})

	result, err := c.GetCategories(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !result.Status || result.Data == nil || len(result.Data.Items) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Data.Items[0].Slug != "hanh-dong" {
		t.Errorf("unexpected category: %+v", result.Data.Items[0])
	}
}

func TestClient_UpstreamServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetNewMovies(context.Background(), 1)
	if !errors.Is(err, commonerrors.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestClient_UndecodableBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.GetNewMovies(context.Background(), 1)
	if !errors.Is(err, commonerrors.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

// Responses past the size cap are cut off mid-document, so decoding fails
// instead of buffering an arbitrarily large body.
func TestClient_OversizedBodyRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"msg":"`))
		filler := strings.Repeat("a", 1<<16)
		for written := int64(0); written <= constants.MaxUpstreamResponseBytes; written += int64(len(filler)) {
			if _, err := w.Write([]byte(filler)); err != nil {
				return
			}
		}
		w.Write([]byte(`"}`))
	})

	_, err := c.GetNewMovies(context.Background(), 1)
	if !errors.Is(err, commonerrors.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	c := client.NewClient("http://127.0.0.1:1", time.Second, logger.NewNop())

	_, err := c.GetNewMovies(context.Background(), 1)
	if !errors.Is(err, commonerrors.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}
