package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/webmovie/backend/internal/catalog/service"
	"github.com/webmovie/backend/internal/common/constants"
	commonhttp "github.com/webmovie/backend/internal/common/http"
	"github.com/webmovie/backend/internal/common/logger"
)

type Router struct {
	catalog service.Provider
	log     *logger.Logger
}

func NewRouter(catalog service.Provider, log *logger.Logger) *Router {
	return &Router{catalog: catalog, log: log}
}

func (rt *Router) Register(mux *http.ServeMux) {
	get := commonhttp.RequireMethod(http.MethodGet)

	mux.HandleFunc("/api/movies/new", get(rt.handleNewMovies))
	mux.HandleFunc("/api/movies/search", get(rt.handleSearch))
	mux.HandleFunc("/api/movies/categories", get(rt.handleCategories))
	mux.HandleFunc("/api/movies/countries", get(rt.handleCountries))
	mux.HandleFunc("/api/movies/detail/", get(rt.handleMovieDetail))
	mux.HandleFunc("/api/movies/list/", get(rt.handleMoviesByType))
	mux.HandleFunc("/api/movies/category/", get(rt.handleMoviesByCategory))
}

func (rt *Router) handleNewMovies(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)

	result, err := rt.catalog.GetNewMovies(r.Context(), page)
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, result)
}

func (rt *Router) handleMovieDetail(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathSegment(r.URL.Path, "/api/movies/detail/")
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "missing movie slug", nil)
		return
	}

	result, err := rt.catalog.GetMovieDetail(r.Context(), slug)
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}

	if !result.Status && result.Msg == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, "MOVIE_NOT_FOUND", "movie not found", nil)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, result)
}

func (rt *Router) handleMoviesByType(w http.ResponseWriter, r *http.Request) {
	movieType, ok := pathSegment(r.URL.Path, "/api/movies/list/")
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "missing list type", nil)
		return
	}

	result, err := rt.catalog.GetMoviesByType(
		r.Context(),
		movieType,
		queryInt(r, "page", 1),
		r.URL.Query().Get("category"),
		r.URL.Query().Get("country"),
		queryInt(r, "year", 0),
	)
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, result)
}

func (rt *Router) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "keyword is required", nil)
		return
	}
	if len(keyword) > constants.MaxSearchKeywordLength {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "keyword is too long", nil)
		return
	}

	limit := queryInt(r, "limit", constants.DefaultSearchLimit)

	result, err := rt.catalog.SearchMovies(r.Context(), keyword, limit)
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, result)
}

func (rt *Router) handleMoviesByCategory(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathSegment(r.URL.Path, "/api/movies/category/")
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "missing category slug", nil)
		return
	}

	result, err := rt.catalog.GetMoviesByCategory(
		r.Context(),
		slug,
		queryInt(r, "page", 1),
		r.URL.Query().Get("country"),
		queryInt(r, "year", 0),
	)
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, result)
}

func (rt *Router) handleCategories(w http.ResponseWriter, r *http.Request) {
	result, err := rt.catalog.GetCategories(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, result)
}

func (rt *Router) handleCountries(w http.ResponseWriter, r *http.Request) {
	result, err := rt.catalog.GetCountries(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, result)
}

func pathSegment(path, prefix string) (string, bool) {
	remaining := strings.TrimPrefix(path, prefix)
	if remaining == "" || remaining == path || strings.Contains(remaining, "/") {
		return "", false
	}
	return remaining, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
