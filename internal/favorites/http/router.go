package http

import (
	"net/http"
	"strings"
	"time"

	commonhttp "github.com/webmovie/backend/internal/common/http"
	"github.com/webmovie/backend/internal/common/jwtverify"
	"github.com/webmovie/backend/internal/common/logger"
	"github.com/webmovie/backend/internal/favorites/domain"
	"github.com/webmovie/backend/internal/favorites/service"
)

type addFavoriteRequest struct {
	MovieSlug      string  `json:"movie_slug"`
	MovieName      string  `json:"movie_name"`
	MoviePosterURL *string `json:"movie_poster_url,omitempty"`
	MovieThumbURL  *string `json:"movie_thumb_url,omitempty"`
	MovieYear      *int    `json:"movie_year,omitempty"`
}

type favoriteResponse struct {
	ID             string    `json:"id"`
	MovieSlug      string    `json:"movie_slug"`
	MovieName      string    `json:"movie_name"`
	MoviePosterURL *string   `json:"movie_poster_url,omitempty"`
	MovieThumbURL  *string   `json:"movie_thumb_url,omitempty"`
	MovieYear      *int      `json:"movie_year,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type checkResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

type Router struct {
	favorites *service.FavoriteService
	jwtSecret string
	log       *logger.Logger
}

func NewRouter(favorites *service.FavoriteService, jwtSecret string, log *logger.Logger) *Router {
	return &Router{
		favorites: favorites,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	requireJWT := jwtverify.Middleware(rt.jwtSecret, rt.log)

	mux.Handle("/api/favorites", requireJWT(http.HandlerFunc(rt.handleCollection)))
	mux.Handle("/api/favorites/", requireJWT(http.HandlerFunc(rt.handleItem)))
}

func (rt *Router) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.list(w, r)
	case http.MethodPost:
		rt.add(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil)
	}
}

func (rt *Router) handleItem(w http.ResponseWriter, r *http.Request) {
	if slug, ok := pathSegment(r.URL.Path, "/api/favorites/check/"); ok {
		if r.Method != http.MethodGet {
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil)
			return
		}
		rt.check(w, r, slug)
		return
	}

	slug, ok := pathSegment(r.URL.Path, "/api/favorites/")
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "missing movie slug", nil)
		return
	}

	if r.Method != http.MethodDelete {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil)
		return
	}
	rt.remove(w, r, slug)
}

func (rt *Router) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	favorites, err := rt.favorites.List(r.Context(), userID)
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}

	responses := make([]favoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		responses = append(responses, toFavoriteResponse(favorite))
	}
	commonhttp.WriteJSON(w, http.StatusOK, responses)
}

func (rt *Router) add(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	var req addFavoriteRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid JSON body", nil)
		return
	}

	favorite, err := rt.favorites.Add(r.Context(), userID, service.AddFavoriteInput{
		MovieSlug:      req.MovieSlug,
		MovieName:      req.MovieName,
		MoviePosterURL: req.MoviePosterURL,
		MovieThumbURL:  req.MovieThumbURL,
		MovieYear:      req.MovieYear,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toFavoriteResponse(favorite))
}

func (rt *Router) remove(w http.ResponseWriter, r *http.Request, slug string) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	if err := rt.favorites.Remove(r.Context(), userID, slug); err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) check(w http.ResponseWriter, r *http.Request, slug string) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	exists, err := rt.favorites.Exists(r.Context(), userID, slug)
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, checkResponse{IsFavorite: exists})
}

func userIDFromContext(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok || claims.UserID == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil)
		return "", false
	}
	return claims.UserID, true
}

func pathSegment(path, prefix string) (string, bool) {
	remaining := strings.TrimPrefix(path, prefix)
	if remaining == "" || remaining == path || strings.Contains(remaining, "/") {
		return "", false
	}
	return remaining, true
}

func toFavoriteResponse(favorite domain.Favorite) favoriteResponse {
	return favoriteResponse{
		ID:             favorite.ID,
		MovieSlug:      favorite.MovieSlug,
		MovieName:      favorite.MovieName,
		MoviePosterURL: favorite.MoviePosterURL,
		MovieThumbURL:  favorite.MovieThumbURL,
		MovieYear:      favorite.MovieYear,
		CreatedAt:      favorite.CreatedAt,
	}
}
