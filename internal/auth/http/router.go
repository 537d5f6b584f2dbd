package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/webmovie/backend/internal/auth/domain"
	"github.com/webmovie/backend/internal/auth/service"
	"github.com/webmovie/backend/internal/common/clock"
	commonhttp "github.com/webmovie/backend/internal/common/http"
	"github.com/webmovie/backend/internal/common/jwtverify"
	"github.com/webmovie/backend/internal/common/logger"
)

const refreshCookieName = "refresh_token"
const refreshCookiePath = "/api/auth"

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type profileResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type Router struct {
	auth      *service.AuthService
	jwtSecret string
	clock     clock.Clock
	log       *logger.Logger
}

func NewRouter(auth *service.AuthService, jwtSecret string, clk clock.Clock, log *logger.Logger) *Router {
	return &Router{
		auth:      auth,
		jwtSecret: jwtSecret,
		clock:     clk,
		log:       log,
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	requireJWT := jwtverify.Middleware(rt.jwtSecret, rt.log)

	mux.HandleFunc("/api/auth/register", commonhttp.RequireMethod(http.MethodPost)(rt.handleRegister))
	mux.HandleFunc("/api/auth/login", commonhttp.RequireMethod(http.MethodPost)(rt.handleLogin))
	mux.HandleFunc("/api/auth/refresh", commonhttp.RequireMethod(http.MethodPost)(rt.handleRefresh))
	mux.HandleFunc("/api/auth/logout", commonhttp.RequireMethod(http.MethodPost)(rt.handleLogout))
	mux.Handle("/api/auth/me", requireJWT(commonhttp.RequireMethod(http.MethodGet)(rt.handleMe)))
}

func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid JSON body", nil)
		return
	}

	user, pair, err := rt.auth.Register(r.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}

	rt.setRefreshCookie(w, pair)
	commonhttp.WriteJSON(w, http.StatusCreated, struct {
		tokenResponse
		Profile profileResponse `json:"profile"`
	}{
		tokenResponse: tokenResponse{AccessToken: pair.AccessToken, TokenType: "Bearer"},
		Profile:       toProfileResponse(user),
	})
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid JSON body", nil)
		return
	}

	_, pair, err := rt.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}

	rt.setRefreshCookie(w, pair)
	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, TokenType: "Bearer"})
}

func (rt *Router) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token, ok := rt.refreshTokenFromRequest(r)
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingRefreshToken, "missing refresh token", nil)
		return
	}

	_, pair, err := rt.auth.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) || errors.Is(err, service.ErrRefreshTokenExpired) {
			rt.clearRefreshCookie(w)
		}
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}

	rt.setRefreshCookie(w, pair)
	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, TokenType: "Bearer"})
}

func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := rt.refreshTokenFromRequest(r)

	if err := rt.auth.Logout(r.Context(), token); err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}

	rt.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil)
		return
	}

	profile, err := rt.auth.GetProfile(r.Context(), domain.ID(claims.UserID))
	if err != nil {
		commonhttp.HandleError(w, r, err, rt.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, profileResponse{
		ID:          string(profile.ID),
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
	})
}

func (rt *Router) refreshTokenFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (rt *Router) setRefreshCookie(w http.ResponseWriter, pair domain.TokenPair) {
	remaining := service.SessionRemaining(pair.RefreshExpiresAt, rt.clock.Now())
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    pair.RefreshToken,
		Path:     refreshCookiePath,
		MaxAge:   int(remaining / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (rt *Router) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func toProfileResponse(user domain.User) profileResponse {
	return profileResponse{
		ID:          string(user.ID),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
}
