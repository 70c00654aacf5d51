package http

import (
	"net/http"
	"time"

	"github.com/AlibekovAA/interview-board/internal/auth/service"
	"github.com/AlibekovAA/interview-board/internal/common/config"
	"github.com/AlibekovAA/interview-board/internal/common/constants"
	commonerrors "github.com/AlibekovAA/interview-board/internal/common/errors"
	commonhttp "github.com/AlibekovAA/interview-board/internal/common/http"
	"github.com/AlibekovAA/interview-board/internal/common/jwtverify"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionResponse struct {
	User sessionUser `json:"user"`
}

type Handler struct {
	auth   *service.AuthService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(auth *service.AuthService, resolver *jwtverify.Resolver, cfg config.AuthConfig, log *logger.Logger) http.Handler {
	h := &Handler{
		auth:   auth,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}

	post := commonhttp.RequireMethod(http.MethodPost)
	get := commonhttp.RequireMethod(http.MethodGet)
	timeout := commonhttp.WithTimeout(cfg.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.HandleFunc("/api/auth/register", post(timeout(h.register)))
	mux.HandleFunc("/api/auth/login", post(timeout(h.login)))
	mux.HandleFunc("/api/auth/refresh", post(timeout(h.refresh)))
	mux.HandleFunc("/api/auth/logout", post(timeout(h.logout)))
	mux.HandleFunc("/api/auth/session", get(timeout(resolver.Middleware(http.HandlerFunc(h.session)).ServeHTTP)))
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, commonerrors.ErrInvalidJSON.WithCause(err))
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	setSessionCookies(w, r, result)
	commonhttp.WriteJSON(w, http.StatusCreated, tokenResponse{Token: result.AccessToken})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, commonerrors.ErrInvalidJSON.WithCause(err))
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	setSessionCookies(w, r, result)
	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: result.AccessToken})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(constants.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		h.errors.HandleError(w, r, service.ErrInvalidRefreshToken)
		return
	}

	result, err := h.auth.Refresh(r.Context(), cookie.Value)
	if err != nil {
		clearSessionCookies(w, r)
		h.errors.HandleError(w, r, err)
		return
	}

	setSessionCookies(w, r, result)
	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: result.AccessToken})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(constants.RefreshCookieName); err == nil {
		refreshToken = cookie.Value
	}
	accessToken, _ := jwtverify.ExtractToken(r)

	if err := h.auth.Logout(r.Context(), refreshToken, accessToken); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "logout_failed",
		}).Errorf("logout failed: %v", err)
	}

	clearSessionCookies(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrUnauthorized)
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), claims.UserID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, sessionResponse{
		User: sessionUser{ID: string(user.ID), Name: user.Name, Email: user.Email},
	})
}

func setSessionCookies(w http.ResponseWriter, r *http.Request, result service.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    result.AccessToken,
		Path:     "/",
		Expires:  result.AccessExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	if result.RefreshToken == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     constants.RefreshCookieName,
		Value:    result.RefreshToken,
		Path:     "/api/auth",
		Expires:  result.RefreshExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	})
}

func clearSessionCookies(w http.ResponseWriter, r *http.Request) {
	for _, c := range []struct{ name, path string }{
		{constants.SessionCookieName, "/"},
		{constants.RefreshCookieName, "/api/auth"},
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     c.name,
			Value:    "",
			Path:     c.path,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   r.TLS != nil,
		})
	}
}
