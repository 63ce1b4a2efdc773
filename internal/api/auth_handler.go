package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/progdash/progdash/internal/auth"
	"github.com/progdash/progdash/internal/logging"
)

// AuthHandler serves signup, login, logout, and the current-user
// endpoints. Sessions travel in an HTTP-only cookie.
type AuthHandler struct {
	service *auth.Service
	ttl     time.Duration
}

func NewAuthHandler(service *auth.Service, ttl time.Duration) *AuthHandler {
	return &AuthHandler{service: service, ttl: ttl}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid signup request"))
		return
	}
	user, sid, err := h.service.Signup(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		writeError(w, r, statusForAuthError(err), err)
		return
	}
	logging.EnrichUser(r.Context(), user.ID, user.Username)
	h.setSessionCookie(w, sid)
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid login request"))
		return
	}
	user, sid, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, statusForAuthError(err), err)
		return
	}
	logging.EnrichUser(r.Context(), user.ID, user.Username)
	h.setSessionCookie(w, sid)
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, r, http.StatusInternalServerError, errors.New("failed to log out"))
			return
		}
	}
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// CurrentUser returns the session's user, or 401 when no valid session
// cookie is present.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, auth.ErrNoSession)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// AdminExists lets the first-run setup screen decide whether to show
// signup or login.
func (h *AuthHandler) AdminExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.service.AdminExists(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to check admin account"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"adminExists": exists})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func statusForAuthError(err error) int {
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
