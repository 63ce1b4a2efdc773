package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/progdash/progdash/internal/models"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "progdash_session"

type contextKey string

const userContextKey contextKey = "session_user"

type Middleware struct {
	service *Service
}

func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// LoadSession resolves the session cookie, if any, and attaches the
// session user to the request context. Requests without a valid session
// pass through untouched.
func (m *Middleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err == nil {
			if user, err := m.service.SessionUser(r.Context(), cookie.Value); err == nil {
				ctx := context.WithValue(r.Context(), userContextKey, user)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose session user is absent or not an
// admin.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Role != models.RoleAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserFromContext(ctx context.Context) (*models.SessionUser, bool) {
	user, ok := ctx.Value(userContextKey).(*models.SessionUser)
	return user, ok
}
