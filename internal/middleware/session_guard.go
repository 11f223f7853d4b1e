package middleware

import (
	"context"
	"net/http"

	"ngo-animal-rescue/internal/platform/httpx"
	"ngo-animal-rescue/internal/ports/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Session es lo que los guards necesitan del Session Store.
type Session interface {
	Ready() bool
	Current() (auth.Identity, bool)
	IsAdmin() bool
}

// RequireReady corta con 503 mientras la sesión no terminó de hidratar:
// antes de eso no se puede decir si hay alguien logueado.
func RequireReady(s Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.Ready() {
				w.Header().Set("Retry-After", "1")
				httpx.Error(w, r, http.StatusServiceUnavailable, "session not ready")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth exige identidad y la deja en el contexto.
func RequireAuth(s Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := current(w, r, s)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
		})
	}
}

// RequireAdmin: 401 sin sesión, 403 si la sesión no es NGO_ADMIN.
func RequireAdmin(s Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := current(w, r, s)
			if !ok {
				return
			}
			if !s.IsAdmin() {
				httpx.Error(w, r, http.StatusForbidden, "admin role required")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
		})
	}
}

func current(w http.ResponseWriter, r *http.Request, s Session) (auth.Identity, bool) {
	if !s.Ready() {
		w.Header().Set("Retry-After", "1")
		httpx.Error(w, r, http.StatusServiceUnavailable, "session not ready")
		return auth.Identity{}, false
	}
	id, ok := s.Current()
	if !ok {
		httpx.Error(w, r, http.StatusUnauthorized, "login required")
		return auth.Identity{}, false
	}
	return id, true
}

func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}
