package session

import (
	"context"
	"net/http"

	"clinic-appointments/internal/middleware"
)

type ctxKey string

const sessionKey ctxKey = "session"

// Middleware resuelve la sesión (estado + rol) a partir de los claims que
// dejó AuthContext y la inyecta en el contexto del request. Un fallo al
// resolver deja la sesión anónima (sign-out forzado); no corta el request.
func Middleware(g *Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := middleware.GetClaims(r.Context())

			sess, _ := g.Resolve(r.Context(), claims, ok)

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext devuelve la sesión del request; ok=false si la sesión no es de
// un usuario autenticado.
func FromContext(ctx context.Context) (Session, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return Session{State: StateAnonymous}, false
	}
	s, _ := v.(Session)
	return s, s.IsAuthenticated()
}

// RequireUser corta con 401 los requests sin sesión autenticada.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin corta con 401/403 según corresponda.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !sess.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
