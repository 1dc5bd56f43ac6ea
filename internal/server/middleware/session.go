package middleware

import (
	"net/http"

	"paperbase/internal/session"
)

// Session validates the session cookie when present and attaches its claims
// to the request context. A missing or invalid cookie simply leaves the
// context bare; handlers that need a session reject the request themselves.
func Session(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := mgr.Read(r); ok {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}
