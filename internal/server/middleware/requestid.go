package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID assigns each request an ID, honoring an inbound X-Request-Id
// header, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// GetRequestID returns the request's ID, or "" when the middleware did not run.
func GetRequestID(r *http.Request) string {
	return RequestIDFromContext(r.Context())
}
