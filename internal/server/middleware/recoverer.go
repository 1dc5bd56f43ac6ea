package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"paperbase/internal/logs"
)

// Recoverer turns a handler panic into a logged 500 JSON response. No fault
// ever escapes the request pipeline.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logs.Logger.Errorf("panic: %v reqid=%s uri=%s method=%s\nstack:\n%s",
					rec, GetRequestID(r), r.RequestURI, r.Method, string(debug.Stack()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"ok":    false,
					"error": "internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
