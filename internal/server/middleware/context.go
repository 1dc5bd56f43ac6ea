package middleware

import (
	"context"

	"paperbase/internal/security"
)

type contextKey struct{ name string }

var (
	claimsKey    = contextKey{"session_claims"}
	requestIDKey = contextKey{"request_id"}
)

// WithClaims returns a context carrying the validated session claims.
// Handlers and services read them via GetClaims; business logic never reads
// the cookie itself.
func WithClaims(ctx context.Context, claims *security.SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims returns the session claims from context and true if set.
func GetClaims(ctx context.Context) (*security.SessionClaims, bool) {
	v, ok := ctx.Value(claimsKey).(*security.SessionClaims)
	return v, ok
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID assigned by the RequestID
// middleware, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}
