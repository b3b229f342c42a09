// internal/api/middleware/context.go
package middleware

import (
	"context"

	"matchpoint/internal/common/auth"
)

type contextKey string

const (
	claimsKey  contextKey = "authClaims"
	traceIDKey contextKey = "traceID"
)

// WithClaims attaches verified claims to the request context.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom extracts verified claims, if the request was authenticated.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// UserIDFrom is a convenience for handlers that only need the caller id.
func UserIDFrom(ctx context.Context) (int64, bool) {
	claims, ok := ClaimsFrom(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// WithTraceID attaches a request trace id.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFrom extracts the request trace id, empty if absent.
func TraceIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}
