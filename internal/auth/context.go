package auth

import (
	"context"
	"time"
)

type contextKey string

const claimsKey contextKey = "gymrats-auth-claims"

// Claims identifies the caller of an authenticated request.
type Claims struct {
	UserID    int64
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.UserID <= 0 {
		return 0, false
	}
	return claims.UserID, true
}
