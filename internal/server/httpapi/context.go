package httpapi

import (
	"context"

	"github.com/adhalianna/trackers/internal/server/auth"
)

type contextKey int

const claimsKey contextKey = iota

// contextWithClaims stores validated claims in the request context.
func contextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// claimsFromContext retrieves claims stored by the authentication
// middleware.
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
