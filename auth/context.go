package auth

import "context"

// contextKey is a private type for context keys, preventing collisions with
// keys defined in other packages.
type contextKey string

const claimsContextKey contextKey = "session_claims"

// NewContextWithClaims returns a child context carrying the verified session
// claims. Set by the session middleware, read by protected handlers.
func NewContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts the verified session claims from the context.
// The bool is false when the middleware did not run on this request.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}
