// Package auth provides request identity plumbing and password hashing.
package auth

import (
	"context"

	"github.com/carvalueai/carvalueai/internal/token"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// claimsContextKey is the context key for storing verified token claims.
const claimsContextKey contextKey = "claims"

// ContextWithClaims adds verified claims to the context.
func ContextWithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves verified claims from the context.
// Returns nil if the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, ok := ctx.Value(claimsContextKey).(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}

// MustClaimsFromContext retrieves verified claims from the context.
// Panics if not present (use only behind the auth middleware).
func MustClaimsFromContext(ctx context.Context) *token.Claims {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		panic("claims not found in context - ensure auth middleware is applied")
	}
	return claims
}

// SubjectFromContext is a convenience function to get the authenticated
// user ID. Returns empty string if not authenticated.
func SubjectFromContext(ctx context.Context) string {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return ""
	}
	return claims.Subject
}
