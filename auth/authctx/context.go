// Package authctx carries verified authentication claims through a request
// context. Claims are typed by the caller:
//
//	ctx = authctx.Set(ctx, claims)
//	claims, ok := authctx.Get[*cognito.Claims](ctx)
package authctx

import (
	"context"
	"errors"
)

type contextKey struct{}

// ErrNoClaims is returned when claims are missing or of another type.
var ErrNoClaims = errors.New("authctx: no claims in context")

// Set stores claims in the context.
func Set(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// Get retrieves claims of type T from the context.
func Get[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(contextKey{}).(T)
	return claims, ok
}

// GetOrError is Get returning ErrNoClaims instead of a boolean.
func GetOrError[T any](ctx context.Context) (T, error) {
	claims, ok := Get[T](ctx)
	if !ok {
		return claims, ErrNoClaims
	}
	return claims, nil
}

// Subject is implemented by claims that identify a user.
type Subject interface {
	UserID() string
}

// UserID returns the user behind the claims in ctx, or "" when there are none.
func UserID(ctx context.Context) string {
	if s, ok := Get[Subject](ctx); ok {
		return s.UserID()
	}
	return ""
}
