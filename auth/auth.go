package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidToken is the single failure returned by Authenticate. The wrapped
// error carries the verification detail for server-side logging.
var ErrInvalidToken = errors.New("invalid token")

// TokenValidator validates a bearer token and returns its claims.
// The claims value is stored in the request context via authctx.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (any, error)
}

// TokenValidatorFunc adapts an ordinary function to the TokenValidator interface.
type TokenValidatorFunc func(ctx context.Context, token string) (any, error)

// ValidateToken implements TokenValidator.
func (f TokenValidatorFunc) ValidateToken(ctx context.Context, token string) (any, error) {
	return f(ctx, token)
}

// Route identifies a method and exact path pair.
type Route struct {
	Method string
	Path   string
}

// HealthCheck is the route every gate lets through unauthenticated.
var HealthCheck = Route{Method: http.MethodGet, Path: "/"}

// Authenticator decides whether a request may proceed.
// It returns (nil, nil) for exempt routes.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization, method, path string) (any, error)
}

// Gate is the Authenticator used in front of every route. It is independent of
// the HTTP framework so it can be exercised without a router.
type Gate struct {
	validator TokenValidator
	exempt    map[Route]struct{}
}

// NewGate creates a gate backed by validator. HealthCheck is always exempt.
func NewGate(validator TokenValidator, exempt ...Route) *Gate {
	g := &Gate{
		validator: validator,
		exempt:    map[Route]struct{}{HealthCheck: {}},
	}
	for _, r := range exempt {
		g.exempt[r] = struct{}{}
	}
	return g
}

// Authenticate implements Authenticator.
func (g *Gate) Authenticate(ctx context.Context, authorization, method, path string) (any, error) {
	if _, ok := g.exempt[Route{Method: method, Path: path}]; ok {
		return nil, nil
	}

	token, err := BearerToken(authorization)
	if err != nil {
		return nil, err
	}

	claims, err := g.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(authorization string) (string, error) {
	if authorization == "" {
		return "", fmt.Errorf("%w: authorization header missing", ErrInvalidToken)
	}
	scheme, token, ok := strings.Cut(authorization, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", fmt.Errorf("%w: authorization scheme is not Bearer", ErrInvalidToken)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: bearer token empty", ErrInvalidToken)
	}
	return token, nil
}
