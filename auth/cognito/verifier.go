package cognito

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/audioscribe/logger"
)

// Verifier checks Cognito user-pool tokens: RS256 signature against the pool
// JWKS, issuer, expiry, token_use, and the app client id.
type Verifier struct {
	cfg    Config
	keys   *keySet
	parser *jwt.Parser
	log    *logger.Logger
}

// Option customizes a Verifier.
type Option func(*Verifier)

// WithHTTPClient replaces the client used to fetch the JWKS.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Verifier) { v.keys.client = c }
}

// WithLogger sets the logger used for key-set diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(v *Verifier) { v.log = l.WithComponent("auth.cognito") }
}

// NewVerifier creates a verifier for the configured pool. No network call is made.
func NewVerifier(cfg Config, opts ...Option) (*Verifier, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cognito: %w", err)
	}

	v := &Verifier{
		cfg:  cfg,
		keys: newKeySet(cfg.KeySetURL(), &http.Client{Timeout: cfg.HTTPTimeout}, cfg.JWKSCacheTTL),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer()),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(cfg.Leeway),
		),
		log: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Warm fetches the key set ahead of the first request.
func (v *Verifier) Warm(ctx context.Context) error {
	if err := v.keys.refresh(ctx); err != nil {
		return fmt.Errorf("cognito: %w", err)
	}
	v.log.Debug("JWKS loaded", logger.Fields("url", v.keys.url))
	return nil
}

// Verify parses and validates raw, returning its claims.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token header has no kid")
		}
		return v.keys.key(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("cognito: %w", err)
	}

	if claims.TokenUse != v.cfg.TokenUse {
		return nil, fmt.Errorf("cognito: token_use %q, expected %q", claims.TokenUse, v.cfg.TokenUse)
	}
	switch v.cfg.TokenUse {
	case TokenUseAccess:
		if claims.ClientID != v.cfg.ClientID {
			return nil, fmt.Errorf("cognito: client_id %q does not match", claims.ClientID)
		}
	case TokenUseID:
		if !slices.Contains(claims.Audience, v.cfg.ClientID) {
			return nil, fmt.Errorf("cognito: audience %v does not contain client id", claims.Audience)
		}
	}
	return claims, nil
}

// ValidateToken adapts Verify to auth.TokenValidator.
func (v *Verifier) ValidateToken(ctx context.Context, token string) (any, error) {
	return v.Verify(ctx, token)
}
