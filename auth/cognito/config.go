package cognito

import (
	"fmt"
	"strings"
	"time"
)

const (
	TokenUseAccess = "access"
	TokenUseID     = "id"
)

// Config configures the Cognito user-pool verifier.
type Config struct {
	// Region defaults to the prefix of UserPoolID ("eu-west-1_AbC" -> "eu-west-1").
	Region     string `yaml:"region" mapstructure:"region"`
	UserPoolID string `yaml:"user_pool_id" mapstructure:"user_pool_id" validate:"required"`
	ClientID   string `yaml:"client_id" mapstructure:"client_id" validate:"required"`
	// TokenUse is the expected token_use claim.
	TokenUse string `yaml:"token_use" mapstructure:"token_use" validate:"oneof=access id"`

	// JWKSURL overrides the key set location derived from the pool.
	JWKSURL      string        `yaml:"jwks_url" mapstructure:"jwks_url" validate:"omitempty,url"`
	JWKSCacheTTL time.Duration `yaml:"jwks_cache_ttl" mapstructure:"jwks_cache_ttl"`
	HTTPTimeout  time.Duration `yaml:"http_timeout" mapstructure:"http_timeout"`
	Leeway       time.Duration `yaml:"leeway" mapstructure:"leeway"`
}

// ApplyDefaults sets defaults for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Region == "" {
		if region, _, ok := strings.Cut(c.UserPoolID, "_"); ok {
			c.Region = region
		}
	}
	if c.TokenUse == "" {
		c.TokenUse = TokenUseAccess
	}
	if c.JWKSCacheTTL == 0 {
		c.JWKSCacheTTL = time.Hour
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 5 * time.Second
	}
}

// Validate checks the fields the verifier cannot work without.
func (c *Config) Validate() error {
	if c.UserPoolID == "" {
		return fmt.Errorf("auth.user_pool_id is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("auth.client_id is required")
	}
	if c.Region == "" {
		return fmt.Errorf("auth.region is required when user_pool_id has no region prefix")
	}
	if c.TokenUse != TokenUseAccess && c.TokenUse != TokenUseID {
		return fmt.Errorf("auth.token_use must be %q or %q (got: %s)", TokenUseAccess, TokenUseID, c.TokenUse)
	}
	return nil
}

// Issuer returns the iss claim tokens from this pool carry.
func (c *Config) Issuer() string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", c.Region, c.UserPoolID)
}

// KeySetURL returns the JWKS location, honoring the override.
func (c *Config) KeySetURL() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}
	return c.Issuer() + "/.well-known/jwks.json"
}
