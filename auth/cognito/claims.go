package cognito

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the verified claims of a Cognito access or ID token.
type Claims struct {
	jwt.RegisteredClaims
	TokenUse string   `json:"token_use"`
	ClientID string   `json:"client_id,omitempty"`
	Username string   `json:"username,omitempty"`
	Scope    string   `json:"scope,omitempty"`
	Groups   []string `json:"cognito:groups,omitempty"`
}

// UserID returns the stable subject identifier.
func (c *Claims) UserID() string {
	return c.Subject
}
