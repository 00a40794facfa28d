// Package auth gates incoming requests on a bearer token.
//
// Gate implements Authenticator: GET / passes without a token, every other
// request must carry "Authorization: Bearer <token>" accepted by the configured
// TokenValidator. All failures wrap ErrInvalidToken so callers can answer with
// one uniform 401 while logging the wrapped detail.
//
// Subpackages:
//
//   - auth/cognito  verifies Cognito user-pool tokens against the pool JWKS
//   - auth/authctx  stores verified claims in the request context
package auth
