package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/audioscribe/auth"
	"github.com/kbukum/audioscribe/auth/authctx"
	apperrors "github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/logger"
)

// ClaimsKey is the Gin context key holding verified claims.
const ClaimsKey = "claims"

// Auth returns a Gin middleware that runs every request through authn.
// Any failure aborts with the uniform INVALID_TOKEN response; the reason is
// logged only. Verified claims are stored in the request context (authctx)
// and under ClaimsKey.
func Auth(authn auth.Authenticator, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("auth")
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		claims, err := authn.Authenticate(ctx, c.GetHeader("Authorization"), c.Request.Method, c.Request.URL.Path)
		if err != nil {
			log.WithContext(ctx).Warn("authentication failed", logger.Fields(
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				logger.FieldError, err.Error(),
			))
			c.AbortWithStatusJSON(apperrors.InvalidToken().HTTPStatus, apperrors.InvalidToken().ToResponse())
			return
		}
		if claims != nil {
			c.Request = c.Request.WithContext(authctx.Set(ctx, claims))
			c.Set(ClaimsKey, claims)
		}
		c.Next()
	}
}
