package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HelloMessage is the body served by the unauthenticated root route.
const HelloMessage = "Hello World!"

// Hello answers the root health check with a plain-text greeting.
func Hello() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, HelloMessage)
	}
}
