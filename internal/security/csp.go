package security

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// apiCSPPolicy locks API responses down completely. JSON is never executed
// by a browser, so nothing may load anything.
const apiCSPPolicy = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"

// docsCSPPolicy relaxes the policy for the Swagger UI, which needs inline
// scripts and styles to render.
const docsCSPPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data:; " +
	"frame-ancestors 'none'; base-uri 'self'"

// CSPMiddleware sets a Content-Security-Policy header on every response,
// strict for the API and relaxed only under the Swagger UI prefix.
func CSPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/swagger") {
			c.Header("Content-Security-Policy", docsCSPPolicy)
		} else {
			c.Header("Content-Security-Policy", apiCSPPolicy)
		}

		c.Next()
	}
}
