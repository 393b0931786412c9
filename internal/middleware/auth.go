package middleware

import (
	"net/http"
	"strings"

	"kpireview/internal/database"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key holding the authenticated user's id.
const UserIDKey = "user_id"

// RequireAuth validates the Bearer token and stores the user id in the
// request context. Requests without a valid session are rejected.
func RequireAuth(auth *database.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "authorization header is required",
			})
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "authorization header must be a Bearer token",
			})
			c.Abort()
			return
		}

		userID, err := auth.ValidateSessionToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired session token",
			})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by RequireAuth.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
