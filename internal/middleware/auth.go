// Package middleware provides HTTP middlewares for the application.
package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

// isCloudRunCached is evaluated once at package init to avoid per-request os.Getenv overhead.
var isCloudRunCached = os.Getenv("K_SERVICE") != "" || os.Getenv("K_REVISION") != ""

// IsCloudRun reports whether the process is running on Google Cloud Run.
func IsCloudRun() bool {
	return isCloudRunCached
}

// GoogleAuthMiddleware validates Google-signed ID tokens on the
// Authorization header. It enforces authentication when running on Cloud Run
// or when required is true (an explicit config override for non-Cloud-Run
// deployments sitting behind the same IAM scheme).
func GoogleAuthMiddleware(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !required && !IsCloudRun() {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Expected: Bearer <token>"})
			c.Abort()
			return
		}

		audience := os.Getenv("GOOGLE_OAUTH_AUDIENCE")
		if audience == "" {
			audience = os.Getenv("CLOUD_RUN_SERVICE_URL")
		}

		payload, err := idtoken.Validate(context.Background(), parts[1], audience)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token", "details": err.Error()})
			c.Abort()
			return
		}

		c.Set("user_email", payload.Claims["email"])
		c.Next()
	}
}

// GetUserEmail retrieves the authenticated caller's email from context, if
// GoogleAuthMiddleware ran and validated a token.
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("user_email")
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
