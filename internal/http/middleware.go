package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-server/internal/auth"
)

const claimsContextKey = "authClaims"

// authMiddleware is the access-control gate for protected routes. A missing
// token is rejected with 401; any verification failure (malformed, bad
// signature, expired) with 403 and the same generic message. The real cause
// is logged server-side only.
func authMiddleware(tokens *auth.TokenManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access Denied: No token provided."})
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			logger.Warnf("token verification failed: %v", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access Denied: Invalid or expired token."})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// claimsFromContext returns the identity attached by authMiddleware.
// Handlers on protected routes can rely on it being present.
func claimsFromContext(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
