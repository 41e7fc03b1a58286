package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/pkg/auth"
	"github.com/d60-Lab/yatube/pkg/response"
)

const (
	// CtxUserID and CtxUsername are the gin context keys set by the auth
	// middleware. An empty/missing user id means an anonymous viewer.
	CtxUserID   = "userID"
	CtxUsername = "username"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		claims, err := auth.ParseToken(secret, token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Next()
	}
}

// OptionalAuth resolves the viewer when a valid token is present and
// leaves the request anonymous otherwise. Used by read paths that only
// need the identity for follow-status decoration.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := auth.ParseToken(secret, token); err == nil {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxUsername, claims.Username)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or "" for anonymous.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
