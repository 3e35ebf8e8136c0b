package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/jwt"
)

// Context keys set by Identity.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserRole  = "userRole"
)

// Identity resolves the bearer credential once per request. A missing or
// invalid token is not a transport-level failure: the request continues with
// no identity in the context and each handler decides whether that matters.
func Identity(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := manager.Validate(parts[1])
		if err != nil {
			c.Next()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}

// RequireAuth aborts with 401 when Identity resolved no caller.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CtxUserID); !exists {
			response.Unauthenticated(c, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated caller's ID from the context.
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CallerEmail returns the authenticated caller's email from the context.
func CallerEmail(c *gin.Context) string {
	return c.GetString(CtxUserEmail)
}
