package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/baseelze-maker/wasel-backend/utils"
)

// Context keys set by the auth middleware
const (
	ctxUserID = "userID"
	ctxRole   = "role"
)

// RequireAuth validates the Bearer token and stores the session's user ID
// and role on the context for downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.HandleError(c, utils.NewUnauthenticatedError())
			c.Abort()
			return
		}

		claims, err := handlerServices.AuthService.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// currentUserID returns the authenticated user's ID from the context
func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// currentRole returns the authenticated user's role from the context
func currentRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}
