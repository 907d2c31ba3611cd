package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/creatorlane/creatorlane/internal/middleware"
	"github.com/creatorlane/creatorlane/internal/models"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID returns the authenticated user's ID, empty when unauthenticated.
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

// currentRole returns the authenticated user's role, empty when unauthenticated.
func currentRole(c *gin.Context) models.Role {
	v, ok := c.Get(middleware.CtxRoleKey)
	if !ok {
		return ""
	}
	role, _ := v.(models.Role)
	return role
}
