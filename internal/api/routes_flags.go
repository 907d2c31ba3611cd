package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/handlers"
	"github.com/creatorlane/creatorlane/internal/middleware"
	"github.com/creatorlane/creatorlane/internal/models"
)

func registerFlagRoutes(api *gin.RouterGroup, db *gorm.DB) error {
	handler, err := handlers.NewFlagHandler(db)
	if err != nil {
		return err
	}

	// Any authenticated user may report content; the queue itself is admin-only.
	api.POST("/flags", handler.Create)

	flags := api.Group("/flags", middleware.RequireRole(models.RoleAdmin))
	{
		flags.GET("", handler.List)
		flags.POST("/:id/resolve", handler.Resolve)
		flags.POST("/:id/dismiss", handler.Dismiss)
	}
	return nil
}
