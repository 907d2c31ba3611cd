package api

import (
	"github.com/gin-gonic/gin"

	"github.com/creatorlane/creatorlane/internal/handlers"
	"github.com/creatorlane/creatorlane/internal/middleware"
	"github.com/creatorlane/creatorlane/internal/models"
)

func registerAnalyticsRoutes(api *gin.RouterGroup) error {
	handler, err := handlers.NewAnalyticsHandler()
	if err != nil {
		return err
	}

	analytics := api.Group("/analytics", middleware.RequireRole(models.RoleAdmin))
	{
		analytics.POST("/heatmap", handler.Heatmap)
	}
	return nil
}
