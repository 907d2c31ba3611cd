package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/handlers"
	"github.com/creatorlane/creatorlane/internal/middleware"
	"github.com/creatorlane/creatorlane/internal/models"
)

func registerNicheRoutes(api *gin.RouterGroup, db *gorm.DB) error {
	handler, err := handlers.NewNicheHandler(db)
	if err != nil {
		return err
	}

	niches := api.Group("/niches")
	{
		niches.GET("", handler.List)

		admin := niches.Group("", middleware.RequireRole(models.RoleAdmin))
		admin.POST("", handler.Create)
		admin.PUT("/reorder", handler.Reorder)
		admin.PATCH("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
	}
	return nil
}
