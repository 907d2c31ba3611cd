package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/handlers"
	"github.com/creatorlane/creatorlane/internal/middleware"
	"github.com/creatorlane/creatorlane/internal/models"
)

func registerVideoRoutes(api *gin.RouterGroup, db *gorm.DB) error {
	handler, err := handlers.NewVideoHandler(db)
	if err != nil {
		return err
	}

	videos := api.Group("/videos")
	{
		videos.GET("", handler.List)
		videos.POST("", middleware.RequireRole(models.RoleCompany), handler.Create)
		videos.POST("/:id/approve", middleware.RequireRole(models.RoleAdmin), handler.Approve)
		videos.POST("/:id/hide", middleware.RequireRole(models.RoleAdmin), handler.Hide)
		videos.PUT("/:id/featured", middleware.RequireRole(models.RoleAdmin), handler.SetFeatured)
	}
	return nil
}
