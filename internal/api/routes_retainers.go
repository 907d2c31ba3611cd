package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/handlers"
	"github.com/creatorlane/creatorlane/internal/middleware"
	"github.com/creatorlane/creatorlane/internal/models"
)

func registerRetainerRoutes(api *gin.RouterGroup, db *gorm.DB) error {
	handler, err := handlers.NewRetainerHandler(db)
	if err != nil {
		return err
	}

	retainers := api.Group("/retainers")
	{
		retainers.GET("", handler.List)
		retainers.POST("", middleware.RequireRole(models.RoleCompany), handler.Create)
		retainers.PUT("/:id/status", middleware.RequireRole(models.RoleCompany, models.RoleAdmin), handler.SetStatus)
	}
	return nil
}
