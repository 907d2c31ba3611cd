package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/handlers"
	"github.com/creatorlane/creatorlane/internal/middleware"
	"github.com/creatorlane/creatorlane/internal/models"
	"github.com/creatorlane/creatorlane/internal/services"
)

func registerOfferRoutes(api *gin.RouterGroup, db *gorm.DB, notifications *services.NotificationService) error {
	handler, err := handlers.NewOfferHandler(db, notifications)
	if err != nil {
		return err
	}

	offers := api.Group("/offers")
	{
		offers.GET("", handler.List)
		offers.GET("/:id", handler.Get)
		offers.POST("", middleware.RequireRole(models.RoleCompany), handler.Create)
		offers.POST("/:id/approve", middleware.RequireRole(models.RoleAdmin), handler.Approve)
		offers.POST("/:id/reject", middleware.RequireRole(models.RoleAdmin), handler.Reject)
	}
	return nil
}
