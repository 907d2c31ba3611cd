package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/handlers"
	"github.com/creatorlane/creatorlane/internal/middleware"
	"github.com/creatorlane/creatorlane/internal/models"
)

func registerReviewRoutes(api *gin.RouterGroup, db *gorm.DB) error {
	handler, err := handlers.NewReviewHandler(db)
	if err != nil {
		return err
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("", handler.List)
		reviews.POST("", middleware.RequireRole(models.RoleCreator), handler.Create)
		reviews.POST("/:id/respond", middleware.RequireRole(models.RoleCompany), handler.Respond)
		reviews.PUT("/:id/hidden", middleware.RequireRole(models.RoleAdmin), handler.SetHidden)
	}
	return nil
}
