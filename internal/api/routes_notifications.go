package api

import (
	"github.com/gin-gonic/gin"

	"github.com/creatorlane/creatorlane/internal/handlers"
	"github.com/creatorlane/creatorlane/internal/middleware"
	"github.com/creatorlane/creatorlane/internal/models"
)

func registerNotificationRoutes(api *gin.RouterGroup, handler *handlers.NotificationHandler) {
	group := api.Group("/notifications")
	{
		group.GET("", handler.List)
		group.GET("/unread-count", handler.UnreadCount)
		group.GET("/:id", handler.Get)
		group.POST("/read-all", handler.MarkAllRead)
		group.DELETE("/:id", handler.Delete)

		group.POST("/announce", middleware.RequireRole(models.RoleAdmin), handler.Announce)
	}
}
