package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	iauth "github.com/creatorlane/creatorlane/internal/auth"
	"github.com/creatorlane/creatorlane/internal/notifications"
	"github.com/creatorlane/creatorlane/internal/services"
	"github.com/creatorlane/creatorlane/pkg/errors"
	"github.com/creatorlane/creatorlane/pkg/mail"
	"github.com/creatorlane/creatorlane/pkg/response"
)

// NotificationHandler exposes HTTP endpoints for notifications, including the
// websocket stream.
type NotificationHandler struct {
	service *services.NotificationService
	hub     *notifications.Hub
	jwt     *iauth.JWTService
}

// NewNotificationHandler constructs a notification handler.
func NewNotificationHandler(db *gorm.DB, hub *notifications.Hub, jwt *iauth.JWTService, mailer mail.Mailer) (*NotificationHandler, error) {
	service, err := services.NewNotificationService(db, hub, mailer)
	if err != nil {
		return nil, err
	}
	return &NotificationHandler{service: service, hub: hub, jwt: jwt}, nil
}

// Service exposes the underlying notification service for wiring collaborators.
func (h *NotificationHandler) Service() *services.NotificationService {
	return h.service
}

// List returns notifications for the current user.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	items, err := h.service.ListForUser(requestContext(c), services.ListNotificationsInput{
		UserID:     userID,
		UnreadOnly: strings.EqualFold(c.Query("unread"), "true"),
		Limit:      parseIntQuery(c, "limit", 25),
		Offset:     parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// UnreadCount returns the badge count for the current user.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	count, err := h.service.UnreadCount(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

// Get returns one notification with its rendered view, marking it read on
// first open.
func (h *NotificationHandler) Get(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	detail, err := h.service.Get(requestContext(c), userID, strings.TrimSpace(c.Param("id")), currentRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// MarkAllRead clears the unread state for the current user.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.service.MarkAllRead(requestContext(c), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true})
}

// Delete removes one of the current user's notifications.
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(requestContext(c), userID, strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

type announceRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	Message   string `json:"message" validate:"required"`
	LinkURL   string `json:"link_url"`
	SendEmail bool   `json:"send_email"`
}

// Announce creates a system announcement for every active user. Admin only via
// route gating.
func (h *NotificationHandler) Announce(c *gin.Context) {
	var req announceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	created, err := h.service.Announce(requestContext(c), services.AnnounceInput{
		Title:     req.Title,
		Message:   req.Message,
		LinkURL:   req.LinkURL,
		SendEmail: req.SendEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"created": created})
}

// Stream upgrades the request to a websocket subscription for the caller's
// notification events. Browsers cannot set headers on websocket dials, so the
// token may arrive as a query parameter instead.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.hub == nil || h.jwt == nil {
		response.Error(c, errors.ErrNotFound)
		return
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		authz := c.GetHeader("Authorization")
		if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			token = strings.TrimSpace(authz[7:])
		}
	}
	if token == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	claims, err := h.jwt.ValidateAccessToken(token)
	if err != nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	h.hub.Serve(claims.UserID, c.Writer, c.Request)
}
