package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/models"
	"github.com/creatorlane/creatorlane/internal/notifications"
	apperrors "github.com/creatorlane/creatorlane/pkg/errors"
	"github.com/creatorlane/creatorlane/pkg/logger"
	"github.com/creatorlane/creatorlane/pkg/mail"
	"github.com/creatorlane/creatorlane/pkg/metrics"
)

// NotificationDTO is the API-friendly notification payload.
type NotificationDTO struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	LinkURL   string         `json:"link_url,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
}

// NotificationDetail is the payload returned by the detail endpoint: the row
// plus its resolved display view for the viewer's role.
type NotificationDetail struct {
	NotificationDTO
	View notifications.View `json:"view"`
}

// CreateNotificationInput defines attributes required to persist a notification.
type CreateNotificationInput struct {
	UserID   string
	Type     string
	Title    string
	Message  string
	LinkURL  string
	Metadata map[string]any
}

// AnnounceInput creates a system announcement for every active user.
type AnnounceInput struct {
	Title   string
	Message string
	LinkURL string
	// SendEmail additionally delivers the announcement to each user's inbox.
	SendEmail bool
}

// ListNotificationsInput defines filters for querying user notifications.
type ListNotificationsInput struct {
	UserID     string
	UnreadOnly bool
	Limit      int
	Offset     int
}

// NotificationService manages user in-app notifications, their websocket
// fan-out and the read-state lifecycle.
type NotificationService struct {
	db     *gorm.DB
	hub    *notifications.Hub
	mailer mail.Mailer
}

// NewNotificationService constructs a NotificationService. Hub and mailer are
// optional; absent collaborators disable fan-out and email respectively.
func NewNotificationService(db *gorm.DB, hub *notifications.Hub, mailer mail.Mailer) (*NotificationService, error) {
	if db == nil {
		return nil, errors.New("notification service: db is required")
	}
	return &NotificationService{db: db, hub: hub, mailer: mailer}, nil
}

// ListForUser returns notifications for the supplied user ordered by recency.
func (s *NotificationService) ListForUser(ctx context.Context, input ListNotificationsInput) ([]NotificationDTO, error) {
	ctx = ensureContext(ctx)
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, errors.New("notification service: user id is required")
	}

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(max(0, input.Offset))
	if input.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var rows []models.Notification
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("notification service: list notifications: %w", err)
	}

	items := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapNotification(row))
	}
	return items, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	ctx = ensureContext(ctx)
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("notification service: unread count: %w", err)
	}
	return count, nil
}

// Get loads one notification with its rendered view for the viewer's role.
// Opening an unread notification marks it read exactly once: the transition
// is a guarded update, so concurrent opens fire the read event a single time
// and re-opening a read notification never rewrites read_at.
func (s *NotificationService) Get(ctx context.Context, userID, notificationID string, viewer models.Role) (*NotificationDetail, error) {
	ctx = ensureContext(ctx)

	var notification models.Notification
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("notification service: load notification: %w", err)
	}

	if !notification.IsRead {
		now := time.Now().UTC()
		result := s.db.WithContext(ctx).
			Model(&models.Notification{}).
			Where("id = ? AND is_read = ?", notification.ID, false).
			Updates(map[string]any{
				"is_read": true,
				"read_at": now,
			})
		if result.Error != nil {
			return nil, fmt.Errorf("notification service: mark read: %w", result.Error)
		}
		notification.IsRead = true
		notification.ReadAt = &now

		if result.RowsAffected > 0 {
			metrics.NotificationsRead.Inc()
			s.publish(userID, notifications.Event{
				Event:          "notification.read",
				NotificationID: notification.ID,
			})
		}
	}

	dto := mapNotification(notification)
	return &NotificationDetail{
		NotificationDTO: dto,
		View: notifications.Render(notifications.Record{
			Type:    notification.Type,
			Title:   notification.Title,
			Message: notification.Message,
			LinkURL: notification.LinkURL,
			Meta:    notifications.Metadata(dto.Metadata),
		}, viewer),
	}, nil
}

// Create registers a new notification and fans it out to live subscribers.
func (s *NotificationService) Create(ctx context.Context, input CreateNotificationInput) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, errors.New("notification service: user id is required")
	}
	notificationType := strings.TrimSpace(input.Type)
	if notificationType == "" {
		return nil, errors.New("notification service: type is required")
	}

	metadata, err := encodeJSON(input.Metadata)
	if err != nil {
		return nil, fmt.Errorf("notification service: marshal metadata: %w", err)
	}

	notification := models.Notification{
		UserID:   userID,
		Type:     notificationType,
		Title:    strings.TrimSpace(input.Title),
		Message:  strings.TrimSpace(input.Message),
		LinkURL:  strings.TrimSpace(input.LinkURL),
		Metadata: metadata,
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("notification service: create notification: %w", err)
	}

	metrics.NotificationsCreated.WithLabelValues(notificationType).Inc()

	dto := mapNotification(notification)
	s.publish(userID, notifications.Event{
		Event:        "notification.created",
		Notification: dto,
	})
	return &dto, nil
}

// Announce creates an announcement notification for every active user and
// optionally emails it. Email failures are logged, not returned: the in-app
// announcement is the source of truth.
func (s *NotificationService) Announce(ctx context.Context, input AnnounceInput) (int, error) {
	ctx = ensureContext(ctx)
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return 0, apperrors.NewBadRequest("announcement title is required")
	}

	var users []models.User
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&users).Error; err != nil {
		return 0, fmt.Errorf("notification service: load recipients: %w", err)
	}

	created := 0
	for _, user := range users {
		_, err := s.Create(ctx, CreateNotificationInput{
			UserID:  user.ID,
			Type:    "announcement",
			Title:   title,
			Message: input.Message,
			LinkURL: input.LinkURL,
		})
		if err != nil {
			return created, err
		}
		created++
	}

	if input.SendEmail && s.mailer != nil && len(users) > 0 {
		recipients := make([]string, 0, len(users))
		for _, user := range users {
			recipients = append(recipients, user.Email)
		}
		if err := s.mailer.Send(ctx, mail.Message{
			To:      recipients,
			Subject: title,
			Body:    input.Message,
			HTML:    true,
		}); err != nil && !errors.Is(err, mail.ErrSMTPDisabled) {
			logger.WithModule("notifications").Warn("announcement email failed",
				zap.Int("recipients", len(recipients)),
				zap.Error(err),
			)
		}
	}

	return created, nil
}

// MarkAllRead marks every unread notification for the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	ctx = ensureContext(ctx)
	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		}).Error; err != nil {
		return fmt.Errorf("notification service: mark all read: %w", err)
	}

	s.publish(userID, notifications.Event{Event: "notification.read_all"})
	return nil
}

// Delete removes a notification owned by the supplied user.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	ctx = ensureContext(ctx)
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("notification service: delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	s.publish(userID, notifications.Event{
		Event:          "notification.deleted",
		NotificationID: notificationID,
	})
	return nil
}

func (s *NotificationService) publish(userID string, event notifications.Event) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(userID, event)
}

func mapNotification(row models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        row.ID,
		UserID:    row.UserID,
		Type:      row.Type,
		Title:     row.Title,
		Message:   row.Message,
		LinkURL:   row.LinkURL,
		Metadata:  decodeJSON(row.Metadata),
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
		ReadAt:    row.ReadAt,
	}
}
