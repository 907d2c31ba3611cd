package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/filter"
	"github.com/creatorlane/creatorlane/internal/models"
	apperrors "github.com/creatorlane/creatorlane/pkg/errors"
	"github.com/creatorlane/creatorlane/pkg/metrics"
)

// ContentFlagDTO is the API-friendly content flag payload.
type ContentFlagDTO struct {
	ID              string    `json:"id"`
	ContentType     string    `json:"content_type"`
	ContentID       string    `json:"content_id"`
	FlaggedUserID   string    `json:"flagged_user_id"`
	FlaggedUserName string    `json:"flagged_user_name"`
	Reason          string    `json:"reason"`
	MatchedKeywords []string  `json:"matched_keywords,omitempty"`
	ReviewStatus    string    `json:"review_status"`
	ActionTaken     string    `json:"action_taken,omitempty"`
	ModeratorID     string    `json:"moderator_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// FlagListResult bundles the filtered moderation queue.
type FlagListResult struct {
	Items            []ContentFlagDTO `json:"items"`
	Total            int              `json:"total"`
	Filtered         int              `json:"filtered"`
	HasActiveFilters bool             `json:"has_active_filters"`
}

// CreateFlagInput defines attributes required to enqueue a content flag.
type CreateFlagInput struct {
	ContentType     string
	ContentID       string
	FlaggedUserID   string
	FlaggedUserName string
	Reason          string
	MatchedKeywords []string
}

// ResolveFlagInput records a moderation decision on a pending flag.
type ResolveFlagInput struct {
	FlagID      string
	ModeratorID string
	ActionTaken string
}

// FlagService manages the content moderation queue.
type FlagService struct {
	db     *gorm.DB
	filter *filter.Definition[models.ContentFlag]
}

// NewFlagService constructs a FlagService.
func NewFlagService(db *gorm.DB) (*FlagService, error) {
	if db == nil {
		return nil, errors.New("flag service: db is required")
	}
	return &FlagService{db: db, filter: flagFilter()}, nil
}

func flagFilter() *filter.Definition[models.ContentFlag] {
	return filter.NewDefinition[models.ContentFlag]().
		Search(
			func(f models.ContentFlag) *string { return &f.FlaggedUserName },
			func(f models.ContentFlag) *string { return &f.Reason },
		).
		Facet("status", filter.Equals(func(f models.ContentFlag) string { return f.ReviewStatus })).
		Facet("content_type", filter.Equals(func(f models.ContentFlag) string { return f.ContentType }))
}

// FilterState builds the identity filter state for the moderation queue.
func (s *FlagService) FilterState() filter.State {
	return s.filter.State()
}

// List loads the moderation queue and narrows it with the supplied filter state.
func (s *FlagService) List(ctx context.Context, state filter.State) (*FlagListResult, error) {
	ctx = ensureContext(ctx)

	var rows []models.ContentFlag
	if err := s.db.WithContext(ctx).
		Model(&models.ContentFlag{}).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("flag service: list flags: %w", err)
	}

	filtered := s.filter.Apply(rows, state)

	items := make([]ContentFlagDTO, 0, len(filtered))
	for _, row := range filtered {
		items = append(items, mapFlag(row))
	}

	return &FlagListResult{
		Items:            items,
		Total:            len(rows),
		Filtered:         len(filtered),
		HasActiveFilters: state.HasActive(),
	}, nil
}

// Create enqueues a new pending flag.
func (s *FlagService) Create(ctx context.Context, input CreateFlagInput) (*ContentFlagDTO, error) {
	ctx = ensureContext(ctx)
	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" || strings.TrimSpace(input.ContentID) == "" {
		return nil, errors.New("flag service: content type and content id are required")
	}

	keywords, err := encodeJSON(input.MatchedKeywords)
	if err != nil {
		return nil, fmt.Errorf("flag service: marshal keywords: %w", err)
	}

	flag := models.ContentFlag{
		ContentType:     contentType,
		ContentID:       input.ContentID,
		FlaggedUserID:   input.FlaggedUserID,
		FlaggedUserName: strings.TrimSpace(input.FlaggedUserName),
		Reason:          strings.TrimSpace(input.Reason),
		MatchedKeywords: keywords,
		ReviewStatus:    models.FlagStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&flag).Error; err != nil {
		return nil, fmt.Errorf("flag service: create flag: %w", err)
	}

	dto := mapFlag(flag)
	return &dto, nil
}

// Resolve records a moderation action on a pending flag.
func (s *FlagService) Resolve(ctx context.Context, input ResolveFlagInput) (*ContentFlagDTO, error) {
	action := strings.TrimSpace(input.ActionTaken)
	if action == "" {
		return nil, apperrors.NewBadRequest("action taken is required")
	}
	return s.decide(ctx, input.FlagID, input.ModeratorID, models.FlagStatusResolved, action)
}

// Dismiss closes a pending flag without action.
func (s *FlagService) Dismiss(ctx context.Context, flagID, moderatorID string) (*ContentFlagDTO, error) {
	return s.decide(ctx, flagID, moderatorID, models.FlagStatusDismissed, "")
}

func (s *FlagService) decide(ctx context.Context, flagID, moderatorID, status, action string) (*ContentFlagDTO, error) {
	ctx = ensureContext(ctx)

	var flag models.ContentFlag
	if err := s.db.WithContext(ctx).Where("id = ?", flagID).First(&flag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("flag service: load flag: %w", err)
	}
	if flag.ReviewStatus != models.FlagStatusPending {
		return nil, apperrors.New("FLAG_NOT_PENDING", "flag has already been reviewed", 409)
	}

	if err := s.db.WithContext(ctx).Model(&flag).
		Updates(map[string]any{
			"review_status": status,
			"action_taken":  action,
			"moderator_id":  moderatorID,
		}).Error; err != nil {
		return nil, fmt.Errorf("flag service: update flag: %w", err)
	}
	flag.ReviewStatus = status
	flag.ActionTaken = action
	flag.ModeratorID = moderatorID

	if status == models.FlagStatusResolved {
		metrics.ModerationActions.WithLabelValues("resolve").Inc()
	} else {
		metrics.ModerationActions.WithLabelValues("dismiss").Inc()
	}

	dto := mapFlag(flag)
	return &dto, nil
}

func mapFlag(row models.ContentFlag) ContentFlagDTO {
	var keywords []string
	if meta := decodeJSONList(row.MatchedKeywords); len(meta) > 0 {
		keywords = meta
	}
	return ContentFlagDTO{
		ID:              row.ID,
		ContentType:     row.ContentType,
		ContentID:       row.ContentID,
		FlaggedUserID:   row.FlaggedUserID,
		FlaggedUserName: row.FlaggedUserName,
		Reason:          row.Reason,
		MatchedKeywords: keywords,
		ReviewStatus:    row.ReviewStatus,
		ActionTaken:     row.ActionTaken,
		ModeratorID:     row.ModeratorID,
		CreatedAt:       row.CreatedAt,
	}
}
