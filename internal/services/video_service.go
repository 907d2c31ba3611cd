package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/filter"
	"github.com/creatorlane/creatorlane/internal/models"
	apperrors "github.com/creatorlane/creatorlane/pkg/errors"
)

// PromoVideoDTO is the API-friendly promotional video payload.
type PromoVideoDTO struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name"`
	OfferID     *string   `json:"offer_id,omitempty"`
	Title       string    `json:"title"`
	VideoURL    string    `json:"video_url"`
	Status      string    `json:"status"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// VideoListResult bundles the filtered video list.
type VideoListResult struct {
	Items            []PromoVideoDTO `json:"items"`
	Total            int             `json:"total"`
	Filtered         int             `json:"filtered"`
	HasActiveFilters bool            `json:"has_active_filters"`
}

// CreateVideoInput defines attributes required to persist a promo video.
type CreateVideoInput struct {
	CompanyID   string
	CompanyName string
	OfferID     *string
	Title       string
	VideoURL    string
}

// VideoService manages promotional videos uploaded by companies.
type VideoService struct {
	db     *gorm.DB
	filter *filter.Definition[models.PromoVideo]
}

// NewVideoService constructs a VideoService.
func NewVideoService(db *gorm.DB) (*VideoService, error) {
	if db == nil {
		return nil, errors.New("video service: db is required")
	}
	return &VideoService{db: db, filter: videoFilter()}, nil
}

func videoFilter() *filter.Definition[models.PromoVideo] {
	return filter.NewDefinition[models.PromoVideo]().
		Search(
			func(v models.PromoVideo) *string { return &v.Title },
			func(v models.PromoVideo) *string { return &v.CompanyName },
		).
		Facet("status", filter.Equals(func(v models.PromoVideo) string { return v.Status })).
		Facet("featured", filter.Tristate(func(v models.PromoVideo) bool { return v.Featured },
			"featured", "standard"))
}

// FilterState builds the identity filter state for the video screen.
func (s *VideoService) FilterState() filter.State {
	return s.filter.State()
}

// List loads videos scoped by role and narrows them with the filter state.
// Companies see their own uploads; creators only see approved videos.
func (s *VideoService) List(ctx context.Context, state filter.State, viewer models.Role, viewerID string) (*VideoListResult, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.PromoVideo{}).Order("created_at DESC")
	switch viewer {
	case models.RoleCompany:
		query = query.Where("company_id = ?", viewerID)
	case models.RoleCreator:
		query = query.Where("status = ?", models.VideoStatusApproved)
	}

	var rows []models.PromoVideo
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("video service: list videos: %w", err)
	}

	filtered := s.filter.Apply(rows, state)

	items := make([]PromoVideoDTO, 0, len(filtered))
	for _, row := range filtered {
		items = append(items, mapVideo(row))
	}

	return &VideoListResult{
		Items:            items,
		Total:            len(rows),
		Filtered:         len(filtered),
		HasActiveFilters: state.HasActive(),
	}, nil
}

// Create persists a new pending video.
func (s *VideoService) Create(ctx context.Context, input CreateVideoInput) (*PromoVideoDTO, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(input.CompanyID) == "" {
		return nil, errors.New("video service: company id is required")
	}
	videoURL := strings.TrimSpace(input.VideoURL)
	if parsed, err := url.Parse(videoURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, apperrors.NewBadRequest("video url must be absolute")
	}

	video := models.PromoVideo{
		CompanyID:   input.CompanyID,
		CompanyName: strings.TrimSpace(input.CompanyName),
		OfferID:     input.OfferID,
		Title:       strings.TrimSpace(input.Title),
		VideoURL:    videoURL,
		Status:      models.VideoStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&video).Error; err != nil {
		return nil, fmt.Errorf("video service: create video: %w", err)
	}

	dto := mapVideo(video)
	return &dto, nil
}

// Approve publishes a video to creators.
func (s *VideoService) Approve(ctx context.Context, videoID string) (*PromoVideoDTO, error) {
	return s.setStatus(ctx, videoID, models.VideoStatusApproved)
}

// Hide pulls a video from the public list.
func (s *VideoService) Hide(ctx context.Context, videoID string) (*PromoVideoDTO, error) {
	return s.setStatus(ctx, videoID, models.VideoStatusHidden)
}

// SetFeatured toggles the featured placement of an approved video.
func (s *VideoService) SetFeatured(ctx context.Context, videoID string, featured bool) (*PromoVideoDTO, error) {
	ctx = ensureContext(ctx)
	var video models.PromoVideo
	if err := s.db.WithContext(ctx).Where("id = ?", videoID).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("video service: load video: %w", err)
	}
	if featured && video.Status != models.VideoStatusApproved {
		return nil, apperrors.New("VIDEO_NOT_APPROVED", "only approved videos can be featured", 409)
	}

	if err := s.db.WithContext(ctx).Model(&video).Update("featured", featured).Error; err != nil {
		return nil, fmt.Errorf("video service: set featured: %w", err)
	}
	video.Featured = featured

	dto := mapVideo(video)
	return &dto, nil
}

func (s *VideoService) setStatus(ctx context.Context, videoID, status string) (*PromoVideoDTO, error) {
	ctx = ensureContext(ctx)
	var video models.PromoVideo
	if err := s.db.WithContext(ctx).Where("id = ?", videoID).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("video service: load video: %w", err)
	}

	updates := map[string]any{"status": status}
	if status == models.VideoStatusHidden {
		// Hidden videos lose their featured slot
		updates["featured"] = false
	}
	if err := s.db.WithContext(ctx).Model(&video).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("video service: update status: %w", err)
	}
	video.Status = status
	if status == models.VideoStatusHidden {
		video.Featured = false
	}

	dto := mapVideo(video)
	return &dto, nil
}

func mapVideo(row models.PromoVideo) PromoVideoDTO {
	return PromoVideoDTO{
		ID:          row.ID,
		CompanyID:   row.CompanyID,
		CompanyName: row.CompanyName,
		OfferID:     row.OfferID,
		Title:       row.Title,
		VideoURL:    row.VideoURL,
		Status:      row.Status,
		Featured:    row.Featured,
		CreatedAt:   row.CreatedAt,
	}
}
