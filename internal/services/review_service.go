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
)

// Review facet vocabulary. The visibility and responded facets are tri-state:
// "all" plus the two labels below.
const (
	ReviewRespondedLabel = "responded"
	ReviewAwaitingLabel  = "awaiting"
	ReviewHiddenLabel    = "hidden"
	ReviewVisibleLabel   = "visible"
)

// ReviewDTO is the API-friendly review payload.
type ReviewDTO struct {
	ID          string     `json:"id"`
	OfferID     *string    `json:"offer_id,omitempty"`
	CompanyID   string     `json:"company_id"`
	CompanyName string     `json:"company_name"`
	CreatorID   string     `json:"creator_id"`
	CreatorName string     `json:"creator_name"`
	Rating      int        `json:"rating"`
	Body        string     `json:"body"`
	Response    string     `json:"response,omitempty"`
	ResponseAt  *time.Time `json:"response_at,omitempty"`
	Hidden      bool       `json:"hidden"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ReviewListResult bundles the filtered page with the derived facet options.
type ReviewListResult struct {
	Items            []ReviewDTO     `json:"items"`
	CompanyOptions   []filter.Option `json:"company_options"`
	Total            int             `json:"total"`
	Filtered         int             `json:"filtered"`
	HasActiveFilters bool            `json:"has_active_filters"`
}

// CreateReviewInput defines attributes required to persist a review.
type CreateReviewInput struct {
	OfferID     *string
	CompanyID   string
	CompanyName string
	CreatorID   string
	CreatorName string
	Rating      int
	Body        string
}

// RespondToReviewInput carries a company response to one of its reviews.
type RespondToReviewInput struct {
	ReviewID  string
	CompanyID string
	Response  string
}

// ReviewService manages creator reviews of companies.
type ReviewService struct {
	db     *gorm.DB
	filter *filter.Definition[models.Review]
}

// NewReviewService constructs a ReviewService.
func NewReviewService(db *gorm.DB) (*ReviewService, error) {
	if db == nil {
		return nil, errors.New("review service: db is required")
	}
	return &ReviewService{db: db, filter: reviewFilter()}, nil
}

func reviewFilter() *filter.Definition[models.Review] {
	return filter.NewDefinition[models.Review]().
		Search(
			func(r models.Review) *string { return &r.CreatorName },
			func(r models.Review) *string { return &r.CompanyName },
			func(r models.Review) *string { return &r.Body },
		).
		Facet("rating", filter.Rating(func(r models.Review) int { return r.Rating })).
		Facet("company", filter.Equals(func(r models.Review) string { return r.CompanyID })).
		Facet("responded", filter.Tristate(func(r models.Review) bool { return r.Response != "" },
			ReviewRespondedLabel, ReviewAwaitingLabel)).
		Facet("visibility", filter.Tristate(func(r models.Review) bool { return r.Hidden },
			ReviewHiddenLabel, ReviewVisibleLabel))
}

// FilterState builds the identity filter state for the review screen.
func (s *ReviewService) FilterState() filter.State {
	return s.filter.State()
}

// List loads all reviews and narrows them with the supplied filter state.
// Hidden reviews only appear for admin viewers; companies and creators see
// the public set.
func (s *ReviewService) List(ctx context.Context, state filter.State, viewer models.Role) (*ReviewListResult, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.Review{}).Order("created_at DESC")
	if viewer != models.RoleAdmin {
		query = query.Where("hidden = ?", false)
	}

	var rows []models.Review
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("review service: list reviews: %w", err)
	}

	filtered := s.filter.Apply(rows, state)

	items := make([]ReviewDTO, 0, len(filtered))
	for _, row := range filtered {
		items = append(items, mapReview(row))
	}

	return &ReviewListResult{
		Items: items,
		CompanyOptions: filter.Options(rows,
			func(r models.Review) string { return r.CompanyID },
			func(r models.Review) string { return r.CompanyName },
		),
		Total:            len(rows),
		Filtered:         len(filtered),
		HasActiveFilters: state.HasActive(),
	}, nil
}

// Create persists a new review.
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput) (*ReviewDTO, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(input.CompanyID) == "" || strings.TrimSpace(input.CreatorID) == "" {
		return nil, errors.New("review service: company id and creator id are required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewBadRequest("rating must be between 1 and 5")
	}

	review := models.Review{
		OfferID:     input.OfferID,
		CompanyID:   input.CompanyID,
		CompanyName: strings.TrimSpace(input.CompanyName),
		CreatorID:   input.CreatorID,
		CreatorName: strings.TrimSpace(input.CreatorName),
		Rating:      input.Rating,
		Body:        strings.TrimSpace(input.Body),
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, fmt.Errorf("review service: create review: %w", err)
	}

	dto := mapReview(review)
	return &dto, nil
}

// Respond records a company response on a review owned by that company.
// Responding again overwrites the previous response and its timestamp.
func (s *ReviewService) Respond(ctx context.Context, input RespondToReviewInput) (*ReviewDTO, error) {
	ctx = ensureContext(ctx)
	body := strings.TrimSpace(input.Response)
	if body == "" {
		return nil, apperrors.NewBadRequest("response body is required")
	}

	var review models.Review
	if err := s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", input.ReviewID, input.CompanyID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("review service: load review: %w", err)
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&review).
		Updates(map[string]any{
			"response":    body,
			"response_at": now,
		}).Error; err != nil {
		return nil, fmt.Errorf("review service: respond: %w", err)
	}

	review.Response = body
	review.ResponseAt = &now
	dto := mapReview(review)
	return &dto, nil
}

// SetHidden hides or unhides a review. Admin moderation only.
func (s *ReviewService) SetHidden(ctx context.Context, reviewID string, hidden bool) error {
	ctx = ensureContext(ctx)
	result := s.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", reviewID).
		Update("hidden", hidden)
	if result.Error != nil {
		return fmt.Errorf("review service: set hidden: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func mapReview(row models.Review) ReviewDTO {
	return ReviewDTO{
		ID:          row.ID,
		OfferID:     row.OfferID,
		CompanyID:   row.CompanyID,
		CompanyName: row.CompanyName,
		CreatorID:   row.CreatorID,
		CreatorName: row.CreatorName,
		Rating:      row.Rating,
		Body:        row.Body,
		Response:    row.Response,
		ResponseAt:  row.ResponseAt,
		Hidden:      row.Hidden,
		CreatedAt:   row.CreatedAt,
	}
}
