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

// OfferDTO is the API-friendly offer payload.
type OfferDTO struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	CompanyName     string    `json:"company_name"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	NicheID         *string   `json:"niche_id,omitempty"`
	Status          string    `json:"status"`
	PayoutPerSale   int64     `json:"payout_per_sale"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// OfferListResult bundles the filtered page with the derived facet options.
type OfferListResult struct {
	Items            []OfferDTO      `json:"items"`
	CompanyOptions   []filter.Option `json:"company_options"`
	Total            int             `json:"total"`
	Filtered         int             `json:"filtered"`
	HasActiveFilters bool            `json:"has_active_filters"`
}

// CreateOfferInput defines attributes required to persist an offer.
type CreateOfferInput struct {
	CompanyID     string
	CompanyName   string
	Title         string
	Description   string
	NicheID       *string
	PayoutPerSale int64
}

// OfferService manages company offers and their approval lifecycle.
type OfferService struct {
	db            *gorm.DB
	filter        *filter.Definition[models.Offer]
	notifications *NotificationService
}

// NewOfferService constructs an OfferService. The notification service is
// optional; when present, approval decisions notify the offer's company.
func NewOfferService(db *gorm.DB, notifications *NotificationService) (*OfferService, error) {
	if db == nil {
		return nil, errors.New("offer service: db is required")
	}
	return &OfferService{db: db, filter: offerFilter(), notifications: notifications}, nil
}

func offerFilter() *filter.Definition[models.Offer] {
	return filter.NewDefinition[models.Offer]().
		Search(
			func(o models.Offer) *string { return &o.Title },
			func(o models.Offer) *string { return &o.Description },
			func(o models.Offer) *string { return &o.CompanyName },
		).
		Facet("status", filter.Equals(func(o models.Offer) string { return o.Status })).
		Facet("niche", filter.Equals(func(o models.Offer) string {
			if o.NicheID == nil {
				return ""
			}
			return *o.NicheID
		})).
		Facet("company", filter.Equals(func(o models.Offer) string { return o.CompanyID }))
}

// FilterState builds the identity filter state for the offer screen.
func (s *OfferService) FilterState() filter.State {
	return s.filter.State()
}

// List loads offers and narrows them with the supplied filter state. Companies
// see only their own offers; creators see only approved ones.
func (s *OfferService) List(ctx context.Context, state filter.State, viewer models.Role, viewerID string) (*OfferListResult, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.Offer{}).Order("created_at DESC")
	switch viewer {
	case models.RoleCompany:
		query = query.Where("company_id = ?", viewerID)
	case models.RoleCreator:
		query = query.Where("status = ?", models.OfferStatusApproved)
	}

	var rows []models.Offer
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("offer service: list offers: %w", err)
	}

	filtered := s.filter.Apply(rows, state)

	items := make([]OfferDTO, 0, len(filtered))
	for _, row := range filtered {
		items = append(items, mapOffer(row))
	}

	return &OfferListResult{
		Items: items,
		CompanyOptions: filter.Options(rows,
			func(o models.Offer) string { return o.CompanyID },
			func(o models.Offer) string { return o.CompanyName },
		),
		Total:            len(rows),
		Filtered:         len(filtered),
		HasActiveFilters: state.HasActive(),
	}, nil
}

// Get returns one offer by ID.
func (s *OfferService) Get(ctx context.Context, offerID string) (*OfferDTO, error) {
	ctx = ensureContext(ctx)
	var offer models.Offer
	if err := s.db.WithContext(ctx).Where("id = ?", offerID).First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("offer service: load offer: %w", err)
	}
	dto := mapOffer(offer)
	return &dto, nil
}

// Create persists a new offer in the pending state.
func (s *OfferService) Create(ctx context.Context, input CreateOfferInput) (*OfferDTO, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(input.CompanyID) == "" {
		return nil, errors.New("offer service: company id is required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewBadRequest("offer title is required")
	}

	offer := models.Offer{
		CompanyID:     input.CompanyID,
		CompanyName:   strings.TrimSpace(input.CompanyName),
		Title:         title,
		Description:   strings.TrimSpace(input.Description),
		NicheID:       input.NicheID,
		Status:        models.OfferStatusPending,
		PayoutPerSale: input.PayoutPerSale,
	}
	if err := s.db.WithContext(ctx).Create(&offer).Error; err != nil {
		return nil, fmt.Errorf("offer service: create offer: %w", err)
	}

	dto := mapOffer(offer)
	return &dto, nil
}

// Approve moves a pending offer to the approved state and notifies its company.
func (s *OfferService) Approve(ctx context.Context, offerID string) (*OfferDTO, error) {
	return s.decide(ctx, offerID, models.OfferStatusApproved, "")
}

// Reject moves a pending offer to the rejected state, recording the reason.
func (s *OfferService) Reject(ctx context.Context, offerID, reason string) (*OfferDTO, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewBadRequest("rejection reason is required")
	}
	return s.decide(ctx, offerID, models.OfferStatusRejected, reason)
}

func (s *OfferService) decide(ctx context.Context, offerID, status, reason string) (*OfferDTO, error) {
	ctx = ensureContext(ctx)

	var offer models.Offer
	if err := s.db.WithContext(ctx).Where("id = ?", offerID).First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("offer service: load offer: %w", err)
	}
	if offer.Status != models.OfferStatusPending {
		return nil, apperrors.New("OFFER_NOT_PENDING", "only pending offers can be decided", 409)
	}

	if err := s.db.WithContext(ctx).Model(&offer).
		Updates(map[string]any{
			"status":           status,
			"rejection_reason": reason,
		}).Error; err != nil {
		return nil, fmt.Errorf("offer service: update status: %w", err)
	}
	offer.Status = status
	offer.RejectionReason = reason

	s.notifyDecision(ctx, offer)

	dto := mapOffer(offer)
	return &dto, nil
}

func (s *OfferService) notifyDecision(ctx context.Context, offer models.Offer) {
	if s.notifications == nil {
		return
	}

	notificationType := "offer_approved"
	title := "Offer approved"
	message := fmt.Sprintf("Your offer %q is now live.", offer.Title)
	if offer.Status == models.OfferStatusRejected {
		notificationType = "offer_rejected"
		title = "Offer rejected"
		message = fmt.Sprintf("Your offer %q was rejected: %s", offer.Title, offer.RejectionReason)
	}

	// Decision notifications are best-effort; the status change already stuck.
	_, _ = s.notifications.Create(ctx, CreateNotificationInput{
		UserID:  offer.CompanyID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		LinkURL: "/company/offers/" + offer.ID,
		Metadata: map[string]any{
			"offerId":   offer.ID,
			"offerName": offer.Title,
		},
	})
}

func mapOffer(row models.Offer) OfferDTO {
	return OfferDTO{
		ID:              row.ID,
		CompanyID:       row.CompanyID,
		CompanyName:     row.CompanyName,
		Title:           row.Title,
		Description:     row.Description,
		NicheID:         row.NicheID,
		Status:          row.Status,
		PayoutPerSale:   row.PayoutPerSale,
		RejectionReason: row.RejectionReason,
		CreatedAt:       row.CreatedAt,
	}
}
