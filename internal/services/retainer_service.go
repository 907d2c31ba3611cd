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

// RetainerDTO is the API-friendly retainer contract payload.
type RetainerDTO struct {
	ID                   string    `json:"id"`
	CompanyID            string    `json:"company_id"`
	CompanyName          string    `json:"company_name"`
	CreatorID            string    `json:"creator_id"`
	CreatorName          string    `json:"creator_name"`
	Title                string    `json:"title"`
	Status               string    `json:"status"`
	MonthlyAmount        int64     `json:"monthly_amount"`
	DeliverablesPerMonth int       `json:"deliverables_per_month"`
	CreatedAt            time.Time `json:"created_at"`
}

// RetainerListResult bundles the filtered contract list.
type RetainerListResult struct {
	Items            []RetainerDTO   `json:"items"`
	CompanyOptions   []filter.Option `json:"company_options"`
	Total            int             `json:"total"`
	Filtered         int             `json:"filtered"`
	HasActiveFilters bool            `json:"has_active_filters"`
}

// CreateRetainerInput defines attributes required to persist a contract.
type CreateRetainerInput struct {
	CompanyID            string
	CompanyName          string
	CreatorID            string
	CreatorName          string
	Title                string
	MonthlyAmount        int64
	DeliverablesPerMonth int
}

// RetainerService manages monthly retainer contracts between companies and creators.
type RetainerService struct {
	db     *gorm.DB
	filter *filter.Definition[models.RetainerContract]
}

// NewRetainerService constructs a RetainerService.
func NewRetainerService(db *gorm.DB) (*RetainerService, error) {
	if db == nil {
		return nil, errors.New("retainer service: db is required")
	}
	return &RetainerService{db: db, filter: retainerFilter()}, nil
}

func retainerFilter() *filter.Definition[models.RetainerContract] {
	return filter.NewDefinition[models.RetainerContract]().
		Search(
			func(r models.RetainerContract) *string { return &r.Title },
			func(r models.RetainerContract) *string { return &r.CreatorName },
			func(r models.RetainerContract) *string { return &r.CompanyName },
		).
		Facet("status", filter.Equals(func(r models.RetainerContract) string { return r.Status })).
		Facet("company", filter.Equals(func(r models.RetainerContract) string { return r.CompanyID }))
}

// FilterState builds the identity filter state for the contract screen.
func (s *RetainerService) FilterState() filter.State {
	return s.filter.State()
}

// List loads contracts scoped by role and narrows them with the filter state.
// Companies see their own contracts, creators see contracts naming them.
func (s *RetainerService) List(ctx context.Context, state filter.State, viewer models.Role, viewerID string) (*RetainerListResult, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.RetainerContract{}).Order("created_at DESC")
	switch viewer {
	case models.RoleCompany:
		query = query.Where("company_id = ?", viewerID)
	case models.RoleCreator:
		query = query.Where("creator_id = ?", viewerID)
	}

	var rows []models.RetainerContract
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("retainer service: list contracts: %w", err)
	}

	filtered := s.filter.Apply(rows, state)

	items := make([]RetainerDTO, 0, len(filtered))
	for _, row := range filtered {
		items = append(items, mapRetainer(row))
	}

	return &RetainerListResult{
		Items: items,
		CompanyOptions: filter.Options(rows,
			func(r models.RetainerContract) string { return r.CompanyID },
			func(r models.RetainerContract) string { return r.CompanyName },
		),
		Total:            len(rows),
		Filtered:         len(filtered),
		HasActiveFilters: state.HasActive(),
	}, nil
}

// Create persists a new active contract.
func (s *RetainerService) Create(ctx context.Context, input CreateRetainerInput) (*RetainerDTO, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(input.CompanyID) == "" || strings.TrimSpace(input.CreatorID) == "" {
		return nil, errors.New("retainer service: company id and creator id are required")
	}
	if input.MonthlyAmount <= 0 {
		return nil, apperrors.NewBadRequest("monthly amount must be positive")
	}

	contract := models.RetainerContract{
		CompanyID:            input.CompanyID,
		CompanyName:          strings.TrimSpace(input.CompanyName),
		CreatorID:            input.CreatorID,
		CreatorName:          strings.TrimSpace(input.CreatorName),
		Title:                strings.TrimSpace(input.Title),
		Status:               models.RetainerStatusActive,
		MonthlyAmount:        input.MonthlyAmount,
		DeliverablesPerMonth: input.DeliverablesPerMonth,
	}
	if err := s.db.WithContext(ctx).Create(&contract).Error; err != nil {
		return nil, fmt.Errorf("retainer service: create contract: %w", err)
	}

	dto := mapRetainer(contract)
	return &dto, nil
}

// SetStatus transitions a contract between lifecycle states.
func (s *RetainerService) SetStatus(ctx context.Context, contractID, status string) (*RetainerDTO, error) {
	ctx = ensureContext(ctx)
	switch status {
	case models.RetainerStatusActive, models.RetainerStatusPaused,
		models.RetainerStatusCompleted, models.RetainerStatusCancelled:
	default:
		return nil, apperrors.NewBadRequest("unknown contract status")
	}

	var contract models.RetainerContract
	if err := s.db.WithContext(ctx).Where("id = ?", contractID).First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("retainer service: load contract: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&contract).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("retainer service: update status: %w", err)
	}
	contract.Status = status

	dto := mapRetainer(contract)
	return &dto, nil
}

func mapRetainer(row models.RetainerContract) RetainerDTO {
	return RetainerDTO{
		ID:                   row.ID,
		CompanyID:            row.CompanyID,
		CompanyName:          row.CompanyName,
		CreatorID:            row.CreatorID,
		CreatorName:          row.CreatorName,
		Title:                row.Title,
		Status:               row.Status,
		MonthlyAmount:        row.MonthlyAmount,
		DeliverablesPerMonth: row.DeliverablesPerMonth,
		CreatedAt:            row.CreatedAt,
	}
}
