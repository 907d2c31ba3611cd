package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/models"
	apperrors "github.com/creatorlane/creatorlane/pkg/errors"
)

// NicheDTO is the API-friendly niche payload.
type NicheDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

// CreateNicheInput defines attributes required to persist a niche.
type CreateNicheInput struct {
	Name string
	Slug string
}

// UpdateNicheInput carries optional niche updates; nil fields are untouched.
type UpdateNicheInput struct {
	Name   *string
	Active *bool
}

// NicheService manages the ordered offer categories.
type NicheService struct {
	db *gorm.DB
}

// NewNicheService constructs a NicheService.
func NewNicheService(db *gorm.DB) (*NicheService, error) {
	if db == nil {
		return nil, errors.New("niche service: db is required")
	}
	return &NicheService{db: db}, nil
}

// List returns all niches in display order.
func (s *NicheService) List(ctx context.Context, activeOnly bool) ([]NicheDTO, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.Niche{}).Order("position ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var rows []models.Niche
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("niche service: list niches: %w", err)
	}

	items := make([]NicheDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapNiche(row))
	}
	return items, nil
}

// Create appends a new niche at the end of the display order.
func (s *NicheService) Create(ctx context.Context, input CreateNicheInput) (*NicheDTO, error) {
	ctx = ensureContext(ctx)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("niche name is required")
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(name)
	}

	var niche models.Niche
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition int
		if err := tx.Model(&models.Niche{}).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPosition).Error; err != nil {
			return fmt.Errorf("read max position: %w", err)
		}

		niche = models.Niche{Name: name, Slug: slug, Position: maxPosition + 1, Active: true}
		return tx.Create(&niche).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("niche service: create niche: %w", err)
	}

	dto := mapNiche(niche)
	return &dto, nil
}

// Update applies partial changes to a niche.
func (s *NicheService) Update(ctx context.Context, nicheID string, input UpdateNicheInput) (*NicheDTO, error) {
	ctx = ensureContext(ctx)

	var niche models.Niche
	if err := s.db.WithContext(ctx).Where("id = ?", nicheID).First(&niche).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("niche service: load niche: %w", err)
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewBadRequest("niche name is required")
		}
		updates["name"] = name
		niche.Name = name
	}
	if input.Active != nil {
		updates["active"] = *input.Active
		niche.Active = *input.Active
	}
	if len(updates) == 0 {
		dto := mapNiche(niche)
		return &dto, nil
	}

	if err := s.db.WithContext(ctx).Model(&niche).Updates(updates).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("niche service: update niche: %w", err)
	}

	dto := mapNiche(niche)
	return &dto, nil
}

// Delete removes a niche. Offers referencing it keep a dangling niche id,
// which the offer list treats as unfiltered.
func (s *NicheService) Delete(ctx context.Context, nicheID string) error {
	ctx = ensureContext(ctx)
	result := s.db.WithContext(ctx).Where("id = ?", nicheID).Delete(&models.Niche{})
	if result.Error != nil {
		return fmt.Errorf("niche service: delete niche: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Reorder persists a drag-and-drop ordering. The slice must contain every
// niche ID exactly once; positions are assigned from slice index.
func (s *NicheService) Reorder(ctx context.Context, orderedIDs []string) ([]NicheDTO, error) {
	ctx = ensureContext(ctx)
	if len(orderedIDs) == 0 {
		return nil, apperrors.NewBadRequest("ordered ids are required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]struct{}, len(orderedIDs))
		for _, id := range orderedIDs {
			if _, dup := seen[id]; dup {
				return apperrors.NewBadRequest("ordering contains duplicate niche ids")
			}
			seen[id] = struct{}{}
		}

		var count int64
		if err := tx.Model(&models.Niche{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count niches: %w", err)
		}
		if int64(len(orderedIDs)) != count {
			return apperrors.NewBadRequest("ordering must include every niche")
		}

		for position, id := range orderedIDs {
			result := tx.Model(&models.Niche{}).Where("id = ?", id).Update("position", position)
			if result.Error != nil {
				return fmt.Errorf("update position: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return apperrors.ErrNotFound
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, fmt.Errorf("niche service: reorder: %w", err)
	}

	return s.List(ctx, false)
}

// Slugify converts a display name into a URL-safe slug.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func mapNiche(row models.Niche) NicheDTO {
	return NicheDTO{
		ID:       row.ID,
		Name:     row.Name,
		Slug:     row.Slug,
		Position: row.Position,
		Active:   row.Active,
	}
}
