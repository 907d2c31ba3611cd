package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/creatorlane/creatorlane/internal/database/testutil"
	"github.com/creatorlane/creatorlane/internal/models"
)

func TestRetainerService_ListAndStatus(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewRetainerService(db)
	require.NoError(t, err)
	ctx := context.Background()

	companyID := uuid.NewString()
	creatorID := uuid.NewString()

	contract, err := svc.Create(ctx, CreateRetainerInput{
		CompanyID:            companyID,
		CompanyName:          "Atlas Gear",
		CreatorID:            creatorID,
		CreatorName:          "Jules",
		Title:                "Monthly gear showcase",
		MonthlyAmount:        250000,
		DeliverablesPerMonth: 4,
	})
	require.NoError(t, err)
	require.Equal(t, models.RetainerStatusActive, contract.Status)

	_, err = svc.Create(ctx, CreateRetainerInput{
		CompanyID:     companyID,
		CompanyName:   "Atlas Gear",
		CreatorID:     uuid.NewString(),
		CreatorName:   "Kai",
		Title:         "Shorts bundle",
		MonthlyAmount: 90000,
	})
	require.NoError(t, err)

	// Creators only see contracts naming them
	creatorResult, err := svc.List(ctx, svc.FilterState(), models.RoleCreator, creatorID)
	require.NoError(t, err)
	require.Equal(t, 1, creatorResult.Total)
	require.Equal(t, contract.ID, creatorResult.Items[0].ID)

	// Pause, then filter companies' contracts by status
	paused, err := svc.SetStatus(ctx, contract.ID, models.RetainerStatusPaused)
	require.NoError(t, err)
	require.Equal(t, models.RetainerStatusPaused, paused.Status)

	state := svc.FilterState()
	state.Set("status", models.RetainerStatusActive)
	companyResult, err := svc.List(ctx, state, models.RoleCompany, companyID)
	require.NoError(t, err)
	require.Equal(t, 2, companyResult.Total)
	require.Equal(t, 1, companyResult.Filtered)
	require.Equal(t, "Shorts bundle", companyResult.Items[0].Title)

	// Unknown status is rejected
	_, err = svc.SetStatus(ctx, contract.ID, "archived")
	require.Error(t, err)

	// Monthly amount must be positive
	_, err = svc.Create(ctx, CreateRetainerInput{
		CompanyID: companyID,
		CreatorID: creatorID,
	})
	require.Error(t, err)
}
