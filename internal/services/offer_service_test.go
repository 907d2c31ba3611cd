package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/creatorlane/creatorlane/internal/database/testutil"
	"github.com/creatorlane/creatorlane/internal/models"
)

func TestOfferService_ListScopesAndFacets(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewOfferService(db, nil)
	require.NoError(t, err)
	ctx := context.Background()

	companyID := uuid.NewString()
	nicheID := uuid.NewString()

	pending, err := svc.Create(ctx, CreateOfferInput{
		CompanyID:     companyID,
		CompanyName:   "Peak Supplements",
		Title:         "Protein launch " + companyID[:8],
		NicheID:       &nicheID,
		PayoutPerSale: 1500,
	})
	require.NoError(t, err)
	require.Equal(t, models.OfferStatusPending, pending.Status)

	approved, err := svc.Create(ctx, CreateOfferInput{
		CompanyID:   companyID,
		CompanyName: "Peak Supplements",
		Title:       "Creatine evergreen " + companyID[:8],
	})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, approved.ID)
	require.NoError(t, err)

	// Company viewers see their whole catalogue
	state := svc.FilterState()
	companyResult, err := svc.List(ctx, state, models.RoleCompany, companyID)
	require.NoError(t, err)
	require.Equal(t, 2, companyResult.Total)

	// Creators only see approved offers
	creatorState := svc.FilterState()
	creatorState.Set("company", companyID)
	creatorResult, err := svc.List(ctx, creatorState, models.RoleCreator, uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, 1, creatorResult.Filtered)
	require.Equal(t, approved.ID, creatorResult.Items[0].ID)

	// Niche facet
	state = svc.FilterState()
	state.Set("niche", nicheID)
	nicheResult, err := svc.List(ctx, state, models.RoleCompany, companyID)
	require.NoError(t, err)
	require.Equal(t, 1, nicheResult.Filtered)
	require.Equal(t, pending.ID, nicheResult.Items[0].ID)
}

func TestOfferService_DecisionLifecycle(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	notifications, err := NewNotificationService(db, nil, nil)
	require.NoError(t, err)
	svc, err := NewOfferService(db, notifications)
	require.NoError(t, err)
	ctx := context.Background()

	companyID := uuid.NewString()
	offer, err := svc.Create(ctx, CreateOfferInput{
		CompanyID:   companyID,
		CompanyName: "Lumen Skincare",
		Title:       "Serum spring push",
	})
	require.NoError(t, err)

	// Rejection requires a reason
	_, err = svc.Reject(ctx, offer.ID, "   ")
	require.Error(t, err)

	rejected, err := svc.Reject(ctx, offer.ID, "payout below marketplace floor")
	require.NoError(t, err)
	require.Equal(t, models.OfferStatusRejected, rejected.Status)
	require.Equal(t, "payout below marketplace floor", rejected.RejectionReason)

	// A decided offer cannot be decided again
	_, err = svc.Approve(ctx, offer.ID)
	require.Error(t, err)

	// The company received a decision notification
	rows, err := notifications.ListForUser(ctx, ListNotificationsInput{UserID: companyID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "offer_rejected", rows[0].Type)
	require.Equal(t, "/company/offers/"+offer.ID, rows[0].LinkURL)
}

func TestOfferService_GetUnknown(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewOfferService(db, nil)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.NewString())
	require.Error(t, err)
}
