package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/creatorlane/creatorlane/internal/database/testutil"
	"github.com/creatorlane/creatorlane/internal/models"
)

func seedReview(t *testing.T, svc *ReviewService, companyID, companyName, creatorName string, rating int, body string) *ReviewDTO {
	t.Helper()
	review, err := svc.Create(context.Background(), CreateReviewInput{
		CompanyID:   companyID,
		CompanyName: companyName,
		CreatorID:   uuid.NewString(),
		CreatorName: creatorName,
		Rating:      rating,
		Body:        body,
	})
	require.NoError(t, err)
	return review
}

func TestReviewService_ListFacets(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewReviewService(db)
	require.NoError(t, err)
	ctx := context.Background()

	companyA := uuid.NewString()
	companyB := uuid.NewString()
	seedReview(t, svc, companyA, "Glow Cosmetics", "Avery", 5, "fantastic payout")
	seedReview(t, svc, companyA, "Glow Cosmetics", "Blair", 2, "slow to pay")
	seedReview(t, svc, companyB, "FitFuel", "Casey", 4, "solid partner")

	// Company facet narrows to one company's reviews
	state := svc.FilterState()
	state.Set("company", companyA)
	result, err := svc.List(ctx, state, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, 2, result.Filtered)
	require.True(t, result.HasActiveFilters)
	for _, item := range result.Items {
		require.Equal(t, companyA, item.CompanyID)
	}

	// Rating bucket composes with the company facet (logical AND)
	state.Set("rating", "4plus")
	result, err = svc.List(ctx, state, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, 1, result.Filtered)
	require.Equal(t, 5, result.Items[0].Rating)

	// Clearing restores the identity state
	state.Clear()
	require.False(t, state.HasActive())

	// Search is case-insensitive substring match
	state.Search = "  SLOW TO "
	state.Set("company", companyA)
	result, err = svc.List(ctx, state, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, 1, result.Filtered)
	require.Equal(t, "Blair", result.Items[0].CreatorName)
}

func TestReviewService_CompanyOptionsFirstSeen(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewReviewService(db)
	require.NoError(t, err)

	companyA := uuid.NewString()
	companyB := uuid.NewString()
	seedReview(t, svc, companyB, "Beacon", "Drew", 3, "fine")
	seedReview(t, svc, companyA, "Apex", "Emery", 4, "great")
	seedReview(t, svc, companyB, "Beacon", "Frankie", 5, "superb")

	state := svc.FilterState()
	state.Set("company", companyA)
	result, err := svc.List(context.Background(), state, models.RoleAdmin)
	require.NoError(t, err)

	// Options derive from all loaded rows, not the filtered page, and each
	// company appears once regardless of how many reviews it has.
	values := map[string]string{}
	for _, option := range result.CompanyOptions {
		values[option.Value] = option.Label
	}
	require.Equal(t, "Apex", values[companyA])
	require.Equal(t, "Beacon", values[companyB])
}

func TestReviewService_RespondAndHide(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewReviewService(db)
	require.NoError(t, err)
	ctx := context.Background()

	companyID := uuid.NewString()
	review := seedReview(t, svc, companyID, "Northwind", "Gale", 3, "average")

	// Another company cannot respond
	_, err = svc.Respond(ctx, RespondToReviewInput{ReviewID: review.ID, CompanyID: uuid.NewString(), Response: "thanks"})
	require.Error(t, err)

	responded, err := svc.Respond(ctx, RespondToReviewInput{ReviewID: review.ID, CompanyID: companyID, Response: "appreciate the feedback"})
	require.NoError(t, err)
	require.Equal(t, "appreciate the feedback", responded.Response)
	require.NotNil(t, responded.ResponseAt)

	// Responded facet sees the change
	state := svc.FilterState()
	state.Set("company", companyID)
	state.Set("responded", ReviewRespondedLabel)
	result, err := svc.List(ctx, state, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, 1, result.Filtered)

	// Hidden reviews disappear for non-admin viewers
	require.NoError(t, svc.SetHidden(ctx, review.ID, true))

	state = svc.FilterState()
	state.Set("company", companyID)
	adminResult, err := svc.List(ctx, state, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, 1, adminResult.Filtered)

	creatorResult, err := svc.List(ctx, state, models.RoleCreator)
	require.NoError(t, err)
	require.Equal(t, 0, creatorResult.Filtered)
}

func TestReviewService_CreateValidatesRating(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewReviewService(db)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateReviewInput{
		CompanyID: uuid.NewString(),
		CreatorID: uuid.NewString(),
		Rating:    6,
	})
	require.Error(t, err)
}
