package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/creatorlane/creatorlane/internal/database/testutil"
	"github.com/creatorlane/creatorlane/internal/models"
)

func TestVideoService_Lifecycle(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewVideoService(db)
	require.NoError(t, err)
	ctx := context.Background()

	companyID := uuid.NewString()

	// URL must be absolute
	_, err = svc.Create(ctx, CreateVideoInput{
		CompanyID: companyID,
		Title:     "Broken upload",
		VideoURL:  "clips/launch.mp4",
	})
	require.Error(t, err)

	video, err := svc.Create(ctx, CreateVideoInput{
		CompanyID:   companyID,
		CompanyName: "Nimbus Apps",
		Title:       "Launch teaser",
		VideoURL:    "https://cdn.example.com/clips/launch.mp4",
	})
	require.NoError(t, err)
	require.Equal(t, models.VideoStatusPending, video.Status)

	// Pending videos are invisible to creators
	creatorResult, err := svc.List(ctx, svc.FilterState(), models.RoleCreator, uuid.NewString())
	require.NoError(t, err)
	for _, item := range creatorResult.Items {
		require.NotEqual(t, video.ID, item.ID)
	}

	// Featuring requires approval first
	_, err = svc.SetFeatured(ctx, video.ID, true)
	require.Error(t, err)

	approved, err := svc.Approve(ctx, video.ID)
	require.NoError(t, err)
	require.Equal(t, models.VideoStatusApproved, approved.Status)

	featured, err := svc.SetFeatured(ctx, video.ID, true)
	require.NoError(t, err)
	require.True(t, featured.Featured)

	// Featured facet
	state := svc.FilterState()
	state.Search = "Launch teaser"
	state.Set("featured", "featured")
	result, err := svc.List(ctx, state, models.RoleCompany, companyID)
	require.NoError(t, err)
	require.Equal(t, 1, result.Filtered)

	// Hiding pulls the video and clears the featured slot
	hidden, err := svc.Hide(ctx, video.ID)
	require.NoError(t, err)
	require.Equal(t, models.VideoStatusHidden, hidden.Status)
	require.False(t, hidden.Featured)
}
