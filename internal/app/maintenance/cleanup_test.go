package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	testutil "github.com/creatorlane/creatorlane/internal/database/testutil"
	"github.com/creatorlane/creatorlane/internal/models"
)

func TestCleanupNotifications(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	ctx := context.Background()

	userID := uuid.NewString()
	readAt := time.Now().Add(-time.Minute)

	read := models.Notification{
		UserID:  userID,
		Type:    "announcement",
		Title:   "Old news",
		IsRead:  true,
		ReadAt:  &readAt,
		Message: "stale",
	}
	unread := models.Notification{
		UserID: userID,
		Type:   "announcement",
		Title:  "Unseen news",
	}
	require.NoError(t, db.Create(&read).Error)
	require.NoError(t, db.Create(&unread).Error)

	// A cutoff in the future catches the freshly read row but must never
	// delete unread notifications.
	removed, err := CleanupNotifications(ctx, db, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.GreaterOrEqual(t, removed, int64(1))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("id = ?", read.ID).Count(&count).Error)
	require.Zero(t, count)

	require.NoError(t, db.Model(&models.Notification{}).Where("id = ?", unread.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCleanupFlags(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	ctx := context.Background()

	resolved := models.ContentFlag{
		ContentType:     "review",
		ContentID:       uuid.NewString(),
		FlaggedUserID:   uuid.NewString(),
		FlaggedUserName: "Resolved User",
		ReviewStatus:    models.FlagStatusResolved,
	}
	dismissed := models.ContentFlag{
		ContentType:     "video",
		ContentID:       uuid.NewString(),
		FlaggedUserID:   uuid.NewString(),
		FlaggedUserName: "Dismissed User",
		ReviewStatus:    models.FlagStatusDismissed,
	}
	pending := models.ContentFlag{
		ContentType:     "offer",
		ContentID:       uuid.NewString(),
		FlaggedUserID:   uuid.NewString(),
		FlaggedUserName: "Pending User",
		ReviewStatus:    models.FlagStatusPending,
	}
	require.NoError(t, db.Create(&resolved).Error)
	require.NoError(t, db.Create(&dismissed).Error)
	require.NoError(t, db.Create(&pending).Error)

	removed, err := CleanupFlags(ctx, db, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.GreaterOrEqual(t, removed, int64(2))

	var count int64
	require.NoError(t, db.Model(&models.ContentFlag{}).
		Where("id IN ?", []string{resolved.ID, dismissed.ID}).
		Count(&count).Error)
	require.Zero(t, count)

	require.NoError(t, db.Model(&models.ContentFlag{}).Where("id = ?", pending.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCleanerRunOnce(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	userID := uuid.NewString()
	readAt := time.Now().Add(-time.Minute)
	read := models.Notification{
		UserID: userID,
		Type:   "new_review",
		Title:  "Already seen",
		IsRead: true,
		ReadAt: &readAt,
	}
	require.NoError(t, db.Create(&read).Error)

	// Pin the clock far enough ahead that the retention window covers the
	// rows created moments ago.
	future := func() time.Time { return time.Now().AddDate(1, 0, 0) }

	cleaner := NewCleaner(db,
		WithNow(future),
		WithNotificationRetentionDays(30),
		WithFlagRetentionDays(30),
	)
	require.NoError(t, cleaner.RunOnce(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("id = ?", read.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestCleanerStartAndStop(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	cleaner := NewCleaner(db,
		WithCron(cron.New(cron.WithLogger(cron.DiscardLogger))),
		WithNotificationSchedule("@every 1h"),
		WithFlagSchedule("@every 1h"),
	)
	require.NoError(t, cleaner.Start())

	stopCtx := cleaner.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop in time")
	}
}
