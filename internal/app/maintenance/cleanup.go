package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/models"
	"github.com/creatorlane/creatorlane/pkg/logger"
)

const (
	defaultNotificationRetentionDays = 90
	defaultFlagRetentionDays         = 180
	defaultNotificationSpec          = "@daily"
	defaultFlagSpec                  = "@daily"
)

// Cleaner coordinates background maintenance tasks such as purging old read
// notifications and removing content flags that moderators already closed.
type Cleaner struct {
	db   *gorm.DB
	cron *cron.Cron
	now  func() time.Time
	log  *zap.Logger

	notificationRetention int
	flagRetention         int

	notificationSchedule string
	flagSchedule         string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for cleanup cutoff comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithNotificationRetentionDays adjusts how long read notifications are kept.
func WithNotificationRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		if days > 0 {
			cleaner.notificationRetention = days
		}
	}
}

// WithFlagRetentionDays adjusts how long closed content flags are kept.
func WithFlagRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		if days > 0 {
			cleaner.flagRetention = days
		}
	}
}

// WithNotificationSchedule overrides the cron specification for notification cleanup.
func WithNotificationSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.notificationSchedule = spec
		}
	}
}

// WithFlagSchedule overrides the cron specification for content flag cleanup.
func WithFlagSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.flagSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults.
func NewCleaner(db *gorm.DB, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		db:                    db,
		now:                   time.Now,
		notificationRetention: defaultNotificationRetentionDays,
		flagRetention:         defaultFlagRetentionDays,
		notificationSchedule:  defaultNotificationSpec,
		flagSchedule:          defaultFlagSpec,
		log:                   logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers cleanup jobs with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.db == nil {
		return nil
	}

	if c.notificationRetention > 0 {
		if _, err := c.cron.AddFunc(c.notificationSchedule, func() {
			ctx := context.Background()
			cutoff := c.now().AddDate(0, 0, -c.notificationRetention)
			if _, err := CleanupNotifications(ctx, c.db, cutoff); err != nil {
				c.log.Warn("notification cleanup failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
	}

	if c.flagRetention > 0 {
		if _, err := c.cron.AddFunc(c.flagSchedule, func() {
			ctx := context.Background()
			cutoff := c.now().AddDate(0, 0, -c.flagRetention)
			if _, err := CleanupFlags(ctx, c.db, cutoff); err != nil {
				c.log.Warn("content flag cleanup failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all configured cleanup routines sequentially. Primarily used in tests
// and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.db == nil {
		return nil
	}

	var errs error

	if c.notificationRetention > 0 {
		cutoff := c.now().AddDate(0, 0, -c.notificationRetention)
		if _, err := CleanupNotifications(ctx, c.db, cutoff); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if c.flagRetention > 0 {
		cutoff := c.now().AddDate(0, 0, -c.flagRetention)
		if _, err := CleanupFlags(ctx, c.db, cutoff); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}

// CleanupNotifications removes notifications the user already read before the cutoff.
// Unread notifications are kept regardless of age so nothing disappears before
// the recipient has seen it.
func CleanupNotifications(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("cleanup notifications: db is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	result := db.WithContext(ctx).
		Where("is_read = ? AND read_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("cleanup notifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CleanupFlags removes content flags that moderators resolved or dismissed before the cutoff.
// Pending flags are never touched.
func CleanupFlags(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("cleanup flags: db is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	result := db.WithContext(ctx).
		Where("review_status IN ? AND updated_at < ?", []string{models.FlagStatusResolved, models.FlagStatusDismissed}, cutoff).
		Delete(&models.ContentFlag{})
	if result.Error != nil {
		return 0, fmt.Errorf("cleanup flags: %w", result.Error)
	}
	return result.RowsAffected, nil
}
