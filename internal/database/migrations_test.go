package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creatorlane/creatorlane/internal/models"
)

func TestAutoMigrateAndSeed(t *testing.T) {
	db, err := Open(Config{Driver: "sqlite"})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, dbErr := db.DB()
		require.NoError(t, dbErr)
		_ = sqlDB.Close()
	})

	require.NoError(t, AutoMigrateAndSeed(db))

	var niches []models.Niche
	require.NoError(t, db.Order("position ASC").Find(&niches).Error)
	require.Len(t, niches, 4)
	require.Equal(t, "fitness", niches[0].Slug)

	var admin models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).First(&admin).Error)
	require.Equal(t, "admin@creatorlane.local", admin.Email)
	require.NotEqual(t, "changeme-admin", admin.Password)

	// seeding twice must be idempotent
	require.NoError(t, AutoMigrateAndSeed(db))
	var adminCount int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error)
	require.Equal(t, int64(1), adminCount)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
}
