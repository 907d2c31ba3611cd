package database

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Niche{},
		&models.Offer{},
		&models.Review{},
		&models.ContentFlag{},
		&models.RetainerContract{},
		&models.PromoVideo{},
		&models.Notification{},
	)
}

// SeedData populates the default niche catalogue and the bootstrap admin account.
func SeedData(db *gorm.DB) error {
	niches := []models.Niche{
		{BaseModel: models.BaseModel{ID: "niche-fitness"}, Name: "Fitness", Slug: "fitness", Position: 0, Active: true},
		{BaseModel: models.BaseModel{ID: "niche-beauty"}, Name: "Beauty", Slug: "beauty", Position: 1, Active: true},
		{BaseModel: models.BaseModel{ID: "niche-tech"}, Name: "Tech", Slug: "tech", Position: 2, Active: true},
		{BaseModel: models.BaseModel{ID: "niche-finance"}, Name: "Finance", Slug: "finance", Position: 3, Active: true},
	}

	for _, niche := range niches {
		if err := db.Where(models.Niche{Slug: niche.Slug}).Attrs(niche).FirstOrCreate(&models.Niche{}).Error; err != nil {
			return fmt.Errorf("seed niche %s: %w", niche.Slug, err)
		}
	}

	return seedAdminUser(db)
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := strings.TrimSpace(os.Getenv("CREATORLANE_ADMIN_PASSWORD"))
	if password == "" {
		password = "changeme-admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Email:       "admin@creatorlane.local",
		Password:    string(hash),
		DisplayName: "Platform Admin",
		Role:        models.RoleAdmin,
		IsActive:    true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
