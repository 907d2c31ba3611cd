package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	iauth "github.com/creatorlane/creatorlane/internal/auth"
	"github.com/creatorlane/creatorlane/internal/models"
	apperrors "github.com/creatorlane/creatorlane/pkg/errors"
)

// UserDTO is the API-friendly user payload.
type UserDTO struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Role        models.Role `json:"role"`
	CompanyName string      `json:"company_name,omitempty"`
	IsActive    bool        `json:"is_active"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
}

// LoginInput carries local login credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult bundles the issued token with the authenticated user.
type LoginResult struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// AuthService handles local credential login and user lookups.
type AuthService struct {
	db  *gorm.DB
	jwt *iauth.JWTService
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, jwt *iauth.JWTService) (*AuthService, error) {
	if db == nil {
		return nil, errors.New("auth service: db is required")
	}
	if jwt == nil {
		return nil, errors.New("auth service: jwt service is required")
	}
	return &AuthService{db: db, jwt: jwt}, nil
}

// Login verifies credentials and issues an access token. Unknown accounts and
// wrong passwords both map to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	ctx = ensureContext(ctx)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: load user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(iauth.AccessTokenInput{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("auth service: issue token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("auth service: record login: %w", err)
	}
	user.LastLoginAt = &now

	return &LoginResult{Token: token, User: mapUser(user)}, nil
}

// CurrentUser returns the profile of an authenticated user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*UserDTO, error) {
	ctx = ensureContext(ctx)

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("auth service: load user: %w", err)
	}

	dto := mapUser(user)
	return &dto, nil
}

func mapUser(row models.User) UserDTO {
	return UserDTO{
		ID:          row.ID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		Role:        row.Role,
		CompanyName: row.CompanyName,
		IsActive:    row.IsActive,
		LastLoginAt: row.LastLoginAt,
	}
}
