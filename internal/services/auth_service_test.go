package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	iauth "github.com/creatorlane/creatorlane/internal/auth"
	"github.com/creatorlane/creatorlane/internal/database/testutil"
	"github.com/creatorlane/creatorlane/internal/models"
	apperrors "github.com/creatorlane/creatorlane/pkg/errors"
)

func TestAuthService_Login(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	jwt, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "auth-service-test", Issuer: "creatorlane"})
	require.NoError(t, err)
	svc, err := NewAuthService(db, jwt)
	require.NoError(t, err)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	email := uuid.NewString()[:8] + "@example.com"
	user := models.User{
		Email:       email,
		Password:    string(hash),
		DisplayName: "Morgan",
		Role:        models.RoleCompany,
		CompanyName: "Morgan Media",
		IsActive:    true,
	}
	require.NoError(t, db.Create(&user).Error)

	// Email lookup is case-insensitive
	result, err := svc.Login(ctx, LoginInput{Email: "  " + strings.ToUpper(email) + " ", Password: "hunter2hunter2"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, user.ID, result.User.ID)
	require.Equal(t, models.RoleCompany, result.User.Role)
	require.NotNil(t, result.User.LastLoginAt)

	claims, err := jwt.ValidateAccessToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, models.RoleCompany, claims.Role)

	// Wrong password and unknown account collapse to the same error
	_, err = svc.Login(ctx, LoginInput{Email: email, Password: "wrong"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "hunter2hunter2"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Deactivated accounts are rejected outright
	require.NoError(t, db.Model(&user).Update("is_active", false).Error)
	_, err = svc.Login(ctx, LoginInput{Email: email, Password: "hunter2hunter2"})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthService_CurrentUser(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	jwt, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "auth-service-test"})
	require.NoError(t, err)
	svc, err := NewAuthService(db, jwt)
	require.NoError(t, err)

	user := models.User{
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: "irrelevant",
		Role:     models.RoleCreator,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	dto, err := svc.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, dto.Email)

	_, err = svc.CurrentUser(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
