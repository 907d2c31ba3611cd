package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/creatorlane/creatorlane/internal/models"
)

func newTestService(t *testing.T, clock func() time.Time) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:         "unit-test-signing-secret",
		Issuer:         "creatorlane-test",
		AccessTokenTTL: time.Minute,
		Clock:          clock,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	svc := newTestService(t, nil)

	token, err := svc.GenerateAccessToken(AccessTokenInput{UserID: "user-1", Role: models.RoleCompany})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, models.RoleCompany, claims.Role)
	require.Equal(t, "creatorlane-test", claims.Issuer)
}

func TestGenerateRejectsUnknownRole(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.GenerateAccessToken(AccessTokenInput{UserID: "user-1", Role: "superuser"})
	require.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-time.Hour)
	issuer := newTestService(t, func() time.Time { return issuedAt })

	token, err := issuer.GenerateAccessToken(AccessTokenInput{UserID: "user-1", Role: models.RoleCreator})
	require.NoError(t, err)

	verifier := newTestService(t, nil)
	_, err = verifier.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	other, err := NewJWTService(JWTConfig{Secret: "unit-test-signing-secret", Issuer: "someone-else"})
	require.NoError(t, err)

	token, err := other.GenerateAccessToken(AccessTokenInput{UserID: "user-1", Role: models.RoleAdmin})
	require.NoError(t, err)

	svc := newTestService(t, nil)
	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)
}
