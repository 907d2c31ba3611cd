package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/creatorlane/creatorlane/internal/database/testutil"
	"github.com/creatorlane/creatorlane/internal/models"
)

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	handler, err := NewAuthHandler(db, newTestJWT(t))
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	email := uuid.NewString()[:8] + "@example.com"
	user := models.User{
		Email:    email,
		Password: string(hash),
		Role:     models.RoleCreator,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	r := gin.New()
	r.POST("/auth/login", handler.Login)

	// Malformed payload fails validation before hitting the service
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(t, gin.H{"email": "not-an-email", "password": "x"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(t, gin.H{"email": email, "password": "correct-horse"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				ID   string      `json:"id"`
				Role models.Role `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)
	require.Equal(t, user.ID, body.Data.User.ID)
	require.Equal(t, models.RoleCreator, body.Data.User.Role)

	// Wrong password is a 401
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(t, gin.H{"email": email, "password": "nope"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
