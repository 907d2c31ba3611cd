package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/creatorlane/creatorlane/internal/database/testutil"
	"github.com/creatorlane/creatorlane/internal/models"
	"github.com/creatorlane/creatorlane/internal/notifications"
	"github.com/creatorlane/creatorlane/internal/services"
)

func TestNotificationHandler_GetRendersViewAndMarksRead(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	handler, err := NewNotificationHandler(db, nil, nil, nil)
	require.NoError(t, err)

	userID := uuid.NewString()
	created, err := handler.Service().Create(context.Background(), services.CreateNotificationInput{
		UserID:  userID,
		Type:    "content_flagged",
		Title:   "Content flagged",
		Message: "A review you wrote was reported",
		Metadata: map[string]any{
			"reviewStatus": "removed",
		},
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/notifications/:id", asUser(userID, models.RoleCreator), handler.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/"+created.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			IsRead bool               `json:"is_read"`
			View   notifications.View `json:"view"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Data.IsRead)
	require.Equal(t, notifications.KindContentFlag, body.Data.View.Kind)
	require.NotNil(t, body.Data.View.Flag)
	require.False(t, body.Data.View.Flag.AdminView)
	require.False(t, body.Data.View.Flag.Pending)
	require.Equal(t, "red", body.Data.View.Flag.StatusColor)

	// Someone else's notification is a 404
	w = httptest.NewRecorder()
	other := gin.New()
	other.GET("/notifications/:id", asUser(uuid.NewString(), models.RoleCreator), handler.Get)
	other.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/"+created.ID, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationHandler_ListAndUnreadCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	handler, err := NewNotificationHandler(db, nil, nil, nil)
	require.NoError(t, err)

	userID := uuid.NewString()
	for i := 0; i < 2; i++ {
		_, err := handler.Service().Create(context.Background(), services.CreateNotificationInput{
			UserID: userID,
			Type:   "new_message",
			Title:  "hello",
		})
		require.NoError(t, err)
	}

	r := gin.New()
	auth := asUser(userID, models.RoleCreator)
	r.GET("/notifications", auth, handler.List)
	r.GET("/notifications/unread-count", auth, handler.UnreadCount)
	r.POST("/notifications/mark-all-read", auth, handler.MarkAllRead)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?limit=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []services.NotificationDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notifications/mark-all-read", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/unread-count", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		Data struct {
			Unread int `json:"unread"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	require.Zero(t, count.Data.Unread)
}

func TestNotificationHandler_StreamRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	jwt := newTestJWT(t)
	handler, err := NewNotificationHandler(db, notifications.NewHub(), jwt, nil)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/notifications/stream", handler.Stream)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/stream", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/stream?token=bogus", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
