package notifications

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve("user-1", w, r)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.Subscribers("user-1") == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish("user-1", Event{Event: "notification.created", NotificationID: "n-1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, "notification.created", event.Event)
	require.Equal(t, "n-1", event.NotificationID)
}

func TestHubPublishToAbsentUserIsNoop(t *testing.T) {
	hub := NewHub()
	// must not panic or block
	hub.Publish("nobody", Event{Event: "notification.read"})
	require.Zero(t, hub.Subscribers("nobody"))
}

func TestHubRemovesClosedSubscribers(t *testing.T) {
	hub := NewHub()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve("user-2", w, r)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}

	require.Eventually(t, func() bool {
		return hub.Subscribers("user-2") == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return hub.Subscribers("user-2") == 0
	}, time.Second, 10*time.Millisecond)
}
