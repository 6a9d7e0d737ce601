package publisher_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/adapters/publisher"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/test/helpers"
)

func dialHub(t *testing.T, hub *publisher.StreamHub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestStreamHub_PushesEventsToSubscribers(t *testing.T) {
	// Arrange
	hub := publisher.NewStreamHub(8)
	conn := dialHub(t, hub)
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	hb := events.NewHeartbeat(helpers.TestStart, 10)

	// Act
	require.NoError(t, hub.Publish(context.Background(), hb))

	// Assert
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg, &body))
	assert.Equal(t, hb.EventID(), body["id"])
	assert.Equal(t, "Heartbeat", body["type"])
}

func TestStreamHub_PublishWithoutSubscribers(t *testing.T) {
	hub := publisher.NewStreamHub(0)

	assert.NoError(t, hub.Publish(context.Background(), events.NewHeartbeat(helpers.TestStart, 10)))
	assert.Equal(t, 0, hub.Subscribers())
}

func TestStreamHub_CloseDisconnectsSubscribers(t *testing.T) {
	// Arrange
	hub := publisher.NewStreamHub(8)
	conn := dialHub(t, hub)
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	// Act
	hub.Close()

	// Assert
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
	assert.Equal(t, 0, hub.Subscribers())
}

func TestStreamHub_ClientDisconnectUnsubscribes(t *testing.T) {
	// Arrange
	hub := publisher.NewStreamHub(8)
	conn := dialHub(t, hub)
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	// Act
	require.NoError(t, conn.Close())

	// Assert
	assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStreamServer_ServesHub(t *testing.T) {
	// Arrange
	hub := publisher.NewStreamHub(8)
	server, err := publisher.NewStreamServer("127.0.0.1", 0, "/events", hub)
	require.NoError(t, err)
	server.Start()
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })

	// Act
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+server.Addr()+"/events", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, hub.Publish(context.Background(), events.NewSystem(helpers.TestStart, events.SystemStarting)))

	// Assert
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), `"action":"starting"`)
}
