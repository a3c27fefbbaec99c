package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		NewClient(hub, conn, testLogger()).Start()
	}))
	t.Cleanup(server.Close)

	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	return decoded
}

func TestHubBroadcastReachesAllObservers(t *testing.T) {
	hub, server := startTestHub(t)

	first := dial(t, server)
	second := dial(t, server)
	time.Sleep(100 * time.Millisecond)

	hub.Publish(domain.NewTicketsUpdateEvent())

	for _, conn := range []*websocket.Conn{first, second} {
		event := readEvent(t, conn)
		assert.Equal(t, "tickets_update", event["event"])
	}
}

func TestHubMessageEventPayload(t *testing.T) {
	hub, server := startTestHub(t)

	conn := dial(t, server)
	time.Sleep(100 * time.Millisecond)

	ticketID := uuid.New()
	msg := &domain.Message{
		ID:         uuid.New(),
		TicketID:   ticketID,
		SenderType: domain.SenderVisitor,
		Content:    "hello",
		CreatedAt:  time.Now().UTC(),
	}
	hub.Publish(domain.NewMessageEvent(ticketID, msg))

	event := readEvent(t, conn)
	assert.Equal(t, "message_new", event["event"])
	assert.Equal(t, ticketID.String(), event["ticketId"])

	inner, ok := event["message"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "hello", inner["content"])
}

func TestHubSurvivesDisconnectedObserver(t *testing.T) {
	hub, server := startTestHub(t)

	gone := dial(t, server)
	stays := dial(t, server)
	time.Sleep(100 * time.Millisecond)

	gone.Close()
	time.Sleep(100 * time.Millisecond)

	hub.Publish(domain.NewTicketsUpdateEvent())

	event := readEvent(t, stays)
	assert.Equal(t, "tickets_update", event["event"])
}
