package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func serveHub(t *testing.T, hub *Hub, memberID string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, memberID)
		hub.Register <- client
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.Connected(memberID) }, time.Second, 10*time.Millisecond)
	return conn
}

func TestHub_NotifyReachesMember(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := serveHub(t, hub, "anna-id")

	err := hub.Notify([]string{"anna-id", "offline-id"}, Event{
		Type:    EventMembershipRequested,
		Payload: map[string]string{"item_id": "lesson"},
	})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, EventMembershipRequested, got.Type)
	require.Equal(t, "lesson", got.Payload["item_id"])
}

func TestHub_UnregisterOnClose(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := serveHub(t, hub, "bob-id")
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return !hub.Connected("bob-id") }, time.Second, 10*time.Millisecond)
}

func TestHub_NotifyRejectsUnencodablePayload(t *testing.T) {
	hub := NewHub()
	err := hub.Notify([]string{"anna-id"}, Event{Type: EventMembershipRequested, Payload: make(chan int)})
	require.Error(t, err)
}

func TestHub_SlowClientDropsEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, "cedric-id")
	hub.Register <- client
	require.Eventually(t, func() bool { return hub.Connected("cedric-id") }, time.Second, 10*time.Millisecond)

	for i := 0; i < cap(client.events)+10; i++ {
		hub.PublishEvent("cedric-id", Event{Type: EventMembershipRequested})
	}
	require.Len(t, client.events, cap(client.events))

	hub.Unregister <- client
	require.Eventually(t, func() bool { return !hub.Connected("cedric-id") }, time.Second, 10*time.Millisecond)
	for range client.events {
	}
}
