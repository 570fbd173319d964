package websocket

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
)

// Client is one connection of a member. Members only listen: whatever they
// send is read and dropped so that pongs and close frames get processed.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	events   chan Event
	MemberID string
}

func NewClient(hub *Hub, conn *websocket.Conn, memberID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		events:   make(chan Event, 64),
		MemberID: memberID,
	}
}

// deliver queues event without blocking the hub. It reports false when the
// client is not keeping up.
func (c *Client) deliver(event Event) bool {
	select {
	case c.events <- event:
		return true
	default:
		return false
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WARN: connection of member %s closed: %v", c.MemberID, err)
			}
			break
		}
	}
}

// WritePump encodes queued events as JSON and keeps the connection alive
// with pings until the hub closes the queue.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case event, ok := <-c.events:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				log.Printf("ERROR: failed to send %s to member %s: %v", event.Type, c.MemberID, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
