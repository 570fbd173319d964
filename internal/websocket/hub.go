package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Hub struct {
	clients    map[string]map[*Client]bool
	mu         sync.RWMutex
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.MemberID]; !ok {
		h.clients[client.MemberID] = make(map[*Client]bool)
	}
	h.clients[client.MemberID][client] = true
	log.Printf("Client for member %s registered", client.MemberID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if userClients, ok := h.clients[client.MemberID]; ok {
		if _, ok := userClients[client]; ok {
			delete(userClients, client)
			close(client.events)
			if len(userClients) == 0 {
				delete(h.clients, client.MemberID)
			}
			log.Printf("Client for member %s unregistered", client.MemberID)
		}
	}
}

// Event is what connected members receive, JSON encoded.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const EventMembershipRequested = "membership_request.created"

// PublishEvent queues event on every connected client of the member.
func (h *Hub) PublishEvent(memberID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[memberID] {
		if !client.deliver(event) {
			log.Printf("WARN: Client for member %s send buffer is full. Dropping %s.", memberID, event.Type)
		}
	}
}

// Notify sends event to every connected client of each member. The payload
// must be JSON encodable.
func (h *Hub) Notify(memberIDs []string, event Event) error {
	if _, err := json.Marshal(event.Payload); err != nil {
		return err
	}
	for _, id := range memberIDs {
		h.PublishEvent(id, event)
	}
	return nil
}

// Connected reports whether the member has at least one open client.
func (h *Hub) Connected(memberID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[memberID]) > 0
}
