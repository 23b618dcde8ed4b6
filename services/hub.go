package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vitor-paiva/comanda-live/models"
)

// sendBufferSize bounds the per-client outbound queue. Broadcasts are
// fire-and-forget: a client that cannot drain its queue loses messages
// rather than stalling the sender.
const sendBufferSize = 64

// Client is one connected websocket peer
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan models.Envelope
	once sync.Once
}

// Send queues a single named event for this client only
func (c *Client) Send(event string, payload any) {
	env, err := envelope(event, payload)
	if err != nil {
		log.Printf("Failed to encode %s event for client %s: %v", event, c.ID, err)
		return
	}
	select {
	case c.send <- env:
	default:
		log.Printf("Dropping %s event for slow client %s", event, c.ID)
	}
}

// WritePump drains the send queue onto the connection. It runs in its own
// goroutine per client and exits when the hub closes the queue. A write
// failure means the peer is gone: the client leaves the broadcast set
// immediately and the connection is closed, which also unblocks the read
// loop so the session can finish tearing down.
func (c *Client) WritePump() {
	for env := range c.send {
		if err := c.conn.WriteJSON(env); err != nil {
			log.Printf("Write to client %s failed: %v", c.ID, err)
			c.hub.remove(c)
			c.conn.Close()
			return
		}
	}
}

// Hub is the set of currently connected clients. Every broadcast goes to
// every client uniformly; there is no per-client filtering.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Register wraps a new connection in a Client, assigns it an id and adds
// it to the broadcast set. The caller is expected to start WritePump.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	client := &Client{
		ID:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan models.Envelope, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	return client
}

// Unregister removes the client and shuts down its write pump
func (h *Hub) Unregister(client *Client) {
	h.remove(client)
	client.once.Do(func() { close(client.send) })
}

// remove takes the client out of the broadcast set. The send queue stays
// open: only Unregister closes it, once the session's own goroutines are
// done enqueueing.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	delete(h.clients, client.ID)
	h.mu.Unlock()
}

// Broadcast queues a named event for every connected client
func (h *Hub) Broadcast(event string, payload any) {
	env, err := envelope(event, payload)
	if err != nil {
		log.Printf("Failed to encode %s broadcast: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.send <- env:
		default:
			log.Printf("Dropping %s broadcast for slow client %s", event, client.ID)
		}
	}
}

// ClientCount returns how many clients are currently connected
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// envelope encodes a payload into the wire envelope
func envelope(event string, payload any) (models.Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return models.Envelope{}, err
	}
	return models.Envelope{Event: event, Data: data}, nil
}
