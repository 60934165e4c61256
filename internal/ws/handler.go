package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin is enforced by middleware.WebSocketCORSCheck
	},
}

// Client represents a connected WebSocket client watching one board.
type Client struct {
	conn       *websocket.Conn
	clientID   string
	boardToken string
	send       chan []byte
}

// Hub maintains the set of active clients grouped by board session.
type Hub struct {
	clients    map[string]*Client            // clientID -> Client
	boardRooms map[string]map[string]*Client // boardToken -> clientID -> Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		boardRooms: make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// BroadcastToBoard sends a message to every client watching a board.
func (h *Hub) BroadcastToBoard(boardToken string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, exists := h.boardRooms[boardToken]; exists {
		for _, client := range room {
			select {
			case client.send <- data:
			default:
				// Client's buffer is full; frames are disposable.
				log.Printf("[WS] Send buffer full for client %s on board %s, dropping message", client.clientID, boardToken)
			}
		}
	}
}

// CloseBoard disconnects every client of a torn-down board session.
func (h *Hub) CloseBoard(boardToken string) {
	h.mu.Lock()
	room, exists := h.boardRooms[boardToken]
	if exists {
		delete(h.boardRooms, boardToken)
	}
	var closing []*Client
	for _, client := range room {
		delete(h.clients, client.clientID)
		closing = append(closing, client)
	}
	h.mu.Unlock()

	for _, client := range closing {
		client.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "board closed"),
			time.Now().Add(5*time.Second))
		client.conn.Close()
	}
	if exists {
		log.Printf("[WS] Board %s closed, %d clients disconnected", boardToken, len(closing))
	}
}

// Run processes register/unregister events.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if oldClient, exists := h.clients[client.clientID]; exists {
				log.Printf("[WS] Client %s reconnecting - closing old connection", client.clientID)
				oldClient.conn.Close()
				delete(h.clients, client.clientID)
				if room, ok := h.boardRooms[oldClient.boardToken]; ok {
					delete(room, oldClient.clientID)
				}
			}
			h.clients[client.clientID] = client
			if _, exists := h.boardRooms[client.boardToken]; !exists {
				h.boardRooms[client.boardToken] = make(map[string]*Client)
			}
			h.boardRooms[client.boardToken][client.clientID] = client
			h.mu.Unlock()
			log.Printf("[WS] Client %s connected to board %s", client.clientID, client.boardToken)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, exists := h.clients[client.clientID]; exists {
				delete(h.clients, client.clientID)
				if room, ok := h.boardRooms[client.boardToken]; ok {
					delete(room, client.clientID)
					if len(room) == 0 {
						delete(h.boardRooms, client.boardToken)
					}
				}
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("[WS] Client %s disconnected from board %s", client.clientID, client.boardToken)
		}
	}
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Channel closed: connection is being replaced or cleaned up.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error for client %s: %v", c.clientID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("WebSocket ping error for client %s: %v", c.clientID, err)
				return
			}
		}
	}
}

// readPump drains the connection so pings/pongs and close frames are
// processed; board watching is one-directional.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
