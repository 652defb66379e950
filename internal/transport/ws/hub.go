package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Observer message types
const (
	MsgMessage      MessageType = "message"
	MsgAnswer       MessageType = "answer"
	MsgAuditFlag    MessageType = "audit_flag"
	MsgSessionEnded MessageType = "session_ended"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages observer WebSocket connections. Researchers attach to a
// session to watch its transcript and extracted answers live; observers
// only receive, they never send.
type Hub struct {
	// sessionID -> connections
	observers map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one observer WebSocket connection
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast to a session's observers
type BroadcastMessage struct {
	SessionID string
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		observers:  make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.observers[conn.SessionID] == nil {
				h.observers[conn.SessionID] = make(map[*Connection]bool)
			}
			h.observers[conn.SessionID][conn] = true
			log.Printf("Observer connected to session %s", conn.SessionID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.observers[conn.SessionID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					log.Printf("Observer disconnected from session %s", conn.SessionID)
				}
				if len(conns) == 0 {
					delete(h.observers, conn.SessionID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.observers[msg.SessionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToObservers sends a message to a session's observers
// (implements service.Broadcaster)
func (h *Hub) BroadcastToObservers(sessionID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
