package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sgpj-client/internal/logging"
	"sgpj-client/internal/models"
)

// MaxConnectionsPerUser caps the sockets one user may hold open.
const MaxConnectionsPerUser = 10

// WriteWait bounds a single socket write so a stalled client cannot hold
// the hub lock.
const WriteWait = 10 * time.Second

// Event types pushed to agenda subscribers.
const (
	EventReminder  = "reminder"
	EventCountdown = "countdown"
)

// Event is the JSON envelope written to every socket.
type Event struct {
	Type     string       `json:"type"`
	At       time.Time    `json:"at"`
	Reminder *models.Task `json:"reminder,omitempty"`
	Payload  any          `json:"payload,omitempty"`
}

// Hub tracks agenda WebSocket connections per user. Writes hold the hub
// lock, so a connection never sees concurrent writers.
type Hub struct {
	connections map[int]map[*websocket.Conn]bool // userID -> set of connections
	mutex       sync.Mutex
	logger      *logging.Logger
	writeWait   time.Duration
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		connections: make(map[int]map[*websocket.Conn]bool),
		logger:      logger,
		writeWait:   WriteWait,
	}
}

// AddConnection registers conn and reports false when the user already
// holds MaxConnectionsPerUser sockets.
func (h *Hub) AddConnection(userID int, conn *websocket.Conn) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, exists := h.connections[userID]; !exists {
		h.connections[userID] = make(map[*websocket.Conn]bool)
	}
	if len(h.connections[userID]) >= MaxConnectionsPerUser {
		h.logger.Warnf("Max connections reached for user %d", userID)
		return false
	}
	h.connections[userID][conn] = true
	h.logger.Infof("Added WebSocket connection for user %d (total: %d)", userID, len(h.connections[userID]))
	return true
}

func (h *Hub) RemoveConnection(userID int, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if conns, exists := h.connections[userID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.connections, userID)
		}
		h.logger.Infof("Removed WebSocket connection for user %d (remaining: %d)", userID, len(conns))
	}
}

func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	n := 0
	for _, conns := range h.connections {
		n += len(conns)
	}
	return n
}

// Send writes one event to a single connection.
func (h *Hub) Send(conn *websocket.Conn, event Event) error {
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.write(conn, message)
}

func (h *Hub) write(conn *websocket.Conn, message []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

// SendToUser writes to every connection of userID. Connections that fail
// are closed and dropped.
func (h *Hub) SendToUser(userID int, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorf("Failed to encode %s event: %v", event.Type, err)
		return
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.sendLocked(userID, message)
}

// Broadcast writes to every registered connection.
func (h *Hub) Broadcast(event Event) int {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorf("Failed to encode %s event: %v", event.Type, err)
		return 0
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	sent := 0
	for userID := range h.connections {
		sent += h.sendLocked(userID, message)
	}
	return sent
}

func (h *Hub) sendLocked(userID int, message []byte) int {
	conns, exists := h.connections[userID]
	if !exists {
		return 0
	}
	sent := 0
	for conn := range conns {
		if err := h.write(conn, message); err != nil {
			h.logger.Errorf("Failed to send WebSocket message to user %d: %v", userID, err)
			delete(conns, conn)
			conn.Close()
			continue
		}
		sent++
	}
	if len(conns) == 0 {
		delete(h.connections, userID)
	}
	return sent
}
