package web

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/shoots/internal/models"
	"github.com/KirkDiggler/shoots/internal/services/messaging"
	"github.com/gorilla/websocket"
)

// Message types sent to websocket clients besides game event types
const (
	MessageTypeSnapshot  = "snapshot"
	MessageTypeGameEnded = "game_ended"
	MessageTypePong      = "pong"
)

const (
	// sendBuffer is how many messages a client may fall behind before it is dropped
	sendBuffer = 64

	writeWait = 10 * time.Second
)

// Message is the JSON frame pushed to websocket clients
type Message struct {
	Type         string       `json:"type"`
	GameID       string       `json:"gameId,omitempty"`
	PlayerID     int          `json:"playerId,omitempty"`
	Game         *models.Game `json:"game,omitempty"`
	Announcement string       `json:"announcement,omitempty"`
}

// Client is one websocket connection watching a game
type Client struct {
	GameID string
	Conn   *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// Hub fans game events out to the websocket clients watching each game
type Hub struct {
	messagingService messaging.Service

	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

// NewHub creates an empty hub
func NewHub(messagingService messaging.Service) *Hub {
	return &Hub{
		messagingService: messagingService,
		clients:          make(map[string]map[*Client]struct{}),
	}
}

// Register adds a connection and starts its writer
func (h *Hub) Register(gameID string, conn *websocket.Conn) *Client {
	client := &Client{
		GameID: gameID,
		Conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	if h.clients[gameID] == nil {
		h.clients[gameID] = make(map[*Client]struct{})
	}
	h.clients[gameID][client] = struct{}{}
	h.mu.Unlock()

	go client.writePump()

	log.Printf("Client registered for game %s", gameID)
	return client
}

// Unregister removes a client and stops its writer
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if clients, ok := h.clients[client.GameID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			log.Printf("Client unregistered from game %s", client.GameID)
		}
		if len(clients) == 0 {
			delete(h.clients, client.GameID)
		}
	}
	h.mu.Unlock()

	client.close()
}

// ClientCount returns the number of clients watching a game
func (h *Hub) ClientCount(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[gameID])
}

// OnGameEvent forwards an event to every client of its game
func (h *Hub) OnGameEvent(ctx context.Context, event *models.GameEvent) {
	if event == nil {
		return
	}

	message := &Message{
		Type:     string(event.Type),
		GameID:   event.GameID,
		PlayerID: event.PlayerID,
		Game:     event.Game,
	}

	output, err := h.messagingService.GetEventMessage(ctx, &messaging.GetEventMessageInput{
		Event: event,
	})
	if err != nil {
		log.Printf("Error getting announcement for %s: %v", event.Type, err)
	} else {
		message.Announcement = output.Message
	}

	h.Broadcast(message)
}

// Broadcast sends a message to every client of message.GameID. Clients
// that cannot keep up are dropped.
func (h *Hub) Broadcast(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to encode %s message: %v", message.Type, err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[message.GameID]))
	for client := range h.clients[message.GameID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if !client.enqueue(data) {
			log.Printf("Dropping slow client of game %s", client.GameID)
			h.Unregister(client)
		}
	}
}

// Send queues a message for a single client
func (h *Hub) Send(client *Client, message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to encode %s message: %v", message.Type, err)
		return
	}

	if !client.enqueue(data) {
		h.Unregister(client)
	}
}

// CloseGame tells a game's clients it ended and disconnects them
func (h *Hub) CloseGame(gameID string) {
	h.Broadcast(&Message{
		Type:   MessageTypeGameEnded,
		GameID: gameID,
	})

	h.mu.Lock()
	clients := h.clients[gameID]
	delete(h.clients, gameID)
	h.mu.Unlock()

	for client := range clients {
		client.close()
	}
}

// enqueue reports false when the client's buffer is full. A closed client
// silently discards messages.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// writePump is the only writer of the connection. It drains queued
// messages, then sends a close frame once the client is closed.
func (c *Client) writePump() {
	defer c.Conn.Close()

	for data := range c.send {
		c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}

	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
