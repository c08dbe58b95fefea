package push

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

type client struct {
	conn   *websocket.Conn
	userID string
	send   chan []byte
	once   sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub keeps websocket sessions grouped in per-user rooms.
type Hub struct {
	logger *zap.Logger

	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		rooms:  make(map[string]map[*client]struct{}),
	}
}

// Sessions returns the number of live sessions in a user's room.
func (h *Hub) Sessions(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

func (h *Hub) join(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.userID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[c.userID] = room
	}
	room[c] = struct{}{}
}

func (h *Hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[c.userID]; ok {
		if _, present := room[c]; present {
			delete(room, c)
			c.close()
		}
		if len(room) == 0 {
			delete(h.rooms, c.userID)
		}
	}
}

// Publish queues the message on every session of the user. Sessions whose
// buffer is full are dropped.
func (h *Hub) Publish(_ context.Context, userID, event string, payload any) error {
	data, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("push: marshal %s: %w", event, err)
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.rooms[userID] {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow websocket session", zap.String("userId", userID))
		h.leave(c)
	}
	return nil
}

// Serve registers conn in the user's room and blocks until the session ends.
func (h *Hub) Serve(conn *websocket.Conn, userID string) {
	c := &client{
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
	h.join(c)
	h.logger.Debug("websocket session joined", zap.String("userId", userID))

	go h.writePump(c)
	h.readPump(c)
}

// readPump handles client messages. The only client event is "join", kept for
// clients that announce their room after connecting; it must name the
// authenticated user.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.leave(c)
		h.logger.Debug("websocket session left", zap.String("userId", c.userID))
	}()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg struct {
			Event string `json:"event"`
			Data  string `json:"data"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Event == "join" && msg.Data != c.userID {
			h.logger.Warn("websocket join for another user ignored",
				zap.String("userId", c.userID),
				zap.String("requested", msg.Data),
			)
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.leave(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.leave(c)
				return
			}
		}
	}
}
