package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/FamilyQT/initializers"
)

// Tables that publish change events.
const (
	TableQtRecords    = "qt_records"
	TablePrayers      = "prayers"
	TableAttendance   = "attendance"
	TableMembers      = "family_member"
	TableSystemStatus = "system_status"
)

const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// ChangeEvent only names what changed; subscribers reload the whole table.
type ChangeEvent struct {
	Table string    `json:"table"`
	Event string    `json:"event"`
	At    time.Time `json:"at"`
}

// clientSendBuffer bounds how far a client may fall behind before it is dropped.
const clientSendBuffer = 16

type messageWriter interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type WSClient struct {
	ID    string
	Table string // empty subscribes to every table
	Conn  messageWriter

	send chan []byte
	done chan struct{}
}

func NewWSClient(table string, conn messageWriter) *WSClient {
	return &WSClient{
		ID:    uuid.NewString(),
		Table: table,
		Conn:  conn,
		send:  make(chan []byte, clientSendBuffer),
		done:  make(chan struct{}),
	}
}

type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[*WSClient]struct{})}
}

// Register adds the client and starts its writer. The writer owns all data
// writes to the connection.
func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	go h.writeLoop(c)
	initializers.Log.Debugw("realtime client registered", "client", c.ID, "table", c.Table)
}

func (h *RealtimeHub) writeLoop(c *WSClient) {
	defer close(c.done)
	for msg := range c.send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			initializers.Log.Infow("dropping realtime client", "client", c.ID, "error", err)
			h.detach(c)
			return
		}
	}
}

// detach removes the client, stops its writer and closes the connection.
// It never waits on the writer.
func (h *RealtimeHub) detach(c *WSClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	if ok {
		_ = c.Conn.Close()
	}
}

// Unregister detaches a registered client and waits until its writer has
// flushed queued messages and exited.
func (h *RealtimeHub) Unregister(c *WSClient) {
	h.detach(c)
	<-c.done
}

func (h *RealtimeHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues the event for every subscriber of its table without
// blocking. A client whose queue is full is dropped.
func (h *RealtimeHub) Broadcast(evt ChangeEvent) {
	msg, err := json.Marshal(evt)
	if err != nil {
		return
	}

	var lagging []*WSClient
	h.mu.RLock()
	for c := range h.clients {
		if c.Table != "" && c.Table != evt.Table {
			continue
		}
		select {
		case c.send <- msg:
		default:
			lagging = append(lagging, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range lagging {
		initializers.Log.Infow("dropping lagging realtime client", "client", c.ID)
		h.detach(c)
	}
}

var hub = NewRealtimeHub()

func GetRealtimeHub() *RealtimeHub {
	return hub
}

// PublishChange is safe to call from any handler after a successful write.
func PublishChange(table, event string) {
	hub.Broadcast(ChangeEvent{Table: table, Event: event, At: time.Now()})
}
