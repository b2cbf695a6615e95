package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Forum event types pushed to subscribers.
const (
	EventThreadCreated = "thread.created"
	EventThreadDeleted = "thread.deleted"
	EventReplyCreated  = "reply.created"
	EventReplyDeleted  = "reply.deleted"
)

// AllThreads is the topic of subscribers that receive every forum event.
const AllThreads int64 = 0

// Event is a forum change pushed to connected clients as one JSON frame
type Event struct {
	Type string `json:"type"`

	// Zero when the thread is not known, e.g. for a deleted reply
	ThreadID int64 `json:"thread_id,omitempty"`
	ReplyID  int64 `json:"reply_id,omitempty"`

	// The created thread or reply; empty for deletions
	Data interface{} `json:"data,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Hub tracks live feed subscribers by thread and fans out forum events
type Hub struct {
	// Registered clients keyed by the thread they follow, AllThreads for the global feed
	clients map[int64]map[*Client]struct{}
	mu      sync.RWMutex

	broadcast  chan Event
	register   chan *Client
	unregister chan *Client

	// Closed once Run returns
	done chan struct{}

	logger zerolog.Logger
}

// NewHub creates a Hub. Nothing is delivered until Run is started.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]struct{}),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Publish queues an event for delivery. It never blocks the caller: when the
// queue is full the event is dropped.
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("type", event.Type).Int64("threadID", event.ThreadID).Msg("Live feed queue full, event dropped")
	}
}

// Done is closed once Run has returned and every client was disconnected
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ClientsCount returns the number of subscribers following threadID
func (h *Hub) ClientsCount(threadID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[threadID])
}

// join hands a client to Run. It reports false when the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.threadID]; !ok {
		h.clients[client.threadID] = make(map[*Client]struct{})
	}
	h.clients[client.threadID][client] = struct{}{}

	h.logger.Info().
		Int64("threadID", client.threadID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked must be called with mu held
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.threadID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.threadID)
	}

	h.logger.Info().
		Int64("threadID", client.threadID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client unregistered")
}

// broadcastEvent delivers to the global feed and to the followers of the
// event's thread. Clients whose buffer is full are dropped.
func (h *Hub) broadcastEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", event.Type).Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	topics := []int64{AllThreads}
	if event.ThreadID != AllThreads {
		topics = append(topics, event.ThreadID)
	}

	delivered := 0
	for _, topic := range topics {
		for client := range h.clients[topic] {
			select {
			case client.send <- data:
				delivered++
			default:
				h.logger.Warn().Int64("threadID", topic).Msg("Slow live feed client dropped")
				h.removeLocked(client)
			}
		}
	}

	h.logger.Debug().
		Str("type", event.Type).
		Int64("threadID", event.ThreadID).
		Int("clientCount", delivered).
		Msg("Event broadcasted")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}
