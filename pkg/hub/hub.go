package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
)

const queueSize = 256

// Option configures a Hub.
type Option func(*Hub)

// WithReplay makes the hub send the most recent message to each new client,
// so a freshly opened dashboard shows the current state immediately.
func WithReplay() Option {
	return func(h *Hub) {
		h.replay = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

// Hub fans one stream (status, logs or camera) out to its subscribers.
// Run owns the subscriber set; other goroutines talk to it over channels.
type Hub struct {
	name   string
	logger *slog.Logger
	replay bool

	queue      chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu      sync.RWMutex
	clients map[*Client]struct{}
	latest  *Message // replay only, owned by Run

	running atomic.Bool
	dropped atomic.Int64
}

// New creates a hub. Messages are only delivered once Run is called.
func New(name string, opts ...Option) *Hub {
	h := &Hub{
		name:       name,
		logger:     slog.Default(),
		queue:      make(chan Message, queueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "hub", "hub", name)
	return h
}

// Run delivers messages until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	h.running.Store(true)
	defer h.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.remove(c, "client disconnected")
		case m := <-h.queue:
			h.fanout(m)
		}
	}
}

func (h *Hub) stop() {
	h.running.Store(false)
	h.mu.Lock()
	for c := range h.clients {
		close(c.send)
	}
	clear(h.clients)
	h.mu.Unlock()
	close(h.done)
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	if h.replay && h.latest != nil {
		c.send <- *h.latest
	}
	h.logger.Debug("client connected", "clients", n)
}

func (h *Hub) remove(c *Client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Debug(reason, "clients", n)
	}
}

func (h *Hub) fanout(m Message) {
	if h.replay {
		h.latest = &m
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- m:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.remove(c, "dropped slow client")
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Broadcast queues m for every client. It never blocks; when the queue is
// full the message is counted as dropped.
func (h *Hub) Broadcast(m Message) {
	select {
	case h.queue <- m:
	default:
		h.dropped.Add(1)
		h.logger.Debug("queue full, dropping message")
	}
}

// BroadcastJSON encodes v and broadcasts it.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(JSON(data))
	return nil
}

// BroadcastBinary broadcasts a JPEG frame.
func (h *Hub) BroadcastBinary(jpeg []byte) {
	h.Broadcast(Frame(jpeg))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many broadcasts were discarded.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// IsRunning reports whether Run is active.
func (h *Hub) IsRunning() bool {
	return h.running.Load()
}
