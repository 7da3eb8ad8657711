// Package stream broadcasts button presses to websocket clients.
//
// A Hub is an http.Handler. Each connection is upgraded to a websocket and
// receives every published Message as a JSON text frame. Publish never
// blocks: a client whose send buffer is full misses the message.
package stream

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dshills/ariabutton/internal/logging"
)

// Message types.
const (
	TypeHello = "hello"
	TypePress = "press"
)

// Message is one JSON frame sent to clients.
type Message struct {
	Type    string    `json:"type"`
	Button  string    `json:"button,omitempty"`
	Gesture string    `json:"gesture,omitempty"`
	Mouse   int       `json:"mouse,omitempty"`
	Count   int       `json:"count,omitempty"`
	Repeat  bool      `json:"repeat,omitempty"`
	Buttons []string  `json:"buttons,omitempty"`
	Time    time.Time `json:"time"`
}

const (
	defaultBuffer = 64
	writeTimeout  = 5 * time.Second
)

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the hub's logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.log = l.WithComponent("stream")
		}
	}
}

// WithBuffer sets the per-client send buffer.
func WithBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithHello sets a function producing the first message each client
// receives.
func WithHello(fn func() Message) Option {
	return func(h *Hub) { h.hello = fn }
}

// Hub fans messages out to connected clients.
type Hub struct {
	upgrader websocket.Upgrader
	log      *logging.Logger
	buffer   int
	hello    func() Message

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	dropped atomic.Uint64
}

type client struct {
	conn *websocket.Conn
	send chan Message
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// NewHub creates a hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log:     logging.Null(),
		buffer:  defaultBuffer,
		clients: make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request and streams messages until the client
// disconnects or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade from %s: %v", r.RemoteAddr, err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan Message, h.buffer),
		done: make(chan struct{}),
	}
	if h.hello != nil {
		c.send <- h.hello()
	}
	if !h.add(c) {
		conn.Close()
		return
	}
	h.log.Debug("client %s connected", r.RemoteAddr)

	go h.readLoop(c)
	h.writeLoop(c)

	h.remove(c)
	conn.Close()
	h.log.Debug("client %s disconnected", r.RemoteAddr)
}

// readLoop discards client frames and ends the connection on error.
func (h *Hub) readLoop(c *client) {
	defer c.close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	for {
		select {
		case <-c.done:
			deadline := time.Now().Add(writeTimeout)
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.close()
				return
			}
		}
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// Publish sends msg to every client. A zero Time is set to now.
func (h *Hub) Publish(msg Message) {
	if msg.Time.IsZero() {
		msg.Time = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.dropped.Add(1)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many messages were skipped for slow clients.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		c.close()
	}
}
