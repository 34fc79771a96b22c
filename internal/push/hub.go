// Package push fans catalog changes out to websocket subscribers. Every
// mutation of the catalog reaches every connected client as one JSON
// event; clients that stop reading are dropped rather than allowed to
// stall the feed.
package push

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/atomic"

	"github.com/feastkit/basil/internal/catalog"
)

const (
	// DefaultSendBuffer is the per-client outbound event queue length.
	DefaultSendBuffer = 16

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Hub owns the subscriber set and the broadcast loop. Mount it at a GET
// route; each request upgrades to a websocket subscription.
type Hub struct {
	changes  <-chan catalog.Change
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	gauge   atomic.Int32

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub fed by changes. logger defaults to log.Default.
func NewHub(changes <-chan catalog.Change, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		changes: changes,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the API is served to local tools, not browsers on other origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins the broadcast loop.
func (h *Hub) Start() error {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for {
			select {
			case change, ok := <-h.changes:
				if !ok {
					return
				}
				h.broadcast(change)
			case <-h.ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop disconnects all subscribers and waits for their pumps to exit.
func (h *Hub) Stop() error {
	h.cancel()

	h.mu.Lock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
		h.gauge.Dec()
	}
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}

// Clients reports the number of connected subscribers.
func (h *Hub) Clients() int {
	return int(h.gauge.Load())
}

// ServeHTTP upgrades the request and registers the connection as a
// subscriber until it closes or falls behind.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("push: upgrade %s: %v", r.RemoteAddr, err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, DefaultSendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.gauge.Inc()
	h.mu.Unlock()

	h.wg.Add(2)
	go h.writePump(c)
	go h.readPump(c)
}

// broadcast marshals the change once and queues it to every subscriber.
// A subscriber with a full queue is dropped.
func (h *Hub) broadcast(change catalog.Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		h.logger.Printf("push: marshal event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.logger.Printf("push: client %s lagging, dropped", c.conn.RemoteAddr())
			close(c.send)
			delete(h.clients, c)
			h.gauge.Dec()
		}
	}
}

// remove unregisters a client if it is still registered. Safe to call
// from multiple paths; only the first caller closes the send channel.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	close(c.send)
	delete(h.clients, c)
	h.gauge.Dec()
}

func (h *Hub) writePump(c *client) {
	defer h.wg.Done()
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.conn.Close()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains the connection so close frames and pongs are seen. The
// feed is one-way; inbound data frames are discarded.
func (h *Hub) readPump(c *client) {
	defer h.wg.Done()
	defer h.remove(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
