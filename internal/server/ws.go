package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/esglens/internal/events"
)

const wsWriteTimeout = 5 * time.Second

// Hub fans out bus events to connected websocket clients.
type Hub struct {
	bus    *events.Bus
	log    zerolog.Logger
	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub creates a websocket hub.
func NewHub(bus *events.Bus, log zerolog.Logger) *Hub {
	return &Hub{
		bus:   bus,
		log:   log.With().Str("component", "ws_hub").Logger(),
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Start begins forwarding bus events to connected clients.
func (h *Hub) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.done = make(chan struct{})

	eventCh, unsubscribe := h.bus.Subscribe()
	go func() {
		defer close(h.done)
		defer unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-eventCh:
				if !ok {
					return
				}
				h.broadcast(ctx, event)
			}
		}
	}()
}

// Stop terminates the forwarder and closes all client connections.
func (h *Hub) Stop() {
	if h.cancel == nil {
		return
	}
	h.cancel()
	<-h.done

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	h.conns = make(map[*websocket.Conn]struct{})
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Cross-origin access is governed by the CORS middleware for the
		// REST API; the event stream carries no sensitive state.
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket accept failed")
		return
	}

	h.register(conn)
	defer h.unregister(conn)

	h.log.Debug().Int("clients", h.clientCount()).Msg("WebSocket client connected")

	// Drain client frames so pings are answered and closure is noticed.
	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			break
		}
	}
}

// broadcast writes an event to every connected client, dropping clients
// whose writes fail.
func (h *Hub) broadcast(ctx context.Context, event events.Event) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
		err := wsjson.Write(writeCtx, conn, event)
		cancel()
		if err != nil {
			h.log.Debug().Err(err).Msg("WebSocket write failed, dropping client")
			h.unregister(conn)
			_ = conn.Close(websocket.StatusPolicyViolation, "write failed")
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
