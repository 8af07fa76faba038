package broadcast

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/smeflowhq/leadbot-platform/pkg/logging"
)

const (
	writeWait      = 5 * time.Second
	sendBufferSize = 8
)

// signal is the only frame the hub ever sends. It carries no payload beyond
// "the lead list is stale, re-fetch it".
type signal struct {
	Type string `json:"type"`
}

var leadsChanged = signal{Type: "leads_changed"}

// subscriber owns one dashboard connection. All writes go through the
// buffered send channel and its write loop, so a stalled socket never holds
// up Publish.
type subscriber struct {
	conn *websocket.Conn
	send chan signal
}

// Hub pushes lead-list refresh signals to connected dashboards. Publish is
// non-blocking; subscribers that cannot keep up are dropped.
type Hub struct {
	logger   *logging.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// NewHub creates a broadcast hub.
func NewHub(logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  512,
			WriteBufferSize: 512,
			// Dashboards are served from arbitrary demo origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// ServeHTTP upgrades the connection and registers it for refresh signals.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("broadcast: upgrade failed", "error", err)
		return
	}

	sub := &subscriber{
		conn: conn,
		send: make(chan signal, sendBufferSize),
	}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("broadcast: subscriber connected", "remote", conn.RemoteAddr().String())

	go h.writeLoop(sub)
	go h.readLoop(sub)
}

// writeLoop drains the send channel onto the socket. It exits when the
// channel is closed by removeLocked or when a write fails.
func (h *Hub) writeLoop(sub *subscriber) {
	for sig := range sub.send {
		_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteJSON(sig); err != nil {
			h.logger.Warn("broadcast: write failed, dropping subscriber", "error", err)
			h.drop(sub)
			return
		}
	}
}

// readLoop drains inbound frames so pings and closes are processed;
// subscribers have nothing to say to us.
func (h *Hub) readLoop(sub *subscriber) {
	defer h.drop(sub)
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish queues one leads_changed signal per subscriber without blocking on
// any of them. A subscriber whose buffer is already full is evicted.
func (h *Hub) Publish() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.send <- leadsChanged:
		default:
			h.logger.Warn("broadcast: dropping slow subscriber",
				"remote", sub.conn.RemoteAddr().String())
			h.removeLocked(sub)
		}
	}
}

// Subscribers returns the number of connected dashboards.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		h.removeLocked(sub)
	}
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

// removeLocked unregisters a subscriber and tears down its connection.
// Closing the send channel ends the write loop; Publish only sends to
// subscribers still in the map, under the same lock, so it can never hit a
// closed channel. Callers must hold mu.
func (h *Hub) removeLocked(sub *subscriber) {
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.send)
	_ = sub.conn.Close()
}
