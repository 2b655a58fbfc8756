package live

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type topic struct {
	Date     string
	BarberID string
}

// SlotUpdate is the message pushed to subscribers: the full set of
// occupied times for their (date, barber) view. Snapshots, not diffs, so
// a client can always replace its local state wholesale.
type SlotUpdate struct {
	Date        string   `json:"date"`
	BarberID    string   `json:"barber_id,omitempty"`
	BookedTimes []string `json:"booked_times"`
}

// Conn wraps a websocket connection with a write lock. The underlying
// connection supports only one concurrent writer, but updates arrive
// from whichever goroutine changed a slot, racing the handler's own
// snapshot writes.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *Conn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

// Hub tracks open slot subscriptions. One connection belongs to exactly
// one topic; the client reconnects with new query params when the user
// changes date or barber.
type Hub struct {
	mu     sync.Mutex
	subs   map[topic]map[*Conn]bool
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[topic]map[*Conn]bool),
		logger: logger,
	}
}

func (h *Hub) Subscribe(date, barberID string, ws *websocket.Conn) *Conn {
	t := topic{Date: date, BarberID: barberID}
	conn := &Conn{ws: ws}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[t] == nil {
		h.subs[t] = make(map[*Conn]bool)
	}
	h.subs[t][conn] = true

	return conn
}

func (h *Hub) Unsubscribe(date, barberID string, conn *Conn) {
	t := topic{Date: date, BarberID: barberID}

	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs[t], conn)
	if len(h.subs[t]) == 0 {
		delete(h.subs, t)
	}
}

// Broadcast writes the update to every subscriber of its topic. A failed
// write drops that connection; the client is expected to reconnect.
func (h *Hub) Broadcast(update SlotUpdate) {
	t := topic{Date: update.Date, BarberID: update.BarberID}

	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.subs[t]))
	for conn := range h.subs[t] {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(update); err != nil {
			h.logger.Debug("dropping dead slot subscriber",
				zap.String("date", update.Date),
				zap.Error(err),
			)
			conn.ws.Close()
			h.Unsubscribe(update.Date, update.BarberID, conn)
		}
	}
}

// HasSubscribers lets publishers skip snapshot queries nobody would see.
func (h *Hub) HasSubscribers(date, barberID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic{Date: date, BarberID: barberID}]) > 0
}
