package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/live"
	ucbooking "github.com/reyescuts/booking-api/internal/usecase/booking"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The booking page is served from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveHandler upgrades slot subscriptions. Each connection watches one
// (date, barber) view; the client opens a new connection when the user
// changes either.
type LiveHandler struct {
	hub      *live.Hub
	bookedUC *ucbooking.BookedTimes
	logger   *zap.Logger
}

func NewLiveHandler(hub *live.Hub, bookedUC *ucbooking.BookedTimes, logger *zap.Logger) *LiveHandler {
	return &LiveHandler{hub: hub, bookedUC: bookedUC, logger: logger}
}

func (h *LiveHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_params", "date is required")
		return
	}
	barberID := c.Query("barber_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := h.hub.Subscribe(date, barberID, conn)
	defer func() {
		h.hub.Unsubscribe(date, barberID, sub)
		conn.Close()
	}()

	// Initial snapshot so the client renders without waiting for the
	// first change. Written through the subscription so it cannot race
	// a broadcast on the same connection.
	times, err := h.bookedUC.Execute(c.Request.Context(), date, barberID)
	if err == nil {
		_ = sub.WriteJSON(live.SlotUpdate{
			Date:        date,
			BarberID:    barberID,
			BookedTimes: times,
		})
	}

	// Clients never send anything meaningful; the read loop just
	// detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
