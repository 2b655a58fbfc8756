package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// dialSubscriber stands up a server that subscribes its side of the
// connection to the hub and returns the client side.
func dialSubscriber(t *testing.T, hub *Hub, date, barberID string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	subscribed := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Subscribe(date, barberID, ws)
		close(subscribed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	<-subscribed
	return client
}

// Two bookings for the same date can land at once, so broadcasts must be
// safe to fire from concurrent goroutines against one connection.
func TestBroadcastConcurrentWriters(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := dialSubscriber(t, hub, "2026-03-10", "b1")

	const writers = 4
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Broadcast(SlotUpdate{
					Date:        "2026-03-10",
					BarberID:    "b1",
					BookedTimes: []string{"2:00 PM"},
				})
			}
		}()
	}
	wg.Wait()

	// Every frame must arrive intact; corrupted interleaved writes would
	// fail the read.
	for i := 0; i < writers*perWriter; i++ {
		var update SlotUpdate
		if err := client.ReadJSON(&update); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if update.Date != "2026-03-10" || update.BarberID != "b1" {
			t.Fatalf("unexpected update: %+v", update)
		}
	}
}

func TestUnsubscribeRemovesTopic(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := dialSubscriber(t, hub, "2026-03-10", "")

	if !hub.HasSubscribers("2026-03-10", "") {
		t.Fatal("expected a subscriber after dial")
	}

	hub.mu.Lock()
	var sub *Conn
	for c := range hub.subs[topic{Date: "2026-03-10"}] {
		sub = c
	}
	hub.mu.Unlock()

	hub.Unsubscribe("2026-03-10", "", sub)
	if hub.HasSubscribers("2026-03-10", "") {
		t.Error("subscriber still registered after unsubscribe")
	}
	client.Close()
}
