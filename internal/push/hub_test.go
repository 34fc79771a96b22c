package push

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/feastkit/basil/internal/catalog"
	"github.com/feastkit/basil/internal/recipe"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newHubFixture wires a live catalog into a hub served over httptest.
func newHubFixture(t *testing.T) (*catalog.Catalog, *Hub, *httptest.Server) {
	t.Helper()
	cat := catalog.New(testLogger())
	changes, cancelWatch := cat.Watch()

	hub := NewHub(changes, testLogger())
	if err := hub.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	srv := httptest.NewServer(hub)

	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
		cancelWatch()
	})
	return cat, hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readChange(t *testing.T, conn *websocket.Conn) catalog.Change {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var change catalog.Change
	if err := json.Unmarshal(payload, &change); err != nil {
		t.Fatalf("unmarshal change: %v", err)
	}
	return change
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestHub_BroadcastsCatalogChanges(t *testing.T) {
	cat, _, srv := newHubFixture(t)
	conn := dial(t, srv)

	created, err := cat.Create(recipe.Draft{Title: "Garlic Bread"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	change := readChange(t, conn)
	if change.Kind != catalog.ChangeAdded {
		t.Errorf("Kind = %q, want %q", change.Kind, catalog.ChangeAdded)
	}
	if change.Recipe.ID != created.ID {
		t.Errorf("Recipe.ID = %q, want %q", change.Recipe.ID, created.ID)
	}

	d := created.Draft()
	d.Description = "crispy"
	if _, err := cat.Update(created.ID, d); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if change := readChange(t, conn); change.Kind != catalog.ChangeUpdated {
		t.Errorf("Kind = %q, want %q", change.Kind, catalog.ChangeUpdated)
	}

	if err := cat.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if change := readChange(t, conn); change.Kind != catalog.ChangeDeleted {
		t.Errorf("Kind = %q, want %q", change.Kind, catalog.ChangeDeleted)
	}
}

func TestHub_FansOutToAllSubscribers(t *testing.T) {
	cat, hub, srv := newHubFixture(t)
	first := dial(t, srv)
	second := dial(t, srv)
	waitFor(t, "both subscribers", func() bool { return hub.Clients() == 2 })

	if _, err := cat.Create(recipe.Draft{Title: "Pesto"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, conn := range []*websocket.Conn{first, second} {
		change := readChange(t, conn)
		if change.Recipe.Title != "Pesto" {
			t.Errorf("Recipe.Title = %q, want Pesto", change.Recipe.Title)
		}
	}
}

func TestHub_GaugeTracksConnections(t *testing.T) {
	_, hub, srv := newHubFixture(t)

	if hub.Clients() != 0 {
		t.Fatalf("Clients = %d before any dial", hub.Clients())
	}

	conn := dial(t, srv)
	waitFor(t, "subscriber registered", func() bool { return hub.Clients() == 1 })

	conn.Close()
	waitFor(t, "subscriber unregistered", func() bool { return hub.Clients() == 0 })
}

func TestHub_LaggingSubscriberIsDropped(t *testing.T) {
	hub := NewHub(make(chan catalog.Change), testLogger())

	serverConns := make(chan *websocket.Conn, 1)
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverConns <- conn
	}))
	defer srv.Close()

	dial(t, srv)
	conn := <-serverConns
	defer conn.Close()

	// register by hand, without pumps, so nothing drains the queue
	c := &client{conn: conn, send: make(chan []byte, DefaultSendBuffer)}
	hub.mu.Lock()
	hub.clients[c] = struct{}{}
	hub.gauge.Inc()
	hub.mu.Unlock()

	change := catalog.Change{Kind: catalog.ChangeAdded, Recipe: recipe.Recipe{ID: "r1", Title: "Stock"}}
	for i := 0; i <= DefaultSendBuffer; i++ {
		hub.broadcast(change)
	}

	if got := hub.Clients(); got != 0 {
		t.Fatalf("Clients = %d after overflow, want 0", got)
	}
	hub.mu.Lock()
	_, still := hub.clients[c]
	hub.mu.Unlock()
	if still {
		t.Fatal("lagging client still registered after overflow")
	}
}

func TestHub_StopDisconnectsSubscribers(t *testing.T) {
	cat := catalog.New(testLogger())
	changes, cancelWatch := cat.Watch()
	defer cancelWatch()

	hub := NewHub(changes, testLogger())
	if err := hub.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitFor(t, "subscriber registered", func() bool { return hub.Clients() == 1 })

	if err := hub.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("read after Stop succeeded, want close")
	}
	if hub.Clients() != 0 {
		t.Errorf("Clients = %d after Stop, want 0", hub.Clients())
	}
}
