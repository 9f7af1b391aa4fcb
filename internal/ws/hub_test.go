package ws

import (
	"testing"
	"time"
)

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("ClientCount = %d, want %d", h.ClientCount(), want)
}

func TestHubTracksClientCount(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	if h.ClientCount() != 0 {
		t.Fatalf("ClientCount = %d, want 0", h.ClientCount())
	}

	c := NewClient(h, nil)
	h.Register(c)
	waitForClients(t, h, 1)

	h.Unregister(c)
	waitForClients(t, h, 0)
}

func TestHubBroadcastReachesRegisteredClient(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	c := NewClient(h, nil)
	h.Register(c)
	waitForClients(t, h, 1)

	h.BroadcastJSON(CatalogUpdatedEvent{Type: "catalog_updated", Source: "importer", Imported: 3})

	select {
	case msg := <-c.send:
		if len(msg) == 0 {
			t.Fatal("empty broadcast payload")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast never reached the client")
	}
}
