package ws

import (
	"strings"
	"sync/atomic"
	"time"
)

type ReviewAddedEvent struct {
	Type        string `json:"type"`
	CarID       string `json:"car_id"`
	AIGenerated bool   `json:"ai_generated"`
	Timestamp   string `json:"timestamp"`
}

type CatalogUpdatedEvent struct {
	Type      string `json:"type"`
	Source    string `json:"source"`
	Imported  int    `json:"imported"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyReviewAdded pushes a review event to connected clients so car detail
// views can refresh their insight panes.
func NotifyReviewAdded(carID string, aiGenerated bool) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	carID = strings.TrimSpace(carID)
	if carID == "" {
		return
	}

	h.BroadcastJSON(ReviewAddedEvent{
		Type:        "review_added",
		CarID:       carID,
		AIGenerated: aiGenerated,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

// NotifyCatalogUpdated announces an import run so listings can refetch.
func NotifyCatalogUpdated(source string, imported int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	h.BroadcastJSON(CatalogUpdatedEvent{
		Type:      "catalog_updated",
		Source:    strings.TrimSpace(source),
		Imported:  imported,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
