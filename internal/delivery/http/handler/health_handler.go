package handler

import (
	"context"

	"astra/internal/database"
	"astra/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type cachePinger interface {
	Ping(ctx context.Context) error
}

type clientCounter interface {
	ClientCount() int
}

type HealthHandler struct {
	db            database.DB
	cache         cachePinger
	hub           clientCounter
	usingFallback bool
}

func NewHealthHandler(db database.DB, cache cachePinger, hub clientCounter, usingFallback bool) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, hub: hub, usingFallback: usingFallback}
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "ok", fiber.Map{"status": "healthy"})
}

// HandleDBHealth reports storage status. The service keeps serving from the
// in-memory catalog when PostgreSQL is down, so this stays 200 with
// using_fallback set rather than failing the check.
func (h *HealthHandler) HandleDBHealth(c fiber.Ctx) error {
	dbStatus := "unavailable"
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err == nil {
			dbStatus = "connected"
		}
	}

	cacheStatus := "unavailable"
	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err == nil {
			cacheStatus = "connected"
		}
	}

	wsClients := 0
	if h.hub != nil {
		wsClients = h.hub.ClientCount()
	}

	return response.Success(c, fiber.StatusOK, "ok", fiber.Map{
		"database":       dbStatus,
		"cache":          cacheStatus,
		"ws_clients":     wsClients,
		"using_fallback": h.usingFallback,
	})
}
