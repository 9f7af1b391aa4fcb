package routes

import (
	v1 "astra/internal/delivery/http/routes/v1"
	"astra/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	handlers v1.Handlers
	wsh      *ws.Handler
}

func NewRegistry(handlers v1.Handlers, wsh *ws.Handler) *Registry {
	return &Registry{handlers: handlers, wsh: wsh}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", r.handlers.Health.HandleHealth)
	app.Get("/health/db", r.handlers.Health.HandleDBHealth)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.handlers)

	if r.wsh != nil {
		app.Get("/ws", r.wsh.HandleEventsWS)
	}
}
