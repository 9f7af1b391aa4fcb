package app

import (
	"fmt"
	"log"
	"strings"

	"astra/internal/config"
	"astra/internal/delivery/http/handler"
	"astra/internal/delivery/http/middleware"
	"astra/internal/delivery/http/routes"
	v1 "astra/internal/delivery/http/routes/v1"
	"astra/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, logger *log.Logger) (*App, error) {
	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, logger)
	registerRoutes(f, container, logger)

	return &App{Fiber: f, Container: container}, nil
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	app, err := New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return app, app.Container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func registerRoutes(app *fiber.App, c *Container, logger *log.Logger) {
	if app == nil || c == nil {
		return
	}

	handlers := v1.Handlers{
		Health:         handler.NewHealthHandler(c.DB, c.Cache, c.Hub, c.UsingFallback),
		Cars:           handler.NewCarsHandler(c.CarUC),
		Reviews:        handler.NewReviewsHandler(c.ReviewUC),
		Insights:       handler.NewInsightsHandler(c.InsightUC),
		Recommendation: handler.NewRecommendationHandler(c.RecommendUC),
		Chat:           handler.NewChatHandler(c.ChatUC),
	}

	routes.NewRegistry(handlers, ws.NewHandler(c.Hub, logger)).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
