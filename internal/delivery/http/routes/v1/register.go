package v1

import (
	"astra/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health         *handler.HealthHandler
	Cars           *handler.CarsHandler
	Reviews        *handler.ReviewsHandler
	Insights       *handler.InsightsHandler
	Recommendation *handler.RecommendationHandler
	Chat           *handler.ChatHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	cars := r.Group("/cars")
	cars.Get("/", h.Cars.HandleListCars)
	cars.Post("/compare", h.Cars.HandleCompareCars)
	cars.Get("/:car_id", h.Cars.HandleGetCar)
	cars.Get("/:car_id/reviews", h.Reviews.HandleListReviews)
	cars.Post("/:car_id/reviews", h.Reviews.HandleAddReview)
	cars.Get("/:car_id/insights", h.Insights.HandleGetInsights)

	r.Get("/manufacturers", h.Cars.HandleManufacturers)

	r.Post("/reviews/generate", h.Reviews.HandleGenerateReview)
	r.Post("/recommendations", h.Recommendation.HandleRecommend)

	chat := r.Group("/chat")
	chat.Post("/", h.Chat.HandleChat)
	chat.Get("/metrics", h.Chat.HandleMetrics)
	chat.Post("/model", h.Chat.HandleForceModel)
}
