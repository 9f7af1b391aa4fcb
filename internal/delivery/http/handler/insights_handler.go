package handler

import (
	"errors"

	"astra/internal/delivery/http/middleware"
	"astra/internal/pkg/response"
	"astra/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type InsightsHandler struct {
	uc usecase.InsightUsecase
}

func NewInsightsHandler(uc usecase.InsightUsecase) *InsightsHandler {
	return &InsightsHandler{uc: uc}
}

func (h *InsightsHandler) HandleGetInsights(c fiber.Ctx) error {
	carID, err := parseCarID(c)
	if err != nil {
		return err
	}

	insight, err := h.uc.Insights(c.Context(), carID)
	if err != nil {
		return mapInsightUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", insight)
}

func mapInsightUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrCarNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Car not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
