package handler

import (
	"errors"

	"astra/internal/delivery/http/dto"
	"astra/internal/delivery/http/middleware"
	"astra/internal/domain/recommend"
	"astra/internal/pkg/response"
	"astra/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

type recommendationRequest struct {
	Answers struct {
		Budget     string   `json:"budget"`
		BodyType   string   `json:"body_type"`
		PrimaryUse string   `json:"primary_use"`
		FuelType   string   `json:"fuel_type"`
		Features   []string `json:"features"`
	} `json:"answers"`
	Strategy string `json:"strategy"`
}

func (h *RecommendationHandler) HandleRecommend(c fiber.Ctx) error {
	var req recommendationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec, err := h.uc.Recommend(c.Context(), usecase.RecommendationInput{
		Answers: recommend.Answers{
			Budget:     req.Answers.Budget,
			BodyType:   req.Answers.BodyType,
			PrimaryUse: req.Answers.PrimaryUse,
			FuelType:   req.Answers.FuelType,
			Features:   req.Answers.Features,
		},
		Strategy: req.Strategy,
	})
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.FromRecommendation(rec))
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNoCarsAvailable):
		return middleware.NewAppError(fiber.StatusNotFound, "no suitable cars found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
