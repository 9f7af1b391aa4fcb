package handler

import (
	"errors"
	"strings"

	"astra/internal/delivery/http/dto"
	"astra/internal/delivery/http/middleware"
	"astra/internal/pkg/response"
	"astra/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ReviewsHandler struct {
	uc usecase.ReviewUsecase
}

func NewReviewsHandler(uc usecase.ReviewUsecase) *ReviewsHandler {
	return &ReviewsHandler{uc: uc}
}

func (h *ReviewsHandler) HandleListReviews(c fiber.Ctx) error {
	carID, err := parseCarID(c)
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	reviews, err := h.uc.ListReviews(c.Context(), usecase.ReviewListParams{
		CarID:     carID,
		Sentiment: c.Query("sentiment"),
		Limit:     limit,
	})
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.FromReviews(reviews))
}

type addReviewRequest struct {
	Author string  `json:"author"`
	Title  string  `json:"title"`
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
}

func (h *ReviewsHandler) HandleAddReview(c fiber.Ctx) error {
	carID, err := parseCarID(c)
	if err != nil {
		return err
	}

	var req addReviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	saved, err := h.uc.AddReview(c.Context(), usecase.AddReviewInput{
		CarID:  carID,
		Author: req.Author,
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "review created", dto.FromReview(saved))
}

type generateReviewRequest struct {
	CarID  string  `json:"car_id"`
	Rating float64 `json:"rating"`
	Focus  string  `json:"focus"`
}

func (h *ReviewsHandler) HandleGenerateReview(c fiber.Ctx) error {
	var req generateReviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	carID, err := uuid.Parse(strings.TrimSpace(req.CarID))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid car id", nil, err)
	}

	saved, err := h.uc.GenerateReview(c.Context(), usecase.GenerateReviewInput{
		CarID:  carID,
		Rating: req.Rating,
		Focus:  req.Focus,
	})
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "review generated", dto.FromReview(saved))
}

func mapReviewUsecaseError(err error) error {
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
