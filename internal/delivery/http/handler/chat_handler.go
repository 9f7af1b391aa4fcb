package handler

import (
	"errors"
	"strings"

	"astra/internal/delivery/http/middleware"
	"astra/internal/pkg/response"
	"astra/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	CarID     string `json:"car_id"`
	Message   string `json:"message"`
}

func (h *ChatHandler) HandleChat(c fiber.Ctx) error {
	var req chatRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var carID uuid.UUID
	if raw := strings.TrimSpace(req.CarID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid car id", nil, err)
		}
		carID = id
	}

	reply, err := h.uc.Chat(c.Context(), usecase.ChatInput{
		SessionID: req.SessionID,
		CarID:     carID,
		Message:   req.Message,
	})
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", reply)
}

func (h *ChatHandler) HandleMetrics(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "success", h.uc.Metrics())
}

type forceModelRequest struct {
	Model string `json:"model"`
}

func (h *ChatHandler) HandleForceModel(c fiber.Ctx) error {
	var req forceModelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.ForceModel(req.Model); err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "model updated", fiber.Map{"model": req.Model})
}

func mapChatUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrCarNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Car not found", nil, err)
	case errors.Is(err, usecase.ErrChatUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Chat temporarily unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
