package handler

import (
	"errors"
	"strconv"

	"astra/internal/delivery/http/dto"
	"astra/internal/delivery/http/middleware"
	"astra/internal/pkg/response"
	"astra/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CarsHandler struct {
	uc usecase.CarUsecase
}

func NewCarsHandler(uc usecase.CarUsecase) *CarsHandler {
	return &CarsHandler{uc: uc}
}

func (h *CarsHandler) HandleListCars(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	cars, err := h.uc.ListCars(c.Context(), usecase.CarListParams{
		Query:        c.Query("q"),
		Manufacturer: c.Query("manufacturer"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return mapCarUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.FromCars(cars))
}

func (h *CarsHandler) HandleGetCar(c fiber.Ctx) error {
	id, err := parseCarID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetCar(c.Context(), id)
	if err != nil {
		return mapCarUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.FromCar(out))
}

type compareCarsRequest struct {
	CarIDs []string `json:"car_ids"`
}

func (h *CarsHandler) HandleCompareCars(c fiber.Ctx) error {
	var req compareCarsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ids := make([]uuid.UUID, 0, len(req.CarIDs))
	for _, raw := range req.CarIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid car id", nil, err)
		}
		ids = append(ids, id)
	}

	cmp, err := h.uc.CompareCars(c.Context(), ids)
	if err != nil {
		return mapCarUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{"cars": dto.FromCars(cmp.Cars)})
}

func (h *CarsHandler) HandleManufacturers(c fiber.Ctx) error {
	out, err := h.uc.Manufacturers(c.Context())
	if err != nil {
		return mapCarUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func parseCarID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("car_id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid car id", nil, err)
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapCarUsecaseError(err error) error {
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
