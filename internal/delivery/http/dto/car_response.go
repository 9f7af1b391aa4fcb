package dto

import (
	"time"

	"astra/internal/domain/car"

	"github.com/google/uuid"
)

type CarResponse struct {
	ID           uuid.UUID `json:"id"`
	Manufacturer string    `json:"manufacturer"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	BodyType     *string   `json:"body_type,omitempty"`
	Price        *int      `json:"price,omitempty"`
	PrimaryUse   *string   `json:"primary_use,omitempty"`
	EngineInfo   *string   `json:"engine_info,omitempty"`
	Transmission *string   `json:"transmission,omitempty"`
	FuelType     *string   `json:"fuel_type,omitempty"`
	MPG          *float64  `json:"mpg,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Features     []string  `json:"features"`
	CreatedAt    string    `json:"created_at,omitempty"`
}

func FromCar(c car.Car) CarResponse {
	created := ""
	if !c.CreatedAt.IsZero() {
		created = c.CreatedAt.UTC().Format(time.RFC3339)
	}
	features := c.Features
	if features == nil {
		features = []string{}
	}
	return CarResponse{
		ID:           c.ID,
		Manufacturer: c.Manufacturer,
		Model:        c.Model,
		Year:         c.Year,
		BodyType:     c.BodyType,
		Price:        c.Price,
		PrimaryUse:   c.PrimaryUse,
		EngineInfo:   c.EngineInfo,
		Transmission: c.Transmission,
		FuelType:     c.FuelType,
		MPG:          c.MPG,
		Description:  c.Description,
		Features:     features,
		CreatedAt:    created,
	}
}

func FromCars(cars []car.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for _, c := range cars {
		out = append(out, FromCar(c))
	}
	return out
}
