package car

import (
	"time"

	"github.com/google/uuid"
)

type Car struct {
	ID           uuid.UUID
	Manufacturer string
	Model        string
	Year         int
	BodyType     *string
	Price        *int
	PrimaryUse   *string
	EngineInfo   *string
	Transmission *string
	FuelType     *string
	MPG          *float64
	Description  *string
	Features     []string
	CreatedAt    time.Time
}

type Review struct {
	ID            uuid.UUID
	CarID         uuid.UUID
	Author        string
	Title         string
	Text          string
	Rating        *float64
	ReviewDate    *time.Time
	IsAIGenerated bool
	Pros          []string
	Cons          []string
	CreatedAt     time.Time
}
