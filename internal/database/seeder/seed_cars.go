package seeder

import (
	"context"
	"fmt"

	"astra/internal/database"
)

type CarsSeeder struct{}

func (CarsSeeder) Name() string { return "cars" }

func (CarsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "cars",
		"id", "manufacturer", "model", "year", "body_type", "price",
		"primary_use", "engine_info", "transmission", "fuel_type", "mpg",
		"description", "features", "created_at",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, c := range SampleCars() {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO cars
			   (id, manufacturer, model, year, body_type, price, primary_use,
			    engine_info, transmission, fuel_type, mpg, description, features)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 ON CONFLICT (manufacturer, model, year) DO NOTHING`,
			c.Manufacturer, c.Model, c.Year, c.BodyType, c.Price, c.PrimaryUse,
			c.EngineInfo, c.Transmission, c.FuelType, c.MPG, c.Description, c.Features,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
