package seeder

import (
	"context"
	"fmt"

	"astra/internal/database"
)

type ReviewsSeeder struct{}

func (ReviewsSeeder) Name() string { return "reviews" }

func (ReviewsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "reviews",
		"id", "car_id", "author", "review_title", "review_text", "rating",
		"review_date", "is_ai_generated", "pros", "cons", "created_at",
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

	for _, r := range SampleReviews() {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO reviews (id, car_id, author, review_title, review_text, rating, review_date)
			 SELECT gen_random_uuid(), c.id, $4, $5, $6, $7, now()
			 FROM cars c
			 WHERE c.manufacturer = $1 AND c.model = $2 AND c.year = $3
			   AND NOT EXISTS (
			     SELECT 1 FROM reviews r WHERE r.car_id = c.id AND r.review_title = $5
			   )`,
			r.Manufacturer, r.Model, r.Year, r.Author, r.Title, r.Text, r.Rating,
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
