package repository

import (
	"context"
	"strings"

	"astra/internal/database"
	"astra/internal/domain/car"

	"github.com/google/uuid"
)

type ReviewListFilter struct {
	// Sentiment is "positive", "negative", or "" for all reviews.
	Sentiment string
	Limit     int
}

type ReviewRepository interface {
	ListByCarID(ctx context.Context, carID uuid.UUID, filter ReviewListFilter) ([]car.Review, error)
	Insert(ctx context.Context, review car.Review) (car.Review, error)
}

type PostgresReviewRepository struct {
	db database.DB
}

func NewPostgresReviewRepository(db database.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

const reviewColumns = `id, car_id, author, review_title, review_text,
	rating, review_date, is_ai_generated, pros, cons, created_at`

func (r *PostgresReviewRepository) ListByCarID(ctx context.Context, carID uuid.UUID, filter ReviewListFilter) ([]car.Review, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	where := `car_id = $1`
	switch strings.ToLower(strings.TrimSpace(filter.Sentiment)) {
	case "positive":
		where += ` AND rating >= 4`
	case "negative":
		where += ` AND rating <= 2`
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+`
		 FROM reviews
		 WHERE `+where+`
		 ORDER BY rating DESC NULLS LAST, review_date DESC NULLS LAST, created_at DESC
		 LIMIT $2`,
		carID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]car.Review, 0)
	for rows.Next() {
		var rv car.Review
		err := rows.Scan(
			&rv.ID, &rv.CarID, &rv.Author, &rv.Title, &rv.Text,
			&rv.Rating, &rv.ReviewDate, &rv.IsAIGenerated, &rv.Pros, &rv.Cons, &rv.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresReviewRepository) Insert(ctx context.Context, review car.Review) (car.Review, error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO reviews
		   (id, car_id, author, review_title, review_text, rating,
		    review_date, is_ai_generated, pros, cons)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+reviewColumns,
		review.ID, review.CarID, review.Author, review.Title, review.Text,
		review.Rating, review.ReviewDate, review.IsAIGenerated,
		featuresOrEmpty(review.Pros), featuresOrEmpty(review.Cons),
	)

	var rv car.Review
	err := row.Scan(
		&rv.ID, &rv.CarID, &rv.Author, &rv.Title, &rv.Text,
		&rv.Rating, &rv.ReviewDate, &rv.IsAIGenerated, &rv.Pros, &rv.Cons, &rv.CreatedAt,
	)
	if err != nil {
		return car.Review{}, err
	}
	return rv, nil
}
