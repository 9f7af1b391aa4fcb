package dto

import (
	"time"

	"astra/internal/domain/car"

	"github.com/google/uuid"
)

type ReviewResponse struct {
	ID            uuid.UUID `json:"id"`
	CarID         uuid.UUID `json:"car_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title,omitempty"`
	Text          string    `json:"text"`
	Rating        *float64  `json:"rating,omitempty"`
	ReviewDate    string    `json:"review_date,omitempty"`
	IsAIGenerated bool      `json:"is_ai_generated"`
	Pros          []string  `json:"pros,omitempty"`
	Cons          []string  `json:"cons,omitempty"`
}

func FromReview(r car.Review) ReviewResponse {
	date := ""
	if r.ReviewDate != nil && !r.ReviewDate.IsZero() {
		date = r.ReviewDate.UTC().Format(time.RFC3339)
	}
	return ReviewResponse{
		ID:            r.ID,
		CarID:         r.CarID,
		Author:        r.Author,
		Title:         r.Title,
		Text:          r.Text,
		Rating:        r.Rating,
		ReviewDate:    date,
		IsAIGenerated: r.IsAIGenerated,
		Pros:          r.Pros,
		Cons:          r.Cons,
	}
}

func FromReviews(reviews []car.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, FromReview(r))
	}
	return out
}
