package usecase

import (
	"context"
	"errors"
	"testing"

	"astra/internal/domain/car"

	"github.com/google/uuid"
)

func TestInsightsAggregatesReviews(t *testing.T) {
	catalog := testCatalog()
	cars := &mockCarRepo{cars: catalog}
	reviews := &mockReviewRepo{reviews: []car.Review{
		{ID: uuid.New(), CarID: catalog[0].ID, Text: "Pros: comfortable ride, great fuel economy. Cons: road noise.", Rating: f64Ptr(5)},
		{ID: uuid.New(), CarID: catalog[0].ID, Text: "The engine is powerful and performance is excellent.", Rating: f64Ptr(4)},
		{ID: uuid.New(), CarID: catalog[0].ID, Text: "Unreliable and expensive to fix.", Rating: f64Ptr(1)},
	}}
	u := NewInsightUsecase(cars, reviews, nil, nil)

	insight, err := u.Insights(context.Background(), catalog[0].ID)
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if insight.Sentiment.Positive != 2 || insight.Sentiment.Negative != 1 {
		t.Fatalf("sentiment = %+v", insight.Sentiment)
	}
	if insight.AverageRating == nil {
		t.Fatal("AverageRating is nil")
	}
	if got := *insight.AverageRating; got < 3.2 || got > 3.4 {
		t.Fatalf("AverageRating = %v, want ~3.3", got)
	}
	if len(insight.CommonPros) == 0 {
		t.Fatal("CommonPros empty")
	}
}

func TestInsightsCachesResult(t *testing.T) {
	catalog := testCatalog()
	cars := &mockCarRepo{cars: catalog}
	reviews := &mockReviewRepo{reviews: []car.Review{
		{ID: uuid.New(), CarID: catalog[0].ID, Text: "Comfortable and reliable.", Rating: f64Ptr(4)},
	}}
	cache := newMockCache()
	u := NewInsightUsecase(cars, reviews, cache, nil)

	if _, err := u.Insights(context.Background(), catalog[0].ID); err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if _, ok := cache.store[InsightsCacheKey(catalog[0].ID.String())]; !ok {
		t.Fatal("insight was not cached")
	}

	// Second call must not depend on the repositories.
	cars.getErr = errors.New("db down")
	if _, err := u.Insights(context.Background(), catalog[0].ID); err != nil {
		t.Fatalf("cached Insights: %v", err)
	}
}

func TestInsightsUnknownCar(t *testing.T) {
	u := NewInsightUsecase(&mockCarRepo{cars: testCatalog()}, &mockReviewRepo{}, nil, nil)

	if _, err := u.Insights(context.Background(), uuid.New()); !errors.Is(err, ErrCarNotFound) {
		t.Fatalf("err = %v, want ErrCarNotFound", err)
	}
	if _, err := u.Insights(context.Background(), uuid.Nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("nil id err = %v, want ErrInvalidInput", err)
	}
}
