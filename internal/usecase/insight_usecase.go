package usecase

import (
	"context"
	"errors"
	"log"

	"astra/internal/domain/reviewinsight"
	"astra/internal/repository"

	"github.com/google/uuid"
)

type InsightUsecase interface {
	Insights(ctx context.Context, carID uuid.UUID) (reviewinsight.Insight, error)
}

type Insights struct {
	cars    repository.CarRepository
	reviews repository.ReviewRepository
	cache   SearchCache
	logger  *log.Logger
}

func NewInsightUsecase(cars repository.CarRepository, reviews repository.ReviewRepository, cache SearchCache, logger *log.Logger) *Insights {
	return &Insights{cars: cars, reviews: reviews, cache: cache, logger: logger}
}

// Insights aggregates a car's reviews into sentiment counts, pros/cons, and
// per-category scores. Results are cached until the next review lands.
func (u *Insights) Insights(ctx context.Context, carID uuid.UUID) (reviewinsight.Insight, error) {
	if carID == uuid.Nil {
		return reviewinsight.Insight{}, ErrInvalidInput
	}

	key := InsightsCacheKey(carID.String())
	if u.cache != nil {
		var cached reviewinsight.Insight
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	exists, err := u.cars.ExistsByID(ctx, carID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Insights] existence check failed car_id=%s: %v", carID, err)
		}
		return reviewinsight.Insight{}, ErrInternal
	}
	if !exists {
		return reviewinsight.Insight{}, ErrCarNotFound
	}

	stored, err := u.reviews.ListByCarID(ctx, carID, repository.ReviewListFilter{Limit: 100})
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return reviewinsight.Insight{}, ErrCarNotFound
		}
		if u.logger != nil {
			u.logger.Printf("[Insights] review fetch failed car_id=%s: %v", carID, err)
		}
		return reviewinsight.Insight{}, ErrInternal
	}

	in := make([]reviewinsight.Review, 0, len(stored))
	for _, r := range stored {
		in = append(in, reviewinsight.Review{Text: r.Text, Rating: r.Rating})
	}
	insight := reviewinsight.Analyze(in)

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, insight, 0)
	}
	return insight, nil
}

var _ InsightUsecase = (*Insights)(nil)
