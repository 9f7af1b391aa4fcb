package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"astra/internal/domain/car"
	"astra/internal/repository"

	"github.com/google/uuid"
)

type CarListParams struct {
	Query        string
	Manufacturer string
	Limit        int
	Offset       int
}

type Comparison struct {
	Cars []car.Car `json:"cars"`
}

type CarUsecase interface {
	ListCars(ctx context.Context, params CarListParams) ([]car.Car, error)
	GetCar(ctx context.Context, id uuid.UUID) (car.Car, error)
	CompareCars(ctx context.Context, ids []uuid.UUID) (Comparison, error)
	Manufacturers(ctx context.Context) ([]string, error)
}

type Cars struct {
	repo   repository.CarRepository
	cache  SearchCache
	logger *log.Logger
}

func NewCarUsecase(repo repository.CarRepository, cache SearchCache, logger *log.Logger) *Cars {
	return &Cars{repo: repo, cache: cache, logger: logger}
}

func (u *Cars) ListCars(ctx context.Context, params CarListParams) ([]car.Car, error) {
	if params.Limit < 0 || params.Limit > 100 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}
	if params.Limit == 0 {
		params.Limit = 50
	}

	key := CarsListCacheKey(params)
	if u.cache != nil {
		var cached []car.Car
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	cars, err := u.repo.ListCars(ctx, repository.CarListFilter{
		Query:        params.Query,
		Manufacturer: params.Manufacturer,
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Cars] list failed: %v", err)
		}
		return nil, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, cars, 0)
	}
	return cars, nil
}

func (u *Cars) GetCar(ctx context.Context, id uuid.UUID) (car.Car, error) {
	if id == uuid.Nil {
		return car.Car{}, ErrInvalidInput
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return car.Car{}, ErrCarNotFound
		}
		if u.logger != nil {
			u.logger.Printf("[Cars] get failed id=%s: %v", id, err)
		}
		return car.Car{}, ErrInternal
	}
	return c, nil
}

// CompareCars fetches two to four cars for a side-by-side view. A single
// unknown ID fails the whole comparison.
func (u *Cars) CompareCars(ctx context.Context, ids []uuid.UUID) (Comparison, error) {
	if len(ids) < 2 || len(ids) > 4 {
		return Comparison{}, ErrInvalidInput
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	cars := make([]car.Car, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return Comparison{}, ErrInvalidInput
		}
		if _, dup := seen[id]; dup {
			return Comparison{}, ErrInvalidInput
		}
		seen[id] = struct{}{}

		c, err := u.GetCar(ctx, id)
		if err != nil {
			return Comparison{}, err
		}
		cars = append(cars, c)
	}
	return Comparison{Cars: cars}, nil
}

func (u *Cars) Manufacturers(ctx context.Context) ([]string, error) {
	out, err := u.repo.Manufacturers(ctx)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Cars] manufacturers failed: %v", err)
		}
		return nil, ErrInternal
	}

	cleaned := make([]string, 0, len(out))
	for _, m := range out {
		if m = strings.TrimSpace(m); m != "" {
			cleaned = append(cleaned, m)
		}
	}
	return cleaned, nil
}

var _ CarUsecase = (*Cars)(nil)
