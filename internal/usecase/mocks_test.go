package usecase

import (
	"context"
	"encoding/json"
	"time"

	"astra/internal/domain/car"
	"astra/internal/infrastructure/completion"
	"astra/internal/repository"

	"github.com/google/uuid"
)

type mockCarRepo struct {
	cars       []car.Car
	listErr    error
	getErr     error
	enriched   map[uuid.UUID]repository.Enrichment
	upsertCall int
}

func (m *mockCarRepo) ListCars(_ context.Context, filter repository.CarListFilter) ([]car.Car, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if filter.Offset >= len(m.cars) {
		return []car.Car{}, nil
	}
	out := m.cars[filter.Offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockCarRepo) GetByID(_ context.Context, id uuid.UUID) (car.Car, error) {
	if m.getErr != nil {
		return car.Car{}, m.getErr
	}
	for _, c := range m.cars {
		if c.ID == id {
			return c, nil
		}
	}
	return car.Car{}, repository.ErrCarNotFound
}

func (m *mockCarRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := m.GetByID(ctx, id)
	if err == repository.ErrCarNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *mockCarRepo) Manufacturers(_ context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, c := range m.cars {
		if _, ok := seen[c.Manufacturer]; ok {
			continue
		}
		seen[c.Manufacturer] = struct{}{}
		out = append(out, c.Manufacturer)
	}
	return out, nil
}

func (m *mockCarRepo) UpsertCars(_ context.Context, _ []repository.CarUpsert) error {
	m.upsertCall++
	return nil
}

func (m *mockCarRepo) ApplyEnrichment(_ context.Context, id uuid.UUID, e repository.Enrichment) error {
	if m.enriched == nil {
		m.enriched = make(map[uuid.UUID]repository.Enrichment)
	}
	m.enriched[id] = e
	return nil
}

type mockReviewRepo struct {
	reviews   []car.Review
	inserted  []car.Review
	insertErr error
}

func (m *mockReviewRepo) ListByCarID(_ context.Context, carID uuid.UUID, filter repository.ReviewListFilter) ([]car.Review, error) {
	out := make([]car.Review, 0)
	for _, r := range m.reviews {
		if r.CarID == carID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) Insert(_ context.Context, review car.Review) (car.Review, error) {
	if m.insertErr != nil {
		return car.Review{}, m.insertErr
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now().UTC()
	m.inserted = append(m.inserted, review)
	m.reviews = append(m.reviews, review)
	return review, nil
}

type mockCache struct {
	store       map[string][]byte
	invalidated []string
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func (m *mockCache) InvalidateCar(_ context.Context, carID string) error {
	m.invalidated = append(m.invalidated, carID)
	delete(m.store, InsightsCacheKey(carID))
	return nil
}

type mockCompletion struct {
	reply string
	err   error
	calls int
}

func (m *mockCompletion) Name() string { return "mock" }

func (m *mockCompletion) Complete(_ context.Context, _ completion.Request) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }
