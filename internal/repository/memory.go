package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"astra/internal/database/seeder"
	"astra/internal/domain/car"

	"github.com/google/uuid"
)

// MemoryCarRepository is the fallback catalog used when PostgreSQL cannot be
// reached at startup. It serves the bundled sample set so the matcher and the
// read endpoints keep working; writes are kept in process memory only.
type MemoryCarRepository struct {
	mu   sync.RWMutex
	cars map[uuid.UUID]car.Car
}

func NewMemoryCarRepository() *MemoryCarRepository {
	r := &MemoryCarRepository{cars: make(map[uuid.UUID]car.Car)}
	now := time.Now().UTC()
	for _, s := range seeder.SampleCars() {
		c := sampleToCar(s)
		c.CreatedAt = now
		r.cars[c.ID] = c
	}
	return r
}

// sampleKeyID derives a stable UUID from a car's natural key so the fallback
// catalog hands out the same IDs across restarts.
func sampleKeyID(manufacturer, model string, year int) uuid.UUID {
	key := fmt.Sprintf("%s/%s/%d", strings.ToLower(manufacturer), strings.ToLower(model), year)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

func sampleToCar(s seeder.SampleCar) car.Car {
	bodyType := s.BodyType
	price := s.Price
	primaryUse := s.PrimaryUse
	engineInfo := s.EngineInfo
	transmission := s.Transmission
	fuelType := s.FuelType
	mpg := s.MPG
	description := s.Description
	return car.Car{
		ID:           sampleKeyID(s.Manufacturer, s.Model, s.Year),
		Manufacturer: s.Manufacturer,
		Model:        s.Model,
		Year:         s.Year,
		BodyType:     &bodyType,
		Price:        &price,
		PrimaryUse:   &primaryUse,
		EngineInfo:   &engineInfo,
		Transmission: &transmission,
		FuelType:     &fuelType,
		MPG:          &mpg,
		Description:  &description,
		Features:     append([]string(nil), s.Features...),
	}
}

func (r *MemoryCarRepository) ListCars(_ context.Context, filter CarListFilter) ([]car.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	manufacturer := strings.ToLower(strings.TrimSpace(filter.Manufacturer))

	out := make([]car.Car, 0, len(r.cars))
	for _, c := range r.cars {
		if manufacturer != "" && strings.ToLower(c.Manufacturer) != manufacturer {
			continue
		}
		if q != "" && !carMatchesQuery(c, q) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Manufacturer != out[j].Manufacturer {
			return out[i].Manufacturer < out[j].Manufacturer
		}
		if out[i].Model != out[j].Model {
			return out[i].Model < out[j].Model
		}
		return out[i].Year > out[j].Year
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []car.Car{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func carMatchesQuery(c car.Car, q string) bool {
	for _, field := range []string{
		c.Manufacturer, c.Model,
		deref(c.BodyType), deref(c.EngineInfo), deref(c.FuelType),
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *MemoryCarRepository) GetByID(_ context.Context, id uuid.UUID) (car.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cars[id]
	if !ok {
		return car.Car{}, ErrCarNotFound
	}
	return c, nil
}

func (r *MemoryCarRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.cars[id]
	return ok, nil
}

func (r *MemoryCarRepository) Manufacturers(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, c := range r.cars {
		if _, ok := seen[c.Manufacturer]; ok {
			continue
		}
		seen[c.Manufacturer] = struct{}{}
		out = append(out, c.Manufacturer)
	}
	sort.Strings(out)
	return out, nil
}

func (r *MemoryCarRepository) UpsertCars(_ context.Context, cars []CarUpsert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, u := range cars {
		if strings.TrimSpace(u.Manufacturer) == "" || strings.TrimSpace(u.Model) == "" || u.Year == 0 {
			continue
		}
		id := sampleKeyID(u.Manufacturer, u.Model, u.Year)
		existing, ok := r.cars[id]
		if !ok {
			existing = car.Car{
				ID:           id,
				Manufacturer: u.Manufacturer,
				Model:        u.Model,
				Year:         u.Year,
				CreatedAt:    now,
			}
		}
		if u.BodyType != nil {
			existing.BodyType = u.BodyType
		}
		if u.Price != nil {
			existing.Price = u.Price
		}
		if u.EngineInfo != nil {
			existing.EngineInfo = u.EngineInfo
		}
		if u.Transmission != nil {
			existing.Transmission = u.Transmission
		}
		if u.FuelType != nil {
			existing.FuelType = u.FuelType
		}
		if u.Description != nil {
			existing.Description = u.Description
		}
		if len(u.Features) > 0 {
			existing.Features = append([]string(nil), u.Features...)
		}
		r.cars[id] = existing
	}
	return nil
}

func (r *MemoryCarRepository) ApplyEnrichment(_ context.Context, id uuid.UUID, e Enrichment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cars[id]
	if !ok {
		return ErrCarNotFound
	}
	if c.BodyType == nil {
		c.BodyType = e.BodyType
	}
	if c.Price == nil {
		c.Price = e.Price
	}
	if c.PrimaryUse == nil {
		c.PrimaryUse = e.PrimaryUse
	}
	if c.Description == nil {
		c.Description = e.Description
	}
	if len(c.Features) == 0 && len(e.Features) > 0 {
		c.Features = append([]string(nil), e.Features...)
	}
	r.cars[id] = c
	return nil
}

// MemoryReviewRepository pairs with MemoryCarRepository during fallback
// operation. Seed reviews are attached to their sample cars by natural key.
type MemoryReviewRepository struct {
	mu      sync.RWMutex
	reviews map[uuid.UUID][]car.Review
}

func NewMemoryReviewRepository() *MemoryReviewRepository {
	r := &MemoryReviewRepository{reviews: make(map[uuid.UUID][]car.Review)}
	now := time.Now().UTC()
	for _, s := range seeder.SampleReviews() {
		rating := s.Rating
		date := now
		rv := car.Review{
			ID:         uuid.New(),
			CarID:      sampleKeyID(s.Manufacturer, s.Model, s.Year),
			Author:     s.Author,
			Title:      s.Title,
			Text:       s.Text,
			Rating:     &rating,
			ReviewDate: &date,
			CreatedAt:  now,
		}
		r.reviews[rv.CarID] = append(r.reviews[rv.CarID], rv)
	}
	return r
}

func (r *MemoryReviewRepository) ListByCarID(_ context.Context, carID uuid.UUID, filter ReviewListFilter) ([]car.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sentiment := strings.ToLower(strings.TrimSpace(filter.Sentiment))
	out := make([]car.Review, 0)
	for _, rv := range r.reviews[carID] {
		switch sentiment {
		case "positive":
			if rv.Rating == nil || *rv.Rating < 4 {
				continue
			}
		case "negative":
			if rv.Rating == nil || *rv.Rating > 2 {
				continue
			}
		}
		out = append(out, rv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := ratingOrZero(out[i].Rating), ratingOrZero(out[j].Rating)
		if ri != rj {
			return ri > rj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func ratingOrZero(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}

func (r *MemoryReviewRepository) Insert(_ context.Context, review car.Review) (car.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now().UTC()
	r.reviews[review.CarID] = append(r.reviews[review.CarID], review)
	return review, nil
}
