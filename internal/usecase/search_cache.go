package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	InvalidateCar(ctx context.Context, carID string) error
}

type carsListCacheKeyInput struct {
	Query        string `json:"query"`
	Manufacturer string `json:"manufacturer"`
	Limit        int    `json:"limit"`
	Offset       int    `json:"offset"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func CarsListCacheKey(params CarListParams) string {
	in := carsListCacheKeyInput{
		Query:        normalizeSearchValue(params.Query),
		Manufacturer: normalizeSearchValue(params.Manufacturer),
		Limit:        params.Limit,
		Offset:       params.Offset,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "cars:list:" + hex.EncodeToString(sum[:])
}

func InsightsCacheKey(carID string) string {
	return "insights:" + strings.TrimSpace(carID)
}
