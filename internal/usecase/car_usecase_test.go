package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestListCarsCachesResults(t *testing.T) {
	catalog := testCatalog()
	repo := &mockCarRepo{cars: catalog}
	cache := newMockCache()
	u := NewCarUsecase(repo, cache, nil)

	first, err := u.ListCars(context.Background(), CarListParams{})
	if err != nil {
		t.Fatalf("ListCars: %v", err)
	}
	if len(first) != len(catalog) {
		t.Fatalf("got %d cars, want %d", len(first), len(catalog))
	}

	// Break the repo; a cache hit must still serve the list.
	repo.listErr = errors.New("db down")
	second, err := u.ListCars(context.Background(), CarListParams{})
	if err != nil {
		t.Fatalf("ListCars from cache: %v", err)
	}
	if len(second) != len(catalog) {
		t.Fatalf("cached list = %d cars, want %d", len(second), len(catalog))
	}
}

func TestListCarsRejectsBadPagination(t *testing.T) {
	u := NewCarUsecase(&mockCarRepo{}, nil, nil)

	for _, params := range []CarListParams{
		{Limit: -1},
		{Limit: 101},
		{Offset: -5},
	} {
		if _, err := u.ListCars(context.Background(), params); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("params %+v: err = %v, want ErrInvalidInput", params, err)
		}
	}
}

func TestGetCarNotFound(t *testing.T) {
	u := NewCarUsecase(&mockCarRepo{cars: testCatalog()}, nil, nil)

	if _, err := u.GetCar(context.Background(), uuid.New()); !errors.Is(err, ErrCarNotFound) {
		t.Fatalf("err = %v, want ErrCarNotFound", err)
	}
	if _, err := u.GetCar(context.Background(), uuid.Nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("nil id err = %v, want ErrInvalidInput", err)
	}
}

func TestCompareCarsValidation(t *testing.T) {
	catalog := testCatalog()
	u := NewCarUsecase(&mockCarRepo{cars: catalog}, nil, nil)
	ctx := context.Background()

	if _, err := u.CompareCars(ctx, []uuid.UUID{catalog[0].ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("single id err = %v, want ErrInvalidInput", err)
	}
	if _, err := u.CompareCars(ctx, []uuid.UUID{catalog[0].ID, catalog[0].ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("duplicate id err = %v, want ErrInvalidInput", err)
	}
	if _, err := u.CompareCars(ctx, []uuid.UUID{catalog[0].ID, uuid.New()}); !errors.Is(err, ErrCarNotFound) {
		t.Fatalf("unknown id err = %v, want ErrCarNotFound", err)
	}

	cmp, err := u.CompareCars(ctx, []uuid.UUID{catalog[0].ID, catalog[1].ID, catalog[2].ID})
	if err != nil {
		t.Fatalf("CompareCars: %v", err)
	}
	if len(cmp.Cars) != 3 {
		t.Fatalf("comparison has %d cars, want 3", len(cmp.Cars))
	}
}

func TestManufacturersDeduplicated(t *testing.T) {
	catalog := testCatalog()
	catalog = append(catalog, catalogCar("Toyota", "RAV4", 2024, "suv", 32000, "family", "hybrid", "Family crossover."))
	u := NewCarUsecase(&mockCarRepo{cars: catalog}, nil, nil)

	out, err := u.Manufacturers(context.Background())
	if err != nil {
		t.Fatalf("Manufacturers: %v", err)
	}
	seen := map[string]int{}
	for _, m := range out {
		seen[m]++
	}
	if seen["Toyota"] != 1 {
		t.Fatalf("Toyota appears %d times, want 1", seen["Toyota"])
	}
}
