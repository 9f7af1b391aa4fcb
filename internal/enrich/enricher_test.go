package enrich

import (
	"context"
	"errors"
	"testing"

	"astra/internal/domain/car"
	"astra/internal/infrastructure/completion"
	"astra/internal/repository"

	"github.com/google/uuid"
)

type fakeCarRepo struct {
	repository.CarRepository

	cars    []car.Car
	applied map[uuid.UUID]repository.Enrichment
}

func (f *fakeCarRepo) ListCars(_ context.Context, _ repository.CarListFilter) ([]car.Car, error) {
	return f.cars, nil
}

func (f *fakeCarRepo) ApplyEnrichment(_ context.Context, id uuid.UUID, e repository.Enrichment) error {
	if f.applied == nil {
		f.applied = make(map[uuid.UUID]repository.Enrichment)
	}
	f.applied[id] = e
	return nil
}

type fakeCompletion struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompletion) Name() string { return "fake" }

func (f *fakeCompletion) Complete(_ context.Context, _ completion.Request) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func fullCar() car.Car {
	mpg := 30.0
	return car.Car{
		ID: uuid.New(), Manufacturer: "Honda", Model: "CR-V", Year: 2023,
		BodyType: strPtr("suv"), Price: intPtr(33500), PrimaryUse: strPtr("family"),
		Description: strPtr("spacious"), Features: []string{"Heated Seats"}, MPG: &mpg,
	}
}

func sparseCar() car.Car {
	return car.Car{
		ID: uuid.New(), Manufacturer: "Mazda", Model: "CX-5", Year: 2022,
		BodyType: strPtr("suv"),
	}
}

func TestRunSkipsCompleteRecords(t *testing.T) {
	repo := &fakeCarRepo{cars: []car.Car{fullCar()}}
	client := &fakeCompletion{}
	e := New(repo, client, 2, nil)

	summary, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Scanned != 1 || summary.Sparse != 0 || summary.Enriched != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if client.calls != 0 {
		t.Fatalf("completion called %d times for a complete record", client.calls)
	}
}

func TestRunAppliesCompletionGuess(t *testing.T) {
	sparse := sparseCar()
	repo := &fakeCarRepo{cars: []car.Car{sparse}}
	client := &fakeCompletion{
		reply: "```json\n{\"body_type\":\"suv\",\"price\":29000,\"primary_use\":\"family\",\"description\":\"A compact crossover.\",\"features\":[\"Sunroof\"]}\n```",
	}
	e := New(repo, client, 2, nil)

	summary, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Enriched != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	applied, ok := repo.applied[sparse.ID]
	if !ok {
		t.Fatal("no enrichment applied")
	}
	if applied.Price == nil || *applied.Price != 29000 {
		t.Fatalf("Price = %v, want 29000", applied.Price)
	}
	if applied.PrimaryUse == nil || *applied.PrimaryUse != "family" {
		t.Fatalf("PrimaryUse = %v, want family", applied.PrimaryUse)
	}
	if len(applied.Features) != 1 || applied.Features[0] != "Sunroof" {
		t.Fatalf("Features = %v", applied.Features)
	}
}

func TestRunFallsBackToHeuristicOnCompletionError(t *testing.T) {
	sparse := sparseCar()
	repo := &fakeCarRepo{cars: []car.Car{sparse}}
	client := &fakeCompletion{err: errors.New("backend down")}
	e := New(repo, client, 2, nil)

	summary, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Enriched != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	applied := repo.applied[sparse.ID]
	if applied.PrimaryUse == nil || *applied.PrimaryUse != "family" {
		t.Fatalf("heuristic PrimaryUse = %v, want family (from suv body type)", applied.PrimaryUse)
	}
	if applied.Price != nil {
		t.Fatalf("heuristic invented a price: %v", *applied.Price)
	}
	if applied.Description == nil {
		t.Fatal("heuristic left Description nil")
	}
}

func TestRunWithoutClientUsesHeuristic(t *testing.T) {
	sparse := sparseCar()
	repo := &fakeCarRepo{cars: []car.Car{sparse}}
	e := New(repo, nil, 2, nil)

	summary, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Enriched != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}
