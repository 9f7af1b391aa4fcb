package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"astra/internal/domain/car"
	"astra/internal/domain/recommend"

	"github.com/google/uuid"
)

func catalogCar(manufacturer, model string, year int, bodyType string, price int, use, fuel, description string) car.Car {
	return car.Car{
		ID:           uuid.New(),
		Manufacturer: manufacturer,
		Model:        model,
		Year:         year,
		BodyType:     strPtr(bodyType),
		Price:        intPtr(price),
		PrimaryUse:   strPtr(use),
		FuelType:     strPtr(fuel),
		Description:  strPtr(description),
	}
}

func testCatalog() []car.Car {
	return []car.Car{
		catalogCar("Toyota", "Camry", 2023, "sedan", 28500, "daily_commute", "gasoline",
			"A dependable sedan built for the daily commute."),
		catalogCar("Ford", "F-150", 2024, "truck", 45000, "utility", "gasoline",
			"A practical work truck, versatile and strong."),
		catalogCar("Chevrolet", "Corvette", 2023, "coupe", 68000, "performance", "gasoline",
			"Brutally fast and powerful sport coupe."),
	}
}

func TestRecommendLocalRanksCatalog(t *testing.T) {
	repo := &mockCarRepo{cars: testCatalog()}
	u := NewRecommendationUsecase(repo, nil, StrategyLocal, 0, nil)

	rec, err := u.Recommend(context.Background(), RecommendationInput{
		Answers: recommend.Answers{
			Budget:     "twenty_to_thirty",
			BodyType:   "sedan",
			PrimaryUse: "daily_commute",
		},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Strategy != StrategyLocal {
		t.Fatalf("Strategy = %q, want %q", rec.Strategy, StrategyLocal)
	}
	if rec.Top.Vehicle.Model != "Camry" {
		t.Fatalf("top = %s, want Camry", rec.Top.Vehicle.Model)
	}
	if rec.Top.MatchPercentage != 100 {
		t.Fatalf("MatchPercentage = %v, want 100", rec.Top.MatchPercentage)
	}
	if len(rec.Alternates) != 2 {
		t.Fatalf("alternates = %d, want 2", len(rec.Alternates))
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	repo := &mockCarRepo{}
	u := NewRecommendationUsecase(repo, nil, StrategyLocal, 0, nil)

	_, err := u.Recommend(context.Background(), RecommendationInput{
		Answers: recommend.Answers{Budget: "twenty_to_thirty"},
	})
	if !errors.Is(err, ErrNoCarsAvailable) {
		t.Fatalf("err = %v, want ErrNoCarsAvailable", err)
	}
}

func TestRecommendInvalidStrategy(t *testing.T) {
	repo := &mockCarRepo{cars: testCatalog()}
	u := NewRecommendationUsecase(repo, nil, StrategyLocal, 0, nil)

	_, err := u.Recommend(context.Background(), RecommendationInput{Strategy: "psychic"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestRecommendRemoteUsesCompletionPick(t *testing.T) {
	repo := &mockCarRepo{cars: testCatalog()}
	client := &mockCompletion{reply: `{"index": 2, "reason": "wants speed"}`}
	u := NewRecommendationUsecase(repo, client, StrategyRemote, 0, nil)

	rec, err := u.Recommend(context.Background(), RecommendationInput{
		Answers: recommend.Answers{PrimaryUse: "performance"},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Strategy != StrategyRemote {
		t.Fatalf("Strategy = %q, want %q", rec.Strategy, StrategyRemote)
	}
	if rec.Top.Vehicle.Model != "Corvette" {
		t.Fatalf("top = %s, want Corvette", rec.Top.Vehicle.Model)
	}
	if client.calls != 1 {
		t.Fatalf("completion calls = %d, want 1", client.calls)
	}
}

func TestRemotePromptRendersBudgetAsDollars(t *testing.T) {
	vehicles := []recommend.Vehicle{{Manufacturer: "Toyota", Model: "Camry", Year: 2023}}

	prompt := remotePrompt(vehicles, recommend.Answers{Budget: "twenty_to_thirty"})
	if !strings.Contains(prompt, "budget: $20000 to $30000") {
		t.Fatalf("bounded budget not rendered as a dollar range:\n%s", prompt)
	}

	prompt = remotePrompt(vehicles, recommend.Answers{Budget: "over_sixty"})
	if !strings.Contains(prompt, "budget: over $60000") {
		t.Fatalf("unbounded budget not rendered:\n%s", prompt)
	}
}

func TestRecommendRemoteFlagsWeakPick(t *testing.T) {
	repo := &mockCarRepo{cars: testCatalog()}
	client := &mockCompletion{reply: `{"index": 0, "reason": "cheapest"}`}
	u := NewRecommendationUsecase(repo, client, StrategyRemote, 0, nil)

	rec, err := u.Recommend(context.Background(), RecommendationInput{
		Answers: recommend.Answers{BodyType: "truck"},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Top.Vehicle.Model != "Camry" {
		t.Fatalf("top = %s, want Camry", rec.Top.Vehicle.Model)
	}
	if rec.Top.MatchPercentage != 0 {
		t.Fatalf("MatchPercentage = %v, want 0", rec.Top.MatchPercentage)
	}
	if !rec.Top.IsPartialMatch {
		t.Fatal("IsPartialMatch = false, want true for a below-threshold pick")
	}
}

func TestRecommendRemoteFallsBackToLocal(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		err   error
	}{
		{"backend error", "", fmt.Errorf("backend down")},
		{"garbage reply", "not json at all", nil},
		{"index out of range", `{"index": 99}`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockCarRepo{cars: testCatalog()}
			client := &mockCompletion{reply: tc.reply, err: tc.err}
			u := NewRecommendationUsecase(repo, client, StrategyRemote, 0, nil)

			rec, err := u.Recommend(context.Background(), RecommendationInput{
				Answers: recommend.Answers{BodyType: "truck"},
			})
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if rec.Strategy != StrategyLocal {
				t.Fatalf("Strategy = %q, want fallback to %q", rec.Strategy, StrategyLocal)
			}
			if rec.Top.Vehicle.Model != "F-150" {
				t.Fatalf("top = %s, want F-150", rec.Top.Vehicle.Model)
			}
		})
	}
}

func TestRecommendScoresBeyondFirstCatalogPage(t *testing.T) {
	cars := make([]car.Car, 0, 120)
	for i := 0; i < 119; i++ {
		cars = append(cars, catalogCar("Acme", fmt.Sprintf("Model-%03d", i), 2020, "sedan", 25000,
			"daily_commute", "gasoline", "A plain sedan."))
	}
	cars = append(cars, catalogCar("Ford", "Ranger", 2024, "truck", 35000, "utility", "gasoline",
		"A practical work truck."))

	repo := &mockCarRepo{cars: cars}
	u := NewRecommendationUsecase(repo, nil, StrategyLocal, 0, nil)

	rec, err := u.Recommend(context.Background(), RecommendationInput{
		Answers: recommend.Answers{BodyType: "truck", PrimaryUse: "utility"},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Top.Vehicle.Model != "Ranger" {
		t.Fatalf("top = %s, want Ranger from the second catalog page", rec.Top.Vehicle.Model)
	}
	if len(rec.Alternates) != 119 {
		t.Fatalf("alternates = %d, want 119", len(rec.Alternates))
	}
}

func TestRecommendPerRequestStrategyOverride(t *testing.T) {
	repo := &mockCarRepo{cars: testCatalog()}
	client := &mockCompletion{reply: `{"index": 0}`}
	u := NewRecommendationUsecase(repo, client, StrategyLocal, 0, nil)

	rec, err := u.Recommend(context.Background(), RecommendationInput{
		Answers:  recommend.Answers{BodyType: "sedan"},
		Strategy: StrategyRemote,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Strategy != StrategyRemote {
		t.Fatalf("Strategy = %q, want %q", rec.Strategy, StrategyRemote)
	}
	if client.calls != 1 {
		t.Fatalf("completion calls = %d, want 1", client.calls)
	}
}
