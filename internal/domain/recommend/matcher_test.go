package recommend

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestScore_ExactMatchAllCriteria(t *testing.T) {
	v := Vehicle{
		ID:          uuid.New(),
		BodyType:    "suv",
		Price:       35000,
		Description: "a family hauler with spacious seating",
	}
	a := Answers{Budget: "thirty_to_forty", BodyType: "suv", PrimaryUse: "family"}

	res := Score(v, a)
	if res.MatchScore != 3 {
		t.Fatalf("expected match score 3, got %d", res.MatchScore)
	}
	if res.TotalCriteria != 3 {
		t.Fatalf("expected 3 criteria, got %d", res.TotalCriteria)
	}
	if res.MatchPercentage != 100 {
		t.Fatalf("expected 100%%, got %v", res.MatchPercentage)
	}
	if res.IsPartialMatch {
		t.Fatalf("expected IsPartialMatch=false")
	}
}

func TestScore_BudgetToleranceBand(t *testing.T) {
	// twenty_to_thirty is [20000,30000): width 10000, tolerance 2000, so the
	// widened band is [18000,32000).
	a := Answers{Budget: "twenty_to_thirty"}

	res := Score(Vehicle{ID: uuid.New(), Price: 31000}, a)
	if res.MatchScore != 0 {
		t.Fatalf("expected no full credit, got %d", res.MatchScore)
	}
	if res.PartialMatchScore != 0.5 {
		t.Fatalf("expected partial credit 0.5, got %v", res.PartialMatchScore)
	}
	if res.TotalCriteria != 1 {
		t.Fatalf("expected 1 criterion, got %d", res.TotalCriteria)
	}

	res = Score(Vehicle{ID: uuid.New(), Price: 32000}, a)
	if res.MatchScore != 0 || res.PartialMatchScore != 0 {
		t.Fatalf("price at band edge: expected no credit, got %d/%v", res.MatchScore, res.PartialMatchScore)
	}

	res = Score(Vehicle{ID: uuid.New(), Price: 18000}, a)
	if res.PartialMatchScore != 0.5 {
		t.Fatalf("price at lower band edge: expected 0.5, got %v", res.PartialMatchScore)
	}
}

func TestScore_SimilarBodyTypeAsymmetry(t *testing.T) {
	res := Score(Vehicle{ID: uuid.New(), BodyType: "coupe"}, Answers{BodyType: "sedan"})
	if res.PartialMatchScore != 0.5 || res.MatchScore != 0 {
		t.Fatalf("sedan~coupe: expected 0.5 partial, got %d/%v", res.MatchScore, res.PartialMatchScore)
	}

	// van lists suv as similar, suv does not list van back.
	res = Score(Vehicle{ID: uuid.New(), BodyType: "suv"}, Answers{BodyType: "van"})
	if res.PartialMatchScore != 0.5 {
		t.Fatalf("van~suv: expected 0.5 partial, got %v", res.PartialMatchScore)
	}
	res = Score(Vehicle{ID: uuid.New(), BodyType: "van"}, Answers{BodyType: "suv"})
	if res.PartialMatchScore != 0 || res.MatchScore != 0 {
		t.Fatalf("suv~van: expected no credit, got %d/%v", res.MatchScore, res.PartialMatchScore)
	}
}

func TestScore_RelatedUseKeywords(t *testing.T) {
	v := Vehicle{ID: uuid.New(), Description: "quick and sport tuned"}
	res := Score(v, Answers{PrimaryUse: "performance"})
	if res.PartialMatchScore != 0.5 {
		t.Fatalf("expected related-use partial credit, got %v", res.PartialMatchScore)
	}

	v = Vehicle{ID: uuid.New(), Description: "built for daily commute in traffic"}
	res = Score(v, Answers{PrimaryUse: "daily_commute"})
	if res.MatchScore != 1 {
		t.Fatalf("expected full credit for phrase containment, got %d", res.MatchScore)
	}
}

func TestScore_MissingFieldsAreNotEvaluated(t *testing.T) {
	// No price, no body type, no description: nothing is evaluable even
	// though every question was answered.
	v := Vehicle{ID: uuid.New()}
	a := Answers{Budget: "under_twenty", BodyType: "sedan", PrimaryUse: "family"}

	res := Score(v, a)
	if res.TotalCriteria != 0 {
		t.Fatalf("expected 0 criteria, got %d", res.TotalCriteria)
	}
	if res.MatchPercentage != 0 {
		t.Fatalf("expected 0%%, got %v", res.MatchPercentage)
	}
}

func TestScore_FuelTypeAndFeatures(t *testing.T) {
	v := Vehicle{
		ID:       uuid.New(),
		FuelType: "Electric",
		Features: []string{"Heated Seats", "Panoramic Sunroof", "Lane Assist"},
	}

	res := Score(v, Answers{FuelType: "electric", Features: []string{"sunroof", "lane assist"}})
	if res.MatchScore != 2 {
		t.Fatalf("expected 2 full criteria, got %d", res.MatchScore)
	}
	if res.TotalCriteria != 2 {
		t.Fatalf("expected 2 criteria, got %d", res.TotalCriteria)
	}

	res = Score(v, Answers{Features: []string{"sunroof", "tow hitch"}})
	if res.PartialMatchScore != 0.5 {
		t.Fatalf("expected partial feature credit, got %v", res.PartialMatchScore)
	}
}

func TestScore_Idempotent(t *testing.T) {
	v := Vehicle{ID: uuid.New(), Price: 21000, BodyType: "suv", Description: "spacious crossover"}
	a := Answers{Budget: "twenty_to_thirty", BodyType: "suv", PrimaryUse: "family"}

	first := Score(v, a)
	second := Score(v, a)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestRank_EmptyInput(t *testing.T) {
	_, err := Rank(nil, Answers{Budget: "under_twenty"})
	if !errors.Is(err, ErrEmptyCandidateSet) {
		t.Fatalf("expected ErrEmptyCandidateSet, got %v", err)
	}
}

func TestRank_SortedAndStable(t *testing.T) {
	a := Answers{Budget: "thirty_to_forty", BodyType: "suv"}

	strong := Vehicle{ID: uuid.New(), Price: 35000, BodyType: "suv"}
	weak := Vehicle{ID: uuid.New(), Price: 90000, BodyType: "truck"}
	tieFirst := Vehicle{ID: uuid.New(), Price: 36000, BodyType: "suv"}
	tieSecond := Vehicle{ID: uuid.New(), Price: 37000, BodyType: "suv"}

	ranked, err := Rank([]Vehicle{weak, tieFirst, tieSecond, strong}, a)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 4 {
		t.Fatalf("expected 4 results, got %d", len(ranked))
	}
	for _, r := range ranked {
		if r.MatchPercentage < 0 || r.MatchPercentage > 100 {
			t.Fatalf("match percentage out of range: %v", r.MatchPercentage)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].MatchPercentage > ranked[i-1].MatchPercentage {
			t.Fatalf("results not sorted descending at %d", i)
		}
	}

	// tieFirst and tieSecond score identically and must keep input order.
	if ranked[0].Vehicle.ID != tieFirst.ID && ranked[0].Vehicle.ID != strong.ID {
		t.Fatalf("unexpected top result %v", ranked[0].Vehicle.ID)
	}
	posFirst, posSecond := -1, -1
	for i, r := range ranked {
		if r.Vehicle.ID == tieFirst.ID {
			posFirst = i
		}
		if r.Vehicle.ID == tieSecond.ID {
			posSecond = i
		}
	}
	if posFirst == -1 || posSecond == -1 || posFirst > posSecond {
		t.Fatalf("stable ordering violated: %d vs %d", posFirst, posSecond)
	}
}

func TestSelect_ConfidentMatch(t *testing.T) {
	ranked := []MatchResult{
		{Vehicle: Vehicle{ID: uuid.New()}, MatchPercentage: 66.7},
		{Vehicle: Vehicle{ID: uuid.New()}, MatchPercentage: 33.3},
	}

	top, alternates := Select(ranked)
	if top.IsPartialMatch {
		t.Fatalf("expected confident match")
	}
	if len(alternates) != 1 {
		t.Fatalf("expected 1 alternate, got %d", len(alternates))
	}
}

func TestSelect_BelowThresholdFallback(t *testing.T) {
	ranked := []MatchResult{
		{Vehicle: Vehicle{ID: uuid.New()}, MatchPercentage: 25},
		{Vehicle: Vehicle{ID: uuid.New()}, MatchPercentage: 12.5},
	}

	top, alternates := Select(ranked)
	if !top.IsPartialMatch {
		t.Fatalf("expected partial-match fallback")
	}
	if top.Vehicle.ID != ranked[0].Vehicle.ID {
		t.Fatalf("expected best available vehicle returned")
	}
	if len(alternates) != 1 {
		t.Fatalf("expected alternates preserved, got %d", len(alternates))
	}

	top, _ = SelectWithThreshold(ranked, 20)
	if top.IsPartialMatch {
		t.Fatalf("expected confident match at lowered threshold")
	}
}
