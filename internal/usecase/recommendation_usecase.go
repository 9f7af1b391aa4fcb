package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"astra/internal/domain/car"
	"astra/internal/domain/recommend"
	"astra/internal/infrastructure/completion"
	"astra/internal/repository"
)

const (
	StrategyLocal  = "local"
	StrategyRemote = "remote"
)

type RecommendationInput struct {
	Answers  recommend.Answers
	Strategy string // "" uses the configured default
}

type Recommendation struct {
	Top        recommend.MatchResult   `json:"top"`
	Alternates []recommend.MatchResult `json:"alternates"`
	Strategy   string                  `json:"strategy"`
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, in RecommendationInput) (Recommendation, error)
}

type Recommender struct {
	cars      repository.CarRepository
	client    completion.Client
	strategy  string
	threshold float64
	logger    *log.Logger
}

func NewRecommendationUsecase(cars repository.CarRepository, client completion.Client, strategy string, threshold float64, logger *log.Logger) *Recommender {
	strategy = strings.ToLower(strings.TrimSpace(strategy))
	if strategy != StrategyRemote {
		strategy = StrategyLocal
	}
	if threshold <= 0 {
		threshold = recommend.DefaultThreshold
	}
	return &Recommender{cars: cars, client: client, strategy: strategy, threshold: threshold, logger: logger}
}

// Recommend ranks the whole catalog against the wizard answers. The remote
// strategy asks the completion backend to pick; any remote failure falls back
// to the local matcher, so an answer always comes back while cars exist.
func (u *Recommender) Recommend(ctx context.Context, in RecommendationInput) (Recommendation, error) {
	strategy := strings.ToLower(strings.TrimSpace(in.Strategy))
	switch strategy {
	case "":
		strategy = u.strategy
	case StrategyLocal, StrategyRemote:
	default:
		return Recommendation{}, ErrInvalidInput
	}

	// Every car competes: page through the catalog rather than scoring only
	// the first listing page.
	const pageSize = 100
	var vehicles []recommend.Vehicle
	for offset := 0; ; offset += pageSize {
		page, err := u.cars.ListCars(ctx, repository.CarListFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			if u.logger != nil {
				u.logger.Printf("[Recommend] catalog fetch failed: %v", err)
			}
			return Recommendation{}, ErrInternal
		}
		for _, c := range page {
			vehicles = append(vehicles, toVehicle(c))
		}
		if len(page) < pageSize {
			break
		}
	}

	if strategy == StrategyRemote && u.client != nil {
		if rec, err := u.recommendRemote(ctx, vehicles, in.Answers); err == nil {
			return rec, nil
		} else if u.logger != nil {
			u.logger.Printf("[Recommend] remote strategy failed, falling back to local: %v", err)
		}
	}

	ranked, err := recommend.Rank(vehicles, in.Answers)
	if err != nil {
		if errors.Is(err, recommend.ErrEmptyCandidateSet) {
			return Recommendation{}, ErrNoCarsAvailable
		}
		return Recommendation{}, ErrInternal
	}

	top, alternates := recommend.SelectWithThreshold(ranked, u.threshold)
	return Recommendation{Top: top, Alternates: alternates, Strategy: StrategyLocal}, nil
}

type remotePick struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// recommendRemote asks the completion backend to choose, then reuses the
// local scorer so the response carries the same match breakdown either way.
func (u *Recommender) recommendRemote(ctx context.Context, vehicles []recommend.Vehicle, a recommend.Answers) (Recommendation, error) {
	if len(vehicles) == 0 {
		return Recommendation{}, ErrNoCarsAvailable
	}

	raw, err := u.client.Complete(ctx, completion.Request{
		System:      "You are a car-buying advisor. Reply with a single JSON object and nothing else.",
		Prompt:      remotePrompt(vehicles, a),
		MaxTokens:   200,
		Temperature: 0.3,
	})
	if err != nil {
		return Recommendation{}, err
	}

	var pick remotePick
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &pick); err != nil {
		return Recommendation{}, fmt.Errorf("unparseable pick: %w", err)
	}
	if pick.Index < 0 || pick.Index >= len(vehicles) {
		return Recommendation{}, fmt.Errorf("pick index %d out of range", pick.Index)
	}

	top := recommend.Score(vehicles[pick.Index], a)
	top.IsPartialMatch = top.MatchPercentage < u.threshold
	alternates := make([]recommend.MatchResult, 0, len(vehicles)-1)
	for i, v := range vehicles {
		if i == pick.Index {
			continue
		}
		alternates = append(alternates, recommend.Score(v, a))
	}
	return Recommendation{Top: top, Alternates: alternates, Strategy: StrategyRemote}, nil
}

func remotePrompt(vehicles []recommend.Vehicle, a recommend.Answers) string {
	var b strings.Builder
	b.WriteString("Pick the best car for this buyer.\nBuyer preferences:\n")
	if a.Budget != "" {
		if r, ok := recommend.BudgetRangeFor(a.Budget); ok && r.Max >= 0 {
			fmt.Fprintf(&b, "- budget: $%d to $%d\n", r.Min, r.Max)
		} else if ok {
			fmt.Fprintf(&b, "- budget: over $%d\n", r.Min)
		} else {
			fmt.Fprintf(&b, "- budget: %s\n", a.Budget)
		}
	}
	if a.BodyType != "" {
		fmt.Fprintf(&b, "- body type: %s\n", a.BodyType)
	}
	if a.PrimaryUse != "" {
		fmt.Fprintf(&b, "- primary use: %s\n", a.PrimaryUse)
	}
	if a.FuelType != "" {
		fmt.Fprintf(&b, "- fuel type: %s\n", a.FuelType)
	}
	if len(a.Features) > 0 {
		fmt.Fprintf(&b, "- wanted features: %s\n", strings.Join(a.Features, ", "))
	}
	b.WriteString("Candidates:\n")
	for i, v := range vehicles {
		fmt.Fprintf(&b, "%d. %d %s %s, body=%s, price=%d, use=%s, fuel=%s\n",
			i, v.Year, v.Manufacturer, v.Model, v.BodyType, v.Price, v.PrimaryUse, v.FuelType)
	}
	b.WriteString(`Reply with JSON: {"index": 0, "reason": "..."} using the candidate number.`)
	return b.String()
}

func toVehicle(c car.Car) recommend.Vehicle {
	v := recommend.Vehicle{
		ID:           c.ID,
		Manufacturer: c.Manufacturer,
		Model:        c.Model,
		Year:         c.Year,
		Features:     c.Features,
	}
	if c.BodyType != nil {
		v.BodyType = *c.BodyType
	}
	if c.Price != nil {
		v.Price = *c.Price
	}
	if c.PrimaryUse != nil {
		v.PrimaryUse = *c.PrimaryUse
	}
	if c.FuelType != nil {
		v.FuelType = *c.FuelType
	}
	if c.Description != nil {
		v.Description = *c.Description
	}
	return v
}

var _ RecommendationUsecase = (*Recommender)(nil)
