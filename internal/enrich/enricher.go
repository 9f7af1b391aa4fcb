package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"astra/internal/domain/car"
	"astra/internal/infrastructure/completion"
	"astra/internal/pkg/workerpool"
	"astra/internal/repository"
)

// Enricher fills the gaps in sparse car records. When a completion backend is
// available it asks for the missing fields; otherwise it falls back to
// deterministic guesses derived from what the record already has.
type Enricher struct {
	cars    repository.CarRepository
	client  completion.Client
	workers int
	logger  *log.Logger
}

type Summary struct {
	Scanned  int
	Sparse   int
	Enriched int
	Failed   int
}

func New(cars repository.CarRepository, client completion.Client, workers int, logger *log.Logger) *Enricher {
	if workers <= 0 {
		workers = 4
	}
	return &Enricher{cars: cars, client: client, workers: workers, logger: logger}
}

// Run scans the catalog and enriches every sparse record, fanning the
// completion calls out over the worker pool.
func (e *Enricher) Run(ctx context.Context) (Summary, error) {
	const pageSize = 100
	var all []car.Car
	for offset := 0; ; offset += pageSize {
		page, err := e.cars.ListCars(ctx, repository.CarListFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return Summary{}, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			break
		}
	}

	var summary Summary
	summary.Scanned = len(all)

	sparse := make([]car.Car, 0)
	for _, c := range all {
		if isSparse(c) {
			sparse = append(sparse, c)
		}
	}
	summary.Sparse = len(sparse)
	if len(sparse) == 0 {
		return summary, nil
	}

	pool := workerpool.New(e.workers, len(sparse))
	var mu sync.Mutex

	for _, c := range sparse {
		c := c
		pool.Submit(func(ctx context.Context) error {
			enrichment, err := e.enrichOne(ctx, c)
			if err != nil {
				return fmt.Errorf("enrich %s %s: %w", c.Manufacturer, c.Model, err)
			}
			if err := e.cars.ApplyEnrichment(ctx, c.ID, enrichment); err != nil {
				return fmt.Errorf("apply enrichment %s %s: %w", c.Manufacturer, c.Model, err)
			}
			mu.Lock()
			summary.Enriched++
			mu.Unlock()
			return nil
		})
	}
	pool.Close()

	for res := range pool.Run(ctx) {
		if res.Err != nil {
			mu.Lock()
			summary.Failed++
			mu.Unlock()
			if e.logger != nil {
				e.logger.Printf("[Enrich] %v", res.Err)
			}
		}
	}
	return summary, ctx.Err()
}

func isSparse(c car.Car) bool {
	return c.BodyType == nil || c.Price == nil || c.PrimaryUse == nil ||
		c.Description == nil || len(c.Features) == 0
}

type enrichmentGuess struct {
	BodyType    string   `json:"body_type"`
	Price       int      `json:"price"`
	PrimaryUse  string   `json:"primary_use"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

func (e *Enricher) enrichOne(ctx context.Context, c car.Car) (repository.Enrichment, error) {
	if e.client == nil {
		return heuristicEnrichment(c), nil
	}

	text, err := e.client.Complete(ctx, completion.Request{
		System:      "You are an automotive data assistant. Reply with a single JSON object and nothing else.",
		Prompt:      enrichPrompt(c),
		MaxTokens:   300,
		Temperature: 0.2,
	})
	if err != nil {
		if e.logger != nil {
			e.logger.Printf("[Enrich] completion failed for %s %s, using heuristic fill: %v", c.Manufacturer, c.Model, err)
		}
		return heuristicEnrichment(c), nil
	}

	var guess enrichmentGuess
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &guess); err != nil {
		if e.logger != nil {
			e.logger.Printf("[Enrich] unparseable completion for %s %s, using heuristic fill: %v", c.Manufacturer, c.Model, err)
		}
		return heuristicEnrichment(c), nil
	}
	return guessToEnrichment(guess), nil
}

func enrichPrompt(c car.Car) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fill in missing catalog data for the %d %s %s.\n", c.Year, c.Manufacturer, c.Model)
	b.WriteString("Known fields:\n")
	if c.BodyType != nil {
		fmt.Fprintf(&b, "- body_type: %s\n", *c.BodyType)
	}
	if c.Price != nil {
		fmt.Fprintf(&b, "- price: %d\n", *c.Price)
	}
	if c.EngineInfo != nil {
		fmt.Fprintf(&b, "- engine: %s\n", *c.EngineInfo)
	}
	if c.FuelType != nil {
		fmt.Fprintf(&b, "- fuel_type: %s\n", *c.FuelType)
	}
	b.WriteString(`Reply with JSON: {"body_type": "...", "price": 0, "primary_use": "...", "description": "...", "features": ["..."]}.` + "\n")
	b.WriteString("primary_use must be one of: daily_commute, family, luxury, performance, utility. Price is in USD.")
	return b.String()
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

func guessToEnrichment(g enrichmentGuess) repository.Enrichment {
	var out repository.Enrichment
	if v := strings.ToLower(strings.TrimSpace(g.BodyType)); v != "" {
		out.BodyType = &v
	}
	if g.Price > 0 {
		price := g.Price
		out.Price = &price
	}
	if v := strings.ToLower(strings.TrimSpace(g.PrimaryUse)); validUses[v] {
		out.PrimaryUse = &v
	}
	if v := strings.TrimSpace(g.Description); v != "" {
		out.Description = &v
	}
	if len(g.Features) > 0 {
		out.Features = g.Features
	}
	return out
}

var validUses = map[string]bool{
	"daily_commute": true,
	"family":        true,
	"luxury":        true,
	"performance":   true,
	"utility":       true,
}

// heuristicEnrichment guesses primary use from the body type and writes a
// plain description. It never invents a price.
func heuristicEnrichment(c car.Car) repository.Enrichment {
	var out repository.Enrichment

	if c.PrimaryUse == nil && c.BodyType != nil {
		if use, ok := useByBodyType[strings.ToLower(*c.BodyType)]; ok {
			out.PrimaryUse = &use
		}
	}
	if c.Description == nil {
		parts := []string{fmt.Sprintf("The %d %s %s", c.Year, c.Manufacturer, c.Model)}
		if c.BodyType != nil {
			parts = append(parts, "is a "+*c.BodyType)
		}
		if c.EngineInfo != nil {
			parts = append(parts, "powered by a "+*c.EngineInfo)
		}
		desc := strings.Join(parts, " ") + "."
		out.Description = &desc
	}
	return out
}

var useByBodyType = map[string]string{
	"sedan":     "daily_commute",
	"hatchback": "daily_commute",
	"coupe":     "performance",
	"sport":     "performance",
	"suv":       "family",
	"crossover": "family",
	"minivan":   "family",
	"van":       "family",
	"wagon":     "family",
	"truck":     "utility",
	"pickup":    "utility",
}
