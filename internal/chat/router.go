package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"astra/internal/domain/car"
	"astra/internal/infrastructure/completion"
)

const (
	ModelRemote = "remote"
	ModelLocal  = "local"
)

var ErrNoBackend = errors.New("no completion backend configured")

// Metrics is a point-in-time copy of the router counters.
type Metrics struct {
	RemoteRequests int     `json:"remote_requests"`
	LocalRequests  int     `json:"local_requests"`
	Fallbacks      int     `json:"fallbacks"`
	AvgRemoteTime  float64 `json:"avg_remote_time_seconds"`
	AvgLocalTime   float64 `json:"avg_local_time_seconds"`
	ForcedModel    string  `json:"forced_model,omitempty"`
}

type Reply struct {
	Response       string
	ModelUsed      string
	Confidence     float64
	QueryTypes     []string
	ResponseTimeMS int64
}

// Router sends each query to the remote or local completion backend and falls
// back to the other one when the first fails.
type Router struct {
	remote  completion.Client
	local   completion.Client
	primary string
	logger  *log.Logger

	mu      sync.Mutex
	forced  string
	metrics Metrics
}

func NewRouter(remote, local completion.Client, primary string, logger *log.Logger) *Router {
	primary = strings.ToLower(strings.TrimSpace(primary))
	if primary != ModelLocal {
		primary = ModelRemote
	}
	return &Router{remote: remote, local: local, primary: primary, logger: logger}
}

// ForceModel pins all routing to one backend. Empty name clears the pin.
func (r *Router) ForceModel(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" && name != ModelRemote && name != ModelLocal {
		return fmt.Errorf("model must be %q, %q, or empty", ModelRemote, ModelLocal)
	}
	r.mu.Lock()
	r.forced = name
	r.mu.Unlock()
	if r.logger != nil {
		if name == "" {
			r.logger.Printf("[Chat] forced model cleared")
		} else {
			r.logger.Printf("[Chat] forced model set to %s", name)
		}
	}
	return nil
}

func (r *Router) Metrics() Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.metrics
	m.ForcedModel = r.forced
	return m
}

// Route classifies the query, sends it to the chosen backend, and falls back
// to the other backend on failure.
func (r *Router) Route(ctx context.Context, query string, c *car.Car, history []Message) (Reply, error) {
	start := time.Now()
	classification := Classify(query)
	if r.logger != nil {
		r.logger.Printf("[Chat] query classified types=%v category=%s confidence=%.2f",
			classification.QueryTypes, classification.RoutingCategory, classification.Confidence)
	}

	choice := r.choose()
	text, used, err := r.complete(ctx, choice, query, c, history)
	if err != nil {
		if r.logger != nil {
			r.logger.Printf("[Chat] primary model %s failed: %v", choice, err)
		}
		text, used, err = r.fallback(ctx, choice, query, c, history)
		if err != nil {
			return Reply{}, err
		}
	}

	return Reply{
		Response:       text,
		ModelUsed:      used,
		Confidence:     classification.Confidence,
		QueryTypes:     classification.QueryTypes,
		ResponseTimeMS: time.Since(start).Milliseconds(),
	}, nil
}

func (r *Router) choose() string {
	r.mu.Lock()
	forced := r.forced
	r.mu.Unlock()

	if forced != "" {
		return forced
	}
	if r.primary == ModelLocal && r.local != nil {
		return ModelLocal
	}
	if r.remote != nil {
		return ModelRemote
	}
	if r.local != nil {
		return ModelLocal
	}
	return ModelRemote
}

func (r *Router) fallback(ctx context.Context, failed string, query string, c *car.Car, history []Message) (string, string, error) {
	r.mu.Lock()
	r.metrics.Fallbacks++
	r.mu.Unlock()

	if failed == ModelRemote && r.local != nil {
		if r.logger != nil {
			r.logger.Printf("[Chat] falling back to local model")
		}
		return r.complete(ctx, ModelLocal, query, c, history)
	}
	if failed == ModelLocal && r.remote != nil {
		if r.logger != nil {
			r.logger.Printf("[Chat] falling back to remote model")
		}
		return r.complete(ctx, ModelRemote, query, c, history)
	}
	return "", "", ErrNoBackend
}

func (r *Router) complete(ctx context.Context, model string, query string, c *car.Car, history []Message) (string, string, error) {
	client := r.remote
	if model == ModelLocal {
		client = r.local
	}
	if client == nil {
		return "", "", ErrNoBackend
	}

	start := time.Now()
	text, err := client.Complete(ctx, completion.Request{
		System:      SystemMessage(c),
		Prompt:      promptWithHistory(query, c, history),
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if err != nil {
		return "", "", err
	}
	r.record(model, time.Since(start))
	return strings.TrimSpace(text), model, nil
}

// promptWithHistory folds the recent turns into the prompt. Only the last
// five exchanges are kept; older context rarely helps and inflates tokens.
func promptWithHistory(query string, c *car.Car, history []Message) string {
	if len(history) == 0 {
		return userPrompt(query, c)
	}
	if len(history) > 10 {
		history = history[len(history)-10:]
	}

	var b strings.Builder
	b.WriteString("Recent conversation:\n")
	for _, m := range history {
		role := "Human"
		if m.Role == "assistant" {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
	}
	b.WriteString("\n")
	b.WriteString(userPrompt(query, c))
	return b.String()
}

func (r *Router) record(model string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	secs := elapsed.Seconds()
	switch model {
	case ModelLocal:
		r.metrics.LocalRequests++
		r.metrics.AvgLocalTime = runningAvg(r.metrics.AvgLocalTime, r.metrics.LocalRequests, secs)
	default:
		r.metrics.RemoteRequests++
		r.metrics.AvgRemoteTime = runningAvg(r.metrics.AvgRemoteTime, r.metrics.RemoteRequests, secs)
	}
}

func runningAvg(prev float64, count int, next float64) float64 {
	if count <= 1 {
		return next
	}
	return (prev*float64(count-1) + next) / float64(count)
}
