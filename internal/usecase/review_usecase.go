package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"astra/internal/domain/car"
	"astra/internal/infrastructure/completion"
	"astra/internal/repository"
	"astra/internal/ws"

	"github.com/google/uuid"
)

type ReviewListParams struct {
	CarID     uuid.UUID
	Sentiment string
	Limit     int
}

type AddReviewInput struct {
	CarID  uuid.UUID
	Author string
	Title  string
	Text   string
	Rating float64
}

type GenerateReviewInput struct {
	CarID  uuid.UUID
	Rating float64 // 0 lets the generator pick
	Focus  string  // optional aspect, e.g. "performance"
}

type ReviewUsecase interface {
	ListReviews(ctx context.Context, params ReviewListParams) ([]car.Review, error)
	AddReview(ctx context.Context, in AddReviewInput) (car.Review, error)
	GenerateReview(ctx context.Context, in GenerateReviewInput) (car.Review, error)
}

type Reviews struct {
	cars    repository.CarRepository
	reviews repository.ReviewRepository
	client  completion.Client
	cache   SearchCache
	logger  *log.Logger
}

func NewReviewUsecase(cars repository.CarRepository, reviews repository.ReviewRepository, client completion.Client, cache SearchCache, logger *log.Logger) *Reviews {
	return &Reviews{cars: cars, reviews: reviews, client: client, cache: cache, logger: logger}
}

func (u *Reviews) ListReviews(ctx context.Context, params ReviewListParams) ([]car.Review, error) {
	if params.CarID == uuid.Nil || params.Limit < 0 || params.Limit > 100 {
		return nil, ErrInvalidInput
	}
	switch strings.ToLower(strings.TrimSpace(params.Sentiment)) {
	case "", "positive", "negative":
	default:
		return nil, ErrInvalidInput
	}

	exists, err := u.cars.ExistsByID(ctx, params.CarID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Reviews] existence check failed car_id=%s: %v", params.CarID, err)
		}
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrCarNotFound
	}

	out, err := u.reviews.ListByCarID(ctx, params.CarID, repository.ReviewListFilter{
		Sentiment: params.Sentiment,
		Limit:     params.Limit,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Reviews] list failed car_id=%s: %v", params.CarID, err)
		}
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Reviews) AddReview(ctx context.Context, in AddReviewInput) (car.Review, error) {
	in.Author = strings.TrimSpace(in.Author)
	in.Title = strings.TrimSpace(in.Title)
	in.Text = strings.TrimSpace(in.Text)
	if in.CarID == uuid.Nil || in.Text == "" || in.Rating < 1 || in.Rating > 5 {
		return car.Review{}, ErrInvalidInput
	}
	if in.Author == "" {
		in.Author = "Anonymous"
	}

	exists, err := u.cars.ExistsByID(ctx, in.CarID)
	if err != nil {
		return car.Review{}, ErrInternal
	}
	if !exists {
		return car.Review{}, ErrCarNotFound
	}

	now := time.Now().UTC()
	rating := in.Rating
	saved, err := u.reviews.Insert(ctx, car.Review{
		CarID:      in.CarID,
		Author:     in.Author,
		Title:      in.Title,
		Text:       in.Text,
		Rating:     &rating,
		ReviewDate: &now,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Reviews] insert failed car_id=%s: %v", in.CarID, err)
		}
		return car.Review{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.InvalidateCar(ctx, in.CarID.String())
	}
	ws.NotifyReviewAdded(in.CarID.String(), false)
	return saved, nil
}

const generatedAuthor = "Astra Review Bot"

// GenerateReview writes an AI review for a car. When the completion backend
// is down the deterministic template generator takes over, so the endpoint
// always produces a review.
func (u *Reviews) GenerateReview(ctx context.Context, in GenerateReviewInput) (car.Review, error) {
	if in.CarID == uuid.Nil {
		return car.Review{}, ErrInvalidInput
	}
	if in.Rating != 0 && (in.Rating < 1 || in.Rating > 5) {
		return car.Review{}, ErrInvalidInput
	}

	subject, err := u.cars.GetByID(ctx, in.CarID)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return car.Review{}, ErrCarNotFound
		}
		return car.Review{}, ErrInternal
	}

	gen := u.generate(ctx, subject, in)

	now := time.Now().UTC()
	saved, err := u.reviews.Insert(ctx, car.Review{
		CarID:         in.CarID,
		Author:        generatedAuthor,
		Title:         gen.Title,
		Text:          gen.Text,
		Rating:        &gen.Rating,
		ReviewDate:    &now,
		IsAIGenerated: true,
		Pros:          gen.Pros,
		Cons:          gen.Cons,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Reviews] insert generated failed car_id=%s: %v", in.CarID, err)
		}
		return car.Review{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.InvalidateCar(ctx, in.CarID.String())
	}
	ws.NotifyReviewAdded(in.CarID.String(), true)
	return saved, nil
}

type generatedReview struct {
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Rating float64  `json:"rating"`
	Pros   []string `json:"pros"`
	Cons   []string `json:"cons"`
}

func (u *Reviews) generate(ctx context.Context, subject car.Car, in GenerateReviewInput) generatedReview {
	if u.client != nil {
		raw, err := u.client.Complete(ctx, completion.Request{
			System:      "You are an automotive journalist. Reply with a single JSON object and nothing else.",
			Prompt:      reviewPrompt(subject, in),
			MaxTokens:   400,
			Temperature: 0.8,
		})
		if err == nil {
			var gen generatedReview
			if jsonErr := json.Unmarshal([]byte(stripCodeFence(raw)), &gen); jsonErr == nil &&
				strings.TrimSpace(gen.Text) != "" && gen.Rating >= 1 && gen.Rating <= 5 {
				gen.Title = strings.TrimSpace(gen.Title)
				gen.Text = strings.TrimSpace(gen.Text)
				return gen
			}
		}
		if u.logger != nil {
			u.logger.Printf("[Reviews] completion unusable for %s %s, using template generator", subject.Manufacturer, subject.Model)
		}
	}
	return templateReview(subject, in)
}

func reviewPrompt(subject car.Car, in GenerateReviewInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short owner review of the %d %s %s.\n", subject.Year, subject.Manufacturer, subject.Model)
	if subject.EngineInfo != nil {
		fmt.Fprintf(&b, "Engine: %s.\n", *subject.EngineInfo)
	}
	if subject.BodyType != nil {
		fmt.Fprintf(&b, "Body type: %s.\n", *subject.BodyType)
	}
	if focus := strings.TrimSpace(in.Focus); focus != "" {
		fmt.Fprintf(&b, "Focus on %s.\n", focus)
	}
	if in.Rating != 0 {
		fmt.Fprintf(&b, "The review should justify a %.1f out of 5 rating.\n", in.Rating)
	}
	b.WriteString(`Reply with JSON: {"title": "...", "text": "...", "rating": 4.0, "pros": ["..."], "cons": ["..."]}. Rating between 1 and 5.`)
	return b.String()
}

// templateReview is the deterministic generator. Its output intentionally
// leans on the review-analysis vocabulary so generated reviews feed the
// insight aggregates the same way human ones do.
func templateReview(subject car.Car, in GenerateReviewInput) generatedReview {
	gen := generatedReview{Rating: in.Rating}
	if gen.Rating == 0 {
		gen.Rating = 4
	}

	name := fmt.Sprintf("%d %s %s", subject.Year, subject.Manufacturer, subject.Model)
	var b strings.Builder

	switch {
	case gen.Rating >= 4:
		gen.Title = fmt.Sprintf("A dependable pick: %s", name)
		fmt.Fprintf(&b, "The %s has been a pleasure to live with. ", name)
		if subject.EngineInfo != nil {
			fmt.Fprintf(&b, "The %s feels smooth and responsive in daily driving. ", *subject.EngineInfo)
		}
		b.WriteString("Pros: comfortable ride, reliable, good value. Cons: nothing major so far.")
		gen.Pros = []string{"comfortable ride", "reliable", "good value"}
		gen.Cons = []string{"nothing major so far"}
	case gen.Rating >= 3:
		gen.Title = fmt.Sprintf("Mixed feelings about the %s", name)
		fmt.Fprintf(&b, "The %s does most things well without standing out. ", name)
		b.WriteString("Pros: practical, efficient. Cons: bland styling, average interior quality.")
		gen.Pros = []string{"practical", "efficient"}
		gen.Cons = []string{"bland styling", "average interior quality"}
	default:
		gen.Title = fmt.Sprintf("Disappointed with the %s", name)
		fmt.Fprintf(&b, "The %s has been a letdown. ", name)
		b.WriteString("Pros: decent looks. Cons: unreliable, noisy cabin, expensive to maintain.")
		gen.Pros = []string{"decent looks"}
		gen.Cons = []string{"unreliable", "noisy cabin", "expensive to maintain"}
	}

	if focus := strings.TrimSpace(in.Focus); focus != "" {
		fmt.Fprintf(&b, " The %s in particular shaped this verdict.", focus)
	}
	gen.Text = b.String()
	return gen
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

var _ ReviewUsecase = (*Reviews)(nil)
