package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestAddReviewValidation(t *testing.T) {
	subject := testCatalog()[0]
	cars := &mockCarRepo{cars: testCatalog()}
	reviews := &mockReviewRepo{}
	u := NewReviewUsecase(cars, reviews, nil, nil, nil)

	cases := []AddReviewInput{
		{CarID: uuid.Nil, Text: "fine", Rating: 4},
		{CarID: subject.ID, Text: "", Rating: 4},
		{CarID: subject.ID, Text: "fine", Rating: 0},
		{CarID: subject.ID, Text: "fine", Rating: 6},
	}
	for i, in := range cases {
		if _, err := u.AddReview(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestAddReviewUnknownCar(t *testing.T) {
	cars := &mockCarRepo{cars: testCatalog()}
	u := NewReviewUsecase(cars, &mockReviewRepo{}, nil, nil, nil)

	_, err := u.AddReview(context.Background(), AddReviewInput{
		CarID: uuid.New(), Text: "great car", Rating: 5,
	})
	if !errors.Is(err, ErrCarNotFound) {
		t.Fatalf("err = %v, want ErrCarNotFound", err)
	}
}

func TestAddReviewDefaultsAuthorAndInvalidatesCache(t *testing.T) {
	catalog := testCatalog()
	cars := &mockCarRepo{cars: catalog}
	reviews := &mockReviewRepo{}
	cache := newMockCache()
	u := NewReviewUsecase(cars, reviews, nil, cache, nil)

	saved, err := u.AddReview(context.Background(), AddReviewInput{
		CarID: catalog[0].ID, Text: "Solid and comfortable.", Rating: 4,
	})
	if err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if saved.Author != "Anonymous" {
		t.Fatalf("Author = %q, want Anonymous", saved.Author)
	}
	if saved.Rating == nil || *saved.Rating != 4 {
		t.Fatalf("Rating = %v, want 4", saved.Rating)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != catalog[0].ID.String() {
		t.Fatalf("cache invalidations = %v", cache.invalidated)
	}
}

func TestGenerateReviewUsesCompletion(t *testing.T) {
	catalog := testCatalog()
	cars := &mockCarRepo{cars: catalog}
	reviews := &mockReviewRepo{}
	client := &mockCompletion{reply: `{"title": "Impressive daily driver", "text": "Smooth and reliable with a comfortable cabin.", "rating": 4.5, "pros": ["smooth ride"], "cons": ["road noise"]}`}
	u := NewReviewUsecase(cars, reviews, client, nil, nil)

	saved, err := u.GenerateReview(context.Background(), GenerateReviewInput{CarID: catalog[0].ID})
	if err != nil {
		t.Fatalf("GenerateReview: %v", err)
	}
	if !saved.IsAIGenerated {
		t.Fatal("IsAIGenerated = false, want true")
	}
	if saved.Title != "Impressive daily driver" {
		t.Fatalf("Title = %q", saved.Title)
	}
	if saved.Rating == nil || *saved.Rating != 4.5 {
		t.Fatalf("Rating = %v, want 4.5", saved.Rating)
	}
	if saved.Author != generatedAuthor {
		t.Fatalf("Author = %q, want %q", saved.Author, generatedAuthor)
	}
	if len(saved.Pros) != 1 || saved.Pros[0] != "smooth ride" {
		t.Fatalf("Pros = %v", saved.Pros)
	}
	if len(saved.Cons) != 1 || saved.Cons[0] != "road noise" {
		t.Fatalf("Cons = %v", saved.Cons)
	}
}

func TestGenerateReviewFallsBackToTemplate(t *testing.T) {
	catalog := testCatalog()
	cars := &mockCarRepo{cars: catalog}
	reviews := &mockReviewRepo{}
	client := &mockCompletion{err: errors.New("backend down")}
	u := NewReviewUsecase(cars, reviews, client, nil, nil)

	saved, err := u.GenerateReview(context.Background(), GenerateReviewInput{
		CarID: catalog[0].ID, Rating: 2, Focus: "reliability",
	})
	if err != nil {
		t.Fatalf("GenerateReview: %v", err)
	}
	if !saved.IsAIGenerated {
		t.Fatal("IsAIGenerated = false, want true")
	}
	if saved.Rating == nil || *saved.Rating != 2 {
		t.Fatalf("Rating = %v, want 2", saved.Rating)
	}
	if !strings.Contains(saved.Text, "Cons:") {
		t.Fatalf("template text missing cons section: %q", saved.Text)
	}
	if !strings.Contains(saved.Text, "reliability") {
		t.Fatalf("template text missing focus: %q", saved.Text)
	}
}

func TestGenerateReviewUnknownCar(t *testing.T) {
	cars := &mockCarRepo{cars: testCatalog()}
	u := NewReviewUsecase(cars, &mockReviewRepo{}, nil, nil, nil)

	if _, err := u.GenerateReview(context.Background(), GenerateReviewInput{CarID: uuid.New()}); !errors.Is(err, ErrCarNotFound) {
		t.Fatalf("err = %v, want ErrCarNotFound", err)
	}
}

func TestListReviewsRejectsUnknownSentiment(t *testing.T) {
	catalog := testCatalog()
	cars := &mockCarRepo{cars: catalog}
	u := NewReviewUsecase(cars, &mockReviewRepo{}, nil, nil, nil)

	_, err := u.ListReviews(context.Background(), ReviewListParams{
		CarID: catalog[0].ID, Sentiment: "meh",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
