package dto

import (
	"astra/internal/domain/recommend"
	"astra/internal/usecase"
)

type MatchResponse struct {
	Car               CarSummary `json:"car"`
	MatchScore        int        `json:"match_score"`
	PartialMatchScore float64    `json:"partial_match_score"`
	TotalCriteria     int        `json:"total_criteria"`
	MatchPercentage   float64    `json:"match_percentage"`
	IsPartialMatch    bool       `json:"is_partial_match"`
}

type CarSummary struct {
	ID           string `json:"id"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	BodyType     string `json:"body_type,omitempty"`
	Price        int    `json:"price,omitempty"`
}

type RecommendationResponse struct {
	Top        MatchResponse   `json:"top"`
	Alternates []MatchResponse `json:"alternates"`
	Strategy   string          `json:"strategy"`
}

func fromMatch(m recommend.MatchResult) MatchResponse {
	return MatchResponse{
		Car: CarSummary{
			ID:           m.Vehicle.ID.String(),
			Manufacturer: m.Vehicle.Manufacturer,
			Model:        m.Vehicle.Model,
			Year:         m.Vehicle.Year,
			BodyType:     m.Vehicle.BodyType,
			Price:        m.Vehicle.Price,
		},
		MatchScore:        m.MatchScore,
		PartialMatchScore: m.PartialMatchScore,
		TotalCriteria:     m.TotalCriteria,
		MatchPercentage:   m.MatchPercentage,
		IsPartialMatch:    m.IsPartialMatch,
	}
}

func FromRecommendation(rec usecase.Recommendation) RecommendationResponse {
	alternates := make([]MatchResponse, 0, len(rec.Alternates))
	for _, m := range rec.Alternates {
		alternates = append(alternates, fromMatch(m))
	}
	return RecommendationResponse{
		Top:        fromMatch(rec.Top),
		Alternates: alternates,
		Strategy:   rec.Strategy,
	}
}
