package recommend

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyCandidateSet = errors.New("empty candidate set")

// DefaultThreshold is the match percentage at or above which the top-ranked
// vehicle counts as a confident recommendation.
const DefaultThreshold = 30.0

// Vehicle is one recommendation candidate. Zero-valued fields mean the data
// is missing: the corresponding criterion is skipped, never failed.
type Vehicle struct {
	ID           uuid.UUID
	Manufacturer string
	Model        string
	Year         int
	BodyType     string
	Price        int
	PrimaryUse   string
	FuelType     string
	Description  string
	Features     []string
}

// Answers holds the wizard's answer set. Empty fields mean the question was
// not answered and its criterion does not apply.
type Answers struct {
	Budget     string
	BodyType   string
	PrimaryUse string
	FuelType   string
	Features   []string
}

type MatchResult struct {
	Vehicle           Vehicle
	MatchScore        int
	PartialMatchScore float64
	TotalCriteria     int
	MatchPercentage   float64
	IsPartialMatch    bool
}

// Score evaluates one vehicle against the answer set. Only criteria with data
// on both sides count toward TotalCriteria.
func Score(v Vehicle, a Answers) MatchResult {
	res := MatchResult{Vehicle: v}

	if r, ok := budgetRanges[strings.ToLower(strings.TrimSpace(a.Budget))]; ok && v.Price > 0 {
		res.TotalCriteria++
		switch scoreBudget(r, v.Price) {
		case creditFull:
			res.MatchScore++
		case creditPartial:
			res.PartialMatchScore += 0.5
		}
	}

	if a.BodyType != "" && v.BodyType != "" {
		res.TotalCriteria++
		switch scoreBodyType(a.BodyType, v.BodyType) {
		case creditFull:
			res.MatchScore++
		case creditPartial:
			res.PartialMatchScore += 0.5
		}
	}

	if a.PrimaryUse != "" && v.Description != "" {
		res.TotalCriteria++
		switch scorePrimaryUse(a.PrimaryUse, v.Description) {
		case creditFull:
			res.MatchScore++
		case creditPartial:
			res.PartialMatchScore += 0.5
		}
	}

	if a.FuelType != "" && v.FuelType != "" {
		res.TotalCriteria++
		if strings.EqualFold(strings.TrimSpace(a.FuelType), strings.TrimSpace(v.FuelType)) {
			res.MatchScore++
		}
	}

	if wanted := trimNonEmpty(a.Features); len(wanted) > 0 && len(v.Features) > 0 {
		res.TotalCriteria++
		switch scoreFeatures(wanted, v.Features) {
		case creditFull:
			res.MatchScore++
		case creditPartial:
			res.PartialMatchScore += 0.5
		}
	}

	if res.TotalCriteria > 0 {
		res.MatchPercentage = 100 * (float64(res.MatchScore) + res.PartialMatchScore) / float64(res.TotalCriteria)
	}
	return res
}

// Rank scores every vehicle and orders the results by descending match
// percentage. The sort is stable: exact ties keep their input order.
func Rank(vehicles []Vehicle, a Answers) ([]MatchResult, error) {
	if len(vehicles) == 0 {
		return nil, ErrEmptyCandidateSet
	}

	out := make([]MatchResult, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, Score(v, a))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercentage > out[j].MatchPercentage
	})
	return out, nil
}

// Select picks the top-ranked result using DefaultThreshold.
func Select(ranked []MatchResult) (MatchResult, []MatchResult) {
	return SelectWithThreshold(ranked, DefaultThreshold)
}

// SelectWithThreshold returns the top-ranked result and the remaining entries
// as alternates. A top result below the threshold is still returned, flagged
// IsPartialMatch, never dropped.
func SelectWithThreshold(ranked []MatchResult, threshold float64) (MatchResult, []MatchResult) {
	if len(ranked) == 0 {
		return MatchResult{}, nil
	}

	top := ranked[0]
	top.IsPartialMatch = top.MatchPercentage < threshold

	alternates := make([]MatchResult, 0, len(ranked)-1)
	alternates = append(alternates, ranked[1:]...)
	return top, alternates
}

type credit int

const (
	creditNone credit = iota
	creditPartial
	creditFull
)

func scoreBudget(r BudgetRange, price int) credit {
	if price >= r.Min && (r.Max < 0 || price < r.Max) {
		return creditFull
	}

	// Tolerance band: 20% of the range width on both ends. Unbounded ranges
	// only have a lower edge, so the band is 20% of the lower bound.
	tol := r.Width() / 5
	if r.Max < 0 {
		tol = r.Min / 5
	}
	if price >= r.Min-tol && (r.Max < 0 || price < r.Max+tol) {
		return creditPartial
	}
	return creditNone
}

func scoreBodyType(requested, actual string) credit {
	requested = strings.ToLower(strings.TrimSpace(requested))
	actual = strings.ToLower(strings.TrimSpace(actual))
	if requested == actual {
		return creditFull
	}

	// Adjacency lookup is keyed by the requested type only; the table is
	// asymmetric on purpose.
	for _, similar := range similarBodyTypes[requested] {
		if actual == similar {
			return creditPartial
		}
	}
	return creditNone
}

func scorePrimaryUse(requested, description string) credit {
	desc := strings.ToLower(description)
	phrase := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(requested), "_", " "))
	if phrase != "" && strings.Contains(desc, phrase) {
		return creditFull
	}

	for _, kw := range relatedUseKeywords[strings.ToLower(strings.TrimSpace(requested))] {
		if strings.Contains(desc, kw) {
			return creditPartial
		}
	}
	return creditNone
}

func scoreFeatures(requested, actual []string) credit {
	matched := 0
	for _, want := range requested {
		for _, have := range actual {
			if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
				matched++
				break
			}
		}
	}

	switch {
	case matched == 0:
		return creditNone
	case matched == len(requested):
		return creditFull
	default:
		return creditPartial
	}
}

func trimNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
