// Package reviewinsight distills a car's reviews into the summary shown on
// the review-analysis card: average rating, sentiment split, recurring pros
// and cons, and per-category scores.
package reviewinsight

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

type Review struct {
	Text   string
	Rating *float64
}

type Sentiment struct {
	Positive int
	Negative int
	Neutral  int
}

type Insight struct {
	AverageRating  *float64
	Sentiment      Sentiment
	CommonPros     []string
	CommonCons     []string
	CategoryScores map[string]float64
}

const maxListed = 5

var (
	prosSectionRe = regexp.MustCompile(`(?is)pros?[:;-]\s*(.*?)(?:cons?[:;-]|$)`)
	consSectionRe = regexp.MustCompile(`(?is)cons?[:;-]\s*(.*)$`)
	itemSplitRe   = regexp.MustCompile(`[•\-\n]`)
)

// Analyze never fails: an empty review set yields an empty Insight.
func Analyze(reviews []Review) Insight {
	out := Insight{CategoryScores: map[string]float64{}}
	if len(reviews) == 0 {
		return out
	}

	var ratingSum float64
	var rated int
	for _, r := range reviews {
		if r.Rating == nil {
			continue
		}
		ratingSum += *r.Rating
		rated++

		switch {
		case *r.Rating >= 4:
			out.Sentiment.Positive++
		case *r.Rating <= 2:
			out.Sentiment.Negative++
		default:
			out.Sentiment.Neutral++
		}
	}
	if rated > 0 {
		avg := ratingSum / float64(rated)
		out.AverageRating = &avg
	}

	out.CommonPros, out.CommonCons = extractProsCons(reviews)
	out.CategoryScores = categoryScores(reviews)
	return out
}

func extractProsCons(reviews []Review) ([]string, []string) {
	var explicitPros, explicitCons []string
	proCounts := map[termHit]int{}
	conCounts := map[termHit]int{}

	for _, r := range reviews {
		text := strings.ToLower(r.Text)
		if strings.TrimSpace(text) == "" {
			continue
		}

		explicitPros = append(explicitPros, sectionItems(prosSectionRe, text)...)
		explicitCons = append(explicitCons, sectionItems(consSectionRe, text)...)

		words := strings.Fields(text)
		for i, w := range words {
			w = strings.Trim(w, ".,!?;:()")
			_, pos := positiveTerms[w]
			_, neg := negativeTerms[w]
			if !pos && !neg {
				continue
			}

			// Look at a small window around the term to pin it to a category.
			lo := i - 5
			if lo < 0 {
				lo = 0
			}
			hi := i + 5
			if hi > len(words) {
				hi = len(words)
			}
			context := strings.Join(words[lo:hi], " ")

			for _, cat := range categoryOrder() {
				if !mentionsAny(context, categoryTerms[cat]) {
					continue
				}
				if pos {
					proCounts[termHit{cat, w}]++
				} else {
					conCounts[termHit{cat, w}]++
				}
				break
			}
		}
	}

	pros := assembleList(explicitPros, proCounts, true)
	cons := assembleList(explicitCons, conCounts, false)
	return pros, cons
}

type termHit struct {
	category string
	term     string
}

func sectionItems(re *regexp.Regexp, text string) []string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return nil
	}

	var out []string
	for _, item := range itemSplitRe.Split(m[1], -1) {
		item = strings.TrimSpace(item)
		if len(item) > 3 {
			out = append(out, item)
		}
	}
	return out
}

func assembleList(explicit []string, implicit map[termHit]int, positive bool) []string {
	out := make([]string, 0, maxListed)
	seen := map[string]struct{}{}

	add := func(s string) {
		if len(out) >= maxListed {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, p := range explicit {
		add(capitalize(p))
	}

	hits := make([]termHit, 0, len(implicit))
	for h := range implicit {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool {
		if implicit[hits[i]] != implicit[hits[j]] {
			return implicit[hits[i]] > implicit[hits[j]]
		}
		if hits[i].category != hits[j].category {
			return hits[i].category < hits[j].category
		}
		return hits[i].term < hits[j].term
	})
	for _, h := range hits {
		add(phrase(h.category, h.term, positive))
	}
	return out
}

func phrase(category, term string, positive bool) string {
	p, ok := phrasings[category]
	if !ok {
		return capitalize(term)
	}
	if positive {
		return fmt.Sprintf(p[0], term)
	}
	return fmt.Sprintf(p[1], term)
}

// categoryScores averages the ratings of reviews that mention a category's
// vocabulary. Categories nobody wrote about are omitted.
func categoryScores(reviews []Review) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}

	for _, r := range reviews {
		if r.Rating == nil {
			continue
		}
		text := strings.ToLower(r.Text)
		for cat, terms := range categoryTerms {
			if mentionsAny(text, terms) {
				sums[cat] += *r.Rating
				counts[cat]++
			}
		}
	}

	out := make(map[string]float64, len(sums))
	for cat, sum := range sums {
		out[cat] = math.Round(sum/float64(counts[cat])*10) / 10
	}
	return out
}

func mentionsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func categoryOrder() []string {
	keys := make([]string, 0, len(categoryTerms))
	for k := range categoryTerms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
