package chat

import (
	"regexp"
	"strings"
)

// Classification describes the intent of a user query and which backend
// family should serve it.
type Classification struct {
	QueryTypes           []string `json:"query_types"`
	RoutingCategory      string   `json:"routing_category"`
	IsAutomotiveSpecific bool     `json:"is_automotive_specific"`
	IsConversational     bool     `json:"is_conversational"`
	Confidence           float64  `json:"confidence"`
}

const (
	CategoryAutomotiveSpecific   = "automotive_specific"
	CategoryAutomotiveContextual = "automotive_contextual"
	CategoryConversational       = "conversational"
)

type intentPattern struct {
	name string
	re   *regexp.Regexp
}

// Ordered so classification output is deterministic. Conversational intents
// first, then the automotive ones.
var intentPatterns = []intentPattern{
	{"greeting", regexp.MustCompile(`\b(hello|hi|hey|greetings|good morning|good afternoon|good evening|how are you|how r u|how's it going|what's up|sup)\b`)},
	{"farewell", regexp.MustCompile(`\b(bye|goodbye|see you|later|farewell)\b`)},
	{"gratitude", regexp.MustCompile(`\b(thanks|thank you|appreciate|grateful)\b`)},
	{"sentiment", regexp.MustCompile(`\b(like|love|hate|enjoy|dislike)\b`)},
	{"insult", regexp.MustCompile(`\b(dumb|stupid|useless|bad|awful|sucks)\b`)},
	{"praise", regexp.MustCompile(`\b(great|awesome|excellent|cool|nice|good|helpful)\b`)},

	{"features", regexp.MustCompile(`\b(features?|what.*(has|includes?|comes? with)|equipped|options?)\b`)},
	{"specs", regexp.MustCompile(`\b(specs?|specifications?|details|technical|dimensions)\b`)},
	{"fuel_economy", regexp.MustCompile(`\b(fuel|mpg|mileage|gas|economy|efficient|consumption)\b`)},
	{"performance", regexp.MustCompile(`\b(performance|0-60|acceleration|speed|fast|quick|horsepower|hp|power|engine)\b`)},
	{"safety", regexp.MustCompile(`\b(safety|safe|crash|protection|airbags?|assists?)\b`)},
	{"interior", regexp.MustCompile(`\b(interior|inside|cabin|comfort|seats?|seating|room|space)\b`)},
	{"exterior", regexp.MustCompile(`\b(exterior|outside|looks?|design|style|appear|colors?)\b`)},
	{"reliability", regexp.MustCompile(`\b(reliability|reliable|dependable|quality|issues?|problems?|lasting)\b`)},
	{"comparison", regexp.MustCompile(`\b(compare|comparison|versus|vs\.?|better than|difference)\b`)},
	{"price", regexp.MustCompile(`\b(price|cost|expensive|cheap|afford|value|worth)\b`)},
	{"recommendation", regexp.MustCompile(`\b(recommend|should i|worth buying|good choice|suggest)\b`)},
	{"technology", regexp.MustCompile(`\b(tech|technology|infotainment|connectivity|screen|display|entertainment)\b`)},
	{"opinion", regexp.MustCompile(`\b(what.+think|your opinion|rate|review|thoughts)\b`)},
}

var automotiveSpecific = map[string]bool{
	"features": true, "specs": true, "fuel_economy": true, "performance": true,
	"safety": true, "interior": true, "exterior": true, "reliability": true,
	"comparison": true, "technology": true,
}

var automotiveContextual = map[string]bool{
	"recommendation": true, "opinion": true, "price": true,
}

var conversational = map[string]bool{
	"greeting": true, "farewell": true, "gratitude": true,
	"sentiment": true, "insult": true, "praise": true,
}

// Classify matches a query against the intent patterns and derives the
// routing category and a rough confidence score.
func Classify(query string) Classification {
	query = strings.TrimSpace(query)
	if query == "" {
		return Classification{
			QueryTypes:       []string{"general"},
			RoutingCategory:  CategoryConversational,
			IsConversational: true,
			Confidence:       0.5,
		}
	}

	lower := strings.ToLower(query)
	matched := make([]string, 0, 4)
	for _, p := range intentPatterns {
		if p.re.MatchString(lower) {
			matched = append(matched, p.name)
		}
	}
	if len(matched) == 0 {
		matched = []string{"general"}
	}

	return Classification{
		QueryTypes:           matched,
		RoutingCategory:      routingCategory(matched),
		IsAutomotiveSpecific: anyIn(matched, automotiveSpecific),
		IsConversational:     anyIn(matched, conversational),
		Confidence:           confidence(matched, query),
	}
}

func routingCategory(matched []string) string {
	if anyIn(matched, automotiveSpecific) {
		return CategoryAutomotiveSpecific
	}
	if anyIn(matched, automotiveContextual) {
		return CategoryAutomotiveContextual
	}
	return CategoryConversational
}

func anyIn(matched []string, set map[string]bool) bool {
	for _, m := range matched {
		if set[m] {
			return true
		}
	}
	return false
}

func confidence(matched []string, query string) float64 {
	c := 0.5

	if n := len(matched); n > 1 {
		if n > 3 {
			n = 3
		}
		c += 0.1 * float64(n)
	}

	words := len(strings.Fields(query))
	if words > 5 {
		c += 0.1
	}
	if words < 3 {
		simple := false
		for _, m := range matched {
			if m == "greeting" || m == "farewell" {
				simple = true
				break
			}
		}
		if !simple {
			c -= 0.1
		}
	}

	if c < 0.1 {
		c = 0.1
	}
	if c > 0.9 {
		c = 0.9
	}
	return c
}
