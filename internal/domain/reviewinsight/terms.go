package reviewinsight

// Term lists are fixed and hand-tuned; order matters only for readability.

var positiveTerms = map[string]struct{}{}

var negativeTerms = map[string]struct{}{}

func init() {
	for _, t := range []string{
		"comfortable", "reliable", "spacious", "powerful", "efficient",
		"quiet", "smooth", "luxurious", "responsive", "quality",
		"stylish", "affordable", "economical", "safety", "technology",
		"fast", "fun", "excellent", "great", "good", "love", "best",
		"perfect", "premium", "impressed", "amazing", "solid", "well-built",
		"handles", "value", "recommend",
	} {
		positiveTerms[t] = struct{}{}
	}
	for _, t := range []string{
		"uncomfortable", "unreliable", "cramped", "underpowered", "inefficient",
		"noisy", "rough", "cheap", "slow", "poor", "ugly", "expensive",
		"costly", "unsafe", "outdated", "disappointing", "bad", "worst",
		"terrible", "awful", "hate", "dislike", "problem", "issue",
		"break", "broken", "fails", "avoid", "regret", "money", "repair",
	} {
		negativeTerms[t] = struct{}{}
	}
}

// categoryTerms groups review vocabulary into the rating categories shown on
// the analysis card.
var categoryTerms = map[string][]string{
	"performance":   {"acceleration", "power", "engine", "speed", "horsepower", "torque", "handling", "braking", "performance"},
	"comfort":       {"seat", "comfort", "quiet", "noise", "ride", "cabin", "interior", "spacious", "room", "legroom"},
	"reliability":   {"reliable", "dependable", "durable", "problem", "issue", "repair", "maintenance", "breakdown", "quality"},
	"fuel_economy":  {"mpg", "mileage", "fuel", "gas", "economy", "efficient", "consumption", "tank", "range"},
	"value":         {"price", "cost", "value", "worth", "money", "expensive", "cheap", "affordable", "budget"},
	"tech_features": {"feature", "technology", "tech", "infotainment", "screen", "interface", "connectivity", "software", "audio"},
	"styling":       {"design", "look", "style", "appearance", "exterior", "color", "beautiful", "attractive", "ugly"},
	"safety":        {"safety", "safe", "crash", "airbag", "assist", "emergency", "brake", "collision", "warning"},
}

// phrasings turns a (category, term) hit into card copy. Keyed by category,
// first entry positive, second negative.
var phrasings = map[string][2]string{
	"performance":   {"Excellent performance and %s driving experience", "Disappointing performance and %s issues"},
	"comfort":       {"Very comfortable with %s interior", "Uncomfortable %s and cabin experience"},
	"reliability":   {"Highly reliable and %s", "Reliability concerns with %s issues"},
	"fuel_economy":  {"Excellent fuel economy and %s efficiency", "Poor fuel economy and %s consumption"},
	"value":         {"Great value for the %s", "Overpriced for what you get (%s)"},
	"tech_features": {"Impressive technology and %s features", "Outdated or problematic %s features"},
	"styling":       {"Attractive %s and styling", "Unappealing %s and styling"},
	"safety":        {"Strong safety with %s", "Safety concerns around %s"},
}
