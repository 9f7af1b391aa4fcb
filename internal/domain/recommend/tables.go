package recommend

// BudgetRange is a closed-open price interval. Max < 0 means unbounded above.
type BudgetRange struct {
	Min int
	Max int
}

// Width returns the interval width, or -1 for unbounded ranges.
func (r BudgetRange) Width() int {
	if r.Max < 0 {
		return -1
	}
	return r.Max - r.Min
}

// budgetRanges partitions the non-negative price line, ordered by ascending
// lower bound. Tokens match the wizard's budget question options.
var budgetRanges = map[string]BudgetRange{
	"under_twenty":     {Min: 0, Max: 20000},
	"twenty_to_thirty": {Min: 20000, Max: 30000},
	"thirty_to_forty":  {Min: 30000, Max: 40000},
	"forty_to_sixty":   {Min: 40000, Max: 60000},
	"over_sixty":       {Min: 60000, Max: -1},
}

// similarBodyTypes is keyed by the REQUESTED body type. The table is
// intentionally asymmetric: van lists suv, suv does not list van.
var similarBodyTypes = map[string][]string{
	"sedan": {"coupe", "hatchback"},
	"suv":   {"crossover", "wagon"},
	"truck": {"pickup", "van"},
	"coupe": {"sedan", "sport"},
	"van":   {"minivan", "suv"},
}

// relatedUseKeywords maps a requested primary-use token to keywords that
// signal a related use when found in a vehicle description.
var relatedUseKeywords = map[string][]string{
	"daily_commute": {"commute", "daily", "city"},
	"family":        {"family", "spacious", "comfortable"},
	"luxury":        {"luxury", "premium", "comfort"},
	"performance":   {"sport", "fast", "powerful"},
	"utility":       {"work", "practical", "versatile"},
}

// BudgetRangeFor exposes the budget table for callers that render the
// wizard's budget options.
func BudgetRangeFor(token string) (BudgetRange, bool) {
	r, ok := budgetRanges[token]
	return r, ok
}
