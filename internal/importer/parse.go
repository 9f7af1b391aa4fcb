package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"astra/internal/repository"
)

var (
	yearRe  = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	priceRe = regexp.MustCompile(`[\d,]+`)
)

// detailToUpsert turns a scraped detail page into an upsert row. The title is
// the fallback for fields the spec table did not carry ("2023 Toyota Camry").
func detailToUpsert(d carDetail) (repository.CarUpsert, error) {
	manufacturer := strings.TrimSpace(d.manufacturer)
	model := strings.TrimSpace(d.model)
	year := parseYear(d.year)

	if manufacturer == "" || model == "" || year == 0 {
		tm, tmodel, tyear := parseTitle(d.title)
		if manufacturer == "" {
			manufacturer = tm
		}
		if model == "" {
			model = tmodel
		}
		if year == 0 {
			year = tyear
		}
	}
	if manufacturer == "" || model == "" || year == 0 {
		return repository.CarUpsert{}, fmt.Errorf("missing identity: manufacturer=%q model=%q year=%d", manufacturer, model, year)
	}

	up := repository.CarUpsert{
		Manufacturer: manufacturer,
		Model:        model,
		Year:         year,
		Features:     d.features,
	}
	if v := normalizeBodyType(d.bodyType); v != "" {
		up.BodyType = &v
	}
	if price := parsePrice(d.price); price > 0 {
		up.Price = &price
	}
	if v := strings.TrimSpace(d.engineInfo); v != "" {
		up.EngineInfo = &v
	}
	if v := strings.TrimSpace(d.transmission); v != "" {
		up.Transmission = &v
	}
	if v := strings.ToLower(strings.TrimSpace(d.fuelType)); v != "" {
		up.FuelType = &v
	}
	if v := strings.TrimSpace(d.description); v != "" {
		up.Description = &v
	}
	return up, nil
}

// parseTitle splits "2023 Toyota Camry" into its parts. Model keeps whatever
// follows the manufacturer, so multi-word models survive.
func parseTitle(title string) (manufacturer, model string, year int) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", 0
	}

	if m := yearRe.FindString(title); m != "" {
		year, _ = strconv.Atoi(m)
		title = strings.TrimSpace(strings.Replace(title, m, "", 1))
	}

	fields := strings.Fields(title)
	if len(fields) >= 2 {
		manufacturer = fields[0]
		model = strings.Join(fields[1:], " ")
	}
	return manufacturer, model, year
}

func parseYear(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	if year < 1900 || year > time.Now().Year()+2 {
		return 0
	}
	return year
}

// parsePrice accepts "$28,500", "28500 USD", "28,500".
func parsePrice(raw string) int {
	m := priceRe.FindString(raw)
	if m == "" {
		return 0
	}
	price, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil || price <= 0 {
		return 0
	}
	return price
}

var bodyTypeAliases = map[string]string{
	"sport utility vehicle": "suv",
	"sports car":            "sport",
	"pickup truck":          "pickup",
	"station wagon":         "wagon",
	"mini van":              "minivan",
}

func normalizeBodyType(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return ""
	}
	if alias, ok := bodyTypeAliases[v]; ok {
		return alias
	}
	return v
}
