package importer

import (
	"testing"
)

func TestParseTitle(t *testing.T) {
	cases := []struct {
		title        string
		manufacturer string
		model        string
		year         int
	}{
		{"2023 Toyota Camry", "Toyota", "Camry", 2023},
		{"Toyota Camry 2023", "Toyota", "Camry", 2023},
		{"2024 Chevrolet Corvette Stingray", "Chevrolet", "Corvette Stingray", 2024},
		{"Camry", "", "", 0},
		{"", "", "", 0},
	}
	for _, tc := range cases {
		m, model, year := parseTitle(tc.title)
		if m != tc.manufacturer || model != tc.model || year != tc.year {
			t.Errorf("parseTitle(%q) = (%q, %q, %d), want (%q, %q, %d)",
				tc.title, m, model, year, tc.manufacturer, tc.model, tc.year)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"$28,500", 28500},
		{"28500 USD", 28500},
		{"28,500", 28500},
		{"call for price", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := parsePrice(tc.raw); got != tc.want {
			t.Errorf("parsePrice(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseYearRejectsOutOfRange(t *testing.T) {
	if got := parseYear("1850"); got != 0 {
		t.Errorf("parseYear(1850) = %d, want 0", got)
	}
	if got := parseYear("2023"); got != 2023 {
		t.Errorf("parseYear(2023) = %d, want 2023", got)
	}
	if got := parseYear("soon"); got != 0 {
		t.Errorf("parseYear(soon) = %d, want 0", got)
	}
}

func TestNormalizeBodyType(t *testing.T) {
	cases := map[string]string{
		"Sport Utility Vehicle": "suv",
		"SUV":                   "suv",
		"Pickup Truck":          "pickup",
		"Sedan":                 "sedan",
		"":                      "",
	}
	for raw, want := range cases {
		if got := normalizeBodyType(raw); got != want {
			t.Errorf("normalizeBodyType(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestDetailToUpsertFallsBackToTitle(t *testing.T) {
	up, err := detailToUpsert(carDetail{
		title: "2023 Honda CR-V",
		price: "$33,500",
	})
	if err != nil {
		t.Fatalf("detailToUpsert: %v", err)
	}
	if up.Manufacturer != "Honda" || up.Model != "CR-V" || up.Year != 2023 {
		t.Fatalf("identity = %q %q %d", up.Manufacturer, up.Model, up.Year)
	}
	if up.Price == nil || *up.Price != 33500 {
		t.Fatalf("Price = %v, want 33500", up.Price)
	}
}

func TestDetailToUpsertRejectsMissingIdentity(t *testing.T) {
	if _, err := detailToUpsert(carDetail{title: "Great deal!"}); err == nil {
		t.Fatal("detailToUpsert accepted a detail with no identity")
	}
}
