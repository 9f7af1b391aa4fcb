package chat

import (
	"reflect"
	"testing"
)

func TestClassifyEmptyQuery(t *testing.T) {
	got := Classify("")
	if !reflect.DeepEqual(got.QueryTypes, []string{"general"}) {
		t.Fatalf("QueryTypes = %v, want [general]", got.QueryTypes)
	}
	if got.RoutingCategory != CategoryConversational {
		t.Fatalf("RoutingCategory = %q, want %q", got.RoutingCategory, CategoryConversational)
	}
	if got.Confidence != 0.5 {
		t.Fatalf("Confidence = %v, want 0.5", got.Confidence)
	}
}

func TestClassifyGreeting(t *testing.T) {
	got := Classify("hello there")
	if !contains(got.QueryTypes, "greeting") {
		t.Fatalf("QueryTypes = %v, want greeting", got.QueryTypes)
	}
	if got.RoutingCategory != CategoryConversational {
		t.Fatalf("RoutingCategory = %q, want %q", got.RoutingCategory, CategoryConversational)
	}
	if !got.IsConversational {
		t.Fatal("IsConversational = false, want true")
	}
}

func TestClassifyAutomotiveSpecific(t *testing.T) {
	got := Classify("what is the fuel economy and horsepower of this engine?")
	if !contains(got.QueryTypes, "fuel_economy") || !contains(got.QueryTypes, "performance") {
		t.Fatalf("QueryTypes = %v, want fuel_economy and performance", got.QueryTypes)
	}
	if got.RoutingCategory != CategoryAutomotiveSpecific {
		t.Fatalf("RoutingCategory = %q, want %q", got.RoutingCategory, CategoryAutomotiveSpecific)
	}
	if !got.IsAutomotiveSpecific {
		t.Fatal("IsAutomotiveSpecific = false, want true")
	}
}

func TestClassifyContextualCategory(t *testing.T) {
	got := Classify("how much does it usually cost to own one of these?")
	if got.RoutingCategory != CategoryAutomotiveContextual {
		t.Fatalf("RoutingCategory = %q, want %q", got.RoutingCategory, CategoryAutomotiveContextual)
	}
}

func TestClassifyUnmatchedFallsBackToGeneral(t *testing.T) {
	got := Classify("zzz qqq xxx")
	if !reflect.DeepEqual(got.QueryTypes, []string{"general"}) {
		t.Fatalf("QueryTypes = %v, want [general]", got.QueryTypes)
	}
}

func TestClassifyConfidenceBounds(t *testing.T) {
	// Short non-greeting query loses confidence.
	short := Classify("engine specs")
	if short.Confidence >= 0.9 {
		t.Fatalf("short query confidence = %v, want < 0.9", short.Confidence)
	}

	// Long multi-intent query gains confidence but stays capped.
	long := Classify("can you compare the fuel economy, safety features, and interior comfort of this car against its rivals?")
	if long.Confidence > 0.9 {
		t.Fatalf("confidence = %v, want <= 0.9", long.Confidence)
	}
	if long.Confidence <= short.Confidence {
		t.Fatalf("long query confidence %v should exceed short query confidence %v", long.Confidence, short.Confidence)
	}
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
