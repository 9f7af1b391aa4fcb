package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// migrationColumns pulls the column names out of a CREATE TABLE migration so
// the repositories' select lists can be checked against the actual schema.
func migrationColumns(t *testing.T, file, table string) map[string]bool {
	t.Helper()

	b, err := os.ReadFile(filepath.Join("..", "..", "migrations", file))
	if err != nil {
		t.Fatalf("read migration %s: %v", file, err)
	}

	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	body := string(b)
	start := strings.Index(body, marker)
	if start < 0 {
		t.Fatalf("migration %s does not create table %s", file, table)
	}
	body = body[start+len(marker):]
	end := strings.Index(body, ");")
	if end < 0 {
		t.Fatalf("migration %s: unterminated CREATE TABLE", file)
	}

	cols := make(map[string]bool)
	for _, line := range strings.Split(body[:end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name := strings.ToLower(strings.Fields(line)[0])
		switch name {
		case "unique", "primary", "foreign", "constraint", "check":
			continue
		}
		cols[name] = true
	}
	return cols
}

func splitColumnList(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func TestCarColumnsMatchMigration(t *testing.T) {
	schema := migrationColumns(t, "V1__create_cars.sql", "cars")
	for _, col := range splitColumnList(carColumns) {
		if !schema[col] {
			t.Errorf("carColumns references %q, not defined in V1__create_cars.sql", col)
		}
	}
}

func TestReviewColumnsMatchMigration(t *testing.T) {
	schema := migrationColumns(t, "V2__create_reviews.sql", "reviews")
	for _, col := range splitColumnList(reviewColumns) {
		if !schema[col] {
			t.Errorf("reviewColumns references %q, not defined in V2__create_reviews.sql", col)
		}
	}
}
