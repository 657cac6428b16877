package catalog

import (
	"testing"

	"github.com/footyguess/gameserver/models"
)

func TestFootballers_GetByIDs(t *testing.T) {
	c := NewFootballers(SeedFootballers())

	got, err := c.GetByIDs([]string{"f03", "f01"})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "f03" || got[1].ID != "f01" {
		t.Errorf("GetByIDs should preserve request order, got %v", got)
	}

	if _, err := c.GetByIDs([]string{"f01", "missing"}); err == nil {
		t.Error("GetByIDs should fail on an unknown ID")
	}
}

func TestFootballers_GetRandom(t *testing.T) {
	c := NewFootballers(SeedFootballers())

	got, err := c.GetRandom(5)
	if err != nil {
		t.Fatalf("GetRandom failed: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Expected 5 footballers, got %d", len(got))
	}
	seen := make(map[string]bool)
	for _, f := range got {
		if seen[f.ID] {
			t.Errorf("GetRandom returned %s twice", f.ID)
		}
		seen[f.ID] = true
	}

	// Requests larger than the catalog clamp to its size.
	all, err := c.GetRandom(c.Len() + 10)
	if err != nil {
		t.Fatalf("GetRandom failed: %v", err)
	}
	if len(all) != c.Len() {
		t.Errorf("Expected the whole catalog, got %d of %d", len(all), c.Len())
	}
}

func TestFootballers_GetRandom_Empty(t *testing.T) {
	c := NewFootballers(nil)
	if _, err := c.GetRandom(1); err == nil {
		t.Error("GetRandom on an empty catalog should fail")
	}
}

func TestFootballers_DeduplicatesOnLoad(t *testing.T) {
	c := NewFootballers([]models.Footballer{
		{ID: "f01", Name: "First"},
		{ID: "f01", Name: "Duplicate"},
	})
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry after dedupe, got %d", c.Len())
	}
	got, err := c.GetByIDs([]string{"f01"})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if got[0].Name != "First" {
		t.Errorf("First entry should win, got %q", got[0].Name)
	}
}

func TestQuestions_GetByID(t *testing.T) {
	c := NewQuestions(SeedQuestions())

	q, err := c.GetByID("q01")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if q.Trait != "position" {
		t.Errorf("Expected q01 to probe position, got %q", q.Trait)
	}

	if _, err := c.GetByID("q99"); err == nil {
		t.Error("GetByID should fail on an unknown ID")
	}
}

func TestSeedCatalogsAreConsistent(t *testing.T) {
	footballers := SeedFootballers()
	questions := SeedQuestions()

	if len(footballers) != 24 {
		t.Errorf("Expected a 24-card board, got %d", len(footballers))
	}

	// Every question trait must resolve for every footballer with a
	// non-empty value, otherwise boards could never be narrowed on it.
	for _, q := range questions {
		for _, f := range footballers {
			values := f.Trait(q.Trait)
			if len(values) == 0 {
				t.Errorf("Question %s trait %q resolves to nothing for %s", q.ID, q.Trait, f.ID)
			}
		}
	}
}
