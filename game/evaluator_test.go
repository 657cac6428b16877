package game

import (
	"testing"

	"github.com/footyguess/gameserver/models"
)

func TestEvaluate(t *testing.T) {
	keeper := models.Footballer{
		ID: "f1", Name: "Test Keeper", Club: "Madrid FC", Nation: "Spain",
		Position: "GK", AgeBracket: "30+", HairColor: "black",
		FacialHair: true, BootsColor: "white",
	}

	cases := []struct {
		name     string
		question models.Question
		want     bool
	}{
		{"position match", models.Question{Trait: "position", ExpectedValues: []string{"GK"}}, true},
		{"position mismatch", models.Question{Trait: "position", ExpectedValues: []string{"FWD"}}, false},
		{"multi-value expected", models.Question{Trait: "position", ExpectedValues: []string{"DEF", "GK"}}, true},
		{"case-insensitive value", models.Question{Trait: "position", ExpectedValues: []string{"gk"}}, true},
		{"case-insensitive trait", models.Question{Trait: "Position", ExpectedValues: []string{"GK"}}, true},
		{"club match", models.Question{Trait: "club", ExpectedValues: []string{"Madrid FC", "Sevilla Norte"}}, true},
		{"nation alias", models.Question{Trait: "nationality", ExpectedValues: []string{"Spain"}}, true},
		{"facial hair yes", models.Question{Trait: "facial_hair", ExpectedValues: []string{"yes"}}, true},
		{"facial hair no", models.Question{Trait: "facial_hair", ExpectedValues: []string{"no"}}, false},
		{"unknown trait", models.Question{Trait: "shoe_size", ExpectedValues: []string{"42"}}, false},
		{"empty expected values", models.Question{Trait: "position", ExpectedValues: nil}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(tc.question, keeper); got != tc.want {
				t.Errorf("Evaluate(%q/%v) = %v, want %v", tc.question.Trait, tc.question.ExpectedValues, got, tc.want)
			}
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	q := models.Question{Trait: "hair_color", ExpectedValues: []string{"black"}}
	f := models.Footballer{ID: "f1", HairColor: "black"}

	first := Evaluate(q, f)
	for i := 0; i < 10; i++ {
		if Evaluate(q, f) != first {
			t.Fatal("Evaluate is not deterministic for identical inputs")
		}
	}
}
