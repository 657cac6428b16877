package game

import (
	"strings"

	"github.com/footyguess/gameserver/models"
)

// Evaluate reports whether the candidate matches the question: a
// non-empty, case-insensitive intersection between the candidate's trait
// values and the question's expected values. Scalar traits are treated
// as single-element sets, so equality against any expected value counts.
// Pure and deterministic; used both for truthful answers and for
// elimination filtering.
func Evaluate(q models.Question, f models.Footballer) bool {
	values := f.Trait(q.Trait)
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		for _, want := range q.ExpectedValues {
			if strings.EqualFold(v, want) {
				return true
			}
		}
	}
	return false
}
