// Package strategy turns evaluations into a chosen action.
package strategy

import (
	"cmp"
	"math"

	"reinfors/evaluator"
	"reinfors/game"
)

// Strategy picks an action for the player to move in state, consulting the
// evaluator for each legal action. Implementations assume the game is not
// over; the driving loop checks terminality before asking.
type Strategy[S game.State[S, A], A comparable, E any] interface {
	BestAction(state S, eval evaluator.Evaluator[S, A, E]) (A, error)
}

// Compare is a comparison hook over evaluations: negative if a ranks below b,
// zero if equal, positive if above. ok is false when the two are
// incomparable, which Greedy reports as an evaluator failure.
type Compare[E any] func(a, b E) (c int, ok bool)

// Ordered compares any ordered evaluation type. Always comparable.
func Ordered[E cmp.Ordered](a, b E) (int, bool) {
	return cmp.Compare(a, b), true
}

// Float64 compares float64 evaluations, reporting NaN as incomparable.
func Float64(a, b float64) (int, bool) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, false
	}
	return cmp.Compare(a, b), true
}
