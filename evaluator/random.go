package evaluator

import "reinfors/game"

// Linear-congruential update constants (Numerical Recipes).
const (
	lcgMultiplier uint64 = 1664525
	lcgIncrement  uint64 = 1013904223
)

// Random is a non-informative baseline: a deterministic pseudo-random scalar
// per call, independent of the game. Useful for exercising strategy plumbing
// and as the weak side of a matchup.
type Random[S game.State[S, A], A comparable] struct {
	state uint64
}

// NewRandom returns a Random evaluator seeded with seed. Equal seeds produce
// equal evaluation sequences.
func NewRandom[S game.State[S, A], A comparable](seed uint64) *Random[S, A] {
	return &Random[S, A]{state: seed}
}

// Evaluate advances the generator and returns its new state. The state and
// action are ignored.
func (r *Random[S, A]) Evaluate(S, A) (uint64, error) {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return r.state, nil
}
