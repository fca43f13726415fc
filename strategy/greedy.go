package strategy

import (
	"fmt"

	"reinfors/evaluator"
	"reinfors/game"
)

// Greedy evaluates every legal action and returns the one with the strictly
// greatest evaluation under the configured order. Ties keep the earlier
// action.
type Greedy[S game.State[S, A], A comparable, E any] struct {
	compare Compare[E]
}

// NewGreedy returns a Greedy strategy ordering evaluations with compare.
func NewGreedy[S game.State[S, A], A comparable, E any](compare Compare[E]) Greedy[S, A, E] {
	return Greedy[S, A, E]{compare: compare}
}

// BestAction returns the legal action with the greatest evaluation. An empty
// legal-action set yields ErrNoLegalActions; an incomparable pair of
// evaluations yields ErrEvaluatorFailure naming the conflicting actions.
func (g Greedy[S, A, E]) BestAction(state S, eval evaluator.Evaluator[S, A, E]) (A, error) {
	var zero A
	actions := state.LegalActions()
	if len(actions) == 0 {
		return zero, fmt.Errorf("%w: %v", game.ErrNoLegalActions, state)
	}

	best := actions[0]
	bestEval, err := eval.Evaluate(state, best)
	if err != nil {
		return zero, err
	}
	for _, action := range actions[1:] {
		e, err := eval.Evaluate(state, action)
		if err != nil {
			return zero, err
		}
		c, ok := g.compare(bestEval, e)
		if !ok {
			return zero, fmt.Errorf("%w: evaluations of %v and %v are incomparable",
				game.ErrEvaluatorFailure, best, action)
		}
		if c < 0 {
			best, bestEval = action, e
		}
	}
	return best, nil
}
