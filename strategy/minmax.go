package strategy

import (
	"fmt"

	"reinfors/evaluator"
	"reinfors/game"
)

// MinMax pairs with an outcome-valued evaluator (evaluator.EndState): it
// returns the first action whose evaluation is a win for the mover, else a
// drawing action, else a losing one. Against a perfect opponent a losing
// action is all that is left; there is no resignation.
type MinMax[S game.State[S, A], A comparable] struct{}

// NewMinMax returns a MinMax strategy.
func NewMinMax[S game.State[S, A], A comparable]() MinMax[S, A] {
	return MinMax[S, A]{}
}

// BestAction scans the legal actions, short-circuiting on the first win for
// the mover. If no action evaluates to a win, draw, or loss, the game
// contract is inconsistent and ErrStrategyFailure is returned.
func (MinMax[S, A]) BestAction(state S, eval evaluator.Evaluator[S, A, game.Outcome]) (A, error) {
	var zero A
	actions := state.LegalActions()
	if len(actions) == 0 {
		return zero, fmt.Errorf("%w: %v", game.ErrNoLegalActions, state)
	}

	mover := state.CurrentPlayer()
	var draw, loss *A
	for i, action := range actions {
		outcome, err := eval.Evaluate(state, action)
		if err != nil {
			return zero, err
		}
		if winner, won := outcome.Winner(); won {
			if winner == mover {
				return action, nil
			}
			loss = &actions[i]
		} else {
			draw = &actions[i]
		}
	}
	if draw != nil {
		return *draw, nil
	}
	if loss != nil {
		return *loss, nil
	}
	return zero, fmt.Errorf("%w: no action evaluated to a win, draw, or loss in %v",
		game.ErrStrategyFailure, state)
}
