package evaluator

import (
	"fmt"

	"reinfors/game"
)

// EndState computes the exact game-theoretic outcome of a (state, action)
// pair by full backward induction. It recurses through every legal action at
// every ply, so it is only feasible for small games.
//
// Values are memoized by concrete successor state and cached permanently:
// states are immutable and a position's value never changes, so no staleness
// is possible.
type EndState[S game.Keyed[S, A], A comparable] struct {
	visited map[S]game.Outcome
	metrics Metrics
}

// NewEndState returns an EndState evaluator with an empty cache.
func NewEndState[S game.Keyed[S, A], A comparable]() *EndState[S, A] {
	return &EndState[S, A]{visited: make(map[S]game.Outcome)}
}

// Metrics returns the evaluator's work counters.
func (e *EndState[S, A]) Metrics() Metrics {
	e.metrics.Cached = len(e.visited)
	return e.metrics
}

// Evaluate returns the outcome both players can force after action is played
// in state. Action must be legal in state.
//
// The successor's value combines its children with this priority, from the
// successor's mover's viewpoint: any winning child wins immediately, else any
// draw is a draw, else every child loses and the position is a win for the
// player who moved into it. A non-terminal successor with zero legal actions
// is a contract violation and yields ErrNoLegalActions.
func (e *EndState[S, A]) Evaluate(state S, action A) (game.Outcome, error) {
	e.metrics.Calls++

	tr := state.Apply(action)
	next := tr.State
	if tr.Final {
		e.visited[next] = tr.Outcome
		return tr.Outcome, nil
	}
	if outcome, ok := e.visited[next]; ok {
		e.metrics.CacheHits++
		return outcome, nil
	}

	actions := next.LegalActions()
	if len(actions) == 0 {
		var zero game.Outcome
		return zero, fmt.Errorf("%w: %v", game.ErrNoLegalActions, next)
	}

	mover := next.CurrentPlayer()
	draws := 0
	for _, a := range actions {
		outcome, err := e.Evaluate(next, a)
		if err != nil {
			var zero game.Outcome
			return zero, err
		}
		if winner, won := outcome.Winner(); won && winner == mover {
			e.visited[next] = outcome
			return outcome, nil
		} else if !won {
			draws++
		}
	}

	// No winning move for the mover. A draw, if one exists, is the best
	// they can do; otherwise every move loses and the position belongs to
	// the player who moved into it.
	outcome := game.Win(state.CurrentPlayer())
	if draws > 0 {
		outcome = game.Draw()
	}
	e.visited[next] = outcome
	return outcome, nil
}
