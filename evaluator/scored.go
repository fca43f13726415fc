package evaluator

import (
	"fmt"

	"reinfors/game"
)

// Value scores of a position from the mover's perspective.
const (
	Loss int8 = -1
	Draw int8 = 0
	Win  int8 = 1
)

// Scored is EndState with a cheaper representation for two-player zero-sum
// games: the same backward induction, but caching a signed byte per position
// instead of an Outcome. The cached value is from the perspective of the
// player to move in that position.
type Scored[S game.Keyed[S, A], A comparable] struct {
	visited map[S]int8
	metrics Metrics
}

// NewScored returns a Scored evaluator with an empty cache.
func NewScored[S game.Keyed[S, A], A comparable]() *Scored[S, A] {
	return &Scored[S, A]{visited: make(map[S]int8)}
}

// Metrics returns the evaluator's work counters.
func (s *Scored[S, A]) Metrics() Metrics {
	s.metrics.Cached = len(s.visited)
	return s.metrics
}

// Evaluate returns the forced value of playing action in state, from the
// perspective of state's mover: Win if the action forces a win, Draw if it
// forces at best a draw, Loss if the opponent can then force a win. Action
// must be legal in state.
func (s *Scored[S, A]) Evaluate(state S, action A) (int8, error) {
	s.metrics.Calls++

	tr := state.Apply(action)
	next := tr.State
	if tr.Final {
		score := Draw
		if winner, won := tr.Outcome.Winner(); won {
			if winner == state.CurrentPlayer() {
				score = Win
			} else {
				score = Loss
			}
		}
		s.visited[next] = -score
		return score, nil
	}
	if value, ok := s.visited[next]; ok {
		s.metrics.CacheHits++
		return -value, nil
	}

	actions := next.LegalActions()
	if len(actions) == 0 {
		return 0, fmt.Errorf("%w: %v", game.ErrNoLegalActions, next)
	}

	best := Loss
	for _, a := range actions {
		value, err := s.Evaluate(next, a)
		if err != nil {
			return 0, err
		}
		if value > best {
			best = value
		}
		if best == Win {
			break
		}
	}
	s.visited[next] = best
	return -best, nil
}
