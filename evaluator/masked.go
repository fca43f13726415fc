package evaluator

import (
	"fmt"

	"reinfors/game"
)

// Bounds is the evaluation a belief-state evaluator can guarantee for an
// action: Mine is the best outcome the acting player is assured of, Theirs
// the best the opponent is assured of, each in {Loss, Draw, Win}. The two are
// not negatives of one another, because under imperfect information each
// side's belief state differs.
type Bounds struct {
	Mine   int8
	Theirs int8
}

// CompareBounds orders bounds lexicographically, Mine first. It is a total
// order; ok is always true. The signature matches strategy comparator hooks.
func CompareBounds(a, b Bounds) (int, bool) {
	if a.Mine != b.Mine {
		if a.Mine < b.Mine {
			return -1, true
		}
		return 1, true
	}
	if a.Theirs != b.Theirs {
		if a.Theirs < b.Theirs {
			return -1, true
		}
		return 1, true
	}
	return 0, true
}

// beliefKey caches evaluations by observable history, not by concrete state:
// the same history can correspond to many true states, and the acting
// player's knowledge is a function of what they observed. The history is an
// exact byte encoding; a hash would risk collisions that silently corrupt
// evaluation results.
type beliefKey[A comparable] struct {
	history string
	action  A
}

// Masked evaluates actions in games with hidden moves. Looking at the literal
// current state would leak information the acting player cannot have, so
// evaluation enumerates every concrete state consistent with the observable
// history (the belief state) and combines branch results conservatively: the
// guarantee must hold no matter which state is actual.
type Masked[S game.Hidden[S, A], A comparable] struct {
	visited map[beliefKey[A]]Bounds
	metrics Metrics
}

// NewMasked returns a Masked evaluator with an empty cache.
func NewMasked[S game.Hidden[S, A], A comparable]() *Masked[S, A] {
	return &Masked[S, A]{visited: make(map[beliefKey[A]]Bounds)}
}

// Metrics returns the evaluator's work counters.
func (m *Masked[S, A]) Metrics() Metrics {
	m.metrics.Cached = len(m.visited)
	return m.metrics
}

// Superposition returns every concrete state consistent with observing
// history from genesis. Known (visible or masked) entries apply the recorded
// action to each candidate, dropping candidates where it was illegal; an
// invisible entry branches over every legal hidden action of each candidate.
// Branches that reach a terminal state are pruned in both cases: an outcome
// would have been public, so a finished branch is inconsistent with play
// having continued.
func (m *Masked[S, A]) Superposition(genesis S, history []game.Info[A]) []S {
	states := []S{genesis}
	for _, info := range history {
		next := make([]S, 0, len(states))
		if action, known := info.Action(); known {
			for _, s := range states {
				if !s.IsLegal(action) {
					continue
				}
				ns := s.ApplyUnchecked(action)
				if _, done := ns.Outcome(); done {
					continue
				}
				next = append(next, ns)
			}
		} else {
			for _, s := range states {
				for _, action := range s.LegalHiddenActions() {
					ns := s.ApplyUnchecked(action)
					if _, done := ns.Outcome(); done {
						continue
					}
					next = append(next, ns)
				}
			}
		}
		states = next
	}
	return states
}

// Evaluate returns the bounds the acting player can guarantee by attempting
// action in state. The recursion looks one ply into the opponent's options
// for every non-terminal branch; it terminates because each recursive call
// lengthens the observable history and the game has a bounded number of
// plies.
func (m *Masked[S, A]) Evaluate(state S, action A) (Bounds, error) {
	m.metrics.Calls++

	history := state.VisibleHistory()
	key := beliefKey[A]{history: encodeHistory(state, history), action: action}
	if bounds, ok := m.visited[key]; ok {
		m.metrics.CacheHits++
		return bounds, nil
	}

	me := state.CurrentPlayer()
	bounds := Bounds{Mine: Win, Theirs: Win}
	for _, current := range m.Superposition(state.Genesis(), history) {
		// The action is assumed to silently fail in candidates where
		// it happens to be illegal; that does not invalidate the
		// candidate.
		if !current.IsLegal(action) {
			continue
		}
		next := current.ApplyUnchecked(action)
		if outcome, done := next.Outcome(); done {
			winner, won := outcome.Winner()
			switch {
			case won && winner == me:
				// A possible immediate win: the opponent can no
				// longer be assured of anything better than a
				// loss in this branch.
				bounds.Theirs = Loss
			case won:
				return Bounds{}, fmt.Errorf("%w: %v won immediately after a move by %v",
					game.ErrEvaluatorFailure, winner, me)
			default:
				bounds.Mine = min(bounds.Mine, Draw)
				bounds.Theirs = min(bounds.Theirs, Draw)
			}
			continue
		}

		// Non-terminal branch: bound the opponent's best reply across
		// their legal actions, each evaluated from their perspective,
		// and tighten our own bound by what they can do to us.
		theirBest := Loss
		for _, reply := range next.LegalActions() {
			rb, err := m.Evaluate(next, reply)
			if err != nil {
				return Bounds{}, err
			}
			// rb.Mine is the opponent's guarantee, rb.Theirs ours.
			switch {
			case rb.Mine == Win && rb.Theirs == Loss:
				// A reply that wins for them in every
				// consistent state: this branch is lost.
				bounds.Mine = Loss
				theirBest = Win
			case rb.Mine == Draw && rb.Theirs == Draw:
				bounds.Mine = min(bounds.Mine, Draw)
				theirBest = max(theirBest, Draw)
			case rb.Mine == Draw && rb.Theirs == Loss:
				bounds.Mine = Loss
				theirBest = max(theirBest, Draw)
			case rb.Mine == Loss && rb.Theirs == Win:
				// Their reply loses outright; changes nothing.
			case rb.Mine == Loss && rb.Theirs == Draw:
				bounds.Mine = min(bounds.Mine, Draw)
			case rb.Mine == Loss && rb.Theirs == Loss:
				bounds.Mine = Loss
			default:
				// Both sides assured of better than a loss is
				// impossible in a win/draw game; a reachable
				// combination here is a logic error to
				// investigate, not to paper over.
				return Bounds{}, fmt.Errorf("%w: impossible bound combination (mine=%d theirs=%d) after %v",
					game.ErrEvaluatorFailure, rb.Mine, rb.Theirs, reply)
			}
		}
		bounds.Theirs = min(bounds.Theirs, theirBest)
	}

	m.visited[key] = bounds
	return bounds, nil
}

// encodeHistory flattens an observable history into a compact byte string
// using the game's static action table.
func encodeHistory[S game.Hidden[S, A], A comparable](state S, history []game.Info[A]) string {
	buf := make([]byte, 0, 2*len(history))
	for _, info := range history {
		action, known := info.Action()
		if !known {
			buf = append(buf, byte(game.InvisibleAction))
			continue
		}
		buf = append(buf, byte(info.Kind()), byte(state.ActionIndex(action)))
	}
	return string(buf)
}
