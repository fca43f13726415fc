// Package evaluator implements the value-computation engines: a random
// baseline, exhaustive end-state backward induction in outcome and
// signed-byte forms, and the belief-state evaluator for games with hidden
// actions.
package evaluator

import "reinfors/game"

// Evaluator produces an evaluation for a candidate action in a state. What an
// evaluation is depends on the engine: the random baseline yields raw
// uint64s, backward induction yields outcomes or signed bytes, the
// belief-state evaluator yields bound pairs. Strategies consume evaluations
// over all legal actions to pick one.
//
// Evaluation runs to completion once invoked; there is no cancellation.
type Evaluator[S game.State[S, A], A comparable, E any] interface {
	Evaluate(state S, action A) (E, error)
}

// Metrics counts the work an evaluator has done. Evaluation is single
// threaded, so plain counters suffice. Cache hits not growing across a repeat
// call is the observable form of the memoization contract: the same key
// always maps to the same value, computed at most once.
type Metrics struct {
	Calls     int // evaluate invocations, including recursive ones
	CacheHits int // evaluations answered from the cache
	Cached    int // entries currently in the cache
}
