// Package game defines the contract every turn-based adversarial game
// implements, plus the small value types (players, outcomes, observable
// information) shared by evaluators and strategies.
package game

// Transition is the result of applying an action to a state: either the next
// state of an ongoing game, or the final state together with its outcome.
// Exactly one of the two is meaningful; Final says which.
type Transition[S any] struct {
	State   S
	Outcome Outcome
	Final   bool
}

// Ongoing wraps a non-terminal successor state.
func Ongoing[S any](state S) Transition[S] {
	return Transition[S]{State: state}
}

// Finished wraps a terminal state and its outcome.
func Finished[S any](state S, outcome Outcome) Transition[S] {
	return Transition[S]{State: state, Outcome: outcome, Final: true}
}

// State is the contract every game implements. States are pure values: Apply
// never mutates the receiver, it returns a new state. Evaluators recurse
// through many branches sharing ancestors and rely on this.
//
// Apply is total over the declared action space, but its behavior for an
// action that is illegal in the receiver is game-defined: a game may reject,
// silently absorb, or no-op it. LegalActions must never include an action
// that takes Apply outside the game's rules. The returned slice is freshly
// produced on each call and finite.
type State[S any, A comparable] interface {
	Apply(action A) Transition[S]
	LegalActions() []A
	CurrentPlayer() Player
}

// Keyed is satisfied by states that can serve directly as memoization keys.
// Evaluators that cache by concrete state require it.
type Keyed[S any, A comparable] interface {
	State[S, A]
	comparable
}

// Enumerable is implemented by games whose whole action space is a fixed,
// statically known table. ActionIndex(a) is the position of a in Actions.
type Enumerable[A comparable] interface {
	Actions() []A
	ActionIndex(action A) int
}

// Terminal is an optional capability for inspecting a state's outcome without
// applying an action. The driving loop queries it to short-circuit games that
// start (or resume) in a finished position.
type Terminal interface {
	Outcome() (Outcome, bool)
}

// OutcomeOf reports the outcome of state if it implements Terminal and is
// finished.
func OutcomeOf(state any) (Outcome, bool) {
	if t, ok := state.(Terminal); ok {
		return t.Outcome()
	}
	return Outcome{}, false
}

// Input is the user-input collaborator for interactive play: a blocking call
// that returns the chosen action for a human-controlled turn. Parsing and
// validation are the collaborator's job, never the engine's.
type Input[A comparable] func() (A, error)
