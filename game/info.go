package game

// Visibility classifies one entry of a state's action history as seen by the
// player to move.
type Visibility uint8

const (
	// VisibleAction means the action and its effect are publicly known.
	VisibleAction Visibility = iota
	// MaskedAction means the acting player knows which action they
	// attempted but not whether it silently succeeded.
	MaskedAction
	// InvisibleAction means neither the action nor its effect is known to
	// the observer.
	InvisibleAction
)

// Info is one observable entry of an action history. It is comparable so that
// games can expose histories as plain slices and evaluators can encode them
// into cache keys.
type Info[A comparable] struct {
	action A
	kind   Visibility
}

// Visible records a publicly known action.
func Visible[A comparable](action A) Info[A] {
	return Info[A]{action: action, kind: VisibleAction}
}

// Masked records an attempted hidden action whose effect is unknown to the
// actor.
func Masked[A comparable](action A) Info[A] {
	return Info[A]{action: action, kind: MaskedAction}
}

// Invisible records a turn whose action is unknown to the observer.
func Invisible[A comparable]() Info[A] {
	return Info[A]{kind: InvisibleAction}
}

// Kind returns the visibility class of the entry.
func (i Info[A]) Kind() Visibility { return i.kind }

// Action returns the recorded action. known is false for invisible entries,
// whose action is meaningless.
func (i Info[A]) Action() (action A, known bool) {
	return i.action, i.kind != InvisibleAction
}

// Hidden is the contract for games where some actions' effects are not common
// knowledge. The belief-state evaluator never trusts a single concrete state
// of such a game; it works from Genesis and VisibleHistory instead.
//
// ApplyUnchecked is the unchecked fast path: it assumes the action is legal
// and the state non-terminal, and it must silently absorb a hidden action
// whose target turns out to be taken (the attempt consumes the turn with no
// public signal). The belief-state evaluator relies on that absorption.
type Hidden[S any, A comparable] interface {
	State[S, A]
	Enumerable[A]
	Terminal

	// Genesis returns the starting state this state descends from.
	Genesis() S
	// VisibleHistory projects the action history into what the player to
	// move can observe. The first hidden action attempted by that player
	// is Visible (its success was guaranteed when it was made); each of
	// their later hidden actions is Masked; the opponent's hidden actions
	// are Invisible.
	VisibleHistory() []Info[A]
	// ApplyUnchecked applies a legal action without legality or
	// terminality checks.
	ApplyUnchecked(action A) S
	// IsLegal reports whether the action may be attempted here.
	IsLegal(action A) bool
	// LegalHiddenActions returns the hidden actions attemptable here.
	LegalHiddenActions() []A
}
