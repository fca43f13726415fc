package game

import "errors"

// Errors in the playing of a game. All of them are terminal for the current
// operation: evaluators and strategies return them to the immediate caller
// and never retry; the driving loop decides whether to abort or restart.
//
// ErrNoLegalActions and ErrStrategyFailure mark contract bugs in the concrete
// game (a correctly specified game reports a terminal outcome before running
// out of moves) and must never be treated as a valid play signal.
var (
	// ErrIllegalAction reports an action that is invalid in the given state.
	ErrIllegalAction = errors.New("illegal action")
	// ErrGameOver reports an action applied to, or an evaluation requested
	// on, a state that is already terminal.
	ErrGameOver = errors.New("game is over")
	// ErrNoLegalActions reports a non-terminal state with no legal actions.
	ErrNoLegalActions = errors.New("no legal actions in non-terminal state")
	// ErrStrategyFailure reports a strategy that could not select among
	// otherwise valid evaluations.
	ErrStrategyFailure = errors.New("strategy could not pick an action")
	// ErrEvaluatorFailure reports evaluations that were mutually
	// incomparable or internally inconsistent.
	ErrEvaluatorFailure = errors.New("evaluator failure")
)
