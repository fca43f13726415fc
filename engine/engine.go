// Package engine owns the top-level play cycle: it repeatedly asks the agent
// whose turn it is for an action, applies it through the game contract, and
// stops at a terminal outcome. Printing and formatting stay out of the core;
// callers attach a render hook if they want a board on screen.
package engine

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"reinfors/evaluator"
	"reinfors/game"
	"reinfors/strategy"
)

// Guard against games that never report a terminal outcome.
const defaultMaxPlies = 1000

// Agent chooses an action for the player to move. It is how the engine stays
// agnostic of evaluation types: a bound strategy, a human input collaborator,
// and anything else that can pick a move all look alike here.
type Agent[S game.State[S, A], A comparable] interface {
	ChooseAction(state S) (A, error)
}

type bound[S game.State[S, A], A comparable, E any] struct {
	strat strategy.Strategy[S, A, E]
	eval  evaluator.Evaluator[S, A, E]
}

func (b bound[S, A, E]) ChooseAction(state S) (A, error) {
	return b.strat.BestAction(state, b.eval)
}

// Bind couples a strategy with the evaluator it consults.
func Bind[S game.State[S, A], A comparable, E any](
	strat strategy.Strategy[S, A, E],
	eval evaluator.Evaluator[S, A, E],
) Agent[S, A] {
	return bound[S, A, E]{strat: strat, eval: eval}
}

type inputAgent[S game.State[S, A], A comparable] struct {
	input game.Input[A]
}

func (a inputAgent[S, A]) ChooseAction(S) (A, error) {
	return a.input()
}

// FromInput adapts the blocking user-input collaborator into an Agent.
// Parsing and validating the input is the collaborator's job.
func FromInput[S game.State[S, A], A comparable](input game.Input[A]) Agent[S, A] {
	return inputAgent[S, A]{input: input}
}

// Engine drives one game from a starting state to its outcome. Agents are
// assigned to players in order; a single agent plays every seat.
type Engine[S game.State[S, A], A comparable] struct {
	state    S
	agents   []Agent[S, A]
	render   func(S)
	logger   zerolog.Logger
	maxPlies int
}

// Option configures an Engine.
type Option[S game.State[S, A], A comparable] func(*Engine[S, A])

// WithRender attaches a hook called with the state before every ply and with
// the final state.
func WithRender[S game.State[S, A], A comparable](render func(S)) Option[S, A] {
	return func(e *Engine[S, A]) {
		e.render = render
	}
}

// WithLogger replaces the global logger.
func WithLogger[S game.State[S, A], A comparable](logger zerolog.Logger) Option[S, A] {
	return func(e *Engine[S, A]) {
		e.logger = logger
	}
}

// WithMaxPlies bounds how many plies Run will play before giving up.
func WithMaxPlies[S game.State[S, A], A comparable](plies int) Option[S, A] {
	return func(e *Engine[S, A]) {
		if plies > 0 {
			e.maxPlies = plies
		}
	}
}

// New returns an Engine playing from state with the given agents. At least
// one agent is required.
func New[S game.State[S, A], A comparable](
	state S,
	agents []Agent[S, A],
	options ...Option[S, A],
) *Engine[S, A] {
	if len(agents) == 0 {
		panic("engine: need at least one agent")
	}
	e := &Engine[S, A]{
		state:    state,
		agents:   agents,
		logger:   log.Logger,
		maxPlies: defaultMaxPlies,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// State returns the current state.
func (e *Engine[S, A]) State() S { return e.state }

// Run plays the game until it ends and returns the outcome. Any agent error
// aborts the run; errors are never retried at this level.
func (e *Engine[S, A]) Run() (game.Outcome, error) {
	if outcome, done := game.OutcomeOf(e.state); done {
		return outcome, nil
	}
	for ply := 1; ply <= e.maxPlies; ply++ {
		e.show()

		player := e.state.CurrentPlayer()
		agent := e.agents[player.Index()%len(e.agents)]
		action, err := agent.ChooseAction(e.state)
		if err != nil {
			var zero game.Outcome
			return zero, fmt.Errorf("ply %d: %w", ply, err)
		}
		e.logger.Info().
			Int("ply", ply).
			Int("player", player.Index()+1).
			Msgf("playing %v", action)

		tr := e.state.Apply(action)
		e.state = tr.State
		if tr.Final {
			e.show()
			return tr.Outcome, nil
		}
	}
	var zero game.Outcome
	return zero, fmt.Errorf("game still ongoing after %d plies", e.maxPlies)
}

func (e *Engine[S, A]) show() {
	if e.render != nil {
		e.render(e.state)
	}
}
