package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"reinfors/evaluator"
	"reinfors/game"
	"reinfors/games/tictactoe"
	"reinfors/strategy"
)

func solver() Agent[tictactoe.State, tictactoe.Action] {
	return Bind[tictactoe.State, tictactoe.Action](
		strategy.NewMinMax[tictactoe.State, tictactoe.Action](),
		evaluator.NewEndState[tictactoe.State, tictactoe.Action](),
	)
}

func randomized(seed uint64) Agent[tictactoe.State, tictactoe.Action] {
	return Bind[tictactoe.State, tictactoe.Action](
		strategy.NewGreedy[tictactoe.State, tictactoe.Action](strategy.Ordered[uint64]),
		evaluator.NewRandom[tictactoe.State, tictactoe.Action](seed),
	)
}

func TestPerfectPlayDraws(t *testing.T) {
	engine := New(
		tictactoe.New(tictactoe.X),
		[]Agent[tictactoe.State, tictactoe.Action]{solver(), solver()},
		WithLogger[tictactoe.State, tictactoe.Action](zerolog.Nop()),
	)

	outcome, err := engine.Run()
	require.NoError(t, err)
	require.True(t, outcome.IsDraw(), "two perfect players always draw")
}

func TestPerfectPlayerNeverLoses(t *testing.T) {
	first := game.NewPlayer(2)
	for seed := uint64(1); seed <= 20; seed++ {
		t.Run("as first player", func(t *testing.T) {
			engine := New(
				tictactoe.New(tictactoe.X),
				[]Agent[tictactoe.State, tictactoe.Action]{solver(), randomized(seed)},
				WithLogger[tictactoe.State, tictactoe.Action](zerolog.Nop()),
			)
			outcome, err := engine.Run()
			require.NoError(t, err)
			if winner, won := outcome.Winner(); won {
				require.Equal(t, first, winner, "the solver must not lose with seed %d", seed)
			}
		})

		t.Run("as second player", func(t *testing.T) {
			engine := New(
				tictactoe.New(tictactoe.X),
				[]Agent[tictactoe.State, tictactoe.Action]{randomized(seed), solver()},
				WithLogger[tictactoe.State, tictactoe.Action](zerolog.Nop()),
			)
			outcome, err := engine.Run()
			require.NoError(t, err)
			if winner, won := outcome.Winner(); won {
				require.Equal(t, first.Next(), winner, "the solver must not lose with seed %d", seed)
			}
		})
	}
}

func TestSingleAgentPlaysEverySeat(t *testing.T) {
	engine := New(
		tictactoe.New(tictactoe.X),
		[]Agent[tictactoe.State, tictactoe.Action]{solver()},
		WithLogger[tictactoe.State, tictactoe.Action](zerolog.Nop()),
	)

	outcome, err := engine.Run()
	require.NoError(t, err)
	require.True(t, outcome.IsDraw())
}

func TestFinishedGameShortCircuits(t *testing.T) {
	state := tictactoe.New(tictactoe.X)
	for _, square := range []int{0, 3, 1, 4} {
		state = state.Apply(tictactoe.ActionAt(square)).State
	}
	final := state.Apply(tictactoe.ActionAt(2))
	require.True(t, final.Final)

	// No agents are consulted for a game that is already over, so a failing
	// input agent proves the short circuit.
	engine := New(
		final.State,
		[]Agent[tictactoe.State, tictactoe.Action]{FromInput[tictactoe.State, tictactoe.Action](func() (tictactoe.Action, error) {
			t.Fatal("agent consulted after the game ended")
			return 0, nil
		})},
	)

	outcome, err := engine.Run()
	require.NoError(t, err)
	require.Equal(t, final.Outcome, outcome)
}

func TestInputAgentAndRender(t *testing.T) {
	// Scripted human input: both seats play from one move list.
	moves := []int{0, 3, 1, 4, 2}
	human := FromInput[tictactoe.State, tictactoe.Action](func() (tictactoe.Action, error) {
		action := tictactoe.ActionAt(moves[0])
		moves = moves[1:]
		return action, nil
	})

	var frames int
	engine := New(
		tictactoe.New(tictactoe.X),
		[]Agent[tictactoe.State, tictactoe.Action]{human},
		WithRender[tictactoe.State, tictactoe.Action](func(tictactoe.State) { frames++ }),
		WithLogger[tictactoe.State, tictactoe.Action](zerolog.Nop()),
	)

	outcome, err := engine.Run()
	require.NoError(t, err)
	winner, won := outcome.Winner()
	require.True(t, won)
	require.Equal(t, game.NewPlayer(2), winner)
	require.Empty(t, moves, "every scripted move is consumed")
	require.Equal(t, 6, frames, "one frame per ply plus the final board")
}

func TestMaxPliesGuard(t *testing.T) {
	// endless never reaches a terminal transition.
	stall := FromInput[endless, int](func() (int, error) { return 0, nil })
	engine := New(
		endless{},
		[]Agent[endless, int]{stall},
		WithLogger[endless, int](zerolog.Nop()),
		WithMaxPlies[endless, int](5),
	)

	_, err := engine.Run()
	require.ErrorContains(t, err, "still ongoing after 5 plies")
}

type endless struct{}

func (e endless) Apply(int) game.Transition[endless] { return game.Ongoing(e) }

func (e endless) LegalActions() []int { return []int{0} }

func (e endless) CurrentPlayer() game.Player { return game.NewPlayer(2) }

func TestAgentErrorsAbortTheRun(t *testing.T) {
	failing := FromInput[tictactoe.State, tictactoe.Action](func() (tictactoe.Action, error) {
		return 0, game.ErrIllegalAction
	})
	engine := New(
		tictactoe.New(tictactoe.X),
		[]Agent[tictactoe.State, tictactoe.Action]{failing},
		WithLogger[tictactoe.State, tictactoe.Action](zerolog.Nop()),
	)

	_, err := engine.Run()
	require.ErrorIs(t, err, game.ErrIllegalAction)
	require.ErrorContains(t, err, "ply 1")
}
