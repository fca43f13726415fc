package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"reinfors/games/masked"
	"reinfors/games/tictactoe"
)

func hiddenBoard(t *testing.T, hidden []int, plays ...int) masked.State {
	t.Helper()
	actions := make([]tictactoe.Action, len(hidden))
	for i, k := range hidden {
		actions[i] = tictactoe.ActionAt(k)
	}
	state := masked.New(tictactoe.X, actions...)
	for _, k := range plays {
		transition := state.Apply(tictactoe.ActionAt(k))
		require.False(t, transition.Final)
		state = transition.State
	}
	return state
}

func TestSuperpositionConsistency(t *testing.T) {
	eval := NewMasked[masked.State, tictactoe.Action]()

	for name, state := range map[string]masked.State{
		"one hidden attempt":  hiddenBoard(t, []int{0, 1}, 0),
		"contested square":    hiddenBoard(t, []int{0, 1}, 0, 0),
		"both squares played": hiddenBoard(t, []int{0, 1}, 0, 0, 1, 1),
		"mixed with visible":  hiddenBoard(t, []int{0, 1}, 0, 8, 1, 4),
		"no hidden squares":   hiddenBoard(t, nil, 4, 8),
	} {
		t.Run(name, func(t *testing.T) {
			history := state.VisibleHistory()
			candidates := eval.Superposition(state.Genesis(), history)
			require.NotEmpty(t, candidates, "the true state is always consistent with its own history")

			concrete := make([][]tictactoe.Action, 0, len(candidates))
			for _, candidate := range candidates {
				require.Equal(t, history, candidate.VisibleHistory(),
					"every candidate must reproduce the observed history")
				concrete = append(concrete, candidate.History())
			}
			require.Contains(t, concrete, state.History(), "the true state must be among the candidates")
		})
	}
}

func TestSuperpositionIsSingletonWithoutHiddenMoves(t *testing.T) {
	eval := NewMasked[masked.State, tictactoe.Action]()
	state := hiddenBoard(t, nil, 4, 8, 0)

	candidates := eval.Superposition(state.Genesis(), state.VisibleHistory())
	require.Len(t, candidates, 1, "a fully visible history pins down one state")
	require.Equal(t, state.History(), candidates[0].History())
}

func TestMaskedEvaluate(t *testing.T) {
	// The first player secretly holds both hidden squares; the second
	// player burned both attempts.
	state := hiddenBoard(t, []int{0, 1}, 0, 0, 1, 1)
	eval := NewMasked[masked.State, tictactoe.Action]()

	t.Run("a possibly winning move denies the opponent", func(t *testing.T) {
		// Square 2 completes the bottom row in the true state, so at
		// least one consistent branch ends the game at once.
		bounds, err := eval.Evaluate(state, tictactoe.ActionAt(2))
		require.NoError(t, err)
		require.Equal(t, Loss, bounds.Theirs, "the opponent cannot be assured of more than a loss")
	})

	t.Run("every legal action evaluates cleanly", func(t *testing.T) {
		for _, action := range state.LegalActions() {
			bounds, err := eval.Evaluate(state, action)
			require.NoError(t, err)
			require.GreaterOrEqual(t, bounds.Mine, Loss)
			require.LessOrEqual(t, bounds.Mine, Win)
			require.GreaterOrEqual(t, bounds.Theirs, Loss)
			require.LessOrEqual(t, bounds.Theirs, Win)
		}
	})

	t.Run("repeat evaluations come from the cache", func(t *testing.T) {
		action := tictactoe.ActionAt(2)
		first, err := eval.Evaluate(state, action)
		require.NoError(t, err)

		before := eval.Metrics()
		second, err := eval.Evaluate(state, action)
		require.NoError(t, err)
		require.Equal(t, first, second)

		after := eval.Metrics()
		require.Equal(t, before.Calls+1, after.Calls, "the repeat call must not recurse")
		require.Equal(t, before.CacheHits+1, after.CacheHits)
		require.Equal(t, before.Cached, after.Cached)
	})
}

func TestMaskedAgreesWithEndStateWhenFullyVisible(t *testing.T) {
	// With no hidden squares the belief state is a singleton and the bounds
	// must collapse to the exact backward-induction value.
	open := hiddenBoard(t, nil, 4, 8, 6)
	plain := advance(t, 4, 8, 6)

	beliefs := NewMasked[masked.State, tictactoe.Action]()
	exact := NewEndState[tictactoe.State, tictactoe.Action]()

	for _, action := range open.LegalActions() {
		bounds, err := beliefs.Evaluate(open, action)
		require.NoError(t, err)
		outcome, err := exact.Evaluate(plain, action)
		require.NoError(t, err)

		want := Bounds{Mine: Draw, Theirs: Draw}
		if winner, won := outcome.Winner(); won {
			if winner == plain.CurrentPlayer() {
				want = Bounds{Mine: Win, Theirs: Loss}
			} else {
				want = Bounds{Mine: Loss, Theirs: Win}
			}
		}
		require.Equal(t, want, bounds, "bounds for %v should mirror the exact value", action)
	}
}

func TestCompareBounds(t *testing.T) {
	less, ok := CompareBounds(Bounds{Mine: Draw, Theirs: Loss}, Bounds{Mine: Win, Theirs: Loss})
	require.True(t, ok)
	require.Negative(t, less)

	tie, ok := CompareBounds(Bounds{Mine: Win, Theirs: Loss}, Bounds{Mine: Win, Theirs: Loss})
	require.True(t, ok)
	require.Zero(t, tie)

	tiebreak, ok := CompareBounds(Bounds{Mine: Win, Theirs: Loss}, Bounds{Mine: Win, Theirs: Draw})
	require.True(t, ok, "the order is total")
	require.Negative(t, tiebreak, "equal Mine falls through to Theirs")
}
