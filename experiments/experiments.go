// Package experiments runs repeated tic-tac-toe matchups between agents and
// records per-game results for offline analysis.
package experiments

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"reinfors/engine"
	"reinfors/evaluator"
	"reinfors/games/tictactoe"
	"reinfors/strategy"
)

// Contestant is a named agent factory. A fresh agent is built per game so
// that cache metrics measure one game's work; metrics may be nil for agents
// without an evaluator cache.
type Contestant struct {
	Name  string
	Build func(seed uint64) (agent engine.Agent[tictactoe.State, tictactoe.Action], metrics func() evaluator.Metrics)
}

// MinMax is the exact backward-induction contestant.
func MinMax() Contestant {
	return Contestant{
		Name: "minmax",
		Build: func(uint64) (engine.Agent[tictactoe.State, tictactoe.Action], func() evaluator.Metrics) {
			eval := evaluator.NewEndState[tictactoe.State, tictactoe.Action]()
			agent := engine.Bind[tictactoe.State, tictactoe.Action](
				strategy.NewMinMax[tictactoe.State, tictactoe.Action](), eval)
			return agent, eval.Metrics
		},
	}
}

// Random is the non-informative baseline contestant: greedy over the LCG
// evaluator.
func Random() Contestant {
	return Contestant{
		Name: "random",
		Build: func(seed uint64) (engine.Agent[tictactoe.State, tictactoe.Action], func() evaluator.Metrics) {
			eval := evaluator.NewRandom[tictactoe.State, tictactoe.Action](seed)
			agent := engine.Bind[tictactoe.State, tictactoe.Action](
				strategy.NewGreedy[tictactoe.State, tictactoe.Action](strategy.Ordered[uint64]), eval)
			return agent, nil
		},
	}
}

// GameRecord is the result of one game of a matchup.
type GameRecord struct {
	Game      int
	Agent1    string
	Agent2    string
	Winner    int // 1 or 2; 0 for a draw
	Plies     int
	Duration  time.Duration
	EvalCalls int // summed over both agents' evaluators
	CacheHits int
}

// Matchup plays games of first vs second from the empty board and returns
// one record per game. seed drives the per-game seeds handed to the
// contestants' builders.
func Matchup(first, second Contestant, games int, seed uint64) ([]GameRecord, error) {
	rng := rand.New(rand.NewSource(seed))
	records := make([]GameRecord, 0, games)

	for i := 0; i < games; i++ {
		agent1, metrics1 := first.Build(rng.Uint64())
		agent2, metrics2 := second.Build(rng.Uint64())

		state := tictactoe.New(tictactoe.X)
		e := engine.New(state, []engine.Agent[tictactoe.State, tictactoe.Action]{agent1, agent2})

		start := time.Now()
		outcome, err := e.Run()
		if err != nil {
			return nil, fmt.Errorf("game %d of %s vs %s: %w", i+1, first.Name, second.Name, err)
		}

		record := GameRecord{
			Game:     i + 1,
			Agent1:   first.Name,
			Agent2:   second.Name,
			Plies:    countMarks(e.State()),
			Duration: time.Since(start),
		}
		if winner, won := outcome.Winner(); won {
			record.Winner = winner.Index() + 1
		}
		for _, metrics := range []func() evaluator.Metrics{metrics1, metrics2} {
			if metrics == nil {
				continue
			}
			m := metrics()
			record.EvalCalls += m.Calls
			record.CacheHits += m.CacheHits
		}
		records = append(records, record)
	}
	return records, nil
}

func countMarks(state tictactoe.State) int {
	plies := 0
	for square := 0; square < 9; square++ {
		if state.PieceAt(square) != tictactoe.Empty {
			plies++
		}
	}
	return plies
}
