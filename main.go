package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"reinfors/engine"
	"reinfors/evaluator"
	"reinfors/experiments"
	"reinfors/game"
	"reinfors/games/masked"
	"reinfors/games/tictactoe"
	"reinfors/strategy"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "reinfors",
		Short: "Adversarial game-tree evaluation engine",
		PersistentPreRun: func(*cobra.Command, []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every ply")

	root.AddCommand(solveCmd(), playCmd(), experimentCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Print the minimax value of every opening move",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eval := evaluator.NewEndState[tictactoe.State, tictactoe.Action]()
			state := tictactoe.New(tictactoe.X)
			for _, action := range state.LegalActions() {
				outcome, err := eval.Evaluate(state, action)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "square %v: %v\n", action, outcome)
			}
			m := eval.Metrics()
			log.Info().Int("calls", m.Calls).Int("cached", m.Cached).Msg("solved")
			return nil
		},
	}
}

func playCmd() *cobra.Command {
	var (
		hidden     []int
		humanFirst bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against the engine; with hidden squares, against the belief-state evaluator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(hidden) > 0 {
				return playMasked(hidden, humanFirst)
			}
			return playPlain(humanFirst)
		},
	}
	cmd.Flags().IntSliceVar(&hidden, "hidden", []int{0, 1}, "hidden squares (empty for the open game)")
	cmd.Flags().BoolVar(&humanFirst, "first", true, "human moves first")
	return cmd
}

func playPlain(humanFirst bool) error {
	state := tictactoe.New(tictactoe.X)
	computer := engine.Bind[tictactoe.State, tictactoe.Action](
		strategy.NewMinMax[tictactoe.State, tictactoe.Action](),
		evaluator.NewEndState[tictactoe.State, tictactoe.Action](),
	)

	var eng *engine.Engine[tictactoe.State, tictactoe.Action]
	human := engine.FromInput[tictactoe.State, tictactoe.Action](promptAction(func(a tictactoe.Action) bool {
		return eng.State().IsLegal(a)
	}))

	agents := []engine.Agent[tictactoe.State, tictactoe.Action]{human, computer}
	if !humanFirst {
		agents[0], agents[1] = agents[1], agents[0]
	}
	eng = engine.New(state, agents,
		engine.WithRender[tictactoe.State, tictactoe.Action](func(s tictactoe.State) {
			fmt.Println(renderBoard(s.String()))
		}))

	outcome, err := eng.Run()
	if err != nil {
		return err
	}
	fmt.Println(outcome)
	return nil
}

func playMasked(hidden []int, humanFirst bool) error {
	actions := make([]tictactoe.Action, len(hidden))
	for i, square := range hidden {
		if square < 0 || square > 8 {
			return fmt.Errorf("%w: hidden square %d out of range", game.ErrIllegalAction, square)
		}
		actions[i] = tictactoe.ActionAt(square)
	}
	state := masked.New(tictactoe.X, actions...)

	computer := engine.Bind[masked.State, tictactoe.Action](
		strategy.NewGreedy[masked.State, tictactoe.Action](evaluator.CompareBounds),
		evaluator.NewMasked[masked.State, tictactoe.Action](),
	)

	var eng *engine.Engine[masked.State, tictactoe.Action]
	human := engine.FromInput[masked.State, tictactoe.Action](promptAction(func(a tictactoe.Action) bool {
		return eng.State().IsLegal(a)
	}))

	agents := []engine.Agent[masked.State, tictactoe.Action]{human, computer}
	if !humanFirst {
		agents[0], agents[1] = agents[1], agents[0]
	}
	eng = engine.New(state, agents,
		engine.WithRender[masked.State, tictactoe.Action](func(s masked.State) {
			fmt.Println(renderBoard(s.String()))
		}))

	outcome, err := eng.Run()
	if err != nil {
		return err
	}
	fmt.Println(outcome)
	return nil
}

// promptAction is the user-input collaborator: it blocks on stdin until the
// line parses to an action the game accepts.
func promptAction(legal func(tictactoe.Action) bool) game.Input[tictactoe.Action] {
	reader := bufio.NewReader(os.Stdin)
	return func() (tictactoe.Action, error) {
		for {
			fmt.Println("Board positions:\n8|7|6\n5|4|3\n2|1|0")
			fmt.Print("Your move (0-8): ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return 0, err
			}
			action, err := tictactoe.ParseAction(line)
			if err != nil || !legal(action) {
				fmt.Println("Try again")
				continue
			}
			return action, nil
		}
	}
}

func renderBoard(board string) string {
	out := termenv.NewOutput(os.Stdout)
	var b strings.Builder
	for _, r := range board {
		switch r {
		case 'X':
			b.WriteString(out.String("X").Foreground(termenv.ANSIRed).String())
		case 'O':
			b.WriteString(out.String("O").Foreground(termenv.ANSIGreen).String())
		case '▮':
			b.WriteString(out.String("▮").Faint().String())
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func experimentCmd() *cobra.Command {
	var (
		games  int
		seed   uint64
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Run matchups and write per-game records as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			matchups := [][2]experiments.Contestant{
				{experiments.MinMax(), experiments.MinMax()},
				{experiments.MinMax(), experiments.Random()},
				{experiments.Random(), experiments.MinMax()},
			}
			writer, err := experiments.NewWriter(outDir)
			if err != nil {
				return err
			}
			for _, pair := range matchups {
				records, err := experiments.Matchup(pair[0], pair[1], games, seed)
				if err != nil {
					return err
				}
				name := fmt.Sprintf("%s-vs-%s", pair[0].Name, pair[1].Name)
				if err := writer.WriteGames(name, records); err != nil {
					return err
				}
				s := experiments.Summarize(records)
				fmt.Fprintf(cmd.OutOrStdout(),
					"%s vs %s: %d games, %d/%d/%d (w1/w2/draw), mean plies %.1f (sd %.1f), mean duration %v -> %s\n",
					pair[0].Name, pair[1].Name, s.Games, s.Agent1Wins, s.Agent2Wins, s.Draws,
					s.MeanPlies, s.StdDevPlies, s.MeanDuration, writer.Dir())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&games, "games", 10, "games per matchup")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed for the random contestant")
	cmd.Flags().StringVar(&outDir, "out", "experiments-out", "output directory")
	return cmd
}
