// Package masked implements tic-tac-toe with hidden slots: a configured set
// of squares whose moves are not common knowledge. Attempting a hidden square
// the opponent already holds consumes the turn silently; neither side gets a
// public signal. The package implements the Hidden contract consumed by the
// belief-state evaluator.
package masked

import (
	"strings"

	"reinfors/game"
	"reinfors/games/tictactoe"
)

// State is a position of the masked game. Unlike plain tic-tac-toe it carries
// the full action history, because what a player may legally know is a
// function of history, not of the boards alone. The history makes State
// non-comparable; evaluators key it by its visible history instead.
type State struct {
	boards [2]uint16
	// misses marks hidden squares whose attempt silently failed; a square
	// can only be burned once per game.
	misses  uint16
	hidden  []tictactoe.Action
	history []tictactoe.Action
	player  game.Player
	piece   tictactoe.Piece
}

// New returns the empty board with the given hidden squares and the first
// player marking piece.
func New(piece tictactoe.Piece, hidden ...tictactoe.Action) State {
	return State{
		hidden: append([]tictactoe.Action(nil), hidden...),
		player: game.NewPlayer(2),
		piece:  piece,
	}
}

// Genesis returns the empty board this state descends from.
func (s State) Genesis() State {
	return New(s.piece, s.hidden...)
}

// CurrentPlayer returns the player to move.
func (s State) CurrentPlayer() game.Player { return s.player }

// History returns the concrete actions played so far. Only the game itself
// and its tests may look at this; evaluators use VisibleHistory.
func (s State) History() []tictactoe.Action {
	return append([]tictactoe.Action(nil), s.history...)
}

// HiddenActions returns the configured hidden squares.
func (s State) HiddenActions() []tictactoe.Action {
	return append([]tictactoe.Action(nil), s.hidden...)
}

// IsHidden reports whether the action targets a hidden square.
func (s State) IsHidden(action tictactoe.Action) bool {
	for _, h := range s.hidden {
		if h == action {
			return true
		}
	}
	return false
}

func (s State) occupies(p game.Player, action tictactoe.Action) bool {
	return s.boards[p.Index()]&uint16(action) != 0
}

// IsLegal reports whether the action may be attempted. The mover may never
// replay their own square or a burned hidden square; a visible square must
// also be free of the opponent. A hidden square held by the opponent stays
// attemptable: its failure must not be deducible from legality.
func (s State) IsLegal(action tictactoe.Action) bool {
	if s.occupies(s.player, action) {
		return false
	}
	if s.IsHidden(action) {
		return s.misses&uint16(action) == 0
	}
	return !s.occupies(s.player.Prev(), action)
}

// LegalActions returns every attemptable action.
func (s State) LegalActions() []tictactoe.Action {
	actions := make([]tictactoe.Action, 0, 9)
	for _, action := range tictactoe.AllActions() {
		if s.IsLegal(action) {
			actions = append(actions, action)
		}
	}
	return actions
}

// LegalHiddenActions returns the attemptable hidden actions.
func (s State) LegalHiddenActions() []tictactoe.Action {
	actions := make([]tictactoe.Action, 0, len(s.hidden))
	for _, action := range s.hidden {
		if s.IsLegal(action) {
			actions = append(actions, action)
		}
	}
	return actions
}

// ApplyUnchecked attempts a legal action without legality or terminality
// checks. An attempt on a square the opponent holds is silently absorbed:
// the square is burned, the turn passes, nothing else changes.
func (s State) ApplyUnchecked(action tictactoe.Action) State {
	next := s
	next.history = append(append([]tictactoe.Action(nil), s.history...), action)
	if s.occupies(s.player.Prev(), action) {
		next.misses = s.misses | uint16(action)
	} else {
		next.boards[s.player.Index()] |= uint16(action)
	}
	next.player = s.player.Next()
	return next
}

// Apply attempts an action and reports the resulting position or outcome.
// Hidden attempts that fail are absorbed, never rejected.
func (s State) Apply(action tictactoe.Action) game.Transition[State] {
	next := s.ApplyUnchecked(action)
	if outcome, done := next.Outcome(); done {
		return game.Finished(next, outcome)
	}
	return game.Ongoing(next)
}

// Outcome reports the terminal result, if any. A win is only ever produced
// by the player who just moved; the board is drawn when every square is
// marked.
func (s State) Outcome() (game.Outcome, bool) {
	prev := s.player.Prev()
	if tictactoe.HasLine(s.boards[prev.Index()]) {
		return game.Win(prev), true
	}
	if s.boards[0]|s.boards[1] == tictactoe.Full {
		return game.Draw(), true
	}
	return game.Outcome{}, false
}

// VisibleHistory projects the history into what the player to move can
// observe. Visible squares are public. Of the mover's own hidden attempts,
// the first is Visible (its success was guaranteed when made) and the rest
// are Masked. The opponent's hidden attempts are Invisible.
func (s State) VisibleHistory() []game.Info[tictactoe.Action] {
	infos := make([]game.Info[tictactoe.Action], len(s.history))
	firstOwnHidden := true
	for i, action := range s.history {
		if !s.IsHidden(action) {
			infos[i] = game.Visible(action)
			continue
		}
		if i%2 != s.player.Index() {
			infos[i] = game.Invisible[tictactoe.Action]()
			continue
		}
		if firstOwnHidden {
			infos[i] = game.Visible(action)
			firstOwnHidden = false
		} else {
			infos[i] = game.Masked(action)
		}
	}
	return infos
}

// Actions returns the static action table.
func (s State) Actions() []tictactoe.Action { return tictactoe.AllActions() }

// ActionIndex returns the square an action plays.
func (s State) ActionIndex(action tictactoe.Action) int { return action.Square() }

// String renders the board as the player to move sees it: hidden squares not
// publicly resolved show as blocks.
func (s State) String() string {
	var b strings.Builder
	for row := 2; row >= 0; row-- {
		for col := 2; col >= 0; col-- {
			square := row*3 + col
			action := tictactoe.ActionAt(square)
			piece := s.pieceAt(square)
			switch {
			case s.IsHidden(action):
				b.WriteString("▮")
			case piece != tictactoe.Empty:
				b.WriteString(piece.String())
			default:
				b.WriteString(action.String())
			}
			if col > 0 {
				b.WriteByte('|')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (s State) pieceAt(square int) tictactoe.Piece {
	mask := uint16(1) << square
	if s.boards[0]&mask != 0 {
		return s.piece
	}
	if s.boards[1]&mask != 0 {
		return s.piece.Flip()
	}
	return tictactoe.Empty
}
