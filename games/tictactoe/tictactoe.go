// Package tictactoe implements 3x3 tic-tac-toe on u16 bitboards.
//
// Squares are numbered right to left, bottom to top:
//
//	8 | 7 | 6
//	5 | 4 | 3
//	2 | 1 | 0
//
// Bit k of a board is square k; 1 means occupied.
package tictactoe

import (
	"fmt"
	"strconv"
	"strings"

	"reinfors/game"
)

// Action is a move: a single set bit marking the target square.
type Action uint16

// allActions is the static action table; allActions[k] plays square k.
var allActions = [9]Action{1, 2, 4, 8, 16, 32, 64, 128, 256}

// winningLines are the masks a player's board must cover to win: three rows,
// three columns, two diagonals.
var winningLines = [8]uint16{
	0b111_000_000,
	0b000_111_000,
	0b000_000_111,
	0b100_100_100,
	0b010_010_010,
	0b001_001_001,
	0b100_010_001,
	0b001_010_100,
}

// Full is the board mask with every square occupied.
const Full uint16 = 0b111_111_111

// AllActions returns the static action table.
func AllActions() []Action {
	return allActions[:]
}

// ActionAt returns the action playing square k, 0 <= k <= 8.
func ActionAt(square int) Action {
	return allActions[square]
}

// Square returns the square index an action plays.
func (a Action) Square() int {
	for i, action := range allActions {
		if action == a {
			return i
		}
	}
	return -1
}

func (a Action) String() string {
	return strconv.Itoa(a.Square())
}

// ParseAction parses a square number between 0 and 8.
func ParseAction(s string) (Action, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 8 {
		return 0, fmt.Errorf("%w: want a square between 0 and 8, got %q", game.ErrIllegalAction, s)
	}
	return allActions[n], nil
}

// HasLine reports whether the board mask covers a winning line.
func HasLine(board uint16) bool {
	for _, line := range winningLines {
		if board&line == line {
			return true
		}
	}
	return false
}

// Piece marks a square for display.
type Piece uint8

const (
	X Piece = iota
	O
	Empty
)

// Flip swaps X and O.
func (p Piece) Flip() Piece {
	switch p {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

func (p Piece) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "_"
}

// State is an immutable position: one board per player, the player to move,
// and which piece the first player marks with. It is comparable and serves
// directly as a memoization key.
type State struct {
	boards [2]uint16
	player game.Player
	piece  Piece
}

// New returns the empty board with the first player marking piece.
func New(piece Piece) State {
	return State{player: game.NewPlayer(2), piece: piece}
}

// CurrentPlayer returns the player to move.
func (s State) CurrentPlayer() game.Player { return s.player }

// IsLegal reports whether the target square is unoccupied.
func (s State) IsLegal(action Action) bool {
	return uint16(action)&(s.boards[0]|s.boards[1]) == 0
}

// LegalActions returns the actions targeting empty squares.
func (s State) LegalActions() []Action {
	actions := make([]Action, 0, 9)
	for _, action := range allActions {
		if s.IsLegal(action) {
			actions = append(actions, action)
		}
	}
	return actions
}

// ApplyUnchecked marks the target square for the player to move without
// checking legality or terminality. Callers must have checked both.
func (s State) ApplyUnchecked(action Action) State {
	next := s
	next.boards[s.player.Index()] |= uint16(action)
	next.player = s.player.Next()
	return next
}

// Apply plays a legal action and reports the resulting position or outcome.
// Legality is the caller's precondition; use IsLegal first for untrusted
// actions.
func (s State) Apply(action Action) game.Transition[State] {
	next := s.ApplyUnchecked(action)
	if outcome, done := next.Outcome(); done {
		return game.Finished(next, outcome)
	}
	return game.Ongoing(next)
}

// Outcome reports the terminal result, if any: a win the moment a player's
// third mark completes a line, a draw once the board fills with no line.
func (s State) Outcome() (game.Outcome, bool) {
	prev := s.player.Prev()
	if HasLine(s.boards[prev.Index()]) {
		return game.Win(prev), true
	}
	if HasLine(s.boards[s.player.Index()]) {
		return game.Win(s.player), true
	}
	if s.boards[0]|s.boards[1] == Full {
		return game.Draw(), true
	}
	return game.Outcome{}, false
}

// Actions returns the static action table.
func (s State) Actions() []Action { return allActions[:] }

// ActionIndex returns the square an action plays.
func (s State) ActionIndex(action Action) int { return action.Square() }

// PieceAt returns the piece shown on square k.
func (s State) PieceAt(square int) Piece {
	mask := uint16(1) << square
	if s.boards[0]&mask != 0 {
		return s.piece
	}
	if s.boards[1]&mask != 0 {
		return s.piece.Flip()
	}
	return Empty
}

func (s State) String() string {
	var b strings.Builder
	for row := 2; row >= 0; row-- {
		for col := 2; col >= 0; col-- {
			b.WriteString(s.PieceAt(row*3 + col).String())
			if col > 0 {
				b.WriteByte('|')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
