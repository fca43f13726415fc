package game

// Outcome is the terminal result of a game with a single winner or a draw.
// It is a closed variant: construct only with Win or Draw.
type Outcome struct {
	winner Player
	won    bool
}

// Win is a terminal outcome won by p.
func Win(p Player) Outcome {
	return Outcome{winner: p, won: true}
}

// Draw is a terminal outcome nobody won.
func Draw() Outcome {
	return Outcome{}
}

// Winner returns the winning player, or ok=false for a draw.
func (o Outcome) Winner() (Player, bool) {
	return o.winner, o.won
}

// IsDraw reports whether the game ended with no winner.
func (o Outcome) IsDraw() bool { return !o.won }

func (o Outcome) String() string {
	if o.won {
		return o.winner.String() + " wins"
	}
	return "draw"
}
