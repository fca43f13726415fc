package game

import "fmt"

// Player identifies whose turn it is in a cyclic turn order. The zero value
// is not valid; construct with NewPlayer. Two-player games alternate between
// the two identities produced by NewPlayer(2) and its Next.
type Player struct {
	n   uint8
	cur uint8
}

// NewPlayer returns the first of n players. Panics if n is zero.
func NewPlayer(n int) Player {
	if n <= 0 || n > 255 {
		panic(fmt.Sprintf("game: invalid player count %d", n))
	}
	return Player{n: uint8(n)}
}

// Index is the 0-based number of this player.
func (p Player) Index() int { return int(p.cur) }

// Next is the player who moves after p.
func (p Player) Next() Player {
	return Player{n: p.n, cur: (p.cur + 1) % p.n}
}

// Prev is the player who moved before p.
func (p Player) Prev() Player {
	if p.cur == 0 {
		return Player{n: p.n, cur: p.n - 1}
	}
	return Player{n: p.n, cur: p.cur - 1}
}

func (p Player) String() string {
	return fmt.Sprintf("player %d", p.cur+1)
}
