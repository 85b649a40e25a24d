package game

import (
	"errors"
	"fmt"
)

// Move is an index into a game's payoff matrix.
type Move int

const (
	Defect    Move = 0
	Cooperate Move = 1
)

var ErrInvalidMove = errors.New("invalid move")

// Payoff is the pair of payoffs handed out for a single round.
type Payoff struct {
	Row int // Payoff to the player choosing the row
	Col int // Payoff to the player choosing the column
}

// Game is an N-move simultaneous game given by a square payoff matrix.
// It should be treated as immutable once built.
type Game struct {
	matrix [][]Payoff
}

// New copies the payoff matrix into a Game. The matrix must be square and
// non-empty.
func New(matrix [][]Payoff) (*Game, error) {
	n := len(matrix)
	if n == 0 {
		return nil, fmt.Errorf("payoff matrix is empty")
	}
	rows := make([][]Payoff, n)
	for i, row := range matrix {
		if len(row) != n {
			return nil, fmt.Errorf("payoff matrix is not square: row %d has %d columns, want %d", i, len(row), n)
		}
		rows[i] = append([]Payoff(nil), row...)
	}
	return &Game{matrix: rows}, nil
}

// PrisonersDilemma with Defect = 0 and Cooperate = 1.
func PrisonersDilemma() *Game {
	g, err := New([][]Payoff{
		{{1, 1}, {5, 0}},
		{{0, 5}, {3, 3}},
	})
	if err != nil {
		panic(err)
	}
	return g
}

// Payoff looks up the round result when the row player plays a and the
// column player plays b.
func (g *Game) Payoff(a, b Move) (int, int, error) {
	if !g.IsLegal(a) {
		return 0, 0, fmt.Errorf("%w for player 1: %d not in [0, %d)", ErrInvalidMove, a, g.MoveCount())
	}
	if !g.IsLegal(b) {
		return 0, 0, fmt.Errorf("%w for player 2: %d not in [0, %d)", ErrInvalidMove, b, g.MoveCount())
	}
	p := g.matrix[a][b]
	return p.Row, p.Col, nil
}

func (g *Game) MoveCount() int {
	return len(g.matrix)
}

func (g *Game) IsLegal(m Move) bool {
	return m >= 0 && int(m) < len(g.matrix)
}
