package grid

import (
	"errors"
	"fmt"
	"runtime"
	"spatialgame/game"
	"spatialgame/match"
	"spatialgame/strategy"
	"spatialgame/utils"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const MinSize = 3

var (
	ErrConfiguration = errors.New("invalid grid configuration")
	ErrOutOfBounds   = errors.New("grid index out of bounds")
)

type Option func(g *Grid)

// Grid is a toroidal board of strategy indices into a fixed roster.
type Grid struct {
	rows, cols   int
	board        []int // Row-major strategy indices
	roster       []*strategy.Strategy
	table        match.Table
	noise        float64
	mutationRate float64
	goroutines   int
	rng          *rand.Rand
}

// WithNoise sets the chance that a move is randomized while building the
// matchup table.
func WithNoise(noise float64) Option {
	return func(g *Grid) {
		g.noise = noise
	}
}

// WithMutationRate sets the chance that a cell adopts a random strategy
// after each update.
func WithMutationRate(rate float64) Option {
	return func(g *Grid) {
		g.mutationRate = rate
	}
}

func WithSeed(seed uint64) Option {
	return func(g *Grid) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(g *Grid) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithGoroutines bounds the parallelism of table construction and of the
// per-cell update passes. Results do not depend on it.
func WithGoroutines(goroutines int) Option {
	return func(g *Grid) {
		if goroutines > 0 {
			g.goroutines = goroutines
		}
	}
}

// New builds the matchup table for roster and returns a rows x cols grid
// filled with strategy 0.
func New(roster []*strategy.Strategy, rows, cols int, gm *game.Game, rounds int, options ...Option) (*Grid, error) {
	g := &Grid{ // Default values
		rows:       rows,
		cols:       cols,
		goroutines: runtime.NumCPU(),
	}
	for _, option := range options {
		option(g)
	}

	if rows < MinSize || cols < MinSize {
		return nil, fmt.Errorf("%w: board %dx%d is smaller than %dx%d", ErrConfiguration, rows, cols, MinSize, MinSize)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: empty strategy roster", ErrConfiguration)
	}
	if gm == nil {
		return nil, fmt.Errorf("%w: no game", ErrConfiguration)
	}
	if rounds < 0 {
		return nil, fmt.Errorf("%w: negative round count %d", ErrConfiguration, rounds)
	}
	if g.mutationRate < 0 || g.mutationRate > 1 {
		return nil, fmt.Errorf("%w: mutation rate %v not in [0, 1]", ErrConfiguration, g.mutationRate)
	}
	if g.noise < 0 || g.noise > 1 {
		return nil, fmt.Errorf("%w: noise %v not in [0, 1]", ErrConfiguration, g.noise)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	table, err := match.BuildTable(roster, gm, rounds,
		match.WithNoise(g.noise),
		match.WithWorkers(g.goroutines),
		match.WithRand(g.rng),
	)
	if err != nil {
		return nil, err
	}

	g.roster = append([]*strategy.Strategy(nil), roster...)
	g.table = table
	g.board = make([]int, rows*cols)

	log.Debug().Msgf("created %dx%d grid with %d strategies", rows, cols, len(roster))
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Roster returns a copy of the strategies the grid indexes into.
func (g *Grid) Roster() []*strategy.Strategy {
	return append([]*strategy.Strategy(nil), g.roster...)
}

// Table returns the matchup table. Callers must not modify it.
func (g *Grid) Table() match.Table {
	return g.table
}

// PopulateRandomly assigns every cell a uniformly random strategy.
func (g *Grid) PopulateRandomly() {
	for i := range g.board {
		g.board[i] = g.rng.Intn(len(g.roster))
	}
}

func (g *Grid) StrategyAt(row, col int) (int, error) {
	if err := g.checkBounds(row, col); err != nil {
		return 0, err
	}
	return g.board[g.index(row, col)], nil
}

func (g *Grid) StrategyNameAt(row, col int) (string, error) {
	i, err := g.StrategyAt(row, col)
	if err != nil {
		return "", err
	}
	return g.roster[i].Name(), nil
}

func (g *Grid) SetCell(row, col, s int) error {
	if err := g.checkBounds(row, col); err != nil {
		return err
	}
	if s < 0 || s >= len(g.roster) {
		return fmt.Errorf("%w: strategy %d not in roster of %d", ErrConfiguration, s, len(g.roster))
	}
	g.board[g.index(row, col)] = s
	return nil
}

// SetBoard replaces the whole board. Nothing is changed if board has the
// wrong shape or names a strategy outside the roster.
func (g *Grid) SetBoard(board [][]int) error {
	if len(board) != g.rows {
		return fmt.Errorf("%w: board has %d rows, want %d", ErrConfiguration, len(board), g.rows)
	}
	next := make([]int, 0, len(g.board))
	for r, row := range board {
		if len(row) != g.cols {
			return fmt.Errorf("%w: board row %d has %d columns, want %d", ErrConfiguration, r, len(row), g.cols)
		}
		for c, s := range row {
			if s < 0 || s >= len(g.roster) {
				return fmt.Errorf("%w: cell (%d, %d) holds strategy %d not in roster of %d", ErrConfiguration, r, c, s, len(g.roster))
			}
		}
		next = append(next, row...)
	}
	g.board = next
	return nil
}

// Board returns a copy of the board.
func (g *Grid) Board() [][]int {
	board := make([][]int, g.rows)
	for r := range board {
		board[r] = append([]int(nil), g.board[r*g.cols:(r+1)*g.cols]...)
	}
	return board
}

// Counts returns the number of cells holding each strategy.
func (g *Grid) Counts() []int {
	return utils.Histogram(g.board, len(g.roster))
}

// String renders one line per row with each cell's symbol followed by a
// space.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (2*g.cols + 1))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			b.WriteRune(g.roster[g.board[g.index(r, c)]].Symbol())
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) checkBounds(row, col int) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d board", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return nil
}

// index wraps row and col around the torus.
func (g *Grid) index(row, col int) int {
	return utils.Wrap(row, g.rows)*g.cols + utils.Wrap(col, g.cols)
}
