package grid

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// moore lists the eight neighbor offsets clockwise, starting straight up.
var moore = [8][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

// Score returns what the cell at (row, col) earns against its eight
// neighbors.
func (g *Grid) Score(row, col int) (int, error) {
	if err := g.checkBounds(row, col); err != nil {
		return 0, err
	}
	return g.score(row, col), nil
}

func (g *Grid) score(row, col int) int {
	payoffs := g.table[g.board[g.index(row, col)]]
	total := 0
	for _, d := range moore {
		total += payoffs[g.board[g.index(row+d[0], col+d[1])]]
	}
	return total
}

// Advance runs one generation. Every cell scores against the current board,
// then imitates the best scorer among itself and its neighbors, then
// mutates with the grid's mutation rate. The new board replaces the old one
// only once every cell has been decided.
func (g *Grid) Advance() {
	scores := make([]int, len(g.board))
	g.forEachRow(func(row int) {
		for col := 0; col < g.cols; col++ {
			scores[row*g.cols+col] = g.score(row, col)
		}
	})

	next := make([]int, len(g.board))
	g.forEachRow(func(row int) {
		for col := 0; col < g.cols; col++ {
			next[row*g.cols+col] = g.best(scores, row, col)
		}
	})

	// Sequential so the draws do not depend on scheduling
	mutations := 0
	if g.mutationRate > 0 {
		for i := range next {
			if g.rng.Float64() < g.mutationRate {
				next[i] = g.rng.Intn(len(g.roster))
				mutations++
			}
		}
	}

	g.board = next
	log.Debug().Msgf("advanced %dx%d grid with %d mutations", g.rows, g.cols, mutations)
}

// best picks the strategy the cell at (row, col) adopts. A strictly higher
// neighbor score wins. On an exact tie with the best seen so far, a
// neighbor that shares the cell's own strategy restores that strategy.
// Ties between other strategies keep the first one seen.
func (g *Grid) best(scores []int, row, col int) int {
	own := g.board[g.index(row, col)]
	bestScore := scores[g.index(row, col)]
	best := own

	for _, d := range moore {
		n := g.index(row+d[0], col+d[1])
		if scores[n] > bestScore {
			bestScore = scores[n]
			best = g.board[n]
		} else if scores[n] == bestScore && g.board[n] == own {
			best = own
		}
	}
	return best
}

// forEachRow calls fn once per row, spreading rows over the grid's
// goroutines. fn must only write to its own row.
func (g *Grid) forEachRow(fn func(row int)) {
	if g.goroutines <= 1 {
		for row := 0; row < g.rows; row++ {
			fn(row)
		}
		return
	}

	task := make(chan int, g.rows)
	for row := 0; row < g.rows; row++ {
		task <- row
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < g.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for row := range task {
				fn(row)
			}
		}()
	}

	wg.Wait()
}
