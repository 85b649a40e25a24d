package grid

import (
	"spatialgame/game"
	"spatialgame/match"
	"spatialgame/strategy"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	table := match.Table{
		{0, 1, 100},
		{0, 0, 0},
		{0, 0, 0},
	}

	t.Run("up wraps to the last row", func(t *testing.T) {
		g := newTestGrid(t, 5, 5, table)
		require.NoError(t, g.SetCell(4, 0, 2))

		score, err := g.Score(0, 0)
		require.NoError(t, err)
		require.Equal(t, 100, score)
	})

	t.Run("right wraps to the first column", func(t *testing.T) {
		g := newTestGrid(t, 5, 5, table)
		require.NoError(t, g.SetCell(1, 0, 1))

		score, err := g.Score(1, 4)
		require.NoError(t, err)
		require.Equal(t, 1, score)
	})

	t.Run("diagonal corners wrap both ways", func(t *testing.T) {
		g := newTestGrid(t, 5, 5, table)
		require.NoError(t, g.SetCell(0, 0, 2))

		score, err := g.Score(4, 4)
		require.NoError(t, err)
		require.Equal(t, 100, score, "(0, 0) is the down-right neighbor of (4, 4)")
	})

	t.Run("sums all eight neighbors", func(t *testing.T) {
		g := newTestGrid(t, 3, 3, table)
		require.NoError(t, g.SetBoard([][]int{{1, 1, 1}, {1, 0, 2}, {2, 2, 1}}))

		score, err := g.Score(1, 1)
		require.NoError(t, err)
		require.Equal(t, 5*1+3*100, score)
	})

	t.Run("out of bounds", func(t *testing.T) {
		g := newTestGrid(t, 3, 3, table)
		_, err := g.Score(3, 0)
		require.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestBest(t *testing.T) {
	// Neighbors of (1, 1) on a 3x3 board in scan order:
	// up (0,1), up-right (0,2), right (1,2), down-right (2,2),
	// down (2,1), down-left (2,0), left (1,0), up-left (0,0)
	table := match.Table{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}

	cases := []struct {
		name   string
		board  [][]int
		scores [][]int
		want   int
	}{
		{
			name:   "keeps own strategy when nobody scores higher",
			board:  [][]int{{1, 2, 1}, {2, 0, 1}, {2, 1, 2}},
			scores: [][]int{{4, 4, 4}, {4, 5, 4}, {4, 4, 4}},
			want:   0,
		},
		{
			name:   "does not switch on a tie with another strategy",
			board:  [][]int{{1, 1, 1}, {1, 0, 1}, {1, 1, 1}},
			scores: [][]int{{5, 5, 5}, {5, 5, 5}, {5, 5, 5}},
			want:   0,
		},
		{
			name:   "adopts a strictly better neighbor",
			board:  [][]int{{0, 0, 0}, {2, 0, 0}, {0, 0, 0}},
			scores: [][]int{{1, 1, 1}, {9, 5, 1}, {1, 1, 1}},
			want:   2,
		},
		{
			name:   "incumbent reclaims a tie after another strategy led",
			board:  [][]int{{0, 1, 2}, {2, 0, 0}, {2, 2, 2}},
			scores: [][]int{{1, 7, 1}, {1, 5, 7}, {1, 1, 1}},
			want:   0,
		},
		{
			name:   "incumbent tie seen first is not displaced by a later tie",
			board:  [][]int{{2, 0, 2}, {1, 0, 2}, {2, 2, 2}},
			scores: [][]int{{1, 7, 1}, {7, 5, 1}, {1, 1, 1}},
			want:   0,
		},
		{
			name:   "first seen wins among other strategies",
			board:  [][]int{{0, 1, 2}, {0, 0, 0}, {0, 0, 0}},
			scores: [][]int{{1, 7, 7}, {1, 5, 1}, {1, 1, 1}},
			want:   1,
		},
		{
			name:   "higher score after an incumbent tie still wins",
			board:  [][]int{{0, 1, 0}, {0, 0, 0}, {0, 2, 0}},
			scores: [][]int{{1, 7, 7}, {1, 5, 1}, {1, 8, 1}},
			want:   2,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newTestGrid(t, 3, 3, table)
			require.NoError(t, g.SetBoard(c.board))

			scores := make([]int, 0, 9)
			for _, row := range c.scores {
				scores = append(scores, row...)
			}
			require.Equal(t, c.want, g.best(scores, 1, 1))
		})
	}
}

func TestAdvance(t *testing.T) {
	pd := game.PrisonersDilemma()

	t.Run("uniform board with equal payoffs is stable", func(t *testing.T) {
		g := newTestGrid(t, 3, 3, match.Table{{1, 1}, {1, 1}})
		require.NoError(t, g.SetBoard([][]int{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}))

		g.Advance()
		require.Equal(t, [][]int{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}, g.Board())
	})

	t.Run("incumbent holds on a tie through a full update", func(t *testing.T) {
		// Every cell scores 8 regardless of its neighbors
		g := newTestGrid(t, 3, 3, match.Table{{1, 1}, {1, 1}})
		board := [][]int{{0, 1, 0}, {1, 0, 1}, {0, 1, 0}}
		require.NoError(t, g.SetBoard(board))

		g.Advance()
		require.Equal(t, board, g.Board())
	})

	t.Run("defectors stay defectors", func(t *testing.T) {
		g, err := New(cooperateDefect, 3, 3, pd, 10)
		require.NoError(t, err)
		require.NoError(t, g.SetBoard([][]int{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}))

		for i := 0; i < 20; i++ {
			g.Advance()
			require.Equal(t, []int{0, 9}, g.Counts(), "generation %d", i+1)
		}
	})

	t.Run("a lone defector takes over a small torus", func(t *testing.T) {
		g, err := New(cooperateDefect, 3, 3, pd, 10)
		require.NoError(t, err)
		require.NoError(t, g.SetCell(1, 1, 1))

		// The defector earns 8*50 against cooperators who earn 7*30
		g.Advance()
		require.Equal(t, []int{0, 9}, g.Counts())
	})

	t.Run("scores come from the previous board", func(t *testing.T) {
		g, err := New(cooperateDefect, 3, 6, pd, 10, WithGoroutines(1))
		require.NoError(t, err)
		require.NoError(t, g.SetCell(1, 0, 1))

		g.Advance()
		// Only the defector's neighbors switch in one generation
		board := g.Board()
		for r := 0; r < 3; r++ {
			require.Equal(t, []int{1, 1, 0, 0, 0, 1}, board[r], "row %d", r)
		}
	})

	t.Run("cells always hold roster strategies", func(t *testing.T) {
		roster := strategy.Stock()
		g, err := New(roster, 10, 12, pd, 20, WithNoise(0.05), WithMutationRate(0.3), WithSeed(5))
		require.NoError(t, err)
		g.PopulateRandomly()

		for i := 0; i < 10; i++ {
			g.Advance()
			for _, row := range g.Board() {
				for _, s := range row {
					require.GreaterOrEqual(t, s, 0)
					require.Less(t, s, len(roster))
				}
			}
		}
	})

	t.Run("full mutation randomizes the board", func(t *testing.T) {
		g, err := New(cooperateDefect, 10, 10, pd, 10, WithMutationRate(1), WithSeed(9))
		require.NoError(t, err)

		g.Advance()
		counts := g.Counts()
		require.Positive(t, counts[0])
		require.Positive(t, counts[1])
	})
}

func TestAdvanceIsDeterministic(t *testing.T) {
	roster := []*strategy.Strategy{strategy.AlwaysCooperate, strategy.AlwaysDefect, strategy.TitForTat, strategy.Pavlov}
	pd := game.PrisonersDilemma()

	run := func(goroutines int, mutationRate float64) [][][]int {
		g, err := New(roster, 12, 15, pd, 50,
			WithSeed(1234),
			WithNoise(0.01),
			WithMutationRate(mutationRate),
			WithGoroutines(goroutines),
		)
		require.NoError(t, err)
		g.PopulateRandomly()

		boards := [][][]int{g.Board()}
		for i := 0; i < 8; i++ {
			g.Advance()
			boards = append(boards, g.Board())
		}
		return boards
	}

	t.Run("same seed gives the same history", func(t *testing.T) {
		require.Equal(t, run(4, 0), run(4, 0))
	})

	t.Run("history does not depend on goroutines", func(t *testing.T) {
		require.Equal(t, run(1, 0.05), run(8, 0.05))
	})
}
