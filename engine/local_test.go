package engine

import (
	"context"
	"spatialgame/game"
	"spatialgame/grid"
	"spatialgame/strategy"
	"testing"

	"github.com/stretchr/testify/require"
)

var cooperateDefect = []*strategy.Strategy{strategy.AlwaysCooperate, strategy.AlwaysDefect}

func newGrid(t *testing.T, rows, cols int, options ...grid.Option) *grid.Grid {
	t.Helper()
	g, err := grid.New(cooperateDefect, rows, cols, game.PrisonersDilemma(), 10, options...)
	require.NoError(t, err)
	return g
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("runs every generation", func(t *testing.T) {
		g := newGrid(t, 3, 3)
		require.NoError(t, g.SetCell(1, 1, 1))

		var seen []int
		e := NewLocalEngine(g, WithMetrics(), WithObserver(func(generation int, g *grid.Grid) {
			seen = append(seen, generation)
		}))
		run, generations, err := e.Run(context.Background(), 3)
		require.NoError(t, err)

		require.Equal(t, 3, run.Generations)
		require.False(t, run.Stable)
		require.Equal(t, []int{1, 2, 3}, seen)
		require.Len(t, generations, 3)
		require.Equal(t, 8, generations[0].Changed, "Every cooperator should copy the defector")
		require.Equal(t, []int{0, 9}, generations[0].Counts)
		require.Equal(t, 0, generations[2].Changed)
	})

	t.Run("stops once stable", func(t *testing.T) {
		g := newGrid(t, 3, 3)
		require.NoError(t, g.SetCell(1, 1, 1))

		run, generations, err := NewLocalEngine(g, WithStopWhenStable()).Run(context.Background(), 50)
		require.NoError(t, err)
		require.True(t, run.Stable)
		require.Equal(t, 2, run.Generations)
		require.Len(t, generations, 2)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		run, _, err := NewLocalEngine(newGrid(t, 3, 3)).Run(ctx, 10)
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, run.Generations)
	})

	t.Run("rejects bad generation counts", func(t *testing.T) {
		_, _, err := NewLocalEngine(newGrid(t, 3, 3)).Run(context.Background(), -1)
		require.Error(t, err)
	})
}

func TestCountChanged(t *testing.T) {
	before := [][]int{{0, 1}, {1, 1}}
	after := [][]int{{0, 0}, {0, 1}}
	require.Equal(t, 2, countChanged(before, after))
	require.Equal(t, 0, countChanged(before, before))
}

func TestNewLocalEnginePanicsWithoutGrid(t *testing.T) {
	require.Panics(t, func() {
		NewLocalEngine(nil)
	})
}
