package engine

import (
	"context"
	"fmt"
	"spatialgame/experiments/metrics"
	"spatialgame/grid"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type Option func(e *LocalEngine)

// WithMetrics records timing and population counts for every generation.
func WithMetrics() Option {
	return func(e *LocalEngine) {
		e.metrics = metrics.NewCollector()
	}
}

// WithStopWhenStable ends a run early once a generation changes no cell.
// Only meaningful without mutation.
func WithStopWhenStable() Option {
	return func(e *LocalEngine) {
		e.stopWhenStable = true
	}
}

// WithObserver is called with the grid after every generation.
func WithObserver(observe func(generation int, g *grid.Grid)) Option {
	return func(e *LocalEngine) {
		e.observe = observe
	}
}

type LocalEngine struct {
	Grid           *grid.Grid
	metrics        metrics.Collector
	stopWhenStable bool
	observe        func(generation int, g *grid.Grid)
}

func NewLocalEngine(g *grid.Grid, options ...Option) *LocalEngine {
	if g == nil {
		panic("engine needs a grid")
	}
	e := &LocalEngine{ // Default values
		Grid:    g,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *LocalEngine) Run(ctx context.Context, generations int) (metrics.RunMetric, []metrics.GenerationMetric, error) {
	if generations < 0 || generations > MaxGenerations {
		return metrics.RunMetric{}, nil, fmt.Errorf("generation count %d not in [0, %d]", generations, MaxGenerations)
	}

	run := metrics.RunMetric{StartTime: time.Now()}
	var generationMetrics []metrics.GenerationMetric

	log.Info().Msgf("running %dx%d grid for %d generations", e.Grid.Rows(), e.Grid.Cols(), generations)

	for generation := 1; generation <= generations; generation++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Msgf("run cancelled after %d generations", run.Generations)
			return e.finish(run), generationMetrics, err
		}

		before := e.Grid.Board()
		e.metrics.Start()
		e.Grid.Advance()
		changed := countChanged(before, e.Grid.Board())

		generationMetrics = append(generationMetrics, e.metrics.Complete(generation, e.Grid.Counts(), changed))
		run.Generations = generation
		if e.observe != nil {
			e.observe(generation, e.Grid)
		}

		if changed == 0 && e.stopWhenStable {
			log.Info().Msgf("grid stable after %d generations", generation)
			run.Stable = true
			break
		}
	}

	return e.finish(run), generationMetrics, nil
}

func (e *LocalEngine) finish(run metrics.RunMetric) metrics.RunMetric {
	run.EndTime = time.Now()
	run.Duration = run.EndTime.Sub(run.StartTime)
	log.Info().Msgf("finished %d generations in %s, population %v", run.Generations, run.Duration, e.Grid.Counts())
	return run
}

// countChanged counts cells that differ between two boards of equal shape.
func countChanged(before, after [][]int) int {
	changed := 0
	for r := range before {
		if slices.Equal(before[r], after[r]) {
			continue
		}
		for c := range before[r] {
			if before[r][c] != after[r][c] {
				changed++
			}
		}
	}
	return changed
}
