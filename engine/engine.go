package engine

import (
	"context"
	"spatialgame/experiments/metrics"
)

const MaxGenerations = 100000

type Engine interface {
	// Run advances the grid for a number of generations, or until the board
	// stops changing if asked to
	Run(ctx context.Context, generations int) (runMetric metrics.RunMetric, generationMetrics []metrics.GenerationMetric, err error)
}
