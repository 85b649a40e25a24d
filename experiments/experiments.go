package experiments

import (
	"context"
	"fmt"
	"spatialgame/engine"
	"spatialgame/experiments/metrics"
	"spatialgame/game"
	"spatialgame/grid"
	"spatialgame/meta"
	"spatialgame/strategy"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const NumRuns = 5 // Per config

// Experiment runs each config NumRuns times on the given roster and writes
// the records under Root. Zero board dimensions and rounds fall back to the
// meta defaults.
type Experiment struct {
	Root         string
	Runs         int
	Roster       []*strategy.Strategy
	Game         *game.Game
	Workers      int
	UntilFix     bool // Stop runs early once the board is stable
	Rows         int
	Cols         int
	Rounds       int
	Noise        float64 // Used by sweeps that do not vary noise
	MutationRate float64 // Used by sweeps that do not vary the mutation rate
}

// RunNoiseSweep varies the noise and keeps the experiment's mutation rate.
func (x *Experiment) RunNoiseSweep(ctx context.Context, noises []float64, generations int) (string, error) {
	configs := make([]metrics.RunConfig, len(noises))
	for i, noise := range noises {
		configs[i] = x.baseConfig(i+1, generations)
		configs[i].Noise = noise
	}
	return x.run(ctx, "noise", configs)
}

// RunMutationSweep varies the mutation rate and keeps the experiment's noise.
func (x *Experiment) RunMutationSweep(ctx context.Context, rates []float64, generations int) (string, error) {
	configs := make([]metrics.RunConfig, len(rates))
	for i, rate := range rates {
		configs[i] = x.baseConfig(i+1, generations)
		configs[i].MutationRate = rate
	}
	return x.run(ctx, "mutation", configs)
}

func (x *Experiment) baseConfig(id, generations int) metrics.RunConfig {
	config := metrics.RunConfig{
		ID:           id,
		Rows:         x.Rows,
		Cols:         x.Cols,
		Rounds:       x.Rounds,
		Noise:        x.Noise,
		MutationRate: x.MutationRate,
		Seed:         uint64(id),
		Generations:  generations,
	}
	if config.Rows <= 0 {
		config.Rows = meta.ROWS
	}
	if config.Cols <= 0 {
		config.Cols = meta.COLS
	}
	if config.Rounds <= 0 {
		config.Rounds = meta.ROUNDS
	}
	return config
}

// run executes the configs and returns the directory the records went to.
func (x *Experiment) run(ctx context.Context, name string, configs []metrics.RunConfig) (string, error) {
	runs := x.Runs
	if runs <= 0 {
		runs = NumRuns
	}
	g := x.Game
	if g == nil {
		g = game.PrisonersDilemma()
	}

	runRecords := []metrics.RunRecord{}
	generationRecords := []metrics.GenerationRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v", ci+1, len(configs), config)

		for i := 0; i < runs; i++ {
			// Each run gets its own seed so repeats differ
			seeded := config
			seeded.Seed = config.Seed*1000003 + uint64(i)

			id := uuid.NewString()
			run, generations, err := x.runOnce(ctx, g, seeded)
			if err != nil {
				return "", fmt.Errorf("config %d run %d: %w", config.ID, i+1, err)
			}
			runRecords = append(runRecords, metrics.RunRecord{ID: id, Config: config.ID, Seed: seeded.Seed, RunMetric: run})
			for _, gm := range generations {
				generationRecords = append(generationRecords, metrics.GenerationRecord{Run: id, GenerationMetric: gm})
			}

			log.Info().Msgf("completed config %d run %d of %d after %d generations", config.ID, i+1, runs, run.Generations)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(x.Root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteRunConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store run configs: %w", err)
	}
	log.Info().Msg("stored run configs")

	if err := writer.WriteRunRecords(runRecords); err != nil {
		return "", fmt.Errorf("failed to write run records: %w", err)
	}
	log.Info().Msg("stored run records")

	if err := writer.WriteGenerationRecords(generationRecords); err != nil {
		return "", fmt.Errorf("failed to write generation records: %w", err)
	}
	log.Info().Msg("stored generation records")

	return writer.Dir(), nil
}

func (x *Experiment) runOnce(ctx context.Context, g *game.Game, config metrics.RunConfig) (metrics.RunMetric, []metrics.GenerationMetric, error) {
	options := []grid.Option{
		grid.WithNoise(config.Noise),
		grid.WithMutationRate(config.MutationRate),
		grid.WithSeed(config.Seed),
	}
	if x.Workers > 0 {
		options = append(options, grid.WithGoroutines(x.Workers))
	}
	board, err := grid.New(x.Roster, config.Rows, config.Cols, g, config.Rounds, options...)
	if err != nil {
		return metrics.RunMetric{}, nil, err
	}
	board.PopulateRandomly()

	engineOptions := []engine.Option{engine.WithMetrics()}
	if x.UntilFix {
		engineOptions = append(engineOptions, engine.WithStopWhenStable())
	}
	return engine.NewLocalEngine(board, engineOptions...).Run(ctx, config.Generations)
}
