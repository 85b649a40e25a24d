package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"spatialgame/config"
	"spatialgame/engine"
	"spatialgame/experiments"
	"spatialgame/grid"
	"spatialgame/strategy"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML run config (defaults are used when empty)")
	experiment := flag.String("experiment", "", "Run a sweep instead of printing a grid: noise or mutation")
	out := flag.String("out", "experiments", "Directory for experiment records")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	if *experiment != "" {
		runExperiment(*experiment, *out, cfg)
		return
	}
	runDemo(cfg)
}

// runDemo prints the board once and again after every generation.
func runDemo(cfg *config.Config) {
	g, err := cfg.NewGrid()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create grid")
	}
	g.PopulateRandomly()
	fmt.Println(g)

	e := engine.NewLocalEngine(g, engine.WithObserver(func(generation int, g *grid.Grid) {
		fmt.Println(g)
	}))
	if _, _, err := e.Run(context.Background(), cfg.Generations); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func runExperiment(name, out string, cfg *config.Config) {
	roster, err := cfg.Roster()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid roster")
	}
	g, err := cfg.Game()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid game")
	}
	x := &experiments.Experiment{
		Root:         out,
		Roster:       roster,
		Game:         g,
		Workers:      cfg.Goroutines,
		Rows:         cfg.Rows,
		Cols:         cfg.Cols,
		Rounds:       cfg.Rounds,
		Noise:        cfg.Noise,
		MutationRate: cfg.MutationRate,
	}

	var dir string
	switch name {
	case "noise":
		dir, err = x.RunNoiseSweep(context.Background(), []float64{0, 0.01, 0.05, 0.1}, cfg.Generations)
	case "mutation":
		dir, err = x.RunMutationSweep(context.Background(), []float64{0, 0.001, 0.01, 0.05}, cfg.Generations)
	default:
		log.Fatal().Msgf("unknown experiment %q, want noise or mutation (stock strategies: %v)", name, strategy.Stock())
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", name)
	}
	log.Info().Msgf("wrote %s experiment records to %s", name, dir)
}
