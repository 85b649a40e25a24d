package config

import (
	"errors"
	"fmt"
	"os"
	"spatialgame/game"
	"spatialgame/grid"
	"spatialgame/meta"
	"spatialgame/strategy"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config describes a single run, as read from YAML.
type Config struct {
	Rows         int      `yaml:"rows"`
	Cols         int      `yaml:"cols"`
	Rounds       int      `yaml:"rounds"`
	Noise        float64  `yaml:"noise"`
	MutationRate float64  `yaml:"mutation_rate"`
	Seed         uint64   `yaml:"seed"`
	Generations  int      `yaml:"generations"`
	Goroutines   int      `yaml:"goroutines"`
	Strategies   []string `yaml:"strategies"`
	// Payoffs[i][j] holds the row and column payoffs for moves i and j.
	// Empty means the prisoner's dilemma.
	Payoffs [][][2]int `yaml:"payoffs"`
}

func Default() *Config {
	return &Config{
		Rows:        meta.ROWS,
		Cols:        meta.COLS,
		Rounds:      meta.ROUNDS,
		Generations: meta.GENERATIONS,
		Goroutines:  meta.GO_ROUTINES,
		Strategies:  []string{"Always cooperate", "Always defect", "Tit-for-tat"},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Rows < grid.MinSize || c.Cols < grid.MinSize:
		return fmt.Errorf("%w: board %dx%d is smaller than %dx%d", ErrInvalidConfig, c.Rows, c.Cols, grid.MinSize, grid.MinSize)
	case c.Rounds < 0:
		return fmt.Errorf("%w: negative rounds", ErrInvalidConfig)
	case c.Generations < 0:
		return fmt.Errorf("%w: negative generations", ErrInvalidConfig)
	case c.Noise < 0 || c.Noise > 1:
		return fmt.Errorf("%w: noise %v not in [0, 1]", ErrInvalidConfig, c.Noise)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate %v not in [0, 1]", ErrInvalidConfig, c.MutationRate)
	case len(c.Strategies) == 0:
		return fmt.Errorf("%w: no strategies", ErrInvalidConfig)
	}
	if _, err := c.Roster(); err != nil {
		return err
	}
	if _, err := c.Game(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Roster() ([]*strategy.Strategy, error) {
	roster, err := strategy.Lookup(c.Strategies...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return roster, nil
}

func (c *Config) Game() (*game.Game, error) {
	if len(c.Payoffs) == 0 {
		return game.PrisonersDilemma(), nil
	}
	matrix := make([][]game.Payoff, len(c.Payoffs))
	for i, row := range c.Payoffs {
		matrix[i] = make([]game.Payoff, len(row))
		for j, p := range row {
			matrix[i][j] = game.Payoff{Row: p[0], Col: p[1]}
		}
	}
	g, err := game.New(matrix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return g, nil
}

// NewGrid builds the grid the config describes. A zero seed leaves the
// grid to pick its own.
func (c *Config) NewGrid() (*grid.Grid, error) {
	roster, err := c.Roster()
	if err != nil {
		return nil, err
	}
	g, err := c.Game()
	if err != nil {
		return nil, err
	}

	options := []grid.Option{
		grid.WithNoise(c.Noise),
		grid.WithMutationRate(c.MutationRate),
		grid.WithGoroutines(c.Goroutines),
	}
	if c.Seed != 0 {
		options = append(options, grid.WithSeed(c.Seed))
	}
	return grid.New(roster, c.Rows, c.Cols, g, c.Rounds, options...)
}
