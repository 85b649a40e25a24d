package match

import (
	"fmt"
	"runtime"
	"spatialgame/game"
	"spatialgame/strategy"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Table holds cumulative match payoffs: Table[i][j] is what strategy i
// earned playing strategy j. It is not necessarily symmetric.
type Table [][]int

// Payoff returns what strategy i earned against strategy j.
func (t Table) Payoff(i, j int) int {
	return t[i][j]
}

type Option func(b *builder)

type builder struct {
	noise   float64
	workers int
	rng     *rand.Rand
}

func WithNoise(noise float64) Option {
	return func(b *builder) {
		b.noise = noise
	}
}

// WithWorkers bounds the number of pairs simulated concurrently.
func WithWorkers(workers int) Option {
	return func(b *builder) {
		if workers > 0 {
			b.workers = workers
		}
	}
}

// WithRand sets the source that per-pair seeds are drawn from. It is only
// consumed when noise is positive.
func WithRand(rng *rand.Rand) Option {
	return func(b *builder) {
		if rng != nil {
			b.rng = rng
		}
	}
}

type pair struct {
	i, j int
	seed uint64
}

// BuildTable plays one iterated match for every pair i <= j (self-pairs
// included) and writes the two totals into table[i][j] and table[j][i].
//
// Pairs run concurrently, each on its own generator seeded up front in pair
// order, so the table only depends on the seed source and not on the number
// of workers.
func BuildTable(roster []*strategy.Strategy, g *game.Game, rounds int, options ...Option) (Table, error) {
	b := &builder{ // Default values
		workers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(b)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: empty strategy roster", ErrInvalidConfig)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: no game", ErrInvalidConfig)
	}
	if b.noise < 0 || b.noise > 1 {
		return nil, fmt.Errorf("%w: noise %v not in [0, 1]", ErrInvalidConfig, b.noise)
	}
	if rounds < 0 {
		return nil, fmt.Errorf("%w: negative round count %d", ErrInvalidConfig, rounds)
	}
	if b.noise > 0 && b.rng == nil {
		b.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	k := len(roster)
	table := make(Table, k)
	for i := range table {
		table[i] = make([]int, k)
	}

	pairs := make([]pair, 0, k*(k+1)/2)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			p := pair{i: i, j: j}
			if b.noise > 0 {
				p.seed = b.rng.Uint64()
			}
			pairs = append(pairs, p)
		}
	}

	start := time.Now()
	var eg errgroup.Group
	eg.SetLimit(b.workers)
	for _, p := range pairs {
		p := p
		eg.Go(func() error {
			var rng *rand.Rand
			if b.noise > 0 {
				rng = rand.New(rand.NewSource(p.seed))
			}
			totalI, totalJ, err := PlayIterated(roster[p.i], roster[p.j], g, rounds, b.noise, rng)
			if err != nil {
				return err
			}
			// Each pair owns its two cells; (j, i) is never simulated separately
			table[p.i][p.j] = totalI
			table[p.j][p.i] = totalJ
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build matchup table: %w", err)
	}

	log.Debug().Msgf("built %dx%d matchup table over %d rounds (noise=%v) in %s", k, k, rounds, b.noise, time.Since(start))
	return table, nil
}
