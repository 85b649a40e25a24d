package match

import (
	"errors"
	"fmt"
	"spatialgame/game"
	"spatialgame/strategy"

	"golang.org/x/exp/rand"
)

var ErrInvalidConfig = errors.New("invalid match configuration")

// PlayIterated plays rounds rounds of g between a (row player) and b
// (column player) and returns each player's total payoff.
//
// With probability noise each player's intended move is replaced by a
// uniformly random legal move. Histories record the moves actually played.
// When noise is 0, rng is never touched and may be nil.
func PlayIterated(a, b *strategy.Strategy, g *game.Game, rounds int, noise float64, rng *rand.Rand) (int, int, error) {
	if rounds < 0 {
		return 0, 0, fmt.Errorf("%w: negative round count %d", ErrInvalidConfig, rounds)
	}
	if noise < 0 || noise > 1 {
		return 0, 0, fmt.Errorf("%w: noise %v not in [0, 1]", ErrInvalidConfig, noise)
	}
	if noise > 0 && rng == nil {
		return 0, 0, fmt.Errorf("%w: noisy match needs a random source", ErrInvalidConfig)
	}

	historyA := make([]game.Move, 0, rounds)
	historyB := make([]game.Move, 0, rounds)
	totalA, totalB := 0, 0

	for i := 0; i < rounds; i++ {
		moveA := a.Decide(historyA, historyB)
		if noise > 0 && rng.Float64() < noise {
			moveA = game.Move(rng.Intn(g.MoveCount()))
		}
		moveB := b.Decide(historyB, historyA)
		if noise > 0 && rng.Float64() < noise {
			moveB = game.Move(rng.Intn(g.MoveCount()))
		}

		payoffA, payoffB, err := g.Payoff(moveA, moveB)
		if err != nil {
			return 0, 0, fmt.Errorf("round %d of %s vs %s: %w", i+1, a, b, err)
		}
		historyA = append(historyA, moveA)
		historyB = append(historyB, moveB)
		totalA += payoffA
		totalB += payoffB
	}

	return totalA, totalB, nil
}
