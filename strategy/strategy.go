package strategy

import (
	"errors"
	"fmt"
	"spatialgame/game"

	"golang.org/x/exp/slices"
)

// Rule picks the next move from both players' histories. Both slices have
// one entry per round played so far and are empty in the first round.
// Rules must not modify or retain the slices.
type Rule func(own, opponent []game.Move) game.Move

// Strategy is a named decision rule. Strategies carry no state of their own.
type Strategy struct {
	name   string
	symbol rune
	rule   Rule
}

func New(name string, symbol rune, rule Rule) *Strategy {
	if rule == nil {
		panic("strategy rule must not be nil")
	}
	return &Strategy{name: name, symbol: symbol, rule: rule}
}

func (s *Strategy) Name() string   { return s.name }
func (s *Strategy) Symbol() rune   { return s.symbol }
func (s *Strategy) String() string { return s.name }

func (s *Strategy) Decide(own, opponent []game.Move) game.Move {
	return s.rule(own, opponent)
}

var ErrUnknownStrategy = errors.New("unknown strategy")

// Index returns the position of the strategy called name in roster, or -1.
func Index(roster []*Strategy, name string) int {
	return slices.IndexFunc(roster, func(s *Strategy) bool {
		return s.name == name
	})
}

// Lookup resolves names against the stock strategies, keeping their order.
func Lookup(names ...string) ([]*Strategy, error) {
	stock := Stock()
	roster := make([]*Strategy, 0, len(names))
	for _, name := range names {
		i := Index(stock, name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
		}
		roster = append(roster, stock[i])
	}
	return roster, nil
}
