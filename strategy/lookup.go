package strategy

import (
	"errors"
	"fmt"
	"spatialgame/game"
	"strconv"
	"strings"
)

var ErrInvalidLookup = errors.New("invalid lookup table")

// History is the last few moves of both players, oldest first.
type History struct {
	Own      []game.Move
	Opponent []game.Move
}

// key renders a history as a comparable map key.
func (h History) key() string {
	var b strings.Builder
	for _, m := range h.Own {
		b.WriteString(strconv.Itoa(int(m)))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	for _, m := range h.Opponent {
		b.WriteString(strconv.Itoa(int(m)))
		b.WriteByte(',')
	}
	return b.String()
}

// Entry maps one remembered history to the move to play after it.
type Entry struct {
	History
	Move game.Move
}

// FromLookup builds a rule that looks at the last memory moves of both
// players and plays whatever the table says. It plays defaultMove while
// fewer than memory rounds have been played, or when the recent history has
// no entry.
func FromLookup(entries []Entry, memory int, defaultMove game.Move) (Rule, error) {
	if memory < 0 {
		return nil, fmt.Errorf("%w: negative memory %d", ErrInvalidLookup, memory)
	}
	table := make(map[string]game.Move, len(entries))
	for i, e := range entries {
		if len(e.Own) != memory || len(e.Opponent) != memory {
			return nil, fmt.Errorf("%w: entry %d remembers %d/%d moves, want %d", ErrInvalidLookup, i, len(e.Own), len(e.Opponent), memory)
		}
		table[e.key()] = e.Move
	}

	return func(own, opponent []game.Move) game.Move {
		if len(own) < memory || len(opponent) < memory {
			return defaultMove
		}
		recent := History{Own: own[len(own)-memory:], Opponent: opponent[len(opponent)-memory:]}
		if move, ok := table[recent.key()]; ok {
			return move
		}
		return defaultMove
	}, nil
}
