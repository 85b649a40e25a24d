package strategy

import "spatialgame/game"

// Stock strategies for the prisoner's dilemma, where game.Defect = 0 and
// game.Cooperate = 1.
var (
	AlwaysDefect = New("Always defect", 'D', func(own, opponent []game.Move) game.Move {
		return game.Defect
	})

	AlwaysCooperate = New("Always cooperate", 'C', func(own, opponent []game.Move) game.Move {
		return game.Cooperate
	})

	TitForTat = New("Tit-for-tat", 'T', func(own, opponent []game.Move) game.Move {
		if len(own) == 0 || len(opponent) == 0 {
			return game.Cooperate
		}
		return opponent[len(opponent)-1]
	})

	// Pavlov (win-stay, lose-shift) repeats its last move when the opponent
	// cooperated and switches otherwise.
	Pavlov = New("Pavlov", 'P', func(own, opponent []game.Move) game.Move {
		if len(own) == 0 || len(opponent) == 0 {
			return game.Cooperate
		}
		return own[len(own)-1] ^ (1 ^ opponent[len(opponent)-1])
	})

	// Revenger cooperates until anyone defects, then defects forever.
	Revenger = New("Revenger", 'R', func(own, opponent []game.Move) game.Move {
		if len(own) == 0 || len(opponent) == 0 {
			return game.Cooperate
		}
		if own[len(own)-1] == game.Defect || opponent[len(opponent)-1] == game.Defect {
			return game.Defect
		}
		return game.Cooperate
	})

	TitForTwoTats = New("Tit-for-two-tats", '2', func(own, opponent []game.Move) game.Move {
		n := len(opponent)
		if len(own) < 2 || n < 2 {
			return game.Cooperate
		}
		if opponent[n-1] == game.Defect && opponent[n-2] == game.Defect {
			return game.Defect
		}
		return game.Cooperate
	})
)

// Stock returns every stock strategy in a fixed order.
func Stock() []*Strategy {
	return []*Strategy{AlwaysCooperate, AlwaysDefect, TitForTat, Pavlov, Revenger, TitForTwoTats}
}
