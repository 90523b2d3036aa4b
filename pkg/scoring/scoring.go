// Package scoring computes a player's end-of-game score. Lower is better.
package scoring

import (
	"fmt"

	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/rule"
)

// Variant selects which terms contribute to the score.
type Variant string

const (
	// Tournament applies play costs, the describes-all penalty and the
	// correct-guess bonus.
	Tournament Variant = "tournament"
	// Classic applies play costs and the wrong-rule penalty only.
	Classic Variant = "classic"
)

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case Tournament, Classic:
		return v, nil
	}
	return "", fmt.Errorf("unknown scoring variant %q", s)
}

// Score table.
const (
	DefaultFreePlays = 20

	AcceptedCost = 1
	RejectedCost = 2
	MissesPlays  = 30
	WrongRule    = 15
	CorrectRule  = -75
	EnderBonus   = -25
)

// Input is everything the score depends on.
type Input struct {
	Board  *domain.Board
	Hidden rule.Node
	Guess  rule.Node
	// IsEnder is set when this player ended the game with a rule guess.
	IsEnder bool
	// FreePlays is the number of plays that cost nothing; zero means
	// DefaultFreePlays.
	FreePlays int
}

// Breakdown itemizes a score.
type Breakdown struct {
	Plays        int  `json:"plays"`
	PlayCost     int  `json:"play_cost"`
	DescribesAll bool `json:"describes_all"`
	Equivalent   bool `json:"equivalent"`
	Total        int  `json:"total"`
}

// Score computes the score. It is a pure function of its input.
func Score(in Input, v Variant) Breakdown {
	free := in.FreePlays
	if free <= 0 {
		free = DefaultFreePlays
	}

	var b Breakdown
	for i, p := range in.Board.Plays() {
		b.Plays++
		if i < free {
			continue
		}
		if p.Accepted {
			b.PlayCost += AcceptedCost
		} else {
			b.PlayCost += RejectedCost
		}
	}
	b.Total = b.PlayCost
	b.DescribesAll = DescribesAll(in.Guess, in.Board)
	b.Equivalent = rule.Equivalent(in.Hidden, in.Guess)

	switch v {
	case Classic:
		if !b.Equivalent {
			b.Total += WrongRule
		}
	default:
		if !b.DescribesAll {
			b.Total += MissesPlays
		}
		if b.Equivalent {
			b.Total += CorrectRule
			if in.IsEnder {
				b.Total += EnderBonus
			}
		} else {
			b.Total += WrongRule
		}
	}
	return b
}

// DescribesAll reports whether the guess agrees with every verdict recorded
// on the board.
func DescribesAll(guess rule.Node, b *domain.Board) bool {
	for _, w := range b.Windows() {
		if !guess.Holds(w) {
			return false
		}
	}
	for _, w := range b.Rejected() {
		if guess.Holds(w) {
			return false
		}
	}
	return true
}
