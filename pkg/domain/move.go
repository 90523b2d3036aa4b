package domain

import (
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/rule"
)

// MoveKind tags the Move union.
type MoveKind uint8

const (
	MovePlay MoveKind = iota + 1
	MoveGuess
)

// Move is what a seat does on its turn: play a card, or announce a rule.
type Move struct {
	Kind  MoveKind
	Card  card.Card
	Guess rule.Node
}

// PlayCard builds a card move.
func PlayCard(c card.Card) Move { return Move{Kind: MovePlay, Card: c} }

// GuessRule builds a rule-guess move.
func GuessRule(n rule.Node) Move { return Move{Kind: MoveGuess, Guess: n} }

func (m Move) IsGuess() bool { return m.Kind == MoveGuess }

func (m Move) String() string {
	if m.IsGuess() {
		return "guess " + m.Guess.String()
	}
	return "play " + m.Card.String()
}

// Outcome is the dealer's verdict on one play.
type Outcome struct {
	Turn     int         `json:"turn"`
	Seat     string      `json:"seat,omitempty"`
	Card     card.Card   `json:"card"`
	Accepted bool        `json:"accepted"`
	Window   rule.Window `json:"-"`
	// Status is the game status after this play.
	Status Status `json:"status"`
}

// View is the read-only game state a seat sees when choosing a move.
type View struct {
	GameID string
	Turn   int
	Round  int
	Board  *Board
}
