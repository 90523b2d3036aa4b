package domain

import (
	"fmt"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/rule"
)

// Status is the dealer's state machine position.
type Status string

const (
	StatusInit    Status = "INIT"    // Waiting for the seed window
	StatusPlaying Status = "PLAYING" // Accepting plays
	StatusEnded   Status = "ENDED"   // Sink state
)

// Entry is one accepted card followed by the cards rejected right after it.
type Entry struct {
	Accepted card.Card   `json:"accepted"`
	Rejected []card.Card `json:"rejected,omitempty"`
}

// Board is the append-only layout of a game. Only the rejected list of the
// last entry can grow.
type Board struct {
	entries []Entry
	seeds   int
}

// NewBoard returns an empty board.
func NewBoard() *Board { return &Board{} }

// Seed lays out the dealer's opening cards.
func (b *Board) Seed(cards ...card.Card) {
	for _, c := range cards {
		b.entries = append(b.entries, Entry{Accepted: c})
	}
	b.seeds += len(cards)
}

// Accept appends an accepted card.
func (b *Board) Accept(c card.Card) {
	b.entries = append(b.entries, Entry{Accepted: c})
}

// Reject records a card refused after the last accepted one.
func (b *Board) Reject(c card.Card) error {
	if len(b.entries) == 0 {
		return ErrGameNotStarted
	}
	last := &b.entries[len(b.entries)-1]
	last.Rejected = append(last.Rejected, c)
	return nil
}

// Len returns the number of accepted cards, seeds included.
func (b *Board) Len() int { return len(b.entries) }

// SeedCount returns how many of the accepted cards were dealt as seeds.
func (b *Board) SeedCount() int { return b.seeds }

// Entries returns a deep copy of the layout.
func (b *Board) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	for i, e := range b.entries {
		out[i] = Entry{Accepted: e.Accepted, Rejected: append([]card.Card(nil), e.Rejected...)}
	}
	return out
}

// Accepted returns the accepted cards in order.
func (b *Board) Accepted() []card.Card {
	out := make([]card.Card, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Accepted
	}
	return out
}

// Rejected returns every rejected card with the window it was judged in.
func (b *Board) Rejected() []rule.Window {
	var out []rule.Window
	for i, e := range b.entries {
		if i == 0 {
			continue
		}
		for _, c := range e.Rejected {
			out = append(out, rule.NewWindow(b.entries[i-1].Accepted, e.Accepted, c))
		}
	}
	return out
}

// Window returns [previous2, previous, c] for a card about to be judged.
func (b *Board) Window(c card.Card) (rule.Window, bool) {
	n := len(b.entries)
	if n < 2 {
		return rule.Window{}, false
	}
	return rule.NewWindow(b.entries[n-2].Accepted, b.entries[n-1].Accepted, c), true
}

// Windows returns every window of three consecutive accepted cards.
func (b *Board) Windows() []rule.Window {
	var out []rule.Window
	for i := 2; i < len(b.entries); i++ {
		out = append(out, rule.NewWindow(b.entries[i-2].Accepted, b.entries[i-1].Accepted, b.entries[i].Accepted))
	}
	return out
}

// Plays returns the cards played after the seeds in board order: each
// accepted card followed by the cards rejected after it.
func (b *Board) Plays() []Play {
	var out []Play
	for i, e := range b.entries {
		if i >= b.seeds {
			out = append(out, Play{Card: e.Accepted, Accepted: true})
		}
		for _, c := range e.Rejected {
			out = append(out, Play{Card: c})
		}
	}
	return out
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	return &Board{entries: b.Entries(), seeds: b.seeds}
}

func (b *Board) String() string {
	s := ""
	for i, e := range b.entries {
		if i > 0 {
			s += " "
		}
		s += e.Accepted.String()
		if len(e.Rejected) > 0 {
			s += fmt.Sprint(card.Hand(e.Rejected).Strings())
		}
	}
	return s
}

// Play is a single played card and the dealer's verdict.
type Play struct {
	Card     card.Card
	Accepted bool
}
