package domain

import "errors"

// ErrGameNotStarted is returned when a card is played before the seed window is dealt.
var ErrGameNotStarted = errors.New("game not started")

// ErrGameEnded is returned when a card is played after the game is over.
var ErrGameEnded = errors.New("game ended")

// ErrGameStarted is returned when a game is started twice.
var ErrGameStarted = errors.New("game already started")

// ErrIllegalSeed is returned when the hidden rule rejects the seed window.
var ErrIllegalSeed = errors.New("seed window rejected by the rule")

// ErrNoLegalSequence is returned when no seed window satisfies the rule.
var ErrNoLegalSequence = errors.New("no legal starting sequence")
