package domain

import "github.com/aretw0/eleusis/pkg/card"

// BoardDiff represents the changes between two snapshots of a board.
// It is designed to be serialized to JSON for turn logs.
type BoardDiff struct {
	// Accepted holds the cards appended to the layout.
	Accepted []card.Card `json:"accepted,omitempty"`

	// Rejected holds the cards refused, in play order.
	Rejected []card.Card `json:"rejected,omitempty"`
}

// Diff calculates what was played between oldBoard and newBoard.
// If oldBoard is nil, it returns a diff representing the entire newBoard.
// Boards are append-only, so newBoard is assumed to extend oldBoard.
func Diff(oldBoard, newBoard *Board) *BoardDiff {
	if newBoard == nil {
		return nil
	}
	if oldBoard == nil {
		oldBoard = NewBoard()
	}

	diff := &BoardDiff{}
	for i, e := range newBoard.entries {
		var seen int
		if i < len(oldBoard.entries) {
			seen = len(oldBoard.entries[i].Rejected)
		} else {
			diff.Accepted = append(diff.Accepted, e.Accepted)
		}
		if seen < len(e.Rejected) {
			diff.Rejected = append(diff.Rejected, e.Rejected[seen:]...)
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any change.
func (d *BoardDiff) IsEmpty() bool {
	return len(d.Accepted) == 0 && len(d.Rejected) == 0
}
