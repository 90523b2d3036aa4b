package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/domain"
)

func seeded() *domain.Board {
	b := domain.NewBoard()
	b.Seed(card.MustParseAll("2H", "JD", "5H")...)
	return b
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		old  func() *domain.Board
		play func(b *domain.Board)
		want *domain.BoardDiff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  func() *domain.Board { return nil },
			want: &domain.BoardDiff{Accepted: card.MustParseAll("2H", "JD", "5H")},
		},
		{
			name: "No Change",
			old:  seeded,
			want: nil,
		},
		{
			name: "Rejections Then Accept",
			old:  seeded,
			play: func(b *domain.Board) {
				require.NoError(t, b.Reject(card.MustParse("5S")))
				require.NoError(t, b.Reject(card.MustParse("9C")))
				b.Accept(card.MustParse("7D"))
			},
			want: &domain.BoardDiff{
				Accepted: card.MustParseAll("7D"),
				Rejected: card.MustParseAll("5S", "9C"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := tt.old()
			next := seeded()
			if old != nil {
				next = old.Clone()
			}
			if tt.play != nil {
				tt.play(next)
			}
			assert.Equal(t, tt.want, domain.Diff(old, next))
		})
	}
}

func TestDiff_JSON(t *testing.T) {
	old := seeded()
	next := old.Clone()
	require.NoError(t, next.Reject(card.MustParse("KS")))

	raw, err := json.Marshal(domain.Diff(old, next))
	require.NoError(t, err)
	assert.JSONEq(t, `{"rejected":["KS"]}`, string(raw))
}
