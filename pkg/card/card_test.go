package card_test

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Attributes(t *testing.T) {
	tests := []struct {
		token string
		rank  card.Rank
		suit  card.Suit
		color card.Color
		royal bool
		even  bool
	}{
		{"AS", card.Ace, card.Spades, card.Black, false, false},
		{"10H", 10, card.Hearts, card.Red, false, true},
		{"KD", card.King, card.Diamonds, card.Red, true, false},
		{"QC", card.Queen, card.Clubs, card.Black, true, true},
		{"2D", 2, card.Diamonds, card.Red, false, true},
		{"JH", card.Jack, card.Hearts, card.Red, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			c, err := card.Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.rank, c.Rank())
			assert.Equal(t, tt.suit, c.Suit())
			assert.Equal(t, tt.color, c.Color())
			assert.Equal(t, tt.royal, c.IsRoyal())
			assert.Equal(t, tt.even, c.Even())
			assert.Equal(t, !tt.even, c.Odd())
			assert.Equal(t, tt.token, c.String())
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, token := range []string{"", "A", "1H", "11S", "0D", "10", "AX", "as", "13C", "100H", "KDD"} {
		_, err := card.Parse(token)
		assert.Truef(t, errors.Is(err, card.ErrInvalidCard), "token %q should be rejected", token)
	}
}

func TestParseRank(t *testing.T) {
	r, ok := card.ParseRank("A")
	require.True(t, ok)
	assert.Equal(t, card.Ace, r)

	r, ok = card.ParseRank("13")
	require.True(t, ok)
	assert.Equal(t, card.King, r)

	for _, s := range []string{"0", "14", "01", "269", "X"} {
		_, ok := card.ParseRank(s)
		assert.Falsef(t, ok, "rank %q", s)
	}
}

func TestSuitOrderIsTotal(t *testing.T) {
	for i := 1; i < len(card.Suits); i++ {
		assert.Less(t, uint8(card.Suits[i-1]), uint8(card.Suits[i]))
	}
	assert.Equal(t, "C", card.Suits[0].String())
	assert.Equal(t, "S", card.Suits[3].String())
}

func TestDeck(t *testing.T) {
	d := card.Deck()
	require.Len(t, d, card.DeckSize)

	seen := make(map[card.Card]bool)
	for i, c := range d {
		require.True(t, c.Valid())
		require.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
		assert.Equal(t, i, card.Index(c))
	}
	assert.Equal(t, -1, card.Index(card.Invalid))
}

func TestDealIsDeterministicForSeed(t *testing.T) {
	a := card.Deal(rand.New(rand.NewSource(7)), 14)
	b := card.Deal(rand.New(rand.NewSource(7)), 14)
	assert.Equal(t, a, b)
	assert.Len(t, a, 14)
	assert.True(t, a.Contains(a[3]))
}

func TestCard_TextRoundTrip(t *testing.T) {
	raw, err := json.Marshal(card.MustParseAll("10H", "AS"))
	require.NoError(t, err)
	assert.JSONEq(t, `["10H","AS"]`, string(raw))

	var back []card.Card
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, card.MustParseAll("10H", "AS"), back)

	assert.Error(t, json.Unmarshal([]byte(`["1H"]`), &back))
}
