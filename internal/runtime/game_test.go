package runtime_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/eleusis/internal/runtime"
	"github.com/aretw0/eleusis/internal/testutils"
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/player"
	"github.com/aretw0/eleusis/pkg/rule"
)

var red = rule.MustParse("equal(color(current), R)")

func TestGame_StateMachine(t *testing.T) {
	ctx := context.Background()
	g := runtime.NewGame(red, runtime.WithID("g-1"))
	assert.Equal(t, "g-1", g.ID())
	assert.Equal(t, domain.StatusInit, g.Status())

	_, err := g.Play(ctx, card.MustParse("2H"))
	assert.ErrorIs(t, err, domain.ErrGameNotStarted)

	err = g.Start(ctx, testutils.Seeds("2C", "3S", "4S"))
	assert.ErrorIs(t, err, domain.ErrIllegalSeed)
	assert.Equal(t, domain.StatusInit, g.Status())

	require.NoError(t, g.Start(ctx, testutils.Seeds("2C", "3S", "4H")))
	assert.Equal(t, domain.StatusPlaying, g.Status())
	assert.ErrorIs(t, g.Start(ctx, testutils.Seeds("2C", "3S", "4H")), domain.ErrGameStarted)

	out, err := g.PlayAs(ctx, "ada", card.MustParse("5S"))
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, "ada", out.Seat)
	assert.Equal(t, rule.MustWindow("3S", "4H", "5S"), out.Window)

	out, err = g.Play(ctx, card.MustParse("5D"))
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, 2, out.Turn)
	assert.Equal(t, "2C 3S 4H[5S] 5D", g.Board().String())

	require.NoError(t, g.End(ctx, domain.EndRuleGuess, "bob"))
	assert.Equal(t, domain.StatusEnded, g.Status())
	assert.Equal(t, "bob", g.Ender())
	assert.Equal(t, domain.EndRuleGuess, g.EndReason())

	_, err = g.Play(ctx, card.MustParse("6D"))
	assert.ErrorIs(t, err, domain.ErrGameEnded)
	assert.ErrorIs(t, g.End(ctx, domain.EndStopped, ""), domain.ErrGameEnded)
}

func TestGame_FailedPlayLeavesBoardUntouched(t *testing.T) {
	ctx := context.Background()
	g := runtime.NewGame(red)
	require.NoError(t, g.Start(ctx, testutils.Seeds("2H", "3H", "4H")))
	before := g.Board().String()

	_, err := g.Play(ctx, card.Invalid)
	assert.True(t, errors.Is(err, card.ErrInvalidCard))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = g.Play(cancelled, card.MustParse("5H"))
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, before, g.Board().String())
	assert.Equal(t, 0, g.Turns())
}

func TestGame_TurnBudget(t *testing.T) {
	ctx := context.Background()
	var ended []*domain.GameEndEvent
	g := runtime.NewGame(red,
		runtime.WithTurnBudget(2),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnGameEnd: func(_ context.Context, e *domain.GameEndEvent) { ended = append(ended, e) },
		}),
	)
	require.NoError(t, g.Start(ctx, testutils.Seeds("2H", "3H", "4H")))

	out, err := g.Play(ctx, card.MustParse("5H"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlaying, out.Status)

	out, err = g.Play(ctx, card.MustParse("6S"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnded, out.Status)
	assert.Equal(t, domain.EndTurnBudget, g.EndReason())

	require.Len(t, ended, 1)
	assert.Equal(t, 2, ended[0].Turns)
	assert.Equal(t, g.ID(), ended[0].GameID)
}

func TestGame_ConstancyThreshold(t *testing.T) {
	ctx := context.Background()
	s := player.NewScientist()
	g := runtime.NewGame(red, runtime.WithLearners(s), runtime.WithConstancyThreshold(2))
	require.NoError(t, g.Start(ctx, testutils.Seeds("2H", "JD", "5H")))

	for _, tok := range []string{"5S", "7D", "7H"} {
		_, err := g.Play(ctx, card.MustParse(tok))
		require.NoError(t, err)
	}
	require.Equal(t, "equal(color(current), R)", s.CurrentGuess())
	require.Equal(t, domain.StatusPlaying, g.Status())

	// the hypothesis is now stable: a red card is already accepted and a
	// black card is already rejected
	_, err := g.Play(ctx, card.MustParse("9D"))
	require.NoError(t, err)
	out, err := g.Play(ctx, card.MustParse("9S"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnded, out.Status)
	assert.Equal(t, domain.EndConstancy, g.EndReason())
}

func TestGame_HooksAndLearners(t *testing.T) {
	ctx := context.Background()
	s := player.NewScientist(player.WithName("ada"))

	var turns []domain.Outcome
	var diffs []*domain.BoardDiff
	var changes []*domain.HypothesisEvent
	g := runtime.NewGame(red,
		runtime.WithLearners(s),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnTurn: func(_ context.Context, e *domain.TurnEvent) {
				turns = append(turns, e.Outcome)
				diffs = append(diffs, e.Diff)
			},
			OnHypothesisChange: func(_ context.Context, e *domain.HypothesisEvent) {
				changes = append(changes, e)
			},
		}),
	)
	require.NoError(t, g.Start(ctx, testutils.Seeds("2H", "JD", "5H")))
	require.Len(t, changes, 1, "seeding reports the initial hypothesis")
	assert.Equal(t, "ada", changes[0].Seat)
	assert.Positive(t, changes[0].Predicates)

	_, err := g.Play(ctx, card.MustParse("5S"))
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.False(t, turns[0].Accepted)
	assert.Equal(t, &domain.BoardDiff{Rejected: card.MustParseAll("5S")}, diffs[0])
	assert.Len(t, changes, 2)
	assert.Equal(t, g.Board().String(), s.Board().String())

	_, err = g.Play(ctx, card.MustParse("7D"))
	require.NoError(t, err)
	require.Len(t, diffs, 2)
	assert.Equal(t, &domain.BoardDiff{Accepted: card.MustParseAll("7D")}, diffs[1])
}

func TestGame_DealSeeds(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for _, text := range []string{
		"equal(color(current), R)",
		"equal(value(previous2), 13)",
		"and(equal(suit(current), suit(previous)), greater(value(current), value(previous)))",
	} {
		r := rule.MustParse(text)
		g := runtime.NewGame(r)
		s, err := g.DealSeeds(rng)
		require.NoError(t, err, text)
		assert.True(t, r.Holds(rule.NewWindow(s[0], s[1], s[2])), text)
		assert.NotEqual(t, s[0], s[1])
		assert.NotEqual(t, s[1], s[2])
		require.NoError(t, g.Start(context.Background(), s))
	}

	_, err := runtime.NewGame(rule.False).DealSeeds(rng)
	assert.ErrorIs(t, err, domain.ErrNoLegalSequence)
}
