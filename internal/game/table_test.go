package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinRejectsBankrollBelowMinimum(t *testing.T) {
	table, recorder := newTestTable(t, testRules(), 1)

	err := table.Join(newScriptedPlayer("Micheal", 5, 10, Stand))
	assert.ErrorIs(t, err, ErrBankrollBelowMinimum)
	assert.Zero(t, table.ActivePlayers())

	rejections := recorder.ofType(EventTypeJoinRejected)
	require.Len(t, rejections, 1)
	assert.Equal(t, RejectBelowMinimum, rejections[0].(JoinRejectedEvent).Reason)
}

func TestJoinRejectsWhenTableFull(t *testing.T) {
	table, recorder := newTestTable(t, testRules(), 1)

	require.NoError(t, table.Join(newScriptedPlayer("Alice", 500, 10, Stand)))
	require.NoError(t, table.Join(newScriptedPlayer("Bob", 500, 10, Stand)))
	assert.Equal(t, 2, table.ActivePlayers())

	err := table.Join(newScriptedPlayer("Eve", 500, 10, Stand))
	assert.ErrorIs(t, err, ErrTableFull)
	assert.Equal(t, 2, table.ActivePlayers())

	rejections := recorder.ofType(EventTypeJoinRejected)
	require.Len(t, rejections, 1)
	assert.Equal(t, RejectTableFull, rejections[0].(JoinRejectedEvent).Reason)
}

func TestJoinTakesFirstEmptySeat(t *testing.T) {
	table, _ := newTestTable(t, testRules(), 1)

	require.NoError(t, table.Join(newScriptedPlayer("Alice", 500, 10, Stand)))
	require.NoError(t, table.Join(newScriptedPlayer("Bob", 500, 10, Stand)))

	assert.Equal(t, "Alice", table.Seats()[0].Player.Name())
	assert.Equal(t, "Bob", table.Seats()[1].Player.Name())
}

func TestBetIsDebitedExactlyOnce(t *testing.T) {
	table, _ := newTestTable(t, testRules(), 1)
	player := newScriptedPlayer("Alice", 1000, 30, Stand)
	require.NoError(t, table.Join(player))

	require.NoError(t, table.PlayRound(context.Background()))

	seat := table.Seats()[0]
	// Whatever the outcome, the bankroll moved by exactly one debit of the
	// bet plus one credit of the reward.
	assert.Equal(t, 1000-30+seat.Reward, player.Bankroll())
}

func TestShoeRebuiltAtCutCard(t *testing.T) {
	rules := testRules()
	table, recorder := newTestTable(t, rules, 1)
	require.NoError(t, table.Join(newScriptedPlayer("Alice", 100000, 10, Stand)))

	// Burn the shoe down to the cut card by playing rounds
	for table.Shoe().Remaining() > table.Shoe().CutCardAt() {
		require.NoError(t, table.PlayRound(context.Background()))
	}
	require.NoError(t, table.PlayRound(context.Background()))

	starts := recorder.ofType(EventTypeRoundStart)
	last := starts[len(starts)-1].(RoundStartEvent)
	assert.True(t, last.ShoeRebuilt, "round after passing the cut card must rebuild the shoe")
	assert.Greater(t, last.ShoeRemaining, table.Shoe().CutCardAt())

	for _, e := range starts[:len(starts)-1] {
		assert.False(t, e.(RoundStartEvent).ShoeRebuilt)
	}
}

func TestPlayStopsWithNoActivePlayers(t *testing.T) {
	table, recorder := newTestTable(t, testRules(), 1)

	require.NoError(t, table.Play(context.Background(), 0))
	assert.Len(t, recorder.ofType(EventTypeNoActivePlayers), 1)
	assert.Empty(t, recorder.ofType(EventTypeRoundStart))
}

func TestPlayHonoursRoundLimit(t *testing.T) {
	table, recorder := newTestTable(t, testRules(), 1)
	require.NoError(t, table.Join(newScriptedPlayer("Alice", 100000, 10, Stand)))

	require.NoError(t, table.Play(context.Background(), 3))
	assert.Len(t, recorder.ofType(EventTypeRoundStart), 3)
}

func TestPlayHonoursContextCancellation(t *testing.T) {
	table, _ := newTestTable(t, testRules(), 1)
	require.NoError(t, table.Join(newScriptedPlayer("Alice", 100000, 10, Stand)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, table.Play(ctx, 0), context.Canceled)
}

func TestSeatBelowMinimumSitsOutTheRound(t *testing.T) {
	table, recorder := newTestTable(t, testRules(), 1)
	rich := newScriptedPlayer("Alice", 1000, 10, Stand)
	broke := newScriptedPlayer("Bob", 1000, 10, Stand)
	require.NoError(t, table.Join(rich))
	require.NoError(t, table.Join(broke))
	broke.bankroll = 3

	require.NoError(t, table.PlayRound(context.Background()))

	assert.Equal(t, StatusSittingOut, table.Seats()[1].Status)
	assert.Empty(t, table.Seats()[1].Hand, "a seat sitting out is not dealt in")
	assert.Equal(t, 3, broke.Bankroll(), "no debit while sitting out")

	bets := recorder.ofType(EventTypeBetPlaced)
	require.Len(t, bets, 1)
	assert.Equal(t, "Alice", bets[0].(BetPlacedEvent).PlayerName)
}

func TestCardConservationAcrossRound(t *testing.T) {
	rules := testRules()
	table, _ := newTestTable(t, rules, 5)
	require.NoError(t, table.Join(newScriptedPlayer("Alice", 1000, 10, Stand)))
	require.NoError(t, table.Join(newScriptedPlayer("Bob", 1000, 10, Stand)))

	require.NoError(t, table.PlayRound(context.Background()))

	held := len(table.dealer.Hand())
	for _, seat := range table.Seats() {
		held += len(seat.Hand)
	}
	assert.Equal(t, rules.NumberOfDecks*52, table.Shoe().Remaining()+held,
		"every card is either in the shoe or in a hand")
}
