package history

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/game"
)

type fakeStore struct {
	saved []*RoundRecord
	err   error
}

func (f *fakeStore) SaveRound(record *RoundRecord) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, record)
	return nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRecorderAssemblesRound(t *testing.T) {
	store := &fakeStore{}
	recorder := NewRecorder(store, testLogger())

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Second)

	recorder.OnEvent(game.NewRoundStartEvent("round-1", 260, false, start))
	recorder.OnEvent(game.NewBetPlacedEvent("round-1", 0, "Alice", 20, start))
	recorder.OnEvent(game.NewBetPlacedEvent("round-1", 1, "Bob", 50, start))
	recorder.OnEvent(game.NewBustEvent("round-1", 1, "Bob", game.Score{Soft: 25, Hard: 25}, start))
	recorder.OnEvent(game.NewRewardEvent("round-1", 0, "Alice", 40, game.OutcomeWin, end))
	recorder.OnEvent(game.NewRewardEvent("round-1", 1, "Bob", 0, game.OutcomeLoss, end))
	recorder.OnEvent(game.NewRoundEndEvent("round-1", game.Score{Soft: 18, Hard: 18}, false, end))

	require.Len(t, store.saved, 1)
	record := store.saved[0]

	assert.Equal(t, "round-1", record.RoundID)
	assert.Equal(t, start, record.StartedAt)
	assert.Equal(t, end, record.EndedAt)
	assert.Equal(t, "18", record.DealerScore)
	assert.False(t, record.DealerBust)

	require.Len(t, record.Seats, 2)
	assert.Equal(t, SeatResult{Seat: 0, Player: "Alice", Bet: 20, Reward: 40, Outcome: "win"}, record.Seats[0])
	assert.Equal(t, SeatResult{Seat: 1, Player: "Bob", Bet: 50, Reward: 0, Outcome: "loss", Busted: true}, record.Seats[1])
}

func TestRecorderOrdersNonContiguousSeats(t *testing.T) {
	store := &fakeStore{}
	recorder := NewRecorder(store, testLogger())

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	recorder.OnEvent(game.NewRoundStartEvent("round-2", 260, false, ts))
	recorder.OnEvent(game.NewBetPlacedEvent("round-2", 2, "Carol", 10, ts))
	recorder.OnEvent(game.NewBetPlacedEvent("round-2", 0, "Alice", 10, ts))
	recorder.OnEvent(game.NewRewardEvent("round-2", 2, "Carol", 10, game.OutcomePush, ts))
	recorder.OnEvent(game.NewRewardEvent("round-2", 0, "Alice", 10, game.OutcomePush, ts))
	recorder.OnEvent(game.NewRoundEndEvent("round-2", game.Score{Soft: 17, Hard: 17}, false, ts))

	require.Len(t, store.saved, 1)
	record := store.saved[0]
	require.Len(t, record.Seats, 2)
	assert.Equal(t, 0, record.Seats[0].Seat)
	assert.Equal(t, 2, record.Seats[1].Seat)
}

func TestRecorderIgnoresEventsOutsideRound(t *testing.T) {
	store := &fakeStore{}
	recorder := NewRecorder(store, testLogger())

	ts := time.Now()
	recorder.OnEvent(game.NewBetPlacedEvent("round-3", 0, "Alice", 20, ts))
	recorder.OnEvent(game.NewRewardEvent("round-3", 0, "Alice", 40, game.OutcomeWin, ts))
	recorder.OnEvent(game.NewRoundEndEvent("round-3", game.Score{Soft: 20, Hard: 20}, false, ts))

	assert.Empty(t, store.saved)
}

func TestRecorderSurvivesSaveFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	recorder := NewRecorder(store, testLogger())

	ts := time.Now()
	recorder.OnEvent(game.NewRoundStartEvent("round-4", 260, false, ts))
	recorder.OnEvent(game.NewRoundEndEvent("round-4", game.Score{Soft: 19, Hard: 19}, false, ts))

	// a later round with a working store still records
	store.err = nil
	recorder.OnEvent(game.NewRoundStartEvent("round-5", 260, false, ts))
	recorder.OnEvent(game.NewRoundEndEvent("round-5", game.Score{Soft: 19, Hard: 19}, false, ts))

	require.Len(t, store.saved, 1)
	assert.Equal(t, "round-5", store.saved[0].RoundID)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	record := &RoundRecord{
		RoundID:     "round-1",
		StartedAt:   start,
		EndedAt:     start.Add(time.Minute),
		DealerScore: "12/22",
		DealerBust:  true,
		Seats: []SeatResult{
			{Seat: 0, Player: "Alice", Bet: 20, Reward: 40, Outcome: "win"},
			{Seat: 1, Player: "Bob", Bet: 50, Reward: 100, Outcome: "win"},
		},
	}
	require.NoError(t, store.SaveRound(record))

	later := &RoundRecord{
		RoundID:     "round-2",
		StartedAt:   start.Add(5 * time.Minute),
		EndedAt:     start.Add(6 * time.Minute),
		DealerScore: "20",
	}
	require.NoError(t, store.SaveRound(later))

	records, err := store.RecentRounds(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// newest first
	assert.Equal(t, "round-2", records[0].RoundID)
	assert.Equal(t, "round-1", records[1].RoundID)

	got := records[1]
	assert.True(t, got.DealerBust)
	assert.Equal(t, "12/22", got.DealerScore)
	require.Len(t, got.Seats, 2)
	assert.Equal(t, "Alice", got.Seats[0].Player)
	assert.Equal(t, 100, got.Seats[1].Reward)
}

func TestSQLiteStoreRejectsDuplicateRound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	record := &RoundRecord{RoundID: "round-1", StartedAt: time.Now(), EndedAt: time.Now()}
	require.NoError(t, store.SaveRound(record))
	assert.Error(t, store.SaveRound(record))
}
