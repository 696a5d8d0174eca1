// Package history records completed rounds from the event stream and
// persists them, so a session can be reviewed after the table closes.
package history

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// SeatResult is one seat's line in a round record
type SeatResult struct {
	Seat    int
	Player  string
	Bet     int
	Reward  int
	Outcome string
	Busted  bool
}

// RoundRecord is the durable summary of one completed round
type RoundRecord struct {
	RoundID     string
	StartedAt   time.Time
	EndedAt     time.Time
	DealerScore string
	DealerBust  bool
	Seats       []SeatResult
}

// Store persists round records
type Store interface {
	SaveRound(record *RoundRecord) error
}

// Recorder subscribes to table events and assembles one RoundRecord per
// round, saving it when the round ends. Recording never feeds back into the
// engine; a failed save is logged and dropped.
type Recorder struct {
	store   Store
	logger  *log.Logger
	current *RoundRecord
	seats   map[int]*SeatResult
}

// NewRecorder creates a recorder writing to the given store
func NewRecorder(store Store, logger *log.Logger) *Recorder {
	return &Recorder{
		store:  store,
		logger: logger.WithPrefix("history"),
	}
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		r.current = &RoundRecord{RoundID: e.RoundID, StartedAt: e.Timestamp()}
		r.seats = make(map[int]*SeatResult)

	case game.BetPlacedEvent:
		if r.current == nil {
			return
		}
		r.seats[e.SeatIndex] = &SeatResult{Seat: e.SeatIndex, Player: e.PlayerName, Bet: e.Amount}

	case game.BustEvent:
		if r.current == nil || e.SeatIndex < 0 {
			return
		}
		if seat, ok := r.seats[e.SeatIndex]; ok {
			seat.Busted = true
			seat.Outcome = "busted"
		}

	case game.RewardEvent:
		if r.current == nil {
			return
		}
		if seat, ok := r.seats[e.SeatIndex]; ok {
			seat.Reward = e.Amount
			seat.Outcome = e.Outcome.String()
		}

	case game.RoundEndEvent:
		if r.current == nil || r.current.RoundID != e.RoundID {
			return
		}
		r.current.EndedAt = e.Timestamp()
		r.current.DealerScore = e.DealerScore.String()
		r.current.DealerBust = e.DealerBust
		indexes := make([]int, 0, len(r.seats))
		for idx := range r.seats {
			indexes = append(indexes, idx)
		}
		sort.Ints(indexes)
		for _, idx := range indexes {
			r.current.Seats = append(r.current.Seats, *r.seats[idx])
		}

		if err := r.store.SaveRound(r.current); err != nil {
			r.logger.Error("Failed to save round", "round", r.current.RoundID, "error", err)
		}
		r.current = nil
		r.seats = nil
	}
}
