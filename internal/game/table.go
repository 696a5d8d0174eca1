package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Join failures. Both are reported on the event bus as well; callers may
// retry later.
var (
	ErrTableFull            = errors.New("all seats are occupied")
	ErrBankrollBelowMinimum = errors.New("bankroll is below the table minimum")
)

// Table owns the shoe, the dealer and a fixed ordered list of seats, and
// drives the round loop. All round state is owned by the table for the
// duration of a round; there is no concurrency, and seat turns are strictly
// ordered.
type Table struct {
	rules   TableRules
	dealer  *Dealer
	factory *deck.ShoeFactory
	shoe    *deck.Shoe
	seats   []*Seat
	rng     *rand.Rand

	activePlayers int

	bus    EventBus
	clock  quartz.Clock
	logger *log.Logger
}

// NewTable creates a table with empty seats and a freshly built shoe
func NewTable(rules TableRules, dealer *Dealer, rng *rand.Rand, bus EventBus, clock quartz.Clock, logger *log.Logger) *Table {
	factory := deck.NewShoeFactory(rules.CutCardAt())
	seats := make([]*Seat, rules.MaxPlayers)
	for i := range seats {
		seats[i] = &Seat{}
	}
	return &Table{
		rules:   rules,
		dealer:  dealer,
		factory: factory,
		shoe:    factory.Build(rules.NumberOfDecks),
		seats:   seats,
		rng:     rng,
		bus:     bus,
		clock:   clock,
		logger:  logger.WithPrefix("table"),
	}
}

// Rules returns the table's rule set
func (t *Table) Rules() TableRules {
	return t.rules
}

// Seats returns the table's seats in order
func (t *Table) Seats() []*Seat {
	return t.seats
}

// Shoe returns the current shoe
func (t *Table) Shoe() *deck.Shoe {
	return t.shoe
}

// ActivePlayers returns the number of seated players
func (t *Table) ActivePlayers() int {
	return t.activePlayers
}

// Join binds the player to the first empty seat. Players below the table
// minimum and players arriving at a full table are rejected; both rejections
// are published and returned, never raised.
func (t *Table) Join(player Player) error {
	if player.Bankroll() < t.rules.MinBet {
		t.logger.Info("Join rejected", "player", player.Name(), "reason", RejectBelowMinimum)
		t.bus.Publish(NewJoinRejectedEvent(player.Name(), RejectBelowMinimum, t.clock.Now()))
		return ErrBankrollBelowMinimum
	}
	for i, seat := range t.seats {
		if !seat.Occupied() {
			seat.Player = player
			t.activePlayers++
			t.logger.Info("Player joined", "player", player.Name(), "seat", i, "bankroll", player.Bankroll())
			t.bus.Publish(NewSeatJoinedEvent(i, player.Name(), player.Bankroll(), t.clock.Now()))
			return nil
		}
	}
	t.logger.Info("Join rejected", "player", player.Name(), "reason", RejectTableFull)
	t.bus.Publish(NewJoinRejectedEvent(player.Name(), RejectTableFull, t.clock.Now()))
	return ErrTableFull
}

// Play runs rounds until the context is cancelled, nobody is seated, or
// maxRounds rounds have completed (maxRounds <= 0 means unbounded)
func (t *Table) Play(ctx context.Context, maxRounds int) error {
	for played := 0; maxRounds <= 0 || played < maxRounds; played++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.activePlayers == 0 {
			t.logger.Info("No active players at table")
			t.bus.Publish(NewNoActivePlayersEvent(t.clock.Now()))
			return nil
		}
		if err := t.PlayRound(ctx); err != nil {
			return err
		}
	}
	return nil
}

// PlayRound runs exactly one round: reshuffle check, bet collection, then
// the dealer's full round
func (t *Table) PlayRound(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	roundID := uuid.NewString()

	rebuilt := false
	if t.shoe.Remaining() <= t.shoe.CutCardAt() {
		t.shoe = t.factory.Build(t.rules.NumberOfDecks)
		rebuilt = true
		t.logger.Debug("Shoe rebuilt", "remaining", t.shoe.Remaining())
	}
	t.logger.Debug("Round starting", "round", roundID, "remaining", t.shoe.Remaining())
	t.bus.Publish(NewRoundStartEvent(roundID, t.shoe.Remaining(), rebuilt, t.clock.Now()))

	if err := t.placeYourBets(roundID); err != nil {
		return fmt.Errorf("collecting bets: %w", err)
	}
	t.dealer.NoMoreBets(roundID)

	if err := t.dealer.PlayRound(roundID, t.shoe, t.seats, t.rng); err != nil {
		return fmt.Errorf("round %s: %w", roundID, err)
	}
	return nil
}

// placeYourBets resets every seat and collects one bet per occupied seat.
// The debit happens here, exactly once per bet; an occupied seat whose
// bankroll has dropped below the minimum sits the round out.
func (t *Table) placeYourBets(roundID string) error {
	for i, seat := range t.seats {
		if !seat.Occupied() {
			continue
		}
		seat.Reset()

		if seat.Player.Bankroll() < t.rules.MinBet {
			seat.Status = StatusSittingOut
			t.logger.Debug("Seat sitting out", "seat", i, "player", seat.Player.Name(), "bankroll", seat.Player.Bankroll())
			continue
		}

		bet, err := seat.Player.PlaceBet(t.rules.MinBet, t.rules.MaxBet)
		if err != nil {
			return fmt.Errorf("seat %d: %w", i, err)
		}
		seat.Player.Debit(bet)
		seat.SetBet(bet)
		t.logger.Debug("Bet placed", "seat", i, "player", seat.Player.Name(), "bet", bet)
		t.bus.Publish(NewBetPlacedEvent(roundID, i, seat.Player.Name(), bet, t.clock.Now()))
	}
	return nil
}
