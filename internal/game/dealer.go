package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Outcome classifies a seat's result at resolution
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomePush
	OutcomeWin
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeLoss:
		return "loss"
	case OutcomePush:
		return "push"
	case OutcomeWin:
		return "win"
	default:
		return "unknown"
	}
}

// dealerStandsAt is the total at which the dealer stops drawing
const dealerStandsAt = 17

// Dealer enforces house rules and runs the full round: dealing, seat turns,
// its own fixed-policy play and reward resolution.
type Dealer struct {
	name       string
	hitsSoft17 bool
	peeks      bool
	hand       Hand

	bus    EventBus
	clock  quartz.Clock
	logger *log.Logger
}

// NewDealer creates a dealer configured from the table rules
func NewDealer(name string, rules TableRules, bus EventBus, clock quartz.Clock, logger *log.Logger) *Dealer {
	return &Dealer{
		name:       name,
		hitsSoft17: rules.DealerHitsSoft17,
		peeks:      rules.DealerPeeks,
		bus:        bus,
		clock:      clock,
		logger:     logger.WithPrefix("dealer"),
	}
}

// Name returns the dealer's name
func (d *Dealer) Name() string {
	return d.name
}

// Hand returns the dealer's current hand
func (d *Dealer) Hand() Hand {
	return d.hand
}

// NoMoreBets announces that betting is closed for the round
func (d *Dealer) NoMoreBets(roundID string) {
	d.bus.Publish(NewNoMoreBetsEvent(roundID, d.name, d.clock.Now()))
}

// PlayRound runs one complete round over the given seats: reset, deal, seat
// turns in order, dealer self-play, resolution. Drawing from an exhausted
// shoe aborts the round with an error wrapping deck.ErrEmptyShoe; the table
// must rebuild the shoe before the round starts, so that is a defect, not a
// game outcome.
func (d *Dealer) PlayRound(roundID string, shoe *deck.Shoe, seats []*Seat, rng *rand.Rand) error {
	d.hand.Clear()

	if err := d.deal(roundID, shoe, seats, rng); err != nil {
		return err
	}
	if err := d.seatTurns(roundID, shoe, seats, rng); err != nil {
		return err
	}
	busted, err := d.playOwnHand(roundID, shoe, rng)
	if err != nil {
		return err
	}
	d.resolve(roundID, seats, busted)

	d.bus.Publish(NewRoundEndEvent(roundID, d.hand.Score(), busted, d.clock.Now()))
	return nil
}

// deal draws two cards for every live seat, then two for the dealer. The
// dealer's first card is the conventional hole card: fully known to the
// engine, flagged hidden for observers.
func (d *Dealer) deal(roundID string, shoe *deck.Shoe, seats []*Seat, rng *rand.Rand) error {
	for i, seat := range seats {
		if !seat.Live() {
			continue
		}
		first, err := shoe.DrawRandom(rng)
		if err != nil {
			return fmt.Errorf("dealing to seat %d: %w", i, err)
		}
		second, err := shoe.DrawRandom(rng)
		if err != nil {
			return fmt.Errorf("dealing to seat %d: %w", i, err)
		}
		seat.Hand.Add(first, second)
		d.logger.Debug("Dealt to seat", "seat", i, "player", seat.Player.Name(), "hand", seat.Hand.String())
		d.bus.Publish(NewCardsDealtEvent(roundID, i, seat.Player.Name(), []deck.Card{first, second}, false, d.clock.Now()))
	}

	hole, err := shoe.DrawRandom(rng)
	if err != nil {
		return fmt.Errorf("dealing to dealer: %w", err)
	}
	up, err := shoe.DrawRandom(rng)
	if err != nil {
		return fmt.Errorf("dealing to dealer: %w", err)
	}
	d.hand.Add(hole, up)
	d.logger.Debug("Dealt own hand", "hand", d.hand.String())
	d.bus.Publish(NewCardsDealtEvent(roundID, -1, d.name, []deck.Card{hole}, true, d.clock.Now()))
	d.bus.Publish(NewCardsDealtEvent(roundID, -1, d.name, []deck.Card{up}, false, d.clock.Now()))
	return nil
}

// seatTurns solicits decisions from every live seat in table order
func (d *Dealer) seatTurns(roundID string, shoe *deck.Shoe, seats []*Seat, rng *rand.Rand) error {
	for i, seat := range seats {
		if !seat.Live() {
			continue
		}
		if err := d.seatTurn(roundID, i, seat, shoe, rng); err != nil {
			return err
		}
	}
	return nil
}

// seatTurn runs a single seat until it stands, busts, or resolves a double
// down
func (d *Dealer) seatTurn(roundID string, index int, seat *Seat, shoe *deck.Shoe, rng *rand.Rand) error {
	for seat.Status == StatusPlaying {
		action, err := seat.Player.Decide(seat.Bet)
		if err != nil {
			return fmt.Errorf("seat %d decision: %w", index, err)
		}
		d.logger.Debug("Seat action", "seat", index, "player", seat.Player.Name(), "action", action)
		d.bus.Publish(NewPlayerActionEvent(roundID, index, seat.Player.Name(), action, seat.Bet, d.clock.Now()))

		switch action {
		case Stand:
			return nil

		case Hit:
			if err := d.hitSeat(roundID, index, seat, shoe, rng); err != nil {
				return err
			}
			if seat.Status != StatusPlaying {
				return nil
			}

		case DoubleDown:
			// Double the bet, draw exactly one card, and the turn ends
			// whatever happens
			seat.Player.Debit(seat.Bet)
			seat.SetBet(seat.Bet * 2)
			if err := d.hitSeat(roundID, index, seat, shoe, rng); err != nil {
				return err
			}
			return nil
		}
	}
	return nil
}

// hitSeat draws one card into the seat and discards the hand on bust
func (d *Dealer) hitSeat(roundID string, index int, seat *Seat, shoe *deck.Shoe, rng *rand.Rand) error {
	card, err := shoe.DrawRandom(rng)
	if err != nil {
		return fmt.Errorf("hitting seat %d: %w", index, err)
	}
	seat.Hand.Add(card)
	d.bus.Publish(NewCardsDealtEvent(roundID, index, seat.Player.Name(), []deck.Card{card}, false, d.clock.Now()))

	if score := seat.Score(); score.Busted() {
		d.logger.Debug("Seat busted", "seat", index, "player", seat.Player.Name(), "score", score.String())
		d.bus.Publish(NewBustEvent(roundID, index, seat.Player.Name(), score, d.clock.Now()))
		seat.DiscardHand()
	}
	return nil
}

// playOwnHand runs the dealer's fixed policy and reports whether it busted.
// The hard total drives the first loop; when the house hits soft 17 and the
// soft reading is still at or below 17 afterwards, the same thresholds are
// re-applied to the soft total.
func (d *Dealer) playOwnHand(roundID string, shoe *deck.Shoe, rng *rand.Rand) (bool, error) {
	busted, err := d.drawToStand(roundID, shoe, rng, func(s Score) int { return s.Hard })
	if err != nil || busted {
		return busted, err
	}

	if d.hitsSoft17 && d.hand.Score().Soft <= dealerStandsAt {
		busted, err = d.drawToStand(roundID, shoe, rng, func(s Score) int { return s.Soft })
		if err != nil || busted {
			return busted, err
		}
	}
	return false, nil
}

// drawToStand draws until the selected total reaches 17, stands through 21,
// and reports a bust beyond it
func (d *Dealer) drawToStand(roundID string, shoe *deck.Shoe, rng *rand.Rand, total func(Score) int) (bool, error) {
	for {
		score := d.hand.Score()
		switch {
		case total(score) < dealerStandsAt:
			card, err := shoe.DrawRandom(rng)
			if err != nil {
				return false, fmt.Errorf("dealer drawing: %w", err)
			}
			d.hand.Add(card)
			d.bus.Publish(NewCardsDealtEvent(roundID, -1, d.name, []deck.Card{card}, false, d.clock.Now()))

		case score.Busted():
			d.logger.Debug("Dealer busted", "score", score.String())
			d.bus.Publish(NewBustEvent(roundID, -1, d.name, score, d.clock.Now()))
			return true, nil

		default:
			d.logger.Debug("Dealer stands", "score", score.String())
			return false, nil
		}
	}
}

// resolve pays out every seat still live at the end of the round. A dealer
// bust pays double the bet; otherwise the best totals are compared, with a
// win paying double, a push returning the bet and a loss forfeiting it.
func (d *Dealer) resolve(roundID string, seats []*Seat, dealerBusted bool) {
	dealerBest := d.hand.Score().Best()
	for i, seat := range seats {
		if !seat.Live() {
			continue
		}

		var outcome Outcome
		switch {
		case dealerBusted:
			outcome = OutcomeWin
		default:
			seatBest := seat.Score().Best()
			switch {
			case seatBest > dealerBest:
				outcome = OutcomeWin
			case seatBest == dealerBest:
				outcome = OutcomePush
			default:
				outcome = OutcomeLoss
			}
		}

		var reward int
		switch outcome {
		case OutcomeWin:
			reward = 2 * seat.Bet
		case OutcomePush:
			reward = seat.Bet
		}

		seat.SetReward(reward)
		d.logger.Debug("Resolved seat", "seat", i, "player", seat.Player.Name(), "outcome", outcome, "reward", reward)
		d.bus.Publish(NewRewardEvent(roundID, i, seat.Player.Name(), reward, outcome, d.clock.Now()))
	}
}
