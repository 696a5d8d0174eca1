package game

import (
	"time"

	"github.com/lox/blackjack-cli/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for table domain events
const (
	EventTypeSeatJoined      EventType = "seat_joined"
	EventTypeJoinRejected    EventType = "join_rejected"
	EventTypeRoundStart      EventType = "round_start"
	EventTypeBetPlaced       EventType = "bet_placed"
	EventTypeNoMoreBets      EventType = "no_more_bets"
	EventTypeCardsDealt      EventType = "cards_dealt"
	EventTypePlayerAction    EventType = "player_action"
	EventTypeBust            EventType = "bust"
	EventTypeReward          EventType = "reward"
	EventTypeRoundEnd        EventType = "round_end"
	EventTypeNoActivePlayers EventType = "no_active_players"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// JoinRejectReason says why a player could not take a seat
type JoinRejectReason string

const (
	RejectBelowMinimum JoinRejectReason = "below_minimum"
	RejectTableFull    JoinRejectReason = "table_full"
)

// Event represents anything observable that happens at the table. Events
// replace all formatted console output and carry no control flow back into
// the engine.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

type stamped struct {
	ts time.Time
}

func (s stamped) Timestamp() time.Time { return s.ts }

// SeatJoinedEvent is published when a player takes a seat
type SeatJoinedEvent struct {
	stamped
	SeatIndex  int
	PlayerName string
	Bankroll   int
}

func (SeatJoinedEvent) EventType() EventType { return EventTypeSeatJoined }

// JoinRejectedEvent is published when a join attempt fails
type JoinRejectedEvent struct {
	stamped
	PlayerName string
	Reason     JoinRejectReason
}

func (JoinRejectedEvent) EventType() EventType { return EventTypeJoinRejected }

// RoundStartEvent is published at the top of every round
type RoundStartEvent struct {
	stamped
	RoundID       string
	ShoeRemaining int
	ShoeRebuilt   bool
}

func (RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// BetPlacedEvent is published when a seat's bet is collected
type BetPlacedEvent struct {
	stamped
	RoundID    string
	SeatIndex  int
	PlayerName string
	Amount     int
}

func (BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }

// NoMoreBetsEvent is published once betting closes for a round
type NoMoreBetsEvent struct {
	stamped
	RoundID string
	Dealer  string
}

func (NoMoreBetsEvent) EventType() EventType { return EventTypeNoMoreBets }

// CardsDealtEvent is published for every batch of cards entering a hand.
// SeatIndex is -1 when the recipient is the dealer. Hidden marks cards that
// observers conventionally cannot see (the dealer's hole card); the engine
// itself always knows them.
type CardsDealtEvent struct {
	stamped
	RoundID    string
	SeatIndex  int
	PlayerName string
	Cards      []deck.Card
	Hidden     bool
}

func (CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }

// PlayerActionEvent is published when a seat's player decides
type PlayerActionEvent struct {
	stamped
	RoundID    string
	SeatIndex  int
	PlayerName string
	Action     Action
	Bet        int
}

func (PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }

// BustEvent is published when a hand exceeds 21 on both totals.
// SeatIndex is -1 for the dealer.
type BustEvent struct {
	stamped
	RoundID    string
	SeatIndex  int
	PlayerName string
	Score      Score
}

func (BustEvent) EventType() EventType { return EventTypeBust }

// RewardEvent is published for every seat resolved at the end of a round
type RewardEvent struct {
	stamped
	RoundID    string
	SeatIndex  int
	PlayerName string
	Amount     int
	Outcome    Outcome
}

func (RewardEvent) EventType() EventType { return EventTypeReward }

// RoundEndEvent is published after rewards are resolved
type RoundEndEvent struct {
	stamped
	RoundID     string
	DealerScore Score
	DealerBust  bool
}

func (RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }

// NoActivePlayersEvent is published when the table loop terminates because
// nobody is seated
type NoActivePlayersEvent struct {
	stamped
}

func (NoActivePlayersEvent) EventType() EventType { return EventTypeNoActivePlayers }

// NewSeatJoinedEvent creates a new seat joined event
func NewSeatJoinedEvent(seat int, name string, bankroll int, ts time.Time) SeatJoinedEvent {
	return SeatJoinedEvent{stamped: stamped{ts: ts}, SeatIndex: seat, PlayerName: name, Bankroll: bankroll}
}

// NewJoinRejectedEvent creates a new join rejected event
func NewJoinRejectedEvent(name string, reason JoinRejectReason, ts time.Time) JoinRejectedEvent {
	return JoinRejectedEvent{stamped: stamped{ts: ts}, PlayerName: name, Reason: reason}
}

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(roundID string, remaining int, rebuilt bool, ts time.Time) RoundStartEvent {
	return RoundStartEvent{stamped: stamped{ts: ts}, RoundID: roundID, ShoeRemaining: remaining, ShoeRebuilt: rebuilt}
}

// NewBetPlacedEvent creates a new bet placed event
func NewBetPlacedEvent(roundID string, seat int, name string, amount int, ts time.Time) BetPlacedEvent {
	return BetPlacedEvent{stamped: stamped{ts: ts}, RoundID: roundID, SeatIndex: seat, PlayerName: name, Amount: amount}
}

// NewNoMoreBetsEvent creates a new no more bets event
func NewNoMoreBetsEvent(roundID, dealer string, ts time.Time) NoMoreBetsEvent {
	return NoMoreBetsEvent{stamped: stamped{ts: ts}, RoundID: roundID, Dealer: dealer}
}

// NewCardsDealtEvent creates a new cards dealt event
func NewCardsDealtEvent(roundID string, seat int, name string, cards []deck.Card, hidden bool, ts time.Time) CardsDealtEvent {
	copied := make([]deck.Card, len(cards))
	copy(copied, cards)
	return CardsDealtEvent{stamped: stamped{ts: ts}, RoundID: roundID, SeatIndex: seat, PlayerName: name, Cards: copied, Hidden: hidden}
}

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(roundID string, seat int, name string, action Action, bet int, ts time.Time) PlayerActionEvent {
	return PlayerActionEvent{stamped: stamped{ts: ts}, RoundID: roundID, SeatIndex: seat, PlayerName: name, Action: action, Bet: bet}
}

// NewBustEvent creates a new bust event
func NewBustEvent(roundID string, seat int, name string, score Score, ts time.Time) BustEvent {
	return BustEvent{stamped: stamped{ts: ts}, RoundID: roundID, SeatIndex: seat, PlayerName: name, Score: score}
}

// NewRewardEvent creates a new reward event
func NewRewardEvent(roundID string, seat int, name string, amount int, outcome Outcome, ts time.Time) RewardEvent {
	return RewardEvent{stamped: stamped{ts: ts}, RoundID: roundID, SeatIndex: seat, PlayerName: name, Amount: amount, Outcome: outcome}
}

// NewRoundEndEvent creates a new round end event
func NewRoundEndEvent(roundID string, dealerScore Score, dealerBust bool, ts time.Time) RoundEndEvent {
	return RoundEndEvent{stamped: stamped{ts: ts}, RoundID: roundID, DealerScore: dealerScore, DealerBust: dealerBust}
}

// NewNoActivePlayersEvent creates a new no active players event
func NewNoActivePlayersEvent(ts time.Time) NoActivePlayersEvent {
	return NoActivePlayersEvent{stamped: stamped{ts: ts}}
}

// EventSubscriber can subscribe to table events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic synchronous in-memory event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{subscribers: make([]EventSubscriber, 0)}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
