package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrEmptyShoe is returned when a draw is attempted with no cards remaining.
// The table is responsible for rebuilding the shoe before a round starts, so
// hitting this mid-round is an invariant violation rather than a recoverable
// condition.
var ErrEmptyShoe = errors.New("shoe is empty")

// Shoe holds one or more decks and supports uniform random draws without
// replacement across every card still in the shoe.
type Shoe struct {
	decks     []*Deck
	cutCardAt int
}

// NewShoe creates a shoe from the given decks with a fixed cut-card marker
func NewShoe(decks []*Deck, cutCardAt int) *Shoe {
	return &Shoe{decks: decks, cutCardAt: cutCardAt}
}

// Remaining returns the total number of cards not yet drawn
func (s *Shoe) Remaining() int {
	total := 0
	for _, d := range s.decks {
		total += d.Remaining()
	}
	return total
}

// CutCardAt returns the reshuffle threshold fixed at construction
func (s *Shoe) CutCardAt() int {
	return s.cutCardAt
}

// NumberOfDecks returns how many decks the shoe was built from
func (s *Shoe) NumberOfDecks() int {
	return len(s.decks)
}

// DrawRandom removes and returns a card chosen uniformly at random among all
// remaining cards. Decks are walked in a fixed order with a running ordinal,
// which is indistinguishable from a flat draw across the whole pool.
func (s *Shoe) DrawRandom(rng *rand.Rand) (Card, error) {
	remaining := s.Remaining()
	if remaining == 0 {
		return Card{}, ErrEmptyShoe
	}

	ordinal := rng.IntN(remaining)
	for _, d := range s.decks {
		if ordinal < d.Remaining() {
			return d.removeAt(ordinal), nil
		}
		ordinal -= d.Remaining()
	}

	// Unreachable while Remaining is the sum of per-deck counts
	return Card{}, ErrEmptyShoe
}

// ShoeFactory builds fresh shoes with a configured cut-card threshold
type ShoeFactory struct {
	cutCardAt int
}

// NewShoeFactory creates a factory whose shoes reshuffle at cutCardAt cards
func NewShoeFactory(cutCardAt int) *ShoeFactory {
	return &ShoeFactory{cutCardAt: cutCardAt}
}

// Build creates a shoe of numberOfDecks independent 52-card decks
func (f *ShoeFactory) Build(numberOfDecks int) *Shoe {
	decks := make([]*Deck, 0, numberOfDecks)
	for i := 0; i < numberOfDecks; i++ {
		decks = append(decks, NewDeck())
	}
	return NewShoe(decks, f.cutCardAt)
}
