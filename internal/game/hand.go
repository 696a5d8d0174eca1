package game

import (
	"strings"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Hand is an accumulating sequence of cards with dual-value scoring
type Hand []deck.Card

// Add appends cards to the hand
func (h *Hand) Add(cards ...deck.Card) {
	*h = append(*h, cards...)
}

// Score computes the dual totals for the hand
func (h Hand) Score() Score {
	return ScoreHand(h)
}

// Clear empties the hand
func (h *Hand) Clear() {
	*h = (*h)[:0]
}

// String renders the hand as space-separated cards
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
