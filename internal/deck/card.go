package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Name returns the full suit name
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "spade"
	case Hearts:
		return "heart"
	case Diamonds:
		return "diamond"
	case Clubs:
		return "club"
	default:
		return "unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Face represents a card face
type Face int

const (
	Two Face = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a face
func (f Face) String() string {
	switch f {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// HardValue returns the blackjack value of the face with aces counted as 1
func (f Face) HardValue() int {
	switch {
	case f == Ace:
		return 1
	case f >= Ten:
		return 10
	default:
		return int(f)
	}
}

// SoftValue returns the blackjack value of the face with aces counted as 11.
// For every other face SoftValue equals HardValue.
func (f Face) SoftValue() int {
	if f == Ace {
		return 11
	}
	return f.HardValue()
}

// Card represents a playing card
type Card struct {
	Face Face
	Suit Suit
}

// NewCard creates a new card
func NewCard(face Face, suit Suit) Card {
	return Card{Face: face, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Face, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Face == Ace
}
