package deck

// Deck represents a single 52-card deck inside a shoe. Cards are created in a
// fixed order but draws remove them by position, so the order in use carries
// no meaning.
type Deck struct {
	cards []Card
}

// NewDeck creates a new standard 52-card deck
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for face := Two; face <= Ace; face++ {
			d.cards = append(d.cards, NewCard(face, suit))
		}
	}
	return d
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// removeAt removes and returns the card at position i
func (d *Deck) removeAt(i int) Card {
	card := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return card
}
