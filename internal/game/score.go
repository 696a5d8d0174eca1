package game

import (
	"fmt"

	"github.com/lox/blackjack-cli/internal/deck"
)

// BustThreshold is the total above which a hand value is no longer playable
const BustThreshold = 21

// Score is the dual valuation of a blackjack hand. Soft counts every ace as
// 11, Hard counts every ace as 1; for hands without aces the two are equal.
// Both totals are independent candidate scores, not a min/max of the same
// quantity. The scheme deliberately tracks two totals only, so a hand with
// three or more aces never offers the mixed readings (e.g. 1+1+11) a fully
// general reduction would.
type Score struct {
	Soft int
	Hard int
}

// ScoreHand computes the dual totals across all cards in the hand
func ScoreHand(cards []deck.Card) Score {
	var s Score
	for _, c := range cards {
		s.Soft += c.Face.SoftValue()
		s.Hard += c.Face.HardValue()
	}
	return s
}

// Busted reports whether the hand is bust: both totals must exceed 21. A
// hand whose soft total alone exceeds 21 still plays on its hard total, which
// is the ace degrading from 11 to 1.
func (s Score) Busted() bool {
	return s.Soft > BustThreshold && s.Hard > BustThreshold
}

// Best returns the playable total by the standard convention: the highest of
// the two totals that does not exceed 21. For a busted hand it returns the
// lower of the two readings.
func (s Score) Best() int {
	hi, lo := s.Soft, s.Hard
	if hi < lo {
		hi, lo = lo, hi
	}
	if hi <= BustThreshold {
		return hi
	}
	return lo
}

// String renders the totals, collapsing the pair when they agree
func (s Score) String() string {
	if s.Soft == s.Hard {
		return fmt.Sprintf("%d", s.Hard)
	}
	return fmt.Sprintf("%d/%d", s.Hard, s.Soft)
}
