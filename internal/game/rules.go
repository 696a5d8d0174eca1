package game

import "fmt"

// DefaultCutCardPercent is how far through the shoe the cut card sits when a
// rule set does not say otherwise.
const DefaultCutCardPercent = 25.0

// TableRules is the immutable house configuration for a table
type TableRules struct {
	MaxPlayers       int
	NumberOfDecks    int
	DealerHitsSoft17 bool
	DealerPeeks      bool
	MinBet           int
	MaxBet           int
	CutCardPercent   float64
}

// CutCardAt returns the remaining-card count at or below which the shoe is
// rebuilt before the next round
func (r TableRules) CutCardAt() int {
	percent := r.CutCardPercent
	if percent == 0 {
		percent = DefaultCutCardPercent
	}
	return int(float64(r.NumberOfDecks*52) * percent / 100.0)
}

// Validate checks the rule set for values the engine cannot run with
func (r TableRules) Validate() error {
	if r.MaxPlayers < 1 {
		return fmt.Errorf("max players must be at least 1, got %d", r.MaxPlayers)
	}
	if r.NumberOfDecks < 1 {
		return fmt.Errorf("number of decks must be at least 1, got %d", r.NumberOfDecks)
	}
	if r.MinBet < 1 {
		return fmt.Errorf("min bet must be positive, got %d", r.MinBet)
	}
	if r.MaxBet < r.MinBet {
		return fmt.Errorf("max bet %d is below min bet %d", r.MaxBet, r.MinBet)
	}
	if r.CutCardPercent < 0 || r.CutCardPercent > 100 {
		return fmt.Errorf("cut card percent must be within [0,100], got %v", r.CutCardPercent)
	}
	return nil
}
