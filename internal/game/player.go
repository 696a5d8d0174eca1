package game

import (
	rand "math/rand/v2"
	"strconv"
	"strings"
)

// Action represents a player's in-hand decision
type Action int

const (
	Stand Action = iota
	Hit
	DoubleDown
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	case DoubleDown:
		return "double down"
	default:
		return "unknown"
	}
}

// allActions is the vocabulary offered to players. Splitting is not part of
// it; single-hand play only.
var allActions = []Action{Stand, Hit, DoubleDown}

// Player decides a bet size and in-hand actions for a seat. Players only
// decide; the engine owns all state mutation, including bankroll debits and
// credits, so a bet is debited exactly once no matter which variant decided
// it.
type Player interface {
	Name() string
	Bankroll() int
	Debit(amount int)
	Credit(amount int)

	// PlaceBet returns a bet in [min, max(bankroll, max)]
	PlaceBet(minBet, maxBet int) (int, error)

	// Decide returns the player's next action for the current hand
	Decide(bet int) (Action, error)
}

type bankrollHolder struct {
	name     string
	bankroll int
}

func (b *bankrollHolder) Name() string      { return b.name }
func (b *bankrollHolder) Bankroll() int     { return b.bankroll }
func (b *bankrollHolder) Debit(amount int)  { b.bankroll -= amount }
func (b *bankrollHolder) Credit(amount int) { b.bankroll += amount }

// betCeiling mirrors the house quirk that a bankroll above the table maximum
// raises the betting ceiling to the bankroll.
func betCeiling(bankroll, maxBet int) int {
	if bankroll > maxBet {
		return bankroll
	}
	return maxBet
}

// AutomatedPlayer bets and acts uniformly at random
type AutomatedPlayer struct {
	bankrollHolder
	rng *rand.Rand
}

// NewAutomatedPlayer creates an automated player with its own decision stream
func NewAutomatedPlayer(name string, bankroll int, rng *rand.Rand) *AutomatedPlayer {
	return &AutomatedPlayer{
		bankrollHolder: bankrollHolder{name: name, bankroll: bankroll},
		rng:            rng,
	}
}

// PlaceBet returns a uniformly random bet in the valid range
func (p *AutomatedPlayer) PlaceBet(minBet, maxBet int) (int, error) {
	ceiling := betCeiling(p.bankroll, maxBet)
	return minBet + p.rng.IntN(ceiling-minBet+1), nil
}

// Decide returns a uniformly random action
func (p *AutomatedPlayer) Decide(bet int) (Action, error) {
	return allActions[p.rng.IntN(len(allActions))], nil
}

// Prompter is the external input collaborator for human players. It returns
// raw strings; validation and retry live on the player side of the boundary.
type Prompter interface {
	PromptBet(minBet, maxBet int, playerName string) (string, error)
	PromptAction(playerName string) (string, error)
	Invalid(message string)
}

// HumanPlayer obtains bets and actions from a Prompter, re-prompting on
// invalid input. A parse failure never escapes the player boundary; only a
// prompter transport error (e.g. closed input) does.
type HumanPlayer struct {
	bankrollHolder
	prompter Prompter
}

// NewHumanPlayer creates a human player bound to an input collaborator
func NewHumanPlayer(name string, bankroll int, prompter Prompter) *HumanPlayer {
	return &HumanPlayer{
		bankrollHolder: bankrollHolder{name: name, bankroll: bankroll},
		prompter:       prompter,
	}
}

// PlaceBet prompts until a bet within [min, max(bankroll, max)] is entered
func (p *HumanPlayer) PlaceBet(minBet, maxBet int) (int, error) {
	ceiling := betCeiling(p.bankroll, maxBet)
	for {
		raw, err := p.prompter.PromptBet(minBet, ceiling, p.name)
		if err != nil {
			return 0, err
		}
		bet, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || bet < minBet || bet > ceiling {
			p.prompter.Invalid("Invalid bet!")
			continue
		}
		return bet, nil
	}
}

// Decide prompts until a recognized action is entered
func (p *HumanPlayer) Decide(bet int) (Action, error) {
	for {
		raw, err := p.prompter.PromptAction(p.name)
		if err != nil {
			return Stand, err
		}
		action, ok := parseAction(raw)
		if !ok {
			p.prompter.Invalid("Invalid action!")
			continue
		}
		return action, nil
	}
}

func parseAction(raw string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s", "stand":
		return Stand, true
	case "h", "hit":
		return Hit, true
	case "d", "double", "double down":
		return DoubleDown, true
	default:
		return Stand, false
	}
}
