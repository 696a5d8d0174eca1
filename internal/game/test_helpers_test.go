package game

import (
	"io"
	rand "math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/randutil"
)

func newTestRand(seed int64) *rand.Rand {
	return randutil.New(seed)
}

// eventRecorder captures every published event in order
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnEvent(event Event) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) ofType(et EventType) []Event {
	var out []Event
	for _, e := range r.events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}

// scriptedPlayer plays a fixed bet and a fixed action sequence, repeating the
// last action once the script runs out
type scriptedPlayer struct {
	bankrollHolder
	bet     int
	actions []Action
	next    int
}

func newScriptedPlayer(name string, bankroll, bet int, actions ...Action) *scriptedPlayer {
	return &scriptedPlayer{
		bankrollHolder: bankrollHolder{name: name, bankroll: bankroll},
		bet:            bet,
		actions:        actions,
	}
}

func (p *scriptedPlayer) PlaceBet(minBet, maxBet int) (int, error) {
	return p.bet, nil
}

func (p *scriptedPlayer) Decide(bet int) (Action, error) {
	if p.next >= len(p.actions) {
		return p.actions[len(p.actions)-1], nil
	}
	action := p.actions[p.next]
	p.next++
	return action, nil
}

// fakePrompter feeds canned input lines to a HumanPlayer
type fakePrompter struct {
	inputs   []string
	next     int
	invalids []string
}

func (f *fakePrompter) read() (string, error) {
	if f.next >= len(f.inputs) {
		return "", io.EOF
	}
	line := f.inputs[f.next]
	f.next++
	return line, nil
}

func (f *fakePrompter) PromptBet(minBet, maxBet int, playerName string) (string, error) {
	return f.read()
}

func (f *fakePrompter) PromptAction(playerName string) (string, error) {
	return f.read()
}

func (f *fakePrompter) Invalid(message string) {
	f.invalids = append(f.invalids, message)
}

func testRules() TableRules {
	return TableRules{
		MaxPlayers:       2,
		NumberOfDecks:    6,
		DealerHitsSoft17: true,
		DealerPeeks:      true,
		MinBet:           10,
		MaxBet:           100,
		CutCardPercent:   25.0,
	}
}

func newTestTable(t *testing.T, rules TableRules, seed int64) (*Table, *eventRecorder) {
	t.Helper()
	recorder := &eventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(recorder)
	clock := quartz.NewMock(t)
	logger := log.New(io.Discard)
	dealer := NewDealer("Mike", rules, bus, clock, logger)
	table := NewTable(rules, dealer, newTestRand(seed), bus, clock, logger)
	return table, recorder
}
