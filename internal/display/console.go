package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// Renderer subscribes to table events and writes a styled play-by-play to an
// io.Writer. It carries no control flow back into the engine.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a console renderer
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// OnEvent implements game.EventSubscriber
func (r *Renderer) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.SeatJoinedEvent:
		r.printf("%s joined at seat %d with %s\n",
			PlayerStyle.Render(e.PlayerName), e.SeatIndex+1, money(e.Bankroll))

	case game.JoinRejectedEvent:
		switch e.Reason {
		case game.RejectBelowMinimum:
			r.printf("%s\n", ErrorStyle.Render(fmt.Sprintf("%s was unable to join: bankroll below table minimum", e.PlayerName)))
		case game.RejectTableFull:
			r.printf("%s\n", ErrorStyle.Render(fmt.Sprintf("%s was unable to join: all seats are occupied", e.PlayerName)))
		}

	case game.RoundStartEvent:
		if e.ShoeRebuilt {
			r.printf("%s\n", InfoStyle.Render("--- fresh shoe ---"))
		}
		r.printf("%s\n", InfoStyle.Render(fmt.Sprintf("--- new round (%d cards in shoe) ---", e.ShoeRemaining)))

	case game.BetPlacedEvent:
		r.printf("%s bets %s\n", PlayerStyle.Render(e.PlayerName), money(e.Amount))

	case game.NoMoreBetsEvent:
		r.printf("%s: No more bets.\n", DealerStyle.Render(e.Dealer))

	case game.CardsDealtEvent:
		name := PlayerStyle.Render(e.PlayerName)
		if e.SeatIndex < 0 {
			name = DealerStyle.Render(e.PlayerName)
		}
		r.printf("%s receives %s\n", name, renderCards(e.Cards, e.Hidden))

	case game.PlayerActionEvent:
		r.printf("%s: %s\n", PlayerStyle.Render(e.PlayerName), e.Action)

	case game.BustEvent:
		name := PlayerStyle.Render(e.PlayerName)
		if e.SeatIndex < 0 {
			name = DealerStyle.Render(e.PlayerName)
		}
		r.printf("%s %s (%s)\n", name, BustStyle.Render("busts"), e.Score)

	case game.RewardEvent:
		switch e.Outcome {
		case game.OutcomeWin:
			r.printf("%s wins %s\n", PlayerStyle.Render(e.PlayerName), money(e.Amount))
		case game.OutcomePush:
			r.printf("%s pushes, %s returned\n", PlayerStyle.Render(e.PlayerName), money(e.Amount))
		case game.OutcomeLoss:
			r.printf("%s loses\n", PlayerStyle.Render(e.PlayerName))
		}

	case game.RoundEndEvent:
		r.printf("%s\n", InfoStyle.Render(fmt.Sprintf("--- round over, dealer shows %s ---", e.DealerScore)))

	case game.NoActivePlayersEvent:
		r.printf("%s\n", InfoStyle.Render("No active players at table!"))
	}
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func money(amount int) string {
	return MoneyStyle.Render(fmt.Sprintf("$%d", amount))
}

func renderCards(cards []deck.Card, hidden bool) string {
	if hidden {
		return HiddenCardStyle.Render("[??]")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.IsRed() {
			parts[i] = RedCardStyle.Render(c.String())
		} else {
			parts[i] = BlackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}
