package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-cli/internal/config"
	"github.com/lox/blackjack-cli/internal/display"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/history"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/server"
)

type CLI struct {
	Config    string `short:"c" help:"Path to the table configuration file" default:"blackjack.hcl"`
	Rounds    int    `short:"r" help:"Stop after this many rounds (0 plays until the table empties)" default:"0"`
	Seed      int64  `short:"s" help:"Seed for the shoe and automated players (0 seeds from the clock)" default:"0"`
	Automated bool   `short:"a" help:"Replace human players with automated ones"`
	Listen    string `short:"l" help:"Address for the spectator WebSocket server (empty disables it)" default:""`
	DB        string `help:"Path to the round history database (empty disables recording)" default:"blackjack-history.db"`
	LogFile   string `help:"Path to the debug log" default:"blackjack.log"`

	// Rule overrides; zero values defer to the configuration file
	Seats       int  `help:"Number of seats at the table"`
	Decks       int  `help:"Number of decks in the shoe"`
	MinBet      int  `help:"Minimum bet"`
	MaxBet      int  `help:"Maximum bet"`
	StandSoft17 bool `help:"Dealer stands on soft 17"`
}

func (cli CLI) applyOverrides(rules game.TableRules) game.TableRules {
	if cli.Seats > 0 {
		rules.MaxPlayers = cli.Seats
	}
	if cli.Decks > 0 {
		rules.NumberOfDecks = cli.Decks
	}
	if cli.MinBet > 0 {
		rules.MinBet = cli.MinBet
	}
	if cli.MaxBet > 0 {
		rules.MaxBet = cli.MaxBet
	}
	if cli.StandSoft17 {
		rules.DealerHitsSoft17 = false
	}
	return rules
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	fmt.Print(display.TitleStyle.Render(" ♠ ♥ Blackjack CLI ♦ ♣ "))
	fmt.Println()
	fmt.Println()

	if err := run(cli); err != nil {
		log.Fatal("Failed to run table", "error", err)
	}

	ctx.Exit(0)
}

func run(cli CLI) error {
	debugFile, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to create debug log: %w", err)
	}
	defer func() {
		if err := debugFile.Close(); err != nil {
			log.Error("Failed to close debug file", "error", err)
		}
	}()

	logger := log.NewWithOptions(debugFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	cfg, err := config.LoadTableFile(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	rules := cli.applyOverrides(cfg.Rules())
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)
	logger.Info("Starting table", "seed", seed, "config", cli.Config)

	bus := game.NewEventBus()
	clock := quartz.NewReal()

	bus.Subscribe(display.NewRenderer(os.Stdout))

	if cli.DB != "" {
		store, err := history.NewSQLiteStore(cli.DB)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close history database", "error", err)
			}
		}()
		bus.Subscribe(history.NewRecorder(store, logger))
	}

	dealer := game.NewDealer("Mike", rules, bus, clock, logger)
	table := game.NewTable(rules, dealer, rng, bus, clock, logger)

	if err := seatPlayers(table, cfg, cli.Automated, rng); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	if cli.Listen != "" {
		spectators := server.NewServer(cli.Listen, logger)
		bus.Subscribe(spectators)
		group.Go(func() error {
			return spectators.Run(ctx)
		})
	}

	group.Go(func() error {
		defer stop()
		return table.Play(ctx, cli.Rounds)
	})

	err = group.Wait()
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, display.ErrPromptAborted) {
		return err
	}
	return nil
}

// seatPlayers joins everyone from the configuration, defaulting to one
// human and one automated opponent when no players are configured.
func seatPlayers(table *game.Table, cfg *config.TableFile, automatedOnly bool, rng *rand.Rand) error {
	players := cfg.Players
	if len(players) == 0 {
		players = []config.PlayerConfig{
			{Name: "You", Kind: "human", Bankroll: 1000},
			{Name: "Sam", Kind: "automated", Bankroll: 1000},
		}
	}

	for _, p := range players {
		var player game.Player
		if p.Kind == "human" && !automatedOnly {
			player = game.NewHumanPlayer(p.Name, p.Bankroll, display.NewTUIPrompter(os.Stdout))
		} else {
			player = game.NewAutomatedPlayer(p.Name, p.Bankroll, rng)
		}
		if err := table.Join(player); err != nil {
			return fmt.Errorf("failed to seat %s: %w", p.Name, err)
		}
	}
	return nil
}
