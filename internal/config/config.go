package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack-cli/internal/game"
)

// TableFile is the on-disk table configuration
type TableFile struct {
	Table   TableSettings  `hcl:"table,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// TableSettings mirrors game.TableRules in HCL form
type TableSettings struct {
	MaxPlayers       int     `hcl:"max_players,optional"`
	NumberOfDecks    int     `hcl:"number_of_decks,optional"`
	DealerHitsSoft17 bool    `hcl:"dealer_hits_soft_17,optional"`
	DealerPeeks      bool    `hcl:"dealer_peeks,optional"`
	MinBet           int     `hcl:"min_bet,optional"`
	MaxBet           int     `hcl:"max_bet,optional"`
	CutCardPercent   float64 `hcl:"cut_card_percent,optional"`
}

// PlayerConfig seats a player at startup
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Kind     string `hcl:"kind,optional"` // "human" or "automated"
	Bankroll int    `hcl:"bankroll"`
}

// DefaultTableFile returns the configuration used when no file is present
func DefaultTableFile() *TableFile {
	return &TableFile{
		Table: TableSettings{
			MaxPlayers:       2,
			NumberOfDecks:    6,
			DealerHitsSoft17: true,
			DealerPeeks:      true,
			MinBet:           10,
			MaxBet:           100,
			CutCardPercent:   game.DefaultCutCardPercent,
		},
	}
}

// LoadTableFile loads table configuration from an HCL file, falling back to
// defaults when the file does not exist
func LoadTableFile(filename string) (*TableFile, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultTableFile(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg TableFile
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultTableFile().Table
	if cfg.Table.MaxPlayers == 0 {
		cfg.Table.MaxPlayers = defaults.MaxPlayers
	}
	if cfg.Table.NumberOfDecks == 0 {
		cfg.Table.NumberOfDecks = defaults.NumberOfDecks
	}
	if cfg.Table.MinBet == 0 {
		cfg.Table.MinBet = defaults.MinBet
	}
	if cfg.Table.MaxBet == 0 {
		cfg.Table.MaxBet = defaults.MaxBet
	}
	if cfg.Table.CutCardPercent == 0 {
		cfg.Table.CutCardPercent = defaults.CutCardPercent
	}

	for i := range cfg.Players {
		if cfg.Players[i].Kind == "" {
			cfg.Players[i].Kind = "automated"
		}
	}

	return &cfg, nil
}

// Rules converts the settings into the engine's immutable rule set
func (f *TableFile) Rules() game.TableRules {
	return game.TableRules{
		MaxPlayers:       f.Table.MaxPlayers,
		NumberOfDecks:    f.Table.NumberOfDecks,
		DealerHitsSoft17: f.Table.DealerHitsSoft17,
		DealerPeeks:      f.Table.DealerPeeks,
		MinBet:           f.Table.MinBet,
		MaxBet:           f.Table.MaxBet,
		CutCardPercent:   f.Table.CutCardPercent,
	}
}

// Validate validates the configuration
func (f *TableFile) Validate() error {
	if err := f.Rules().Validate(); err != nil {
		return err
	}
	for _, p := range f.Players {
		if p.Kind != "human" && p.Kind != "automated" {
			return fmt.Errorf("player %s: invalid kind %q", p.Name, p.Kind)
		}
		if p.Bankroll < 0 {
			return fmt.Errorf("player %s: bankroll must not be negative", p.Name)
		}
	}
	return nil
}
