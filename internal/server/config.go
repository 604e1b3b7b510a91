package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/mver/oche/internal/game"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Modes  []ModeConfig   `hcl:"mode,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Addr returns the listen address in host:port form.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Address, s.Port)
}

// ModeConfig is one named game preset clients can create matches from.
// Only the fields relevant to the variant are consulted; the engine
// defaults anything left at zero.
type ModeConfig struct {
	Name    string `hcl:"name,label"`
	Variant string `hcl:"variant"`

	ScorePerLeg      int  `hcl:"score_per_leg,optional"`
	DoubleOut        bool `hcl:"double_out,optional"`
	LegsToWin        int  `hcl:"legs_to_win,optional"`
	LegsToWinSet     int  `hcl:"legs_to_win_set,optional"`
	SetsToWin        int  `hcl:"sets_to_win,optional"`
	Advantages       bool `hcl:"advantages,optional"`
	SuddenDeathLeg   int  `hcl:"sudden_death_leg,optional"`
	DartsPerTurn     int  `hcl:"darts_per_turn,optional"`
	HitsToClose      int  `hcl:"hits_to_close,optional"`
	CountMultipliers bool `hcl:"count_multipliers,optional"`
}

// Build constructs the game mode this preset describes.
func (mc ModeConfig) Build() (game.Mode, error) {
	switch mc.Variant {
	case "legs":
		return game.NewClassicLegs(game.LegsSettings{
			ScorePerLeg:    mc.ScorePerLeg,
			DoubleOut:      mc.DoubleOut,
			LegsToWin:      mc.LegsToWin,
			Advantages:     mc.Advantages,
			SuddenDeathLeg: mc.SuddenDeathLeg,
		}), nil
	case "sets":
		return game.NewClassicSets(game.SetsSettings{
			ScorePerLeg:    mc.ScorePerLeg,
			DoubleOut:      mc.DoubleOut,
			LegsToWinSet:   mc.LegsToWinSet,
			SetsToWin:      mc.SetsToWin,
			Advantages:     mc.Advantages,
			SuddenDeathLeg: mc.SuddenDeathLeg,
		}), nil
	case "freeforall":
		return game.NewFreeForAll(game.FreeForAllSettings{
			ScorePerLeg:    mc.ScorePerLeg,
			DoubleOut:      mc.DoubleOut,
			LegsToWin:      mc.LegsToWin,
			DartsPerTurn:   mc.DartsPerTurn,
			Advantages:     mc.Advantages,
			SuddenDeathLeg: mc.SuddenDeathLeg,
		}), nil
	case "cricket":
		return game.NewCricket(game.CricketSettings{
			HitsToClose:      mc.HitsToClose,
			CountMultipliers: mc.CountMultipliers,
		}), nil
	}
	return nil, fmt.Errorf("server: mode %q has unknown variant %q", mc.Name, mc.Variant)
}

// DefaultConfig returns the configuration used when no file exists:
// one preset per variant with tournament-ish settings.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Modes: []ModeConfig{
			{Name: "legs-501", Variant: "legs", ScorePerLeg: 501, DoubleOut: true, LegsToWin: 3},
			{Name: "sets-501", Variant: "sets", ScorePerLeg: 501, DoubleOut: true, LegsToWinSet: 3, SetsToWin: 2},
			{Name: "ffa-301", Variant: "freeforall", ScorePerLeg: 301, LegsToWin: 3, DartsPerTurn: 1},
			{Name: "cricket", Variant: "cricket", HitsToClose: 3, CountMultipliers: true},
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing
// file is not an error; the defaults apply.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("server: failed to parse %s: %s", filename, diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("server: failed to decode %s: %s", filename, diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if len(config.Modes) == 0 {
		config.Modes = DefaultConfig().Modes
	}

	// Fail fast on presets the service could never build.
	for _, mc := range config.Modes {
		if _, err := mc.Build(); err != nil {
			return nil, err
		}
	}
	return &config, nil
}
