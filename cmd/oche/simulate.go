package main

import (
	"fmt"
	"os"

	"github.com/mver/oche/cmd/oche/shared"
	"github.com/mver/oche/internal/bot"
	"github.com/mver/oche/internal/display"
	"github.com/mver/oche/internal/game"
	"github.com/mver/oche/internal/matchid"
	"github.com/mver/oche/internal/randutil"
	"github.com/mver/oche/internal/server"
)

type SimulateCmd struct {
	Variant  string  `default:"legs" help:"Game variant: legs, sets, freeforall, cricket"`
	Players  int     `default:"2" help:"Number of players"`
	Accuracy float64 `default:"0.8" help:"Bot accuracy in [0,1]"`
	Seed     int64   `default:"0" help:"RNG seed (0 for random)"`
	MaxDarts int     `default:"10000" help:"Abort a match that will not end"`
	Verbose  bool    `help:"Print every dart"`
}

func (cmd *SimulateCmd) Run() error {
	logger := shared.SetupLogger("info")

	rng, seed := randutil.Auto()
	if cmd.Seed != 0 {
		rng, seed = randutil.New(cmd.Seed), cmd.Seed
	}

	mode, err := server.ModeConfig{Name: cmd.Variant, Variant: cmd.Variant}.Build()
	if err != nil {
		return err
	}

	players := make([]game.Player, cmd.Players)
	for i := range players {
		players[i] = game.Player{
			ID:   fmt.Sprintf("bot%d", i+1),
			Name: fmt.Sprintf("Bot %d", i+1),
		}
	}

	m, err := game.NewMatch(matchid.New(), mode, players)
	if err != nil {
		return err
	}

	logger.Info("Simulating match", "variant", mode.Name(), "players", cmd.Players, "seed", seed)

	thrower := bot.NewAimer(rng, cmd.Accuracy)
	sb := display.New(os.Stdout)
	sb.ShowMatchStart(m)

	darts := 0
	for !m.IsFinished() && darts < cmd.MaxDarts {
		playerID := m.CurrentPlayer().ID
		t := thrower.Throw(m, playerID)
		res, err := m.RegisterThrow(playerID, t)
		if err != nil {
			return err
		}
		if cmd.Verbose {
			sb.ShowThrow(m, playerID, t, res)
		}
		darts++
	}

	if !m.IsFinished() {
		return fmt.Errorf("no winner after %d darts, seed %d", cmd.MaxDarts, seed)
	}

	sb.ShowScores(m)
	sb.ShowResult(m)
	logger.Info("Simulation complete", "darts", darts, "winner", m.WinnerID(), "seed", seed)
	return nil
}
