// Package game implements the rules engine for multi-variant darts.
//
// The main type is Match, which sequences darts and players for one
// running game: it enforces turn ownership, applies each dart through
// the active game mode, rolls the thrower back to their turn-start
// score on a bust, and flips permanently into a finished state when a
// mode reports a win.
//
// # Basic Usage
//
// Create a match and feed it darts:
//
//	mode := game.NewClassicLegs(game.LegsSettings{ScorePerLeg: 501, DoubleOut: true})
//	m, err := game.NewMatch("m1", mode, []game.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}})
//	// Register throws...
//	res, err := m.RegisterThrow("p1", game.MustThrow(20, 3))
//	if m.IsFinished() {
//	    winner := m.WinnerID()
//	}
//
// # Architecture
//
// Match delegates all scoring decisions to a Mode implementation:
//   - ClassicLegs: two players, first to N legs of a 501-style countdown
//   - ClassicSets: two players, legs grouped into sets
//   - FreeForAll: 2-4 players, legs only, configurable darts per turn
//   - Cricket: 2-4 players, close sectors 15-20 and bull, score on overflow
//
// Modes are pure: EvaluateThrow reads the score map but never writes it,
// returning every change as an explicit Result. The Match is the sole
// writer of committed state, which keeps speculative evaluation (and
// testing) side-effect free.
package game
