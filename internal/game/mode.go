package game

import "fmt"

// Player identifies a participant. Identity management lives outside
// the engine; the rules only need a stable ID and a display name.
type Player struct {
	ID   string
	Name string
}

// Classic modes always throw three darts per turn.
const dartsPerTurnClassic = 3

// Mode is the rules contract implemented by each game variant. A mode
// is selected once at match creation and never swapped mid-match.
//
// EvaluateThrow is pure: it reads the score map but must not mutate
// it, returning every change in the Result. That makes it safe to call
// speculatively against committed state.
type Mode interface {
	// Name returns the variant identifier ("legs", "sets",
	// "freeforall", "cricket").
	Name() string

	// ValidatePlayers rejects player lists outside the variant's
	// allowed count with ErrInvalidPlayerCount.
	ValidatePlayers(players []Player) error

	// InitialScore returns the variant's starting snapshot.
	InitialScore() Score

	// DartsPerTurn returns how many darts one turn holds.
	DartsPerTurn() int

	// EvaluateThrow applies one dart for playerID against the given
	// committed scores and returns the outcome. It fails with
	// ErrMissingScore if the map lacks a usable entry for any player.
	EvaluateThrow(playerID string, t Throw, scores map[string]Score) (Result, error)
}

func validateExactly(players []Player, want int) error {
	if len(players) != want {
		return fmt.Errorf("%w: need exactly %d players, got %d", ErrInvalidPlayerCount, want, len(players))
	}
	return nil
}

func validateBetween(players []Player, lo, hi int) error {
	if len(players) < lo || len(players) > hi {
		return fmt.Errorf("%w: need %d-%d players, got %d", ErrInvalidPlayerCount, lo, hi, len(players))
	}
	return nil
}

// countdown applies one dart to a remaining-score countdown.
//
// Bust rules, in order: going below zero; reaching zero on anything
// but a double when double-out is on; leaving exactly 1 under
// double-out (1 cannot be finished with a double). On a bust the
// original remaining score is returned untouched.
func countdown(remaining int, t Throw, doubleOut bool) (left int, busted, finished bool) {
	left = remaining - t.Value()
	switch {
	case left < 0:
		return remaining, true, false
	case left == 0:
		if doubleOut && !t.IsDouble() {
			return remaining, true, false
		}
		return 0, false, true
	case left == 1 && doubleOut:
		return remaining, true, false
	}
	return left, false, false
}

// reachedTarget reports whether won (the count after this increment)
// wins against a first-to-target rule. With advantages on, the winner
// must also lead the best opponent by two, unless the sudden-death
// threshold overrides the margin requirement.
func reachedTarget(won, bestOther, target int, advantages bool, suddenDeath int) bool {
	if advantages && suddenDeath > 0 && won >= suddenDeath {
		return true
	}
	if won < target {
		return false
	}
	if !advantages {
		return true
	}
	return won-bestOther >= 2
}
