package game

import "fmt"

// FreeForAllSettings configures FreeForAll. Zero values fall back to a
// 301 countdown, first to 3 legs, one dart per turn.
type FreeForAllSettings struct {
	ScorePerLeg  int
	DoubleOut    bool
	LegsToWin    int
	DartsPerTurn int

	Advantages     bool
	SuddenDeathLeg int
}

func (s FreeForAllSettings) withDefaults() FreeForAllSettings {
	if s.ScorePerLeg == 0 {
		s.ScorePerLeg = 301
	}
	if s.LegsToWin == 0 {
		s.LegsToWin = 3
	}
	if s.DartsPerTurn == 0 {
		s.DartsPerTurn = 1
	}
	if s.Advantages && s.SuddenDeathLeg == 0 {
		s.SuddenDeathLeg = s.LegsToWin + 3
	}
	return s
}

// FreeForAll is the party variant of ClassicLegs: 2-4 players, legs
// only, and a turn length that defaults to a single dart so play
// rotates quickly.
type FreeForAll struct {
	settings FreeForAllSettings
}

// NewFreeForAll builds the mode, applying defaults to the settings.
func NewFreeForAll(settings FreeForAllSettings) *FreeForAll {
	return &FreeForAll{settings: settings.withDefaults()}
}

func (m *FreeForAll) Name() string { return "freeforall" }

func (m *FreeForAll) DartsPerTurn() int { return m.settings.DartsPerTurn }

func (m *FreeForAll) ValidatePlayers(players []Player) error {
	return validateBetween(players, 2, 4)
}

func (m *FreeForAll) InitialScore() Score {
	return LegsScore{Remaining: m.settings.ScorePerLeg}
}

// Settings returns the effective settings after defaulting.
func (m *FreeForAll) Settings() FreeForAllSettings { return m.settings }

func (m *FreeForAll) EvaluateThrow(playerID string, t Throw, scores map[string]Score) (Result, error) {
	cur, ok := scores[playerID].(LegsScore)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrMissingScore, playerID)
	}

	left, busted, finished := countdown(cur.Remaining, t, m.settings.DoubleOut)
	if busted {
		return Result{Outcome: OutcomeBust, Score: cur}, nil
	}
	if !finished {
		return Result{
			Outcome: OutcomeContinue,
			Score:   LegsScore{Remaining: left, Legs: cur.Legs},
		}, nil
	}

	// Leg won: every opponent starts the next leg clean, their leg
	// counts untouched.
	won := cur.Legs + 1
	bestOther := 0
	others := make(map[string]Score, len(scores)-1)
	for id, sc := range scores {
		if id == playerID {
			continue
		}
		os, ok := sc.(LegsScore)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingScore, id)
		}
		if os.Legs > bestOther {
			bestOther = os.Legs
		}
		others[id] = LegsScore{Remaining: m.settings.ScorePerLeg, Legs: os.Legs}
	}

	winner := LegsScore{Remaining: m.settings.ScorePerLeg, Legs: won}
	if reachedTarget(won, bestOther, m.settings.LegsToWin, m.settings.Advantages, m.settings.SuddenDeathLeg) {
		return Result{Outcome: OutcomeWin, Score: winner, WinnerID: playerID}, nil
	}
	return Result{
		Outcome:  OutcomeContinue,
		Score:    winner,
		Others:   others,
		Progress: ProgressLegWon,
	}, nil
}
