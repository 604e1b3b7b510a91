package game

import "fmt"

// LegsSettings configures ClassicLegs. Zero values fall back to a
// standard 501, first-to-3-legs match.
type LegsSettings struct {
	ScorePerLeg int
	DoubleOut   bool
	LegsToWin   int

	// Advantages requires a two-leg lead to win, until SuddenDeathLeg
	// is reached; whoever gets there first wins outright.
	Advantages     bool
	SuddenDeathLeg int
}

func (s LegsSettings) withDefaults() LegsSettings {
	if s.ScorePerLeg == 0 {
		s.ScorePerLeg = 501
	}
	if s.LegsToWin == 0 {
		s.LegsToWin = 3
	}
	if s.Advantages && s.SuddenDeathLeg == 0 {
		s.SuddenDeathLeg = s.LegsToWin + 3
	}
	return s
}

// ClassicLegs is the two-player countdown variant: first to the
// configured number of legs wins the match.
type ClassicLegs struct {
	settings LegsSettings
}

// NewClassicLegs builds the mode, applying defaults to the settings.
func NewClassicLegs(settings LegsSettings) *ClassicLegs {
	return &ClassicLegs{settings: settings.withDefaults()}
}

func (m *ClassicLegs) Name() string { return "legs" }

func (m *ClassicLegs) DartsPerTurn() int { return dartsPerTurnClassic }

func (m *ClassicLegs) ValidatePlayers(players []Player) error {
	return validateExactly(players, 2)
}

func (m *ClassicLegs) InitialScore() Score {
	return LegsScore{Remaining: m.settings.ScorePerLeg}
}

// Settings returns the effective settings after defaulting.
func (m *ClassicLegs) Settings() LegsSettings { return m.settings }

func (m *ClassicLegs) EvaluateThrow(playerID string, t Throw, scores map[string]Score) (Result, error) {
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

	// Leg won: everyone starts the next leg from a clean score.
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
