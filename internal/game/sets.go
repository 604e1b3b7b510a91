package game

import "fmt"

// SetsSettings configures ClassicSets. Zero values fall back to 501
// legs, first to 3 legs per set, first to 2 sets.
type SetsSettings struct {
	ScorePerLeg  int
	DoubleOut    bool
	LegsToWinSet int
	SetsToWin    int

	// Advantages and SuddenDeathLeg apply to the legs within a set;
	// the match itself is a plain first-to-SetsToWin race.
	Advantages     bool
	SuddenDeathLeg int
}

func (s SetsSettings) withDefaults() SetsSettings {
	if s.ScorePerLeg == 0 {
		s.ScorePerLeg = 501
	}
	if s.LegsToWinSet == 0 {
		s.LegsToWinSet = 3
	}
	if s.SetsToWin == 0 {
		s.SetsToWin = 2
	}
	if s.Advantages && s.SuddenDeathLeg == 0 {
		s.SuddenDeathLeg = s.LegsToWinSet + 3
	}
	return s
}

// ClassicSets layers sets on top of the ClassicLegs countdown: leg
// wins accumulate toward a set, set wins toward the match.
type ClassicSets struct {
	settings SetsSettings
}

// NewClassicSets builds the mode, applying defaults to the settings.
func NewClassicSets(settings SetsSettings) *ClassicSets {
	return &ClassicSets{settings: settings.withDefaults()}
}

func (m *ClassicSets) Name() string { return "sets" }

func (m *ClassicSets) DartsPerTurn() int { return dartsPerTurnClassic }

func (m *ClassicSets) ValidatePlayers(players []Player) error {
	return validateExactly(players, 2)
}

func (m *ClassicSets) InitialScore() Score {
	return SetsScore{Remaining: m.settings.ScorePerLeg}
}

// Settings returns the effective settings after defaulting.
func (m *ClassicSets) Settings() SetsSettings { return m.settings }

func (m *ClassicSets) EvaluateThrow(playerID string, t Throw, scores map[string]Score) (Result, error) {
	cur, ok := scores[playerID].(SetsScore)
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
			Score:   SetsScore{Remaining: left, Legs: cur.Legs, Sets: cur.Sets},
		}, nil
	}

	legsWon := cur.Legs + 1
	bestOtherLegs := 0
	otherScores := make(map[string]SetsScore, len(scores)-1)
	for id, sc := range scores {
		if id == playerID {
			continue
		}
		os, ok := sc.(SetsScore)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingScore, id)
		}
		if os.Legs > bestOtherLegs {
			bestOtherLegs = os.Legs
		}
		otherScores[id] = os
	}

	setWon := reachedTarget(legsWon, bestOtherLegs, m.settings.LegsToWinSet, m.settings.Advantages, m.settings.SuddenDeathLeg)

	others := make(map[string]Score, len(otherScores))
	if !setWon {
		// Leg win only: fresh leg for everyone, leg counts stand.
		for id, os := range otherScores {
			others[id] = SetsScore{Remaining: m.settings.ScorePerLeg, Legs: os.Legs, Sets: os.Sets}
		}
		return Result{
			Outcome:  OutcomeContinue,
			Score:    SetsScore{Remaining: m.settings.ScorePerLeg, Legs: legsWon, Sets: cur.Sets},
			Others:   others,
			Progress: ProgressLegWon,
		}, nil
	}

	// Set win: leg counters reset for both players, fresh leg all round.
	setsWon := cur.Sets + 1
	for id, os := range otherScores {
		others[id] = SetsScore{Remaining: m.settings.ScorePerLeg, Sets: os.Sets}
	}
	winner := SetsScore{Remaining: m.settings.ScorePerLeg, Sets: setsWon}
	if setsWon >= m.settings.SetsToWin {
		return Result{Outcome: OutcomeWin, Score: winner, WinnerID: playerID}, nil
	}
	return Result{
		Outcome:  OutcomeContinue,
		Score:    winner,
		Others:   others,
		Progress: ProgressSetWon,
	}, nil
}
