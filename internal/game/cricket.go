package game

import "fmt"

// CricketSettings configures Cricket. Zero values fall back to the
// standard game: three hits close a sector, multipliers count.
type CricketSettings struct {
	HitsToClose int

	// CountMultipliers makes a double or treble worth that many hits.
	// When off, any dart in a tracked sector counts as exactly one hit.
	CountMultipliers bool
}

func (s CricketSettings) withDefaults() CricketSettings {
	if s.HitsToClose == 0 {
		s.HitsToClose = 3
	}
	return s
}

// Cricket is the sector-closing variant: 2-4 players race to close
// 15-20 and bull. Hits beyond a close score points while any opponent
// still has the sector open; the winner has everything closed and at
// least as many points as every opponent.
type Cricket struct {
	settings CricketSettings
}

// NewCricket builds the mode, applying defaults to the settings.
func NewCricket(settings CricketSettings) *Cricket {
	return &Cricket{settings: settings.withDefaults()}
}

func (m *Cricket) Name() string { return "cricket" }

func (m *Cricket) DartsPerTurn() int { return dartsPerTurnClassic }

func (m *Cricket) ValidatePlayers(players []Player) error {
	return validateBetween(players, 2, 4)
}

func (m *Cricket) InitialScore() Score {
	return CricketScore{}
}

// Settings returns the effective settings after defaulting.
func (m *Cricket) Settings() CricketSettings { return m.settings }

func (m *Cricket) EvaluateThrow(playerID string, t Throw, scores map[string]Score) (Result, error) {
	cur, ok := scores[playerID].(CricketScore)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrMissingScore, playerID)
	}
	opponents := make([]CricketScore, 0, len(scores)-1)
	for id, sc := range scores {
		if id == playerID {
			continue
		}
		os, ok := sc.(CricketScore)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingScore, id)
		}
		opponents = append(opponents, os)
	}

	idx, tracked := cricketSectorIndex(t.Sector)
	if !tracked {
		// Darts outside 15-20 and bull do nothing in cricket.
		return Result{Outcome: OutcomeContinue, Score: cur}, nil
	}

	hits := 1
	if m.settings.CountMultipliers {
		hits = t.Multiplier
	}

	// Hits first fill the sector up to the close target; whatever is
	// left over scores, but only while at least one opponent still has
	// the sector open. Once every opponent has closed it the sector is
	// dead for points.
	needed := m.settings.HitsToClose - cur.Hits[idx]
	if needed < 0 {
		needed = 0
	}
	applied := min(hits, needed)

	next := cur
	next.Hits[idx] += applied
	if extra := hits - applied; extra > 0 && m.openForAny(opponents, idx) {
		next.Points += extra * cricketSectors[idx]
	}

	if next.AllClosed(m.settings.HitsToClose) && !trailsAny(next.Points, opponents) {
		return Result{Outcome: OutcomeWin, Score: next, WinnerID: playerID}, nil
	}
	return Result{Outcome: OutcomeContinue, Score: next}, nil
}

// openForAny reports whether any opponent still has the sector open.
func (m *Cricket) openForAny(opponents []CricketScore, idx int) bool {
	for _, o := range opponents {
		if o.Hits[idx] < m.settings.HitsToClose {
			return true
		}
	}
	return false
}

// trailsAny reports whether any opponent has strictly more points.
func trailsAny(points int, opponents []CricketScore) bool {
	for _, o := range opponents {
		if o.Points > points {
			return true
		}
	}
	return false
}
