package game

// Outcome classifies an evaluated throw.
type Outcome int

const (
	// OutcomeContinue commits the throw and play goes on.
	OutcomeContinue Outcome = iota
	// OutcomeBust invalidates the whole turn; the thrower is rolled
	// back to their turn-start score and the turn ends.
	OutcomeBust
	// OutcomeWin ends the match.
	OutcomeWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeBust:
		return "bust"
	case OutcomeWin:
		return "win"
	}
	return "unknown"
}

// Progress marks a leg or set boundary crossed by a throw, for
// scoreboard-level signalling. When one dart crosses several
// boundaries the highest wins: a win is reported through Outcome
// alone, a set win outranks the leg win inside it.
type Progress int

const (
	ProgressNone Progress = iota
	ProgressLegWon
	ProgressSetWon
)

func (p Progress) String() string {
	switch p {
	case ProgressNone:
		return "none"
	case ProgressLegWon:
		return "leg_won"
	case ProgressSetWon:
		return "set_won"
	}
	return "unknown"
}

// Result is the outcome of evaluating one throw. Modes return all
// state changes here; they never write to the score map they read.
type Result struct {
	Outcome Outcome

	// Score is the thrower's replacement snapshot. On a bust it is the
	// score the mode saw, unchanged; the match owns the actual rollback
	// to the turn-start anchor.
	Score Score

	// Others holds replacement snapshots for opponents affected by a
	// leg or set win (everyone starts the new leg clean). Nil when the
	// throw touches only the thrower.
	Others map[string]Score

	Progress Progress

	// WinnerID is set when Outcome is OutcomeWin.
	WinnerID string
}
