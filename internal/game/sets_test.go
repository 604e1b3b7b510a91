package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setsPair(p1, p2 SetsScore) map[string]Score {
	return map[string]Score{"p1": p1, "p2": p2}
}

func TestClassicSets_Defaults(t *testing.T) {
	m := NewClassicSets(SetsSettings{})
	assert.Equal(t, "sets", m.Name())
	assert.Equal(t, 3, m.DartsPerTurn())
	assert.Equal(t, SetsScore{Remaining: 501}, m.InitialScore())
	assert.Equal(t, 3, m.Settings().LegsToWinSet)
	assert.Equal(t, 2, m.Settings().SetsToWin)
}

func TestClassicSets_ValidatePlayers(t *testing.T) {
	m := NewClassicSets(SetsSettings{})
	require.NoError(t, m.ValidatePlayers([]Player{{ID: "p1"}, {ID: "p2"}}))
	assert.ErrorIs(t, m.ValidatePlayers([]Player{{ID: "p1"}}), ErrInvalidPlayerCount)
	assert.ErrorIs(t, m.ValidatePlayers([]Player{{ID: "a"}, {ID: "b"}, {ID: "c"}}), ErrInvalidPlayerCount)
}

func TestClassicSets_BustKeepsCounters(t *testing.T) {
	m := NewClassicSets(SetsSettings{ScorePerLeg: 201})
	scores := setsPair(SetsScore{Remaining: 30, Legs: 2, Sets: 1}, SetsScore{Remaining: 100})

	res, err := m.EvaluateThrow("p1", MustThrow(17, 3), scores)
	require.NoError(t, err)
	assert.Equal(t, OutcomeBust, res.Outcome)
	assert.Equal(t, SetsScore{Remaining: 30, Legs: 2, Sets: 1}, res.Score)
}

func TestClassicSets_LegWinWithinSet(t *testing.T) {
	m := NewClassicSets(SetsSettings{ScorePerLeg: 201, LegsToWinSet: 3, SetsToWin: 2})
	scores := setsPair(SetsScore{Remaining: 40, Legs: 1, Sets: 1}, SetsScore{Remaining: 99, Legs: 2, Sets: 0})

	res, err := m.EvaluateThrow("p1", MustThrow(20, 2), scores)
	require.NoError(t, err)
	assert.Equal(t, OutcomeContinue, res.Outcome)
	assert.Equal(t, ProgressLegWon, res.Progress)
	assert.Equal(t, SetsScore{Remaining: 201, Legs: 2, Sets: 1}, res.Score)
	// Opponent keeps leg and set counts, starts the new leg clean.
	assert.Equal(t, SetsScore{Remaining: 201, Legs: 2, Sets: 0}, res.Others["p2"])
}

func TestClassicSets_SetWinResetsLegCounters(t *testing.T) {
	// Winning the third leg wins the set; leg counters
	// reset to zero for both players and everyone gets a fresh leg.
	m := NewClassicSets(SetsSettings{ScorePerLeg: 201, LegsToWinSet: 3, SetsToWin: 2})
	scores := setsPair(SetsScore{Remaining: 20, Legs: 2, Sets: 0}, SetsScore{Remaining: 150, Legs: 1, Sets: 0})

	res, err := m.EvaluateThrow("p1", MustThrow(20, 1), scores)
	require.NoError(t, err)
	assert.Equal(t, OutcomeContinue, res.Outcome)
	assert.Equal(t, ProgressSetWon, res.Progress)
	assert.Equal(t, SetsScore{Remaining: 201, Legs: 0, Sets: 1}, res.Score)
	assert.Equal(t, SetsScore{Remaining: 201, Legs: 0, Sets: 0}, res.Others["p2"])
}

func TestClassicSets_MatchWin(t *testing.T) {
	m := NewClassicSets(SetsSettings{ScorePerLeg: 201, LegsToWinSet: 3, SetsToWin: 2})
	scores := setsPair(SetsScore{Remaining: 32, Legs: 2, Sets: 1}, SetsScore{Remaining: 88, Legs: 0, Sets: 0})

	res, err := m.EvaluateThrow("p1", MustThrow(16, 2), scores)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWin, res.Outcome)
	assert.Equal(t, "p1", res.WinnerID)
	assert.Equal(t, SetsScore{Remaining: 201, Legs: 0, Sets: 2}, res.Score)
}

func TestClassicSets_AdvantageAppliesToLegs(t *testing.T) {
	m := NewClassicSets(SetsSettings{
		ScorePerLeg:    101,
		LegsToWinSet:   3,
		SetsToWin:      2,
		Advantages:     true,
		SuddenDeathLeg: 5,
	})

	// Three legs with a one-leg lead: not a set yet, just a leg.
	scores := setsPair(SetsScore{Remaining: 2, Legs: 2}, SetsScore{Remaining: 60, Legs: 2})
	res, err := m.EvaluateThrow("p1", MustThrow(2, 1), scores)
	require.NoError(t, err)
	assert.Equal(t, ProgressLegWon, res.Progress)
	assert.Equal(t, SetsScore{Remaining: 101, Legs: 3, Sets: 0}, res.Score)

	// Sudden-death leg decides the set regardless of margin.
	scores = setsPair(SetsScore{Remaining: 2, Legs: 4}, SetsScore{Remaining: 60, Legs: 4})
	res, err = m.EvaluateThrow("p1", MustThrow(2, 1), scores)
	require.NoError(t, err)
	assert.Equal(t, ProgressSetWon, res.Progress)
	assert.Equal(t, SetsScore{Remaining: 101, Legs: 0, Sets: 1}, res.Score)
}

func TestClassicSets_DoubleOut(t *testing.T) {
	m := NewClassicSets(SetsSettings{ScorePerLeg: 201, DoubleOut: true})
	scores := setsPair(SetsScore{Remaining: 20}, SetsScore{Remaining: 40})

	res, err := m.EvaluateThrow("p1", MustThrow(20, 1), scores)
	require.NoError(t, err)
	assert.Equal(t, OutcomeBust, res.Outcome)

	res, err = m.EvaluateThrow("p1", MustThrow(10, 2), scores)
	require.NoError(t, err)
	assert.Equal(t, ProgressLegWon, res.Progress)
}

func TestClassicSets_MissingScore(t *testing.T) {
	m := NewClassicSets(SetsSettings{})
	_, err := m.EvaluateThrow("p1", MustThrow(20, 1), map[string]Score{"p1": LegsScore{Remaining: 501}})
	assert.ErrorIs(t, err, ErrMissingScore)
}
