// Package display renders match scoreboards for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mver/oche/internal/game"
)

// Styles contains styling for scoreboard output.
type Styles struct {
	Header    lipgloss.Style
	Player    lipgloss.Style
	Active    lipgloss.Style
	Winner    lipgloss.Style
	Bust      lipgloss.Style
	Progress  lipgloss.Style
	Info      lipgloss.Style
	Separator lipgloss.Style
}

// NewStyles creates the default scoreboard styles.
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		Player: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Active: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Bust: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Progress: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Scoreboard writes a running commentary of a match to a writer.
type Scoreboard struct {
	w      io.Writer
	styles *Styles
}

// New creates a scoreboard. Respects NO_COLOR for piped output.
func New(w io.Writer) *Scoreboard {
	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return &Scoreboard{w: w, styles: NewStyles()}
}

// ShowMatchStart prints the match header and the player lineup.
func (sb *Scoreboard) ShowMatchStart(m *game.Match) {
	players := m.Players()
	fmt.Fprintln(sb.w, sb.styles.Header.Render(
		fmt.Sprintf("%s match, %d players", m.Mode().Name(), len(players))))
	for _, p := range players {
		sc, _ := m.ScoreOf(p.ID)
		fmt.Fprintf(sb.w, "  %s  %s\n", sb.styles.Player.Render(p.Name), sc)
	}
	fmt.Fprintln(sb.w)
}

// ShowThrow prints one registered dart and its effect.
func (sb *Scoreboard) ShowThrow(m *game.Match, playerID string, t game.Throw, res game.Result) {
	name := sb.playerName(m, playerID)
	line := fmt.Sprintf("%s: %s", name, t)

	switch res.Outcome {
	case game.OutcomeBust:
		line += "  " + sb.styles.Bust.Render("BUST")
	case game.OutcomeWin:
		line += "  " + sb.styles.Winner.Render("wins the match")
	default:
		line += fmt.Sprintf("  %s", res.Score)
	}
	if res.Progress != game.ProgressNone {
		line += "  " + sb.styles.Progress.Render(res.Progress.String())
	}
	fmt.Fprintln(sb.w, line)
}

// ShowScores prints the current standing, marking whoever throws next.
func (sb *Scoreboard) ShowScores(m *game.Match) {
	fmt.Fprintln(sb.w, sb.styles.Separator.Render(strings.Repeat("-", 40)))
	current := ""
	if !m.IsFinished() {
		current = m.CurrentPlayer().ID
	}
	for _, p := range m.Players() {
		sc, _ := m.ScoreOf(p.ID)
		marker := "  "
		style := sb.styles.Player
		if p.ID == current {
			marker = "> "
			style = sb.styles.Active
		}
		fmt.Fprintf(sb.w, "%s%s  %s\n", marker, style.Render(p.Name), sc)
	}
	fmt.Fprintln(sb.w, sb.styles.Separator.Render(strings.Repeat("-", 40)))
}

// ShowResult prints the final summary once a match has finished.
func (sb *Scoreboard) ShowResult(m *game.Match) {
	if !m.IsFinished() {
		return
	}
	name := sb.playerName(m, m.WinnerID())
	fmt.Fprintln(sb.w)
	fmt.Fprintf(sb.w, "%s %s\n", sb.styles.Winner.Render("Winner:"), sb.styles.Winner.Render(name))
	fmt.Fprintln(sb.w, sb.styles.Info.Render(fmt.Sprintf("%d darts thrown", len(m.History()))))
}

func (sb *Scoreboard) playerName(m *game.Match, playerID string) string {
	for _, p := range m.Players() {
		if p.ID == playerID {
			return p.Name
		}
	}
	return playerID
}
