// Package theme holds the colors shared by the TUI components.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/stats"
)

var (
	Completed = lipgloss.Color("42")
	Postponed = lipgloss.Color("214")
	Missed    = lipgloss.Color("196")
	Pending   = lipgloss.Color("240")
	Accent    = lipgloss.Color("205")
	Muted     = lipgloss.Color("241")

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
	TodayStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
)

// StatusColor maps a completion status to its display color.
func StatusColor(status models.CompletionStatus) lipgloss.Color {
	switch status {
	case models.StatusCompleted:
		return Completed
	case models.StatusPostponed:
		return Postponed
	case models.StatusMissed:
		return Missed
	default:
		return Pending
	}
}

// StatusMark renders the status symbol in its color.
func StatusMark(status models.CompletionStatus) string {
	return lipgloss.NewStyle().Foreground(StatusColor(status)).Render(stats.Symbol(status))
}
