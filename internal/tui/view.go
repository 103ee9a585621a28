package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateProgress:
		content = docStyle.Render(m.progressModel.View())
	case constants.StateCalendar:
		content = docStyle.Render(m.calendarModel.View())
	case constants.StateAddHabit, constants.StateEditHabit:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs()}
	if banner := m.viewReminder(); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, content)
	if m.errMsg != "" {
		parts = append(parts, dangerStyle.Render(m.errMsg))
	}
	if m.loadWarning != "" {
		parts = append(parts, warningStyle.Render(m.loadWarning))
	}
	if m.validationWarning != "" {
		parts = append(parts, warningStyle.Render(m.validationWarning))
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var rendered []string
	for _, t := range tabs {
		if m.state == t.state {
			rendered = append(rendered, activeTabStyle.Render(t.title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// viewReminder shows the oldest active reminder with its actions.
func (m Model) viewReminder() string {
	if len(m.reminders) == 0 {
		return ""
	}
	n := m.reminders[0]
	text := fmt.Sprintf("🔔 Time for %s (%s)   [D]one  [P]ostpone  [L]ater  [X] dismiss",
		n.HabitName, stats.FormatReminder(n.ReminderTime))
	if more := len(m.reminders) - 1; more > 0 {
		text += fmt.Sprintf("   +%d more", more)
	}
	return bannerStyle.Render(text)
}

func (m Model) viewConfirmDelete() string {
	name := "this habit"
	if h, ok := m.store.State().Habit(m.habitToDeleteID); ok {
		name = fmt.Sprintf("%q", h.Name)
	}
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s and all of its history?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
