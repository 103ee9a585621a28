package calendar

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlit/internal/models"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMonthNavigation(t *testing.T) {
	now := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	m := New(now, 100, 40)

	steps := []struct {
		msg   tea.KeyMsg
		year  int
		month time.Month
	}{
		{runes("]"), 2024, time.March},
		{runes("["), 2024, time.February},
		{runes("["), 2024, time.January},
		{tea.KeyMsg{Type: tea.KeyLeft}, 2023, time.December},
		{tea.KeyMsg{Type: tea.KeyRight}, 2024, time.January},
		{runes("t"), 2024, time.February},
	}
	for _, step := range steps {
		m, _ = m.Update(step.msg)
		if y, mo := m.Month(); y != step.year || mo != step.month {
			t.Fatalf("after %q month = %d-%02d, want %d-%02d", step.msg.String(), y, mo, step.year, step.month)
		}
	}
}

func TestView(t *testing.T) {
	now := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	day := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)

	var habits []models.Habit
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		habits = append(habits, models.Habit{
			ID:                name,
			Name:              name,
			CompletionHistory: []models.CompletionEntry{{Date: day, Status: models.StatusCompleted}},
		})
	}

	m := New(now, 100, 40)
	m.SetHabits(habits, now)
	view := m.View()

	for _, want := range []string{"February 2024", "Sun", "Sat", "+2 more", "A 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	now := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	view := New(now, 100, 40).View()
	if !strings.Contains(view, "29") {
		t.Error("leap-year February should have 29 days")
	}
	if strings.Contains(view, "more") {
		t.Error("empty calendar should not show overflow")
	}
}
