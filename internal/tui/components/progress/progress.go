package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/stats"
	"github.com/julianstephens/habitlit/internal/tui/components/habits"
	"github.com/julianstephens/habitlit/internal/tui/theme"
	"github.com/julianstephens/habitlit/internal/utils"
)

const (
	nameWidth = 20
	maxBar    = 40
)

type KeyMap struct {
	Up   key.Binding
	Down key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev habit"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next habit"),
		),
	}
}

// Model shows this week's status for every habit and a detailed breakdown
// of the selected one.
type Model struct {
	habits   []models.Habit
	selected string
	now      time.Time
	keys     KeyMap
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{keys: DefaultKeyMap(), width: width, height: height}
}

func (m *Model) SetHabits(habits []models.Habit, selectedID string, now time.Time) {
	m.habits = habits
	m.selected = selectedID
	m.now = now
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) selectedIndex() int {
	for i, h := range m.habits {
		if h.ID == m.selected {
			return i
		}
	}
	return 0
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(m.habits) == 0 {
		return m, nil
	}

	i := m.selectedIndex()
	switch {
	case key.Matches(km, m.keys.Up):
		i = (i - 1 + len(m.habits)) % len(m.habits)
	case key.Matches(km, m.keys.Down):
		i = (i + 1) % len(m.habits)
	default:
		return m, nil
	}
	m.selected = m.habits[i].ID
	id := m.selected
	return m, func() tea.Msg { return habits.SelectHabitMsg{ID: id} }
}

func (m Model) View() string {
	if len(m.habits) == 0 {
		return "\n  No habits yet.\n  Add one from the Habits tab."
	}

	var b strings.Builder
	b.WriteString(m.weekHeader())
	b.WriteString("\n")
	sel := m.selectedIndex()
	for i, h := range m.habits {
		cursor := "  "
		if i == sel {
			cursor = theme.TitleStyle.Render("> ")
		}
		b.WriteString(cursor + m.weekRow(h) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detail(m.habits[sel]))
	return b.String()
}

func (m Model) weekHeader() string {
	var cells []string
	for _, d := range stats.WeeklyProgress(models.Habit{}, m.now) {
		label := d.Date.Weekday().String()[:2]
		if utils.SameDay(d.Date, m.now) {
			label = theme.TodayStyle.Render(label)
		}
		cells = append(cells, label)
	}
	return "  " + fmt.Sprintf("%-*s", nameWidth, "") + " " + strings.Join(cells, " ")
}

func (m Model) weekRow(h models.Habit) string {
	var cells []string
	for _, d := range stats.WeeklyProgress(h, m.now) {
		if !d.Scheduled && d.Status == models.StatusPending {
			cells = append(cells, "  ")
			continue
		}
		cells = append(cells, theme.StatusMark(d.Status)+" ")
	}
	name := h.Name
	if r := []rune(name); len(r) > nameWidth {
		name = string(r[:nameWidth-1]) + "…"
	}
	return fmt.Sprintf("%-*s %s %3d%%", nameWidth, name, strings.Join(cells, " "), stats.ProgressPercent(h))
}

func (m Model) detail(h models.Habit) string {
	summary := stats.CompletionStats(h, m.now)

	lines := []string{
		theme.TitleStyle.Render(h.Name),
		theme.MutedStyle.Render(fmt.Sprintf("%s at %s, started %s",
			stats.DaysText(h.SelectedDays),
			stats.FormatReminder(h.ReminderTime),
			h.StartDate.In(m.now.Location()).Format(constants.DateFormat))),
		"",
		m.chart(h),
		"",
		fmt.Sprintf("Progress %d%%  Completion %d%%  Streak %d  Day %d of %d",
			stats.ProgressPercent(h), summary.CompletionRate, stats.CurrentStreak(h, m.now),
			summary.DaysSinceStart+1, h.Duration),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// chart draws the goal as a horizontal bar split into status segments.
func (m Model) chart(h models.Habit) string {
	segments := stats.ChartSegments(h)
	total := 0
	for _, s := range segments {
		total += s.Value
	}
	if total == 0 {
		return theme.MutedStyle.Render("No data yet")
	}

	width := min(maxBar, max(m.width-10, 10))
	var bar, legend []string
	for _, s := range segments {
		n := max(1, s.Value*width/total)
		style := lipgloss.NewStyle().Foreground(theme.StatusColor(s.Status))
		bar = append(bar, style.Render(strings.Repeat("█", n)))
		legend = append(legend, style.Render(fmt.Sprintf("%s %d", s.Label, s.Value)))
	}
	return strings.Join(bar, "") + "\n" + strings.Join(legend, "  ")
}
