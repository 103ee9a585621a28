package calendar

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
	"github.com/julianstephens/habitlit/internal/tui/theme"
	"github.com/julianstephens/habitlit/internal/utils"
)

const cellWidth = 12

var (
	cellStyle   = lipgloss.NewStyle().Width(cellWidth).Height(constants.MaxCalendarMarkers + 2).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Width(cellWidth).Padding(0, 1).Bold(true).Foreground(theme.Muted)
)

type KeyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevMonth: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "this month"),
		),
	}
}

type Model struct {
	habits []models.Habit
	now    time.Time
	year   int
	month  time.Month
	keys   KeyMap
	width  int
	height int
}

func New(now time.Time, width, height int) Model {
	return Model{
		now:    now,
		year:   now.Year(),
		month:  now.Month(),
		keys:   DefaultKeyMap(),
		width:  width,
		height: height,
	}
}

func (m *Model) SetHabits(habits []models.Habit, now time.Time) {
	m.habits = habits
	m.now = now
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Month returns the month being displayed.
func (m Model) Month() (int, time.Month) {
	return m.year, m.month
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.PrevMonth):
		m.shift(-1)
	case key.Matches(km, m.keys.NextMonth):
		m.shift(1)
	case key.Matches(km, m.keys.Today):
		m.year, m.month = m.now.Year(), m.now.Month()
	}
	return m, nil
}

func (m *Model) shift(months int) {
	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	m.year, m.month = first.Year(), first.Month()
}

func (m Model) View() string {
	cal := stats.MonthlyCalendar(m.habits, m.year, m.month, m.now.Location())

	title := theme.TitleStyle.Render(time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006"))

	var header []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		header = append(header, headerStyle.Render(d.String()[:3]))
	}

	rows := []string{title, lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, week := range cal.Weeks() {
		var cells []string
		for _, day := range week {
			cells = append(cells, cellStyle.Render(m.cell(day)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if totals := m.totals(cal); totals != "" {
		rows = append(rows, "", totals)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) cell(day *stats.CalendarDay) string {
	if day == nil {
		return ""
	}

	num := fmt.Sprintf("%d", day.Date.Day())
	if utils.SameDay(day.Date, m.now) {
		num = theme.TodayStyle.Render(num)
	}

	lines := []string{num}
	shown, more := day.Visible(constants.MaxCalendarMarkers)
	for _, mark := range shown {
		name := mark.Name
		if r := []rune(name); len(r) > cellWidth-4 {
			name = string(r[:cellWidth-5]) + "…"
		}
		lines = append(lines, theme.StatusMark(mark.Status)+" "+name)
	}
	if more > 0 {
		lines = append(lines, theme.MutedStyle.Render(fmt.Sprintf("+%d more", more)))
	}
	return strings.Join(lines, "\n")
}

// totals lists each habit's completed days within the displayed month.
func (m Model) totals(cal stats.Calendar) string {
	if len(m.habits) == 0 {
		return ""
	}
	counts := make(map[string]int)
	for _, d := range cal.Days {
		for _, mark := range d.Marks {
			if mark.Status == models.StatusCompleted {
				counts[mark.HabitID]++
			}
		}
	}

	var parts []string
	for _, h := range m.habits {
		parts = append(parts, fmt.Sprintf("%s %s %d", theme.StatusMark(models.StatusCompleted), h.Name, counts[h.ID]))
	}
	return strings.Join(parts, "   ")
}
