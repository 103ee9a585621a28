package habits

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlit/internal/history"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/stats"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	Habit models.Habit
}

type DeleteHabitMsg struct {
	ID string
}

type MarkHabitMsg struct {
	ID string
}

type PostponeHabitMsg struct {
	ID string
}

// SelectHabitMsg is sent when the cursor moves to a different habit.
type SelectHabitMsg struct {
	ID string
}

type Item struct {
	Habit     models.Habit
	Today     models.CompletionStatus
	Scheduled bool
}

func (i Item) Title() string {
	title := stats.Symbol(i.Today) + " " + i.Habit.Name
	if !i.Habit.IsActive {
		title += " (paused)"
	}
	return title
}

func (i Item) Description() string {
	today := "not scheduled today"
	if i.Scheduled || i.Today != models.StatusPending {
		today = string(i.Today) + " today"
	}
	return fmt.Sprintf("%s at %s | %d%% of %d days | %s",
		stats.DaysText(i.Habit.SelectedDays),
		stats.FormatReminder(i.Habit.ReminderTime),
		stats.ProgressPercent(i.Habit),
		i.Habit.Duration,
		today,
	)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Mark     key.Binding
	Postpone key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m/space", "mark done"),
		),
		Postpone: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "postpone"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, now time.Time, width, height int) Model {
	l := list.New(items(habits, now), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Postpone}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Mark, keys.Postpone}
	}

	return Model{list: l, keys: keys}
}

func items(habits []models.Habit, now time.Time) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{
			Habit:     h,
			Today:     history.StatusOn(h.CompletionHistory, now),
			Scheduled: h.ScheduledOn(now.Weekday()),
		}
	}
	return out
}

// SetHabits replaces the items, keeping the cursor on the same habit when
// it still exists.
func (m *Model) SetHabits(habits []models.Habit, now time.Time) {
	selected := m.SelectedID()
	m.list.SetItems(items(habits, now))
	m.Select(selected)
}

// Select moves the cursor to the habit with id, if present.
func (m *Model) Select(id string) {
	if id == "" {
		return
	}
	for i, it := range m.list.Items() {
		if it.(Item).Habit.ID == id {
			m.list.Select(i)
			return
		}
	}
}

// SelectedID returns the habit under the cursor, or "" when the list is empty.
func (m Model) SelectedID() string {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Habit.ID
	}
	return ""
}

// Filtering reports whether the user is typing a filter query.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditHabitMsg{Habit: i.Habit} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Mark):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Today != models.StatusCompleted {
				return m, func() tea.Msg { return MarkHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Postpone):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Today != models.StatusPostponed {
				return m, func() tea.Msg { return PostponeHabitMsg{ID: i.Habit.ID} }
			}
		}
	}

	before := m.SelectedID()
	m.list, cmd = m.list.Update(msg)
	if after := m.SelectedID(); after != before && after != "" {
		return m, tea.Batch(cmd, func() tea.Msg { return SelectHabitMsg{ID: after} })
	}
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
