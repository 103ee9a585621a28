package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/reminder"
	"github.com/julianstephens/habitlit/internal/state"
	"github.com/julianstephens/habitlit/internal/tui/components/calendar"
	"github.com/julianstephens/habitlit/internal/tui/components/habits"
	"github.com/julianstephens/habitlit/internal/tui/components/progress"
	"github.com/julianstephens/habitlit/internal/validation"
)

// remindersChangedMsg signals that the reminder center's active set changed
// outside of Update, e.g. a notification expired.
type remindersChangedMsg struct{}

// tickMsg refreshes day-dependent views.
type tickMsg time.Time

var tabs = []struct {
	title string
	state constants.SessionState
	view  constants.View
}{
	{"Habits", constants.StateHabits, constants.ViewHabits},
	{"Progress", constants.StateProgress, constants.ViewProgress},
	{"Calendar", constants.StateCalendar, constants.ViewCalendar},
}

type Model struct {
	store    *state.Store
	center   *reminder.Center
	settings models.Settings
	loc      *time.Location
	now      func() time.Time

	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	habitsModel   habits.Model
	progressModel progress.Model
	calendarModel calendar.Model

	form            *huh.Form
	habitForm       *HabitFormModel
	editingID       string
	habitToDeleteID string

	reminders         []reminder.Notification
	validationWarning string
	loadWarning       string
	errMsg            string
	quitting          bool
	width             int
	height            int
}

func NewModel(store *state.Store, center *reminder.Center, settings models.Settings, loc *time.Location) Model {
	now := func() time.Time { return time.Now().In(loc) }
	st := store.State()
	today := now()

	m := Model{
		store:         store,
		center:        center,
		settings:      settings,
		loc:           loc,
		now:           now,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		habitsModel:   habits.New(st.Habits, today, 0, 0),
		progressModel: progress.New(0, 0),
		calendarModel: calendar.New(today, 0, 0),
	}
	m.state = stateForView(st.CurrentView)
	if err := store.LoadErr(); err != nil {
		if store.SavesHeld() {
			m.loadWarning = fmt.Sprintf("⚠ Stored habits could not be read (%v). Changes will not be saved.", err)
		} else {
			m.loadWarning = fmt.Sprintf("⚠ Stored habits could not be read (%v). Starting empty, the original was kept as %q.",
				err, constants.HabitsCorruptKey)
		}
	}
	m.refresh()
	return m
}

func stateForView(v constants.View) constants.SessionState {
	for _, t := range tabs {
		if t.view == v {
			return t.state
		}
	}
	return constants.StateHabits
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		hk := habits.DefaultKeyMap()
		keys = append(keys, hk.Add, hk.Mark, hk.Postpone)
	case constants.StateCalendar:
		ck := m.calendarModel.Keys()
		keys = append(keys, ck.PrevMonth, ck.NextMonth)
	}
	if len(m.reminders) > 0 {
		keys = append(keys, m.keys.ReminderDone, m.keys.ReminderPostpone, m.keys.ReminderLater, m.keys.ReminderDismiss)
	} else {
		keys = append(keys, m.keys.Simulate)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Left, m.keys.Right, m.keys.Quit, m.keys.Help}
	reminders := []key.Binding{m.keys.Simulate, m.keys.ReminderDone, m.keys.ReminderPostpone, m.keys.ReminderLater, m.keys.ReminderDismiss}

	var actions []key.Binding
	switch m.state {
	case constants.StateHabits:
		hk := habits.DefaultKeyMap()
		actions = []key.Binding{hk.Add, hk.Edit, hk.Delete, hk.Mark, hk.Postpone}
	case constants.StateProgress:
		pk := progress.DefaultKeyMap()
		actions = []key.Binding{pk.Up, pk.Down}
	case constants.StateCalendar:
		ck := m.calendarModel.Keys()
		actions = []key.Binding{ck.PrevMonth, ck.NextMonth, ck.Today}
	}

	return [][]key.Binding{global, actions, reminders}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// refresh pulls the latest snapshot into every component.
func (m *Model) refresh() {
	st := m.store.State()
	now := m.now()

	m.habitsModel.SetHabits(st.Habits, now)
	if st.SelectedHabitID != "" {
		m.habitsModel.Select(st.SelectedHabitID)
	}
	selected := st.SelectedHabitID
	if selected == "" {
		selected = m.habitsModel.SelectedID()
	}
	m.progressModel.SetHabits(st.Habits, selected, now)
	m.calendarModel.SetHabits(st.Habits, now)

	if m.center != nil {
		m.reminders = m.center.Active()
	}
	m.updateValidationStatus(st.Habits)
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus(habits []models.Habit) {
	result := validation.New().ValidateHabits(habits)
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'habitlit doctor'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// tabs, banner, help and padding
	h := max(height-8, 1)
	w := max(width-4, 1)
	m.habitsModel.SetSize(w, h)
	m.progressModel.SetSize(w, h)
	m.calendarModel.SetSize(w, h)
}
