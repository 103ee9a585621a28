package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/reminder"
	"github.com/julianstephens/habitlit/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width-4, 80))
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tick()
	case remindersChangedMsg:
		m.refresh()
		return m, nil
	}

	switch m.state {
	case constants.StateAddHabit, constants.StateEditHabit:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if handled, cmd := m.handleHabitMessages(msg); handled {
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && !m.habitsModel.Filtering() {
		m.errMsg = ""
		switch {
		case key.Matches(km, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(km, m.keys.Tab), key.Matches(km, m.keys.Right):
			m.switchTab(1)
			return m, nil
		case key.Matches(km, m.keys.ShiftTab), key.Matches(km, m.keys.Left):
			m.switchTab(-1)
			return m, nil
		case key.Matches(km, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(km, m.keys.Simulate):
			if _, ok := m.center.Simulate(); !ok {
				m.errMsg = "Add a habit first to simulate a reminder."
			}
			m.refresh()
			return m, nil
		}
		if len(m.reminders) > 0 {
			if action, ok := m.reminderAction(km); ok {
				m.handleReminder(action)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case constants.StateProgress:
		m.progressModel, cmd = m.progressModel.Update(msg)
	case constants.StateCalendar:
		m.calendarModel, cmd = m.calendarModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab(delta int) {
	i := 0
	for j, t := range tabs {
		if t.state == m.state {
			i = j
		}
	}
	next := tabs[(i+delta+len(tabs))%len(tabs)]
	m.state = next.state
	m.store.SetView(next.view)
}

func (m Model) reminderAction(km tea.KeyMsg) (reminder.Action, bool) {
	switch {
	case key.Matches(km, m.keys.ReminderDone):
		return reminder.ActionDone, true
	case key.Matches(km, m.keys.ReminderPostpone):
		return reminder.ActionPostpone, true
	case key.Matches(km, m.keys.ReminderLater):
		return reminder.ActionRemindLater, true
	case key.Matches(km, m.keys.ReminderDismiss):
		return reminder.ActionDismiss, true
	}
	return 0, false
}

// handleReminder applies action to the oldest visible reminder.
func (m *Model) handleReminder(action reminder.Action) {
	n := m.reminders[0]
	if err := m.center.Handle(n.ID, action); err != nil {
		// already expired
		logger.Debug("Reminder action ignored", "habit", n.HabitName, "error", err)
	}
	m.refresh()
}

// handleHabitMessages handles messages from the habits and progress components
func (m *Model) handleHabitMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = newHabitFormModel(m.settings)
		m.editingID = ""
		m.form = NewHabitForm(m.habitForm, "New Habit")
		m.state = constants.StateAddHabit
		return true, m.form.Init()

	case habits.EditHabitMsg:
		m.habitForm = habitFormModelFrom(msg.Habit)
		m.editingID = msg.Habit.ID
		m.form = NewHabitForm(m.habitForm, "Edit Habit")
		m.state = constants.StateEditHabit
		return true, m.form.Init()

	case habits.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = constants.StateConfirmDelete
		return true, nil

	case habits.MarkHabitMsg:
		m.store.MarkHabitDone(msg.ID)
		m.refresh()
		return true, nil

	case habits.PostponeHabitMsg:
		m.store.PostponeHabit(msg.ID)
		m.refresh()
		return true, nil

	case habits.SelectHabitMsg:
		m.store.SelectHabit(msg.ID)
		m.refresh()
		return true, nil
	}
	return false, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveHabitForm(); err != nil {
			// Reopen the form with the entered values so the user can fix them
			m.errMsg = err.Error()
			title := "New Habit"
			if m.editingID != "" {
				title = "Edit Habit"
			}
			m.form = NewHabitForm(m.habitForm, title)
			return m, m.form.Init()
		}
		m.closeForm()
		m.refresh()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.habitForm = nil
	m.editingID = ""
	m.state = constants.StateHabits
}

func (m *Model) saveHabitForm() error {
	st := m.store.State()

	base := models.Habit{}
	if m.editingID != "" {
		existing, ok := st.Habit(m.editingID)
		if !ok {
			return fmt.Errorf("habit no longer exists")
		}
		base = existing
	}

	h, err := m.habitForm.apply(base)
	if err != nil {
		return err
	}
	for _, other := range st.Habits {
		if other.ID != h.ID && strings.EqualFold(other.Name, h.Name) {
			return fmt.Errorf("habit with name %q already exists", h.Name)
		}
	}

	if m.editingID == "" {
		created := m.store.AddHabit(h)
		m.store.SelectHabit(created.ID)
		return nil
	}
	m.store.UpdateHabit(h)
	return nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Confirm):
		m.store.DeleteHabit(m.habitToDeleteID)
		m.habitToDeleteID = ""
		m.state = constants.StateHabits
		m.refresh()
	case key.Matches(km, m.keys.Cancel):
		m.habitToDeleteID = ""
		m.state = constants.StateHabits
	}
	return m, nil
}
