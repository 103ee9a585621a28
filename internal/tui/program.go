package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/reminder"
	"github.com/julianstephens/habitlit/internal/state"
)

// Run starts the interactive program and blocks until it exits. When
// reminders are enabled a planner fires them at each habit's reminder time
// for as long as the program runs.
func Run(store *state.Store, settings models.Settings, loc *time.Location) error {
	var p *tea.Program

	// Center callbacks can run inside Update, so never block on Send.
	center := reminder.NewCenter(store, reminder.OnChange(func([]reminder.Notification) {
		go p.Send(remindersChangedMsg{})
	}))
	defer center.Close()

	p = tea.NewProgram(NewModel(store, center, settings, loc), tea.WithAltScreen())

	if settings.RemindersEnabled {
		planner := reminder.NewPlanner(center, store, loc)
		planner.Sync(store.State().Habits)
		unsubscribe := store.Subscribe(func(st state.AppState) {
			planner.Sync(st.Habits)
		})
		defer unsubscribe()
		planner.Start()
		defer planner.Stop()
		logger.Debug("Reminder planner started")
	}

	_, err := p.Run()
	return err
}
