package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/reminder"
	"github.com/julianstephens/habitlit/internal/stats"
)

type RemindCmd struct {
	Simulate RemindSimulateCmd `cmd:"" help:"Show a reminder for a random habit."`
	Next     RemindNextCmd     `cmd:"" help:"Show when each habit's next reminder fires."`
}

type RemindSimulateCmd struct {
	Action string `help:"Respond to the reminder: done, postpone or dismiss."`
}

func (c *RemindSimulateCmd) Run(ctx *Context) error {
	center := reminder.NewCenter(ctx.Habits)
	defer center.Close()

	n, ok := center.Simulate()
	if !ok {
		fmt.Println("No habits to remind about.")
		return nil
	}

	fmt.Printf("🔔 Time for %s (%s)\n", n.HabitName, stats.FormatReminder(n.ReminderTime))
	if c.Action == "" {
		return nil
	}

	action, err := parseAction(c.Action)
	if err != nil {
		return err
	}
	if err := center.Handle(n.ID, action); err != nil {
		return err
	}
	fmt.Printf("Reminder handled: %s\n", action)
	return nil
}

type RemindNextCmd struct{}

func (c *RemindNextCmd) Run(ctx *Context) error {
	if !ctx.Settings.RemindersEnabled {
		fmt.Println("Reminders are disabled. Enable them with 'habitlit settings --reminders'.")
		return nil
	}

	habits := ctx.Habits.State().Habits
	center := reminder.NewCenter(ctx.Habits)
	defer center.Close()
	planner := reminder.NewPlanner(center, ctx.Habits, ctx.Location)
	planner.Sync(habits)

	if len(habits) == 0 {
		fmt.Println("No habits to remind about.")
		return nil
	}
	for _, h := range habits {
		next, ok := planner.Next(h.ID)
		when := "not scheduled"
		if ok {
			when = next.Format("Mon " + constants.DateFormat + " 3:04 PM")
		}
		fmt.Printf("  %-24s %s\n", truncate(h.Name, 24), when)
	}
	return nil
}

func parseAction(s string) (reminder.Action, error) {
	switch strings.ToLower(s) {
	case "done":
		return reminder.ActionDone, nil
	case "postpone":
		return reminder.ActionPostpone, nil
	case "dismiss":
		return reminder.ActionDismiss, nil
	}
	return 0, fmt.Errorf("unknown reminder action %q", s)
}
