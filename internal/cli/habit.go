package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/history"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/stats"
	"github.com/julianstephens/habitlit/internal/utils"
	"github.com/julianstephens/habitlit/internal/validation"
)

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	Edit     HabitEditCmd     `cmd:"" help:"Edit an existing habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit and its history."`
	List     HabitListCmd     `cmd:"" help:"List habits."`
	Done     HabitDoneCmd     `cmd:"" help:"Mark a habit completed for today."`
	Postpone HabitPostponeCmd `cmd:"" help:"Postpone a habit for today."`
	Show     HabitShowCmd     `cmd:"" help:"Show a habit's progress in detail."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Days     string `help:"Days to track: comma-separated names or numbers (0=Sunday), 'weekdays' or 'weekends'. Defaults to settings."`
	Duration int    `help:"Goal length in days. Defaults to settings."`
	Reminder string `help:"Reminder time (HH:MM). Defaults to settings."`
	Start    string `help:"Start date (YYYY-MM-DD, default: today)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habit := models.Habit{
		Name:         strings.TrimSpace(c.Name),
		Duration:     ctx.Settings.DefaultDuration,
		ReminderTime: ctx.Settings.DefaultReminderTime,
		SelectedDays: ctx.Settings.DefaultDays,
	}
	if c.Duration != 0 {
		habit.Duration = c.Duration
	}
	if c.Reminder != "" {
		habit.ReminderTime = c.Reminder
	}
	if c.Days != "" {
		days, err := utils.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		habit.SelectedDays = days
	}
	if c.Start != "" {
		start, err := parseStartDate(c.Start, ctx)
		if err != nil {
			return err
		}
		habit.StartDate = start
	}

	if err := validation.ValidateHabit(habit); err != nil {
		return err
	}
	if err := checkNameAvailable(ctx, habit.Name, ""); err != nil {
		return err
	}

	created := ctx.Habits.AddHabit(habit)
	fmt.Printf("Added habit: %s (%s)\n", created.Name, created.ID)
	return nil
}

type HabitEditCmd struct {
	Habit    string  `arg:"" help:"Habit id or name."`
	Name     *string `help:"New name."`
	Days     *string `help:"Days to track."`
	Duration *int    `help:"Goal length in days."`
	Reminder *string `help:"Reminder time (HH:MM)."`
	Active   *bool   `help:"Whether the habit is active."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if c.Name != nil {
		habit.Name = strings.TrimSpace(*c.Name)
	}
	if c.Days != nil {
		days, err := utils.ParseWeekdays(*c.Days)
		if err != nil {
			return err
		}
		habit.SelectedDays = days
	}
	if c.Duration != nil {
		habit.Duration = *c.Duration
	}
	if c.Reminder != nil {
		habit.ReminderTime = *c.Reminder
	}
	if c.Active != nil {
		habit.IsActive = *c.Active
	}

	if err := validation.ValidateHabit(habit); err != nil {
		return err
	}
	if err := checkNameAvailable(ctx, habit.Name, habit.ID); err != nil {
		return err
	}

	ctx.Habits.UpdateHabit(habit)
	fmt.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirm(fmt.Sprintf("Delete %q and its %d history entries?", habit.Name, len(habit.CompletionHistory)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.Habits.DeleteHabit(habit.ID)
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct {
	Active bool `help:"Only show active habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits := ctx.Habits.State().Habits
	now := ctx.Now()

	shown := 0
	for _, h := range habits {
		if c.Active && !h.IsActive {
			continue
		}
		if shown == 0 {
			fmt.Printf("%-24s %-16s %-9s %-8s %s\n", "NAME", "DAYS", "REMINDER", "PROGRESS", "TODAY")
		}
		shown++

		name := h.Name
		if !h.IsActive {
			name += " (paused)"
		}
		today := "-"
		if h.ScheduledOn(now.Weekday()) {
			today = string(history.StatusOn(h.CompletionHistory, now))
		}
		fmt.Printf("%-24s %-16s %-9s %7d%% %s\n",
			truncate(name, 24),
			truncate(stats.DaysText(h.SelectedDays), 16),
			stats.FormatReminder(h.ReminderTime),
			stats.ProgressPercent(h),
			today,
		)
	}

	if shown == 0 {
		fmt.Println("No habits found. Add one with 'habitlit habit add'.")
	}
	return nil
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	ctx.Habits.MarkHabitDone(habit.ID)
	fmt.Printf("✓ Marked %q done for %s\n", habit.Name, utils.DayKey(ctx.Now()))
	return nil
}

type HabitPostponeCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitPostponeCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	ctx.Habits.PostponeHabit(habit.ID)
	fmt.Printf("→ Postponed %q for %s\n", habit.Name, utils.DayKey(ctx.Now()))
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	now := ctx.Now()
	summary := stats.CompletionStats(habit, now)

	fmt.Printf("%s\n", habit.Name)
	fmt.Printf("  ID:          %s\n", habit.ID)
	fmt.Printf("  Days:        %s\n", stats.DaysText(habit.SelectedDays))
	fmt.Printf("  Reminder:    %s\n", stats.FormatReminder(habit.ReminderTime))
	fmt.Printf("  Goal:        %d days\n", habit.Duration)
	fmt.Printf("  Started:     %s (%d days ago)\n", habit.StartDate.In(ctx.Location).Format(constants.DateFormat), summary.DaysSinceStart)
	fmt.Printf("  Active:      %v\n", habit.IsActive)
	fmt.Println()
	fmt.Printf("  Progress:    %d%% (%d of %d days completed)\n", stats.ProgressPercent(habit), summary.Completed, habit.Duration)
	fmt.Printf("  Completion:  %d%% of recorded days\n", summary.CompletionRate)
	fmt.Printf("  Streak:      %d\n", stats.CurrentStreak(habit, now))
	fmt.Println()
	fmt.Printf("  This week:   %s\n", weekLine(habit, now))
	fmt.Println()
	for _, seg := range stats.ChartSegments(habit) {
		fmt.Printf("  %-10s %3d\n", seg.Label+":", seg.Value)
	}
	return nil
}

func checkNameAvailable(ctx *Context, name, selfID string) error {
	for _, h := range ctx.Habits.State().Habits {
		if h.ID != selfID && strings.EqualFold(h.Name, name) {
			return fmt.Errorf("habit with name %q already exists", name)
		}
	}
	return nil
}

func parseStartDate(s string, ctx *Context) (time.Time, error) {
	start, err := utils.ParseDateInLocation(s, ctx.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", s)
	}
	if start.After(utils.StartOfDay(ctx.Now())) {
		return time.Time{}, fmt.Errorf("start date %s is in the future", s)
	}
	return start, nil
}

// weekLine renders Sunday through Saturday as "Su✓ Mo· ...". Unscheduled
// days show a blank marker.
func weekLine(h models.Habit, now time.Time) string {
	var b strings.Builder
	for i, d := range stats.WeeklyProgress(h, now) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.Date.Weekday().String()[:2])
		if d.Scheduled || d.Status != models.StatusPending {
			b.WriteString(stats.Symbol(d.Status))
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
