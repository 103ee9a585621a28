package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/history"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/stats"
	"github.com/julianstephens/habitlit/internal/utils"
)

const calendarCellWidth = 9

type CalendarCmd struct {
	Month string `help:"Month to show (YYYY-MM, default: current month)."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	now := ctx.Now()
	year, month := now.Year(), now.Month()
	if c.Month != "" {
		t, err := time.ParseInLocation(constants.MonthFormat, c.Month, ctx.Location)
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
		}
		year, month = t.Year(), t.Month()
	}

	habits := ctx.Habits.State().Habits
	cal := stats.MonthlyCalendar(habits, year, month, ctx.Location)
	fmt.Print(renderCalendar(cal, now))

	if len(habits) > 0 {
		fmt.Println()
		for _, h := range habits {
			fmt.Printf("  %-24s %d completed this month\n", truncate(h.Name, 24), monthCompleted(h, cal))
		}
	}
	return nil
}

// renderCalendar draws the month as a plain-text grid. Each cell shows the
// day number, up to MaxCalendarMarkers status symbols and a "+N" overflow.
// Today is bracketed.
func renderCalendar(cal stats.Calendar, now time.Time) string {
	var b strings.Builder
	title := time.Date(cal.Year, cal.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	width := calendarCellWidth * 7
	fmt.Fprintf(&b, "%*s\n", (width+len(title))/2, title)

	for d := time.Sunday; d <= time.Saturday; d++ {
		fmt.Fprintf(&b, "%-*s", calendarCellWidth, d.String()[:3])
	}
	b.WriteString("\n")

	for _, week := range cal.Weeks() {
		for _, day := range week {
			fmt.Fprintf(&b, "%-*s", calendarCellWidth, calendarCell(day, now))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func calendarCell(day *stats.CalendarDay, now time.Time) string {
	if day == nil {
		return ""
	}

	num := fmt.Sprintf("%d", day.Date.Day())
	if utils.SameDay(day.Date, now) {
		num = "[" + num + "]"
	}

	shown, more := day.Visible(constants.MaxCalendarMarkers)
	var marks strings.Builder
	for _, m := range shown {
		marks.WriteString(stats.Symbol(m.Status))
	}
	if more > 0 {
		fmt.Fprintf(&marks, "+%d", more)
	}
	return num + marks.String()
}

func monthCompleted(h models.Habit, cal stats.Calendar) int {
	n := 0
	for _, d := range cal.Days {
		if e, ok := history.Find(h.CompletionHistory, d.Date); ok && e.Status == models.StatusCompleted {
			n++
		}
	}
	return n
}
