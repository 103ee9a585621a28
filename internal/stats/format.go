package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

var weekends = []time.Weekday{time.Sunday, time.Saturday}

// DaysText describes a weekday selection in words.
func DaysText(days []time.Weekday) string {
	sorted := slices.Clone(days)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	switch {
	case len(sorted) == 7:
		return "Every day"
	case slices.Equal(sorted, constants.DefaultHabitDays):
		return "Weekdays"
	case slices.Equal(sorted, weekends):
		return "Weekends"
	}

	names := make([]string, len(sorted))
	for i, d := range sorted {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ", ")
}

// FormatReminder renders a stored HH:MM reminder as 12-hour time.
func FormatReminder(reminderTime string) string {
	return utils.FormatTime12h(reminderTime)
}

// Symbol is the one-character marker used for a status in grids and dots.
func Symbol(status models.CompletionStatus) string {
	switch status {
	case models.StatusCompleted:
		return "✓"
	case models.StatusPostponed:
		return "→"
	case models.StatusMissed:
		return "✗"
	default:
		return "·"
	}
}
