// Package stats derives progress views from habits. Every function is pure:
// it reads its arguments and returns new values.
package stats

import (
	"time"

	"github.com/julianstephens/habitlit/internal/history"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// DayStatus is the display status of one habit on one day.
type DayStatus struct {
	Date      time.Time
	Scheduled bool
	Status    models.CompletionStatus
}

// WeeklyProgress returns seven entries, Sunday through Saturday, for the
// week containing ref. Days without an entry are pending. Day boundaries
// follow ref's location.
func WeeklyProgress(h models.Habit, ref time.Time) []DayStatus {
	start := utils.StartOfWeek(ref)
	week := make([]DayStatus, 7)
	for i := range week {
		d := start.AddDate(0, 0, i)
		week[i] = DayStatus{
			Date:      d,
			Scheduled: h.ScheduledOn(d.Weekday()),
			Status:    history.StatusOn(h.CompletionHistory, d),
		}
	}
	return week
}

// CurrentStreak counts consecutive scheduled days, ending at ref, on which
// the habit was completed. A pending ref day does not break the streak.
func CurrentStreak(h models.Habit, ref time.Time) int {
	if len(h.CompletionHistory) == 0 || len(h.SelectedDays) == 0 {
		return 0
	}

	earliest := h.StartDate
	for _, e := range h.CompletionHistory {
		if earliest.IsZero() || e.Date.Before(earliest) {
			earliest = e.Date
		}
	}
	floor := utils.StartOfDay(earliest.In(ref.Location()))

	streak := 0
	today := utils.StartOfDay(ref)
	for d := today; !d.Before(floor); d = d.AddDate(0, 0, -1) {
		if !h.ScheduledOn(d.Weekday()) {
			continue
		}
		switch history.StatusOn(h.CompletionHistory, d) {
		case models.StatusCompleted:
			streak++
		case models.StatusPending:
			if d.Equal(today) {
				continue
			}
			return streak
		default:
			return streak
		}
	}
	return streak
}
