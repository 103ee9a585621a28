package stats

import (
	"math"
	"time"

	"github.com/julianstephens/habitlit/internal/history"
	"github.com/julianstephens/habitlit/internal/models"
)

// Summary holds per-habit completion counts.
type Summary struct {
	Completed      int
	Postponed      int
	Missed         int
	Total          int // history length, floored at 1
	CompletionRate int // percent of Total
	DaysSinceStart int
}

// CompletionStats summarizes h's history as of now.
func CompletionStats(h models.Habit, now time.Time) Summary {
	s := Summary{
		Completed: history.Count(h.CompletionHistory, models.StatusCompleted),
		Postponed: history.Count(h.CompletionHistory, models.StatusPostponed),
		Missed:    history.Count(h.CompletionHistory, models.StatusMissed),
		Total:     max(len(h.CompletionHistory), 1),
	}
	s.CompletionRate = percent(s.Completed, s.Total)
	s.DaysSinceStart = int(math.Floor(now.Sub(h.StartDate).Hours() / 24))
	return s
}

// ProgressPercent is the share of completed days against the goal. The
// denominator is the smaller of the history length and the goal duration,
// so it can differ from CompletionStats' rate.
func ProgressPercent(h models.Habit) int {
	n := len(h.CompletionHistory)
	if n == 0 {
		return 0
	}
	denom := min(n, h.Duration)
	if denom <= 0 {
		return 0
	}
	return percent(history.Count(h.CompletionHistory, models.StatusCompleted), denom)
}

// CompletedCount returns how many days h was completed.
func CompletedCount(h models.Habit) int {
	return history.Count(h.CompletionHistory, models.StatusCompleted)
}

// Segment is one slice of a habit's progress chart.
type Segment struct {
	Label  string
	Status models.CompletionStatus
	Value  int
}

// ChartSegments splits h's goal into completed, postponed, missed and
// remaining days. Remaining is measured against the floored Total of
// CompletionStats so an empty history still counts one day. Empty segments
// are omitted.
func ChartSegments(h models.Habit) []Segment {
	all := []Segment{
		{Label: "Completed", Status: models.StatusCompleted, Value: history.Count(h.CompletionHistory, models.StatusCompleted)},
		{Label: "Postponed", Status: models.StatusPostponed, Value: history.Count(h.CompletionHistory, models.StatusPostponed)},
		{Label: "Missed", Status: models.StatusMissed, Value: history.Count(h.CompletionHistory, models.StatusMissed)},
		{Label: "Remaining", Status: models.StatusPending, Value: max(0, h.Duration-max(len(h.CompletionHistory), 1))},
	}

	var out []Segment
	for _, seg := range all {
		if seg.Value > 0 {
			out = append(out, seg)
		}
	}
	return out
}

func percent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
