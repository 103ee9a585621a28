package stats

import (
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 12, 0, 0, 0, time.UTC)
}

func entry(month time.Month, day int, status models.CompletionStatus) models.CompletionEntry {
	return models.CompletionEntry{Date: date(month, day), Status: status}
}

func everyDay() []time.Weekday {
	return []time.Weekday{0, 1, 2, 3, 4, 5, 6}
}

func TestWeeklyProgress(t *testing.T) {
	h := models.Habit{
		SelectedDays: []time.Weekday{time.Monday, time.Tuesday},
		CompletionHistory: []models.CompletionEntry{
			entry(time.March, 3, models.StatusCompleted), // previous week
			entry(time.March, 11, models.StatusCompleted),
			entry(time.March, 12, models.StatusPostponed),
		},
	}

	week := WeeklyProgress(h, date(time.March, 13))
	if len(week) != 7 {
		t.Fatalf("WeeklyProgress() returned %d days, want 7", len(week))
	}

	want := []models.CompletionStatus{
		models.StatusPending,
		models.StatusCompleted,
		models.StatusPostponed,
		models.StatusPending,
		models.StatusPending,
		models.StatusPending,
		models.StatusPending,
	}
	for i, d := range week {
		if d.Date.Weekday() != time.Weekday(i) {
			t.Errorf("day %d is %s, want %s", i, d.Date.Weekday(), time.Weekday(i))
		}
		if d.Status != want[i] {
			t.Errorf("day %d status = %s, want %s", i, d.Status, want[i])
		}
	}
	if !week[1].Scheduled || week[3].Scheduled {
		t.Errorf("scheduled flags do not follow selected days: %+v", week)
	}
	if week[0].Date.Day() != 10 {
		t.Errorf("week should start on Sunday March 10, got %v", week[0].Date)
	}
}

func TestWeeklyProgressEmptyHistory(t *testing.T) {
	week := WeeklyProgress(models.Habit{}, date(time.June, 1))
	if len(week) != 7 {
		t.Fatalf("want 7 days, got %d", len(week))
	}
	for _, d := range week {
		if d.Status != models.StatusPending {
			t.Errorf("empty history should be all pending, got %s", d.Status)
		}
	}
}

func TestMonthlyCalendar(t *testing.T) {
	habits := []models.Habit{
		{
			ID:   "a",
			Name: "A",
			CompletionHistory: []models.CompletionEntry{
				entry(time.March, 1, models.StatusCompleted),
				entry(time.March, 15, models.StatusMissed),
				entry(time.April, 1, models.StatusCompleted),
			},
		},
		{
			ID:                "b",
			Name:              "B",
			CompletionHistory: []models.CompletionEntry{entry(time.March, 1, models.StatusPostponed)},
		},
	}

	cal := MonthlyCalendar(habits, 2024, time.March, time.UTC)
	if cal.LeadingBlanks != 5 {
		t.Errorf("LeadingBlanks = %d, want 5 (March 1 2024 is a Friday)", cal.LeadingBlanks)
	}
	if len(cal.Days) != 31 {
		t.Fatalf("len(Days) = %d, want 31", len(cal.Days))
	}

	first := cal.Days[0].Marks
	if len(first) != 2 || first[0].HabitID != "a" || first[1].Status != models.StatusPostponed {
		t.Errorf("March 1 marks = %+v", first)
	}
	if got := cal.Days[14].Marks; len(got) != 1 || got[0].Status != models.StatusMissed {
		t.Errorf("March 15 marks = %+v", got)
	}
	if got := cal.Days[1].Marks; len(got) != 0 {
		t.Errorf("March 2 should have no marks, got %+v", got)
	}

	weeks := cal.Weeks()
	if len(weeks) != 6 {
		t.Fatalf("len(Weeks) = %d, want 6", len(weeks))
	}
	if weeks[0][4] != nil || weeks[0][5] == nil || weeks[0][5].Date.Day() != 1 {
		t.Errorf("first row should have 5 blanks before the 1st")
	}
}

func TestCalendarDayVisible(t *testing.T) {
	d := CalendarDay{Marks: make([]HabitMark, 5)}
	shown, more := d.Visible(3)
	if len(shown) != 3 || more != 2 {
		t.Errorf("Visible(3) = %d shown, %d more; want 3, 2", len(shown), more)
	}

	shown, more = d.Visible(10)
	if len(shown) != 5 || more != 0 {
		t.Errorf("Visible(10) = %d shown, %d more; want 5, 0", len(shown), more)
	}
}

func TestCompletionStatsAndProgressDenominators(t *testing.T) {
	var hist []models.CompletionEntry
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		status := models.StatusCompleted
		if i%2 == 1 {
			status = models.StatusPostponed
		}
		hist = append(hist, models.CompletionEntry{Date: start.AddDate(0, 0, i), Status: status})
	}
	h := models.Habit{Duration: 30, StartDate: start, CompletionHistory: hist}

	s := CompletionStats(h, start.Add(36*time.Hour))
	if s.Completed != 20 || s.Postponed != 20 || s.Missed != 0 {
		t.Errorf("counts = %+v", s)
	}
	if s.Total != 40 {
		t.Errorf("Total = %d, want 40", s.Total)
	}
	if s.CompletionRate != 50 {
		t.Errorf("CompletionRate = %d, want 50", s.CompletionRate)
	}
	if s.DaysSinceStart != 1 {
		t.Errorf("DaysSinceStart = %d, want 1", s.DaysSinceStart)
	}
	if got := ProgressPercent(h); got != 67 {
		t.Errorf("ProgressPercent() = %d, want 67", got)
	}
}

func TestCompletionStatsEmptyHistory(t *testing.T) {
	h := models.Habit{Duration: 30, StartDate: date(time.May, 1)}
	s := CompletionStats(h, date(time.May, 11))
	if s.Total != 1 || s.CompletionRate != 0 {
		t.Errorf("empty history stats = %+v, want Total 1 and rate 0", s)
	}
	if s.DaysSinceStart != 10 {
		t.Errorf("DaysSinceStart = %d, want 10", s.DaysSinceStart)
	}
	if got := ProgressPercent(h); got != 0 {
		t.Errorf("ProgressPercent() = %d, want 0", got)
	}
}

func TestProgressPercentShortHistory(t *testing.T) {
	h := models.Habit{
		Duration: 30,
		CompletionHistory: []models.CompletionEntry{
			entry(time.May, 1, models.StatusCompleted),
			entry(time.May, 2, models.StatusCompleted),
			entry(time.May, 3, models.StatusMissed),
		},
	}
	// min(3, 30) = 3 -> 2/3
	if got := ProgressPercent(h); got != 67 {
		t.Errorf("ProgressPercent() = %d, want 67", got)
	}
}

func TestChartSegments(t *testing.T) {
	h := models.Habit{
		Duration: 10,
		CompletionHistory: []models.CompletionEntry{
			entry(time.May, 1, models.StatusCompleted),
			entry(time.May, 2, models.StatusCompleted),
			entry(time.May, 3, models.StatusCompleted),
			entry(time.May, 4, models.StatusMissed),
		},
	}
	segs := ChartSegments(h)
	if len(segs) != 3 {
		t.Fatalf("ChartSegments() = %+v, want 3 segments", segs)
	}
	if segs[0].Label != "Completed" || segs[0].Value != 3 {
		t.Errorf("first segment = %+v", segs[0])
	}
	if segs[2].Label != "Remaining" || segs[2].Value != 6 {
		t.Errorf("remaining segment = %+v", segs[2])
	}

	h.Duration = 2
	for _, seg := range ChartSegments(h) {
		if seg.Label == "Remaining" {
			t.Errorf("remaining should be dropped when history exceeds duration")
		}
	}

	empty := ChartSegments(models.Habit{Duration: 30})
	if len(empty) != 1 || empty[0].Label != "Remaining" || empty[0].Value != 29 {
		t.Errorf("empty history segments = %+v, want only Remaining 29", empty)
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name string
		days []time.Weekday
		hist []models.CompletionEntry
		ref  time.Time
		want int
	}{
		{
			name: "no history",
			days: everyDay(),
			ref:  date(time.March, 13),
			want: 0,
		},
		{
			name: "pending today does not break",
			days: everyDay(),
			hist: []models.CompletionEntry{
				entry(time.March, 11, models.StatusCompleted),
				entry(time.March, 12, models.StatusCompleted),
			},
			ref:  date(time.March, 13),
			want: 2,
		},
		{
			name: "postponed day ends the streak",
			days: everyDay(),
			hist: []models.CompletionEntry{
				entry(time.March, 10, models.StatusCompleted),
				entry(time.March, 11, models.StatusCompleted),
				entry(time.March, 12, models.StatusPostponed),
				entry(time.March, 13, models.StatusCompleted),
			},
			ref:  date(time.March, 13),
			want: 1,
		},
		{
			name: "unscheduled days are skipped",
			days: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			hist: []models.CompletionEntry{
				entry(time.March, 4, models.StatusCompleted),
				entry(time.March, 6, models.StatusCompleted),
				entry(time.March, 8, models.StatusCompleted),
				entry(time.March, 11, models.StatusCompleted),
			},
			ref:  date(time.March, 12),
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := models.Habit{SelectedDays: tt.days, CompletionHistory: tt.hist}
			if got := CurrentStreak(h, tt.ref); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysText(t *testing.T) {
	tests := []struct {
		days []time.Weekday
		want string
	}{
		{everyDay(), "Every day"},
		{[]time.Weekday{5, 4, 3, 2, 1}, "Weekdays"},
		{[]time.Weekday{6, 0}, "Weekends"},
		{[]time.Weekday{3, 1}, "Mon, Wed"},
	}
	for _, tt := range tests {
		if got := DaysText(tt.days); got != tt.want {
			t.Errorf("DaysText(%v) = %q, want %q", tt.days, got, tt.want)
		}
	}
}
