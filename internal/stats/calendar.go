package stats

import (
	"time"

	"github.com/julianstephens/habitlit/internal/history"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// HabitMark is one habit's recorded status on a calendar day.
type HabitMark struct {
	HabitID string
	Name    string
	Status  models.CompletionStatus
}

// CalendarDay is a single dated cell in the month grid.
type CalendarDay struct {
	Date  time.Time
	Marks []HabitMark
}

// Visible splits the marks into at most limit shown entries and a count of
// the rest.
func (d CalendarDay) Visible(limit int) ([]HabitMark, int) {
	if limit < 0 || len(d.Marks) <= limit {
		return d.Marks, 0
	}
	return d.Marks[:limit], len(d.Marks) - limit
}

// Calendar is a month laid out on a Sunday-first grid.
type Calendar struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	Days          []CalendarDay
}

// Weeks chunks the calendar into rows of seven. Blank cells are nil.
func (c Calendar) Weeks() [][]*CalendarDay {
	cells := make([]*CalendarDay, c.LeadingBlanks, c.LeadingBlanks+len(c.Days)+6)
	for i := range c.Days {
		cells = append(cells, &c.Days[i])
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	weeks := make([][]*CalendarDay, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// MonthlyCalendar builds the grid for year/month in loc. Each day lists,
// in habit order, every habit that has an entry for that day.
func MonthlyCalendar(habits []models.Habit, year int, month time.Month, loc *time.Location) Calendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	n := utils.DaysIn(year, month)

	cal := Calendar{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]CalendarDay, n),
	}
	for i := range cal.Days {
		d := first.AddDate(0, 0, i)
		day := CalendarDay{Date: d}
		for _, h := range habits {
			if e, ok := history.Find(h.CompletionHistory, d); ok {
				day.Marks = append(day.Marks, HabitMark{HabitID: h.ID, Name: h.Name, Status: e.Status})
			}
		}
		cal.Days[i] = day
	}
	return cal
}
