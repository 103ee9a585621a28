package models

import (
	"slices"
	"time"
)

// CompletionStatus is the recorded outcome of a habit on a single day
type CompletionStatus string

const (
	StatusCompleted CompletionStatus = "completed"
	StatusPostponed CompletionStatus = "postponed"
	StatusMissed    CompletionStatus = "missed"

	// StatusPending is never stored. It is what a day without an entry displays as.
	StatusPending CompletionStatus = "pending"
)

// Valid reports whether s may be written to a completion history
func (s CompletionStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusPostponed, StatusMissed:
		return true
	}
	return false
}

// CompletionEntry records a habit's status for one calendar day
type CompletionEntry struct {
	Date   time.Time        `json:"date"`
	Status CompletionStatus `json:"status"`
}

// Habit represents a recurring practice to track
type Habit struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Duration          int               `json:"duration"`     // goal length in days
	ReminderTime      string            `json:"reminderTime"` // HH:MM
	SelectedDays      []time.Weekday    `json:"selectedDays"` // 0=Sunday .. 6=Saturday
	StartDate         time.Time         `json:"startDate"`
	IsActive          bool              `json:"isActive"`
	CompletionHistory []CompletionEntry `json:"completionHistory"`
}

// Clone returns a copy of h that shares no slices with it
func (h Habit) Clone() Habit {
	h.SelectedDays = slices.Clone(h.SelectedDays)
	h.CompletionHistory = slices.Clone(h.CompletionHistory)
	return h
}

// ScheduledOn reports whether the habit is planned for the given weekday
func (h Habit) ScheduledOn(wd time.Weekday) bool {
	return slices.Contains(h.SelectedDays, wd)
}
