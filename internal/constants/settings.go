package constants

import "time"

// Default settings values
const (
	DefaultTimezone         = "Local"
	DefaultHabitDuration    = 30
	DefaultReminderTime     = "09:00"
	DefaultRemindersEnabled = true
)

// DefaultHabitDays is the weekday set a new habit starts with (Monday to Friday).
var DefaultHabitDays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}
