package models

import (
	"slices"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
)

// Settings represents application-wide settings
type Settings struct {
	Timezone            string         `json:"timezone"`            // IANA timezone name, or "Local" for the system timezone
	DefaultDuration     int            `json:"defaultDuration"`     // duration prefilled in the habit form
	DefaultReminderTime string         `json:"defaultReminderTime"` // reminder prefilled in the habit form, HH:MM
	DefaultDays         []time.Weekday `json:"defaultDays"`         // weekdays prefilled in the habit form
	RemindersEnabled    bool           `json:"remindersEnabled"`    // whether the reminder planner runs inside the TUI
}

// DefaultSettings returns the settings used when none have been saved yet
func DefaultSettings() Settings {
	return Settings{
		Timezone:            constants.DefaultTimezone,
		DefaultDuration:     constants.DefaultHabitDuration,
		DefaultReminderTime: constants.DefaultReminderTime,
		DefaultDays:         slices.Clone(constants.DefaultHabitDays),
		RemindersEnabled:    constants.DefaultRemindersEnabled,
	}
}

// WithDefaults fills zero-valued fields from DefaultSettings
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.Timezone == "" {
		s.Timezone = d.Timezone
	}
	if s.DefaultDuration == 0 {
		s.DefaultDuration = d.DefaultDuration
	}
	if s.DefaultReminderTime == "" {
		s.DefaultReminderTime = d.DefaultReminderTime
	}
	if len(s.DefaultDays) == 0 {
		s.DefaultDays = d.DefaultDays
	}
	return s
}
