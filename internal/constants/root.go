package constants

import "time"

// View identifies which top-level screen is showing.
type View string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habitlit"
	KeyringUser        = "postgres-connection"
	DefaultConfigPath  = "~/.config/habitlit/habitlit.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat is used by calendar navigation (YYYY-MM)
	MonthFormat = "2006-01"

	// Blob keys
	HabitsKey        = "habits"
	SettingsKey      = "settings"
	HabitsCorruptKey = "habits.corrupt" // unreadable habits blob set aside on load

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitlit-"

	// Environment variables
	EnvConfig     = "HABITLIT_CONFIG"
	EnvDebug      = "HABITLIT_DEBUG"
	EnvTimezone   = "HABITLIT_TIMEZONE"
	EnvConnection = "HABITLIT_DB_CONNECTION"

	// Views
	ViewHabits   View = "habits"
	ViewProgress View = "progress"
	ViewCalendar View = "calendar"

	// Habit limits
	MinDuration = 1
	MaxDuration = 365

	// Reminder timings
	ReminderExpiry     = 30 * time.Second
	ReminderSnooze     = 10 * time.Minute
	MaxCalendarMarkers = 3
)

const (
	StateHabits SessionState = iota
	StateProgress
	StateCalendar
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
)
