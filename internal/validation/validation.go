package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

var (
	ErrEmptyName       = errors.New("habit name cannot be empty")
	ErrNoDays          = errors.New("select at least one day")
	ErrDurationRange   = fmt.Errorf("duration must be between %d and %d days", constants.MinDuration, constants.MaxDuration)
	ErrInvalidReminder = errors.New("invalid time format, use HH:MM")
)

// ValidateName rejects blank names
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ValidateDuration checks the goal length in days
func ValidateDuration(days int) error {
	if days < constants.MinDuration || days > constants.MaxDuration {
		return ErrDurationRange
	}
	return nil
}

// ValidateReminderTime checks an HH:MM wall-clock time
func ValidateReminderTime(s string) error {
	if _, err := utils.ParseTime(s); err != nil {
		return ErrInvalidReminder
	}
	return nil
}

// ValidateDays requires a non-empty set of real weekdays
func ValidateDays(days []time.Weekday) error {
	if len(days) == 0 {
		return ErrNoDays
	}
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday %d", d)
		}
	}
	return nil
}

// ValidateHabit runs every field check and joins the failures
func ValidateHabit(h models.Habit) error {
	return errors.Join(
		ValidateName(h.Name),
		ValidateDuration(h.Duration),
		ValidateReminderTime(h.ReminderTime),
		ValidateDays(h.SelectedDays),
	)
}

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateID     ConflictType = "duplicate_id"
	ConflictDuplicateName   ConflictType = "duplicate_name"
	ConflictInvalidHabit    ConflictType = "invalid_habit"
	ConflictDuplicateDay    ConflictType = "duplicate_day"
	ConflictInvalidStatus   ConflictType = "invalid_status"
	ConflictFutureStartDate ConflictType = "future_start_date"
)

// Conflict represents a detected problem in stored habit data
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []string
	Date        string // YYYY-MM-DD, when the conflict concerns one day
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks a stored habit collection for integrity problems
type Validator struct {
	now func() time.Time
}

// New creates a new Validator
func New() *Validator {
	return &Validator{now: time.Now}
}

// ValidateHabits reports duplicate identities, invalid fields, and
// histories holding more than one entry for a day.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	var result ValidationResult
	ids := make(map[string]bool)
	names := make(map[string]string)
	now := v.now()

	for _, h := range habits {
		if ids[h.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("habit id %s is used more than once", h.ID),
				HabitIDs:    []string{h.ID},
			})
		}
		ids[h.ID] = true

		key := strings.ToLower(strings.TrimSpace(h.Name))
		if other, ok := names[key]; ok && key != "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateName,
				Description: fmt.Sprintf("habits %s and %s share the name %q", other, h.ID, h.Name),
				HabitIDs:    []string{other, h.ID},
			})
		}
		names[key] = h.ID

		if err := ValidateHabit(h); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidHabit,
				Description: fmt.Sprintf("habit %q: %s", h.Name, strings.ReplaceAll(err.Error(), "\n", "; ")),
				HabitIDs:    []string{h.ID},
			})
		}

		if h.StartDate.After(now) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureStartDate,
				Description: fmt.Sprintf("habit %q starts in the future (%s)", h.Name, h.StartDate.Format(constants.DateFormat)),
				HabitIDs:    []string{h.ID},
			})
		}

		days := make(map[string]bool)
		for _, e := range h.CompletionHistory {
			day := utils.DayKey(e.Date)
			if days[day] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateDay,
					Description: fmt.Sprintf("habit %q has more than one entry on %s", h.Name, day),
					HabitIDs:    []string{h.ID},
					Date:        day,
				})
			}
			days[day] = true

			if !e.Status.Valid() {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidStatus,
					Description: fmt.Sprintf("habit %q has unknown status %q on %s", h.Name, e.Status, day),
					HabitIDs:    []string{h.ID},
					Date:        day,
				})
			}
		}
	}

	return result
}
