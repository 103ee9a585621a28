package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/validation"
)

// HabitFormModel holds the fields bound to the add/edit form.
type HabitFormModel struct {
	Name         string
	Duration     string
	ReminderTime string
	Days         []time.Weekday
}

// newHabitFormModel prefills the form from settings.
func newHabitFormModel(s models.Settings) *HabitFormModel {
	return &HabitFormModel{
		Duration:     strconv.Itoa(s.DefaultDuration),
		ReminderTime: s.DefaultReminderTime,
		Days:         slices.Clone(s.DefaultDays),
	}
}

func habitFormModelFrom(h models.Habit) *HabitFormModel {
	return &HabitFormModel{
		Name:         h.Name,
		Duration:     strconv.Itoa(h.Duration),
		ReminderTime: h.ReminderTime,
		Days:         slices.Clone(h.SelectedDays),
	}
}

// apply copies the form values onto h.
func (fm *HabitFormModel) apply(h models.Habit) (models.Habit, error) {
	duration, err := strconv.Atoi(strings.TrimSpace(fm.Duration))
	if err != nil {
		return h, fmt.Errorf("duration must be a number")
	}
	h.Name = strings.TrimSpace(fm.Name)
	h.Duration = duration
	h.ReminderTime = strings.TrimSpace(fm.ReminderTime)
	h.SelectedDays = slices.Clone(fm.Days)
	slices.Sort(h.SelectedDays)
	return h, validation.ValidateHabit(h)
}

// NewHabitForm creates the form for adding or editing a habit
func NewHabitForm(fm *HabitFormModel, title string) *huh.Form {
	var dayOptions []huh.Option[time.Weekday]
	for d := time.Sunday; d <= time.Saturday; d++ {
		dayOptions = append(dayOptions, huh.NewOption(d.String(), d).Selected(slices.Contains(fm.Days, d)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Habit name").
				Value(&fm.Name).
				Validate(validation.ValidateName),
			huh.NewInput().
				Title("Duration (days)").
				Value(&fm.Duration).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("must be a number")
					}
					return validation.ValidateDuration(n)
				}),
			huh.NewInput().
				Title("Reminder (HH:MM)").
				Value(&fm.ReminderTime).
				Validate(validation.ValidateReminderTime),
			huh.NewMultiSelect[time.Weekday]().
				Title("Days").
				Options(dayOptions...).
				Value(&fm.Days).
				Validate(validation.ValidateDays),
		),
	).WithTheme(huh.ThemeDracula())
}
