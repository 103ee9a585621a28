package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
)

// HabitAdapter reads and writes the habit list and settings as JSON blobs
// on top of a Provider.
type HabitAdapter struct {
	Provider Provider
}

func NewHabitAdapter(p Provider) *HabitAdapter {
	return &HabitAdapter{Provider: p}
}

// LoadHabits returns the stored habits. A missing blob yields no habits and
// no error; a blob that does not decode is an error.
func (a *HabitAdapter) LoadHabits() ([]models.Habit, error) {
	data, err := a.Provider.Get(constants.HabitsKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var habits []models.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("failed to parse %q blob: %w", constants.HabitsKey, err)
	}
	return habits, nil
}

// QuarantineHabits copies the raw habits blob to the "habits.corrupt" key
// so that a later save cannot destroy it. A different blob already set
// aside is never replaced; that case is an error.
func (a *HabitAdapter) QuarantineHabits() error {
	data, err := a.Provider.Get(constants.HabitsKey)
	if err != nil {
		return fmt.Errorf("failed to read %q blob: %w", constants.HabitsKey, err)
	}

	existing, err := a.Provider.Get(constants.HabitsCorruptKey)
	switch {
	case err == nil:
		if bytes.Equal(existing, data) {
			return nil
		}
		return fmt.Errorf("%q already holds other unreadable data", constants.HabitsCorruptKey)
	case !errors.Is(err, ErrNotFound):
		return err
	}

	if err := a.Provider.Put(constants.HabitsCorruptKey, data); err != nil {
		return fmt.Errorf("failed to set aside %q blob: %w", constants.HabitsKey, err)
	}
	return nil
}

// SaveHabits overwrites the stored habit list.
func (a *HabitAdapter) SaveHabits(habits []models.Habit) error {
	if habits == nil {
		habits = []models.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("failed to serialize habits: %w", err)
	}
	return a.Provider.Put(constants.HabitsKey, data)
}

// LoadSettings returns the stored settings merged over the defaults.
func (a *HabitAdapter) LoadSettings() (models.Settings, error) {
	data, err := a.Provider.Get(constants.SettingsKey)
	if errors.Is(err, ErrNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, err
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to parse %q blob: %w", constants.SettingsKey, err)
	}
	return settings.WithDefaults(), nil
}

func (a *HabitAdapter) SaveSettings(settings models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	return a.Provider.Put(constants.SettingsKey, data)
}
