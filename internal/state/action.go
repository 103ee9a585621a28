package state

import (
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
)

// Action is a state transition request handled by Apply.
type Action interface {
	isAction()
}

// AddHabit creates a habit from the given fields. The ID, IsActive flag and
// completion history of Habit are ignored.
type AddHabit struct {
	Habit models.Habit
}

// UpdateHabit replaces the habit with the same ID.
type UpdateHabit struct {
	Habit models.Habit
}

// DeleteHabit removes the habit with ID.
type DeleteHabit struct {
	ID string
}

// SetView switches the current view.
type SetView struct {
	View constants.View
}

// SelectHabit points the selection at ID. An empty ID clears it.
type SelectHabit struct {
	ID string
}

// MarkHabitDone records today as completed for ID.
type MarkHabitDone struct {
	ID string
}

// PostponeHabit records today as postponed for ID.
type PostponeHabit struct {
	ID string
}

// LoadHabits replaces the whole habit collection, used for hydration.
type LoadHabits struct {
	Habits []models.Habit
}

func (AddHabit) isAction()      {}
func (UpdateHabit) isAction()   {}
func (DeleteHabit) isAction()   {}
func (SetView) isAction()       {}
func (SelectHabit) isAction()   {}
func (MarkHabitDone) isAction() {}
func (PostponeHabit) isAction() {}
func (LoadHabits) isAction()    {}

// AffectsHabits reports whether a changes the habit collection and therefore
// needs to be persisted.
func AffectsHabits(a Action) bool {
	switch a.(type) {
	case AddHabit, UpdateHabit, DeleteHabit, MarkHabitDone, PostponeHabit, LoadHabits:
		return true
	}
	return false
}
