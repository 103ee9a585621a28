package state

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/history"
	"github.com/julianstephens/habitlit/internal/models"
)

// AppState is the whole client state. Values are treated as immutable:
// transitions build new slices instead of editing existing ones.
type AppState struct {
	Habits          []models.Habit
	CurrentView     constants.View
	SelectedHabitID string
}

// Initial returns the state a fresh store starts from.
func Initial() AppState {
	return AppState{
		Habits:      []models.Habit{},
		CurrentView: constants.ViewHabits,
	}
}

// Habit looks up a habit by ID.
func (s AppState) Habit(id string) (models.Habit, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Habits[i], true
	}
	return models.Habit{}, false
}

// SelectedHabit resolves the selection against the current habits.
// A selection pointing at a removed habit resolves to nothing.
func (s AppState) SelectedHabit() (models.Habit, bool) {
	if s.SelectedHabitID == "" {
		return models.Habit{}, false
	}
	return s.Habit(s.SelectedHabitID)
}

func (s AppState) indexOf(id string) int {
	return slices.IndexFunc(s.Habits, func(h models.Habit) bool { return h.ID == id })
}

// Env carries the impure inputs of a transition.
type Env struct {
	Now   time.Time
	NewID func() string
}

func (e Env) id() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.New().String()
}

// Apply computes the state that follows st after a. It never modifies st.
// Actions naming an unknown habit ID leave the state unchanged.
func Apply(st AppState, a Action, env Env) AppState {
	switch a := a.(type) {
	case AddHabit:
		h := a.Habit.Clone()
		h.ID = env.id()
		h.IsActive = true
		h.CompletionHistory = []models.CompletionEntry{}
		if h.StartDate.IsZero() {
			h.StartDate = env.Now
		}
		st.Habits = append(slices.Clone(st.Habits), h)

	case UpdateHabit:
		i := st.indexOf(a.Habit.ID)
		if i < 0 {
			return st
		}
		habits := slices.Clone(st.Habits)
		habits[i] = a.Habit.Clone()
		st.Habits = habits

	case DeleteHabit:
		if st.indexOf(a.ID) < 0 {
			return st
		}
		st.Habits = slices.DeleteFunc(slices.Clone(st.Habits), func(h models.Habit) bool {
			return h.ID == a.ID
		})
		if st.SelectedHabitID == a.ID {
			st.SelectedHabitID = ""
		}

	case SetView:
		st.CurrentView = a.View

	case SelectHabit:
		st.SelectedHabitID = a.ID

	case MarkHabitDone:
		return record(st, a.ID, env.Now, models.StatusCompleted)

	case PostponeHabit:
		return record(st, a.ID, env.Now, models.StatusPostponed)

	case LoadHabits:
		seen := make(map[string]bool, len(a.Habits))
		habits := make([]models.Habit, 0, len(a.Habits))
		for _, h := range a.Habits {
			if seen[h.ID] {
				continue
			}
			seen[h.ID] = true
			habits = append(habits, h.Clone())
		}
		st.Habits = habits
	}
	return st
}

func record(st AppState, id string, day time.Time, status models.CompletionStatus) AppState {
	i := st.indexOf(id)
	if i < 0 {
		return st
	}
	habits := slices.Clone(st.Habits)
	h := habits[i]
	h.CompletionHistory = history.Upsert(h.CompletionHistory, day, status)
	habits[i] = h
	st.Habits = habits
	return st
}
