// Package reminder simulates habit reminder notifications inside the
// process. Timers go through an injected Scheduler so tests can drive them.
package reminder

import (
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/state"
)

// ErrUnknownNotification is returned when acting on a notification that
// expired or was already handled.
var ErrUnknownNotification = errors.New("notification not found")

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Habits is the slice of the habit store the center needs.
type Habits interface {
	State() state.AppState
	MarkHabitDone(id string)
	PostponeHabit(id string)
}

// Action is a user response to a notification.
type Action int

const (
	ActionDone Action = iota
	ActionPostpone
	ActionRemindLater
	ActionDismiss
)

func (a Action) String() string {
	switch a {
	case ActionDone:
		return "done"
	case ActionPostpone:
		return "postpone"
	case ActionRemindLater:
		return "remind later"
	case ActionDismiss:
		return "dismiss"
	}
	return "unknown"
}

// Notification is an on-screen reminder for one habit.
type Notification struct {
	ID           string
	HabitID      string
	HabitName    string
	ReminderTime string
	CreatedAt    time.Time
}

type active struct {
	Notification
	expiry Timer
}

// Center tracks active notifications and turns user responses into store
// actions.
type Center struct {
	mu       sync.Mutex
	habits   Habits
	sched    Scheduler
	now      func() time.Time
	pick     func(n int) int
	expiry   time.Duration
	snooze   time.Duration
	active   []active
	pending  []Timer
	onChange func([]Notification)
	closed   bool
}

// CenterOption configures a Center.
type CenterOption func(*Center)

func WithScheduler(s Scheduler) CenterOption { return func(c *Center) { c.sched = s } }

func WithClock(now func() time.Time) CenterOption { return func(c *Center) { c.now = now } }

func WithPicker(pick func(n int) int) CenterOption {
	return func(c *Center) { c.pick = pick }
}

// OnChange registers fn to receive the active list whenever it changes.
// fn runs without the center's lock held.
func OnChange(fn func([]Notification)) CenterOption {
	return func(c *Center) { c.onChange = fn }
}

func NewCenter(habits Habits, opts ...CenterOption) *Center {
	c := &Center{
		habits: habits,
		sched:  realScheduler{},
		now:    time.Now,
		pick:   rand.IntN,
		expiry: constants.ReminderExpiry,
		snooze: constants.ReminderSnooze,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify shows a reminder for h. It disappears on its own after the expiry
// period unless handled first.
func (c *Center) Notify(h models.Habit) Notification {
	n := Notification{
		ID:           uuid.New().String(),
		HabitID:      h.ID,
		HabitName:    h.Name,
		ReminderTime: h.ReminderTime,
		CreatedAt:    c.now(),
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return n
	}
	timer := c.sched.AfterFunc(c.expiry, func() {
		if c.remove(n.ID) {
			logger.Debug("Reminder expired", "habit", n.HabitName)
			c.changed()
		}
	})
	c.active = append(c.active, active{Notification: n, expiry: timer})
	c.mu.Unlock()

	logger.Debug("Reminder shown", "habit", h.Name)
	c.changed()
	return n
}

// Simulate shows a reminder for a randomly chosen habit. It reports false
// when there are no habits.
func (c *Center) Simulate() (Notification, bool) {
	habits := c.habits.State().Habits
	if len(habits) == 0 {
		return Notification{}, false
	}
	return c.Notify(habits[c.pick(len(habits))]), true
}

// Handle applies action to the notification with id and removes it.
func (c *Center) Handle(id string, action Action) error {
	c.mu.Lock()
	i := slices.IndexFunc(c.active, func(a active) bool { return a.ID == id })
	if i < 0 {
		c.mu.Unlock()
		return ErrUnknownNotification
	}
	n := c.active[i]
	n.expiry.Stop()
	c.active = slices.Delete(c.active, i, i+1)
	c.mu.Unlock()

	switch action {
	case ActionDone:
		c.habits.MarkHabitDone(n.HabitID)
	case ActionPostpone:
		c.habits.PostponeHabit(n.HabitID)
	case ActionRemindLater:
		c.remindLater(n.HabitID)
	}
	logger.Debug("Reminder handled", "habit", n.HabitName, "action", action)
	c.changed()
	return nil
}

func (c *Center) remindLater(habitID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pending = append(c.pending, c.sched.AfterFunc(c.snooze, func() {
		// The habit may have been deleted while snoozed.
		if h, ok := c.habits.State().Habit(habitID); ok {
			c.Notify(h)
		}
	}))
}

// Active returns the notifications currently showing, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.active))
	for i, a := range c.active {
		out[i] = a.Notification
	}
	return out
}

// Close cancels every timer. Later Notify calls are ignored.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for _, a := range c.active {
		a.expiry.Stop()
	}
	for _, t := range c.pending {
		t.Stop()
	}
	c.active = nil
	c.pending = nil
}

func (c *Center) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.active, func(a active) bool { return a.ID == id })
	if i < 0 {
		return false
	}
	c.active = slices.Delete(c.active, i, i+1)
	return true
}

func (c *Center) changed() {
	if c.onChange != nil {
		c.onChange(c.Active())
	}
}
