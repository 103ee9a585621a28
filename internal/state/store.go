package state

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
)

// Persister loads and saves the habit collection.
type Persister interface {
	LoadHabits() ([]models.Habit, error)
	SaveHabits([]models.Habit) error
}

// Quarantiner is implemented by persisters that can set an unreadable
// habit collection aside so that the next save does not destroy it.
type Quarantiner interface {
	QuarantineHabits() error
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for new habits and day entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the generator used for new habit IDs.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithPersister attaches the storage the store hydrates from and saves to.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithLogger routes store diagnostics to l instead of the global logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store owns the application state. Dispatch is safe for concurrent use;
// transitions are applied one at a time.
type Store struct {
	mu        sync.Mutex
	state     AppState
	subs      map[int]func(AppState)
	nextSub   int
	now       func() time.Time
	newID     func() string
	persister Persister
	logger    *log.Logger
	saver     *saver
	closeOnce sync.Once

	loadErr   error
	holdSaves bool
}

// NewStore creates a store in the initial state. When a persister is
// attached a background saver is started; call Close to flush it.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state: Initial(),
		subs:  make(map[int]func(AppState)),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.persister != nil {
		s.saver = newSaver(s.persister, s.warn)
		go s.saver.run()
	}
	return s
}

// Hydrate replaces the habits with whatever the persister holds. A read
// failure is logged and leaves the store with no habits. The unreadable
// data is quarantined first when the persister supports it; otherwise
// saving stays disabled so it cannot be overwritten. Hydration does not
// trigger a save. Only a cancelled ctx is returned as an error.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	habits, err := s.persister.LoadHabits()
	if err != nil {
		s.warn("Failed to load habits, starting empty", "error", err)
		habits = nil
		hold := true
		if q, ok := s.persister.(Quarantiner); ok {
			if qerr := q.QuarantineHabits(); qerr != nil {
				s.warn("Failed to set unreadable habits aside, saving disabled", "error", qerr)
			} else {
				hold = false
			}
		} else {
			s.warn("Unreadable habits cannot be set aside, saving disabled")
		}
		s.mu.Lock()
		s.loadErr = err
		s.holdSaves = hold
		s.mu.Unlock()
	}
	s.apply(LoadHabits{Habits: habits}, false)
	return nil
}

// LoadErr returns the error from the last Hydrate, or nil if the stored
// habits were read successfully.
func (s *Store) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// SavesHeld reports whether saving is disabled because unreadable data
// could not be quarantined.
func (s *Store) SavesHeld() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holdSaves
}

// State returns the current snapshot.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every post-transition snapshot.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(AppState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Dispatch applies a and returns the resulting state. Subscribers are
// called before Dispatch returns; habit-changing actions are queued for
// saving.
func (s *Store) Dispatch(a Action) AppState {
	return s.apply(a, AffectsHabits(a))
}

func (s *Store) apply(a Action, persist bool) AppState {
	s.mu.Lock()
	next := Apply(s.state, a, Env{Now: s.now(), NewID: s.newID})
	s.state = next
	subs := make([]func(AppState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	// Queue under the lock so snapshots reach the saver in transition order.
	if persist && s.saver != nil && !s.holdSaves {
		s.saver.schedule(next.Habits)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// AddHabit dispatches AddHabit and returns the created habit.
func (s *Store) AddHabit(h models.Habit) models.Habit {
	next := s.Dispatch(AddHabit{Habit: h})
	return next.Habits[len(next.Habits)-1]
}

func (s *Store) UpdateHabit(h models.Habit) { s.Dispatch(UpdateHabit{Habit: h}) }

func (s *Store) DeleteHabit(id string) { s.Dispatch(DeleteHabit{ID: id}) }

func (s *Store) SetView(v constants.View) { s.Dispatch(SetView{View: v}) }

func (s *Store) SelectHabit(id string) { s.Dispatch(SelectHabit{ID: id}) }

func (s *Store) MarkHabitDone(id string) { s.Dispatch(MarkHabitDone{ID: id}) }

func (s *Store) PostponeHabit(id string) { s.Dispatch(PostponeHabit{ID: id}) }

func (s *Store) LoadHabits(habits []models.Habit) { s.Dispatch(LoadHabits{Habits: habits}) }

// Close writes any pending snapshot and stops the saver. It returns
// ctx.Err() if the flush does not finish in time.
func (s *Store) Close(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	s.closeOnce.Do(func() { close(s.saver.stop) })
	select {
	case <-s.saver.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) warn(msg string, keyvals ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, keyvals...)
		return
	}
	logger.Warn(msg, keyvals...)
}

// saver writes snapshots in the background. Only the newest pending
// snapshot is kept, so a burst of transitions results in one write of the
// final state.
type saver struct {
	mu      sync.Mutex
	pending []models.Habit
	dirty   bool
	wake    chan struct{}
	stop    chan struct{}
	done    chan struct{}
	p       Persister
	warn    func(string, ...interface{})
}

func newSaver(p Persister, warn func(string, ...interface{})) *saver {
	return &saver{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
		p:    p,
		warn: warn,
	}
}

func (w *saver) schedule(habits []models.Habit) {
	w.mu.Lock()
	w.pending = habits
	w.dirty = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *saver) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.flush()
		case <-w.stop:
			w.flush()
			return
		}
	}
}

func (w *saver) flush() {
	w.mu.Lock()
	if !w.dirty {
		w.mu.Unlock()
		return
	}
	habits := w.pending
	w.dirty = false
	w.mu.Unlock()

	if err := w.p.SaveHabits(habits); err != nil {
		w.warn("Failed to save habits", "error", err, "count", len(habits))
	}
}
