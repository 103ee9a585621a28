package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/backup"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/keyring"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/state"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/utils"
)

// KeyringConfig selects the connection string stored in the OS keyring.
const KeyringConfig = "keyring"

var ErrHabitNotFound = errors.New("habit not found")

type Context struct {
	Store    storage.Provider
	Adapter  *storage.HabitAdapter
	Habits   *state.Store
	Settings models.Settings
	Location *time.Location
}

// NewContext wraps a provider. Open must be called before any command
// that reads habits.
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:    store,
		Adapter:  storage.NewHabitAdapter(store),
		Location: time.Local,
	}
}

// OpenStore picks a storage backend for config. PostgreSQL connection
// strings must not embed a password; credentials come from the keyring,
// HABITLIT_DB_CONNECTION, or .pgpass instead.
func OpenStore(config string) (storage.Provider, error) {
	conn, ok, err := keyring.Resolve(config == KeyringConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to read connection string from keyring: %w", err)
	}
	if ok {
		return postgresStore(conn, true)
	}

	if storage.IsPostgresConnString(config) {
		return postgresStore(config, false)
	}

	path, err := utils.ExpandHome(config)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return storage.NewSQLiteStore(path), nil
}

func postgresStore(conn string, allowCredentials bool) (storage.Provider, error) {
	if err := storage.ValidateConnString(conn); err != nil {
		if !errors.Is(err, storage.ErrEmbeddedCredentials) {
			return nil, err
		}
		if !allowCredentials {
			return nil, fmt.Errorf("%w; use 'habitlit keyring set', %s, or a .pgpass file instead", err, constants.EnvConnection)
		}
	}
	return storage.NewPostgresStore(conn), nil
}

// Open loads the provider, reads settings, resolves the timezone and
// hydrates the habit store. A habits blob that cannot be read leaves the
// store empty and prints a warning; the store keeps the original bytes.
func (c *Context) Open(ctx context.Context, timezone string) error {
	if err := c.Store.Load(); err != nil {
		return err
	}

	settings, err := c.Adapter.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	c.Settings = settings

	if timezone == "" {
		timezone = settings.Timezone
	}
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return err
	}
	c.Location = loc

	c.Habits = state.NewStore(
		state.WithPersister(c.Adapter),
		state.WithClock(func() time.Time { return time.Now().In(loc) }),
		state.WithLogger(logger.Component("state")),
	)
	if err := c.Habits.Hydrate(ctx); err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	if err := c.Habits.LoadErr(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", loadWarning(err, c.Habits.SavesHeld()))
	}
	return nil
}

// loadWarning describes how an unreadable habit list was handled.
func loadWarning(err error, held bool) string {
	if held {
		return fmt.Sprintf("stored habits could not be read (%v) and could not be set aside; "+
			"starting empty and changes will not be saved until the data is repaired", err)
	}
	return fmt.Sprintf("stored habits could not be read (%v); starting empty. "+
		"The original data was kept under the %q key, run 'habitlit doctor'", err, constants.HabitsCorruptKey)
}

// Close flushes pending habit writes and closes the provider.
func (c *Context) Close(ctx context.Context) error {
	var errs []error
	if c.Habits != nil {
		errs = append(errs, c.Habits.Close(ctx))
	}
	errs = append(errs, c.Store.Close())
	return errors.Join(errs...)
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() time.Time {
	return time.Now().In(c.Location)
}

// ResolveHabit finds a habit by id, falling back to a case-insensitive
// name match. An ambiguous name is an error.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	st := c.Habits.State()
	if h, ok := st.Habit(ref); ok {
		return h, nil
	}

	var matches []models.Habit
	for _, h := range st.Habits {
		if strings.EqualFold(h.Name, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("habit name %q is ambiguous (%d matches); use the habit id", ref, len(matches))
	}
}

// IsFileBacked reports whether the provider stores data in a local file.
func (c *Context) IsFileBacked() bool {
	switch c.Store.(type) {
	case *storage.SQLiteStore, *storage.JSONStore:
		return true
	}
	return false
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsFileBacked() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
