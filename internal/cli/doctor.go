package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitlit/internal/backup"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/migration"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/utils"
	"github.com/julianstephens/habitlit/internal/validation"
)

// sqlStore is implemented by the SQL-backed providers.
type sqlStore interface {
	GetDB() *sql.DB
	MigrationRunner() (*migration.Runner, error)
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	fail := func(name string, err error) {
		fmt.Printf("❌ %s: FAIL\n", name)
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	}

	// Check 1: storage reachable
	dbReachable := false
	if err := checkDBReachable(ctx); err != nil {
		fail("Storage reachable", err)
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		dbReachable = true
	}

	// Checks 2-3: schema and migrations (SQL stores only)
	if st, ok := ctx.Store.(sqlStore); ok && dbReachable {
		status, err := schemaStatus(st)
		if err != nil {
			fail("Schema version", err)
		} else {
			fmt.Printf("✓ Schema version: OK (version %d)\n", status.Current)
			if !status.UpToDate() {
				fail("Migrations complete", fmt.Errorf("migrations incomplete: current version %d, latest version %d - run 'habitlit migrate'", status.Current, status.Latest))
			} else {
				fmt.Printf("✓ Migrations complete: OK\n")
			}
		}
	} else if !ok {
		fmt.Printf("⊘ Schema version: SKIPPED (not a SQL store)\n")
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (storage not reachable)\n")
	}

	// Check 4: backups present (warning only)
	if ctx.IsFileBacked() {
		if err := checkBackupsPresent(ctx); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	} else {
		fmt.Printf("⊘ Backups present: SKIPPED (managed by the database server)\n")
	}

	// Check 5: habit data validation
	if dbReachable {
		if err := checkValidation(ctx); err != nil {
			fail("Data validation", err)
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (storage not reachable)\n")
	}

	// Check 6: quarantined habit data (warning only)
	if dbReachable {
		if err := checkQuarantine(ctx); err != nil {
			fmt.Printf("⚠ Quarantined habits: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Quarantined habits: OK\n")
		}
	}

	// Check 7: clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if st, ok := ctx.Store.(sqlStore); ok {
		db := st.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func schemaStatus(st sqlStore) (migration.Status, error) {
	runner, err := st.MigrationRunner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status()
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitlit backup create'")
	}
	return nil
}

func checkValidation(ctx *Context) error {
	if _, err := ctx.Adapter.LoadSettings(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	habits, err := ctx.Adapter.LoadHabits()
	if err != nil {
		return fmt.Errorf("failed to read habits: %w", err)
	}

	result := validation.New().ValidateHabits(habits)
	if result.HasConflicts() {
		logger.Warn("Habit data has conflicts", "count", len(result.Conflicts))
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkQuarantine(ctx *Context) error {
	data, err := ctx.Store.Get(constants.HabitsCorruptKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", constants.HabitsCorruptKey, err)
	}
	return fmt.Errorf("%d bytes of unreadable habits are kept under %q; repair and restore them or remove the key",
		len(data), constants.HabitsCorruptKey)
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Adapter.LoadSettings()
	if err != nil {
		// reported by the validation check
		return nil
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return err
	}
	if loc == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}
	return nil
}

type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(ctx *Context) error {
	st, ok := ctx.Store.(sqlStore)
	if !ok {
		fmt.Println("JSON storage has no schema; nothing to migrate.")
		return nil
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	runner, err := st.MigrationRunner()
	if err != nil {
		return err
	}
	status, err := runner.Status()
	if err != nil {
		return err
	}
	if !status.UpToDate() {
		ctx.PerformAutomaticBackup()
	}
	_, err = runner.Apply(func(msg string) { fmt.Println(msg) })
	return err
}
