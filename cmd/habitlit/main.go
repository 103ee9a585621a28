package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/errors"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/utils"
)

const shutdownTimeout = 5 * time.Second

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Storage location: a .db (SQLite) or .json file path, a PostgreSQL connection string without a password, or 'keyring' to use the connection string stored in the OS keyring." env:"HABITLIT_CONFIG" default:"${default_config}"`
	Debug    bool   `help:"Enable debug logging to stderr." env:"HABITLIT_DEBUG"`
	Timezone string `help:"Override the timezone used for day boundaries (IANA name or 'Local')." env:"HABITLIT_TIMEZONE"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize habitlit storage."`
	Migrate  cli.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and record progress."`
	Progress cli.ProgressCmd `cmd:"" help:"Show this week's progress for every habit."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show a month of recorded habit activity."`
	Remind   cli.RemindCmd   `cmd:"" help:"Work with habit reminders."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage backups of file-based storage."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// standalone commands manage storage themselves and skip hydration.
var standalone = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
	"backup":  true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with weekly progress, calendar history and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(CLI.Config)}); err != nil {
		// Logging is best effort; commands still run without a log file.
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	appCtx := cli.NewContext(store)

	if !standalone[topCommand(ctx)] {
		if err := appCtx.Open(context.Background(), CLI.Timezone); err != nil {
			closeContext(appCtx)
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	closeContext(appCtx)
	errors.Fatal(err)
}

func topCommand(ctx *kong.Context) string {
	fields := strings.Fields(ctx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// closeContext flushes pending saves. A failure here is logged, not fatal.
func closeContext(appCtx *cli.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := appCtx.Close(ctx); err != nil {
		logger.Warn("Failed to close storage cleanly", "error", err)
	}
}

// configDir is where logs are written: next to a file store, or in the
// default config directory for database servers.
func configDir(config string) string {
	if config != cli.KeyringConfig && !storage.IsPostgresConnString(config) {
		if path, err := utils.ExpandHome(config); err == nil {
			return filepath.Dir(path)
		}
	}
	path, err := utils.ExpandHome(constants.DefaultConfigPath)
	if err != nil {
		return os.TempDir()
	}
	return filepath.Dir(path)
}
