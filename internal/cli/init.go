package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Reset habits and settings in existing storage (a backup is taken first)."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		ctx.PerformAutomaticBackup()
	}

	if err := ctx.Store.Init(); err != nil {
		if !c.Force {
			return err
		}
		if err := ctx.Store.Load(); err != nil {
			return err
		}
	}

	if err := seed(ctx, constants.SettingsKey, c.Force, func() error {
		return ctx.Adapter.SaveSettings(models.DefaultSettings())
	}); err != nil {
		return fmt.Errorf("failed to write default settings: %w", err)
	}
	if err := seed(ctx, constants.HabitsKey, c.Force, func() error {
		return ctx.Adapter.SaveHabits(nil)
	}); err != nil {
		return fmt.Errorf("failed to write habit list: %w", err)
	}

	fmt.Printf("Initialized habitlit storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

// seed runs write when key is absent, or always when force is set.
func seed(ctx *Context, key string, force bool, write func() error) error {
	if !force {
		_, err := ctx.Store.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	return write()
}
