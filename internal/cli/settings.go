package cli

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/stats"
	"github.com/julianstephens/habitlit/internal/utils"
	"github.com/julianstephens/habitlit/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone        *string `help:"IANA timezone for day boundaries, or 'Local'."`
	DefaultDuration *int    `help:"Goal length prefilled for new habits."`
	DefaultReminder *string `help:"Reminder time (HH:MM) prefilled for new habits."`
	DefaultDays     *string `help:"Days prefilled for new habits."`
	Reminders       *bool   `help:"Enable or disable scheduled reminders in the TUI."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	settings := ctx.Settings

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:          %s\n", settings.Timezone)
		fmt.Printf("  Default Duration:  %d days\n", settings.DefaultDuration)
		fmt.Printf("  Default Reminder:  %s\n", stats.FormatReminder(settings.DefaultReminderTime))
		fmt.Printf("  Default Days:      %s\n", stats.DaysText(settings.DefaultDays))
		fmt.Printf("  Reminders Enabled: %v\n", settings.RemindersEnabled)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if _, err := utils.LoadLocation(*c.Timezone); err != nil {
			return err
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DefaultDuration != nil {
		if err := validation.ValidateDuration(*c.DefaultDuration); err != nil {
			return err
		}
		settings.DefaultDuration = *c.DefaultDuration
		updated = true
	}
	if c.DefaultReminder != nil {
		if err := validation.ValidateReminderTime(*c.DefaultReminder); err != nil {
			return err
		}
		settings.DefaultReminderTime = *c.DefaultReminder
		updated = true
	}
	if c.DefaultDays != nil {
		days, err := utils.ParseWeekdays(*c.DefaultDays)
		if err != nil {
			return err
		}
		if err := validation.ValidateDays(days); err != nil {
			return err
		}
		settings.DefaultDays = days
		updated = true
	}
	if c.Reminders != nil {
		settings.RemindersEnabled = *c.Reminders
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Adapter.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Settings = settings
	fmt.Println("Settings updated successfully.")
	return nil
}
