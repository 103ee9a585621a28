package cli

import (
	"github.com/julianstephens/habitlit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	return tui.Run(ctx.Habits, ctx.Settings, ctx.Location)
}
