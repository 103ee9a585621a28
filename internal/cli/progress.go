package cli

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/stats"
	"github.com/julianstephens/habitlit/internal/utils"
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *Context) error {
	habits := ctx.Habits.State().Habits
	if len(habits) == 0 {
		fmt.Println("No habits to show.")
		return nil
	}

	now := ctx.Now()
	fmt.Printf("Week of %s\n\n", utils.StartOfWeek(now).Format("Jan 2, 2006"))
	for _, h := range habits {
		fmt.Printf("%-24s %s  %3d%%  streak %d\n",
			truncate(h.Name, 24),
			weekLine(h, now),
			stats.ProgressPercent(h),
			stats.CurrentStreak(h, now),
		)
	}
	fmt.Printf("\n%s completed  %s postponed  %s missed  %s pending\n",
		stats.Symbol(models.StatusCompleted), stats.Symbol(models.StatusPostponed),
		stats.Symbol(models.StatusMissed), stats.Symbol(models.StatusPending))
	return nil
}
