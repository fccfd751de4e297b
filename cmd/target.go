package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/calendar"
	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/model"
	"github.com/lynneapp/lynne/internal/output"
	"github.com/lynneapp/lynne/internal/parser"
	"github.com/lynneapp/lynne/internal/scheduler"
)

// targetCmd represents the target command.
var targetCmd = &cobra.Command{
	Use:     "target [TIME]",
	Aliases: []string{"time", "pilltime"},
	Short:   "Set or show your daily pill time",
	Long: `Set the time of day you take your pill. Check-ins are classified
against this time, and the reminder daemon schedules notifications
around it.

With no argument, shows the current daily pill time.

Setting a new time never rewrites past check-ins; their status keeps
the target that was in effect when they were recorded.

Examples:
  lynne target
  lynne target 9:00pm
  lynne target 21:00`,
	Args: cobra.ArbitraryArgs,
	RunE: runTarget,
}

func init() {
	rootCmd.AddCommand(targetCmd)
}

// runTarget handles the target command.
func runTarget(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return showTarget()
	}

	result := parser.ParseTimeOfDay(strings.Join(args, " "))
	if result.Error != nil {
		return result.Error
	}

	now := time.Now()
	target := result.At(now)

	if err := ctx.CheckInRepo.SetTargetTime(target); err != nil {
		return err
	}

	// Rebuild today's reminder plan around the new time.
	syncer := scheduler.NewPlanSyncer(ctx.CheckInRepo, ctx.SettingsRepo, ctx.PlanRepo)
	if err := syncer.Sync(now); err != nil {
		ctx.Debugf("plan sync failed: %v", err)
	}

	// Warn when the new time collides with a calendar event.
	conflict := checkConflict(target)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status":      "ok",
			"target_time": output.FormatTimeOnly(target),
			"conflict":    output.NewConflictResponse(target, conflict).Conflict,
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success("Daily pill time set to " + output.FormatTimeOnly(target))
	if conflict != nil {
		cli.PrintConflict(target, conflict)
	}
	return nil
}

// showTarget prints the current daily pill time.
func showTarget() error {
	target, targetSet, err := ctx.CheckInRepo.TargetTime()
	if err != nil {
		return err
	}
	if !targetSet {
		return errors.ErrTargetNotSet
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"target_time": output.FormatTimeOnly(target),
		})
	}

	ctx.Formatter.Printf("Daily pill time: %s\n", output.FormatTimeOnly(target))
	return nil
}

// checkConflict runs the calendar conflict checker, tolerating a
// disconnected calendar.
func checkConflict(target time.Time) *model.ConflictRecommendation {
	snap, err := ctx.CalendarRepo.Snapshot()
	if err != nil || snap == nil {
		return nil
	}
	return calendar.FindConflict(target, snap)
}
