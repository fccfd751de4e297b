package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/output"
	"github.com/lynneapp/lynne/internal/scheduler"
)

// remindCmd represents the remind command.
var remindCmd = &cobra.Command{
	Use:     "remind",
	Aliases: []string{"reminders", "plan"},
	Short:   "Show and manage today's reminder schedule",
	Long: `Show today's reminder schedule: a heads-up before your pill time,
the main reminder at it, and follow-ups after it until you check in.

The daemon rebuilds the schedule every midnight; 'remind sync' rebuilds
it right now, 'remind cancel' drops the rest of today's reminders.

Examples:
  lynne remind
  lynne remind sync
  lynne remind cancel`,
	RunE: runRemindShow,
}

// remindSyncCmd rebuilds today's plan.
var remindSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild today's reminder schedule",
	RunE:  runRemindSync,
}

// remindCancelCmd cancels today's plan.
var remindCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the rest of today's reminders",
	RunE:  runRemindCancel,
}

func init() {
	remindCmd.AddCommand(remindSyncCmd)
	remindCmd.AddCommand(remindCancelCmd)
	rootCmd.AddCommand(remindCmd)
}

// runRemindShow handles the remind command.
func runRemindShow(cmd *cobra.Command, args []string) error {
	plan, err := ctx.PlanRepo.Get()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(output.NewPlanResponse(plan))
	}

	ctx.CLIFormatter().PrintPlan(plan)
	return nil
}

// runRemindSync handles the remind sync command.
func runRemindSync(cmd *cobra.Command, args []string) error {
	syncer := scheduler.NewPlanSyncer(ctx.CheckInRepo, ctx.SettingsRepo, ctx.PlanRepo)
	if err := syncer.Sync(time.Now()); err != nil {
		return err
	}

	plan, err := ctx.PlanRepo.Get()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(output.NewPlanResponse(plan))
	}

	cli := ctx.CLIFormatter()
	cli.Success("Reminder schedule rebuilt")
	cli.PrintPlan(plan)
	return nil
}

// runRemindCancel handles the remind cancel command.
func runRemindCancel(cmd *cobra.Command, args []string) error {
	if err := ctx.PlanRepo.Cancel(); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status": "cancelled",
		})
	}

	ctx.CLIFormatter().Success("Cancelled today's remaining reminders")
	return nil
}
