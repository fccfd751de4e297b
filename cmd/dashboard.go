package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "tui"},
	Short:   "Open the interactive dashboard",
	Long: `Open an interactive terminal dashboard showing today's check-in
status, upcoming reminders, and your adherence summary.

Keyboard Controls:
  c - Check in now
  r - Refresh data
  q - Quit dashboard

Examples:
  lynne dashboard
  lynne dash`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return tui.RunDashboard(tui.DashboardConfig{
		CheckInRepo: ctx.CheckInRepo,
		PlanRepo:    ctx.PlanRepo,
	})
}
