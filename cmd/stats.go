package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/adherence"
	"github.com/lynneapp/lynne/internal/output"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show adherence statistics",
	Long: `Show adherence statistics over your whole check-in history: total
check-ins, current streak, on-time rate, and the breakdown by status.

Examples:
  lynne stats
  lynne stats --format json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats handles the stats command.
func runStats(cmd *cobra.Command, args []string) error {
	history, err := ctx.CheckInRepo.History()
	if err != nil {
		return err
	}

	stats := adherence.Summarize(history, time.Now())

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(output.NewStatsResponse(stats))
	}

	ctx.CLIFormatter().PrintStats(stats)
	return nil
}
