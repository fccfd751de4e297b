package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/output"
)

// History command flags.
var (
	historyFlagMonth string
	historyFlagList  bool
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist", "cal"},
	Short:   "Show your check-in history",
	Long: `Show past check-ins as a month calendar colored by status, or as a
flat list with --list.

Examples:
  lynne history
  lynne history --month 2026-07
  lynne history --list`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyFlagMonth, "month", "m", "",
		"Month to show (YYYY-MM, default current)")
	historyCmd.Flags().BoolVarP(&historyFlagList, "list", "l", false,
		"Show a flat list instead of the calendar grid")

	rootCmd.AddCommand(historyCmd)
}

// runHistory handles the history command.
func runHistory(cmd *cobra.Command, args []string) error {
	history, err := ctx.CheckInRepo.History()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(output.NewHistoryResponse(history))
	}

	if historyFlagList {
		cli := ctx.CLIFormatter()
		if len(history) == 0 {
			cli.Muted("No check-ins recorded yet.")
			return nil
		}
		cli.Title("Check-In History")
		for _, date := range history.Dates() {
			rec := history[date]
			cli.Printf("  %s  %s  %s\n", date,
				output.FormatTimeOnly(rec.Timestamp), cli.StatusLabel(rec.Status))
		}
		return nil
	}

	year, month, err := resolveMonth()
	if err != nil {
		return err
	}

	ctx.CLIFormatter().PrintHistoryMonth(year, month, history.ForMonth(year, month))
	return nil
}

// resolveMonth parses the --month flag, defaulting to the current month.
func resolveMonth() (int, time.Month, error) {
	if historyFlagMonth == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}

	t, err := time.Parse("2006-01", historyFlagMonth)
	if err != nil {
		return 0, 0, errors.NewUserErrorWithField("month", historyFlagMonth,
			"Invalid month",
			fmt.Sprintf("Use YYYY-MM, like %s", time.Now().Format("2006-01")))
	}
	return t.Year(), t.Month(), nil
}
