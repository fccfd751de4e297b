package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/calendar"
	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/output"
)

// Calendar command flags.
var calendarConnectFlagFile string

// calendarCmd represents the calendar command.
var calendarCmd = &cobra.Command{
	Use:   "calendar [command]",
	Short: "Connect a calendar and check for conflicts",
	Long: `Connect a calendar so Lynne can warn you when your pill time
collides with a busy slot, and suggest a time before or after it.

Events are cached at connect time; 'check' never re-fetches. Connect
with no flags to load a built-in sample set, or point --file at a JSON
export.

Examples:
  lynne calendar connect
  lynne calendar connect --file events.json
  lynne calendar check
  lynne calendar status
  lynne calendar disconnect`,
	RunE: runCalendarStatus,
}

// calendarConnectCmd connects a calendar.
var calendarConnectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect a calendar and cache its events",
	RunE:  runCalendarConnect,
}

// calendarStatusCmd shows the connection status.
var calendarStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show calendar connection status",
	RunE:  runCalendarStatus,
}

// calendarDisconnectCmd drops the cached calendar.
var calendarDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the calendar and drop cached events",
	RunE:  runCalendarDisconnect,
}

// calendarCheckCmd checks the pill time against cached events.
var calendarCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check your pill time against the calendar",
	RunE:  runCalendarCheck,
}

func init() {
	calendarConnectCmd.Flags().StringVar(&calendarConnectFlagFile, "file", "",
		"JSON file of events to load (default: built-in sample set)")

	calendarCmd.AddCommand(calendarConnectCmd)
	calendarCmd.AddCommand(calendarStatusCmd)
	calendarCmd.AddCommand(calendarDisconnectCmd)
	calendarCmd.AddCommand(calendarCheckCmd)
	rootCmd.AddCommand(calendarCmd)
}

// runCalendarConnect handles the calendar connect command.
func runCalendarConnect(cmd *cobra.Command, args []string) error {
	events := calendar.SampleEvents(time.Now())
	if calendarConnectFlagFile != "" {
		loaded, err := calendar.LoadEventsFile(calendarConnectFlagFile)
		if err != nil {
			return err
		}
		events = loaded
	}

	if err := ctx.CalendarRepo.Connect(events); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status": "connected",
			"events": len(events),
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Calendar connected (%d events cached)", len(events)))
	return nil
}

// runCalendarStatus handles the calendar status command.
func runCalendarStatus(cmd *cobra.Command, args []string) error {
	snap, err := ctx.CalendarRepo.Snapshot()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		resp := map[string]interface{}{
			"connected": snap.IsConnected,
			"events":    len(snap.Events),
		}
		if !snap.FetchedAt.IsZero() {
			resp["fetched_at"] = snap.FetchedAt.Format(time.RFC3339)
		}
		return ctx.JSONFormatter().JSON(resp)
	}

	cli := ctx.CLIFormatter()
	if !snap.IsConnected {
		cli.Muted("No calendar connected.")
		cli.Muted("Connect one with: lynne calendar connect")
		return nil
	}

	cli.Printf("Calendar connected: %d event(s) cached %s\n",
		len(snap.Events), output.FormatDate(snap.FetchedAt))
	for _, e := range snap.Events {
		cli.Printf("  %s - %s  %s\n",
			output.FormatTimeOnly(e.Start), output.FormatTimeOnly(e.End), e.Title())
	}
	return nil
}

// runCalendarDisconnect handles the calendar disconnect command.
func runCalendarDisconnect(cmd *cobra.Command, args []string) error {
	if err := ctx.CalendarRepo.Disconnect(); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status": "disconnected",
		})
	}

	ctx.CLIFormatter().Success("Calendar disconnected")
	return nil
}

// runCalendarCheck handles the calendar check command.
func runCalendarCheck(cmd *cobra.Command, args []string) error {
	target, targetSet, err := ctx.CheckInRepo.TargetTime()
	if err != nil {
		return err
	}
	if !targetSet {
		return errors.ErrTargetNotSet
	}

	snap, err := ctx.CalendarRepo.Snapshot()
	if err != nil {
		return err
	}
	if !snap.IsConnected {
		return errors.ErrCalendarNotConnected
	}

	rec := calendar.FindConflict(target, snap)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(output.NewConflictResponse(target, rec))
	}

	ctx.CLIFormatter().PrintConflict(target, rec)
	return nil
}
