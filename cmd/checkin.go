package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/adherence"
	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/model"
	"github.com/lynneapp/lynne/internal/output"
	"github.com/lynneapp/lynne/internal/parser"
)

// checkinCmd represents the checkin command.
var checkinCmd = &cobra.Command{
	Use:     "checkin [TIME]",
	Aliases: []string{"ci", "taken"},
	Short:   "Record that you took today's pill",
	Long: `Record today's pill check-in. With no argument the check-in is
timestamped now; pass a time to backfill when you actually took it.

The check-in is classified against your daily pill time:
  on time        within 5 minutes
  slightly late  within 15 minutes
  very late      within an hour
  missed         more than an hour off

Examples:
  lynne checkin
  lynne checkin 8:45pm
  lynne checkin '20 minutes ago'`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheckIn,
}

// checkinEditCmd overwrites today's check-in.
var checkinEditCmd = &cobra.Command{
	Use:   "edit TIME",
	Short: "Change the time of today's check-in",
	Long: `Overwrite today's check-in with a new time. The status is
recomputed against the current daily pill time.

Examples:
  lynne checkin edit 9:15pm
  lynne checkin edit '1 hour ago'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheckInEdit,
}

// checkinClearCmd removes a day's check-in.
var checkinClearCmd = &cobra.Command{
	Use:   "clear [DATE]",
	Short: "Remove a day's check-in (today by default)",
	Long: `Remove the check-in for a day. This is mainly useful for undoing
an accidental check-in.

Examples:
  lynne checkin clear
  lynne checkin clear 2026-08-12`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckInClear,
}

func init() {
	checkinCmd.AddCommand(checkinEditCmd)
	checkinCmd.AddCommand(checkinClearCmd)
	rootCmd.AddCommand(checkinCmd)
}

// runCheckIn handles the checkin command.
func runCheckIn(cmd *cobra.Command, args []string) error {
	ts, err := parseCheckInTime(args)
	if err != nil {
		return err
	}

	date := model.DateKey(ts)
	if _, found, err := ctx.CheckInRepo.Get(date); err != nil {
		return err
	} else if found {
		return errors.ErrAlreadyCheckedIn
	}

	return saveCheckIn(date, ts)
}

// runCheckInEdit handles the checkin edit command.
func runCheckInEdit(cmd *cobra.Command, args []string) error {
	ts, err := parseCheckInTime(args)
	if err != nil {
		return err
	}

	date := model.DateKey(ts)
	if _, found, err := ctx.CheckInRepo.Get(date); err != nil {
		return err
	} else if !found {
		return errors.ErrNoCheckInToday
	}

	return saveCheckIn(date, ts)
}

// runCheckInClear handles the checkin clear command.
func runCheckInClear(cmd *cobra.Command, args []string) error {
	date := model.DateKey(time.Now())
	if len(args) == 1 {
		if _, err := time.Parse(model.DateKeyLayout, args[0]); err != nil {
			return errors.NewUserErrorWithField("date", args[0],
				"Invalid date",
				"Use YYYY-MM-DD, like 2026-08-12")
		}
		date = args[0]
	}

	if err := ctx.CheckInRepo.ClearDay(date); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status": "cleared",
			"date":   date,
		})
	}

	ctx.CLIFormatter().Success("Cleared check-in for " + date)
	return nil
}

// parseCheckInTime parses the optional time argument, defaulting to now.
func parseCheckInTime(args []string) (time.Time, error) {
	if len(args) == 0 {
		return time.Now(), nil
	}

	result := parser.ParseTimestamp(strings.Join(args, " "))
	if result.Error != nil {
		return time.Time{}, result.Error
	}
	return result.Time, nil
}

// saveCheckIn classifies and persists a check-in, then prints the result.
func saveCheckIn(date string, ts time.Time) error {
	target, targetSet, err := ctx.CheckInRepo.TargetTime()
	if err != nil {
		return err
	}
	if !targetSet {
		return errors.ErrTargetNotSet
	}

	// Pin the daily time-of-day to the check-in's day.
	targetAt := time.Date(ts.Year(), ts.Month(), ts.Day(),
		target.Hour(), target.Minute(), 0, 0, ts.Location())

	rec := model.CheckInRecord{
		Status:     adherence.Evaluate(ts, targetAt),
		Timestamp:  ts,
		TargetTime: targetAt,
	}

	if err := ctx.CheckInRepo.SaveCheckIn(date, rec); err != nil {
		return err
	}

	ctx.Debugf("check-in saved: date=%s status=%s", date, rec.Status)

	// The day is handled; drop the remaining reminders unless the user
	// asked to keep them coming.
	settings, _, err := ctx.SettingsRepo.Get()
	if err == nil && settings.StopAfterCheckIn && date == model.DateKey(time.Now()) {
		if err := ctx.PlanRepo.Cancel(); err != nil && !ctx.IsJSON() {
			ctx.CLIFormatter().Warning("Could not cancel pending reminders: " + err.Error())
		}
	}

	message := adherence.ResultMessage(rec.Status)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(&output.CheckInResponse{
			Status:  "ok",
			CheckIn: output.NewCheckInOutput(date, rec),
			Message: message,
		})
	}

	ctx.CLIFormatter().PrintCheckInResult(rec, message)
	return nil
}
