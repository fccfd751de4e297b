package cmd

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/output"
	"github.com/lynneapp/lynne/internal/scheduler"
	"github.com/lynneapp/lynne/internal/validate"
)

// settingsCmd represents the settings command.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change notification settings",
	Long: `Show or change how reminders behave.

Fields:
  pre       minutes before your pill time for the heads-up reminder
  interval  minutes between follow-up reminders (0 disables follow-ups)
  stop      stop reminding once you check in (true/false)

Examples:
  lynne settings
  lynne settings set pre 15
  lynne settings set interval 0
  lynne settings set stop false`,
	RunE: runSettingsShow,
}

// settingsSetCmd changes one settings field.
var settingsSetCmd = &cobra.Command{
	Use:       "set FIELD VALUE",
	Short:     "Change a notification setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"pre", "interval", "stop"},
	RunE:      runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// runSettingsShow handles the settings command.
func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, defaulted, err := ctx.SettingsRepo.Get()
	if err != nil {
		// Corrupt settings degrade to defaults; tell the user.
		if !ctx.IsJSON() {
			ctx.CLIFormatter().Warning("Saved settings could not be read; showing defaults.")
		}
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(output.NewSettingsResponse(settings, defaulted))
	}

	ctx.CLIFormatter().PrintSettings(settings, defaulted)
	return nil
}

// runSettingsSet handles the settings set command.
func runSettingsSet(cmd *cobra.Command, args []string) error {
	field, value := args[0], args[1]

	settings, _, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	switch field {
	case "pre":
		n, err := validate.Minutes("pre", value)
		if err != nil {
			return err
		}
		settings.PreNotificationTime = n

	case "interval":
		n, err := validate.Minutes("interval", value)
		if err != nil {
			return err
		}
		settings.ReminderInterval = n

	case "stop":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.NewUserErrorWithField("stop", value,
				"Not a boolean",
				"Use true or false")
		}
		settings.StopAfterCheckIn = b

	default:
		return errors.NewUserErrorWithField("field", field,
			"Unknown setting",
			"Use pre, interval, or stop")
	}

	if err := validate.Settings(settings); err != nil {
		return err
	}

	if err := ctx.SettingsRepo.Save(settings); err != nil {
		return err
	}

	// Timing settings shape the plan; rebuild it.
	syncer := scheduler.NewPlanSyncer(ctx.CheckInRepo, ctx.SettingsRepo, ctx.PlanRepo)
	if err := syncer.Sync(time.Now()); err != nil {
		ctx.Debugf("plan sync failed: %v", err)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(output.NewSettingsResponse(settings, false))
	}

	ctx.CLIFormatter().Success("Updated " + field)
	ctx.CLIFormatter().PrintSettings(settings, false)
	return nil
}
