// Package cmd provides the CLI commands for Lynne.
package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/model"
	"github.com/lynneapp/lynne/internal/output"
	"github.com/lynneapp/lynne/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lynne",
	Short: "A daily birth-control pill adherence tracker",
	Long: `Lynne helps you take your birth control pill at the same time every
day. Set a daily pill time, check in when you take it, and let the
background daemon remind you when you forget.

Examples:
  lynne target 9:00pm
  lynne checkin
  lynne checkin 8:45pm
  lynne history
  lynne daemon start`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow
		// __complete for dynamic completions). Daemon management commands
		// talk to the pid file only and must not take the database lock;
		// the foreground daemon opens its own context.
		if cmd.Name() == "completion" || cmd.Name() == "help" || skipsRuntime(cmd) {
			return nil
		}

		// Parse format flag
		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		// Parse color flag
		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		// Create runtime context
		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show today's status
		return runStatus(cmd, args)
	},
}

// skipsRuntime reports whether a command manages the daemon process and
// therefore must not open the database.
func skipsRuntime(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "daemon" {
			return true
		}
	}
	return false
}

// runStatus shows today's check-in status.
func runStatus(cmd *cobra.Command, args []string) error {
	target, targetSet, err := ctx.CheckInRepo.TargetTime()
	if err != nil {
		return err
	}

	today := model.DateKey(time.Now())
	var rec *model.CheckInRecord
	if r, found, err := ctx.CheckInRepo.Get(today); err != nil {
		return err
	} else if found {
		rec = &r
	}

	if ctx.IsJSON() {
		resp := &output.StatusResponse{Status: "ok"}
		if targetSet {
			resp.TargetTime = output.FormatTimeOnly(target)
		}
		if rec != nil {
			resp.Today = output.NewCheckInOutput(today, *rec)
		}
		return ctx.JSONFormatter().JSON(resp)
	}

	ctx.CLIFormatter().PrintStatus(target, targetSet, rec)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// statusCmd shows today's status explicitly.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's check-in status",
	RunE:  runStatus,
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("lynne %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// Die prints an error and exits.
func Die(err error) {
	if ctx != nil && ctx.IsJSON() {
		ctx.PrintError(err)
	} else {
		os.Stderr.WriteString("Error: " + runtime.FormatError(err) + "\n")
	}
	os.Exit(1)
}
