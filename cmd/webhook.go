package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/model"
	"github.com/lynneapp/lynne/internal/notify"
	"github.com/lynneapp/lynne/internal/output"
	"github.com/lynneapp/lynne/internal/validate"
)

// Webhook command flags.
var (
	webhookAddFlagType     string
	webhookAddFlagTemplate string
	webhookRemoveFlagForce bool
	webhookTestFlagAll     bool
)

// webhookCmd represents the webhook command.
var webhookCmd = &cobra.Command{
	Use:     "webhook [command]",
	Aliases: []string{"wh", "hook"},
	Short:   "Configure reminder delivery webhooks",
	Long: `Configure webhooks for Discord, Slack, or custom endpoints. The
reminder daemon delivers pill reminders to every enabled webhook.

Examples:
  lynne webhook add discord https://discord.com/api/webhooks/...
  lynne webhook add slack https://hooks.slack.com/services/...
  lynne webhook list
  lynne webhook test discord
  lynne webhook disable slack
  lynne webhook remove discord`,
	RunE: runWebhookList,
}

// webhookAddCmd adds a new webhook.
var webhookAddCmd = &cobra.Command{
	Use:   "add NAME URL",
	Short: "Add a new webhook",
	Long: `Add a webhook for receiving pill reminders.

The webhook type is auto-detected from the URL:
  - Discord: discord.com/api/webhooks/...
  - Slack:   hooks.slack.com/services/...
  - Generic: Any other URL

Examples:
  lynne webhook add discord https://discord.com/api/webhooks/123/abc
  lynne webhook add my-webhook https://example.com/hook --type generic`,
	Args: cobra.ExactArgs(2),
	RunE: runWebhookAdd,
}

// webhookListCmd lists all webhooks.
var webhookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all webhooks",
	RunE:  runWebhookList,
}

// webhookTestCmd tests a webhook.
var webhookTestCmd = &cobra.Command{
	Use:   "test [NAME]",
	Short: "Test a webhook by sending a test notification",
	Long: `Send a test notification to verify webhook configuration.

Examples:
  lynne webhook test discord
  lynne webhook test --all`,
	RunE: runWebhookTest,
}

// webhookRemoveCmd removes a webhook.
var webhookRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a webhook",
	Args:    cobra.ExactArgs(1),
	RunE:    runWebhookRemove,
}

// webhookEnableCmd enables a webhook.
var webhookEnableCmd = &cobra.Command{
	Use:   "enable NAME",
	Short: "Enable a webhook",
	Args:  cobra.ExactArgs(1),
	RunE:  runWebhookEnable,
}

// webhookDisableCmd disables a webhook.
var webhookDisableCmd = &cobra.Command{
	Use:   "disable NAME",
	Short: "Disable a webhook",
	Args:  cobra.ExactArgs(1),
	RunE:  runWebhookDisable,
}

func init() {
	// Add flags
	webhookAddCmd.Flags().StringVarP(&webhookAddFlagType, "type", "t", "",
		"Webhook type: discord, slack, generic (auto-detected from URL if not specified)")
	webhookAddCmd.Flags().StringVar(&webhookAddFlagTemplate, "template", "",
		"Custom payload template (for generic webhooks)")

	webhookRemoveCmd.Flags().BoolVar(&webhookRemoveFlagForce, "force", false,
		"Skip confirmation")

	webhookTestCmd.Flags().BoolVarP(&webhookTestFlagAll, "all", "a", false,
		"Test all enabled webhooks")

	// Dynamic completion for webhook names
	webhookTestCmd.ValidArgsFunction = completeWebhookArgs
	webhookRemoveCmd.ValidArgsFunction = completeWebhookArgs
	webhookEnableCmd.ValidArgsFunction = completeWebhookArgs
	webhookDisableCmd.ValidArgsFunction = completeWebhookArgs

	// Add subcommands
	webhookCmd.AddCommand(webhookAddCmd)
	webhookCmd.AddCommand(webhookListCmd)
	webhookCmd.AddCommand(webhookTestCmd)
	webhookCmd.AddCommand(webhookRemoveCmd)
	webhookCmd.AddCommand(webhookEnableCmd)
	webhookCmd.AddCommand(webhookDisableCmd)

	rootCmd.AddCommand(webhookCmd)
}

// completeWebhookArgs provides completion for webhook names.
func completeWebhookArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 || ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	webhooks, err := ctx.WebhookRepo.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, wh := range webhooks {
		if strings.HasPrefix(wh.Name, toComplete) {
			names = append(names, wh.Name)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// runWebhookAdd handles the webhook add command.
func runWebhookAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	webhookURL := args[1]

	if err := validate.WebhookName(name); err != nil {
		return err
	}
	if err := validate.URL(webhookURL); err != nil {
		return err
	}

	// Check if webhook already exists
	exists, err := ctx.WebhookRepo.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return errors.NewUserErrorWithField("name", name,
			"Webhook already exists",
			"Remove it first or pick another name")
	}

	// Determine type
	webhookType := webhookAddFlagType
	if webhookType == "" {
		webhookType = model.DetectWebhookType(webhookURL)
	}
	if !model.IsValidWebhookType(webhookType) {
		return errors.NewUserErrorWithField("type", webhookType,
			"Invalid webhook type",
			"Use discord, slack, or generic")
	}

	// Create webhook
	webhook := model.NewWebhook(name, webhookType, webhookURL)
	if webhookAddFlagTemplate != "" {
		webhook.Template = webhookAddFlagTemplate
	}

	if err := ctx.WebhookRepo.Create(webhook); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(output.NewWebhookOutput(webhook))
	}

	ctx.Formatter.Println("Added webhook:", name)
	ctx.Formatter.Printf("  Type: %s\n", webhook.Type)
	ctx.Formatter.Printf("  URL: %s\n", webhook.MaskedURL())
	ctx.Formatter.Printf("  Status: enabled\n")
	ctx.Formatter.Println("")
	ctx.Formatter.Printf("Test with: lynne webhook test %s\n", name)

	return nil
}

// runWebhookList handles the webhook list command.
func runWebhookList(cmd *cobra.Command, args []string) error {
	webhooks, err := ctx.WebhookRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		out := make([]*output.WebhookOutput, 0, len(webhooks))
		for _, wh := range webhooks {
			out = append(out, output.NewWebhookOutput(wh))
		}
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"webhooks": out,
			"count":    len(out),
		})
	}

	if len(webhooks) == 0 {
		ctx.Formatter.Println("No webhooks configured.")
		ctx.Formatter.Println("")
		ctx.Formatter.Println("Add one with: lynne webhook add discord <url>")
		return nil
	}

	ctx.Formatter.Println("Configured Webhooks:")
	ctx.Formatter.Println("")

	// Header
	ctx.Formatter.Printf("  %-12s %-10s %-10s %s\n", "Name", "Type", "Status", "Last Used")
	ctx.Formatter.Println("  " + strings.Repeat("-", 50))

	for _, wh := range webhooks {
		status := "enabled"
		if !wh.Enabled {
			status = "disabled"
		}

		lastUsed := "never"
		if !wh.LastUsed.IsZero() {
			lastUsed = formatTimeAgo(wh.LastUsed)
		}

		ctx.Formatter.Printf("  %-12s %-10s %-10s %s\n", wh.Name, wh.Type, status, lastUsed)
	}

	ctx.Formatter.Println("")
	ctx.Formatter.Printf("%d webhook(s)\n", len(webhooks))

	return nil
}

// runWebhookTest handles the webhook test command.
func runWebhookTest(cmd *cobra.Command, args []string) error {
	dispatcher := notify.NewDispatcher(ctx.WebhookRepo)
	dispatcher.SetDebug(ctx.Debug)
	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if webhookTestFlagAll {
		// Test all enabled webhooks
		webhooks, err := ctx.WebhookRepo.ListEnabled()
		if err != nil {
			return err
		}

		if len(webhooks) == 0 {
			return errors.NewUserError("No enabled webhooks to test",
				"Add one with 'lynne webhook add' or enable an existing one")
		}

		var results []notify.DispatchResult
		for _, wh := range webhooks {
			results = append(results, dispatcher.TestWebhook(c, wh.Name))
		}

		if ctx.IsJSON() {
			return ctx.JSONFormatter().JSON(map[string]interface{}{
				"results": results,
			})
		}

		for _, result := range results {
			if result.Success {
				ctx.Formatter.Printf("✓ %s: Success (%dms)\n", result.WebhookName, result.Duration.Milliseconds())
			} else {
				ctx.Formatter.Printf("✗ %s: Failed - %s\n", result.WebhookName, result.Error)
			}
		}

		return nil
	}

	// Test single webhook
	if len(args) == 0 {
		return errors.NewUserError("Webhook name required",
			"Name a webhook or pass --all")
	}

	name := args[0]

	ctx.Formatter.Printf("Testing webhook: %s\n", name)
	ctx.Formatter.Println("Sending test notification...")

	result := dispatcher.TestWebhook(c, name)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"webhook":     name,
			"success":     result.Success,
			"status_code": result.StatusCode,
			"duration_ms": result.Duration.Milliseconds(),
			"error":       errorString(result.Error),
		})
	}

	if result.Success {
		ctx.Formatter.Printf("✓ Success! Message delivered in %dms\n", result.Duration.Milliseconds())
		ctx.Formatter.Println("")
		ctx.Formatter.Println("Check your notification channel for the test message.")
	} else {
		ctx.Formatter.Printf("✗ Failed: %s\n", result.Error)
		ctx.Formatter.Println("")
		ctx.Formatter.Println("The webhook URL may be invalid or the service may be unavailable.")
	}

	return nil
}

// runWebhookRemove handles the webhook remove command.
func runWebhookRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	// Check if exists
	exists, err := ctx.WebhookRepo.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return errors.ErrWebhookNotFound
	}

	// Confirmation (skip if --force)
	if !webhookRemoveFlagForce && !ctx.IsJSON() {
		ctx.Formatter.Printf("Remove webhook %q? [y/N] ", name)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			ctx.Formatter.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.WebhookRepo.Delete(name); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status":  "removed",
			"webhook": name,
		})
	}

	ctx.Formatter.Printf("Removed webhook: %s\n", name)
	return nil
}

// runWebhookEnable handles the webhook enable command.
func runWebhookEnable(cmd *cobra.Command, args []string) error {
	return setWebhookEnabled(args[0], true)
}

// runWebhookDisable handles the webhook disable command.
func runWebhookDisable(cmd *cobra.Command, args []string) error {
	return setWebhookEnabled(args[0], false)
}

func setWebhookEnabled(name string, enabled bool) error {
	if err := ctx.WebhookRepo.SetEnabled(name, enabled); err != nil {
		return err
	}

	verb := "Disabled"
	status := "disabled"
	if enabled {
		verb = "Enabled"
		status = "enabled"
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status":  status,
			"webhook": name,
		})
	}

	ctx.Formatter.Printf("%s webhook: %s\n", verb, name)
	return nil
}

// formatTimeAgo formats a time as a relative duration.
func formatTimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// errorString renders an error for JSON output; empty when nil.
func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
