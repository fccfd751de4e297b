package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lynneapp/lynne/internal/chat"
	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/tui"
	"github.com/lynneapp/lynne/internal/validate"
)

// chatCmd represents the chat command.
var chatCmd = &cobra.Command{
	Use:     "chat [MESSAGE]",
	Aliases: []string{"ask"},
	Short:   "Chat with the birth control education assistant",
	Long: `Chat with Lynne's AI assistant about birth control. With a message
argument, asks once and prints the answer; without one, opens an
interactive chat session.

Requires LYNNE_GEMINI_API_KEY in the environment or a .env file.

Examples:
  lynne chat
  lynne chat what should I do if I miss a pill?`,
	Args: cobra.ArbitraryArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// runChat handles the chat command.
func runChat(cmd *cobra.Command, args []string) error {
	if ctx.Config.GeminiAPIKey == "" {
		return errors.ErrChatUnavailable
	}

	client, err := chat.NewClient(ctx.Config.GeminiAPIKey, ctx.Config.GeminiModel,
		ctx.Config.HTTPTimeout)
	if err != nil {
		return err
	}
	session := chat.NewSession(client)

	// One-shot mode when a message was given.
	if len(args) > 0 {
		message := validate.ChatMessage(strings.Join(args, " "))
		if message == "" {
			return errors.NewUserError("Empty message", "Type a question to ask")
		}

		c, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		reply, err := session.Send(c, message)
		if err != nil {
			ctx.Debugf("chat request failed: %v", err)
		}

		if ctx.IsJSON() {
			return ctx.JSONFormatter().JSON(map[string]interface{}{
				"question": message,
				"reply":    reply,
			})
		}

		ctx.Formatter.Println(reply)
		return nil
	}

	return tui.RunChat(session)
}
