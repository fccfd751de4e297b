package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrTargetNotSet:         "Set your daily pill time first: 'lynne target 9:00pm'.",
	ErrAlreadyCheckedIn:     "Use 'lynne checkin edit <TIME>' to change today's entry.",
	ErrNoCheckInToday:       "Use 'lynne checkin' to record today's pill.",
	ErrInvalidTime:          "Try formats like '9pm', '21:30', or '8:45am'.",
	ErrInvalidSettingsValue: "Reminder minutes must be whole numbers of 0 or more.",
	ErrWebhookNotFound:      "Use 'lynne webhook list' to see configured webhooks.",
	ErrCalendarNotConnected: "Connect a calendar first: 'lynne calendar connect'.",
	ErrChatUnavailable:      "Set LYNNE_GEMINI_API_KEY in your environment or .env file.",
	ErrArticleNotFound:      "Use 'lynne learn' to list available articles.",

	// System errors
	ErrDatabaseCorrupted: "A backup was created next to the database. Restore it or delete the db directory to start fresh.",
	ErrDaemonNotRunning:  "Start reminder delivery with 'lynne daemon start'.",
	ErrDaemonRunning:     "Stop the running daemon first, or check for a stale pid file.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check exact match first
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	// Check if it's a UserError with a suggestion
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	return ""
}

// GetCategorySuggestion returns a generic suggestion based on error category.
func GetCategorySuggestion(err error) string {
	if IsUserError(err) {
		return "Check your input and try again. Use --help for usage information."
	}
	if IsSystemError(err) {
		return "This is a system error. Check system resources and try again."
	}
	return ""
}
