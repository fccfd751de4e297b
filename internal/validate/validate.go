// Package validate provides input validation helpers for the Lynne CLI.
package validate

import (
	"net/url"
	"strconv"

	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/model"
)

const (
	// MaxURLLength is the maximum length for a URL.
	MaxURLLength = 2048
	// MaxReminderMinutes bounds the settings fields; a day is plenty.
	MaxReminderMinutes = 24 * 60
)

// Minutes parses a settings field that must be a whole number of minutes,
// zero or more.
func Minutes(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.NewUserErrorWithField(field, value,
			"Not a number",
			"Enter a whole number of minutes, like 10")
	}
	if n < 0 {
		return 0, errors.NewUserErrorWithField(field, value,
			"Minutes cannot be negative",
			"Enter 0 or more")
	}
	if n > MaxReminderMinutes {
		return 0, errors.NewUserErrorWithField(field, value,
			"Minutes too large",
			"Enter a value up to 1440 (one day)")
	}
	return n, nil
}

// Settings validates a whole settings record.
func Settings(s *model.NotificationSettings) error {
	if s.PreNotificationTime < 0 || s.PreNotificationTime > MaxReminderMinutes {
		return errors.NewUserError("Pre-notification time out of range",
			"Use 0 to 1440 minutes")
	}
	if s.ReminderInterval < 0 || s.ReminderInterval > MaxReminderMinutes {
		return errors.NewUserError("Reminder interval out of range",
			"Use 0 to 1440 minutes")
	}
	return nil
}

// WebhookName validates a webhook name.
func WebhookName(name string) error {
	if !model.IsValidWebhookName(name) {
		return errors.NewUserErrorWithField("name", name,
			"Invalid webhook name",
			"Use letters, numbers, dashes, and underscores (max 50 chars)")
	}
	return nil
}

// URL validates a webhook URL. HTTPS is required except for localhost.
func URL(rawURL string) error {
	if rawURL == "" {
		return errors.NewUserError("URL cannot be empty", "Provide a valid URL")
	}
	if len(rawURL) > MaxURLLength {
		return errors.NewUserError("URL too long", "URLs must be 2048 characters or fewer")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL format",
			"Provide a valid URL starting with https://")
	}

	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL scheme",
			"URLs must use https:// (or http:// for localhost)")
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL: missing hostname",
			"Provide a valid URL like https://example.com/webhook")
	}

	isLocalhost := hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1"
	if parsed.Scheme == "http" && !isLocalhost {
		return errors.NewUserErrorWithField("url", rawURL,
			"HTTP not allowed for external URLs",
			"Use https://. HTTP is only allowed for localhost.")
	}

	return nil
}
