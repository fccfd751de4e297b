// Package model defines the domain models for Lynne.
package model

// Model is the interface that all database models must implement.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// Storage keys. Singleton records live under fixed keys; webhooks use a
// prefix and one record per name.
const (
	KeyCheckInHistory  = "checkin_history"
	KeyDailyTargetTime = "daily_target_time"
	KeySettings        = "notification_settings"
	KeyCalendarData    = "calendar_data"
	KeyReminderPlan    = "reminder_plan"
)
