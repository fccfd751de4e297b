package model

// NotificationSettings holds the user's reminder preferences (singleton).
// The record is replaced wholesale on every save.
type NotificationSettings struct {
	Key string `json:"key"`
	// PreNotificationTime is how many minutes before the target time the
	// heads-up notification fires.
	PreNotificationTime int `json:"preNotificationTime" validate:"min=0"`
	// ReminderInterval is the spacing in minutes between follow-up
	// reminders after the target time. Zero disables follow-ups.
	ReminderInterval int `json:"reminderInterval" validate:"min=0"`
	// StopAfterCheckIn cancels pending reminders once the day's check-in
	// is recorded.
	StopAfterCheckIn bool `json:"stopRemindersAfterCheckIn"`
}

// SetKey sets the database key for the settings record.
func (s *NotificationSettings) SetKey(key string) {
	s.Key = key
}

// GetKey returns the database key for the settings record.
func (s *NotificationSettings) GetKey() string {
	return s.Key
}

// DefaultNotificationSettings returns the out-of-the-box settings.
func DefaultNotificationSettings() *NotificationSettings {
	return &NotificationSettings{
		Key:                 KeySettings,
		PreNotificationTime: 10,
		ReminderInterval:    10,
		StopAfterCheckIn:    true,
	}
}
