package model

import (
	"time"
)

// NotificationType defines the type of notification.
type NotificationType string

// Notification types.
const (
	NotifyPreReminder  NotificationType = "pre_reminder"
	NotifyMainReminder NotificationType = "reminder"
	NotifyFollowUp     NotificationType = "followup"
	NotifyCheckIn      NotificationType = "checkin"
	NotifyTest         NotificationType = "test"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Color     int               `json:"color,omitempty"` // Hex color for embeds
}

// NewNotification creates a new notification.
func NewNotification(t NotificationType, title, message string) *Notification {
	return &Notification{
		Type:      t,
		Title:     title,
		Message:   message,
		Fields:    make(map[string]string),
		Timestamp: time.Now(),
	}
}

// WithField adds a field to the notification.
func (n *Notification) WithField(key, value string) *Notification {
	if n.Fields == nil {
		n.Fields = make(map[string]string)
	}
	n.Fields[key] = value
	return n
}

// WithColor sets the embed color.
func (n *Notification) WithColor(color int) *Notification {
	n.Color = color
	return n
}

// Notification colors (Discord-compatible hex values).
const (
	ColorSuccess = 0x57F287 // Green
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x5865F2 // Blurple
	ColorError   = 0xED4245 // Red
	ColorPrimary = 0x3498DB // Blue
)

// DefaultColorForType returns the default color for a notification type.
func DefaultColorForType(t NotificationType) int {
	switch t {
	case NotifyPreReminder:
		return ColorInfo
	case NotifyMainReminder:
		return ColorWarning
	case NotifyFollowUp:
		return ColorError
	case NotifyCheckIn:
		return ColorSuccess
	case NotifyTest:
		return ColorPrimary
	default:
		return ColorInfo
	}
}

// Icon returns an emoji icon name for the notification type.
func (n *Notification) Icon() string {
	switch n.Type {
	case NotifyPreReminder:
		return "alarm_clock"
	case NotifyMainReminder:
		return "pill"
	case NotifyFollowUp:
		return "bell"
	case NotifyCheckIn:
		return "white_check_mark"
	case NotifyTest:
		return "test_tube"
	default:
		return "bell"
	}
}

// TypeLabel returns a human-readable label for the notification type.
func (n *Notification) TypeLabel() string {
	switch n.Type {
	case NotifyPreReminder:
		return "Heads-Up"
	case NotifyMainReminder:
		return "Pill Reminder"
	case NotifyFollowUp:
		return "Follow-Up Reminder"
	case NotifyCheckIn:
		return "Check-In"
	case NotifyTest:
		return "Test Notification"
	default:
		return "Notification"
	}
}

// FromPlanned converts a planner entry into a dispatchable notification.
func FromPlanned(p PlannedReminder) *Notification {
	var t NotificationType
	switch p.Kind {
	case ReminderPre:
		t = NotifyPreReminder
	case ReminderFollowUp:
		t = NotifyFollowUp
	default:
		t = NotifyMainReminder
	}
	n := NewNotification(t, p.Title, p.Body)
	n.Timestamp = p.At
	return n
}
