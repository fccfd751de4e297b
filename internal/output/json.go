package output

import (
	"time"

	"github.com/lynneapp/lynne/internal/adherence"
	"github.com/lynneapp/lynne/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// CheckInOutput represents one check-in in JSON output.
type CheckInOutput struct {
	Date       string `json:"date"`
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	TargetTime string `json:"target_time"`
}

// NewCheckInOutput creates a CheckInOutput from a record.
func NewCheckInOutput(date string, rec model.CheckInRecord) *CheckInOutput {
	return &CheckInOutput{
		Date:       date,
		Status:     string(rec.Status),
		Timestamp:  rec.Timestamp.Format(time.RFC3339),
		TargetTime: rec.TargetTime.Format(time.RFC3339),
	}
}

// StatusResponse represents the status output in JSON.
type StatusResponse struct {
	Status     string         `json:"status"`
	TargetTime string         `json:"target_time,omitempty"`
	Today      *CheckInOutput `json:"today,omitempty"`
}

// CheckInResponse represents the checkin command output in JSON.
type CheckInResponse struct {
	Status  string         `json:"status"`
	CheckIn *CheckInOutput `json:"check_in"`
	Message string         `json:"message,omitempty"`
}

// HistoryResponse represents the history output in JSON.
type HistoryResponse struct {
	CheckIns []*CheckInOutput `json:"check_ins"`
	Count    int              `json:"count"`
}

// NewHistoryResponse creates a HistoryResponse from history, oldest first.
func NewHistoryResponse(h model.CheckInHistory) *HistoryResponse {
	dates := h.Dates()
	out := make([]*CheckInOutput, 0, len(dates))
	for _, date := range dates {
		out = append(out, NewCheckInOutput(date, h[date]))
	}
	return &HistoryResponse{CheckIns: out, Count: len(out)}
}

// StatsResponse represents adherence stats in JSON.
type StatsResponse struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	OnTimeRate float64        `json:"on_time_rate"`
	Streak     int            `json:"streak"`
}

// NewStatsResponse creates a StatsResponse from stats.
func NewStatsResponse(stats adherence.Stats) *StatsResponse {
	byStatus := make(map[string]int, len(stats.ByStatus))
	for s, n := range stats.ByStatus {
		byStatus[string(s)] = n
	}
	return &StatsResponse{
		Total:      stats.Total,
		ByStatus:   byStatus,
		OnTimeRate: stats.OnTimeRate,
		Streak:     stats.Streak,
	}
}

// SettingsResponse represents settings output in JSON.
type SettingsResponse struct {
	PreNotificationTime int  `json:"pre_notification_time"`
	ReminderInterval    int  `json:"reminder_interval"`
	StopAfterCheckIn    bool `json:"stop_after_check_in"`
	Defaulted           bool `json:"defaulted"`
}

// NewSettingsResponse creates a SettingsResponse.
func NewSettingsResponse(s *model.NotificationSettings, defaulted bool) *SettingsResponse {
	return &SettingsResponse{
		PreNotificationTime: s.PreNotificationTime,
		ReminderInterval:    s.ReminderInterval,
		StopAfterCheckIn:    s.StopAfterCheckIn,
		Defaulted:           defaulted,
	}
}

// ConflictResponse represents a conflict check result in JSON.
type ConflictResponse struct {
	TargetTime string          `json:"target_time"`
	Conflict   *ConflictOutput `json:"conflict,omitempty"`
}

// ConflictOutput represents a single conflict recommendation in JSON.
type ConflictOutput struct {
	Event  string `json:"event"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// NewConflictResponse creates a ConflictResponse; rec may be nil.
func NewConflictResponse(target time.Time, rec *model.ConflictRecommendation) *ConflictResponse {
	resp := &ConflictResponse{TargetTime: target.Format(time.RFC3339)}
	if rec != nil {
		resp.Conflict = &ConflictOutput{
			Event:  rec.Event.Title(),
			Start:  rec.Event.Start.Format(time.RFC3339),
			End:    rec.Event.End.Format(time.RFC3339),
			Before: rec.Before.Format(time.RFC3339),
			After:  rec.After.Format(time.RFC3339),
		}
	}
	return resp
}

// PlanResponse represents the reminder plan in JSON.
type PlanResponse struct {
	Target    string            `json:"target,omitempty"`
	Reminders []*ReminderOutput `json:"reminders"`
	Count     int               `json:"count"`
}

// ReminderOutput represents one planned reminder in JSON.
type ReminderOutput struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	At        string `json:"at"`
	Title     string `json:"title"`
	Delivered bool   `json:"delivered"`
}

// NewPlanResponse creates a PlanResponse; plan may be nil.
func NewPlanResponse(plan *model.ReminderPlan) *PlanResponse {
	resp := &PlanResponse{Reminders: []*ReminderOutput{}}
	if plan == nil {
		return resp
	}
	resp.Target = plan.Target.Format(time.RFC3339)
	for _, e := range plan.Entries {
		resp.Reminders = append(resp.Reminders, &ReminderOutput{
			ID:        e.ID,
			Kind:      string(e.Kind),
			At:        e.At.Format(time.RFC3339),
			Title:     e.Title,
			Delivered: e.Delivered,
		})
	}
	resp.Count = len(resp.Reminders)
	return resp
}

// WebhookOutput represents a webhook in JSON output.
type WebhookOutput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	Enabled   bool   `json:"enabled"`
	LastUsed  string `json:"last_used,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// NewWebhookOutput creates a WebhookOutput from a webhook.
func NewWebhookOutput(w *model.Webhook) *WebhookOutput {
	out := &WebhookOutput{
		Name:      w.Name,
		Type:      w.Type,
		URL:       w.MaskedURL(),
		Enabled:   w.Enabled,
		LastError: w.LastError,
	}
	if !w.LastUsed.IsZero() {
		out.LastUsed = w.LastUsed.Format(time.RFC3339)
	}
	return out
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
