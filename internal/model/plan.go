package model

import "time"

// ReminderKind distinguishes the entries of a reminder plan.
type ReminderKind string

// Reminder kinds.
const (
	ReminderPre      ReminderKind = "pre"
	ReminderMain     ReminderKind = "main"
	ReminderFollowUp ReminderKind = "followup"
)

// PlannedReminder is a single notification instant computed by the
// planner. Delivery is the daemon's job; the planner only fills in the
// instant and the content strings.
type PlannedReminder struct {
	ID        string       `json:"id"`
	Kind      ReminderKind `json:"kind"`
	At        time.Time    `json:"at"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	Delivered bool         `json:"delivered,omitempty"`
}

// ReminderPlan is today's full notification schedule (singleton).
// Syncing replaces the whole plan; cancelling deletes it. There is no
// per-notification bookkeeping beyond the Delivered flag.
type ReminderPlan struct {
	Key       string            `json:"key"`
	Target    time.Time         `json:"target"`
	CreatedAt time.Time         `json:"createdAt"`
	Entries   []PlannedReminder `json:"entries"`
}

// SetKey sets the database key for the plan.
func (p *ReminderPlan) SetKey(key string) {
	p.Key = key
}

// GetKey returns the database key for the plan.
func (p *ReminderPlan) GetKey() string {
	return p.Key
}

// Pending returns the entries not yet delivered whose instant is at or
// before now.
func (p *ReminderPlan) Pending(now time.Time) []PlannedReminder {
	var due []PlannedReminder
	for _, e := range p.Entries {
		if !e.Delivered && !e.At.After(now) {
			due = append(due, e)
		}
	}
	return due
}

// Upcoming returns the entries not yet delivered whose instant is still
// in the future.
func (p *ReminderPlan) Upcoming(now time.Time) []PlannedReminder {
	var future []PlannedReminder
	for _, e := range p.Entries {
		if !e.Delivered && e.At.After(now) {
			future = append(future, e)
		}
	}
	return future
}

// MarkDelivered flags the entry with the given ID as delivered.
func (p *ReminderPlan) MarkDelivered(id string) {
	for i := range p.Entries {
		if p.Entries[i].ID == id {
			p.Entries[i].Delivered = true
			return
		}
	}
}
