package model

import "time"

// CalendarEvent is one busy slot from the user's connected calendar.
type CalendarEvent struct {
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// Title returns the event summary, or "Busy" when the calendar gave none.
func (e CalendarEvent) Title() string {
	if e.Summary == "" {
		return "Busy"
	}
	return e.Summary
}

// CalendarSnapshot is the cached copy of calendar data taken at connect
// time (singleton). The conflict checker never re-fetches; disconnecting
// deletes the snapshot.
type CalendarSnapshot struct {
	Key         string          `json:"key"`
	IsConnected bool            `json:"isConnected"`
	Events      []CalendarEvent `json:"events"`
	FetchedAt   time.Time       `json:"fetchedAt,omitempty"`
}

// SetKey sets the database key for the snapshot.
func (c *CalendarSnapshot) SetKey(key string) {
	c.Key = key
}

// GetKey returns the database key for the snapshot.
func (c *CalendarSnapshot) GetKey() string {
	return c.Key
}

// ConflictRecommendation reports a calendar event overlapping the target
// time, with two suggested alternatives around it.
type ConflictRecommendation struct {
	Event CalendarEvent `json:"conflictEvent"`
	// Before is 30 minutes before the conflicting event starts.
	Before time.Time `json:"before"`
	// After is 5 minutes after the conflicting event ends.
	After time.Time `json:"after"`
}
