package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lynneapp/lynne/internal/model"
)

// SampleEvents returns the demo event set used when connecting without a
// real calendar export, pinned to today's date.
func SampleEvents(now time.Time) []model.CalendarEvent {
	day := func(h, m int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	}
	return []model.CalendarEvent{
		{Summary: "Morning Meeting", Start: day(9, 0), End: day(10, 0)},
		{Summary: "Lunch with Team", Start: day(12, 0), End: day(13, 0)},
		{Summary: "Project Review", Start: day(14, 0), End: day(15, 30)},
		{Summary: "Gym", Start: day(17, 0), End: day(18, 0)},
	}
}

// LoadEventsFile reads calendar events from a JSON file: an array of
// objects with summary, start, and end fields (RFC 3339 timestamps).
func LoadEventsFile(path string) ([]model.CalendarEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}

	var events []model.CalendarEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode events file: %w", err)
	}

	for i, e := range events {
		if e.End.Before(e.Start) {
			return nil, fmt.Errorf("event %d (%s): end precedes start", i, e.Title())
		}
	}
	return events, nil
}
