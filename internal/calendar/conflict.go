// Package calendar checks the daily target time against cached calendar
// events.
package calendar

import (
	"time"

	"github.com/lynneapp/lynne/internal/model"
)

// Recommendation offsets around a conflicting event.
const (
	beforeMargin = 30 * time.Minute
	afterMargin  = 5 * time.Minute
)

// FindConflict scans the snapshot's events in stored order and reports
// the first one whose span covers the target's time-of-day, together
// with two alternative times around it. Returns nil when the calendar is
// not connected, no events are cached, or nothing overlaps.
//
// Matching compares minutes-of-day only; the event's date is ignored, so
// events from the cached day recur against every future day. That is the
// snapshot model: the cache is taken once at connect time.
func FindConflict(target time.Time, snap *model.CalendarSnapshot) *model.ConflictRecommendation {
	if snap == nil || !snap.IsConnected || len(snap.Events) == 0 {
		return nil
	}

	tm := minuteOfDay(target)
	for _, event := range snap.Events {
		if minuteOfDay(event.Start) <= tm && tm <= minuteOfDay(event.End) {
			return &model.ConflictRecommendation{
				Event:  event,
				Before: event.Start.Add(-beforeMargin),
				After:  event.End.Add(afterMargin),
			}
		}
	}
	return nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
