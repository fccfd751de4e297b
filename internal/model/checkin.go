package model

import (
	"sort"
	"time"
)

// CheckInStatus classifies how far a check-in landed from the daily target.
type CheckInStatus string

// Lateness statuses, least to most severe.
const (
	StatusOnTime       CheckInStatus = "onTime"
	StatusSlightlyLate CheckInStatus = "slightlyLate"
	StatusVeryLate     CheckInStatus = "veryLate"
	StatusMissed       CheckInStatus = "missed"
)

// AllStatuses returns the statuses in severity order.
func AllStatuses() []CheckInStatus {
	return []CheckInStatus{StatusOnTime, StatusSlightlyLate, StatusVeryLate, StatusMissed}
}

// Severity returns the ordinal severity of a status (0 = on time).
func (s CheckInStatus) Severity() int {
	switch s {
	case StatusOnTime:
		return 0
	case StatusSlightlyLate:
		return 1
	case StatusVeryLate:
		return 2
	case StatusMissed:
		return 3
	default:
		return -1
	}
}

// IsValid returns true for one of the four known statuses.
func (s CheckInStatus) IsValid() bool {
	return s.Severity() >= 0
}

// Label returns a human-readable label for the status.
func (s CheckInStatus) Label() string {
	switch s {
	case StatusOnTime:
		return "On time"
	case StatusSlightlyLate:
		return "Slightly late"
	case StatusVeryLate:
		return "Very late"
	case StatusMissed:
		return "Missed"
	default:
		return string(s)
	}
}

// CheckInRecord is one day's check-in. Status is computed at write time
// from the timestamp and the target in effect; it is never recomputed.
type CheckInRecord struct {
	Status     CheckInStatus `json:"status"`
	Timestamp  time.Time     `json:"timestamp"`
	TargetTime time.Time     `json:"targetTime"`
}

// CheckInHistory maps a local date key (YYYY-MM-DD) to that day's record.
type CheckInHistory map[string]CheckInRecord

// DateKeyLayout is the layout for history map keys.
const DateKeyLayout = "2006-01-02"

// DateKey returns the history key for the local date of t.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// Dates returns the history's date keys in ascending order.
func (h CheckInHistory) Dates() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ForMonth returns the subset of records falling in the given month,
// keyed by day of month.
func (h CheckInHistory) ForMonth(year int, month time.Month) map[int]CheckInRecord {
	out := make(map[int]CheckInRecord)
	for k, rec := range h {
		d, err := time.ParseInLocation(DateKeyLayout, k, time.Local)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			out[d.Day()] = rec
		}
	}
	return out
}
