// Package adherence classifies check-ins against the daily target time.
package adherence

import (
	"time"

	"github.com/lynneapp/lynne/internal/model"
)

// Lateness boundaries in minutes. A diff equal to a boundary falls into
// the lower bucket.
const (
	OnTimeWindow       = 5
	SlightlyLateWindow = 15
	VeryLateWindow     = 60
)

// Classify maps the absolute deviation from the target time, in minutes,
// to a lateness status. Negative input is treated as zero.
func Classify(diffMinutes int) model.CheckInStatus {
	switch {
	case diffMinutes <= OnTimeWindow:
		return model.StatusOnTime
	case diffMinutes <= SlightlyLateWindow:
		return model.StatusSlightlyLate
	case diffMinutes <= VeryLateWindow:
		return model.StatusVeryLate
	default:
		return model.StatusMissed
	}
}

// DiffMinutes returns the absolute difference between the times-of-day of
// the check-in and the target, in whole minutes. Dates are ignored; only
// hour and minute take part.
func DiffMinutes(checkIn, target time.Time) int {
	c := checkIn.Hour()*60 + checkIn.Minute()
	g := target.Hour()*60 + target.Minute()
	diff := c - g
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// Evaluate classifies a check-in instant against a target instant.
func Evaluate(checkIn, target time.Time) model.CheckInStatus {
	return Classify(DiffMinutes(checkIn, target))
}

// ResultMessage returns the message shown to the user after a check-in.
func ResultMessage(status model.CheckInStatus) string {
	switch status {
	case model.StatusOnTime:
		return "You checked in within the acceptable time window!"
	case model.StatusSlightlyLate:
		return "You're a bit late, but still okay. Try to be more punctual tomorrow."
	case model.StatusVeryLate:
		return "You're quite late. Please try to take your pill closer to your daily time."
	default:
		return "You've missed your window by over an hour. Take your pill as soon as possible and check with your provider."
	}
}
