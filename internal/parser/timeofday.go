// Package parser handles natural language time input for the Lynne CLI.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// TimeOfDayResult holds a parsed clock time and any error.
type TimeOfDayResult struct {
	Hour   int
	Minute int
	Error  error
}

// clockRegex matches clock expressions like "9pm", "9:30pm", "21:00".
var clockRegex = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ParseTimeOfDay parses a clock time like "9:00pm", "21:00", or "9am".
// Falls back to natural language parsing for inputs like "noon".
func ParseTimeOfDay(input string) TimeOfDayResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return TimeOfDayResult{Error: NewTimeOfDayError(input)}
	}

	if match := clockRegex.FindStringSubmatch(input); match != nil {
		return parseClock(match[1], match[2], match[3], input)
	}

	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return TimeOfDayResult{Error: NewTimeOfDayError(input)}
	}

	return TimeOfDayResult{Hour: result.Time.Hour(), Minute: result.Time.Minute()}
}

func parseClock(hourStr, minuteStr, meridiem, input string) TimeOfDayResult {
	hour, _ := strconv.Atoi(hourStr)
	minute := 0
	if minuteStr != "" {
		minute, _ = strconv.Atoi(minuteStr)
	}

	meridiem = strings.ToLower(meridiem)
	switch meridiem {
	case "am":
		if hour < 1 || hour > 12 {
			return TimeOfDayResult{Error: NewTimeOfDayError(input)}
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return TimeOfDayResult{Error: NewTimeOfDayError(input)}
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return TimeOfDayResult{Error: NewTimeOfDayError(input)}
		}
	}

	if minute > 59 {
		return TimeOfDayResult{Error: NewTimeOfDayError(input)}
	}

	return TimeOfDayResult{Hour: hour, Minute: minute}
}

// At pins the parsed clock time to the given day.
func (r TimeOfDayResult) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), r.Hour, r.Minute, 0, 0, day.Location())
}

// TimestampResult holds a parsed timestamp and any error.
type TimestampResult struct {
	Time  time.Time
	Error error
}

// ParseTimestamp parses a natural language timestamp expression like
// "8:45am", "2 hours ago", or "now".
func ParseTimestamp(input string) TimestampResult {
	input = strings.TrimSpace(input)
	if input == "" || strings.ToLower(input) == "now" {
		return TimestampResult{Time: time.Now()}
	}

	if match := clockRegex.FindStringSubmatch(input); match != nil {
		clock := parseClock(match[1], match[2], match[3], input)
		if clock.Error != nil {
			return TimestampResult{Error: NewTimestampError(input)}
		}
		return TimestampResult{Time: clock.At(time.Now())}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return TimestampResult{Error: NewTimestampError(input)}
	}

	return TimestampResult{Time: result.Time}
}
