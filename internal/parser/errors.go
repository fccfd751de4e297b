package parser

import (
	"fmt"
	"strings"

	"github.com/lynneapp/lynne/internal/errors"
)

// TimeParseError represents a time parsing error with helpful suggestions.
type TimeParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// FormatWithExamples returns the error message with example suggestions.
func (e *TimeParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// TimeOfDayExamples provides example clock time formats.
var TimeOfDayExamples = []string{
	"9:00pm",
	"9pm",
	"21:00",
	"8:30am",
	"noon",
}

// TimestampExamples provides example timestamp formats.
var TimestampExamples = []string{
	"8:45am",
	"21:15",
	"2 hours ago",
	"yesterday at 9pm",
	"now",
}

// NewTimeOfDayError creates a clock time parse error with standard examples.
func NewTimeOfDayError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "time",
		Message:    "could not parse time of day",
		Examples:   TimeOfDayExamples,
		Suggestion: "Use a clock time like '9:00pm' or '21:00'.",
	}
}

// NewTimestampError creates a timestamp parse error with standard examples.
func NewTimestampError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "timestamp",
		Message:    "could not parse time",
		Examples:   TimestampExamples,
		Suggestion: "Try using natural language like '8:45am' or '2 hours ago'.",
	}
}

// ToUserError converts a TimeParseError to a UserError for consistent handling.
func (e *TimeParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		n := len(e.Examples)
		if n > 3 {
			n = 3
		}
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:n], ", "))
	}

	return errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
}
