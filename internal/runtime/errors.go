package runtime

import (
	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/output"
	"github.com/lynneapp/lynne/internal/parser"
)

// FormatError formats an error with an actionable suggestion when one is
// known.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var parseErr *parser.TimeParseError
	if errors.As(err, &parseErr) {
		return parseErr.FormatWithExamples()
	}

	if ue, ok := errors.AsUserError(err); ok {
		msg := ue.Error()
		if ue.Suggestion != "" {
			msg += "\n" + ue.Suggestion
		}
		return msg
	}

	msg := err.Error()
	if suggestion := errors.GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}

// PrintError writes an error through the active formatter, honoring the
// JSON output mode.
func (c *Context) PrintError(err error) {
	if err == nil {
		return
	}

	if c.IsJSON() {
		_ = c.JSONFormatter().JSON(&output.ErrorResponse{
			Status:  "error",
			Error:   err.Error(),
			Message: errors.GetSuggestion(err),
		})
		return
	}

	c.CLIFormatter().Error(FormatError(err))
}
