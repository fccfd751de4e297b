package runtime

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/output"
	"github.com/lynneapp/lynne/internal/parser"
)

// =============================================================================
// Context Tests
// =============================================================================

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.NotEmpty(t, opts.DBPath)
	assert.False(t, opts.InMemory)
	assert.Equal(t, output.FormatCLI, opts.Format)
	assert.Equal(t, output.ColorAuto, opts.ColorMode)
	assert.False(t, opts.Debug)
}

func TestNew(t *testing.T) {
	ctx, err := New(Options{InMemory: true})
	require.NoError(t, err)
	defer ctx.Close()

	assert.NotNil(t, ctx.DB)
	assert.NotNil(t, ctx.Formatter)
	assert.NotNil(t, ctx.Config)
	assert.NotNil(t, ctx.CheckInRepo)
	assert.NotNil(t, ctx.SettingsRepo)
	assert.NotNil(t, ctx.CalendarRepo)
	assert.NotNil(t, ctx.PlanRepo)
	assert.NotNil(t, ctx.WebhookRepo)
}

func TestNewWithOptions(t *testing.T) {
	ctx, err := New(Options{
		InMemory:  true,
		Format:    output.FormatJSON,
		ColorMode: output.ColorNever,
		Debug:     true,
	})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, output.FormatJSON, ctx.Formatter.Format)
	assert.Equal(t, output.ColorNever, ctx.Formatter.ColorMode)
	assert.True(t, ctx.Debug)
	assert.True(t, ctx.IsJSON())
	assert.False(t, ctx.IsCLI())
}

func TestClose(t *testing.T) {
	ctx, err := New(Options{InMemory: true})
	require.NoError(t, err)

	assert.NoError(t, ctx.Close())
}

func TestFormatters(t *testing.T) {
	ctx, err := New(Options{InMemory: true})
	require.NoError(t, err)
	defer ctx.Close()

	assert.NotNil(t, ctx.CLIFormatter())
	assert.NotNil(t, ctx.JSONFormatter())
}

func TestDebugf(t *testing.T) {
	ctx, err := New(Options{InMemory: true, Debug: true})
	require.NoError(t, err)
	defer ctx.Close()

	var buf bytes.Buffer
	ctx.Formatter.Writer = &buf

	ctx.Debugf("checking %s", "plan")
	assert.Contains(t, buf.String(), "[DEBUG] checking plan")

	buf.Reset()
	ctx.Debug = false
	ctx.Debugf("quiet")
	assert.Empty(t, buf.String())
}

// =============================================================================
// Error Formatting Tests
// =============================================================================

func TestFormatError(t *testing.T) {
	assert.Empty(t, FormatError(nil))

	t.Run("user_error", func(t *testing.T) {
		err := errors.NewUserError("Invalid time", "Use a clock time like '9:00pm'")
		msg := FormatError(err)
		assert.Contains(t, msg, "Invalid time")
		assert.Contains(t, msg, "9:00pm")
	})

	t.Run("sentinel_with_suggestion", func(t *testing.T) {
		msg := FormatError(errors.ErrTargetNotSet)
		assert.Contains(t, msg, "target time not set")
		assert.Contains(t, msg, "lynne target")
	})

	t.Run("parse_error_includes_examples", func(t *testing.T) {
		msg := FormatError(parser.NewTimeOfDayError("blorp"))
		assert.Contains(t, msg, "blorp")
		assert.Contains(t, msg, "Valid examples")
	})

	t.Run("plain_error", func(t *testing.T) {
		assert.Equal(t, "boom", FormatError(errors.New("boom")))
	})
}

func TestPrintError(t *testing.T) {
	t.Run("cli", func(t *testing.T) {
		ctx, err := New(Options{InMemory: true, ColorMode: output.ColorNever})
		require.NoError(t, err)
		defer ctx.Close()

		var buf bytes.Buffer
		ctx.Formatter.Writer = &buf

		ctx.PrintError(errors.ErrTargetNotSet)
		assert.Contains(t, buf.String(), "✗")
		assert.Contains(t, buf.String(), "target time not set")
	})

	t.Run("json", func(t *testing.T) {
		ctx, err := New(Options{InMemory: true, Format: output.FormatJSON})
		require.NoError(t, err)
		defer ctx.Close()

		var buf bytes.Buffer
		ctx.Formatter.Writer = &buf

		ctx.PrintError(errors.ErrTargetNotSet)
		assert.Contains(t, buf.String(), `"status": "error"`)
	})

	t.Run("nil", func(t *testing.T) {
		ctx, err := New(Options{InMemory: true})
		require.NoError(t, err)
		defer ctx.Close()

		var buf bytes.Buffer
		ctx.Formatter.Writer = &buf
		ctx.PrintError(nil)
		assert.Empty(t, buf.String())
	})
}
