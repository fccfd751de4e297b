package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// PIDFile Tests
// =============================================================================

func testPIDFile(t *testing.T) *PIDFile {
	t.Helper()
	return &PIDFile{path: filepath.Join(t.TempDir(), "lynne.pid")}
}

func TestPIDFileWriteRead(t *testing.T) {
	p := testPIDFile(t)

	require.NoError(t, p.WritePID(12345))
	assert.True(t, p.Exists())

	pid, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, 12345, pid)
}

func TestPIDFileReadMissing(t *testing.T) {
	p := testPIDFile(t)

	_, err := p.Read()
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestPIDFileReadGarbage(t *testing.T) {
	p := testPIDFile(t)
	require.NoError(t, os.WriteFile(p.path, []byte("not a pid"), 0644))

	_, err := p.Read()
	assert.Error(t, err)
}

func TestPIDFileRemove(t *testing.T) {
	p := testPIDFile(t)
	require.NoError(t, p.WritePID(1))
	require.NoError(t, p.Remove())
	assert.False(t, p.Exists())

	// Removing a missing file is fine.
	assert.NoError(t, p.Remove())
}

func TestPIDFileIsRunning(t *testing.T) {
	p := testPIDFile(t)

	// Our own PID is definitely running.
	require.NoError(t, p.Write())
	assert.True(t, p.IsRunning())
	assert.Equal(t, os.Getpid(), p.GetRunningPID())
}

func TestPIDFileStalePID(t *testing.T) {
	p := testPIDFile(t)

	// A PID that can't exist.
	require.NoError(t, p.WritePID(1<<22+12345))
	assert.False(t, p.IsRunning())
	assert.Equal(t, 0, p.GetRunningPID())
}

func TestIsProcessRunning(t *testing.T) {
	assert.True(t, IsProcessRunning(os.Getpid()))
	assert.False(t, IsProcessRunning(0))
	assert.False(t, IsProcessRunning(-1))
}

// =============================================================================
// Uptime Formatting Tests
// =============================================================================

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{48 * time.Hour, "2d"},
		{50 * time.Hour, "2d 2h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatUptime(tt.d))
	}
}

// =============================================================================
// Signal Handler Tests
// =============================================================================

func TestSignalHandlerStop(t *testing.T) {
	h := NewSignalHandler()
	h.Setup()
	defer h.Cleanup()

	done := make(chan os.Signal, 1)
	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		done <- h.Wait(ctx)
	}()

	h.Stop()

	select {
	case sig := <-done:
		assert.Nil(t, sig)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Stop")
	}
}
