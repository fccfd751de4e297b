package daemon

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lynneapp/lynne/internal/logging"
)

// InitLogging routes structured logs to the daemon log file. Used when
// running in the foreground under a service manager, where stderr goes
// nowhere useful.
func InitLogging(debug bool) (*os.File, error) {
	logPath := GetLogPath()

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logging.Init(logging.Config{
		Level:  level,
		JSON:   true,
		Output: file,
	})

	return file, nil
}
