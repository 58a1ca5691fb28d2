// Package logging holds the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogFile is the file logs go to while the terminal is taken by the control
// panel.
const LogFile = "mist.log"

var (
	mu            sync.Mutex
	defaultLogger = zerolog.New(consoleWriter(os.Stderr)).With().Timestamp().Logger()
)

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
}

func GetDefaultLogger() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := defaultLogger
	return &l
}

// SetOutput sends logs to w in human readable form.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = defaultLogger.Output(consoleWriter(w))
}

// SetLevel sets the minimum level of the default logger. An empty string
// means info.
func SetLevel(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = defaultLogger.Level(lvl)
	return nil
}

func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// OpenFile opens dir/mist.log for appending, creating dir if needed.
func OpenFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
