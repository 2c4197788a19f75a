// Package log provides file-backed structured logging on top of logrus.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vonZeppelin/tvshowl/filesystem"
	"github.com/vonZeppelin/tvshowl/key"
	"github.com/vonZeppelin/tvshowl/where"
)

var (
	// enabled indicates whether log emissions reach the backend at all.
	enabled bool

	// entry carries the fields shared by every emission of this invocation.
	entry = logrus.NewEntry(logrus.StandardLogger())
)

// RunID identifies the current invocation in every log line.
var RunID = uuid.NewString()

// Setup initializes the log file, formatter and level from the global configuration.
// When logs.write is off every emission is silently discarded.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	entry = logrus.WithField("run", RunID)
	return nil
}

// WithFields returns an entry with extra structured fields, or a discarding entry when logging is off.
func WithFields(fields logrus.Fields) *logrus.Entry {
	if !enabled {
		return logrus.NewEntry(discard)
	}
	return entry.WithFields(fields)
}

var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

// Severity-specific emissions, proxied to the backend when logging is enabled.

func Error(args ...interface{}) {
	if enabled {
		entry.Error(args...)
	}
}
func Warnf(format string, args ...interface{}) {
	if enabled {
		entry.Warnf(format, args...)
	}
}
func Info(args ...interface{}) {
	if enabled {
		entry.Info(args...)
	}
}
func Infof(format string, args ...interface{}) {
	if enabled {
		entry.Infof(format, args...)
	}
}
func Debugf(format string, args ...interface{}) {
	if enabled {
		entry.Debugf(format, args...)
	}
}
