// Package logging wires a leveled, structured logger over a rolling
// file appender, mirroring the console+rolling-file split the feeder
// has always logged through.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileName  = "tiny.log"
	rollSizeMiB  = 10
	rollBackups  = 10
)

// Logger wraps charmbracelet/log with the feeder's console+file setup.
type Logger struct {
	*log.Logger
}

// New builds a logger writing to stderr and, when dir is non-empty, to
// a rolling tiny.log file in dir capped at 10 MiB with up to 10
// backups. Backups use lumberjack's timestamped names
// (tiny-<timestamp>.log), not tiny.log.1 .. tiny.log.10.
func New(dir string, level log.Level) *Logger {
	var out io.Writer = os.Stderr
	if dir != "" {
		roller := &lumberjack.Logger{
			Filename:   dir + string(os.PathSeparator) + logFileName,
			MaxSize:    rollSizeMiB,
			MaxBackups: rollBackups,
			Compress:   false,
		}
		out = io.MultiWriter(os.Stderr, roller)
	}

	l := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	l.SetLevel(level)
	return &Logger{Logger: l}
}

// Component returns a child logger tagged with name, for per-adapter
// and per-subsystem log lines.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.With("component", name)}
}

var defaultLogger = New("", log.InfoLevel)

// SetDefault replaces the package-level default logger, called once
// by the runtime after the config is loaded.
func SetDefault(l *Logger) { defaultLogger = l }

// Default returns the package-level logger.
func Default() *Logger { return defaultLogger }
