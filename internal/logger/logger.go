// Package logger holds the process-wide structured logger used by the
// readers, the registry and the pgctl command.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger. It discards everything until Init enables it.
var L = slog.New(slog.DiscardHandler)

// closer releases the current log file, if any.
var closer io.Closer

const (
	logPrefix     = "pgctl-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures the logger.
type Options struct {
	Enabled bool       // false discards all output
	LogDir  string     // default: ~/.pgctl/logs
	Level   slog.Level // default: LevelInfo
	Output  io.Writer  // when set, records go here instead of a log file
}

// Init configures logging. Call once from main before anything logs.
func Init(opts Options) error {
	Close()
	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return nil
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.Output != nil {
		L = slog.New(slog.NewJSONHandler(opts.Output, handlerOpts))
		return nil
	}

	logDir := opts.LogDir
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		logDir = filepath.Join(home, ".pgctl", "logs")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	cleanOldLogs(logDir, time.Now())

	filename := filepath.Join(logDir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	closer = f
	L = slog.New(slog.NewJSONHandler(f, handlerOpts)).With("pid", os.Getpid())
	return nil
}

// Close flushes and releases the log file and resets L to discard.
func Close() {
	if closer != nil {
		closer.Close()
		closer = nil
	}
	L = slog.New(slog.DiscardHandler)
}

// cleanOldLogs removes pgctl-YYYY-MM-DD.log files older than retentionDays.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any) { L.Info(msg, args...) }
func Warn(msg string, args ...any) { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
