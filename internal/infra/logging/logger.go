// Package logging writes bugtrack's activity log.
// Every line goes to .bugtrack/logs/bugtrack.log; lines about a task also go
// to .bugtrack/logs/task-<id>.log so 'bugtrack logs <id>' can show its history.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/bugtrack/internal/domain"
)

var _ domain.Logger = (*Logger)(nil)

const (
	attrTask     = "task"
	attrCategory = "category"
	timeLayout   = "2006-01-02 15:04:05"
)

// Logger sends categorized records through slog to the log files.
// Files are opened on first write and reopened after Close.
// Fields are ordered to minimize memory padding.
type Logger struct {
	files   map[string]*os.File // "" is the global log
	now     func() time.Time
	level   *slog.LevelVar
	dataDir string
	mu      sync.Mutex
}

// New creates a Logger writing under dataDir/logs.
// An empty dataDir disables logging.
func New(dataDir string, level slog.Level) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level)
	return &Logger{
		dataDir: dataDir,
		level:   lv,
		now:     time.Now,
		files:   make(map[string]*os.File),
	}
}

// ParseLevel parses debug, info, warn or error. Anything else is info.
func ParseLevel(levelStr string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(levelStr)))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Info logs an info message.
func (l *Logger) Info(taskID, category, msg string) { l.log(slog.LevelInfo, taskID, category, msg) }

// Debug logs a debug message.
func (l *Logger) Debug(taskID, category, msg string) { l.log(slog.LevelDebug, taskID, category, msg) }

// Warn logs a warning message.
func (l *Logger) Warn(taskID, category, msg string) { l.log(slog.LevelWarn, taskID, category, msg) }

// Error logs an error message.
func (l *Logger) Error(taskID, category, msg string) { l.log(slog.LevelError, taskID, category, msg) }

func (l *Logger) log(level slog.Level, taskID, category, msg string) {
	if l.dataDir == "" || level < l.level.Level() {
		return
	}

	rec := slog.NewRecord(l.now(), level, msg, 0)
	rec.AddAttrs(slog.String(attrTask, taskID), slog.String(attrCategory, category))

	l.mu.Lock()
	defer l.mu.Unlock()

	targets := []string{""}
	if taskID != "" {
		targets = append(targets, taskID)
	}
	for _, target := range targets {
		f, err := l.file(target)
		if err != nil {
			continue
		}
		_ = (&lineHandler{w: f, level: l.level}).Handle(context.Background(), rec)
	}
}

// file returns the open log file for taskID, or the global log for "".
func (l *Logger) file(taskID string) (*os.File, error) {
	if f, ok := l.files[taskID]; ok {
		return f, nil
	}
	if err := os.MkdirAll(filepath.Join(l.dataDir, "logs"), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.GlobalLogPath(l.dataDir)
	if taskID != "" {
		path = domain.TaskLogPath(l.dataDir, taskID)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.files[taskID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for id, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(l.files, id)
	}
	return firstErr
}

// lineHandler renders records as
// [2025-12-30 09:32:51] [INFO] [task-<id>|global] [category] message
type lineHandler struct {
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	scope, category := "global", ""
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case attrTask:
			scope = "global"
			if id := a.Value.String(); id != "" {
				scope = "task-" + id
			}
		case attrCategory:
			category = a.Value.String()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	r.Attrs(apply)

	_, err := fmt.Fprintf(h.w, "[%s] [%s] [%s] [%s] %s\n",
		r.Time.Format(timeLayout), r.Level, scope, category, r.Message)
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *lineHandler) WithGroup(string) slog.Handler {
	return h
}
