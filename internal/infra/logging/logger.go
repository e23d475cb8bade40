// Package logging provides file-based logging for jira-attach.
// It outputs logs to both a global log file (<data>/logs/jira-attach.log)
// and issue-specific log files (<data>/logs/<KEY>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/jira-attach/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes formatted entries to the global and per-issue log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	now        func() time.Time
	globalFile *os.File
	issueFiles map[string]*os.File
	dataDir    string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes below dataDir/logs.
// If dataDir is empty, logging is disabled.
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		dataDir:    dataDir,
		level:      level,
		now:        time.Now,
		issueFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) ensureLogsDir() error {
	return os.MkdirAll(filepath.Join(l.dataDir, "logs"), 0o750)
}

func (l *Logger) openLocked(path string) (*os.File, error) {
	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openLocked(domain.GlobalLogPath(l.dataDir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

// ensureIssueFile opens or returns the log file of an issue.
func (l *Logger) ensureIssueFile(issueKey string) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.issueFiles[issueKey]; ok {
		return f, nil
	}
	f, err := l.openLocked(domain.IssueLogPath(l.dataDir, issueKey))
	if err != nil {
		return nil, err
	}
	l.issueFiles[issueKey] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for key, f := range l.issueFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.issueFiles, key)
	}
	return lastErr
}

// formatLog formats one entry.
// Format: [2025-12-30 09:32:51] [INFO] [TES-3] [category] message
func formatLog(t time.Time, level slog.Level, issueKey, category, msg string) string {
	scope := "global"
	if issueKey != "" {
		scope = issueKey
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes to the global log and, when issueKey is set, the issue log.
func (l *Logger) log(level slog.Level, issueKey, category, msg string) {
	if l.dataDir == "" || level < l.level {
		return
	}

	entry := formatLog(l.now(), level, issueKey, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}
	if issueKey != "" {
		if f, err := l.ensureIssueFile(issueKey); err == nil {
			_, _ = io.WriteString(f, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(issueKey, category, msg string) {
	l.log(slog.LevelInfo, issueKey, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(issueKey, category, msg string) {
	l.log(slog.LevelDebug, issueKey, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(issueKey, category, msg string) {
	l.log(slog.LevelWarn, issueKey, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(issueKey, category, msg string) {
	l.log(slog.LevelError, issueKey, category, msg)
}
