package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/jira-attach/internal/domain"
)

// ShowLogsInput contains the parameters for showing the operational log.
type ShowLogsInput struct {
	IssueKey string // Empty = global log
	Lines    int    // Number of lines to display from the end (0 = all)
}

// ShowLogsOutput contains the result of showing the log.
type ShowLogsOutput struct {
	LogPath string // Path to the log file
	Content string // Log file content
}

// ShowLogs is the use case for viewing the operational log.
type ShowLogs struct {
	dataDir string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(dataDir string) *ShowLogs {
	return &ShowLogs{dataDir: dataDir}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	logPath := domain.GlobalLogPath(uc.dataDir)
	if in.IssueKey != "" {
		key, err := domain.NormalizeIssueKey(in.IssueKey)
		if err != nil {
			return nil, err
		}
		logPath = domain.IssueLogPath(uc.dataDir, key)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no log file found at %s: %w", logPath, err)
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	// If lines is specified, get only the last N lines
	result := string(content)
	if in.Lines > 0 {
		lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
		if len(lines) > in.Lines {
			lines = lines[len(lines)-in.Lines:]
		}
		result = strings.Join(lines, "\n") + "\n"
	}

	return &ShowLogsOutput{
		LogPath: logPath,
		Content: result,
	}, nil
}
