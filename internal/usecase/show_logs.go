package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// ShowLogsInput contains the parameters for showing logs.
type ShowLogsInput struct {
	TaskID string // Task to show logs for (empty = global log)
	Lines  int    // Number of lines to display from the end (0 = all)
}

// ShowLogsOutput contains the result of showing logs.
type ShowLogsOutput struct {
	LogPath string
	Content string
}

// ShowLogs is the use case for viewing the global or a task's log.
type ShowLogs struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	dataDir  string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(tasks domain.TaskRepository, sessions domain.SessionStore, dataDir string) *ShowLogs {
	return &ShowLogs{tasks: tasks, sessions: sessions, dataDir: dataDir}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	logPath := domain.GlobalLogPath(uc.dataDir)
	if in.TaskID != "" {
		// Task must still exist and be in the user's scope
		actor, err := shared.CurrentActor(uc.sessions)
		if err != nil {
			return nil, err
		}
		if _, err := shared.GetVisibleTask(uc.tasks, actor, in.TaskID); err != nil {
			return nil, err
		}
		logPath = domain.TaskLogPath(uc.dataDir, in.TaskID)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", logPath, domain.ErrNoLogFile)
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return &ShowLogsOutput{
		LogPath: logPath,
		Content: tailLines(string(content), in.Lines),
	}, nil
}

// tailLines returns the last n lines of s. n <= 0 returns s unchanged.
func tailLines(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n") + "\n"
}
