package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// openEditorFunc opens a file in the user's editor. Tests replace it.
var openEditorFunc = openEditor

// getEditor returns the user's preferred editor from environment variables.
// It checks EDITOR, then VISUAL, and defaults to vi if neither is set.
func getEditor() string {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}
	return editor
}

// openEditor opens filePath in the user's editor.
// It returns an error if the editor cannot be started or exits with a non-zero status.
func openEditor(filePath string) error {
	editor := getEditor()

	// EDITOR may carry arguments, e.g. "code --wait"
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], filePath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor, err)
	}

	return nil
}

// editDescriptionWithEditor opens the task description in $EDITOR and saves the result.
func editDescriptionWithEditor(cmd *cobra.Command, c *app.Container, taskID string) error {
	show, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: taskID})
	if err != nil {
		return err
	}
	if !show.CanEdit {
		return fmt.Errorf("edit task %s: %w", taskID, domain.ErrUnauthorized)
	}

	tmp, err := os.CreateTemp("", "bugtrack-task-*.md")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(show.Task.Description); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := openEditorFunc(tmpPath); err != nil {
		return err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("read temp file: %w", err)
	}

	description := strings.TrimRight(string(edited), "\n")
	if description == show.Task.Description {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes made")
		return nil
	}

	out, err := c.EditTaskUseCase().Execute(cmd.Context(), usecase.EditTaskInput{
		TaskID: taskID,
		Patch:  domain.TaskPatch{Description: &description},
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", out.Task.ID)
	return nil
}
