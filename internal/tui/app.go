package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// Model is the main bubbletea model for the board.
type Model struct {
	// Dependencies
	container *app.Container
	err       error

	// State
	user    *domain.User
	tasks   []*domain.Task
	columns []domain.Status

	// Components
	keys        KeyMap
	styles      Styles
	help        help.Model
	detail      viewport.Model
	filterInput textinput.Model
	logInput    textinput.Model
	form        taskForm

	// Card to select after the next load
	focusID string
	message string

	// Cursor and layout
	mode   Mode
	width  int
	height int
	col    int
	row    int
}

// New creates a new board Model with the given container.
func New(c *app.Container) *Model {
	fi := textinput.New()
	fi.Placeholder = "Filter tasks..."
	fi.CharLimit = 100

	li := textinput.New()
	li.Placeholder = "2.5 reproduced the crash"
	li.CharLimit = 200

	showReopened := true
	if c != nil && c.AppConfig != nil {
		showReopened = c.AppConfig.Board.ShowReopened
	}

	return &Model{
		container:   c,
		columns:     BoardColumns(showReopened),
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
		help:        help.New(),
		detail:      viewport.New(0, 0),
		filterInput: fi,
		logInput:    li,
		form:        newTaskForm(),
		mode:        ModeNormal,
	}
}

// BoardColumns returns the board's columns in workflow order.
// Reopened tasks are shown in the Open column when showReopened is false.
func BoardColumns(showReopened bool) []domain.Status {
	cols := []domain.Status{
		domain.StatusOpen,
		domain.StatusInProgress,
		domain.StatusPendingApproval,
		domain.StatusClosed,
	}
	if showReopened {
		cols = append(cols, domain.StatusReopened)
	}
	return cols
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadTasks()
}

// loadTasks returns a command that loads the current user's tasks.
func (m *Model) loadTasks() tea.Cmd {
	filter := domain.TaskFilter{Search: m.filterInput.Value()}
	return func() tea.Msg {
		ctx := context.Background()
		who, err := m.container.WhoAmIUseCase().Execute(ctx, usecase.WhoAmIInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		out, err := m.container.ListTasksUseCase().Execute(ctx, usecase.ListTasksInput{
			Filter: filter,
			SortBy: string(domain.SortPriority),
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{User: who.User, Tasks: out.Tasks}
	}
}

// columnOf returns the board column a status is shown in.
func (m *Model) columnOf(s domain.Status) int {
	for i, c := range m.columns {
		if c == s {
			return i
		}
	}
	// Reopened folds into Open when it has no column
	return 0
}

// ColumnTasks returns the tasks shown in column i.
func (m *Model) ColumnTasks(i int) []*domain.Task {
	if i < 0 || i >= len(m.columns) {
		return nil
	}
	var out []*domain.Task
	for _, t := range m.tasks {
		if m.columnOf(t.Status) == i {
			out = append(out, t)
		}
	}
	return out
}

// SelectedTask returns the card under the cursor, or nil if the column is empty.
func (m *Model) SelectedTask() *domain.Task {
	tasks := m.ColumnTasks(m.col)
	if m.row < 0 || m.row >= len(tasks) {
		return nil
	}
	return tasks[m.row]
}

// clampCursor keeps the cursor inside the board, selecting focusID if set.
func (m *Model) clampCursor() {
	if m.focusID != "" {
		for _, t := range m.tasks {
			if t.ID != m.focusID {
				continue
			}
			m.col = m.columnOf(t.Status)
			for i, ct := range m.ColumnTasks(m.col) {
				if ct.ID == t.ID {
					m.row = i
				}
			}
		}
		m.focusID = ""
	}
	m.col = max(0, min(m.col, len(m.columns)-1))
	m.row = max(0, min(m.row, len(m.ColumnTasks(m.col))-1))
}

// availableActions returns the workflow actions the user can take on the selected card.
func (m *Model) availableActions() []domain.Action {
	task := m.SelectedTask()
	if task == nil || m.user == nil {
		return nil
	}
	var actions []domain.Action
	if domain.CanStart(task, m.user.Role, m.user.ID) {
		actions = append(actions, domain.ActionStart)
	}
	return append(actions, domain.AvailableActions(task, m.user.Role, m.user.ID)...)
}

// moveSelected moves the selected card delta columns along the board.
func (m *Model) moveSelected(delta int) tea.Cmd {
	task := m.SelectedTask()
	if task == nil {
		return nil
	}
	target := m.col + delta
	if target < 0 || target >= len(m.columns) {
		return nil
	}
	status := m.columns[target]
	taskID := task.ID
	return func() tea.Msg {
		out, err := m.container.MoveTaskUseCase().Execute(context.Background(), usecase.MoveTaskInput{
			TaskID: taskID,
			Status: status,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskMoved{TaskID: taskID, Status: out.Task.Status, Moved: out.Moved}
	}
}

// runAction runs a workflow action on the selected card.
func (m *Model) runAction(action domain.Action) tea.Cmd {
	task := m.SelectedTask()
	if task == nil {
		return nil
	}
	taskID := task.ID
	return func() tea.Msg {
		out, err := m.container.TransitionTaskUseCase().Execute(context.Background(), usecase.TransitionTaskInput{
			TaskID: taskID,
			Action: string(action),
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskTransitioned{TaskID: taskID, Action: action, Status: out.Task.Status}
	}
}

// deleteSelected deletes the selected card.
func (m *Model) deleteSelected() tea.Cmd {
	task := m.SelectedTask()
	if task == nil {
		return nil
	}
	taskID := task.ID
	return func() tea.Msg {
		if _, err := m.container.DeleteTaskUseCase().Execute(context.Background(), usecase.DeleteTaskInput{TaskID: taskID}); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskDeleted{TaskID: taskID}
	}
}

// Run starts the board in the alternate screen and blocks until it exits.
func Run(c *app.Container) error {
	if _, err := c.WhoAmIUseCase().Execute(context.Background(), usecase.WhoAmIInput{}); err != nil {
		if errors.Is(err, domain.ErrNotLoggedIn) {
			return errors.New("not logged in: run 'bugtrack login <email>' first")
		}
		return err
	}
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
