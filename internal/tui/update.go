package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/bugtrack/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.detail.Width = max(0, msg.Width-4)
		m.detail.Height = max(0, msg.Height-4)
		m.form.setWidth(min(72, msg.Width-10))
		return m, nil

	case MsgTasksLoaded:
		user := msg.User
		m.user = &user
		m.tasks = msg.Tasks
		m.clampCursor()
		return m, nil

	case MsgTaskMoved:
		m.err = nil
		if msg.Moved {
			m.message = fmt.Sprintf("Moved %s to %s", shortID(msg.TaskID), msg.Status.Display())
		}
		m.focusID = msg.TaskID
		return m, m.loadTasks()

	case MsgTaskTransitioned:
		m.err = nil
		m.message = fmt.Sprintf("%s: %s -> %s", shortID(msg.TaskID), msg.Action, msg.Status.Display())
		m.focusID = msg.TaskID
		return m, m.loadTasks()

	case MsgTaskCreated:
		m.err = nil
		m.mode = ModeNormal
		m.form.title.Blur()
		m.form.description.Blur()
		m.message = fmt.Sprintf("Created %s", shortID(msg.Task.ID))
		m.focusID = msg.Task.ID
		return m, m.loadTasks()

	case MsgTimeLogged:
		m.err = nil
		m.mode = ModeNormal
		m.logInput.Blur()
		m.message = fmt.Sprintf("Logged %sh on %s (total %sh)",
			domain.FormatHours(msg.Hours), shortID(msg.TaskID), domain.FormatHours(msg.Total))
		m.focusID = msg.TaskID
		return m, m.loadTasks()

	case MsgTaskDeleted:
		m.err = nil
		m.mode = ModeNormal
		m.message = fmt.Sprintf("Deleted %s", shortID(msg.TaskID))
		return m, m.loadTasks()

	case MsgError:
		m.err = msg.Err
		m.message = ""
		if m.mode == ModeConfirm {
			m.mode = ModeNormal
		}
		return m, nil
	}

	return m, nil
}

// handleKeyMsg dispatches a key press to the handler for the current mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeFilter:
		return m.handleFilterMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.mode = ModeNormal
		}
		return m, nil
	case ModeDetail:
		return m.handleDetailMode(msg)
	case ModeNew:
		return m.handleNewMode(msg)
	case ModeLogTime:
		return m.handleLogTimeMode(msg)
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.row < len(m.ColumnTasks(m.col))-1 {
			m.row++
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.columns)-1 {
			m.col++
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveLeft):
		return m, m.moveSelected(-1)

	case key.Matches(msg, m.keys.MoveRight):
		return m, m.moveSelected(1)

	case key.Matches(msg, m.keys.Start):
		return m, m.runAction(domain.ActionStart)

	case key.Matches(msg, m.keys.Submit):
		return m, m.runAction(domain.ActionSubmit)

	case key.Matches(msg, m.keys.Approve):
		return m, m.runAction(domain.ActionApprove)

	case key.Matches(msg, m.keys.Reopen):
		return m, m.runAction(domain.ActionReopen)

	case key.Matches(msg, m.keys.New):
		m.err = nil
		m.mode = ModeNew
		return m, m.form.open()

	case key.Matches(msg, m.keys.LogTime):
		if m.SelectedTask() == nil {
			return m, nil
		}
		m.err = nil
		m.logInput.Reset()
		m.mode = ModeLogTime
		return m, m.logInput.Focus()

	case key.Matches(msg, m.keys.Delete):
		if m.SelectedTask() != nil {
			m.mode = ModeConfirm
		}
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		m.detail.SetContent(m.renderDetail(task))
		m.detail.GotoTop()
		m.mode = ModeDetail
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.err = nil
		m.message = ""
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Filter):
		m.mode = ModeFilter
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.err = nil
		m.message = ""
		if m.filterInput.Value() != "" {
			m.filterInput.Reset()
			return m, m.loadTasks()
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.filterInput.Blur()
		return m, m.loadTasks()
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.filterInput.Blur()
		m.filterInput.Reset()
		return m, m.loadTasks()
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		return m, m.deleteSelected()
	}
	m.mode = ModeNormal
	return m, nil
}

func (m *Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape, m.keys.Detail, m.keys.Quit) {
		m.mode = ModeNormal
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// shortID abbreviates long IDs for status messages.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
