package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// Form field indexes.
const (
	fieldTitle = iota
	fieldDescription
)

// taskForm is the quick-add form for a new task assigned to the current user.
type taskForm struct {
	title       textinput.Model
	description textarea.Model
	focus       int
}

func newTaskForm() taskForm {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "Describe the bug or task..."
	ta.CharLimit = 4096
	ta.ShowLineNumbers = false
	ta.SetHeight(5)

	return taskForm{title: ti, description: ta}
}

// open resets the form and focuses the title.
func (f *taskForm) open() tea.Cmd {
	f.title.Reset()
	f.description.Reset()
	f.description.Blur()
	f.focus = fieldTitle
	return f.title.Focus()
}

// toggle moves focus to the other field.
func (f *taskForm) toggle() tea.Cmd {
	if f.focus == fieldTitle {
		f.focus = fieldDescription
		f.title.Blur()
		return f.description.Focus()
	}
	f.focus = fieldTitle
	f.description.Blur()
	return f.title.Focus()
}

func (f *taskForm) setWidth(w int) {
	f.title.Width = max(10, w)
	f.description.SetWidth(max(10, w))
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == fieldTitle {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

func (m *Model) handleNewMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.err = nil
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m, m.createTask()
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.toggle()
	case msg.Type == tea.KeyEnter && m.form.focus == fieldTitle:
		return m, m.form.toggle()
	}
	return m, m.form.update(msg)
}

// createTask submits the quick-add form.
func (m *Model) createTask() tea.Cmd {
	in := usecase.NewTaskInput{
		Title:       strings.TrimSpace(m.form.title.Value()),
		Description: strings.TrimSpace(m.form.description.Value()),
	}
	return func() tea.Msg {
		out, err := m.container.NewTaskUseCase().Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskCreated{Task: out.Task}
	}
}

func (m *Model) handleLogTimeMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.err = nil
		m.logInput.Blur()
		return m, nil
	case tea.KeyEnter:
		return m, m.logTime()
	}

	var cmd tea.Cmd
	m.logInput, cmd = m.logInput.Update(msg)
	return m, cmd
}

// parseTimeEntry splits "<hours> [note]" into its parts.
func parseTimeEntry(s string) (float64, string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, "", domain.ErrInvalidHours
	}
	hours, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "h"), 64)
	if err != nil {
		return 0, "", fmt.Errorf("%q: %w", fields[0], domain.ErrInvalidHours)
	}
	return hours, strings.Join(fields[1:], " "), nil
}

// logTime records the prompt's entry on the selected card.
func (m *Model) logTime() tea.Cmd {
	task := m.SelectedTask()
	if task == nil {
		return nil
	}
	hours, note, err := parseTimeEntry(m.logInput.Value())
	if err != nil {
		m.err = err
		return nil
	}
	taskID := task.ID
	return func() tea.Msg {
		out, err := m.container.LogTimeUseCase().Execute(context.Background(), usecase.LogTimeInput{
			TaskID:      taskID,
			Hours:       hours,
			Description: note,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTimeLogged{TaskID: taskID, Hours: out.Entry.Hours, Total: out.TotalHours}
	}
}

// viewNewForm renders the quick-add form.
func (m *Model) viewNewForm() string {
	return m.styles.Form.Render(
		m.styles.DialogTitle.Render("New task") + "\n\n" +
			m.form.title.View() + "\n\n" +
			m.form.description.View() + "\n\n" +
			m.styles.FooterKey.Render("tab") + " next field  " +
			m.styles.FooterKey.Render("ctrl+s") + " create  " +
			m.styles.FooterKey.Render("esc") + " cancel",
	)
}

// viewLogTimePrompt renders the time entry prompt.
func (m *Model) viewLogTimePrompt() string {
	return m.styles.Form.Render(
		m.styles.DialogTitle.Render("Log time") + "\n\n" +
			m.logInput.View() + "\n\n" +
			m.styles.CardMeta.Render("hours, then an optional note (e.g. 1.5 reproduced on staging)"),
	)
}
