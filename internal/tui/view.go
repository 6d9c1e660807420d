package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/bugtrack/internal/domain"
)

// Layout constants.
const (
	minColumnWidth = 18
	cardHeight     = 3 // title, meta line, spacer
	chromeHeight   = 10
)

// View renders the board.
func (m *Model) View() string {
	switch m.mode {
	case ModeHelp:
		return m.styles.App.Render(m.viewHelp())
	case ModeDetail:
		return m.styles.App.Render(m.detail.View() + "\n" + m.styles.Footer.Render("esc: back  ↑/↓: scroll"))
	case ModeNormal, ModeFilter, ModeConfirm, ModeNew, ModeLogTime:
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewBoard())
	b.WriteString("\n")
	switch m.mode {
	case ModeConfirm:
		b.WriteString(m.viewConfirmDialog())
		b.WriteString("\n")
	case ModeNew:
		b.WriteString(m.viewNewForm())
		b.WriteString("\n")
	case ModeLogTime:
		b.WriteString(m.viewLogTimePrompt())
		b.WriteString("\n")
	case ModeNormal, ModeFilter, ModeHelp, ModeDetail:
	}
	b.WriteString(m.viewFooter())
	return m.styles.App.Render(b.String())
}

// viewHeader renders the title, the user and the active filter.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("bugtrack")

	var right string
	if m.user != nil {
		right = m.styles.HeaderUser.Render(fmt.Sprintf("%s (%s) · %d tasks", m.user.Name, m.user.Role, len(m.tasks)))
	}

	line := title + "  " + right
	switch {
	case m.mode == ModeFilter:
		line += "\n" + m.filterInput.View()
	case m.filterInput.Value() != "":
		line += "\n" + m.styles.HeaderUser.Render("filter: "+m.filterInput.Value())
	}
	return m.styles.Header.Render(line)
}

// columnWidth returns the inner width of each column.
func (m *Model) columnWidth() int {
	n := len(m.columns)
	if n == 0 {
		return minColumnWidth
	}
	// 4 = border + padding per column
	w := (m.width-4)/n - 4
	return max(w, minColumnWidth)
}

// visibleCards returns how many cards fit in a column.
func (m *Model) visibleCards() int {
	if m.height <= 0 {
		return 10
	}
	return max(1, (m.height-chromeHeight)/cardHeight)
}

// viewBoard renders the columns side by side.
func (m *Model) viewBoard() string {
	width := m.columnWidth()
	cols := make([]string, len(m.columns))
	for i, status := range m.columns {
		cols[i] = m.viewColumn(i, status, width)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// viewColumn renders one status column, scrolled so the cursor stays visible.
func (m *Model) viewColumn(i int, status domain.Status, width int) string {
	tasks := m.ColumnTasks(i)
	focused := i == m.col

	titleStyle := m.styles.ColumnTitle.Foreground(StatusColor(status))
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", status.Display(), len(tasks))))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(m.styles.ColumnEmpty.Render("no tasks"))
	}

	limit := m.visibleCards()
	start := 0
	if focused && m.row >= limit {
		start = m.row - limit + 1
	}
	end := min(len(tasks), start+limit)
	if start > 0 {
		b.WriteString(m.styles.CardMeta.Render(fmt.Sprintf("↑ %d more", start)))
		b.WriteString("\n")
	}
	for j := start; j < end; j++ {
		b.WriteString(m.renderCard(tasks[j], focused && j == m.row, width))
		b.WriteString("\n")
	}
	if end < len(tasks) {
		b.WriteString(m.styles.CardMeta.Render(fmt.Sprintf("↓ %d more", len(tasks)-end)))
	}

	style := m.styles.Column
	if focused {
		style = m.styles.ColumnFocused
	}
	return style.Width(width).Render(b.String())
}

// renderCard renders a task card: priority marker and title, then assignee, due date and hours.
func (m *Model) renderCard(task *domain.Task, selected bool, width int) string {
	inner := max(1, width-2)

	icon := lipgloss.NewStyle().Foreground(PriorityColor(task.Priority)).Render(PriorityIcon(task.Priority))
	title := runewidth.Truncate(task.Title, inner-2, "…")

	meta := firstName(task.AssigneeName)
	if hours := domain.TotalHours(task); hours > 0 {
		meta += " · " + domain.FormatHours(hours) + "h"
	}
	metaLine := m.styles.CardMeta.Render(runewidth.Truncate(meta, inner, "…"))
	if task.DueDate != nil {
		due := task.DueDate.UTC().Format("Jan 2")
		if m.container != nil && domain.IsOverdue(task, m.container.Clock.Now()) {
			metaLine += " " + m.styles.CardOverdue.Render("⚑ "+due)
		} else {
			metaLine += " " + m.styles.CardMeta.Render(due)
		}
	}

	content := icon + " " + m.styles.CardTitle.Render(title) + "\n" + metaLine
	if selected {
		return m.styles.CardSelected.Render(content)
	}
	return m.styles.Card.Render(content)
}

// firstName returns the first word of a display name.
func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

// viewConfirmDialog renders the delete confirmation.
func (m *Model) viewConfirmDialog() string {
	task := m.SelectedTask()
	if task == nil {
		return ""
	}
	return m.styles.Dialog.Render(
		m.styles.DialogTitle.Render("Delete task?") + "\n\n" +
			runewidth.Truncate(task.Title, 60, "…") + "\n\n" +
			m.styles.FooterKey.Render("y") + " delete  " +
			m.styles.FooterKey.Render("any other key") + " cancel",
	)
}

// viewFooter renders the status line and key hints.
func (m *Model) viewFooter() string {
	var lines []string
	switch {
	case m.err != nil:
		lines = append(lines, m.styles.Error.Render("Error: "+m.err.Error()))
	case m.message != "":
		lines = append(lines, m.styles.Message.Render(m.message))
	}

	if actions := m.availableActions(); len(actions) > 0 {
		hints := make([]string, len(actions))
		for i, a := range actions {
			hints[i] = m.styles.FooterKey.Render(m.actionKey(a)) + " " + string(a)
		}
		lines = append(lines, "actions: "+strings.Join(hints, "  "))
	}

	lines = append(lines, m.help.ShortHelpView(m.keys.ShortHelp()))
	return m.styles.Footer.Render(strings.Join(lines, "\n"))
}

// actionKey returns the help key of a workflow action.
func (m *Model) actionKey(a domain.Action) string {
	switch a {
	case domain.ActionStart:
		return m.keys.Start.Help().Key
	case domain.ActionSubmit:
		return m.keys.Submit.Help().Key
	case domain.ActionApprove:
		return m.keys.Approve.Help().Key
	case domain.ActionReopen:
		return m.keys.Reopen.Help().Key
	default:
		return "?"
	}
}

// viewHelp renders the full key reference.
func (m *Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.HeaderText.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.CardMeta.Render("Moving a card sets its status directly. Workflow keys follow the approval rules."))
	return b.String()
}

// renderDetail renders the detail view content for a task.
func (m *Model) renderDetail(task *domain.Task) string {
	var b strings.Builder
	b.WriteString(m.styles.DetailTitle.Render(task.Title))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(m.styles.DetailLabel.Render(label))
		b.WriteString(m.styles.DetailValue.Render(value))
		b.WriteString("\n")
	}
	row("ID", task.ID)
	row("Status", task.Status.Display())
	row("Priority", string(task.Priority))
	row("Assignee", task.AssigneeName)
	row("Reporter", task.ReporterName)
	if task.DueDate != nil {
		row("Due", task.DueDate.UTC().Format(domain.DateLayout))
	}
	hours := domain.FormatHours(domain.TotalHours(task)) + "h"
	if task.EstimatedHours != nil {
		hours += " / " + domain.FormatHours(*task.EstimatedHours) + "h"
	}
	row("Time", hours)
	if len(task.Tags) > 0 {
		row("Tags", strings.Join(task.Tags, ", "))
	}

	b.WriteString("\n")
	b.WriteString(task.Description)
	b.WriteString("\n")

	if len(task.TimeEntries) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.DetailLabel.Render("Time log"))
		b.WriteString("\n")
		for _, e := range task.TimeEntries {
			fmt.Fprintf(&b, "  %s  %sh  %s  %s\n", e.Date, domain.FormatHours(e.Hours), e.UserName, e.Description)
		}
	}
	return b.String()
}
