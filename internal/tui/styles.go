package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/bugtrack/internal/domain"
)

// Colors defines the color palette for the board.
var Colors = struct {
	// Base colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
	Selection lipgloss.Color

	// Status colors
	Open            lipgloss.Color
	InProgress      lipgloss.Color
	PendingApproval lipgloss.Color
	Closed          lipgloss.Color
	Reopened        lipgloss.Color

	// Priority colors
	Critical lipgloss.Color
	High     lipgloss.Color
	Medium   lipgloss.Color
	Low      lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow
	Text:      lipgloss.Color("#DFE6E9"), // Light gray
	Selection: lipgloss.Color("#FFEAA7"), // Pale yellow

	Open:            lipgloss.Color("#74B9FF"), // Light blue
	InProgress:      lipgloss.Color("#FDCB6E"), // Yellow
	PendingApproval: lipgloss.Color("#A29BFE"), // Lavender
	Closed:          lipgloss.Color("#00B894"), // Green
	Reopened:        lipgloss.Color("#E17055"), // Orange

	Critical: lipgloss.Color("#D63031"),
	High:     lipgloss.Color("#E17055"),
	Medium:   lipgloss.Color("#FDCB6E"),
	Low:      lipgloss.Color("#636E72"),
}

// Styles contains all the lipgloss styles for the board.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	HeaderUser lipgloss.Style

	// Columns
	Column        lipgloss.Style
	ColumnFocused lipgloss.Style
	ColumnTitle   lipgloss.Style
	ColumnEmpty   lipgloss.Style

	// Cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style
	CardOverdue  lipgloss.Style

	// Detail view
	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Form        lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style
	Message   lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	columnBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Colors.Muted).
		Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		Header:     lipgloss.NewStyle().MarginBottom(1),
		HeaderText: lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		HeaderUser: lipgloss.NewStyle().Foreground(Colors.Muted),

		Column:        columnBase,
		ColumnFocused: columnBase.BorderForeground(Colors.Secondary),
		ColumnTitle:   lipgloss.NewStyle().Bold(true).MarginBottom(1),
		ColumnEmpty:   lipgloss.NewStyle().Foreground(Colors.Muted).Italic(true),

		Card:         lipgloss.NewStyle().Foreground(Colors.Text).PaddingLeft(1),
		CardSelected: lipgloss.NewStyle().Foreground(Colors.Selection).Bold(true).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Colors.Selection),
		CardTitle:    lipgloss.NewStyle(),
		CardMeta:     lipgloss.NewStyle().Foreground(Colors.Muted),
		CardOverdue:  lipgloss.NewStyle().Foreground(Colors.Error).Bold(true),

		DetailTitle: lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary).MarginBottom(1),
		DetailLabel: lipgloss.NewStyle().Foreground(Colors.Muted).Width(12),
		DetailValue: lipgloss.NewStyle().Foreground(Colors.Text),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Warning).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().Bold(true).Foreground(Colors.Warning),
		Form: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Secondary).
			Padding(1, 2),

		Footer:    lipgloss.NewStyle().Foreground(Colors.Muted).MarginTop(1),
		FooterKey: lipgloss.NewStyle().Foreground(Colors.Secondary).Bold(true),
		Message:   lipgloss.NewStyle().Foreground(Colors.Success),
		Error:     lipgloss.NewStyle().Foreground(Colors.Error).Bold(true),
	}
}

// StatusColor returns the accent color of a board column.
func StatusColor(s domain.Status) lipgloss.Color {
	switch s {
	case domain.StatusOpen:
		return Colors.Open
	case domain.StatusInProgress:
		return Colors.InProgress
	case domain.StatusPendingApproval:
		return Colors.PendingApproval
	case domain.StatusClosed:
		return Colors.Closed
	case domain.StatusReopened:
		return Colors.Reopened
	default:
		return Colors.Muted
	}
}

// PriorityColor returns the badge color of a priority.
func PriorityColor(p domain.Priority) lipgloss.Color {
	switch p {
	case domain.PriorityCritical:
		return Colors.Critical
	case domain.PriorityHigh:
		return Colors.High
	case domain.PriorityMedium:
		return Colors.Medium
	default:
		return Colors.Low
	}
}

// PriorityIcon returns a one-character marker for a priority.
func PriorityIcon(p domain.Priority) string {
	switch p {
	case domain.PriorityCritical:
		return "‼"
	case domain.PriorityHigh:
		return "↑"
	case domain.PriorityMedium:
		return "•"
	case domain.PriorityLow:
		return "↓"
	default:
		return " "
	}
}
