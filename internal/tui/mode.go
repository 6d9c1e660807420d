// Package tui provides the kanban board for bugtrack.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // Board navigation
	ModeFilter              // Text filtering mode
	ModeConfirm             // Delete confirmation
	ModeHelp                // Help overlay mode
	ModeDetail              // Task detail view mode
	ModeNew                 // New task form
	ModeLogTime             // Time entry prompt
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeFilter:
		return "filter"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	case ModeDetail:
		return "detail"
	case ModeNew:
		return "new"
	case ModeLogTime:
		return "logtime"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeFilter || m == ModeNew || m == ModeLogTime
}
