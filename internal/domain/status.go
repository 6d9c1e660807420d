package domain

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusOpen            Status = "open"             // Created, not started
	StatusInProgress      Status = "in-progress"      // Assignee working
	StatusPendingApproval Status = "pending-approval" // Submitted, awaiting a manager
	StatusClosed          Status = "closed"           // Approved and closed
	StatusReopened        Status = "reopened"         // Rejected by a manager, needs more work
)

// AllStatuses returns all valid status values in board order.
func AllStatuses() []Status {
	return []Status{
		StatusOpen,
		StatusInProgress,
		StatusPendingApproval,
		StatusClosed,
		StatusReopened,
	}
}

// transitions defines the workflow graph.
//
//	open -> in-progress -> pending-approval -> closed
//	            ↑                ↓
//	            └── reopened ←───┘
var transitions = map[Status][]Status{
	StatusOpen:            {StatusInProgress},
	StatusInProgress:      {StatusPendingApproval},
	StatusPendingApproval: {StatusClosed, StatusReopened},
	StatusReopened:        {StatusInProgress},
	StatusClosed:          {},
}

// CanTransitionTo returns true if the workflow graph has an edge from s to target.
// It says nothing about who may take the edge; see CanTransition.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusClosed
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusPendingApproval:
		return "Pending Approval"
	case StatusClosed:
		return "Closed"
	case StatusReopened:
		return "Reopened"
	default:
		return string(s)
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusPendingApproval, StatusClosed, StatusReopened:
		return true
	default:
		return false
	}
}

// ParseStatus converts user input into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
