package domain

import "time"

// DefaultTrendDays is the length of the dashboard trend series.
const DefaultTrendDays = 7

// TotalHours sums the hours of the task's time entries. No rounding is applied.
func TotalHours(t *Task) float64 {
	var total float64
	for _, e := range t.TimeEntries {
		total += e.Hours
	}
	return total
}

// DashboardStats are counters derived from a task collection. Never persisted.
type DashboardStats struct {
	TotalTasks           int     `json:"totalTasks"`
	OpenTasks            int     `json:"openTasks"`
	InProgressTasks      int     `json:"inProgressTasks"`
	ClosedTasks          int     `json:"closedTasks"`
	PendingApprovalTasks int     `json:"pendingApprovalTasks"`
	TotalTimeLogged      float64 `json:"totalTimeLogged"`
}

// ComputeStats recomputes the dashboard counters from tasks.
// Reopened tasks count toward TotalTasks only.
func ComputeStats(tasks []*Task) DashboardStats {
	stats := DashboardStats{TotalTasks: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusOpen:
			stats.OpenTasks++
		case StatusInProgress:
			stats.InProgressTasks++
		case StatusClosed:
			stats.ClosedTasks++
		case StatusPendingApproval:
			stats.PendingApprovalTasks++
		}
		stats.TotalTimeLogged += TotalHours(t)
	}
	return stats
}

// IsOverdue reports whether the task has a due date before now and is not closed.
func IsOverdue(t *Task, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusClosed
}

// TrendPoint is one day of the dashboard trend chart.
type TrendPoint struct {
	Date       string  `json:"date"` // yyyy-mm-dd
	Tasks      int     `json:"tasks"`
	TimeLogged float64 `json:"timeLogged"`
}

// TrendSeries returns one point per calendar day (UTC) for the last days days,
// oldest first, ending with now's day. Tasks counts tasks updated on that day;
// TimeLogged sums the hours of entries dated that day.
func TrendSeries(tasks []*Task, now time.Time, days int) []TrendPoint {
	if days <= 0 {
		return nil
	}
	today := now.UTC()
	points := make([]TrendPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-days+1).Format(DateLayout)
		points[i] = TrendPoint{Date: date}
		index[date] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.UpdatedAt.UTC().Format(DateLayout)]; ok {
			points[i].Tasks++
		}
		for _, e := range t.TimeEntries {
			if i, ok := index[e.Date]; ok {
				points[i].TimeLogged += e.Hours
			}
		}
	}
	return points
}
