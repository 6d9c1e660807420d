package domain

import "time"

// SeedUsers returns the built-in accounts.
func SeedUsers() []User {
	return []User{
		{ID: "1", Email: "yuvi@company.com", Name: "Yuvraj Singh", Role: RoleDeveloper},
		{ID: "2", Email: "suraj@company.com", Name: "Suraj Shikhar", Role: RoleManager},
		{ID: "3", Email: "aman@company.com", Name: "Aman Kumar", Role: RoleDeveloper},
	}
}

// SeedTasks returns the dataset served when no tasks have been stored yet.
func SeedTasks() []*Task {
	due1 := mustTime("2024-05-20T23:59:59Z")
	due2 := mustTime("2025-06-25T23:59:59Z")
	est1, est2 := 8.0, 4.0
	return []*Task{
		{
			ID:    "1",
			Title: "Fix login authentication bug",
			Description: "Users are unable to login with valid credentials. " +
				"The authentication service is returning 500 errors intermittently.",
			Priority:       PriorityCritical,
			Status:         StatusInProgress,
			AssigneeID:     "1",
			AssigneeName:   "Yuvraj Singh",
			ReporterID:     "2",
			ReporterName:   "Suraj Shikhar",
			CreatedAt:      mustTime("2024-05-15T10:00:00Z"),
			UpdatedAt:      mustTime("2024-05-16T14:30:00Z"),
			DueDate:        &due1,
			EstimatedHours: &est1,
			Tags:           []string{"authentication", "backend", "urgent"},
			TimeEntries: []TimeEntry{
				{
					ID:          "1",
					TaskID:      "1",
					UserID:      "1",
					UserName:    "Yuvraj Singh",
					Description: "Investigating authentication service logs",
					Hours:       2.5,
					Date:        "2024-05-16",
					CreatedAt:   mustTime("2024-05-16T14:30:00Z"),
				},
			},
		},
		{
			ID:    "2",
			Title: "Implement dark mode toggle",
			Description: "Add a dark mode toggle to the application header. " +
				"Should persist user preference and apply theme across all pages.",
			Priority:       PriorityMedium,
			Status:         StatusOpen,
			AssigneeID:     "3",
			AssigneeName:   "Aman Kumar",
			ReporterID:     "1",
			ReporterName:   "Yuvraj Singh",
			CreatedAt:      mustTime("2024-05-14T09:15:00Z"),
			UpdatedAt:      mustTime("2024-05-14T09:15:00Z"),
			DueDate:        &due2,
			EstimatedHours: &est2,
			Tags:           []string{"frontend", "ui", "enhancement"},
			TimeEntries:    []TimeEntry{},
		},
	}
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
