package model

import (
	"strconv"
	"time"
)

// SeedTasks is the welcome collection served the first time the task
// mirror is read while the backend is unreachable.
func SeedTasks(now time.Time) []Task {
	return []Task{
		{ID: "1", Title: "Welcome to Smart Todo!", Completed: false, Priority: PriorityHigh, Category: "General", CreatedAt: now},
		{ID: "2", Title: "Start by adding a new task", Completed: false, Priority: PriorityMedium, Category: "Work", CreatedAt: now},
		{ID: "3", Title: "Try switching themes in settings", Completed: true, Priority: PriorityLow, Category: "Personal", CreatedAt: now},
	}
}

// LocalID synthesizes an identifier for entities created while offline.
// Wall-clock milliseconds are unique enough for a single-user session.
func LocalID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}
