package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusPlanned    TaskStatus = "planned"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusBlocked    TaskStatus = "blocked"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPlanned, TaskStatusInProgress, TaskStatusCompleted, TaskStatusBlocked:
		return true
	}
	return false
}

type Task struct {
	ID              string     `json:"id"`
	FeatureID       string     `json:"featureId"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          TaskStatus `json:"status"`
	Priority        Priority   `json:"priority"`
	EstimatedEffort *string    `json:"estimatedEffort"` // free-form, e.g. "2h", "1d"
	Order           int        `json:"order"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// TaskVersion snapshots title, description, and status on edit.
type TaskVersion struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"taskId"`
	Version     int        `json:"version"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Changelog   *string    `json:"changelog"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TaskWithDependencies bundles a task with both sides of the dependency
// relation: the tasks it depends on and the tasks depending on it.
type TaskWithDependencies struct {
	Task
	DependsOn  []Task `json:"dependsOn"`
	Dependents []Task `json:"dependents"`
}
