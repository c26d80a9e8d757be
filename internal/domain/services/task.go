package services

import (
	"context"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// TaskService handles task business logic
type TaskService interface {
	// SuggestTasks asks the AI to break a feature down into tasks and
	// persists them in suggested order
	SuggestTasks(ctx context.Context, featureID string) ([]models.Task, error)

	// CreateTask validates and persists a manually entered task
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*models.Task, error)

	// GetTask retrieves a task by ID
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// GetTaskWithDependencies retrieves a task with both dependency directions
	GetTaskWithDependencies(ctx context.Context, id string) (*models.TaskWithDependencies, error)

	// ListTasksByFeature retrieves a feature's tasks in explicit order
	ListTasksByFeature(ctx context.Context, featureID string) ([]models.Task, error)

	// UpdateTask updates a task; title/description/status edits create a
	// version snapshot
	UpdateTask(ctx context.Context, id string, req *UpdateTaskRequest) (*models.Task, error)

	// UpdateTaskStatus transitions a task's status, recording the change
	// in the version history
	UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error)

	// DeleteTask removes a task
	DeleteTask(ctx context.Context, id string) error

	// GetVersionHistory retrieves a task's versions, newest first
	GetVersionHistory(ctx context.Context, id string) ([]models.TaskVersion, error)

	// AddDependency records that taskID depends on dependsOnTaskID.
	// Rejects self-dependencies and edges that would close a cycle.
	AddDependency(ctx context.Context, taskID, dependsOnTaskID string) error

	// RemoveDependency removes a dependency edge
	RemoveDependency(ctx context.Context, taskID, dependsOnTaskID string) error
}

// CreateTaskRequest represents a manual task creation
type CreateTaskRequest struct {
	FeatureID       string           `json:"featureId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Priority        *models.Priority `json:"priority,omitempty"`
	EstimatedEffort *string          `json:"estimatedEffort,omitempty"`
	Order           *int             `json:"order,omitempty"`
}

// UpdateTaskRequest represents a task update
type UpdateTaskRequest struct {
	Title           *string            `json:"title,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Status          *models.TaskStatus `json:"status,omitempty"`
	Priority        *models.Priority   `json:"priority,omitempty"`
	EstimatedEffort *string            `json:"estimatedEffort,omitempty"`
	Order           *int               `json:"order,omitempty"`
	Changelog       *string            `json:"changelog,omitempty"`
}
