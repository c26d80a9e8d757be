package repositories

import (
	"context"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// TaskUpdate carries the mutable task fields; nil fields are left unchanged.
type TaskUpdate struct {
	Title           *string
	Description     *string
	Status          *models.TaskStatus
	Priority        *models.Priority
	EstimatedEffort *string
	Order           *int
}

// TaskRepository defines data access operations for tasks, their version
// history, and the task dependency graph
type TaskRepository interface {
	// Create persists a new task
	Create(ctx context.Context, task *models.Task) error

	// GetByID retrieves a task by ID
	GetByID(ctx context.Context, id string) (*models.Task, error)

	// GetWithDependencies retrieves a task with both dependency directions
	GetWithDependencies(ctx context.Context, id string) (*models.TaskWithDependencies, error)

	// ListByFeature retrieves all tasks for a feature ordered by their
	// explicit order column
	ListByFeature(ctx context.Context, featureID string) ([]models.Task, error)

	// Update applies the non-nil fields of upd and returns the updated row
	Update(ctx context.Context, id string, upd *TaskUpdate) (*models.Task, error)

	// Delete removes a task, its versions, and its dependency edges
	Delete(ctx context.Context, id string) error

	// AddDependency records that taskID depends on dependsOnTaskID;
	// duplicate edges conflict
	AddDependency(ctx context.Context, taskID, dependsOnTaskID string) error

	// RemoveDependency removes a dependency edge
	RemoveDependency(ctx context.Context, taskID, dependsOnTaskID string) error

	// DependencyIDs returns the IDs of the tasks taskID depends on
	DependencyIDs(ctx context.Context, taskID string) ([]string, error)

	// CreateVersion writes an immutable version snapshot
	CreateVersion(ctx context.Context, taskID string, version int, title, description string, status models.TaskStatus, changelog *string) (*models.TaskVersion, error)

	// ListVersions retrieves the version history, newest first
	ListVersions(ctx context.Context, taskID string) ([]models.TaskVersion, error)

	// LatestVersionNumber returns the highest version number for a task,
	// 0 when no versions exist yet
	LatestVersionNumber(ctx context.Context, taskID string) (int, error)
}
