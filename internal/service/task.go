package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/config"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai"
)

// taskSuggester is the slice of the AI service the task service needs.
type taskSuggester interface {
	SuggestTasks(ctx context.Context, featureTitle, featureDescription string) ([]ai.TaskItem, error)
}

// taskService implements the TaskService interface
type taskService struct {
	taskRepo    repositories.TaskRepository
	featureRepo repositories.FeatureRepository
	txManager   repositories.TransactionManager
	suggester   taskSuggester
	logger      *slog.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo repositories.TaskRepository,
	featureRepo repositories.FeatureRepository,
	txManager repositories.TransactionManager,
	suggester taskSuggester,
	logger *slog.Logger,
) services.TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		featureRepo: featureRepo,
		txManager:   txManager,
		suggester:   suggester,
		logger:      logger,
	}
}

// SuggestTasks asks the AI to break a feature into tasks. Suggested tasks
// are persisted in array order with status planned.
func (s *taskService) SuggestTasks(ctx context.Context, featureID string) ([]models.Task, error) {
	feature, err := s.featureRepo.GetByID(ctx, featureID)
	if err != nil {
		return nil, err
	}

	items, err := s.suggester.SuggestTasks(ctx, feature.Title, feature.Description)
	if err != nil {
		return nil, err
	}

	existing, err := s.taskRepo.ListByFeature(ctx, featureID)
	if err != nil {
		return nil, err
	}
	offset := len(existing)

	tasks := []models.Task{}
	for i, item := range items {
		var effort *string
		if item.EstimatedEffort != "" {
			effort = &item.EstimatedEffort
		}
		task := &models.Task{
			FeatureID:       featureID,
			Title:           item.Title,
			Description:     item.Description,
			Status:          models.TaskStatusPlanned,
			Priority:        item.Priority,
			EstimatedEffort: effort,
			Order:           offset + i,
		}
		if err := s.taskRepo.Create(ctx, task); err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	s.logger.Info("tasks suggested", "feature_id", featureID, "count", len(tasks))
	return tasks, nil
}

func validateTaskFields(title, description string) error {
	return validation.Errors{
		"title": validation.Validate(title,
			validation.Required,
			validation.Length(config.MinTaskTitleLength, config.MaxTitleLength)),
		"description": validation.Validate(description, validation.Required),
	}.Filter()
}

// CreateTask validates and persists a manually entered task
func (s *taskService) CreateTask(ctx context.Context, req *services.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if err := validateTaskFields(title, description); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	priority := models.PriorityMedium
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, *req.Priority)
		}
		priority = *req.Priority
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		existing, err := s.taskRepo.ListByFeature(ctx, req.FeatureID)
		if err != nil {
			return nil, err
		}
		order = len(existing)
	}

	task := &models.Task{
		FeatureID:       req.FeatureID,
		Title:           title,
		Description:     description,
		Status:          models.TaskStatusPlanned,
		Priority:        priority,
		EstimatedEffort: req.EstimatedEffort,
		Order:           order,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created", "task_id", task.ID, "feature_id", req.FeatureID)
	return task, nil
}

// GetTask retrieves a task by ID
func (s *taskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// GetTaskWithDependencies retrieves a task with both dependency directions
func (s *taskService) GetTaskWithDependencies(ctx context.Context, id string) (*models.TaskWithDependencies, error) {
	return s.taskRepo.GetWithDependencies(ctx, id)
}

// ListTasksByFeature retrieves a feature's tasks in explicit order
func (s *taskService) ListTasksByFeature(ctx context.Context, featureID string) ([]models.Task, error) {
	if _, err := s.featureRepo.GetByID(ctx, featureID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByFeature(ctx, featureID)
}

// UpdateTask updates a task. A title, description, or status change
// snapshots the post-update values as the next version.
func (s *taskService) UpdateTask(ctx context.Context, id string, req *services.UpdateTaskRequest) (*models.Task, error) {
	if req.Title == nil && req.Description == nil && req.Status == nil &&
		req.Priority == nil && req.EstimatedEffort == nil && req.Order == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid task status %q", domain.ErrValidation, *req.Status)
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, *req.Priority)
	}

	current, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	description := current.Description
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
		req.Description = &description
	}
	if err := validateTaskFields(title, description); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	status := current.Status
	if req.Status != nil {
		status = *req.Status
	}

	upd := &repositories.TaskUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		Priority:        req.Priority,
		EstimatedEffort: req.EstimatedEffort,
		Order:           req.Order,
	}

	versioned := title != current.Title || description != current.Description || status != current.Status
	if !versioned {
		return s.taskRepo.Update(ctx, id, upd)
	}

	var updated *models.Task
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		latest, err := s.taskRepo.LatestVersionNumber(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.taskRepo.CreateVersion(txCtx, id, latest+1, title, description, status, req.Changelog); err != nil {
			return err
		}
		updated, err = s.taskRepo.Update(txCtx, id, upd)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated", "task_id", id, "versioned", true)
	return updated, nil
}

// UpdateTaskStatus transitions a task's status and records the change
func (s *taskService) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid task status %q", domain.ErrValidation, status)
	}

	current, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}

	changelog := fmt.Sprintf("Status changed to %s", status)

	var updated *models.Task
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		latest, err := s.taskRepo.LatestVersionNumber(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.taskRepo.CreateVersion(txCtx, id, latest+1, current.Title, current.Description, status, &changelog); err != nil {
			return err
		}
		updated, err = s.taskRepo.Update(txCtx, id, &repositories.TaskUpdate{Status: &status})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task status changed", "task_id", id, "status", status)
	return updated, nil
}

// DeleteTask removes a task
func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// GetVersionHistory retrieves a task's versions, newest first
func (s *taskService) GetVersionHistory(ctx context.Context, id string) ([]models.TaskVersion, error) {
	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.taskRepo.ListVersions(ctx, id)
}

// AddDependency records that taskID depends on dependsOnTaskID. Rejects
// self-dependencies and edges that would close a cycle.
func (s *taskService) AddDependency(ctx context.Context, taskID, dependsOnTaskID string) error {
	if taskID == dependsOnTaskID {
		return fmt.Errorf("%w: a task cannot depend on itself", domain.ErrValidation)
	}

	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return err
	}
	if _, err := s.taskRepo.GetByID(ctx, dependsOnTaskID); err != nil {
		return err
	}

	cycle, err := s.wouldCreateCycle(ctx, taskID, dependsOnTaskID)
	if err != nil {
		return err
	}
	if cycle {
		return fmt.Errorf("%w: dependency would create a cycle", domain.ErrValidation)
	}

	if err := s.taskRepo.AddDependency(ctx, taskID, dependsOnTaskID); err != nil {
		return err
	}

	s.logger.Info("dependency added", "task_id", taskID, "depends_on", dependsOnTaskID)
	return nil
}

// wouldCreateCycle walks the dependency graph breadth-first from the
// proposed target. If taskID is reachable, the new edge would close a loop.
func (s *taskService) wouldCreateCycle(ctx context.Context, taskID, dependsOnTaskID string) (bool, error) {
	visited := map[string]bool{}
	queue := []string{dependsOnTaskID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == taskID {
			return true, nil
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		next, err := s.taskRepo.DependencyIDs(ctx, current)
		if err != nil {
			return false, err
		}
		queue = append(queue, next...)
	}

	return false, nil
}

// RemoveDependency removes a dependency edge
func (s *taskService) RemoveDependency(ctx context.Context, taskID, dependsOnTaskID string) error {
	if err := s.taskRepo.RemoveDependency(ctx, taskID, dependsOnTaskID); err != nil {
		return err
	}
	s.logger.Info("dependency removed", "task_id", taskID, "depends_on", dependsOnTaskID)
	return nil
}
