package handler

import (
	"log/slog"
	"net/http"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/httputil"
)

// TaskHandler handles task HTTP requests
type TaskHandler struct {
	taskService services.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// SuggestTasks asks the AI to break a feature into tasks
// POST /api/tasks/suggest/{featureId}
func (h *TaskHandler) SuggestTasks(w http.ResponseWriter, r *http.Request) {
	featureID, ok := PathParam(w, r, "featureId", "Feature ID")
	if !ok {
		return
	}

	tasks, err := h.taskService.SuggestTasks(r.Context(), featureID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, tasks)
}

// CreateTask creates a manually entered task
// POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req services.CreateTaskRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, task)
}

// ListTasksByFeature retrieves a feature's tasks in explicit order
// GET /api/tasks/feature/{featureId}
func (h *TaskHandler) ListTasksByFeature(w http.ResponseWriter, r *http.Request) {
	featureID, ok := PathParam(w, r, "featureId", "Feature ID")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksByFeature(r.Context(), featureID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tasks)
}

// GetTask retrieves a task by ID
// GET /api/tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Task ID")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// GetTaskWithDependencies retrieves a task with both dependency directions
// GET /api/tasks/{id}/full
func (h *TaskHandler) GetTaskWithDependencies(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Task ID")
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskWithDependencies(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// UpdateTask updates a task
// PATCH /api/tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Task ID")
	if !ok {
		return
	}

	var req services.UpdateTaskRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

type updateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

// UpdateTaskStatus transitions a task's status
// PATCH /api/tasks/{id}/status
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Task ID")
	if !ok {
		return
	}

	var req updateTaskStatusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(r.Context(), id, req.Status)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task
// DELETE /api/tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Task ID")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Task deleted")
}

// GetVersionHistory retrieves a task's versions, newest first
// GET /api/tasks/{id}/versions
func (h *TaskHandler) GetVersionHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Task ID")
	if !ok {
		return
	}

	versions, err := h.taskService.GetVersionHistory(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// AddDependency records that a task depends on another
// POST /api/tasks/{id}/dependencies/{dependsOnId}
func (h *TaskHandler) AddDependency(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Task ID")
	if !ok {
		return
	}
	dependsOnID, ok := PathParam(w, r, "dependsOnId", "Dependency task ID")
	if !ok {
		return
	}

	if err := h.taskService.AddDependency(r.Context(), id, dependsOnID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusCreated, "Dependency added")
}

// RemoveDependency removes a task dependency
// DELETE /api/tasks/{id}/dependencies/{dependsOnId}
func (h *TaskHandler) RemoveDependency(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Task ID")
	if !ok {
		return
	}
	dependsOnID, ok := PathParam(w, r, "dependsOnId", "Dependency task ID")
	if !ok {
		return
	}

	if err := h.taskService.RemoveDependency(r.Context(), id, dependsOnID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Dependency removed")
}
