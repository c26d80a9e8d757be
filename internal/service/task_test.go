package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai"
)

type taskFixture struct {
	svc         services.TaskService
	taskRepo    *fakeTaskRepo
	featureRepo *fakeFeatureRepo
	suggester   *fakeSuggester
}

func newTaskFixture() *taskFixture {
	f := &taskFixture{
		taskRepo:    newFakeTaskRepo(),
		featureRepo: newFakeFeatureRepo(),
		suggester: &fakeSuggester{items: []ai.TaskItem{
			{Title: "Design schema", Description: "Model habits and completions.", Priority: models.PriorityHigh, EstimatedEffort: "2 days"},
			{Title: "Build API", Description: "CRUD endpoints for habits.", Priority: models.PriorityMedium},
		}},
	}
	f.svc = NewTaskService(f.taskRepo, f.featureRepo, fakeTxManager{}, f.suggester, testLogger())
	return f
}

func (f *taskFixture) seedFeature() string {
	feature := &models.Feature{
		IdeaID:      "idea-1",
		Title:       "Habit Streaks",
		Description: "Track consecutive completions per habit.",
		Source:      models.FeatureSourceAuto,
		Priority:    models.PriorityMedium,
		Status:      models.FeatureStatusActive,
	}
	_ = f.featureRepo.Create(context.Background(), feature)
	return feature.ID
}

func (f *taskFixture) seedTask(featureID, title string) *models.Task {
	task, err := f.svc.CreateTask(context.Background(), &services.CreateTaskRequest{
		FeatureID:   featureID,
		Title:       title,
		Description: "A task worth describing.",
	})
	if err != nil {
		panic(err)
	}
	return task
}

func TestSuggestTasks(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()

	tasks, err := f.svc.SuggestTasks(context.Background(), featureID)
	if err != nil {
		t.Fatalf("SuggestTasks() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	for i, task := range tasks {
		if task.Status != models.TaskStatusPlanned {
			t.Errorf("tasks[%d].Status = %q, want planned", i, task.Status)
		}
		if task.Order != i {
			t.Errorf("tasks[%d].Order = %d, want %d", i, task.Order, i)
		}
	}
	if tasks[0].EstimatedEffort == nil || *tasks[0].EstimatedEffort != "2 days" {
		t.Errorf("tasks[0].EstimatedEffort = %v, want 2 days", tasks[0].EstimatedEffort)
	}
	if tasks[1].EstimatedEffort != nil {
		t.Errorf("tasks[1].EstimatedEffort = %v, want nil", tasks[1].EstimatedEffort)
	}
}

func TestSuggestTasksOffsetsExisting(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	f.seedTask(featureID, "Existing task")

	tasks, err := f.svc.SuggestTasks(context.Background(), featureID)
	if err != nil {
		t.Fatalf("SuggestTasks() error = %v", err)
	}
	if tasks[0].Order != 1 {
		t.Errorf("first suggested Order = %d, want 1", tasks[0].Order)
	}
}

func TestSuggestTasksUnknownFeature(t *testing.T) {
	f := newTaskFixture()
	_, err := f.svc.SuggestTasks(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()

	tests := []struct {
		name        string
		title       string
		description string
		wantErr     bool
	}{
		{"valid", "Build API", "CRUD endpoints for habits.", false},
		{"title too short", "AB", "CRUD endpoints for habits.", true},
		{"empty description", "Build API", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateTask(context.Background(), &services.CreateTaskRequest{
				FeatureID:   featureID,
				Title:       tt.title,
				Description: tt.description,
			})
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("CreateTask() error = %v", err)
			}
		})
	}
}

func TestCreateTaskDefaultsOrder(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	first := f.seedTask(featureID, "First task")
	second := f.seedTask(featureID, "Second task")

	if first.Order != 0 || second.Order != 1 {
		t.Errorf("orders = %d, %d, want 0, 1", first.Order, second.Order)
	}
	if first.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want medium", first.Priority)
	}
}

func TestUpdateTaskVersionsOnEdit(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	task := f.seedTask(featureID, "Build API")

	newTitle := "Build REST API"
	changelog := "Clarified scope"
	updated, err := f.svc.UpdateTask(context.Background(), task.ID, &services.UpdateTaskRequest{
		Title:     &newTitle,
		Changelog: &changelog,
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("Title = %q", updated.Title)
	}

	versions, _ := f.taskRepo.ListVersions(context.Background(), task.ID)
	if len(versions) != 1 {
		t.Fatalf("got %d versions, want 1", len(versions))
	}
	// task versions carry the post-update values
	if versions[0].Title != newTitle {
		t.Errorf("version title = %q, want post-update title", versions[0].Title)
	}
	if versions[0].Changelog == nil || *versions[0].Changelog != changelog {
		t.Errorf("version changelog = %v, want %q", versions[0].Changelog, changelog)
	}
}

func TestUpdateTaskPriorityOnlySkipsVersion(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	task := f.seedTask(featureID, "Build API")

	high := models.PriorityHigh
	if _, err := f.svc.UpdateTask(context.Background(), task.ID, &services.UpdateTaskRequest{Priority: &high}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	versions, _ := f.taskRepo.ListVersions(context.Background(), task.ID)
	if len(versions) != 0 {
		t.Errorf("got %d versions, want 0", len(versions))
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	task := f.seedTask(featureID, "Build API")

	updated, err := f.svc.UpdateTaskStatus(context.Background(), task.ID, models.TaskStatusInProgress)
	if err != nil {
		t.Fatalf("UpdateTaskStatus() error = %v", err)
	}
	if updated.Status != models.TaskStatusInProgress {
		t.Errorf("Status = %q, want in_progress", updated.Status)
	}

	versions, _ := f.taskRepo.ListVersions(context.Background(), task.ID)
	if len(versions) != 1 {
		t.Fatalf("got %d versions, want 1", len(versions))
	}
	if versions[0].Changelog == nil || *versions[0].Changelog != "Status changed to in_progress" {
		t.Errorf("changelog = %v", versions[0].Changelog)
	}
}

func TestUpdateTaskStatusSameStatusNoop(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	task := f.seedTask(featureID, "Build API")

	updated, err := f.svc.UpdateTaskStatus(context.Background(), task.ID, models.TaskStatusPlanned)
	if err != nil {
		t.Fatalf("UpdateTaskStatus() error = %v", err)
	}
	if updated.Status != models.TaskStatusPlanned {
		t.Errorf("Status = %q, want planned", updated.Status)
	}

	versions, _ := f.taskRepo.ListVersions(context.Background(), task.ID)
	if len(versions) != 0 {
		t.Errorf("got %d versions, want 0", len(versions))
	}
}

func TestUpdateTaskInvalidStatus(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	task := f.seedTask(featureID, "Build API")

	_, err := f.svc.UpdateTaskStatus(context.Background(), task.ID, models.TaskStatus("paused"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestAddDependency(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	a := f.seedTask(featureID, "Design schema")
	b := f.seedTask(featureID, "Build API")

	if err := f.svc.AddDependency(context.Background(), b.ID, a.ID); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}

	with, err := f.svc.GetTaskWithDependencies(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("GetTaskWithDependencies() error = %v", err)
	}
	if len(with.DependsOn) != 1 || with.DependsOn[0].ID != a.ID {
		t.Errorf("DependsOn = %v", with.DependsOn)
	}
}

func TestAddDependencyRejectsSelf(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	a := f.seedTask(featureID, "Design schema")

	err := f.svc.AddDependency(context.Background(), a.ID, a.ID)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestAddDependencyRejectsCycle(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	a := f.seedTask(featureID, "Design schema")
	b := f.seedTask(featureID, "Build API")
	c := f.seedTask(featureID, "Write docs")

	// a -> b -> c, then c -> a would close the loop
	if err := f.svc.AddDependency(context.Background(), a.ID, b.ID); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}
	if err := f.svc.AddDependency(context.Background(), b.ID, c.ID); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}

	err := f.svc.AddDependency(context.Background(), c.ID, a.ID)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestAddDependencyUnknownTask(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	a := f.seedTask(featureID, "Design schema")

	err := f.svc.AddDependency(context.Background(), a.ID, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRemoveDependency(t *testing.T) {
	f := newTaskFixture()
	featureID := f.seedFeature()
	a := f.seedTask(featureID, "Design schema")
	b := f.seedTask(featureID, "Build API")

	if err := f.svc.AddDependency(context.Background(), b.ID, a.ID); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}
	if err := f.svc.RemoveDependency(context.Background(), b.ID, a.ID); err != nil {
		t.Fatalf("RemoveDependency() error = %v", err)
	}

	err := f.svc.RemoveDependency(context.Background(), b.ID, a.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
