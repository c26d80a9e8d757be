package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
)

// PostgresTaskRepository implements the TaskRepository interface
type PostgresTaskRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(config *RepositoryConfig) repositories.TaskRepository {
	return &PostgresTaskRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const taskColumns = "id, feature_id, title, description, status, priority, estimated_effort, sort_order, created_at, updated_at"

func scanTask(row interface{ Scan(dest ...any) error }) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID,
		&t.FeatureID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.EstimatedEffort,
		&t.Order,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const taskVersionColumns = "id, task_id, version, title, description, status, changelog, created_at"

func scanTaskVersion(row interface{ Scan(dest ...any) error }) (*models.TaskVersion, error) {
	var v models.TaskVersion
	err := row.Scan(
		&v.ID,
		&v.TaskID,
		&v.Version,
		&v.Title,
		&v.Description,
		&v.Status,
		&v.Changelog,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persists a new task
func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (feature_id, title, description, status, priority, estimated_effort, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Tasks)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		task.FeatureID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.EstimatedEffort,
		task.Order,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("feature %s: %w", task.FeatureID, domain.ErrNotFound)
		}
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, taskColumns, r.tables.Tasks)

	t, err := scanTask(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	return t, nil
}

// GetWithDependencies retrieves a task with both dependency directions
func (r *PostgresTaskRepository) GetWithDependencies(ctx context.Context, id string) (*models.TaskWithDependencies, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dependsOn, err := r.listRelated(ctx, id, "td.task_id", "td.depends_on_id")
	if err != nil {
		return nil, fmt.Errorf("list dependencies: %w", err)
	}

	dependents, err := r.listRelated(ctx, id, "td.depends_on_id", "td.task_id")
	if err != nil {
		return nil, fmt.Errorf("list dependents: %w", err)
	}

	return &models.TaskWithDependencies{
		Task:       *t,
		DependsOn:  dependsOn,
		Dependents: dependents,
	}, nil
}

// listRelated walks the dependency table in one direction: filterCol matches
// the given task ID and joinCol selects the related side.
func (r *PostgresTaskRepository) listRelated(ctx context.Context, id, filterCol, joinCol string) ([]models.Task, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.feature_id, t.title, t.description, t.status, t.priority, t.estimated_effort, t.sort_order, t.created_at, t.updated_at
		FROM %s t
		JOIN %s td ON %s = t.id
		WHERE %s = $1
		ORDER BY t.sort_order ASC, t.created_at ASC
	`, r.tables.Tasks, r.tables.TaskDependencies, joinCol, filterCol)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}

// ListByFeature retrieves all tasks for a feature in their explicit order
func (r *PostgresTaskRepository) ListByFeature(ctx context.Context, featureID string) ([]models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE feature_id = $1 ORDER BY sort_order ASC, created_at ASC
	`, taskColumns, r.tables.Tasks)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, featureID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}

// Update applies the non-nil fields of upd and returns the updated row
func (r *PostgresTaskRepository) Update(ctx context.Context, id string, upd *repositories.TaskUpdate) (*models.Task, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    status = COALESCE($3, status),
		    priority = COALESCE($4, priority),
		    estimated_effort = COALESCE($5, estimated_effort),
		    sort_order = COALESCE($6, sort_order),
		    updated_at = NOW()
		WHERE id = $7
		RETURNING %s
	`, r.tables.Tasks, taskColumns)

	t, err := scanTask(GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		upd.Title,
		upd.Description,
		upd.Status,
		upd.Priority,
		upd.EstimatedEffort,
		upd.Order,
		id,
	))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return t, nil
}

// Delete removes a task; versions and dependency edges cascade
func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Tasks)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AddDependency records that taskID depends on dependsOnTaskID
func (r *PostgresTaskRepository) AddDependency(ctx context.Context, taskID, dependsOnTaskID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (task_id, depends_on_id) VALUES ($1, $2)
	`, r.tables.TaskDependencies)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, taskID, dependsOnTaskID)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("task %s already depends on %s: %w", taskID, dependsOnTaskID, domain.ErrConflict)
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("task %s or %s: %w", taskID, dependsOnTaskID, domain.ErrNotFound)
		}
		return fmt.Errorf("add dependency: %w", err)
	}

	return nil
}

// RemoveDependency removes a dependency edge
func (r *PostgresTaskRepository) RemoveDependency(ctx context.Context, taskID, dependsOnTaskID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE task_id = $1 AND depends_on_id = $2
	`, r.tables.TaskDependencies)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, taskID, dependsOnTaskID)
	if err != nil {
		return fmt.Errorf("remove dependency: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("dependency of task %s on %s: %w", taskID, dependsOnTaskID, domain.ErrNotFound)
	}

	return nil
}

// DependencyIDs returns the IDs of the tasks taskID depends on
func (r *PostgresTaskRepository) DependencyIDs(ctx context.Context, taskID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT depends_on_id FROM %s WHERE task_id = $1
	`, r.tables.TaskDependencies)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("dependency ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan dependency id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// CreateVersion writes an immutable version snapshot
func (r *PostgresTaskRepository) CreateVersion(ctx context.Context, taskID string, version int, title, description string, status models.TaskStatus, changelog *string) (*models.TaskVersion, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (task_id, version, title, description, status, changelog)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, r.tables.TaskVersions, taskVersionColumns)

	v, err := scanTaskVersion(GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		taskID,
		version,
		title,
		description,
		status,
		changelog,
	))
	if err != nil {
		if IsPgDuplicateError(err) {
			return nil, fmt.Errorf("version %d of task %s already exists: %w", version, taskID, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create task version: %w", err)
	}

	return v, nil
}

// ListVersions retrieves the version history, newest first
func (r *PostgresTaskRepository) ListVersions(ctx context.Context, taskID string) ([]models.TaskVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE task_id = $1 ORDER BY version DESC
	`, taskVersionColumns, r.tables.TaskVersions)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list task versions: %w", err)
	}
	defer rows.Close()

	versions := []models.TaskVersion{}
	for rows.Next() {
		v, err := scanTaskVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task version: %w", err)
		}
		versions = append(versions, *v)
	}

	return versions, rows.Err()
}

// LatestVersionNumber returns the highest version number, 0 when none exist
func (r *PostgresTaskRepository) LatestVersionNumber(ctx context.Context, taskID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(version), 0) FROM %s WHERE task_id = $1
	`, r.tables.TaskVersions)

	var latest int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, taskID).Scan(&latest); err != nil {
		return 0, fmt.Errorf("latest task version: %w", err)
	}

	return latest, nil
}
