package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
)

// PostgresFeatureRepository implements the FeatureRepository interface
type PostgresFeatureRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFeatureRepository creates a new feature repository
func NewFeatureRepository(config *RepositoryConfig) repositories.FeatureRepository {
	return &PostgresFeatureRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const featureColumns = "id, idea_id, title, description, source, status, priority, created_at, updated_at"

func scanFeature(row interface{ Scan(dest ...any) error }) (*models.Feature, error) {
	var f models.Feature
	err := row.Scan(
		&f.ID,
		&f.IdeaID,
		&f.Title,
		&f.Description,
		&f.Source,
		&f.Status,
		&f.Priority,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

const featureVersionColumns = "id, feature_id, version, title, description, changelog, created_at"

func scanFeatureVersion(row interface{ Scan(dest ...any) error }) (*models.FeatureVersion, error) {
	var v models.FeatureVersion
	err := row.Scan(
		&v.ID,
		&v.FeatureID,
		&v.Version,
		&v.Title,
		&v.Description,
		&v.Changelog,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persists a new feature
func (r *PostgresFeatureRepository) Create(ctx context.Context, feature *models.Feature) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (idea_id, title, description, source, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Features)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		feature.IdeaID,
		feature.Title,
		feature.Description,
		feature.Source,
		feature.Status,
		feature.Priority,
	).Scan(&feature.ID, &feature.CreatedAt, &feature.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("idea %s: %w", feature.IdeaID, domain.ErrNotFound)
		}
		return fmt.Errorf("create feature: %w", err)
	}

	return nil
}

// GetByID retrieves a feature by ID
func (r *PostgresFeatureRepository) GetByID(ctx context.Context, id string) (*models.Feature, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, featureColumns, r.tables.Features)

	f, err := scanFeature(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("feature %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get feature: %w", err)
	}

	return f, nil
}

// GetWithRelations retrieves a feature with its ordered tasks and linked diagrams
func (r *PostgresFeatureRepository) GetWithRelations(ctx context.Context, id string) (*models.FeatureWithRelations, error) {
	f, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exec := GetExecutor(ctx, r.pool)

	taskQuery := fmt.Sprintf(`
		SELECT %s FROM %s WHERE feature_id = $1 ORDER BY sort_order ASC, created_at ASC
	`, taskColumns, r.tables.Tasks)

	taskRows, err := exec.Query(ctx, taskQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list feature tasks: %w", err)
	}
	defer taskRows.Close()

	tasks := []models.Task{}
	for taskRows.Next() {
		t, err := scanTask(taskRows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := taskRows.Err(); err != nil {
		return nil, err
	}

	diagramQuery := fmt.Sprintf(`
		SELECT d.id, d.idea_id, d.type, d.title, d.mermaid_code, d.status, d.created_at, d.updated_at
		FROM %s d
		JOIN %s fd ON fd.diagram_id = d.id
		WHERE fd.feature_id = $1
		ORDER BY fd.created_at ASC
	`, r.tables.Diagrams, r.tables.FeatureDiagrams)

	diagramRows, err := exec.Query(ctx, diagramQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list feature diagrams: %w", err)
	}
	defer diagramRows.Close()

	diagrams := []models.Diagram{}
	for diagramRows.Next() {
		d, err := scanDiagram(diagramRows)
		if err != nil {
			return nil, fmt.Errorf("scan diagram: %w", err)
		}
		diagrams = append(diagrams, *d)
	}
	if err := diagramRows.Err(); err != nil {
		return nil, err
	}

	return &models.FeatureWithRelations{
		Feature:  *f,
		Tasks:    tasks,
		Diagrams: diagrams,
	}, nil
}

// ListByIdea retrieves all features for an idea, newest first
func (r *PostgresFeatureRepository) ListByIdea(ctx context.Context, ideaID string) ([]models.Feature, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE idea_id = $1 ORDER BY created_at DESC
	`, featureColumns, r.tables.Features)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	defer rows.Close()

	features := []models.Feature{}
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		features = append(features, *f)
	}

	return features, rows.Err()
}

// Update applies the non-nil fields of upd and returns the updated row
func (r *PostgresFeatureRepository) Update(ctx context.Context, id string, upd *repositories.FeatureUpdate) (*models.Feature, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    priority = COALESCE($3, priority),
		    status = COALESCE($4, status),
		    updated_at = NOW()
		WHERE id = $5
		RETURNING %s
	`, r.tables.Features, featureColumns)

	f, err := scanFeature(GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		upd.Title,
		upd.Description,
		upd.Priority,
		upd.Status,
		id,
	))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("feature %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update feature: %w", err)
	}

	return f, nil
}

// Delete removes a feature; versions, tasks, and diagram links cascade
func (r *PostgresFeatureRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Features)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete feature: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("feature %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CreateVersion writes an immutable version snapshot
func (r *PostgresFeatureRepository) CreateVersion(ctx context.Context, featureID string, version int, title, description string, changelog *string) (*models.FeatureVersion, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (feature_id, version, title, description, changelog)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, r.tables.FeatureVersions, featureVersionColumns)

	v, err := scanFeatureVersion(GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		featureID,
		version,
		title,
		description,
		changelog,
	))
	if err != nil {
		if IsPgDuplicateError(err) {
			return nil, fmt.Errorf("version %d of feature %s already exists: %w", version, featureID, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create feature version: %w", err)
	}

	return v, nil
}

// ListVersions retrieves the version history, newest first
func (r *PostgresFeatureRepository) ListVersions(ctx context.Context, featureID string) ([]models.FeatureVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE feature_id = $1 ORDER BY version DESC
	`, featureVersionColumns, r.tables.FeatureVersions)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, featureID)
	if err != nil {
		return nil, fmt.Errorf("list feature versions: %w", err)
	}
	defer rows.Close()

	versions := []models.FeatureVersion{}
	for rows.Next() {
		v, err := scanFeatureVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feature version: %w", err)
		}
		versions = append(versions, *v)
	}

	return versions, rows.Err()
}

// LatestVersionNumber returns the highest version number, 0 when none exist
func (r *PostgresFeatureRepository) LatestVersionNumber(ctx context.Context, featureID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(version), 0) FROM %s WHERE feature_id = $1
	`, r.tables.FeatureVersions)

	var latest int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, featureID).Scan(&latest); err != nil {
		return 0, fmt.Errorf("latest feature version: %w", err)
	}

	return latest, nil
}

// LinkDiagram links a feature to a diagram
func (r *PostgresFeatureRepository) LinkDiagram(ctx context.Context, featureID, diagramID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (feature_id, diagram_id) VALUES ($1, $2)
	`, r.tables.FeatureDiagrams)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, featureID, diagramID)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("feature %s is already linked to diagram %s: %w", featureID, diagramID, domain.ErrConflict)
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("feature %s or diagram %s: %w", featureID, diagramID, domain.ErrNotFound)
		}
		return fmt.Errorf("link diagram: %w", err)
	}

	return nil
}

// UnlinkDiagram removes a feature-diagram link
func (r *PostgresFeatureRepository) UnlinkDiagram(ctx context.Context, featureID, diagramID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE feature_id = $1 AND diagram_id = $2
	`, r.tables.FeatureDiagrams)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, featureID, diagramID)
	if err != nil {
		return fmt.Errorf("unlink diagram: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("link between feature %s and diagram %s: %w", featureID, diagramID, domain.ErrNotFound)
	}

	return nil
}
