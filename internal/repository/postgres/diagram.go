package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
)

// PostgresDiagramRepository implements the DiagramRepository interface
type PostgresDiagramRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDiagramRepository creates a new diagram repository
func NewDiagramRepository(config *RepositoryConfig) repositories.DiagramRepository {
	return &PostgresDiagramRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const diagramColumns = "id, idea_id, type, title, mermaid_code, status, created_at, updated_at"

func scanDiagram(row interface{ Scan(dest ...any) error }) (*models.Diagram, error) {
	var d models.Diagram
	err := row.Scan(
		&d.ID,
		&d.IdeaID,
		&d.Type,
		&d.Title,
		&d.MermaidCode,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

const diagramVersionColumns = "id, diagram_id, version, mermaid_code, changelog, created_at"

func scanDiagramVersion(row interface{ Scan(dest ...any) error }) (*models.DiagramVersion, error) {
	var v models.DiagramVersion
	err := row.Scan(
		&v.ID,
		&v.DiagramID,
		&v.Version,
		&v.MermaidCode,
		&v.Changelog,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persists a new diagram
func (r *PostgresDiagramRepository) Create(ctx context.Context, diagram *models.Diagram) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (idea_id, type, title, mermaid_code, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Diagrams)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		diagram.IdeaID,
		diagram.Type,
		diagram.Title,
		diagram.MermaidCode,
		diagram.Status,
	).Scan(&diagram.ID, &diagram.CreatedAt, &diagram.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("idea %s: %w", diagram.IdeaID, domain.ErrNotFound)
		}
		return fmt.Errorf("create diagram: %w", err)
	}

	return nil
}

// GetByID retrieves a diagram by ID
func (r *PostgresDiagramRepository) GetByID(ctx context.Context, id string) (*models.Diagram, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, diagramColumns, r.tables.Diagrams)

	d, err := scanDiagram(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("diagram %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get diagram: %w", err)
	}

	return d, nil
}

// GetWithVersions retrieves a diagram with its version history
func (r *PostgresDiagramRepository) GetWithVersions(ctx context.Context, id string) (*models.DiagramWithVersions, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	versions, err := r.ListVersions(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.DiagramWithVersions{
		Diagram:  *d,
		Versions: versions,
	}, nil
}

// ListByIdea retrieves all diagrams for an idea, newest first
func (r *PostgresDiagramRepository) ListByIdea(ctx context.Context, ideaID string) ([]models.Diagram, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE idea_id = $1 ORDER BY created_at DESC
	`, diagramColumns, r.tables.Diagrams)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	defer rows.Close()

	diagrams := []models.Diagram{}
	for rows.Next() {
		d, err := scanDiagram(rows)
		if err != nil {
			return nil, fmt.Errorf("scan diagram: %w", err)
		}
		diagrams = append(diagrams, *d)
	}

	return diagrams, rows.Err()
}

// Update applies the non-nil fields of upd and returns the updated row
func (r *PostgresDiagramRepository) Update(ctx context.Context, id string, upd *repositories.DiagramUpdate) (*models.Diagram, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = COALESCE($1, title),
		    mermaid_code = COALESCE($2, mermaid_code),
		    status = COALESCE($3, status),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING %s
	`, r.tables.Diagrams, diagramColumns)

	d, err := scanDiagram(GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		upd.Title,
		upd.MermaidCode,
		upd.Status,
		id,
	))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("diagram %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update diagram: %w", err)
	}

	return d, nil
}

// Delete removes a diagram; versions and feature links cascade
func (r *PostgresDiagramRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Diagrams)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete diagram: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("diagram %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CreateVersion writes an immutable version snapshot
func (r *PostgresDiagramRepository) CreateVersion(ctx context.Context, diagramID string, version int, mermaidCode string, changelog *string) (*models.DiagramVersion, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (diagram_id, version, mermaid_code, changelog)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, r.tables.DiagramVersions, diagramVersionColumns)

	v, err := scanDiagramVersion(GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		diagramID,
		version,
		mermaidCode,
		changelog,
	))
	if err != nil {
		if IsPgDuplicateError(err) {
			return nil, fmt.Errorf("version %d of diagram %s already exists: %w", version, diagramID, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create diagram version: %w", err)
	}

	return v, nil
}

// ListVersions retrieves the version history, newest first
func (r *PostgresDiagramRepository) ListVersions(ctx context.Context, diagramID string) ([]models.DiagramVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE diagram_id = $1 ORDER BY version DESC
	`, diagramVersionColumns, r.tables.DiagramVersions)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, diagramID)
	if err != nil {
		return nil, fmt.Errorf("list diagram versions: %w", err)
	}
	defer rows.Close()

	versions := []models.DiagramVersion{}
	for rows.Next() {
		v, err := scanDiagramVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan diagram version: %w", err)
		}
		versions = append(versions, *v)
	}

	return versions, rows.Err()
}

// LatestVersionNumber returns the highest version number, 0 when none exist
func (r *PostgresDiagramRepository) LatestVersionNumber(ctx context.Context, diagramID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(version), 0) FROM %s WHERE diagram_id = $1
	`, r.tables.DiagramVersions)

	var latest int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, diagramID).Scan(&latest); err != nil {
		return 0, fmt.Errorf("latest diagram version: %w", err)
	}

	return latest, nil
}
