package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const documentColumns = "id, idea_id, type, title, content, status, created_at, updated_at"

func scanDocument(row interface{ Scan(dest ...any) error }) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.IdeaID,
		&doc.Type,
		&doc.Title,
		&doc.Content,
		&doc.Status,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

const documentVersionColumns = "id, document_id, version, content, changelog, created_at"

func scanDocumentVersion(row interface{ Scan(dest ...any) error }) (*models.DocumentVersion, error) {
	var v models.DocumentVersion
	err := row.Scan(
		&v.ID,
		&v.DocumentID,
		&v.Version,
		&v.Content,
		&v.Changelog,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persists a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (idea_id, type, title, content, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		doc.IdeaID,
		doc.Type,
		doc.Title,
		doc.Content,
		doc.Status,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("%s document already exists for idea %s: %w", doc.Type, doc.IdeaID, domain.ErrConflict)
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("idea %s: %w", doc.IdeaID, domain.ErrNotFound)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, documentColumns, r.tables.Documents)

	doc, err := scanDocument(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// GetWithVersions retrieves a document with its version history
func (r *PostgresDocumentRepository) GetWithVersions(ctx context.Context, id string) (*models.DocumentWithVersions, error) {
	doc, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	versions, err := r.ListVersions(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.DocumentWithVersions{
		Document: *doc,
		Versions: versions,
	}, nil
}

// ListByIdea retrieves all documents for an idea, newest first
func (r *PostgresDocumentRepository) ListByIdea(ctx context.Context, ideaID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE idea_id = $1 ORDER BY created_at DESC
	`, documentColumns, r.tables.Documents)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}

	return docs, rows.Err()
}

// Update applies the non-nil fields of upd and returns the updated row
func (r *PostgresDocumentRepository) Update(ctx context.Context, id string, upd *repositories.DocumentUpdate) (*models.Document, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = COALESCE($1, title),
		    content = COALESCE($2, content),
		    status = COALESCE($3, status),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING %s
	`, r.tables.Documents, documentColumns)

	doc, err := scanDocument(GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		upd.Title,
		upd.Content,
		upd.Status,
		id,
	))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update document: %w", err)
	}

	return doc, nil
}

// Delete removes a document; versions cascade
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CreateVersion writes an immutable version snapshot
func (r *PostgresDocumentRepository) CreateVersion(ctx context.Context, documentID string, version int, content string, changelog *string) (*models.DocumentVersion, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, version, content, changelog)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, r.tables.DocumentVersions, documentVersionColumns)

	v, err := scanDocumentVersion(GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		documentID,
		version,
		content,
		changelog,
	))
	if err != nil {
		if IsPgDuplicateError(err) {
			return nil, fmt.Errorf("version %d of document %s already exists: %w", version, documentID, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create document version: %w", err)
	}

	return v, nil
}

// GetVersion retrieves one version snapshot by number
func (r *PostgresDocumentRepository) GetVersion(ctx context.Context, documentID string, version int) (*models.DocumentVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE document_id = $1 AND version = $2
	`, documentVersionColumns, r.tables.DocumentVersions)

	v, err := scanDocumentVersion(GetExecutor(ctx, r.pool).QueryRow(ctx, query, documentID, version))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("version %d of document %s: %w", version, documentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document version: %w", err)
	}

	return v, nil
}

// ListVersions retrieves the version history, newest first
func (r *PostgresDocumentRepository) ListVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE document_id = $1 ORDER BY version DESC
	`, documentVersionColumns, r.tables.DocumentVersions)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document versions: %w", err)
	}
	defer rows.Close()

	versions := []models.DocumentVersion{}
	for rows.Next() {
		v, err := scanDocumentVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document version: %w", err)
		}
		versions = append(versions, *v)
	}

	return versions, rows.Err()
}

// LatestVersionNumber returns the highest version number, 0 when none exist
func (r *PostgresDocumentRepository) LatestVersionNumber(ctx context.Context, documentID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(version), 0) FROM %s WHERE document_id = $1
	`, r.tables.DocumentVersions)

	var latest int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, documentID).Scan(&latest); err != nil {
		return 0, fmt.Errorf("latest document version: %w", err)
	}

	return latest, nil
}
