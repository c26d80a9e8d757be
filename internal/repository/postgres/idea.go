package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
)

// PostgresIdeaRepository implements the IdeaRepository interface
type PostgresIdeaRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewIdeaRepository creates a new idea repository
func NewIdeaRepository(config *RepositoryConfig) repositories.IdeaRepository {
	return &PostgresIdeaRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const ideaColumns = "id, user_id, raw_text, refined_text, status, analysis_result, created_at, updated_at"

func scanIdea(row interface{ Scan(dest ...any) error }) (*models.Idea, error) {
	var idea models.Idea
	err := row.Scan(
		&idea.ID,
		&idea.UserID,
		&idea.RawText,
		&idea.RefinedText,
		&idea.Status,
		&idea.AnalysisResult,
		&idea.CreatedAt,
		&idea.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// Create persists a new idea
func (r *PostgresIdeaRepository) Create(ctx context.Context, idea *models.Idea) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, raw_text, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Ideas)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		idea.UserID,
		idea.RawText,
		idea.Status,
	).Scan(&idea.ID, &idea.CreatedAt, &idea.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create idea: %w", err)
	}

	return nil
}

// GetByID retrieves an idea by ID
func (r *PostgresIdeaRepository) GetByID(ctx context.Context, id string) (*models.Idea, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, ideaColumns, r.tables.Ideas)

	idea, err := scanIdea(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get idea: %w", err)
	}

	return idea, nil
}

// List retrieves all ideas, newest first
func (r *PostgresIdeaRepository) List(ctx context.Context) ([]models.Idea, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s ORDER BY created_at DESC
	`, ideaColumns, r.tables.Ideas)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	defer rows.Close()

	ideas := []models.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		ideas = append(ideas, *idea)
	}

	return ideas, rows.Err()
}

// Update applies the non-nil fields of upd and returns the updated row
func (r *PostgresIdeaRepository) Update(ctx context.Context, id string, upd *repositories.IdeaUpdate) (*models.Idea, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET refined_text = COALESCE($1, refined_text),
		    analysis_result = COALESCE($2, analysis_result),
		    status = COALESCE($3, status),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING %s
	`, r.tables.Ideas, ideaColumns)

	idea, err := scanIdea(GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		upd.RefinedText,
		upd.AnalysisResult,
		upd.Status,
		id,
	))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update idea: %w", err)
	}

	return idea, nil
}

// Delete removes an idea; documents, diagrams, features, and tasks cascade
func (r *PostgresIdeaRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Ideas)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
