package repositories

import (
	"context"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// DiagramUpdate carries the mutable diagram fields; nil fields are left unchanged.
type DiagramUpdate struct {
	Title       *string
	MermaidCode *string
	Status      *models.DiagramStatus
}

// DiagramRepository defines data access operations for diagrams and their
// version history
type DiagramRepository interface {
	// Create persists a new diagram
	Create(ctx context.Context, diagram *models.Diagram) error

	// GetByID retrieves a diagram by ID
	GetByID(ctx context.Context, id string) (*models.Diagram, error)

	// GetWithVersions retrieves a diagram together with its version
	// history, newest version first
	GetWithVersions(ctx context.Context, id string) (*models.DiagramWithVersions, error)

	// ListByIdea retrieves all diagrams for an idea, newest first
	ListByIdea(ctx context.Context, ideaID string) ([]models.Diagram, error)

	// Update applies the non-nil fields of upd and returns the updated row
	Update(ctx context.Context, id string, upd *DiagramUpdate) (*models.Diagram, error)

	// Delete removes a diagram and its versions
	Delete(ctx context.Context, id string) error

	// CreateVersion writes an immutable version snapshot
	CreateVersion(ctx context.Context, diagramID string, version int, mermaidCode string, changelog *string) (*models.DiagramVersion, error)

	// ListVersions retrieves the version history, newest first
	ListVersions(ctx context.Context, diagramID string) ([]models.DiagramVersion, error)

	// LatestVersionNumber returns the highest version number for a
	// diagram, 0 when no versions exist yet
	LatestVersionNumber(ctx context.Context, diagramID string) (int, error)
}
