package repositories

import (
	"context"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// DocumentUpdate carries the mutable document fields; nil fields are left unchanged.
type DocumentUpdate struct {
	Title   *string
	Content *string
	Status  *models.DocumentStatus
}

// DocumentRepository defines data access operations for documents and their
// version history
type DocumentRepository interface {
	// Create persists a new document
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// GetWithVersions retrieves a document together with its version
	// history, newest version first
	GetWithVersions(ctx context.Context, id string) (*models.DocumentWithVersions, error)

	// ListByIdea retrieves all documents for an idea, newest first
	ListByIdea(ctx context.Context, ideaID string) ([]models.Document, error)

	// Update applies the non-nil fields of upd and returns the updated row
	Update(ctx context.Context, id string, upd *DocumentUpdate) (*models.Document, error)

	// Delete removes a document and its versions
	Delete(ctx context.Context, id string) error

	// CreateVersion writes an immutable version snapshot
	CreateVersion(ctx context.Context, documentID string, version int, content string, changelog *string) (*models.DocumentVersion, error)

	// GetVersion retrieves one version snapshot by number
	GetVersion(ctx context.Context, documentID string, version int) (*models.DocumentVersion, error)

	// ListVersions retrieves the version history, newest first
	ListVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error)

	// LatestVersionNumber returns the highest version number for a
	// document, 0 when no versions exist yet
	LatestVersionNumber(ctx context.Context, documentID string) (int, error)
}
