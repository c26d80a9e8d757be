package services

import (
	"context"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// DocumentService handles requirement document business logic
type DocumentService interface {
	// GenerateDocuments generates the PRD and BRD for a confirmed idea.
	// Fails if the idea is unconfirmed or already has documents.
	GenerateDocuments(ctx context.Context, ideaID string) ([]models.Document, error)

	// GetDocument retrieves a document by ID
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// GetDocumentWithVersions retrieves a document with its version history
	GetDocumentWithVersions(ctx context.Context, id string) (*models.DocumentWithVersions, error)

	// ListDocumentsByIdea retrieves all documents for an idea
	ListDocumentsByIdea(ctx context.Context, ideaID string) ([]models.Document, error)

	// UpdateDocument updates a document; a content change snapshots the
	// new content as the next version
	UpdateDocument(ctx context.Context, id string, req *UpdateDocumentRequest) (*models.Document, error)

	// GetVersionHistory retrieves a document's versions, newest first
	GetVersionHistory(ctx context.Context, id string) ([]models.DocumentVersion, error)

	// RevertToVersion restores an old version's content, recording the
	// revert as a new version
	RevertToVersion(ctx context.Context, id string, version int) (*models.Document, error)

	// RegenerateDocument re-runs AI generation for an existing document
	RegenerateDocument(ctx context.Context, id string) (*models.Document, error)

	// ExportDocument prepares the document for download as "markdown" or "html"
	ExportDocument(ctx context.Context, id, format string) (*models.DocumentExport, error)
}

// UpdateDocumentRequest represents a document update
type UpdateDocumentRequest struct {
	Title     *string                `json:"title,omitempty"`
	Content   *string                `json:"content,omitempty"`
	Status    *models.DocumentStatus `json:"status,omitempty"`
	Changelog *string                `json:"changelog,omitempty"`
}
