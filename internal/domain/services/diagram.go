package services

import (
	"context"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// DiagramService handles Mermaid diagram business logic
type DiagramService interface {
	// GenerateDiagrams generates diagrams for a confirmed idea. Each
	// requested type is an independent unit of work: one type failing
	// does not abort the others. Defaults to ERD, SEQUENCE, SCHEMA when
	// no types are requested.
	GenerateDiagrams(ctx context.Context, ideaID string, types []models.DiagramType) ([]models.Diagram, error)

	// GetDiagram retrieves a diagram by ID
	GetDiagram(ctx context.Context, id string) (*models.Diagram, error)

	// GetDiagramWithVersions retrieves a diagram with its version history
	GetDiagramWithVersions(ctx context.Context, id string) (*models.DiagramWithVersions, error)

	// ListDiagramsByIdea retrieves all diagrams for an idea
	ListDiagramsByIdea(ctx context.Context, ideaID string) ([]models.Diagram, error)

	// UpdateDiagram updates a diagram; a mermaid code change snapshots
	// the prior code before applying the update
	UpdateDiagram(ctx context.Context, id string, req *UpdateDiagramRequest) (*models.Diagram, error)

	// GetVersionHistory retrieves a diagram's versions, newest first
	GetVersionHistory(ctx context.Context, id string) ([]models.DiagramVersion, error)

	// RegenerateDiagram snapshots the current code and re-runs AI
	// generation for an existing diagram
	RegenerateDiagram(ctx context.Context, id string) (*models.Diagram, error)
}

// UpdateDiagramRequest represents a diagram update
type UpdateDiagramRequest struct {
	Title       *string               `json:"title,omitempty"`
	MermaidCode *string               `json:"mermaidCode,omitempty"`
	Status      *models.DiagramStatus `json:"status,omitempty"`
	Changelog   *string               `json:"changelog,omitempty"`
}
