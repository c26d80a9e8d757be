package services

import (
	"context"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// FeatureService handles feature business logic
type FeatureService interface {
	// ExtractFeatures asks the AI to extract features from the idea's
	// generated documents; requires documents to exist
	ExtractFeatures(ctx context.Context, ideaID string) ([]models.Feature, error)

	// CreateFeature validates and persists a manually entered feature
	CreateFeature(ctx context.Context, req *CreateFeatureRequest) (*models.Feature, error)

	// GetFeature retrieves a feature by ID
	GetFeature(ctx context.Context, id string) (*models.Feature, error)

	// GetFeatureWithRelations retrieves a feature with its tasks and
	// linked diagrams
	GetFeatureWithRelations(ctx context.Context, id string) (*models.FeatureWithRelations, error)

	// ListFeaturesByIdea retrieves all features for an idea
	ListFeaturesByIdea(ctx context.Context, ideaID string) ([]models.Feature, error)

	// UpdateFeature updates a feature; title/description edits create a
	// version snapshot
	UpdateFeature(ctx context.Context, id string, req *UpdateFeatureRequest) (*models.Feature, error)

	// DeleteFeature removes a feature
	DeleteFeature(ctx context.Context, id string) error

	// GetVersionHistory retrieves a feature's versions, newest first
	GetVersionHistory(ctx context.Context, id string) ([]models.FeatureVersion, error)

	// LinkDiagram links a feature to a diagram
	LinkDiagram(ctx context.Context, featureID, diagramID string) error

	// UnlinkDiagram removes a feature-diagram link
	UnlinkDiagram(ctx context.Context, featureID, diagramID string) error
}

// CreateFeatureRequest represents a manual feature creation
type CreateFeatureRequest struct {
	IdeaID      string                `json:"ideaId"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Source      *models.FeatureSource `json:"source,omitempty"`
	Priority    *models.Priority      `json:"priority,omitempty"`
}

// UpdateFeatureRequest represents a feature update
type UpdateFeatureRequest struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	Priority    *models.Priority      `json:"priority,omitempty"`
	Status      *models.FeatureStatus `json:"status,omitempty"`
	Changelog   *string               `json:"changelog,omitempty"`
}
