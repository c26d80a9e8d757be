package repositories

import (
	"context"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// FeatureUpdate carries the mutable feature fields; nil fields are left unchanged.
type FeatureUpdate struct {
	Title       *string
	Description *string
	Priority    *models.Priority
	Status      *models.FeatureStatus
}

// FeatureRepository defines data access operations for features, their
// version history, and the feature-diagram link table
type FeatureRepository interface {
	// Create persists a new feature
	Create(ctx context.Context, feature *models.Feature) error

	// GetByID retrieves a feature by ID
	GetByID(ctx context.Context, id string) (*models.Feature, error)

	// GetWithRelations retrieves a feature with its ordered tasks and
	// linked diagrams
	GetWithRelations(ctx context.Context, id string) (*models.FeatureWithRelations, error)

	// ListByIdea retrieves all features for an idea, newest first
	ListByIdea(ctx context.Context, ideaID string) ([]models.Feature, error)

	// Update applies the non-nil fields of upd and returns the updated row
	Update(ctx context.Context, id string, upd *FeatureUpdate) (*models.Feature, error)

	// Delete removes a feature, its versions, and its diagram links
	Delete(ctx context.Context, id string) error

	// CreateVersion writes an immutable version snapshot
	CreateVersion(ctx context.Context, featureID string, version int, title, description string, changelog *string) (*models.FeatureVersion, error)

	// ListVersions retrieves the version history, newest first
	ListVersions(ctx context.Context, featureID string) ([]models.FeatureVersion, error)

	// LatestVersionNumber returns the highest version number for a
	// feature, 0 when no versions exist yet
	LatestVersionNumber(ctx context.Context, featureID string) (int, error)

	// LinkDiagram links a feature to a diagram; duplicate links conflict
	LinkDiagram(ctx context.Context, featureID, diagramID string) error

	// UnlinkDiagram removes a feature-diagram link
	UnlinkDiagram(ctx context.Context, featureID, diagramID string) error
}
