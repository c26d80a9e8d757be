package repositories

import (
	"context"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// IdeaUpdate carries the mutable idea fields; nil fields are left unchanged.
type IdeaUpdate struct {
	RefinedText    *string
	AnalysisResult *models.IdeaAnalysis
	Status         *models.IdeaStatus
}

// IdeaRepository defines data access operations for ideas
type IdeaRepository interface {
	// Create persists a new idea in draft status
	Create(ctx context.Context, idea *models.Idea) error

	// GetByID retrieves an idea by ID
	GetByID(ctx context.Context, id string) (*models.Idea, error)

	// List retrieves all ideas, newest first
	List(ctx context.Context) ([]models.Idea, error)

	// Update applies the non-nil fields of upd and returns the updated row
	Update(ctx context.Context, id string, upd *IdeaUpdate) (*models.Idea, error)

	// Delete removes an idea and everything hanging off it
	Delete(ctx context.Context, id string) error
}
