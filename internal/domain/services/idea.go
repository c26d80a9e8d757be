package services

import (
	"context"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// IdeaService handles idea lifecycle business logic.
// The state machine is: draft --analyze--> draft (with analysis)
// --confirm--> confirmed. Confirmation is one-way and requires analysis.
type IdeaService interface {
	// CreateIdea validates and persists a new draft idea
	CreateIdea(ctx context.Context, req *CreateIdeaRequest) (*models.Idea, error)

	// GetIdea retrieves an idea by ID
	GetIdea(ctx context.Context, id string) (*models.Idea, error)

	// ListIdeas retrieves all ideas, newest first
	ListIdeas(ctx context.Context) ([]models.Idea, error)

	// AnalyzeIdea runs AI analysis and stores the result on the idea;
	// re-analysis replaces any previous result
	AnalyzeIdea(ctx context.Context, id string) (*models.Idea, error)

	// RefineIdea updates the refined text of a draft idea
	RefineIdea(ctx context.Context, id string, req *RefineIdeaRequest) (*models.Idea, error)

	// ConfirmIdea transitions an analyzed draft idea to confirmed
	ConfirmIdea(ctx context.Context, id string) (*models.Idea, error)

	// DeleteIdea removes an idea
	DeleteIdea(ctx context.Context, id string) error
}

// CreateIdeaRequest represents an idea submission
type CreateIdeaRequest struct {
	RawText string `json:"rawText"`
}

// RefineIdeaRequest carries refined text and optionally the user's answers
// to clarifying questions from the last analysis
type RefineIdeaRequest struct {
	RefinedText *string                 `json:"refinedText,omitempty"`
	Answers     []models.QuestionAnswer `json:"answers,omitempty"`
}
