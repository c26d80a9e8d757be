package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/config"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
)

// ideaAnalyzer is the slice of the AI service the idea service needs.
type ideaAnalyzer interface {
	AnalyzeIdea(ctx context.Context, ideaText string) (*models.IdeaAnalysis, error)
}

// ideaService implements the IdeaService interface
type ideaService struct {
	ideaRepo repositories.IdeaRepository
	analyzer ideaAnalyzer
	logger   *slog.Logger
}

// NewIdeaService creates a new idea service
func NewIdeaService(
	ideaRepo repositories.IdeaRepository,
	analyzer ideaAnalyzer,
	logger *slog.Logger,
) services.IdeaService {
	return &ideaService{
		ideaRepo: ideaRepo,
		analyzer: analyzer,
		logger:   logger,
	}
}

// normalizeIdeaText trims and collapses all whitespace runs to single spaces
func normalizeIdeaText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func validateIdeaText(text string) error {
	return validation.Validate(text,
		validation.Required.Error("idea text is required"),
		validation.Length(config.MinIdeaTextLength, config.MaxIdeaTextLength).
			Error(fmt.Sprintf("idea text must be between %d and %d characters",
				config.MinIdeaTextLength, config.MaxIdeaTextLength)),
	)
}

// CreateIdea validates and persists a new draft idea
func (s *ideaService) CreateIdea(ctx context.Context, req *services.CreateIdeaRequest) (*models.Idea, error) {
	text := normalizeIdeaText(req.RawText)
	if err := validateIdeaText(text); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	idea := &models.Idea{
		RawText: text,
		Status:  models.IdeaStatusDraft,
	}
	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, err
	}

	s.logger.Info("idea created", "idea_id", idea.ID, "length", len(text))
	return idea, nil
}

// GetIdea retrieves an idea by ID
func (s *ideaService) GetIdea(ctx context.Context, id string) (*models.Idea, error) {
	return s.ideaRepo.GetByID(ctx, id)
}

// ListIdeas retrieves all ideas, newest first
func (s *ideaService) ListIdeas(ctx context.Context) ([]models.Idea, error) {
	return s.ideaRepo.List(ctx)
}

// AnalyzeIdea runs AI analysis and stores the result. Re-analysis replaces
// the previous result; confirmed ideas can no longer be analyzed.
func (s *ideaService) AnalyzeIdea(ctx context.Context, id string) (*models.Idea, error) {
	idea, err := s.ideaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if idea.Status == models.IdeaStatusConfirmed {
		return nil, &domain.StateConflictError{Message: "confirmed ideas cannot be re-analyzed"}
	}

	analysis, err := s.analyzer.AnalyzeIdea(ctx, idea.Text())
	if err != nil {
		return nil, err
	}

	updated, err := s.ideaRepo.Update(ctx, id, &repositories.IdeaUpdate{
		AnalysisResult: analysis,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("idea analyzed", "idea_id", id)
	return updated, nil
}

// RefineIdea updates the refined text of a draft idea. Answers to clarifying
// questions are folded into the refined text so later generation sees them.
func (s *ideaService) RefineIdea(ctx context.Context, id string, req *services.RefineIdeaRequest) (*models.Idea, error) {
	idea, err := s.ideaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if idea.Status == models.IdeaStatusConfirmed {
		return nil, &domain.StateConflictError{Message: "confirmed ideas cannot be refined"}
	}

	if req.RefinedText == nil && len(req.Answers) == 0 {
		return nil, fmt.Errorf("%w: refinedText or answers must be provided", domain.ErrValidation)
	}

	base := idea.Text()
	if req.RefinedText != nil {
		base = normalizeIdeaText(*req.RefinedText)
	}
	if err := validateIdeaText(base); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	refined := base
	if len(req.Answers) > 0 {
		var b strings.Builder
		b.WriteString(base)
		b.WriteString("\n\nClarifications:")
		for _, qa := range req.Answers {
			fmt.Fprintf(&b, "\nQ: %s\nA: %s", strings.TrimSpace(qa.Question), strings.TrimSpace(qa.Answer))
		}
		refined = b.String()
	}

	updated, err := s.ideaRepo.Update(ctx, id, &repositories.IdeaUpdate{
		RefinedText: &refined,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("idea refined", "idea_id", id, "answers", len(req.Answers))
	return updated, nil
}

// ConfirmIdea transitions an analyzed draft idea to confirmed. The
// transition is one-way.
func (s *ideaService) ConfirmIdea(ctx context.Context, id string) (*models.Idea, error) {
	idea, err := s.ideaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if idea.Status == models.IdeaStatusConfirmed {
		return nil, &domain.StateConflictError{Message: "idea is already confirmed"}
	}
	if idea.AnalysisResult == nil {
		return nil, &domain.StateConflictError{Message: "idea must be analyzed before confirmation"}
	}

	confirmed := models.IdeaStatusConfirmed
	updated, err := s.ideaRepo.Update(ctx, id, &repositories.IdeaUpdate{
		Status: &confirmed,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("idea confirmed", "idea_id", id)
	return updated, nil
}

// DeleteIdea removes an idea and everything generated from it
func (s *ideaService) DeleteIdea(ctx context.Context, id string) error {
	if err := s.ideaRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("idea deleted", "idea_id", id)
	return nil
}
