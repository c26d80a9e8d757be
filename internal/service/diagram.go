package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai"
)

// Changelog messages for automatically created diagram versions.
const (
	changelogPrevious    = "Previous version"
	changelogBeforeRegen = "Before regeneration"
)

// diagramGenerator is the slice of the AI service the diagram service needs.
type diagramGenerator interface {
	GenerateDiagram(ctx context.Context, diagramType models.DiagramType, ideaText string) (*ai.GeneratedDiagram, error)
}

// diagramService implements the DiagramService interface
type diagramService struct {
	diagramRepo repositories.DiagramRepository
	ideaRepo    repositories.IdeaRepository
	txManager   repositories.TransactionManager
	generator   diagramGenerator
	logger      *slog.Logger
}

// NewDiagramService creates a new diagram service
func NewDiagramService(
	diagramRepo repositories.DiagramRepository,
	ideaRepo repositories.IdeaRepository,
	txManager repositories.TransactionManager,
	generator diagramGenerator,
	logger *slog.Logger,
) services.DiagramService {
	return &diagramService{
		diagramRepo: diagramRepo,
		ideaRepo:    ideaRepo,
		txManager:   txManager,
		generator:   generator,
		logger:      logger,
	}
}

// GenerateDiagrams generates diagrams for a confirmed idea. Each type is an
// independent unit of work: a failed type is logged and skipped so the rest
// still persist.
func (s *diagramService) GenerateDiagrams(ctx context.Context, ideaID string, types []models.DiagramType) ([]models.Diagram, error) {
	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.Status != models.IdeaStatusConfirmed {
		return nil, &domain.StateConflictError{Message: "idea must be confirmed before generating diagrams"}
	}

	if len(types) == 0 {
		types = models.DefaultDiagramTypes
	}
	for _, t := range types {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: invalid diagram type %q", domain.ErrValidation, t)
		}
	}

	diagrams := []models.Diagram{}
	for _, diagramType := range types {
		generated, err := s.generator.GenerateDiagram(ctx, diagramType, idea.Text())
		if err != nil {
			s.logger.Warn("diagram generation skipped", "idea_id", ideaID, "type", diagramType, "error", err)
			continue
		}

		diagram := &models.Diagram{
			IdeaID:      ideaID,
			Type:        diagramType,
			Title:       generated.Title,
			MermaidCode: generated.MermaidCode,
			Status:      models.DiagramStatusDraft,
		}
		if err := s.diagramRepo.Create(ctx, diagram); err != nil {
			return nil, err
		}
		diagrams = append(diagrams, *diagram)
	}

	if len(diagrams) == 0 {
		return nil, domain.NewUnavailableError("diagram generation failed for all requested types")
	}

	s.logger.Info("diagrams generated", "idea_id", ideaID, "count", len(diagrams), "requested", len(types))
	return diagrams, nil
}

// GetDiagram retrieves a diagram by ID
func (s *diagramService) GetDiagram(ctx context.Context, id string) (*models.Diagram, error) {
	return s.diagramRepo.GetByID(ctx, id)
}

// GetDiagramWithVersions retrieves a diagram with its version history
func (s *diagramService) GetDiagramWithVersions(ctx context.Context, id string) (*models.DiagramWithVersions, error) {
	return s.diagramRepo.GetWithVersions(ctx, id)
}

// ListDiagramsByIdea retrieves all diagrams for an idea
func (s *diagramService) ListDiagramsByIdea(ctx context.Context, ideaID string) ([]models.Diagram, error) {
	if _, err := s.ideaRepo.GetByID(ctx, ideaID); err != nil {
		return nil, err
	}
	return s.diagramRepo.ListByIdea(ctx, ideaID)
}

// UpdateDiagram updates a diagram. A mermaid code change snapshots the PRIOR
// code before the update lands, so history holds what the diagram looked
// like before each edit.
func (s *diagramService) UpdateDiagram(ctx context.Context, id string, req *services.UpdateDiagramRequest) (*models.Diagram, error) {
	if req.Title == nil && req.MermaidCode == nil && req.Status == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	if req.Status != nil && *req.Status != models.DiagramStatusDraft && *req.Status != models.DiagramStatusPublished {
		return nil, fmt.Errorf("%w: invalid diagram status %q", domain.ErrValidation, *req.Status)
	}

	current, err := s.diagramRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd := &repositories.DiagramUpdate{
		Title:       req.Title,
		MermaidCode: req.MermaidCode,
		Status:      req.Status,
	}

	codeChanged := req.MermaidCode != nil && *req.MermaidCode != current.MermaidCode
	if !codeChanged {
		return s.diagramRepo.Update(ctx, id, upd)
	}

	changelog := changelogPrevious
	if req.Changelog != nil && *req.Changelog != "" {
		changelog = *req.Changelog
	}

	var updated *models.Diagram
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		latest, err := s.diagramRepo.LatestVersionNumber(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.diagramRepo.CreateVersion(txCtx, id, latest+1, current.MermaidCode, &changelog); err != nil {
			return err
		}
		updated, err = s.diagramRepo.Update(txCtx, id, upd)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("diagram updated", "diagram_id", id, "versioned", true)
	return updated, nil
}

// GetVersionHistory retrieves a diagram's versions, newest first
func (s *diagramService) GetVersionHistory(ctx context.Context, id string) ([]models.DiagramVersion, error) {
	if _, err := s.diagramRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.diagramRepo.ListVersions(ctx, id)
}

// RegenerateDiagram snapshots the current code and re-runs AI generation
func (s *diagramService) RegenerateDiagram(ctx context.Context, id string) (*models.Diagram, error) {
	diagram, err := s.diagramRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	idea, err := s.ideaRepo.GetByID(ctx, diagram.IdeaID)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateDiagram(ctx, diagram.Type, idea.Text())
	if err != nil {
		return nil, err
	}

	changelog := changelogBeforeRegen

	var updated *models.Diagram
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		latest, err := s.diagramRepo.LatestVersionNumber(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.diagramRepo.CreateVersion(txCtx, id, latest+1, diagram.MermaidCode, &changelog); err != nil {
			return err
		}
		updated, err = s.diagramRepo.Update(txCtx, id, &repositories.DiagramUpdate{
			Title:       &generated.Title,
			MermaidCode: &generated.MermaidCode,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("diagram regenerated", "diagram_id", id, "type", diagram.Type)
	return updated, nil
}
