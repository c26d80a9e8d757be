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
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai"
)

// featureExtractor is the slice of the AI service the feature service needs.
type featureExtractor interface {
	ExtractFeatures(ctx context.Context, documentsContent string) ([]ai.FeatureItem, error)
}

// featureService implements the FeatureService interface
type featureService struct {
	featureRepo repositories.FeatureRepository
	docRepo     repositories.DocumentRepository
	ideaRepo    repositories.IdeaRepository
	txManager   repositories.TransactionManager
	extractor   featureExtractor
	logger      *slog.Logger
}

// NewFeatureService creates a new feature service
func NewFeatureService(
	featureRepo repositories.FeatureRepository,
	docRepo repositories.DocumentRepository,
	ideaRepo repositories.IdeaRepository,
	txManager repositories.TransactionManager,
	extractor featureExtractor,
	logger *slog.Logger,
) services.FeatureService {
	return &featureService{
		featureRepo: featureRepo,
		docRepo:     docRepo,
		ideaRepo:    ideaRepo,
		txManager:   txManager,
		extractor:   extractor,
		logger:      logger,
	}
}

// ExtractFeatures asks the AI to extract features from the idea's documents.
// Extracted features are persisted with source=auto and medium priority.
func (s *featureService) ExtractFeatures(ctx context.Context, ideaID string) ([]models.Feature, error) {
	if _, err := s.ideaRepo.GetByID(ctx, ideaID); err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, &domain.StateConflictError{Message: "generate documents before extracting features"}
	}

	var b strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&b, "## %s: %s\n\n%s\n\n", doc.Type, doc.Title, doc.Content)
	}

	items, err := s.extractor.ExtractFeatures(ctx, b.String())
	if err != nil {
		return nil, err
	}

	features := []models.Feature{}
	for _, item := range items {
		feature := &models.Feature{
			IdeaID:      ideaID,
			Title:       item.Title,
			Description: item.Description,
			Source:      models.FeatureSourceAuto,
			Status:      models.FeatureStatusActive,
			Priority:    models.PriorityMedium,
		}
		if err := s.featureRepo.Create(ctx, feature); err != nil {
			return nil, err
		}
		features = append(features, *feature)
	}

	s.logger.Info("features extracted", "idea_id", ideaID, "count", len(features))
	return features, nil
}

func validateFeatureFields(title, description string) error {
	return validation.Errors{
		"title": validation.Validate(title,
			validation.Required,
			validation.Length(config.MinFeatureTitleLength, config.MaxTitleLength)),
		"description": validation.Validate(description,
			validation.Required,
			validation.Length(config.MinFeatureDescriptionLength, 0)),
	}.Filter()
}

// CreateFeature validates and persists a manually entered feature
func (s *featureService) CreateFeature(ctx context.Context, req *services.CreateFeatureRequest) (*models.Feature, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if err := validateFeatureFields(title, description); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	source := models.FeatureSourceManual
	if req.Source != nil {
		source = *req.Source
	}
	priority := models.PriorityMedium
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, *req.Priority)
		}
		priority = *req.Priority
	}

	feature := &models.Feature{
		IdeaID:      req.IdeaID,
		Title:       title,
		Description: description,
		Source:      source,
		Status:      models.FeatureStatusActive,
		Priority:    priority,
	}
	if err := s.featureRepo.Create(ctx, feature); err != nil {
		return nil, err
	}

	s.logger.Info("feature created", "feature_id", feature.ID, "idea_id", req.IdeaID)
	return feature, nil
}

// GetFeature retrieves a feature by ID
func (s *featureService) GetFeature(ctx context.Context, id string) (*models.Feature, error) {
	return s.featureRepo.GetByID(ctx, id)
}

// GetFeatureWithRelations retrieves a feature with its tasks and diagrams
func (s *featureService) GetFeatureWithRelations(ctx context.Context, id string) (*models.FeatureWithRelations, error) {
	return s.featureRepo.GetWithRelations(ctx, id)
}

// ListFeaturesByIdea retrieves all features for an idea
func (s *featureService) ListFeaturesByIdea(ctx context.Context, ideaID string) ([]models.Feature, error) {
	if _, err := s.ideaRepo.GetByID(ctx, ideaID); err != nil {
		return nil, err
	}
	return s.featureRepo.ListByIdea(ctx, ideaID)
}

// UpdateFeature updates a feature. A title or description change snapshots
// the post-update values as the next version.
func (s *featureService) UpdateFeature(ctx context.Context, id string, req *services.UpdateFeatureRequest) (*models.Feature, error) {
	if req.Title == nil && req.Description == nil && req.Priority == nil && req.Status == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, *req.Priority)
	}
	if req.Status != nil && *req.Status != models.FeatureStatusActive && *req.Status != models.FeatureStatusArchived {
		return nil, fmt.Errorf("%w: invalid feature status %q", domain.ErrValidation, *req.Status)
	}

	current, err := s.featureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	description := current.Description
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
		req.Description = &description
	}
	if err := validateFeatureFields(title, description); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	upd := &repositories.FeatureUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}

	versioned := title != current.Title || description != current.Description
	if !versioned {
		return s.featureRepo.Update(ctx, id, upd)
	}

	var updated *models.Feature
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		latest, err := s.featureRepo.LatestVersionNumber(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.featureRepo.CreateVersion(txCtx, id, latest+1, title, description, req.Changelog); err != nil {
			return err
		}
		updated, err = s.featureRepo.Update(txCtx, id, upd)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("feature updated", "feature_id", id, "versioned", true)
	return updated, nil
}

// DeleteFeature removes a feature
func (s *featureService) DeleteFeature(ctx context.Context, id string) error {
	if err := s.featureRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("feature deleted", "feature_id", id)
	return nil
}

// GetVersionHistory retrieves a feature's versions, newest first
func (s *featureService) GetVersionHistory(ctx context.Context, id string) ([]models.FeatureVersion, error) {
	if _, err := s.featureRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.featureRepo.ListVersions(ctx, id)
}

// LinkDiagram links a feature to a diagram
func (s *featureService) LinkDiagram(ctx context.Context, featureID, diagramID string) error {
	if err := s.featureRepo.LinkDiagram(ctx, featureID, diagramID); err != nil {
		return err
	}
	s.logger.Info("diagram linked", "feature_id", featureID, "diagram_id", diagramID)
	return nil
}

// UnlinkDiagram removes a feature-diagram link
func (s *featureService) UnlinkDiagram(ctx context.Context, featureID, diagramID string) error {
	if err := s.featureRepo.UnlinkDiagram(ctx, featureID, diagramID); err != nil {
		return err
	}
	s.logger.Info("diagram unlinked", "feature_id", featureID, "diagram_id", diagramID)
	return nil
}
