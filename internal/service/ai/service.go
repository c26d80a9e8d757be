package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// Service wraps a Gateway with prompt construction, response parsing, bounded
// retries, and static fallbacks. Structured generations (analysis, documents,
// diagrams) retry on bad shapes and fall back to placeholder content when the
// provider keeps answering garbage; list generations (features, tasks) parse
// best-effort in a single call.
type Service struct {
	gateway Gateway
	logger  *slog.Logger
	sleep   func(time.Duration)
}

// NewService creates an AI service backed by the given gateway.
func NewService(gateway Gateway, logger *slog.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  logger,
		sleep:   time.Sleep,
	}
}

// AnalyzeIdea asks the model for structured feedback on an idea. Returns an
// UnavailableError when the provider could not be reached on any attempt.
func (s *Service) AnalyzeIdea(ctx context.Context, ideaText string) (*models.IdeaAnalysis, error) {
	prompt := BuildAnalyzeIdeaPrompt(ideaText)
	analysis, err := completeWithRetry(ctx, s.gateway, prompt, s.sleep, ParseAnalysis)
	if err != nil {
		s.logger.Error("idea analysis failed", "error", err)
		return nil, domain.NewUnavailableError("AI analysis service is currently unavailable")
	}
	if analysis == nil {
		s.logger.Warn("idea analysis returned unparseable responses, using fallback")
		return fallbackAnalysis(), nil
	}
	return analysis, nil
}

// GeneratePRD generates a product requirements document for an idea.
func (s *Service) GeneratePRD(ctx context.Context, ideaText string, analysis *models.IdeaAnalysis) (*GeneratedDocument, error) {
	prompt := BuildGeneratePRDPrompt(ideaText, analysis)
	doc, err := completeWithRetry(ctx, s.gateway, prompt, s.sleep, ParseDocument)
	if err != nil {
		s.logger.Error("PRD generation failed", "error", err)
		return nil, domain.NewUnavailableError("AI document generation service is currently unavailable")
	}
	if doc == nil {
		s.logger.Warn("PRD generation returned unparseable responses, using fallback")
		return fallbackPRD(ideaText), nil
	}
	return doc, nil
}

// GenerateBRD generates a business requirements document for an idea.
func (s *Service) GenerateBRD(ctx context.Context, ideaText string, analysis *models.IdeaAnalysis) (*GeneratedDocument, error) {
	prompt := BuildGenerateBRDPrompt(ideaText, analysis)
	doc, err := completeWithRetry(ctx, s.gateway, prompt, s.sleep, ParseDocument)
	if err != nil {
		s.logger.Error("BRD generation failed", "error", err)
		return nil, domain.NewUnavailableError("AI document generation service is currently unavailable")
	}
	if doc == nil {
		s.logger.Warn("BRD generation returned unparseable responses, using fallback")
		return fallbackBRD(), nil
	}
	return doc, nil
}

// GenerateDiagram generates a Mermaid diagram of the given type for an idea.
func (s *Service) GenerateDiagram(ctx context.Context, diagramType models.DiagramType, ideaText string) (*GeneratedDiagram, error) {
	prompt := BuildDiagramPrompt(diagramType, ideaText)
	diagram, err := completeWithRetry(ctx, s.gateway, prompt, s.sleep, ParseDiagram)
	if err != nil {
		s.logger.Error("diagram generation failed", "type", diagramType, "error", err)
		return nil, domain.NewUnavailableError("AI diagram generation service is currently unavailable")
	}
	if diagram == nil {
		s.logger.Warn("diagram generation returned unparseable responses, using fallback", "type", diagramType)
		return fallbackDiagram(diagramType), nil
	}
	return diagram, nil
}

// ExtractFeatures asks the model to extract implementable features from the
// combined PRD/BRD content. Parsing is best-effort: a malformed response
// still yields at least one item.
func (s *Service) ExtractFeatures(ctx context.Context, documentsContent string) ([]FeatureItem, error) {
	raw, err := s.gateway.Complete(ctx, BuildExtractFeaturesPrompt(documentsContent))
	if err != nil {
		s.logger.Error("feature extraction failed", "error", err)
		return nil, domain.NewUnavailableError("AI feature extraction service is currently unavailable")
	}
	return ParseFeatureItems(raw), nil
}

// SuggestTasks asks the model to break a feature down into development tasks.
// Parsing is best-effort: a malformed response still yields at least one item.
func (s *Service) SuggestTasks(ctx context.Context, featureTitle, featureDescription string) ([]TaskItem, error) {
	raw, err := s.gateway.Complete(ctx, BuildGenerateTasksPrompt(featureTitle, featureDescription))
	if err != nil {
		s.logger.Error("task suggestion failed", "error", err)
		return nil, domain.NewUnavailableError("AI task suggestion service is currently unavailable")
	}
	return ParseTaskItems(raw), nil
}
