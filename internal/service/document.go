package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai"
)

// Changelog messages for automatically created document versions.
const (
	changelogInitial     = "Initial generation"
	changelogContent     = "Content updated"
	changelogRegenerated = "Regenerated by AI"
)

// documentGenerator is the slice of the AI service the document service needs.
type documentGenerator interface {
	GeneratePRD(ctx context.Context, ideaText string, analysis *models.IdeaAnalysis) (*ai.GeneratedDocument, error)
	GenerateBRD(ctx context.Context, ideaText string, analysis *models.IdeaAnalysis) (*ai.GeneratedDocument, error)
}

// documentService implements the DocumentService interface
type documentService struct {
	docRepo   repositories.DocumentRepository
	ideaRepo  repositories.IdeaRepository
	txManager repositories.TransactionManager
	generator documentGenerator
	converter *md.Converter
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	ideaRepo repositories.IdeaRepository,
	txManager repositories.TransactionManager,
	generator documentGenerator,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		ideaRepo:  ideaRepo,
		txManager: txManager,
		generator: generator,
		converter: md.NewConverter("", true, nil),
		logger:    logger,
	}
}

// GenerateDocuments generates the PRD and BRD for a confirmed idea
func (s *documentService) GenerateDocuments(ctx context.Context, ideaID string) ([]models.Document, error) {
	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.Status != models.IdeaStatusConfirmed {
		return nil, &domain.StateConflictError{Message: "idea must be confirmed before generating documents"}
	}

	existing, err := s.docRepo.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, &domain.ConflictError{
			Message:      "documents already exist for this idea",
			ResourceType: "document",
			ResourceID:   existing[0].ID,
		}
	}

	prd, err := s.generator.GeneratePRD(ctx, idea.Text(), idea.AnalysisResult)
	if err != nil {
		return nil, err
	}
	brd, err := s.generator.GenerateBRD(ctx, idea.Text(), idea.AnalysisResult)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, 2)
	generated := []struct {
		docType models.DocumentType
		content *ai.GeneratedDocument
	}{
		{models.DocumentTypePRD, prd},
		{models.DocumentTypeBRD, brd},
	}

	for _, g := range generated {
		doc := &models.Document{
			IdeaID:  ideaID,
			Type:    g.docType,
			Title:   g.content.Title,
			Content: g.content.Content,
			Status:  models.DocumentStatusDraft,
		}

		changelog := changelogInitial
		err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			if err := s.docRepo.Create(txCtx, doc); err != nil {
				return err
			}
			_, err := s.docRepo.CreateVersion(txCtx, doc.ID, 1, doc.Content, &changelog)
			return err
		})
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	s.logger.Info("documents generated", "idea_id", ideaID, "count", len(docs))
	return docs, nil
}

// GetDocument retrieves a document by ID
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// GetDocumentWithVersions retrieves a document with its version history
func (s *documentService) GetDocumentWithVersions(ctx context.Context, id string) (*models.DocumentWithVersions, error) {
	return s.docRepo.GetWithVersions(ctx, id)
}

// ListDocumentsByIdea retrieves all documents for an idea
func (s *documentService) ListDocumentsByIdea(ctx context.Context, ideaID string) ([]models.Document, error) {
	if _, err := s.ideaRepo.GetByID(ctx, ideaID); err != nil {
		return nil, err
	}
	return s.docRepo.ListByIdea(ctx, ideaID)
}

// UpdateDocument updates a document. A content change snapshots the new
// content as the next version inside one transaction.
func (s *documentService) UpdateDocument(ctx context.Context, id string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if req.Title == nil && req.Content == nil && req.Status == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	if req.Status != nil && *req.Status != models.DocumentStatusDraft && *req.Status != models.DocumentStatusPublished {
		return nil, fmt.Errorf("%w: invalid document status %q", domain.ErrValidation, *req.Status)
	}

	current, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd := &repositories.DocumentUpdate{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	}

	contentChanged := req.Content != nil && *req.Content != current.Content
	if !contentChanged {
		return s.docRepo.Update(ctx, id, upd)
	}

	changelog := changelogContent
	if req.Changelog != nil && *req.Changelog != "" {
		changelog = *req.Changelog
	}

	var updated *models.Document
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		latest, err := s.docRepo.LatestVersionNumber(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.docRepo.CreateVersion(txCtx, id, latest+1, *req.Content, &changelog); err != nil {
			return err
		}
		updated, err = s.docRepo.Update(txCtx, id, upd)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document updated", "document_id", id, "versioned", true)
	return updated, nil
}

// GetVersionHistory retrieves a document's versions, newest first
func (s *documentService) GetVersionHistory(ctx context.Context, id string) ([]models.DocumentVersion, error) {
	if _, err := s.docRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.docRepo.ListVersions(ctx, id)
}

// RevertToVersion restores an old version's content. The revert itself is
// recorded as a new version, keeping history append-only.
func (s *documentService) RevertToVersion(ctx context.Context, id string, version int) (*models.Document, error) {
	target, err := s.docRepo.GetVersion(ctx, id, version)
	if err != nil {
		return nil, err
	}

	changelog := fmt.Sprintf("Reverted to version %d", version)

	var updated *models.Document
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		latest, err := s.docRepo.LatestVersionNumber(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.docRepo.CreateVersion(txCtx, id, latest+1, target.Content, &changelog); err != nil {
			return err
		}
		updated, err = s.docRepo.Update(txCtx, id, &repositories.DocumentUpdate{Content: &target.Content})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document reverted", "document_id", id, "to_version", version)
	return updated, nil
}

// RegenerateDocument re-runs AI generation for an existing document
func (s *documentService) RegenerateDocument(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	idea, err := s.ideaRepo.GetByID(ctx, doc.IdeaID)
	if err != nil {
		return nil, err
	}

	var generated *ai.GeneratedDocument
	switch doc.Type {
	case models.DocumentTypeBRD:
		generated, err = s.generator.GenerateBRD(ctx, idea.Text(), idea.AnalysisResult)
	default:
		generated, err = s.generator.GeneratePRD(ctx, idea.Text(), idea.AnalysisResult)
	}
	if err != nil {
		return nil, err
	}

	changelog := changelogRegenerated

	var updated *models.Document
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		latest, err := s.docRepo.LatestVersionNumber(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.docRepo.CreateVersion(txCtx, id, latest+1, generated.Content, &changelog); err != nil {
			return err
		}
		updated, err = s.docRepo.Update(txCtx, id, &repositories.DocumentUpdate{
			Title:   &generated.Title,
			Content: &generated.Content,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document regenerated", "document_id", id, "type", doc.Type)
	return updated, nil
}

// ExportDocument prepares the document for download as markdown or a
// standalone HTML page
func (s *documentService) ExportDocument(ctx context.Context, id, format string) (*models.DocumentExport, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	base := exportFilename(doc.Title)

	switch format {
	case "markdown", "md":
		markdown, err := s.converter.ConvertString(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("convert document to markdown: %w", err)
		}
		return &models.DocumentExport{
			Content:  fmt.Sprintf("# %s\n\n%s", doc.Title, markdown),
			Filename: base + ".md",
			MimeType: "text/markdown",
		}, nil
	case "html":
		return &models.DocumentExport{
			Content:  renderHTMLPage(doc.Title, doc.Content),
			Filename: base + ".html",
			MimeType: "text/html",
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", domain.ErrValidation, format)
	}
}

// exportFilename turns a document title into a safe lowercase filename stem
func exportFilename(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		return "document"
	}
	return name
}

func renderHTMLPage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; }
h1, h2, h3 { line-height: 1.25; }
</style>
</head>
<body>
<h1>%s</h1>
%s
</body>
</html>
`, title, title, body)
}
