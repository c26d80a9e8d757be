package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai"
)

func newDocumentFixture() (services.DocumentService, *fakeDocumentRepo, *fakeIdeaRepo) {
	docRepo := newFakeDocumentRepo()
	ideaRepo := newFakeIdeaRepo()
	gen := &fakeDocGenerator{
		prd: &ai.GeneratedDocument{Title: "PRD: Habit Tracker", Content: "<h2>Overview</h2><p>prd</p>"},
		brd: &ai.GeneratedDocument{Title: "BRD: Habit Tracker", Content: "<h2>Summary</h2><p>brd</p>"},
	}
	svc := NewDocumentService(docRepo, ideaRepo, fakeTxManager{}, gen, testLogger())
	return svc, docRepo, ideaRepo
}

func seedConfirmedIdea(repo *fakeIdeaRepo) string {
	return repo.seed(models.Idea{
		RawText:        "a habit tracker with social accountability",
		Status:         models.IdeaStatusConfirmed,
		AnalysisResult: testAnalysis,
	})
}

func TestGenerateDocuments(t *testing.T) {
	svc, docRepo, ideaRepo := newDocumentFixture()
	ideaID := seedConfirmedIdea(ideaRepo)

	docs, err := svc.GenerateDocuments(context.Background(), ideaID)
	if err != nil {
		t.Fatalf("GenerateDocuments() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Type != models.DocumentTypePRD || docs[1].Type != models.DocumentTypeBRD {
		t.Errorf("types = %q, %q; want PRD then BRD", docs[0].Type, docs[1].Type)
	}

	for _, doc := range docs {
		versions, _ := docRepo.ListVersions(context.Background(), doc.ID)
		if len(versions) != 1 || versions[0].Version != 1 {
			t.Fatalf("document %s versions = %+v, want single version 1", doc.ID, versions)
		}
		if versions[0].Changelog == nil || *versions[0].Changelog != "Initial generation" {
			t.Errorf("changelog = %v, want Initial generation", versions[0].Changelog)
		}
	}
}

func TestGenerateDocumentsRejectsUnconfirmed(t *testing.T) {
	svc, _, ideaRepo := newDocumentFixture()
	ideaID := ideaRepo.seed(models.Idea{RawText: "a habit tracker with social accountability", Status: models.IdeaStatusDraft})

	_, err := svc.GenerateDocuments(context.Background(), ideaID)
	if !errors.Is(err, domain.ErrStateConflict) {
		t.Errorf("error = %v, want ErrStateConflict", err)
	}
}

func TestGenerateDocumentsRejectsSecondRun(t *testing.T) {
	svc, _, ideaRepo := newDocumentFixture()
	ideaID := seedConfirmedIdea(ideaRepo)

	if _, err := svc.GenerateDocuments(context.Background(), ideaID); err != nil {
		t.Fatalf("first GenerateDocuments() error = %v", err)
	}

	_, err := svc.GenerateDocuments(context.Background(), ideaID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) || conflict.ResourceID == "" {
		t.Errorf("conflict = %+v, want existing resource ID", conflict)
	}
}

func TestUpdateDocumentVersionsOnContentChange(t *testing.T) {
	svc, docRepo, ideaRepo := newDocumentFixture()
	ideaID := seedConfirmedIdea(ideaRepo)
	docs, _ := svc.GenerateDocuments(context.Background(), ideaID)
	docID := docs[0].ID

	newContent := "<h2>Overview</h2><p>edited</p>"
	updated, err := svc.UpdateDocument(context.Background(), docID, &services.UpdateDocumentRequest{Content: &newContent})
	if err != nil {
		t.Fatalf("UpdateDocument() error = %v", err)
	}
	if updated.Content != newContent {
		t.Errorf("Content = %q", updated.Content)
	}

	versions, _ := docRepo.ListVersions(context.Background(), docID)
	if len(versions) != 2 {
		t.Fatalf("got %d versions, want 2", len(versions))
	}
	// documents snapshot the NEW content
	if versions[0].Content != newContent {
		t.Errorf("latest version content = %q, want new content", versions[0].Content)
	}
	if *versions[0].Changelog != "Content updated" {
		t.Errorf("changelog = %q", *versions[0].Changelog)
	}
}

func TestUpdateDocumentTitleOnlySkipsVersion(t *testing.T) {
	svc, docRepo, ideaRepo := newDocumentFixture()
	ideaID := seedConfirmedIdea(ideaRepo)
	docs, _ := svc.GenerateDocuments(context.Background(), ideaID)
	docID := docs[0].ID

	title := "PRD: Renamed"
	if _, err := svc.UpdateDocument(context.Background(), docID, &services.UpdateDocumentRequest{Title: &title}); err != nil {
		t.Fatalf("UpdateDocument() error = %v", err)
	}

	versions, _ := docRepo.ListVersions(context.Background(), docID)
	if len(versions) != 1 {
		t.Errorf("got %d versions, want 1 (no snapshot for metadata-only update)", len(versions))
	}
}

func TestRevertToVersionAppendsHistory(t *testing.T) {
	svc, docRepo, ideaRepo := newDocumentFixture()
	ideaID := seedConfirmedIdea(ideaRepo)
	docs, _ := svc.GenerateDocuments(context.Background(), ideaID)
	docID := docs[0].ID
	original := docs[0].Content

	edited := "<p>edited</p>"
	if _, err := svc.UpdateDocument(context.Background(), docID, &services.UpdateDocumentRequest{Content: &edited}); err != nil {
		t.Fatalf("UpdateDocument() error = %v", err)
	}

	reverted, err := svc.RevertToVersion(context.Background(), docID, 1)
	if err != nil {
		t.Fatalf("RevertToVersion() error = %v", err)
	}
	if reverted.Content != original {
		t.Errorf("Content = %q, want original", reverted.Content)
	}

	versions, _ := docRepo.ListVersions(context.Background(), docID)
	if len(versions) != 3 {
		t.Fatalf("got %d versions, want 3 (history is append-only)", len(versions))
	}
	if *versions[0].Changelog != "Reverted to version 1" {
		t.Errorf("changelog = %q", *versions[0].Changelog)
	}
}

func TestRevertToMissingVersion(t *testing.T) {
	svc, _, ideaRepo := newDocumentFixture()
	ideaID := seedConfirmedIdea(ideaRepo)
	docs, _ := svc.GenerateDocuments(context.Background(), ideaID)

	_, err := svc.RevertToVersion(context.Background(), docs[0].ID, 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRegenerateDocument(t *testing.T) {
	svc, docRepo, ideaRepo := newDocumentFixture()
	ideaID := seedConfirmedIdea(ideaRepo)
	docs, _ := svc.GenerateDocuments(context.Background(), ideaID)
	docID := docs[0].ID

	updated, err := svc.RegenerateDocument(context.Background(), docID)
	if err != nil {
		t.Fatalf("RegenerateDocument() error = %v", err)
	}
	if updated.Title != "PRD: Habit Tracker" {
		t.Errorf("Title = %q", updated.Title)
	}

	versions, _ := docRepo.ListVersions(context.Background(), docID)
	if len(versions) != 2 {
		t.Fatalf("got %d versions, want 2", len(versions))
	}
	if *versions[0].Changelog != "Regenerated by AI" {
		t.Errorf("changelog = %q", *versions[0].Changelog)
	}
}

func TestExportDocument(t *testing.T) {
	svc, _, ideaRepo := newDocumentFixture()
	ideaID := seedConfirmedIdea(ideaRepo)
	docs, _ := svc.GenerateDocuments(context.Background(), ideaID)
	docID := docs[0].ID

	t.Run("markdown", func(t *testing.T) {
		export, err := svc.ExportDocument(context.Background(), docID, "markdown")
		if err != nil {
			t.Fatalf("ExportDocument() error = %v", err)
		}
		if export.MimeType != "text/markdown" || !strings.HasSuffix(export.Filename, ".md") {
			t.Errorf("export = %+v", export)
		}
		if !strings.Contains(export.Content, "# PRD: Habit Tracker") {
			t.Errorf("Content missing title heading: %q", export.Content)
		}
	})

	t.Run("html", func(t *testing.T) {
		export, err := svc.ExportDocument(context.Background(), docID, "html")
		if err != nil {
			t.Fatalf("ExportDocument() error = %v", err)
		}
		if export.MimeType != "text/html" {
			t.Errorf("MimeType = %q", export.MimeType)
		}
		if !strings.Contains(export.Content, "<!DOCTYPE html>") {
			t.Errorf("Content is not a standalone page")
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := svc.ExportDocument(context.Background(), docID, "pdf")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})
}
