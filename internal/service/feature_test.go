package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai"
)

type featureFixture struct {
	svc         services.FeatureService
	featureRepo *fakeFeatureRepo
	docRepo     *fakeDocumentRepo
	ideaRepo    *fakeIdeaRepo
	extractor   *fakeExtractor
}

func newFeatureFixture() *featureFixture {
	f := &featureFixture{
		featureRepo: newFakeFeatureRepo(),
		docRepo:     newFakeDocumentRepo(),
		ideaRepo:    newFakeIdeaRepo(),
		extractor: &fakeExtractor{items: []ai.FeatureItem{
			{Title: "User Accounts", Description: "Registration, login, and profile management."},
			{Title: "Habit Streaks", Description: "Track consecutive completions per habit."},
		}},
	}
	f.svc = NewFeatureService(f.featureRepo, f.docRepo, f.ideaRepo, fakeTxManager{}, f.extractor, testLogger())
	return f
}

func (f *featureFixture) seedIdeaWithDocs() string {
	ideaID := seedConfirmedIdea(f.ideaRepo)
	doc := &models.Document{IdeaID: ideaID, Type: models.DocumentTypePRD, Title: "PRD", Content: "<p>prd</p>", Status: models.DocumentStatusDraft}
	_ = f.docRepo.Create(context.Background(), doc)
	return ideaID
}

func TestExtractFeatures(t *testing.T) {
	f := newFeatureFixture()
	ideaID := f.seedIdeaWithDocs()

	features, err := f.svc.ExtractFeatures(context.Background(), ideaID)
	if err != nil {
		t.Fatalf("ExtractFeatures() error = %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("got %d features, want 2", len(features))
	}
	for _, feat := range features {
		if feat.Source != models.FeatureSourceAuto {
			t.Errorf("Source = %q, want auto", feat.Source)
		}
		if feat.Priority != models.PriorityMedium {
			t.Errorf("Priority = %q, want medium", feat.Priority)
		}
	}
}

func TestExtractFeaturesRequiresDocuments(t *testing.T) {
	f := newFeatureFixture()
	ideaID := seedConfirmedIdea(f.ideaRepo)

	_, err := f.svc.ExtractFeatures(context.Background(), ideaID)
	if !errors.Is(err, domain.ErrStateConflict) {
		t.Errorf("error = %v, want ErrStateConflict", err)
	}
}

func TestCreateFeatureValidation(t *testing.T) {
	f := newFeatureFixture()
	ideaID := f.seedIdeaWithDocs()

	tests := []struct {
		name        string
		title       string
		description string
		wantErr     bool
	}{
		{"valid", "Export", "Export workouts to CSV for analysis.", false},
		{"title too short", "Ex", "Export workouts to CSV for analysis.", true},
		{"description too short", "Export", "short", true},
		{"empty title", "", "Export workouts to CSV for analysis.", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateFeature(context.Background(), &services.CreateFeatureRequest{
				IdeaID:      ideaID,
				Title:       tt.title,
				Description: tt.description,
			})
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("CreateFeature() error = %v", err)
			}
		})
	}
}

func TestCreateFeatureDefaults(t *testing.T) {
	f := newFeatureFixture()
	ideaID := f.seedIdeaWithDocs()

	feature, err := f.svc.CreateFeature(context.Background(), &services.CreateFeatureRequest{
		IdeaID:      ideaID,
		Title:       "Export",
		Description: "Export workouts to CSV for analysis.",
	})
	if err != nil {
		t.Fatalf("CreateFeature() error = %v", err)
	}
	if feature.Source != models.FeatureSourceManual {
		t.Errorf("Source = %q, want manual", feature.Source)
	}
	if feature.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want medium", feature.Priority)
	}
	if feature.Status != models.FeatureStatusActive {
		t.Errorf("Status = %q, want active", feature.Status)
	}
}

func TestUpdateFeatureVersionsOnEdit(t *testing.T) {
	f := newFeatureFixture()
	ideaID := f.seedIdeaWithDocs()
	feature, _ := f.svc.CreateFeature(context.Background(), &services.CreateFeatureRequest{
		IdeaID:      ideaID,
		Title:       "Export",
		Description: "Export workouts to CSV for analysis.",
	})

	newTitle := "Export and Backup"
	updated, err := f.svc.UpdateFeature(context.Background(), feature.ID, &services.UpdateFeatureRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateFeature() error = %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("Title = %q", updated.Title)
	}

	versions, _ := f.featureRepo.ListVersions(context.Background(), feature.ID)
	if len(versions) != 1 {
		t.Fatalf("got %d versions, want 1", len(versions))
	}
	// feature versions carry the post-update values
	if versions[0].Title != newTitle {
		t.Errorf("version title = %q, want post-update title", versions[0].Title)
	}
}

func TestUpdateFeaturePriorityOnlySkipsVersion(t *testing.T) {
	f := newFeatureFixture()
	ideaID := f.seedIdeaWithDocs()
	feature, _ := f.svc.CreateFeature(context.Background(), &services.CreateFeatureRequest{
		IdeaID:      ideaID,
		Title:       "Export",
		Description: "Export workouts to CSV for analysis.",
	})

	high := models.PriorityHigh
	if _, err := f.svc.UpdateFeature(context.Background(), feature.ID, &services.UpdateFeatureRequest{Priority: &high}); err != nil {
		t.Fatalf("UpdateFeature() error = %v", err)
	}

	versions, _ := f.featureRepo.ListVersions(context.Background(), feature.ID)
	if len(versions) != 0 {
		t.Errorf("got %d versions, want 0", len(versions))
	}
}

func TestLinkDiagram(t *testing.T) {
	f := newFeatureFixture()
	ideaID := f.seedIdeaWithDocs()
	feature, _ := f.svc.CreateFeature(context.Background(), &services.CreateFeatureRequest{
		IdeaID:      ideaID,
		Title:       "Export",
		Description: "Export workouts to CSV for analysis.",
	})

	if err := f.svc.LinkDiagram(context.Background(), feature.ID, "diagram-1"); err != nil {
		t.Fatalf("LinkDiagram() error = %v", err)
	}

	// duplicate link conflicts
	err := f.svc.LinkDiagram(context.Background(), feature.ID, "diagram-1")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}

	if err := f.svc.UnlinkDiagram(context.Background(), feature.ID, "diagram-1"); err != nil {
		t.Fatalf("UnlinkDiagram() error = %v", err)
	}
	err = f.svc.UnlinkDiagram(context.Background(), feature.ID, "diagram-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
