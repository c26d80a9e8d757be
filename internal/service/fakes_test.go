package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the function directly; the fakes below have no real
// transactional state to protect.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// in-memory idea repository

type fakeIdeaRepo struct {
	ideas  map[string]*models.Idea
	nextID int
}

func newFakeIdeaRepo() *fakeIdeaRepo {
	return &fakeIdeaRepo{ideas: map[string]*models.Idea{}}
}

func (r *fakeIdeaRepo) genID(prefix string) string {
	r.nextID++
	return fmt.Sprintf("%s-%d", prefix, r.nextID)
}

func (r *fakeIdeaRepo) Create(ctx context.Context, idea *models.Idea) error {
	idea.ID = r.genID("idea")
	idea.CreatedAt = time.Now()
	idea.UpdatedAt = idea.CreatedAt
	cp := *idea
	r.ideas[idea.ID] = &cp
	return nil
}

func (r *fakeIdeaRepo) GetByID(ctx context.Context, id string) (*models.Idea, error) {
	idea, ok := r.ideas[id]
	if !ok {
		return nil, fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
	}
	cp := *idea
	return &cp, nil
}

func (r *fakeIdeaRepo) List(ctx context.Context) ([]models.Idea, error) {
	out := []models.Idea{}
	for _, idea := range r.ideas {
		out = append(out, *idea)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeIdeaRepo) Update(ctx context.Context, id string, upd *repositories.IdeaUpdate) (*models.Idea, error) {
	idea, ok := r.ideas[id]
	if !ok {
		return nil, fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
	}
	if upd.RefinedText != nil {
		idea.RefinedText = upd.RefinedText
	}
	if upd.AnalysisResult != nil {
		idea.AnalysisResult = upd.AnalysisResult
	}
	if upd.Status != nil {
		idea.Status = *upd.Status
	}
	idea.UpdatedAt = time.Now()
	cp := *idea
	return &cp, nil
}

func (r *fakeIdeaRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.ideas[id]; !ok {
		return fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
	}
	delete(r.ideas, id)
	return nil
}

// seed inserts an idea directly, bypassing validation
func (r *fakeIdeaRepo) seed(idea models.Idea) string {
	if idea.ID == "" {
		idea.ID = r.genID("idea")
	}
	r.ideas[idea.ID] = &idea
	return idea.ID
}

// ---------------------------------------------------------------------------
// in-memory document repository

type fakeDocumentRepo struct {
	docs     map[string]*models.Document
	versions map[string][]models.DocumentVersion
	nextID   int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		docs:     map[string]*models.Document{},
		versions: map[string][]models.DocumentVersion{},
	}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	for _, existing := range r.docs {
		if existing.IdeaID == doc.IdeaID && existing.Type == doc.Type {
			return fmt.Errorf("%s document already exists: %w", doc.Type, domain.ErrConflict)
		}
	}
	r.nextID++
	doc.ID = fmt.Sprintf("doc-%d", r.nextID)
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeDocumentRepo) GetWithVersions(ctx context.Context, id string) (*models.DocumentWithVersions, error) {
	doc, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	versions, _ := r.ListVersions(ctx, id)
	return &models.DocumentWithVersions{Document: *doc, Versions: versions}, nil
}

func (r *fakeDocumentRepo) ListByIdea(ctx context.Context, ideaID string) ([]models.Document, error) {
	out := []models.Document{}
	for _, doc := range r.docs {
		if doc.IdeaID == ideaID {
			out = append(out, *doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, id string, upd *repositories.DocumentUpdate) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	if upd.Title != nil {
		doc.Title = *upd.Title
	}
	if upd.Content != nil {
		doc.Content = *upd.Content
	}
	if upd.Status != nil {
		doc.Status = *upd.Status
	}
	doc.UpdatedAt = time.Now()
	cp := *doc
	return &cp, nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	delete(r.docs, id)
	delete(r.versions, id)
	return nil
}

func (r *fakeDocumentRepo) CreateVersion(ctx context.Context, documentID string, version int, content string, changelog *string) (*models.DocumentVersion, error) {
	for _, v := range r.versions[documentID] {
		if v.Version == version {
			return nil, fmt.Errorf("version %d: %w", version, domain.ErrConflict)
		}
	}
	v := models.DocumentVersion{
		ID:         fmt.Sprintf("docver-%s-%d", documentID, version),
		DocumentID: documentID,
		Version:    version,
		Content:    content,
		Changelog:  changelog,
		CreatedAt:  time.Now(),
	}
	r.versions[documentID] = append(r.versions[documentID], v)
	return &v, nil
}

func (r *fakeDocumentRepo) GetVersion(ctx context.Context, documentID string, version int) (*models.DocumentVersion, error) {
	for _, v := range r.versions[documentID] {
		if v.Version == version {
			cp := v
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("version %d of document %s: %w", version, documentID, domain.ErrNotFound)
}

func (r *fakeDocumentRepo) ListVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error) {
	out := append([]models.DocumentVersion{}, r.versions[documentID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (r *fakeDocumentRepo) LatestVersionNumber(ctx context.Context, documentID string) (int, error) {
	latest := 0
	for _, v := range r.versions[documentID] {
		if v.Version > latest {
			latest = v.Version
		}
	}
	return latest, nil
}

// ---------------------------------------------------------------------------
// in-memory diagram repository

type fakeDiagramRepo struct {
	diagrams map[string]*models.Diagram
	versions map[string][]models.DiagramVersion
	nextID   int
}

func newFakeDiagramRepo() *fakeDiagramRepo {
	return &fakeDiagramRepo{
		diagrams: map[string]*models.Diagram{},
		versions: map[string][]models.DiagramVersion{},
	}
}

func (r *fakeDiagramRepo) Create(ctx context.Context, diagram *models.Diagram) error {
	r.nextID++
	diagram.ID = fmt.Sprintf("diagram-%d", r.nextID)
	diagram.CreatedAt = time.Now()
	diagram.UpdatedAt = diagram.CreatedAt
	cp := *diagram
	r.diagrams[diagram.ID] = &cp
	return nil
}

func (r *fakeDiagramRepo) GetByID(ctx context.Context, id string) (*models.Diagram, error) {
	d, ok := r.diagrams[id]
	if !ok {
		return nil, fmt.Errorf("diagram %s: %w", id, domain.ErrNotFound)
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDiagramRepo) GetWithVersions(ctx context.Context, id string) (*models.DiagramWithVersions, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	versions, _ := r.ListVersions(ctx, id)
	return &models.DiagramWithVersions{Diagram: *d, Versions: versions}, nil
}

func (r *fakeDiagramRepo) ListByIdea(ctx context.Context, ideaID string) ([]models.Diagram, error) {
	out := []models.Diagram{}
	for _, d := range r.diagrams {
		if d.IdeaID == ideaID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDiagramRepo) Update(ctx context.Context, id string, upd *repositories.DiagramUpdate) (*models.Diagram, error) {
	d, ok := r.diagrams[id]
	if !ok {
		return nil, fmt.Errorf("diagram %s: %w", id, domain.ErrNotFound)
	}
	if upd.Title != nil {
		d.Title = *upd.Title
	}
	if upd.MermaidCode != nil {
		d.MermaidCode = *upd.MermaidCode
	}
	if upd.Status != nil {
		d.Status = *upd.Status
	}
	d.UpdatedAt = time.Now()
	cp := *d
	return &cp, nil
}

func (r *fakeDiagramRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.diagrams[id]; !ok {
		return fmt.Errorf("diagram %s: %w", id, domain.ErrNotFound)
	}
	delete(r.diagrams, id)
	delete(r.versions, id)
	return nil
}

func (r *fakeDiagramRepo) CreateVersion(ctx context.Context, diagramID string, version int, mermaidCode string, changelog *string) (*models.DiagramVersion, error) {
	for _, v := range r.versions[diagramID] {
		if v.Version == version {
			return nil, fmt.Errorf("version %d: %w", version, domain.ErrConflict)
		}
	}
	v := models.DiagramVersion{
		ID:          fmt.Sprintf("diagver-%s-%d", diagramID, version),
		DiagramID:   diagramID,
		Version:     version,
		MermaidCode: mermaidCode,
		Changelog:   changelog,
		CreatedAt:   time.Now(),
	}
	r.versions[diagramID] = append(r.versions[diagramID], v)
	return &v, nil
}

func (r *fakeDiagramRepo) ListVersions(ctx context.Context, diagramID string) ([]models.DiagramVersion, error) {
	out := append([]models.DiagramVersion{}, r.versions[diagramID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (r *fakeDiagramRepo) LatestVersionNumber(ctx context.Context, diagramID string) (int, error) {
	latest := 0
	for _, v := range r.versions[diagramID] {
		if v.Version > latest {
			latest = v.Version
		}
	}
	return latest, nil
}

// ---------------------------------------------------------------------------
// in-memory feature repository

type featureLink struct{ featureID, diagramID string }

type fakeFeatureRepo struct {
	features map[string]*models.Feature
	versions map[string][]models.FeatureVersion
	links    []featureLink
	taskRepo *fakeTaskRepo
	nextID   int
}

func newFakeFeatureRepo() *fakeFeatureRepo {
	return &fakeFeatureRepo{
		features: map[string]*models.Feature{},
		versions: map[string][]models.FeatureVersion{},
	}
}

func (r *fakeFeatureRepo) Create(ctx context.Context, feature *models.Feature) error {
	r.nextID++
	feature.ID = fmt.Sprintf("feature-%d", r.nextID)
	feature.CreatedAt = time.Now()
	feature.UpdatedAt = feature.CreatedAt
	cp := *feature
	r.features[feature.ID] = &cp
	return nil
}

func (r *fakeFeatureRepo) GetByID(ctx context.Context, id string) (*models.Feature, error) {
	f, ok := r.features[id]
	if !ok {
		return nil, fmt.Errorf("feature %s: %w", id, domain.ErrNotFound)
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFeatureRepo) GetWithRelations(ctx context.Context, id string) (*models.FeatureWithRelations, error) {
	f, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &models.FeatureWithRelations{Feature: *f, Tasks: []models.Task{}, Diagrams: []models.Diagram{}}
	if r.taskRepo != nil {
		out.Tasks, _ = r.taskRepo.ListByFeature(ctx, id)
	}
	return out, nil
}

func (r *fakeFeatureRepo) ListByIdea(ctx context.Context, ideaID string) ([]models.Feature, error) {
	out := []models.Feature{}
	for _, f := range r.features {
		if f.IdeaID == ideaID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFeatureRepo) Update(ctx context.Context, id string, upd *repositories.FeatureUpdate) (*models.Feature, error) {
	f, ok := r.features[id]
	if !ok {
		return nil, fmt.Errorf("feature %s: %w", id, domain.ErrNotFound)
	}
	if upd.Title != nil {
		f.Title = *upd.Title
	}
	if upd.Description != nil {
		f.Description = *upd.Description
	}
	if upd.Priority != nil {
		f.Priority = *upd.Priority
	}
	if upd.Status != nil {
		f.Status = *upd.Status
	}
	f.UpdatedAt = time.Now()
	cp := *f
	return &cp, nil
}

func (r *fakeFeatureRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.features[id]; !ok {
		return fmt.Errorf("feature %s: %w", id, domain.ErrNotFound)
	}
	delete(r.features, id)
	delete(r.versions, id)
	return nil
}

func (r *fakeFeatureRepo) CreateVersion(ctx context.Context, featureID string, version int, title, description string, changelog *string) (*models.FeatureVersion, error) {
	for _, v := range r.versions[featureID] {
		if v.Version == version {
			return nil, fmt.Errorf("version %d: %w", version, domain.ErrConflict)
		}
	}
	v := models.FeatureVersion{
		ID:          fmt.Sprintf("featver-%s-%d", featureID, version),
		FeatureID:   featureID,
		Version:     version,
		Title:       title,
		Description: description,
		Changelog:   changelog,
		CreatedAt:   time.Now(),
	}
	r.versions[featureID] = append(r.versions[featureID], v)
	return &v, nil
}

func (r *fakeFeatureRepo) ListVersions(ctx context.Context, featureID string) ([]models.FeatureVersion, error) {
	out := append([]models.FeatureVersion{}, r.versions[featureID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (r *fakeFeatureRepo) LatestVersionNumber(ctx context.Context, featureID string) (int, error) {
	latest := 0
	for _, v := range r.versions[featureID] {
		if v.Version > latest {
			latest = v.Version
		}
	}
	return latest, nil
}

func (r *fakeFeatureRepo) LinkDiagram(ctx context.Context, featureID, diagramID string) error {
	for _, l := range r.links {
		if l.featureID == featureID && l.diagramID == diagramID {
			return fmt.Errorf("link exists: %w", domain.ErrConflict)
		}
	}
	r.links = append(r.links, featureLink{featureID, diagramID})
	return nil
}

func (r *fakeFeatureRepo) UnlinkDiagram(ctx context.Context, featureID, diagramID string) error {
	for i, l := range r.links {
		if l.featureID == featureID && l.diagramID == diagramID {
			r.links = append(r.links[:i], r.links[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("link: %w", domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// in-memory task repository

type depEdge struct{ taskID, dependsOnID string }

type fakeTaskRepo struct {
	tasks    map[string]*models.Task
	versions map[string][]models.TaskVersion
	deps     []depEdge
	nextID   int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:    map[string]*models.Task{},
		versions: map[string][]models.TaskVersion{},
	}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	r.nextID++
	task.ID = fmt.Sprintf("task-%d", r.nextID)
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) GetWithDependencies(ctx context.Context, id string) (*models.TaskWithDependencies, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &models.TaskWithDependencies{Task: *t, DependsOn: []models.Task{}, Dependents: []models.Task{}}
	for _, e := range r.deps {
		if e.taskID == id {
			if dep, ok := r.tasks[e.dependsOnID]; ok {
				out.DependsOn = append(out.DependsOn, *dep)
			}
		}
		if e.dependsOnID == id {
			if dep, ok := r.tasks[e.taskID]; ok {
				out.Dependents = append(out.Dependents, *dep)
			}
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListByFeature(ctx context.Context, featureID string) ([]models.Task, error) {
	out := []models.Task{}
	for _, t := range r.tasks {
		if t.FeatureID == featureID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, id string, upd *repositories.TaskUpdate) (*models.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.EstimatedEffort != nil {
		t.EstimatedEffort = upd.EstimatedEffort
	}
	if upd.Order != nil {
		t.Order = *upd.Order
	}
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	delete(r.tasks, id)
	delete(r.versions, id)
	return nil
}

func (r *fakeTaskRepo) AddDependency(ctx context.Context, taskID, dependsOnTaskID string) error {
	for _, e := range r.deps {
		if e.taskID == taskID && e.dependsOnID == dependsOnTaskID {
			return fmt.Errorf("dependency exists: %w", domain.ErrConflict)
		}
	}
	r.deps = append(r.deps, depEdge{taskID, dependsOnTaskID})
	return nil
}

func (r *fakeTaskRepo) RemoveDependency(ctx context.Context, taskID, dependsOnTaskID string) error {
	for i, e := range r.deps {
		if e.taskID == taskID && e.dependsOnID == dependsOnTaskID {
			r.deps = append(r.deps[:i], r.deps[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("dependency: %w", domain.ErrNotFound)
}

func (r *fakeTaskRepo) DependencyIDs(ctx context.Context, taskID string) ([]string, error) {
	out := []string{}
	for _, e := range r.deps {
		if e.taskID == taskID {
			out = append(out, e.dependsOnID)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) CreateVersion(ctx context.Context, taskID string, version int, title, description string, status models.TaskStatus, changelog *string) (*models.TaskVersion, error) {
	for _, v := range r.versions[taskID] {
		if v.Version == version {
			return nil, fmt.Errorf("version %d: %w", version, domain.ErrConflict)
		}
	}
	v := models.TaskVersion{
		ID:          fmt.Sprintf("taskver-%s-%d", taskID, version),
		TaskID:      taskID,
		Version:     version,
		Title:       title,
		Description: description,
		Status:      status,
		Changelog:   changelog,
		CreatedAt:   time.Now(),
	}
	r.versions[taskID] = append(r.versions[taskID], v)
	return &v, nil
}

func (r *fakeTaskRepo) ListVersions(ctx context.Context, taskID string) ([]models.TaskVersion, error) {
	out := append([]models.TaskVersion{}, r.versions[taskID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (r *fakeTaskRepo) LatestVersionNumber(ctx context.Context, taskID string) (int, error) {
	latest := 0
	for _, v := range r.versions[taskID] {
		if v.Version > latest {
			latest = v.Version
		}
	}
	return latest, nil
}

// ---------------------------------------------------------------------------
// scripted AI fakes

type fakeAnalyzer struct {
	analysis *models.IdeaAnalysis
	err      error
	calls    int
}

func (f *fakeAnalyzer) AnalyzeIdea(ctx context.Context, ideaText string) (*models.IdeaAnalysis, error) {
	f.calls++
	return f.analysis, f.err
}

type fakeDocGenerator struct {
	prd, brd *ai.GeneratedDocument
	err      error
}

func (f *fakeDocGenerator) GeneratePRD(ctx context.Context, ideaText string, analysis *models.IdeaAnalysis) (*ai.GeneratedDocument, error) {
	return f.prd, f.err
}

func (f *fakeDocGenerator) GenerateBRD(ctx context.Context, ideaText string, analysis *models.IdeaAnalysis) (*ai.GeneratedDocument, error) {
	return f.brd, f.err
}

type fakeDiagramGenerator struct {
	diagrams map[models.DiagramType]*ai.GeneratedDiagram
	errs     map[models.DiagramType]error
}

func (f *fakeDiagramGenerator) GenerateDiagram(ctx context.Context, diagramType models.DiagramType, ideaText string) (*ai.GeneratedDiagram, error) {
	if err, ok := f.errs[diagramType]; ok {
		return nil, err
	}
	if d, ok := f.diagrams[diagramType]; ok {
		return d, nil
	}
	return &ai.GeneratedDiagram{Title: string(diagramType), MermaidCode: "graph TD"}, nil
}

type fakeExtractor struct {
	items []ai.FeatureItem
	err   error
}

func (f *fakeExtractor) ExtractFeatures(ctx context.Context, documentsContent string) ([]ai.FeatureItem, error) {
	return f.items, f.err
}

type fakeSuggester struct {
	items []ai.TaskItem
	err   error
}

func (f *fakeSuggester) SuggestTasks(ctx context.Context, featureTitle, featureDescription string) ([]ai.TaskItem, error) {
	return f.items, f.err
}
