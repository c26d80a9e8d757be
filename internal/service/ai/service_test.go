package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// fakeGateway returns its scripted responses in order, repeating the last
// one once exhausted.
type fakeGateway struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeGateway) Complete(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	if f.errs != nil && f.errs[i] != nil {
		return "", f.errs[i]
	}
	return f.responses[i], nil
}

func newTestService(gw Gateway) (*Service, *[]time.Duration) {
	s := NewService(gw, slog.New(slog.NewTextHandler(io.Discard, nil)))
	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }
	return s, &slept
}

const validAnalysis = `{
	"missingDetails": ["a"],
	"complementarySuggestions": ["b"],
	"constraintsAndRisks": ["c"],
	"clarifyingQuestions": ["d"]
}`

func TestAnalyzeIdeaFirstAttemptSucceeds(t *testing.T) {
	gw := &fakeGateway{responses: []string{validAnalysis}}
	svc, slept := newTestService(gw)

	got, err := svc.AnalyzeIdea(context.Background(), "a todo app")
	if err != nil {
		t.Fatalf("AnalyzeIdea() error = %v", err)
	}
	if got.MissingDetails[0] != "a" {
		t.Errorf("MissingDetails = %v", got.MissingDetails)
	}
	if gw.calls != 1 {
		t.Errorf("calls = %d, want 1", gw.calls)
	}
	if len(*slept) != 0 {
		t.Errorf("slept %v, want no sleeps", *slept)
	}
}

func TestAnalyzeIdeaRetriesOnBadShape(t *testing.T) {
	gw := &fakeGateway{responses: []string{"not json", validAnalysis}}
	svc, slept := newTestService(gw)

	got, err := svc.AnalyzeIdea(context.Background(), "a todo app")
	if err != nil {
		t.Fatalf("AnalyzeIdea() error = %v", err)
	}
	if got.ClarifyingQuestions[0] != "d" {
		t.Errorf("ClarifyingQuestions = %v", got.ClarifyingQuestions)
	}
	if gw.calls != 2 {
		t.Errorf("calls = %d, want 2", gw.calls)
	}
	// shape mismatches retry without delay
	if len(*slept) != 0 {
		t.Errorf("slept %v, want no sleeps", *slept)
	}
}

func TestAnalyzeIdeaFallsBackAfterExhaustion(t *testing.T) {
	gw := &fakeGateway{responses: []string{"garbage", "also garbage"}}
	svc, _ := newTestService(gw)

	got, err := svc.AnalyzeIdea(context.Background(), "a todo app")
	if err != nil {
		t.Fatalf("AnalyzeIdea() error = %v", err)
	}
	if got.MissingDetails[0] != "Unable to analyze - AI service returned an unexpected response format" {
		t.Errorf("unexpected fallback: %v", got.MissingDetails)
	}
	if gw.calls != maxAttempts {
		t.Errorf("calls = %d, want %d", gw.calls, maxAttempts)
	}
}

func TestAnalyzeIdeaUnavailableAfterTransportErrors(t *testing.T) {
	gw := &fakeGateway{
		responses: []string{"", ""},
		errs:      []error{errors.New("connection refused"), errors.New("connection refused")},
	}
	svc, slept := newTestService(gw)

	_, err := svc.AnalyzeIdea(context.Background(), "a todo app")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	// one sleep between the two attempts, none after the last
	if len(*slept) != 1 || (*slept)[0] != retryDelay {
		t.Errorf("slept %v, want one %v sleep", *slept, retryDelay)
	}
}

func TestAnalyzeIdeaMixedErrorThenBadShapeIsUnavailable(t *testing.T) {
	gw := &fakeGateway{
		responses: []string{"", "garbage"},
		errs:      []error{errors.New("timeout"), nil},
	}
	svc, _ := newTestService(gw)

	_, err := svc.AnalyzeIdea(context.Background(), "a todo app")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestGeneratePRDFallbackEmbedsIdeaText(t *testing.T) {
	gw := &fakeGateway{responses: []string{"nope", "nope"}}
	svc, _ := newTestService(gw)

	doc, err := svc.GeneratePRD(context.Background(), "an expense tracker", nil)
	if err != nil {
		t.Fatalf("GeneratePRD() error = %v", err)
	}
	if doc.Title != "PRD: Product Requirements Document" {
		t.Errorf("Title = %q", doc.Title)
	}
	if want := "an expense tracker"; !strings.Contains(doc.Content, want) {
		t.Errorf("Content missing idea text %q", want)
	}
}

func TestGenerateDiagramSucceeds(t *testing.T) {
	gw := &fakeGateway{responses: []string{`{"title": "ERD", "mermaidCode": "erDiagram"}`}}
	svc, _ := newTestService(gw)

	d, err := svc.GenerateDiagram(context.Background(), models.DiagramTypeERD, "a todo app")
	if err != nil {
		t.Fatalf("GenerateDiagram() error = %v", err)
	}
	if d.MermaidCode != "erDiagram" {
		t.Errorf("MermaidCode = %q", d.MermaidCode)
	}
}

func TestGenerateDiagramFallbackNamesType(t *testing.T) {
	gw := &fakeGateway{responses: []string{"x", "x"}}
	svc, _ := newTestService(gw)

	d, err := svc.GenerateDiagram(context.Background(), models.DiagramTypeSequence, "a todo app")
	if err != nil {
		t.Fatalf("GenerateDiagram() error = %v", err)
	}
	if !strings.Contains(d.Title, string(models.DiagramTypeSequence)) {
		t.Errorf("Title = %q, want it to contain the diagram type", d.Title)
	}
}

func TestExtractFeaturesSingleCall(t *testing.T) {
	gw := &fakeGateway{responses: []string{`[{"title": "Auth", "description": "Login flows."}]`}}
	svc, _ := newTestService(gw)

	items, err := svc.ExtractFeatures(context.Background(), "<h2>PRD</h2>")
	if err != nil {
		t.Fatalf("ExtractFeatures() error = %v", err)
	}
	if len(items) != 1 || items[0].Title != "Auth" {
		t.Fatalf("items = %+v", items)
	}
	if gw.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry for list generations)", gw.calls)
	}
}

func TestExtractFeaturesTransportErrorIsUnavailable(t *testing.T) {
	gw := &fakeGateway{responses: []string{""}, errs: []error{errors.New("boom")}}
	svc, _ := newTestService(gw)

	_, err := svc.ExtractFeatures(context.Background(), "<h2>PRD</h2>")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestSuggestTasksBestEffort(t *testing.T) {
	gw := &fakeGateway{responses: []string{"completely malformed"}}
	svc, _ := newTestService(gw)

	items, err := svc.SuggestTasks(context.Background(), "Auth", "Login flows.")
	if err != nil {
		t.Fatalf("SuggestTasks() error = %v", err)
	}
	if len(items) != 1 || items[0].Title != "Generated Task" {
		t.Fatalf("items = %+v", items)
	}
}
