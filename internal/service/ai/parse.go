package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// Models frequently wrap JSON in markdown fences despite instructions; strip
// the fence before parsing when present.
var fenceRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

func stripFences(raw string) string {
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// ParseAnalysis parses a model response into an idea analysis. Returns false
// when the response is not JSON or any of the four arrays is missing or has
// a non-string element.
func ParseAnalysis(raw string) (*models.IdeaAnalysis, bool) {
	var parsed struct {
		MissingDetails           []any `json:"missingDetails"`
		ComplementarySuggestions []any `json:"complementarySuggestions"`
		ConstraintsAndRisks      []any `json:"constraintsAndRisks"`
		ClarifyingQuestions      []any `json:"clarifyingQuestions"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, false
	}

	fields := [][]any{
		parsed.MissingDetails,
		parsed.ComplementarySuggestions,
		parsed.ConstraintsAndRisks,
		parsed.ClarifyingQuestions,
	}
	out := make([][]string, len(fields))
	for i, field := range fields {
		if field == nil {
			return nil, false
		}
		strs, ok := toStringSlice(field)
		if !ok {
			return nil, false
		}
		out[i] = strs
	}

	return &models.IdeaAnalysis{
		MissingDetails:           out[0],
		ComplementarySuggestions: out[1],
		ConstraintsAndRisks:      out[2],
		ClarifyingQuestions:      out[3],
	}, true
}

func toStringSlice(items []any) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// ParseDocument parses a {title, content} response. Both fields must be
// non-empty strings.
func ParseDocument(raw string) (*GeneratedDocument, bool) {
	var parsed GeneratedDocument
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, false
	}
	if parsed.Title == "" || parsed.Content == "" {
		return nil, false
	}
	return &parsed, true
}

// ParseDiagram parses a {title, mermaidCode} response. Both fields must be
// non-empty strings.
func ParseDiagram(raw string) (*GeneratedDiagram, bool) {
	var parsed GeneratedDiagram
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, false
	}
	if parsed.Title == "" || parsed.MermaidCode == "" {
		return nil, false
	}
	return &parsed, true
}

const rawPreviewLimit = 500

// ParseFeatureItems extracts feature items from a model response on a
// best-effort basis. Malformed items get placeholder fields rather than
// failing the whole batch; a response with no recoverable array yields a
// single item carrying a preview of the raw output so the caller always has
// something to persist.
func ParseFeatureItems(raw string) []FeatureItem {
	items := extractArray(raw)
	if items == nil {
		return []FeatureItem{{
			Title:       "Extracted Feature",
			Description: preview(raw),
		}}
	}

	out := make([]FeatureItem, 0, len(items))
	for _, item := range items {
		title := item.Get("title").String()
		if title == "" {
			title = "Untitled Feature"
		}
		desc := item.Get("description").String()
		if desc == "" {
			desc = "No description provided"
		}
		out = append(out, FeatureItem{Title: title, Description: desc})
	}
	return out
}

// ParseTaskItems extracts task items from a model response on a best-effort
// basis, defaulting the priority to medium when missing or unrecognized.
func ParseTaskItems(raw string) []TaskItem {
	items := extractArray(raw)
	if items == nil {
		return []TaskItem{{
			Title:       "Generated Task",
			Description: preview(raw),
			Priority:    models.PriorityMedium,
		}}
	}

	out := make([]TaskItem, 0, len(items))
	for _, item := range items {
		title := item.Get("title").String()
		if title == "" {
			title = "Untitled Task"
		}
		desc := item.Get("description").String()
		if desc == "" {
			desc = "No description provided"
		}
		priority := models.Priority(item.Get("priority").String())
		if !priority.Valid() {
			priority = models.PriorityMedium
		}
		out = append(out, TaskItem{
			Title:           title,
			Description:     desc,
			Priority:        priority,
			EstimatedEffort: item.Get("estimatedEffort").String(),
		})
	}
	return out
}

// extractArray pulls the outermost JSON array out of a response, tolerating
// leading and trailing prose around it. Returns nil when no valid array can
// be recovered.
func extractArray(raw string) []gjson.Result {
	cleaned := stripFences(raw)
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil
	}
	candidate := cleaned[start : end+1]
	if !gjson.Valid(candidate) {
		return nil
	}
	parsed := gjson.Parse(candidate)
	if !parsed.IsArray() {
		return nil
	}
	return parsed.Array()
}

func preview(raw string) string {
	if len(raw) > rawPreviewLimit {
		return raw[:rawPreviewLimit]
	}
	return raw
}
