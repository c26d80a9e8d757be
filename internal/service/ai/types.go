package ai

import (
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// GeneratedDocument is the parsed result of a PRD/BRD generation call.
type GeneratedDocument struct {
	Title   string `json:"title"`
	Content string `json:"content"` // HTML
}

// GeneratedDiagram is the parsed result of a diagram generation call.
type GeneratedDiagram struct {
	Title       string `json:"title"`
	MermaidCode string `json:"mermaidCode"`
}

// FeatureItem is one feature extracted from the requirement documents.
type FeatureItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskItem is one task suggested for a feature. Priority and effort are
// optional; the caller applies defaults.
type TaskItem struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Priority        models.Priority `json:"priority,omitempty"`
	EstimatedEffort string          `json:"estimatedEffort,omitempty"`
}
