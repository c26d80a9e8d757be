package models

import (
	"time"
)

// DiagramType selects the Mermaid diagram flavor to generate.
type DiagramType string

const (
	DiagramTypeERD       DiagramType = "ERD"
	DiagramTypeSequence  DiagramType = "SEQUENCE"
	DiagramTypeSchema    DiagramType = "SCHEMA"
	DiagramTypeFlowchart DiagramType = "FLOWCHART"
)

// DefaultDiagramTypes are the types generated for a freshly confirmed idea.
// FLOWCHART is supported but only produced on explicit request.
var DefaultDiagramTypes = []DiagramType{
	DiagramTypeERD,
	DiagramTypeSequence,
	DiagramTypeSchema,
}

// Valid reports whether t is a known diagram type.
func (t DiagramType) Valid() bool {
	switch t {
	case DiagramTypeERD, DiagramTypeSequence, DiagramTypeSchema, DiagramTypeFlowchart:
		return true
	}
	return false
}

type DiagramStatus string

const (
	DiagramStatusDraft     DiagramStatus = "draft"
	DiagramStatusPublished DiagramStatus = "published"
)

type Diagram struct {
	ID          string        `json:"id"`
	IdeaID      string        `json:"ideaId"`
	Type        DiagramType   `json:"type"`
	Title       string        `json:"title"`
	MermaidCode string        `json:"mermaidCode"`
	Status      DiagramStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// DiagramVersion snapshots the mermaid code a diagram held before an edit
// or regeneration. Same append-only numbering rule as document versions.
type DiagramVersion struct {
	ID          string    `json:"id"`
	DiagramID   string    `json:"diagramId"`
	Version     int       `json:"version"`
	MermaidCode string    `json:"mermaidCode"`
	Changelog   *string   `json:"changelog"`
	CreatedAt   time.Time `json:"createdAt"`
}

type DiagramWithVersions struct {
	Diagram
	Versions []DiagramVersion `json:"versions"`
}
