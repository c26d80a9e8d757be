package models

import (
	"time"
)

// DocumentType distinguishes the two generated requirement documents.
type DocumentType string

const (
	DocumentTypePRD DocumentType = "PRD"
	DocumentTypeBRD DocumentType = "BRD"
)

// DocumentStatus is the publication state of a document.
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusPublished DocumentStatus = "published"
)

type Document struct {
	ID        string         `json:"id"`
	IdeaID    string         `json:"ideaId"`
	Type      DocumentType   `json:"type"`
	Title     string         `json:"title"`
	Content   string         `json:"content"` // HTML from generation / rich-text editor
	Status    DocumentStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// DocumentVersion is an immutable snapshot of a document's content.
// Version numbers start at 1 and strictly increase per document; history
// is append-only, reverts add new rows rather than rewriting old ones.
type DocumentVersion struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Version    int       `json:"version"`
	Content    string    `json:"content"`
	Changelog  *string   `json:"changelog"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DocumentWithVersions bundles a document with its full version history,
// newest version first.
type DocumentWithVersions struct {
	Document
	Versions []DocumentVersion `json:"versions"`
}

// DocumentExport carries content prepared for download by the client.
type DocumentExport struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
}
