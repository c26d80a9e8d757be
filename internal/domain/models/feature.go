package models

import (
	"time"
)

// FeatureSource records how a feature entered the system.
type FeatureSource string

const (
	FeatureSourceAuto        FeatureSource = "auto"
	FeatureSourceManual      FeatureSource = "manual"
	FeatureSourceAISuggested FeatureSource = "ai_suggested"
)

type FeatureStatus string

const (
	FeatureStatusActive   FeatureStatus = "active"
	FeatureStatusArchived FeatureStatus = "archived"
)

// Priority is shared by features and tasks.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is a known priority level.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type Feature struct {
	ID          string        `json:"id"`
	IdeaID      string        `json:"ideaId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Source      FeatureSource `json:"source"`
	Status      FeatureStatus `json:"status"`
	Priority    Priority      `json:"priority"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// FeatureVersion snapshots title and description whenever either is edited.
type FeatureVersion struct {
	ID          string    `json:"id"`
	FeatureID   string    `json:"featureId"`
	Version     int       `json:"version"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Changelog   *string   `json:"changelog"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FeatureWithRelations bundles a feature with its tasks (ordered) and
// linked diagrams.
type FeatureWithRelations struct {
	Feature
	Tasks    []Task    `json:"tasks"`
	Diagrams []Diagram `json:"diagrams"`
}
