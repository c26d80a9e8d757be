package models

import (
	"time"
)

// IdeaStatus is the lifecycle state of an idea.
// confirmed is terminal: a confirmed idea can never go back to draft.
type IdeaStatus string

const (
	IdeaStatusDraft     IdeaStatus = "draft"
	IdeaStatusConfirmed IdeaStatus = "confirmed"
)

// IdeaAnalysis is the structured AI feedback attached to an idea after analysis.
// All four lists must be present for the analysis to be considered valid.
type IdeaAnalysis struct {
	MissingDetails           []string `json:"missingDetails"`
	ComplementarySuggestions []string `json:"complementarySuggestions"`
	ConstraintsAndRisks      []string `json:"constraintsAndRisks"`
	ClarifyingQuestions      []string `json:"clarifyingQuestions"`
}

// QuestionAnswer pairs one of the clarifying questions with the user's answer.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Idea struct {
	ID             string        `json:"id"`
	UserID         *string       `json:"user_id,omitempty"`
	RawText        string        `json:"rawText"`
	RefinedText    *string       `json:"refinedText"`
	Status         IdeaStatus    `json:"status"`
	AnalysisResult *IdeaAnalysis `json:"analysisResult"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// Text returns the text generation should work from: the refined text when
// present, the raw submission otherwise.
func (i *Idea) Text() string {
	if i.RefinedText != nil && *i.RefinedText != "" {
		return *i.RefinedText
	}
	return i.RawText
}
