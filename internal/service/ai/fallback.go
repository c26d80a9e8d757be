package ai

import (
	"fmt"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// Static fallbacks used when every attempt returned an unparseable response.
// They keep the workflow moving with obviously-generic content the user can
// edit or regenerate later.

func fallbackAnalysis() *models.IdeaAnalysis {
	return &models.IdeaAnalysis{
		MissingDetails: []string{
			"Unable to analyze - AI service returned an unexpected response format",
		},
		ComplementarySuggestions: []string{
			"Please try analyzing again",
		},
		ConstraintsAndRisks: []string{
			"Analysis incomplete",
		},
		ClarifyingQuestions: []string{
			"Could you provide more details about your idea?",
		},
	}
}

func fallbackPRD(ideaText string) *GeneratedDocument {
	return &GeneratedDocument{
		Title: "PRD: Product Requirements Document",
		Content: fmt.Sprintf(`<h2>1. Product Overview</h2>
<p>%s</p>
<h2>2. Objectives</h2>
<p>Document generation encountered an issue. Please regenerate this document or edit it manually.</p>
<h2>3. Functional Requirements</h2>
<p>To be defined.</p>`, ideaText),
	}
}

func fallbackBRD() *GeneratedDocument {
	return &GeneratedDocument{
		Title: "BRD: Business Requirements Document",
		Content: `<h2>1. Executive Summary</h2>
<p>Document generation encountered an issue. Please regenerate this document or edit it manually.</p>
<h2>2. Business Objectives</h2>
<p>To be defined.</p>`,
	}
}

func fallbackDiagram(diagramType models.DiagramType) *GeneratedDiagram {
	return &GeneratedDiagram{
		Title: fmt.Sprintf("%s Diagram (Generation Failed)", diagramType),
		MermaidCode: `graph TD
    A[Generation Failed] --> B[Please Regenerate]`,
	}
}
