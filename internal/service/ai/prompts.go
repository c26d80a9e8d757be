package ai

import (
	"encoding/json"
	"strings"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
)

// Prompt templates for every generation operation. Each instructs the model
// to answer with bare JSON; the parsers still tolerate fenced output.

const analyzeIdeaPrompt = `You are an expert software architect and product analyst. Your task is to analyze a software idea and provide structured feedback.

**Instructions:**
1. Carefully analyze the provided software idea
2. Identify any missing details that would be needed for implementation
3. Suggest complementary features that could enhance the product
4. Identify potential constraints, risks, or challenges
5. Generate clarifying questions to better understand the requirements

**Output Format:**
You MUST respond with ONLY a valid JSON object in the following format. Do not include any text before or after the JSON.

{
  "missingDetails": [
    "List of missing details that should be specified"
  ],
  "complementarySuggestions": [
    "List of complementary features or improvements"
  ],
  "constraintsAndRisks": [
    "List of potential constraints, risks, or challenges"
  ],
  "clarifyingQuestions": [
    "List of questions to clarify requirements"
  ]
}

**Rules:**
- Output ONLY valid JSON, no markdown code blocks
- Each array should contain 2-5 items
- Be specific and actionable in your suggestions
- Focus on practical implementation concerns
- Do not make assumptions - ask questions instead
- Consider scalability, security, and user experience

**Software Idea to Analyze:**
{{IDEA_TEXT}}`

const generatePRDPrompt = `You are an expert software product manager. Your task is to generate a comprehensive Product Requirements Document (PRD) from the provided software idea and analysis.

**Instructions:**
1. Create a well-structured PRD with clear sections
2. Use the idea text and AI analysis to inform your requirements
3. Be specific and actionable in your requirements
4. Include acceptance criteria for each feature
5. Format the output as HTML content (using appropriate tags like <h2>, <h3>, <p>, <ul>, <li>, etc.)

**Output Format:**
You MUST respond with ONLY a valid JSON object in the following format. Do not include any text before or after the JSON.

{
  "title": "PRD: [Product Name]",
  "content": "<h2>1. Product Overview</h2><p>...</p><h2>2. Objectives</h2>..."
}

**Required Sections in the content:**
1. **Product Overview** - Brief description of the product and its purpose
2. **Objectives** - Key goals the product aims to achieve
3. **Target Users** - Who will use this product
4. **Functional Requirements** - Core features with descriptions and acceptance criteria
5. **Non-Functional Requirements** - Performance, security, scalability requirements
6. **User Stories** - Key user stories in "As a [user], I want [goal], so that [benefit]" format
7. **Assumptions & Dependencies** - Key assumptions and external dependencies
8. **Success Metrics** - How to measure product success

**Rules:**
- Output ONLY valid JSON
- Content must be valid HTML
- Be comprehensive but concise
- Focus on what the product should do, not how to build it
- Make requirements measurable where possible

**Software Idea:**
{{IDEA_TEXT}}

**AI Analysis (if available):**
{{ANALYSIS_RESULT}}`

const generateBRDPrompt = `You are an expert business analyst. Your task is to generate a comprehensive Business Requirements Document (BRD) from the provided software idea and analysis.

**Instructions:**
1. Create a well-structured BRD focused on business needs
2. Use the idea text and AI analysis to inform your requirements
3. Focus on business value, stakeholders, and strategic alignment
4. Format the output as HTML content (using appropriate tags like <h2>, <h3>, <p>, <ul>, <li>, etc.)

**Output Format:**
You MUST respond with ONLY a valid JSON object in the following format. Do not include any text before or after the JSON.

{
  "title": "BRD: [Product Name]",
  "content": "<h2>1. Executive Summary</h2><p>...</p><h2>2. Business Objectives</h2>..."
}

**Required Sections in the content:**
1. **Executive Summary** - High-level overview of the business need
2. **Business Objectives** - Specific business goals and outcomes
3. **Stakeholders** - Key stakeholders and their roles/interests
4. **Current State** - Description of the current situation/problem
5. **Desired State** - Vision of the future with the solution
6. **Business Requirements** - Detailed business needs and constraints
7. **Constraints & Assumptions** - Business constraints and key assumptions
8. **Risk Assessment** - Potential business risks and mitigation strategies
9. **Budget & Timeline** - Estimated resources and timeline considerations
10. **Success Criteria** - How business success will be measured

**Rules:**
- Output ONLY valid JSON
- Content must be valid HTML
- Focus on business value, not technical implementation
- Align requirements with business strategy
- Include measurable success criteria

**Software Idea:**
{{IDEA_TEXT}}

**AI Analysis (if available):**
{{ANALYSIS_RESULT}}`

const erdPrompt = `You are an expert database architect. Generate an Entity-Relationship Diagram (ERD) in Mermaid syntax based on the software idea provided.

**Instructions:**
1. Identify the main entities/tables needed
2. Define relationships between entities (one-to-one, one-to-many, many-to-many)
3. Include key attributes for each entity
4. Use proper Mermaid erDiagram syntax

**Output Format:**
Return ONLY a valid JSON object with no additional text:
{
  "title": "Brief title for the ERD diagram",
  "mermaidCode": "erDiagram\n    ENTITY1 {\n        string id PK\n        ...\n    }\n    ENTITY2 {\n        ...\n    }\n    ENTITY1 ||--o{ ENTITY2 : has"
}

**Rules:**
- Output ONLY valid JSON, no markdown code blocks
- Use proper Mermaid erDiagram syntax
- Include PK (primary key) and FK (foreign key) annotations
- Keep it focused on core entities (5-10 entities max)

**Software Idea:**
{{IDEA_TEXT}}`

const sequencePrompt = `You are an expert software architect. Generate a Sequence Diagram in Mermaid syntax that shows the main user flow for the software idea.

**Instructions:**
1. Identify the main actors and systems
2. Show the primary user interaction flow
3. Include API calls and responses where relevant
4. Keep the sequence focused and readable

**Output Format:**
Return ONLY a valid JSON object with no additional text:
{
  "title": "Brief title for the Sequence diagram",
  "mermaidCode": "sequenceDiagram\n    participant User\n    participant Frontend\n    participant Backend\n    participant Database\n    User->>Frontend: Action\n    ..."
}

**Rules:**
- Output ONLY valid JSON, no markdown code blocks
- Use proper Mermaid sequenceDiagram syntax
- Include 5-15 steps maximum
- Show error handling where important

**Software Idea:**
{{IDEA_TEXT}}`

const schemaPrompt = `You are an expert systems architect. Generate a high-level Architecture/Schema Diagram in Mermaid syntax showing the system components and their connections.

**Instructions:**
1. Identify main system components (frontend, backend, services, databases)
2. Show data flow between components
3. Include external services/APIs if relevant
4. Use a flowchart or graph format

**Output Format:**
Return ONLY a valid JSON object with no additional text:
{
  "title": "Brief title for the Architecture diagram",
  "mermaidCode": "graph TB\n    subgraph Frontend\n        A[Web App]\n    end\n    subgraph Backend\n        B[API Server]\n    end\n    A --> B"
}

**Rules:**
- Output ONLY valid JSON, no markdown code blocks
- Use Mermaid graph or flowchart syntax
- Group related components with subgraphs
- Keep it high-level and readable

**Software Idea:**
{{IDEA_TEXT}}`

const flowchartPrompt = `You are an expert process designer. Generate a Flowchart in Mermaid syntax showing the main business process or user workflow.

**Instructions:**
1. Identify the start and end points
2. Map out decision points and branching logic
3. Show the main steps in the process
4. Include error/alternative paths where relevant

**Output Format:**
Return ONLY a valid JSON object with no additional text:
{
  "title": "Brief title for the Flowchart",
  "mermaidCode": "flowchart TD\n    A[Start] --> B{Decision}\n    B -->|Yes| C[Action]\n    B -->|No| D[Other Action]\n    C --> E[End]\n    D --> E"
}

**Rules:**
- Output ONLY valid JSON, no markdown code blocks
- Use proper Mermaid flowchart syntax
- Use proper shapes: [] for process, {} for decision, () for start/end
- Keep it focused on the main flow (10-20 nodes max)

**Software Idea:**
{{IDEA_TEXT}}`

const extractFeaturesPrompt = `You are an expert software architect and project planner. Your task is to analyze software requirements documents (PRD/BRD) and extract the main features that need to be implemented.

**Instructions:**
1. Carefully analyze the provided documents
2. Identify distinct, implementable features
3. Each feature should represent a logical grouping of functionality
4. Provide a clear title and detailed description for each feature
5. Focus on extracting USER-FACING features and core system capabilities

**Output Format:**
You MUST respond with ONLY a valid JSON array in the following format. Do not include any text before or after the JSON.

[
  {
    "title": "Feature Title",
    "description": "Detailed description of what this feature should do, including key functionality and user interactions"
  }
]

**Rules:**
- Output ONLY valid JSON array, no markdown code blocks
- Extract 3-8 features depending on project complexity
- Each feature should be distinct and not overlap with others
- Descriptions should be comprehensive but concise (2-4 sentences)
- Focus on features that can be developed independently

**Requirements Documents:**
{{DOCUMENTS_CONTENT}}`

const generateTasksPrompt = `You are an expert software engineer and project manager. Your task is to break down a software feature into specific, actionable development tasks.

**Instructions:**
1. Analyze the provided feature description
2. Break it down into granular, implementable tasks
3. Each task should be completable by a single developer
4. Consider frontend, backend, database, and testing aspects
5. Order tasks logically based on dependencies

**Output Format:**
You MUST respond with ONLY a valid JSON array in the following format. Do not include any text before or after the JSON.

[
  {
    "title": "Task Title",
    "description": "Detailed description of what needs to be implemented",
    "priority": "low|medium|high|critical",
    "estimatedEffort": "2h|4h|1d|2d|1w"
  }
]

**Rules:**
- Output ONLY valid JSON array, no markdown code blocks
- Generate 4-10 tasks per feature
- Each task should be specific and actionable
- Include tasks for database schema, API endpoints, business logic, and UI components
- Priority should reflect importance and blocking nature
- Estimated effort should be realistic for one developer

**Feature to Break Down:**
Title: {{FEATURE_TITLE}}

Description: {{FEATURE_DESCRIPTION}}`

var diagramPrompts = map[models.DiagramType]string{
	models.DiagramTypeERD:       erdPrompt,
	models.DiagramTypeSequence:  sequencePrompt,
	models.DiagramTypeSchema:    schemaPrompt,
	models.DiagramTypeFlowchart: flowchartPrompt,
}

// BuildAnalyzeIdeaPrompt fills the idea analysis template.
func BuildAnalyzeIdeaPrompt(ideaText string) string {
	return strings.ReplaceAll(analyzeIdeaPrompt, "{{IDEA_TEXT}}", ideaText)
}

// BuildGeneratePRDPrompt fills the PRD template with the idea text and the
// JSON-rendered analysis (or a placeholder when no analysis exists).
func BuildGeneratePRDPrompt(ideaText string, analysis *models.IdeaAnalysis) string {
	return buildDocumentPrompt(generatePRDPrompt, ideaText, analysis)
}

// BuildGenerateBRDPrompt fills the BRD template.
func BuildGenerateBRDPrompt(ideaText string, analysis *models.IdeaAnalysis) string {
	return buildDocumentPrompt(generateBRDPrompt, ideaText, analysis)
}

func buildDocumentPrompt(template, ideaText string, analysis *models.IdeaAnalysis) string {
	analysisStr := "No analysis available"
	if analysis != nil {
		if b, err := json.MarshalIndent(analysis, "", "  "); err == nil {
			analysisStr = string(b)
		}
	}
	prompt := strings.ReplaceAll(template, "{{IDEA_TEXT}}", ideaText)
	return strings.ReplaceAll(prompt, "{{ANALYSIS_RESULT}}", analysisStr)
}

// BuildDiagramPrompt fills the template for the given diagram type.
func BuildDiagramPrompt(diagramType models.DiagramType, ideaText string) string {
	return strings.ReplaceAll(diagramPrompts[diagramType], "{{IDEA_TEXT}}", ideaText)
}

// BuildExtractFeaturesPrompt fills the feature extraction template with the
// combined PRD/BRD content.
func BuildExtractFeaturesPrompt(documentsContent string) string {
	return strings.ReplaceAll(extractFeaturesPrompt, "{{DOCUMENTS_CONTENT}}", documentsContent)
}

// BuildGenerateTasksPrompt fills the task suggestion template.
func BuildGenerateTasksPrompt(featureTitle, featureDescription string) string {
	prompt := strings.ReplaceAll(generateTasksPrompt, "{{FEATURE_TITLE}}", featureTitle)
	return strings.ReplaceAll(prompt, "{{FEATURE_DESCRIPTION}}", featureDescription)
}
