package handler

import (
	"log/slog"
	"net/http"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/httputil"
)

// DiagramHandler handles Mermaid diagram HTTP requests
type DiagramHandler struct {
	diagramService services.DiagramService
	logger         *slog.Logger
}

// NewDiagramHandler creates a new diagram handler
func NewDiagramHandler(diagramService services.DiagramService, logger *slog.Logger) *DiagramHandler {
	return &DiagramHandler{
		diagramService: diagramService,
		logger:         logger,
	}
}

type generateDiagramsRequest struct {
	Types []models.DiagramType `json:"types,omitempty"`
}

// GenerateDiagrams generates diagrams for a confirmed idea. An empty or
// absent body falls back to the default diagram types.
// POST /api/diagrams/generate/{ideaId}
func (h *DiagramHandler) GenerateDiagrams(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := PathParam(w, r, "ideaId", "Idea ID")
	if !ok {
		return
	}

	var req generateDiagramsRequest
	if r.ContentLength > 0 {
		if err := httputil.ParseJSON(w, r, &req); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	diagrams, err := h.diagramService.GenerateDiagrams(r.Context(), ideaID, req.Types)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, diagrams)
}

// ListDiagramsByIdea retrieves all diagrams for an idea
// GET /api/diagrams/idea/{ideaId}
func (h *DiagramHandler) ListDiagramsByIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := PathParam(w, r, "ideaId", "Idea ID")
	if !ok {
		return
	}

	diagrams, err := h.diagramService.ListDiagramsByIdea(r.Context(), ideaID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, diagrams)
}

// GetDiagram retrieves a diagram by ID
// GET /api/diagrams/{id}
func (h *DiagramHandler) GetDiagram(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Diagram ID")
	if !ok {
		return
	}

	diagram, err := h.diagramService.GetDiagram(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, diagram)
}

// GetDiagramWithVersions retrieves a diagram with its version history
// GET /api/diagrams/{id}/full
func (h *DiagramHandler) GetDiagramWithVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Diagram ID")
	if !ok {
		return
	}

	diagram, err := h.diagramService.GetDiagramWithVersions(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, diagram)
}

// UpdateDiagram updates a diagram's title, code, or status
// PUT /api/diagrams/{id}
func (h *DiagramHandler) UpdateDiagram(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Diagram ID")
	if !ok {
		return
	}

	var req services.UpdateDiagramRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	diagram, err := h.diagramService.UpdateDiagram(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, diagram)
}

// GetVersionHistory retrieves a diagram's versions, newest first
// GET /api/diagrams/{id}/versions
func (h *DiagramHandler) GetVersionHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Diagram ID")
	if !ok {
		return
	}

	versions, err := h.diagramService.GetVersionHistory(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// RegenerateDiagram snapshots the current code and regenerates
// POST /api/diagrams/{id}/regenerate
func (h *DiagramHandler) RegenerateDiagram(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Diagram ID")
	if !ok {
		return
	}

	diagram, err := h.diagramService.RegenerateDiagram(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, diagram)
}
