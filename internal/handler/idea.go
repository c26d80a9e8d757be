package handler

import (
	"log/slog"
	"net/http"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/httputil"
)

// IdeaHandler handles idea HTTP requests
// Handlers only communicate with services, never repositories
type IdeaHandler struct {
	ideaService services.IdeaService
	logger      *slog.Logger
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(ideaService services.IdeaService, logger *slog.Logger) *IdeaHandler {
	return &IdeaHandler{
		ideaService: ideaService,
		logger:      logger,
	}
}

// CreateIdea submits a new idea
// POST /api/ideas
func (h *IdeaHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	var req services.CreateIdeaRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	idea, err := h.ideaService.CreateIdea(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, idea)
}

// ListIdeas retrieves all ideas, newest first
// GET /api/ideas
func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.ideaService.ListIdeas(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ideas)
}

// GetIdea retrieves a single idea by ID
// GET /api/ideas/{id}
func (h *IdeaHandler) GetIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Idea ID")
	if !ok {
		return
	}

	idea, err := h.ideaService.GetIdea(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, idea)
}

// AnalyzeIdea runs AI analysis on an idea
// POST /api/ideas/{id}/analyze
func (h *IdeaHandler) AnalyzeIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Idea ID")
	if !ok {
		return
	}

	idea, err := h.ideaService.AnalyzeIdea(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, idea)
}

// RefineIdea updates the refined text of a draft idea
// POST /api/ideas/{id}/refine
func (h *IdeaHandler) RefineIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Idea ID")
	if !ok {
		return
	}

	var req services.RefineIdeaRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	idea, err := h.ideaService.RefineIdea(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, idea)
}

// ConfirmIdea transitions an analyzed idea to confirmed
// POST /api/ideas/{id}/confirm
func (h *IdeaHandler) ConfirmIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Idea ID")
	if !ok {
		return
	}

	idea, err := h.ideaService.ConfirmIdea(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, idea)
}

// DeleteIdea removes an idea and everything derived from it
// DELETE /api/ideas/{id}
func (h *IdeaHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Idea ID")
	if !ok {
		return
	}

	if err := h.ideaService.DeleteIdea(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Idea deleted")
}
