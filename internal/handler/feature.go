package handler

import (
	"log/slog"
	"net/http"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/httputil"
)

// FeatureHandler handles feature HTTP requests
type FeatureHandler struct {
	featureService services.FeatureService
	logger         *slog.Logger
}

// NewFeatureHandler creates a new feature handler
func NewFeatureHandler(featureService services.FeatureService, logger *slog.Logger) *FeatureHandler {
	return &FeatureHandler{
		featureService: featureService,
		logger:         logger,
	}
}

// ExtractFeatures asks the AI to extract features from the idea's documents
// POST /api/features/extract/{ideaId}
func (h *FeatureHandler) ExtractFeatures(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := PathParam(w, r, "ideaId", "Idea ID")
	if !ok {
		return
	}

	features, err := h.featureService.ExtractFeatures(r.Context(), ideaID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, features)
}

// CreateFeature creates a manually entered feature
// POST /api/features
func (h *FeatureHandler) CreateFeature(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFeatureRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	feature, err := h.featureService.CreateFeature(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, feature)
}

// ListFeaturesByIdea retrieves all features for an idea
// GET /api/features/idea/{ideaId}
func (h *FeatureHandler) ListFeaturesByIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := PathParam(w, r, "ideaId", "Idea ID")
	if !ok {
		return
	}

	features, err := h.featureService.ListFeaturesByIdea(r.Context(), ideaID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, features)
}

// GetFeature retrieves a feature by ID
// GET /api/features/{id}
func (h *FeatureHandler) GetFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Feature ID")
	if !ok {
		return
	}

	feature, err := h.featureService.GetFeature(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, feature)
}

// GetFeatureWithRelations retrieves a feature with its tasks and diagrams
// GET /api/features/{id}/full
func (h *FeatureHandler) GetFeatureWithRelations(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Feature ID")
	if !ok {
		return
	}

	feature, err := h.featureService.GetFeatureWithRelations(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, feature)
}

// UpdateFeature updates a feature
// PATCH /api/features/{id}
func (h *FeatureHandler) UpdateFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Feature ID")
	if !ok {
		return
	}

	var req services.UpdateFeatureRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	feature, err := h.featureService.UpdateFeature(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, feature)
}

// DeleteFeature removes a feature
// DELETE /api/features/{id}
func (h *FeatureHandler) DeleteFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Feature ID")
	if !ok {
		return
	}

	if err := h.featureService.DeleteFeature(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Feature deleted")
}

// GetVersionHistory retrieves a feature's versions, newest first
// GET /api/features/{id}/versions
func (h *FeatureHandler) GetVersionHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Feature ID")
	if !ok {
		return
	}

	versions, err := h.featureService.GetVersionHistory(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// LinkDiagram links a feature to a diagram
// POST /api/features/{id}/diagrams/{diagramId}
func (h *FeatureHandler) LinkDiagram(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Feature ID")
	if !ok {
		return
	}
	diagramID, ok := PathParam(w, r, "diagramId", "Diagram ID")
	if !ok {
		return
	}

	if err := h.featureService.LinkDiagram(r.Context(), id, diagramID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusCreated, "Diagram linked")
}

// UnlinkDiagram removes a feature-diagram link
// DELETE /api/features/{id}/diagrams/{diagramId}
func (h *FeatureHandler) UnlinkDiagram(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Feature ID")
	if !ok {
		return
	}
	diagramID, ok := PathParam(w, r, "diagramId", "Diagram ID")
	if !ok {
		return
	}

	if err := h.featureService.UnlinkDiagram(r.Context(), id, diagramID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Diagram unlinked")
}
