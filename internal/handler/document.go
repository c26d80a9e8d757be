package handler

import (
	"log/slog"
	"net/http"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/services"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/httputil"
)

// DocumentHandler handles requirement document HTTP requests
type DocumentHandler struct {
	docService services.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// GenerateDocuments generates the PRD and BRD for a confirmed idea
// POST /api/documents/generate/{ideaId}
func (h *DocumentHandler) GenerateDocuments(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := PathParam(w, r, "ideaId", "Idea ID")
	if !ok {
		return
	}

	docs, err := h.docService.GenerateDocuments(r.Context(), ideaID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, docs)
}

// ListDocumentsByIdea retrieves all documents for an idea
// GET /api/documents/idea/{ideaId}
func (h *DocumentHandler) ListDocumentsByIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := PathParam(w, r, "ideaId", "Idea ID")
	if !ok {
		return
	}

	docs, err := h.docService.ListDocumentsByIdea(r.Context(), ideaID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// GetDocumentWithVersions retrieves a document with its version history
// GET /api/documents/{id}/full
func (h *DocumentHandler) GetDocumentWithVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}

	doc, err := h.docService.GetDocumentWithVersions(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateDocument updates a document's title, content, or status
// PUT /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}

	var req services.UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.docService.UpdateDocument(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// GetVersionHistory retrieves a document's versions, newest first
// GET /api/documents/{id}/versions
func (h *DocumentHandler) GetVersionHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}

	versions, err := h.docService.GetVersionHistory(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// RevertToVersion restores an old version's content
// POST /api/documents/{id}/revert/{version}
func (h *DocumentHandler) RevertToVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}

	version, ok := versionParam(w, r)
	if !ok {
		return
	}

	doc, err := h.docService.RevertToVersion(r.Context(), id, version)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// RegenerateDocument re-runs AI generation for an existing document
// POST /api/documents/{id}/regenerate
func (h *DocumentHandler) RegenerateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}

	doc, err := h.docService.RegenerateDocument(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ExportDocument prepares the document for download
// GET /api/documents/{id}/export/{format}
func (h *DocumentHandler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}

	format := r.PathValue("format")
	if format == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Export format is required")
		return
	}

	export, err := h.docService.ExportDocument(r.Context(), id, format)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, export)
}
