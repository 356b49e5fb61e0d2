package http

import (
	"net/http"

	"github.com/agroclimatic/bulletins/internal/domain"
	"github.com/agroclimatic/bulletins/pkg/logger"
)

type VisualResourceHandler struct {
	service domain.VisualResourceService
	logger  logger.Logger
}

func NewVisualResourceHandler(service domain.VisualResourceService, logger logger.Logger) *VisualResourceHandler {
	return &VisualResourceHandler{service: service, logger: logger}
}

func (h *VisualResourceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/visual_resources.list", h.handleList)
	mux.HandleFunc("/api/visual_resources.create", h.handleCreate)
	mux.HandleFunc("/api/visual_resources.delete", h.handleDelete)
}

func (h *VisualResourceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	var req domain.GetVisualResourcesRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resources, err := h.service.GetVisualResources(r.Context(), req.FileType)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "get visual resources")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"visual_resources": resources,
	})
}

func (h *VisualResourceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var req domain.CreateVisualResourceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resource, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.CreateVisualResource(r.Context(), resource); err != nil {
		writeServiceError(w, r, h.logger, err, "create visual resource")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"visual_resource": resource,
	})
}

func (h *VisualResourceHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var req domain.DeleteVisualResourceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteVisualResource(r.Context(), req.ID); err != nil {
		writeServiceError(w, r, h.logger, err, "delete visual resource")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
