package http

import (
	"net/http"

	"github.com/agroclimatic/bulletins/internal/domain"
	"github.com/agroclimatic/bulletins/pkg/logger"
)

// BulletinHandler exposes the preview renderer
type BulletinHandler struct {
	service domain.PreviewService
	logger  logger.Logger
}

func NewBulletinHandler(service domain.PreviewService, logger logger.Logger) *BulletinHandler {
	return &BulletinHandler{service: service, logger: logger}
}

func (h *BulletinHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/bulletins.preview", h.handlePreview)
	mux.HandleFunc("/api/bulletins.pages", h.handlePages)
}

// handlePreview renders one view. With ?format=html the markup is returned
// as is, for embedding in an iframe.
func (h *BulletinHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var req domain.PreviewRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Preview(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "render preview")
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(resp.HTML))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BulletinHandler) handlePages(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var req domain.PagesRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.RenderPages(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "render pages")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
