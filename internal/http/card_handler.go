package http

import (
	"net/http"

	"github.com/agroclimatic/bulletins/internal/domain"
	"github.com/agroclimatic/bulletins/pkg/logger"
)

type CardHandler struct {
	service domain.CardService
	logger  logger.Logger
}

func NewCardHandler(service domain.CardService, logger logger.Logger) *CardHandler {
	return &CardHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/cards.list", h.handleList)
	mux.HandleFunc("/api/cards.get", h.handleGet)
	mux.HandleFunc("/api/cards.create", h.handleCreate)
	mux.HandleFunc("/api/cards.update", h.handleUpdate)
	mux.HandleFunc("/api/cards.delete", h.handleDelete)
}

func (h *CardHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	var req domain.GetCardsRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cards, err := h.service.GetCards(r.Context(), req.CardType, req.IDs)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "get cards")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cards": cards,
	})
}

func (h *CardHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	var req domain.GetCardRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := h.service.GetCard(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "get card")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"card": card,
	})
}

func (h *CardHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var req domain.CreateCardRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	card, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.CreateCard(r.Context(), card); err != nil {
		writeServiceError(w, r, h.logger, err, "create card")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"card": card,
	})
}

func (h *CardHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var req domain.UpdateCardRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	card, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateCard(r.Context(), card); err != nil {
		writeServiceError(w, r, h.logger, err, "update card")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"card": card,
	})
}

func (h *CardHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost) {
		return
	}

	var req domain.DeleteCardRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteCard(r.Context(), req.ID); err != nil {
		writeServiceError(w, r, h.logger, err, "delete card")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
