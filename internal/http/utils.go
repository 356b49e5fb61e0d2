package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/agroclimatic/bulletins/internal/domain"
	"github.com/agroclimatic/bulletins/pkg/logger"
	"github.com/agroclimatic/bulletins/pkg/tracing"
)

// maxBodyBytes bounds request bodies. Inline documents with their cards fit
// comfortably.
const maxBodyBytes = 8 << 20

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a bounded JSON body into v
func decodeJSON(r *http.Request, v interface{}) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeServiceError maps service errors to status codes: validation errors
// are 400, not found errors 404 and anything else 500 with a generic message.
// The request span keeps the real error of a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error, action string) {
	var validationErr domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case domain.IsNotFound(err):
		WriteJSONError(w, err.Error(), http.StatusNotFound)
	default:
		log.WithField("error", err.Error()).Error("Failed to " + action)
		WriteJSONError(w, "Failed to "+action, http.StatusInternalServerError)
		tracing.MarkSpanError(r.Context(), err)
	}
}

func methodAllowed(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
