package rest

import (
	"encoding/json"
	"errors"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSONError sends {"success":false,"error":message} with statusCode.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, errorResponse{Success: false, Error: message})
}

// RespondWithJSON marshals payload before writing anything, so a marshal
// failure still produces a clean 500 instead of a truncated body.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Internal server error."}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// writeDomainError maps known domain errors to their status. Anything else is
// logged and answered with a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedContext):
		WriteJSONError(w, http.StatusBadRequest, "Unsupported context.")
	case errors.Is(err, domain.ErrInvalidOrderStatus):
		WriteJSONError(w, http.StatusBadRequest, "Unknown order status.")
	case errors.Is(err, domain.ErrTrackingRequired):
		WriteJSONError(w, http.StatusBadRequest, "Tracking number is required to ship an order.")
	case errors.Is(err, domain.ErrTokenInvalid):
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required.")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, "Forbidden.")
	case errors.Is(err, domain.ErrListingNotFound):
		WriteJSONError(w, http.StatusNotFound, "Listing not found.")
	case errors.Is(err, domain.ErrBrandNotFound):
		WriteJSONError(w, http.StatusNotFound, "Brand not found.")
	case errors.Is(err, domain.ErrOrderNotFound):
		WriteJSONError(w, http.StatusNotFound, "Order not found.")
	case errors.Is(err, domain.ErrInvalidTransition):
		WriteJSONError(w, http.StatusConflict, "Order status transition is not allowed.")
	case errors.Is(err, domain.ErrOrderConflict):
		WriteJSONError(w, http.StatusConflict, "Order was modified by someone else, reload and retry.")
	default:
		contextkeys.LoggerFromContext(r.Context()).Error("Request failed", err, port.Fields{
			"http_path": r.URL.Path,
		})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error.")
	}
}

// pathID reads a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryList collects every value of key and key[], also splitting comma separated values.
func queryList(r *http.Request, key string) []string {
	query := r.URL.Query()
	var values []string
	for _, raw := range append(query[key], query[key+"[]"]...) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}
