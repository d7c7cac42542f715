package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUserNotFoundError     = "User not found"
	ErrMsgRewardNotFoundError   = "Reward not found"
	ErrMsgInstanceNotFoundError = "Reward instance not found"
	ErrMsgOfferNotFoundError    = "Trade offer not found"
	ErrMsgListingNotFoundError  = "Listing not found"

	ErrMsgNotOwnedError         = "You don't own that reward"
	ErrMsgInvalidTargetError    = "That action cannot target that user"
	ErrMsgAmbiguousError        = "That name matches more than one user. Be more specific"
	ErrMsgStateConflictError    = "Someone got there first. The record is no longer available"
	ErrMsgCatalogUnavailableErr = "Reward catalog is temporarily unavailable"
	ErrMsgInvalidInputError     = "Invalid request. Please check your inputs"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// StateConflict maps to 409 so callers can tell "try a different record" apart
// from the permanently invalid 4xx kinds.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrRewardNotFound):
		return http.StatusNotFound, ErrMsgRewardNotFoundError
	case errors.Is(err, domain.ErrInstanceNotFound):
		return http.StatusNotFound, ErrMsgInstanceNotFoundError
	case errors.Is(err, domain.ErrOfferNotFound):
		return http.StatusNotFound, ErrMsgOfferNotFoundError
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundError
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusForbidden, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrAmbiguousRecipient):
		return http.StatusBadRequest, ErrMsgAmbiguousError
	case errors.Is(err, domain.ErrInvalidTarget):
		return http.StatusBadRequest, ErrMsgInvalidTargetError
	case errors.Is(err, domain.ErrStateConflict):
		return http.StatusConflict, ErrMsgStateConflictError
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, ErrMsgCatalogUnavailableErr
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
