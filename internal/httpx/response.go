// Package httpx writes the JSON responses of the record API, including the
// mapping from the store and hook error taxonomy onto status codes.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"gestidoc/internal/storage"
	"gestidoc/internal/validation"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		// never write partial JSON; fall back to a canned error body
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// WriteError maps a hook or store failure onto the wire: a malformed record
// and bad page bounds are the caller's fault, a missing id is 404, and
// everything else is a storage failure the caller may retry. Validation
// details ride along so the originating form can highlight its fields.
func WriteError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
	case errors.Is(err, storage.ErrNotFound):
		JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, storage.ErrBadPage):
		JSONError(w, http.StatusBadRequest, "bad_page", nil)
	default:
		JSONError(w, http.StatusInternalServerError, "storage_failure", err.Error())
	}
}
