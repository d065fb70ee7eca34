package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/exposure-verify-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// IssueEnvelope is the response for a locally issued code. All fields are
// always present: existing clients read expiresAtTimestamp as a string of
// Unix seconds and expect error to be "" on success.
type IssueEnvelope struct {
	Code               string `json:"code"`
	Error              string `json:"error"`
	ExpiresAt          string `json:"expiresAt"`
	ExpiresAtTimestamp string `json:"expiresAtTimestamp"`
	SMSSent            bool   `json:"smsSent"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpStatus maps domain sentinel errors onto HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDelivery):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
