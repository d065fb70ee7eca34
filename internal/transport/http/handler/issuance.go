package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/exposure-verify-api/internal/application/issuance"
	"github.com/exposure-verify-api/internal/domain"
)

// IssuanceHandler handles verification code issuance.
type IssuanceHandler struct {
	svc issuance.Service
}

func NewIssuanceHandler(svc issuance.Service) *IssuanceHandler {
	return &IssuanceHandler{svc: svc}
}

// NotifyPositive issues a verification code for a positive test result. In
// proxy mode the upstream response is relayed verbatim, status included.
func (h *IssuanceHandler) NotifyPositive(w http.ResponseWriter, r *http.Request) {
	var req domain.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.Issue(r.Context(), req)
	if err != nil {
		writeJSON(w, httpStatus(err), IssueEnvelope{Error: err.Error()})
		return
	}

	if res.Proxied {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(res.ProxyStatus)
		_, _ = w.Write(res.ProxyBody)
		return
	}

	writeJSON(w, http.StatusOK, IssueEnvelope{
		Code:               res.Code,
		ExpiresAt:          res.ExpiresAt.UTC().Format(time.RFC3339),
		ExpiresAtTimestamp: strconv.FormatInt(res.ExpiresAtUnix, 10),
		SMSSent:            res.SMSSent,
	})
}
