// Package apihttp exposes the platform's JSON API. Handlers stay thin:
// decode, delegate to an application service, map sentinel errors to
// status codes, and write an audit entry for mutations.
package apihttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"lngtrade-cloud/internal/audit"
	"lngtrade-cloud/internal/auth"
	exceptions "lngtrade-cloud/internal/exceptions/domain"
	funds "lngtrade-cloud/internal/funds/domain"
	invoicing "lngtrade-cloud/internal/invoicing/domain"
	masterdata "lngtrade-cloud/internal/masterdata/domain"
	onboarding "lngtrade-cloud/internal/onboarding/domain"
	orders "lngtrade-cloud/internal/orders/domain"
	plans "lngtrade-cloud/internal/plans/domain"
	settlement "lngtrade-cloud/internal/settlement/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

var notFoundErrs = []error{
	plans.ErrNotFound,
	orders.ErrNotFound,
	settlement.ErrNotFound,
	exceptions.ErrNotFound,
	masterdata.ErrNotFound,
	onboarding.ErrNotFound,
	funds.ErrDepositNotFound,
	invoicing.ErrInvoiceNotFound,
	invoicing.ErrApplicationNotFound,
}

var conflictErrs = []error{
	plans.ErrInvalidStatus,
	orders.ErrInvalidStatus,
	orders.ErrSupplementNotPending,
	onboarding.ErrInvalidStatus,
	funds.ErrDepositNotPending,
	funds.ErrInconsistentAccount,
	settlement.ErrInvalidPhase,
	invoicing.ErrApplicationNotPending,
	invoicing.ErrAlreadyIssued,
	exceptions.ErrNotPending,
}

func respondServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, auth.ErrCustomerMismatch) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	for _, sentinel := range notFoundErrs {
		if errors.Is(err, sentinel) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}
	for _, sentinel := range conflictErrs {
		if errors.Is(err, sentinel) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func logAudit(logger audit.Logger, r *http.Request, action, resourceType, resourceID string, meta map[string]any) {
	if logger == nil {
		return
	}
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = logger.Log(r.Context(), audit.Entry{
		Actor:        userID,
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		CustomerID:   auth.CustomerIDFromContext(r.Context()),
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}
