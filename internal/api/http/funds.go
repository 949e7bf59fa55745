package apihttp

import (
	"errors"
	"net/http"
	"strings"

	"lngtrade-cloud/internal/audit"
	fundsapp "lngtrade-cloud/internal/funds/application"
	"lngtrade-cloud/internal/state"
)

// FundsHandler handles deposit and account APIs.
type FundsHandler struct {
	service     *fundsapp.Service
	store       *state.Store
	auditLogger audit.Logger
}

// NewFundsHandler constructs a handler.
func NewFundsHandler(service *fundsapp.Service, store *state.Store, auditLogger audit.Logger) (*FundsHandler, error) {
	if service == nil {
		return nil, errors.New("funds handler: nil service")
	}
	if store == nil {
		return nil, errors.New("funds handler: nil store")
	}
	return &FundsHandler{service: service, store: store, auditLogger: auditLogger}, nil
}

func (h *FundsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/v1/deposits" && r.Method == http.MethodPost:
		h.handleRegister(w, r)
	case path == "/api/v1/deposits" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Snapshot().Deposits)
	case strings.HasSuffix(path, "/review") && strings.HasPrefix(path, "/api/v1/deposits/") && r.Method == http.MethodPost:
		depositID := strings.TrimSuffix(strings.TrimPrefix(path, "/api/v1/deposits/"), "/review")
		h.handleReview(w, r, depositID)
	case path == "/api/v1/account" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Snapshot().Account)
	case path == "/api/v1/ledgers" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Snapshot().Ledgers)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *FundsHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName string  `json:"customer_name"`
		Amount       float64 `json:"amount"`
		PaidAt       string  `json:"paid_at"`
		ReceiptName  string  `json:"receipt_name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	depositID, err := h.service.RegisterDeposit(fundsapp.DepositInput{
		CustomerName: req.CustomerName,
		Amount:       req.Amount,
		PaidAt:       req.PaidAt,
		ReceiptName:  req.ReceiptName,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":    true,
		"deposit_id": depositID,
	})
	logAudit(h.auditLogger, r, "deposit.register", "deposit", depositID, map[string]any{
		"amount": req.Amount,
	})
}

func (h *FundsHandler) handleReview(w http.ResponseWriter, r *http.Request, depositID string) {
	var req struct {
		Action   string `json:"action"`
		Reviewer string `json:"reviewer"`
		Reason   string `json:"reason"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.service.ReviewDeposit(depositID, req.Action, req.Reviewer, req.Reason); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "deposit.review", "deposit", depositID, map[string]any{
		"action": req.Action,
	})
}
