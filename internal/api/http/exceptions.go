package apihttp

import (
	"errors"
	"net/http"
	"strings"

	"lngtrade-cloud/internal/audit"
	exceptionsapp "lngtrade-cloud/internal/exceptions/application"
	"lngtrade-cloud/internal/state"
)

// ExceptionsHandler handles exception case APIs under /api/v1/exceptions.
type ExceptionsHandler struct {
	service     *exceptionsapp.Service
	store       *state.Store
	auditLogger audit.Logger
}

// NewExceptionsHandler constructs a handler.
func NewExceptionsHandler(service *exceptionsapp.Service, store *state.Store, auditLogger audit.Logger) (*ExceptionsHandler, error) {
	if service == nil {
		return nil, errors.New("exceptions handler: nil service")
	}
	if store == nil {
		return nil, errors.New("exceptions handler: nil store")
	}
	return &ExceptionsHandler{service: service, store: store, auditLogger: auditLogger}, nil
}

func (h *ExceptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/v1/exceptions" && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case path == "/api/v1/exceptions" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Snapshot().Exceptions)
	case strings.HasSuffix(path, "/process") && strings.HasPrefix(path, "/api/v1/exceptions/") && r.Method == http.MethodPost:
		exceptionID := strings.TrimSuffix(strings.TrimPrefix(path, "/api/v1/exceptions/"), "/process")
		h.handleProcess(w, r, exceptionID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ExceptionsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type                string  `json:"type"`
		TargetNo            string  `json:"target_no"`
		Reason              string  `json:"reason"`
		ResponsibilityParty string  `json:"responsibility_party"`
		Amount              float64 `json:"amount"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	exceptionID, err := h.service.Create(exceptionsapp.CreateInput{
		Type:                req.Type,
		TargetNo:            req.TargetNo,
		Reason:              req.Reason,
		ResponsibilityParty: req.ResponsibilityParty,
		Amount:              req.Amount,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"exception_id": exceptionID,
	})
	logAudit(h.auditLogger, r, "exception.create", "exception", exceptionID, map[string]any{
		"type":      req.Type,
		"target_no": req.TargetNo,
	})
}

func (h *ExceptionsHandler) handleProcess(w http.ResponseWriter, r *http.Request, exceptionID string) {
	var req struct {
		Action   string `json:"action"`
		Reviewer string `json:"reviewer"`
		Note     string `json:"note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.service.Process(exceptionsapp.ProcessInput{
		ExceptionID: exceptionID,
		Action:      req.Action,
		Reviewer:    req.Reviewer,
		Note:        req.Note,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "exception.process", "exception", exceptionID, map[string]any{
		"action": req.Action,
	})
}
