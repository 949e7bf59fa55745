package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"lngtrade-cloud/internal/audit"
	"lngtrade-cloud/internal/auth"
	"lngtrade-cloud/internal/observability/metrics"
	settlementapp "lngtrade-cloud/internal/settlement/application"
	settlement "lngtrade-cloud/internal/settlement/domain"
	"lngtrade-cloud/internal/state"
)

// StatementHandler handles reconciliation statement APIs.
type StatementHandler struct {
	service     *settlementapp.Service
	store       *state.Store
	auditLogger audit.Logger
}

// NewStatementHandler constructs a handler.
func NewStatementHandler(service *settlementapp.Service, store *state.Store, auditLogger audit.Logger) (*StatementHandler, error) {
	if service == nil {
		return nil, errors.New("statement handler: nil service")
	}
	if store == nil {
		return nil, errors.New("statement handler: nil store")
	}
	return &StatementHandler{service: service, store: store, auditLogger: auditLogger}, nil
}

// ServeHTTP handles statement routes under /api/v1/statements plus the
// upstream archive and ledger export routes.
func (h *StatementHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/v1/statements" && r.Method == http.MethodGet:
		h.handleList(w, r)
		return
	case path == "/api/v1/upstream-archives":
		switch r.Method {
		case http.MethodPost:
			h.handleUploadArchive(w, r)
		case http.MethodGet:
			writeJSON(w, http.StatusOK, h.store.Snapshot().UpstreamArchives)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	case path == "/api/v1/exports/ledger.xlsx" && r.Method == http.MethodGet:
		h.handleExportLedger(w, r)
		return
	case strings.HasPrefix(path, "/api/v1/statements/"):
		rest := strings.TrimPrefix(path, "/api/v1/statements/")
		h.handleByID(w, r, rest)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *StatementHandler) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot().Statements)
}

func (h *StatementHandler) handleByID(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	parts := strings.Split(rest, "/")
	id := parts[0]
	if len(parts) == 1 && r.Method == http.MethodGet {
		h.handleGet(w, r, id)
		return
	}
	if len(parts) == 2 {
		switch parts[1] {
		case "stamp":
			if r.Method == http.MethodPost {
				h.handleStamp(w, r, id)
				return
			}
		case "export.pdf":
			if r.Method == http.MethodGet {
				h.handleExportPDF(w, r, id)
				return
			}
		case "export.xlsx":
			if r.Method == http.MethodGet {
				h.handleExportXLSX(w, r, id)
				return
			}
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *StatementHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	stmt, ok := h.findStatement(id)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stmt)
}

func (h *StatementHandler) handleStamp(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		ActorType string `json:"actor_type"`
		Actor     string `json:"actor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := h.service.ApplyStamp(id, req.ActorType, req.Actor); err != nil {
		respondStampError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	h.logAudit(r, id, "statement.stamp", map[string]any{
		"actor_type": req.ActorType,
		"actor":      req.Actor,
	})
}

func (h *StatementHandler) handleUploadArchive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UpstreamCompany string `json:"upstream_company"`
		Period          string `json:"period"`
		FileName        string `json:"file_name"`
		ArchivedBy      string `json:"archived_by"`
		Note            string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	archiveID, err := h.service.UploadUpstreamArchive(settlementapp.ArchiveInput{
		UpstreamCompany: req.UpstreamCompany,
		Period:          req.Period,
		FileName:        req.FileName,
		ArchivedBy:      req.ArchivedBy,
		Note:            req.Note,
	})
	if err != nil {
		respondStampError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":    true,
		"archive_id": archiveID,
	})
	h.logAudit(r, archiveID, "upstream_archive.upload", map[string]any{
		"period": req.Period,
	})
}

func (h *StatementHandler) handleExportPDF(w http.ResponseWriter, r *http.Request, id string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport("pdf", result, time.Since(start))
	}()

	stmt, ok := h.findStatement(id)
	if !ok {
		result = metrics.ResultError
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	data, err := BuildStatementPDF(stmt)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export pdf error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, stmt.ID, "statement.export", map[string]any{"format": "pdf"})
}

func (h *StatementHandler) handleExportXLSX(w http.ResponseWriter, r *http.Request, id string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport("xlsx", result, time.Since(start))
	}()

	stmt, ok := h.findStatement(id)
	if !ok {
		result = metrics.ResultError
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	data, err := BuildStatementXLSX(stmt)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export xlsx error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, stmt.ID, "statement.export", map[string]any{"format": "xlsx"})
}

func (h *StatementHandler) handleExportLedger(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport("ledger_xlsx", result, time.Since(start))
	}()

	snap := h.store.Snapshot()
	data, err := BuildLedgerXLSX(snap.Account, snap.Ledgers)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export ledger error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, "ledger", "ledger.export", map[string]any{"format": "xlsx"})
}

func (h *StatementHandler) findStatement(id string) (settlement.Statement, bool) {
	snap := h.store.Snapshot()
	for _, stmt := range snap.Statements {
		if stmt.ID == id || stmt.Number == id {
			return stmt, true
		}
	}
	return settlement.Statement{}, false
}

func (h *StatementHandler) logAudit(r *http.Request, resourceID, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        userID,
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "statement",
		ResourceID:   resourceID,
		CustomerID:   auth.CustomerIDFromContext(r.Context()),
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondStampError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, settlement.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, settlement.ErrInvalidPhase):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
