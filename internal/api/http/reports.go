package apihttp

import (
	"errors"
	"net/http"

	"lngtrade-cloud/internal/audit"
	reportingapp "lngtrade-cloud/internal/reporting/application"
	"lngtrade-cloud/internal/state"
)

// ReportsHandler handles daily plan report APIs.
type ReportsHandler struct {
	service     *reportingapp.Service
	store       *state.Store
	auditLogger audit.Logger
}

// NewReportsHandler constructs a handler.
func NewReportsHandler(service *reportingapp.Service, store *state.Store, auditLogger audit.Logger) (*ReportsHandler, error) {
	if service == nil {
		return nil, errors.New("reports handler: nil service")
	}
	if store == nil {
		return nil, errors.New("reports handler: nil store")
	}
	return &ReportsHandler{service: service, store: store, auditLogger: auditLogger}, nil
}

func (h *ReportsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/reports/daily-plan" && r.Method == http.MethodPost:
		h.handleGenerate(w, r)
	case r.URL.Path == "/api/v1/reports/daily-plan" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Snapshot().DailyPlanReports)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ReportsHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReportDate  string `json:"report_date"`
		GeneratedBy string `json:"generated_by"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	reportID, err := h.service.GenerateDailyPlanReport(req.ReportDate, req.GeneratedBy)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"report_id": reportID,
	})
	logAudit(h.auditLogger, r, "report.daily_plan", "report", reportID, map[string]any{
		"report_date": req.ReportDate,
	})
}
