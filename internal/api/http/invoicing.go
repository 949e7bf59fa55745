package apihttp

import (
	"errors"
	"net/http"
	"strings"

	"lngtrade-cloud/internal/audit"
	invoicingapp "lngtrade-cloud/internal/invoicing/application"
	"lngtrade-cloud/internal/state"
)

// InvoicingHandler handles invoice application and issuing APIs.
type InvoicingHandler struct {
	service     *invoicingapp.Service
	store       *state.Store
	auditLogger audit.Logger
}

// NewInvoicingHandler constructs a handler.
func NewInvoicingHandler(service *invoicingapp.Service, store *state.Store, auditLogger audit.Logger) (*InvoicingHandler, error) {
	if service == nil {
		return nil, errors.New("invoicing handler: nil service")
	}
	if store == nil {
		return nil, errors.New("invoicing handler: nil store")
	}
	return &InvoicingHandler{service: service, store: store, auditLogger: auditLogger}, nil
}

func (h *InvoicingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/v1/invoice-applications" && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case path == "/api/v1/invoice-applications" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Snapshot().InvoiceApplications)
	case strings.HasSuffix(path, "/review") && strings.HasPrefix(path, "/api/v1/invoice-applications/") && r.Method == http.MethodPost:
		applicationID := strings.TrimSuffix(strings.TrimPrefix(path, "/api/v1/invoice-applications/"), "/review")
		h.handleReview(w, r, applicationID)
	case path == "/api/v1/invoices" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Snapshot().Invoices)
	case strings.HasSuffix(path, "/issue") && strings.HasPrefix(path, "/api/v1/invoices/") && r.Method == http.MethodPost:
		invoiceID := strings.TrimSuffix(strings.TrimPrefix(path, "/api/v1/invoices/"), "/issue")
		h.handleIssue(w, r, invoiceID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *InvoicingHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StatementID     string  `json:"statement_id"`
		InvoiceTitle    string  `json:"invoice_title"`
		TaxNo           string  `json:"tax_no"`
		Applicant       string  `json:"applicant"`
		DiscountEnabled bool    `json:"discount_enabled"`
		DiscountAmount  float64 `json:"discount_amount"`
		Note            string  `json:"note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result := h.service.Create(invoicingapp.CreateInput{
		StatementID:     req.StatementID,
		InvoiceTitle:    req.InvoiceTitle,
		TaxNo:           req.TaxNo,
		Applicant:       req.Applicant,
		DiscountEnabled: req.DiscountEnabled,
		DiscountAmount:  req.DiscountAmount,
		Note:            req.Note,
	})
	if !result.Success {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"errors":  result.Errors,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":        true,
		"application_id": result.ApplicationID,
	})
	logAudit(h.auditLogger, r, "invoice_application.create", "invoice_application", result.ApplicationID, map[string]any{
		"statement_id": req.StatementID,
	})
}

func (h *InvoicingHandler) handleReview(w http.ResponseWriter, r *http.Request, applicationID string) {
	var req struct {
		Action   string `json:"action"`
		Reviewer string `json:"reviewer"`
		Reason   string `json:"reason"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.service.Review(invoicingapp.ReviewInput{
		ApplicationID: applicationID,
		Action:        req.Action,
		Reviewer:      req.Reviewer,
		Reason:        req.Reason,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "invoice_application.review", "invoice_application", applicationID, map[string]any{
		"action": req.Action,
	})
}

func (h *InvoicingHandler) handleIssue(w http.ResponseWriter, r *http.Request, invoiceID string) {
	var req struct {
		InvoiceNo      string  `json:"invoice_no"`
		IssueDate      string  `json:"issue_date"`
		TaxRate        float64 `json:"tax_rate"`
		AttachmentName string  `json:"attachment_name"`
		Issuer         string  `json:"issuer"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.service.Issue(invoicingapp.IssueInput{
		InvoiceID:      invoiceID,
		InvoiceNo:      req.InvoiceNo,
		IssueDate:      req.IssueDate,
		TaxRate:        req.TaxRate,
		AttachmentName: req.AttachmentName,
		Issuer:         req.Issuer,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "invoice.issue", "invoice", invoiceID, map[string]any{
		"invoice_no": req.InvoiceNo,
	})
}
