package apihttp

import (
	"errors"
	"net/http"
	"strings"

	"lngtrade-cloud/internal/audit"
	onboardingapp "lngtrade-cloud/internal/onboarding/application"
	"lngtrade-cloud/internal/state"
)

// OnboardingHandler handles customer onboarding APIs under /api/v1/onboarding.
type OnboardingHandler struct {
	service     *onboardingapp.Service
	store       *state.Store
	auditLogger audit.Logger
}

// NewOnboardingHandler constructs a handler.
func NewOnboardingHandler(service *onboardingapp.Service, store *state.Store, auditLogger audit.Logger) (*OnboardingHandler, error) {
	if service == nil {
		return nil, errors.New("onboarding handler: nil service")
	}
	if store == nil {
		return nil, errors.New("onboarding handler: nil store")
	}
	return &OnboardingHandler{service: service, store: store, auditLogger: auditLogger}, nil
}

func (h *OnboardingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/onboarding" || path == "/api/v1/onboarding/applications" {
		switch r.Method {
		case http.MethodPost:
			h.handleSubmit(w, r)
		case http.MethodGet:
			writeJSON(w, http.StatusOK, h.store.Snapshot().OnboardingApplications)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	rest := strings.TrimPrefix(path, "/api/v1/onboarding/")
	parts := strings.Split(rest, "/")
	if len(parts) == 2 && r.Method == http.MethodPost {
		applicationID := parts[0]
		switch parts[1] {
		case "review":
			h.handleReview(w, r, applicationID)
			return
		case "resubmit":
			h.handleResubmit(w, r, applicationID)
			return
		case "materials":
			h.handleMaterials(w, r, applicationID)
			return
		case "contract":
			h.handleContract(w, r, applicationID)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *OnboardingHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrganizationName string `json:"organization_name"`
		OrganizationType string `json:"organization_type"`
		ContactName      string `json:"contact_name"`
		ContactPhone     string `json:"contact_phone"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	applicationID, err := h.service.Submit(onboardingapp.SubmitInput{
		OrganizationName: req.OrganizationName,
		OrganizationType: req.OrganizationType,
		ContactName:      req.ContactName,
		ContactPhone:     req.ContactPhone,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":        true,
		"application_id": applicationID,
	})
	logAudit(h.auditLogger, r, "onboarding.submit", "onboarding_application", applicationID, nil)
}

func (h *OnboardingHandler) handleReview(w http.ResponseWriter, r *http.Request, applicationID string) {
	var req struct {
		Action   string `json:"action"`
		Reviewer string `json:"reviewer"`
		Reason   string `json:"reason"`
		Level    string `json:"level"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.service.Review(onboardingapp.ReviewInput{
		ApplicationID: applicationID,
		Action:        req.Action,
		Reviewer:      req.Reviewer,
		Reason:        req.Reason,
		Level:         req.Level,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "onboarding.review", "onboarding_application", applicationID, map[string]any{
		"action": req.Action,
	})
}

func (h *OnboardingHandler) handleResubmit(w http.ResponseWriter, r *http.Request, applicationID string) {
	if err := h.service.Resubmit(applicationID); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "onboarding.resubmit", "onboarding_application", applicationID, nil)
}

func (h *OnboardingHandler) handleMaterials(w http.ResponseWriter, r *http.Request, applicationID string) {
	var req struct {
		OrganizationName string `json:"organization_name"`
		ContactName      string `json:"contact_name"`
		ContactPhone     string `json:"contact_phone"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.service.SubmitMaterials(onboardingapp.MaterialsInput{
		ApplicationID:    applicationID,
		OrganizationName: req.OrganizationName,
		ContactName:      req.ContactName,
		ContactPhone:     req.ContactPhone,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "onboarding.materials", "onboarding_application", applicationID, nil)
}

func (h *OnboardingHandler) handleContract(w http.ResponseWriter, r *http.Request, applicationID string) {
	var req struct {
		ContractName  string `json:"contract_name"`
		EffectiveDate string `json:"effective_date"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.service.UploadContract(onboardingapp.ContractInput{
		ApplicationID: applicationID,
		ContractName:  req.ContractName,
		EffectiveDate: req.EffectiveDate,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "onboarding.contract", "onboarding_application", applicationID, nil)
}
