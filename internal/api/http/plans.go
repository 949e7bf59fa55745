package apihttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"lngtrade-cloud/internal/audit"
	"lngtrade-cloud/internal/auth"
	plansapp "lngtrade-cloud/internal/plans/application"
	"lngtrade-cloud/internal/state"
)

// PlansHandler handles purchase plan APIs under /api/v1/plans.
type PlansHandler struct {
	service     *plansapp.Service
	store       *state.Store
	auditLogger audit.Logger
}

// NewPlansHandler constructs a handler.
func NewPlansHandler(service *plansapp.Service, store *state.Store, auditLogger audit.Logger) (*PlansHandler, error) {
	if service == nil {
		return nil, errors.New("plans handler: nil service")
	}
	if store == nil {
		return nil, errors.New("plans handler: nil store")
	}
	return &PlansHandler{service: service, store: store, auditLogger: auditLogger}, nil
}

func (h *PlansHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/plans" {
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	rest := strings.TrimPrefix(path, "/api/v1/plans/")
	parts := strings.Split(rest, "/")
	if len(parts) == 2 && r.Method == http.MethodPost {
		switch parts[1] {
		case "review":
			h.handleReview(w, r, parts[0])
			return
		case "cancel":
			h.handleCancel(w, r, parts[0])
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *PlansHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SiteID           string  `json:"site_id"`
		PriceID          string  `json:"price_id"`
		PlannedVolume    float64 `json:"planned_volume"`
		FreightFee       float64 `json:"freight_fee"`
		TransportMode    string  `json:"transport_mode"`
		PaymentMethod    string  `json:"payment_method"`
		WeighDiffRule    string  `json:"weigh_diff_rule"`
		AgreementChecked bool    `json:"agreement_checked"`
		CarrierID        string  `json:"carrier_id"`
		VehicleID        string  `json:"vehicle_id"`
		DriverID         string  `json:"driver_id"`
		EscortID         string  `json:"escort_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result := h.service.Create(plansapp.CreateInput{
		SiteID:           req.SiteID,
		PriceID:          req.PriceID,
		PlannedVolume:    req.PlannedVolume,
		FreightFee:       req.FreightFee,
		TransportMode:    req.TransportMode,
		PaymentMethod:    req.PaymentMethod,
		WeighDiffRule:    req.WeighDiffRule,
		AgreementChecked: req.AgreementChecked,
		CarrierID:        req.CarrierID,
		VehicleID:        req.VehicleID,
		DriverID:         req.DriverID,
		EscortID:         req.EscortID,
	})
	if !result.Success {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"errors":  result.Errors,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"plan_id": result.PlanID,
	})
	logAudit(h.auditLogger, r, "plan.create", "plan", result.PlanID, map[string]any{
		"volume": req.PlannedVolume,
	})
}

func (h *PlansHandler) handleList(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	plans := snap.Plans
	if customerID := auth.CustomerIDFromContext(r.Context()); customerID != "" {
		filtered := plans[:0:0]
		for _, plan := range plans {
			if plan.CustomerID == customerID {
				filtered = append(filtered, plan)
			}
		}
		plans = filtered
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *PlansHandler) handleReview(w http.ResponseWriter, r *http.Request, planID string) {
	var req struct {
		Action   string `json:"action"`
		Reviewer string `json:"reviewer"`
		Reason   string `json:"reason"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.service.Review(plansapp.ReviewInput{
		PlanID:   planID,
		Action:   req.Action,
		Reviewer: req.Reviewer,
		Reason:   req.Reason,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "plan.review", "plan", planID, map[string]any{
		"action": req.Action,
	})
}

func (h *PlansHandler) handleCancel(w http.ResponseWriter, r *http.Request, planID string) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	snap := h.store.Snapshot()
	if plan := snap.FindPlan(planID); plan != nil {
		if err := auth.EnsureCustomer(r.Context(), plan.CustomerID); err != nil {
			respondServiceError(w, err)
			return
		}
	}
	if err := h.service.Cancel(planID, req.Reason); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "plan.cancel", "plan", planID, map[string]any{
		"reason": req.Reason,
	})
}
