package apihttp

import (
	"errors"
	"net/http"
	"strings"

	"lngtrade-cloud/internal/audit"
	"lngtrade-cloud/internal/auth"
	ordersapp "lngtrade-cloud/internal/orders/application"
	"lngtrade-cloud/internal/state"
)

// OrdersHandler handles delivery order APIs under /api/v1/orders.
type OrdersHandler struct {
	service     *ordersapp.Service
	store       *state.Store
	auditLogger audit.Logger
}

// NewOrdersHandler constructs a handler.
func NewOrdersHandler(service *ordersapp.Service, store *state.Store, auditLogger audit.Logger) (*OrdersHandler, error) {
	if service == nil {
		return nil, errors.New("orders handler: nil service")
	}
	if store == nil {
		return nil, errors.New("orders handler: nil store")
	}
	return &OrdersHandler{service: service, store: store, auditLogger: auditLogger}, nil
}

func (h *OrdersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/orders" && r.Method == http.MethodGet {
		h.handleList(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/orders/")
	parts := strings.Split(rest, "/")
	if len(parts) >= 2 && r.Method == http.MethodPost {
		orderID := parts[0]
		action := strings.Join(parts[1:], "/")
		switch action {
		case "supplement":
			h.handleSupplement(w, r, orderID)
			return
		case "supplement/review":
			h.handleSupplementReview(w, r, orderID)
			return
		case "load":
			h.handleLoad(w, r, orderID)
			return
		case "unload":
			h.handleUnload(w, r, orderID)
			return
		case "resolve-diff":
			h.handleResolveDiff(w, r, orderID)
			return
		case "accept":
			h.handleAccept(w, r, orderID)
			return
		case "archive":
			h.handleArchive(w, r, orderID, true)
			return
		case "unarchive":
			h.handleArchive(w, r, orderID, false)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *OrdersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot().Orders)
}

func (h *OrdersHandler) handleSupplement(w http.ResponseWriter, r *http.Request, orderID string) {
	var req struct {
		UpstreamOrderNo   string `json:"upstream_order_no"`
		LoadSiteName      string `json:"load_site_name"`
		EstimatedLoadAt   string `json:"estimated_load_at"`
		SupplementDocName string `json:"supplement_doc_name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.service.SubmitSupplement(ordersapp.SupplementInput{
		OrderID:           orderID,
		UpstreamOrderNo:   req.UpstreamOrderNo,
		LoadSiteName:      req.LoadSiteName,
		EstimatedLoadAt:   req.EstimatedLoadAt,
		SupplementDocName: req.SupplementDocName,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "order.supplement", "order", orderID, nil)
}

func (h *OrdersHandler) handleSupplementReview(w http.ResponseWriter, r *http.Request, orderID string) {
	var req struct {
		Action   string `json:"action"`
		Reviewer string `json:"reviewer"`
		Reason   string `json:"reason"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.service.ReviewSupplement(ordersapp.SupplementReviewInput{
		OrderID:  orderID,
		Action:   req.Action,
		Reviewer: req.Reviewer,
		Reason:   req.Reason,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "order.supplement_review", "order", orderID, map[string]any{
		"action": req.Action,
	})
}

func (h *OrdersHandler) handleLoad(w http.ResponseWriter, r *http.Request, orderID string) {
	var req struct {
		Weight float64 `json:"weight"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.service.ConfirmLoad(orderID, req.Weight); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "order.load", "order", orderID, map[string]any{
		"weight": req.Weight,
	})
}

func (h *OrdersHandler) handleUnload(w http.ResponseWriter, r *http.Request, orderID string) {
	var req struct {
		Weight float64 `json:"weight"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.service.ConfirmUnload(orderID, req.Weight); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "order.unload", "order", orderID, map[string]any{
		"weight": req.Weight,
	})
}

func (h *OrdersHandler) handleResolveDiff(w http.ResponseWriter, r *http.Request, orderID string) {
	var req struct {
		SettlementWeight float64 `json:"settlement_weight"`
		Note             string  `json:"note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.service.ResolveDiffException(orderID, req.SettlementWeight, req.Note); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "order.resolve_diff", "order", orderID, map[string]any{
		"settlement_weight": req.SettlementWeight,
	})
}

func (h *OrdersHandler) handleAccept(w http.ResponseWriter, r *http.Request, orderID string) {
	var req struct {
		Accepted         bool    `json:"accepted"`
		SettlementWeight float64 `json:"settlement_weight"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.service.Accept(orderID, req.Accepted, req.SettlementWeight); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, "order.accept", "order", orderID, map[string]any{
		"accepted": req.Accepted,
	})
}

func (h *OrdersHandler) handleArchive(w http.ResponseWriter, r *http.Request, orderID string, archive bool) {
	operator := auth.UserIDFromContext(r.Context())
	var result ordersapp.ArchiveResult
	action := "order.archive"
	if archive {
		result = h.service.Archive(orderID, operator)
	} else {
		result = h.service.Unarchive(orderID, operator)
		action = "order.unarchive"
	}
	if !result.Success {
		writeJSON(w, http.StatusConflict, map[string]any{
			"success": false,
			"error":   result.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
	logAudit(h.auditLogger, r, action, "order", orderID, nil)
}
