package apihttp

import (
	"errors"
	"net/http"
	"strings"

	"lngtrade-cloud/internal/audit"
	masterdataapp "lngtrade-cloud/internal/masterdata/application"
	"lngtrade-cloud/internal/state"
)

// MasterdataHandler handles site, fleet, personnel and gas price APIs
// under /api/v1/masterdata.
type MasterdataHandler struct {
	service     *masterdataapp.Service
	store       *state.Store
	auditLogger audit.Logger
}

// NewMasterdataHandler constructs a handler.
func NewMasterdataHandler(service *masterdataapp.Service, store *state.Store, auditLogger audit.Logger) (*MasterdataHandler, error) {
	if service == nil {
		return nil, errors.New("masterdata handler: nil service")
	}
	if store == nil {
		return nil, errors.New("masterdata handler: nil store")
	}
	return &MasterdataHandler{service: service, store: store, auditLogger: auditLogger}, nil
}

func (h *MasterdataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/masterdata/")
	parts := strings.Split(rest, "/")
	switch parts[0] {
	case "sites":
		h.serveSites(w, r, parts[1:])
	case "vehicles":
		h.serveVehicles(w, r, parts[1:])
	case "personnel":
		h.servePersonnel(w, r, parts[1:])
	case "prices":
		h.servePrices(w, r, parts[1:])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *MasterdataHandler) serveSites(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, h.store.Snapshot().Sites)
		case http.MethodPost:
			var req struct {
				Name              string `json:"name"`
				Type              string `json:"type"`
				Status            string `json:"status"`
				MaintenancePolicy string `json:"maintenance_policy"`
				MaintenanceWindow string `json:"maintenance_window"`
			}
			if !decodeJSON(w, r, &req) {
				return
			}
			siteID, err := h.service.AddSite(masterdataapp.SiteInput{
				Name:              req.Name,
				Type:              req.Type,
				Status:            req.Status,
				MaintenancePolicy: req.MaintenancePolicy,
				MaintenanceWindow: req.MaintenanceWindow,
			})
			if err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"success": true, "site_id": siteID})
			logAudit(h.auditLogger, r, "masterdata.site_add", "site", siteID, nil)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	siteID := parts[0]
	if len(parts) == 1 && r.Method == http.MethodPatch {
		var req struct {
			Name              *string `json:"name"`
			Type              *string `json:"type"`
			Status            *string `json:"status"`
			MaintenancePolicy *string `json:"maintenance_policy"`
			MaintenanceWindow *string `json:"maintenance_window"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		err := h.service.UpdateSite(siteID, masterdataapp.SitePatch{
			Name:              req.Name,
			Type:              req.Type,
			Status:            req.Status,
			MaintenancePolicy: req.MaintenancePolicy,
			MaintenanceWindow: req.MaintenanceWindow,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		logAudit(h.auditLogger, r, "masterdata.site_update", "site", siteID, nil)
		return
	}
	if len(parts) == 2 && parts[1] == "disable" && r.Method == http.MethodPost {
		if err := h.service.DisableSite(siteID); err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		logAudit(h.auditLogger, r, "masterdata.site_disable", "site", siteID, nil)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *MasterdataHandler) serveVehicles(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, h.store.Snapshot().Vehicles)
		case http.MethodPost:
			var req struct {
				PlateNo    string  `json:"plate_no"`
				Capacity   float64 `json:"capacity"`
				CertExpiry string  `json:"cert_expiry"`
				Valid      bool    `json:"valid"`
			}
			if !decodeJSON(w, r, &req) {
				return
			}
			vehicleID, err := h.service.AddVehicle(masterdataapp.VehicleInput{
				PlateNo:    req.PlateNo,
				Capacity:   req.Capacity,
				CertExpiry: req.CertExpiry,
				Valid:      req.Valid,
			})
			if err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"success": true, "vehicle_id": vehicleID})
			logAudit(h.auditLogger, r, "masterdata.vehicle_add", "vehicle", vehicleID, nil)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	vehicleID := parts[0]
	if len(parts) == 1 && r.Method == http.MethodPatch {
		var req struct {
			PlateNo    *string  `json:"plate_no"`
			Capacity   *float64 `json:"capacity"`
			CertExpiry *string  `json:"cert_expiry"`
			Valid      *bool    `json:"valid"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		err := h.service.UpdateVehicle(vehicleID, masterdataapp.VehiclePatch{
			PlateNo:    req.PlateNo,
			Capacity:   req.Capacity,
			CertExpiry: req.CertExpiry,
			Valid:      req.Valid,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		logAudit(h.auditLogger, r, "masterdata.vehicle_update", "vehicle", vehicleID, nil)
		return
	}
	if len(parts) == 2 && parts[1] == "disable" && r.Method == http.MethodPost {
		if err := h.service.DisableVehicle(vehicleID); err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		logAudit(h.auditLogger, r, "masterdata.vehicle_disable", "vehicle", vehicleID, nil)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *MasterdataHandler) servePersonnel(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, h.store.Snapshot().Personnel)
		case http.MethodPost:
			var req struct {
				Name       string `json:"name"`
				Role       string `json:"role"`
				CertExpiry string `json:"cert_expiry"`
				Valid      bool   `json:"valid"`
			}
			if !decodeJSON(w, r, &req) {
				return
			}
			personID, err := h.service.AddPerson(masterdataapp.PersonInput{
				Name:       req.Name,
				Role:       req.Role,
				CertExpiry: req.CertExpiry,
				Valid:      req.Valid,
			})
			if err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"success": true, "person_id": personID})
			logAudit(h.auditLogger, r, "masterdata.person_add", "person", personID, nil)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	personID := parts[0]
	if len(parts) == 1 && r.Method == http.MethodPatch {
		var req struct {
			Name       *string `json:"name"`
			Role       *string `json:"role"`
			CertExpiry *string `json:"cert_expiry"`
			Valid      *bool   `json:"valid"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		err := h.service.UpdatePerson(personID, masterdataapp.PersonPatch{
			Name:       req.Name,
			Role:       req.Role,
			CertExpiry: req.CertExpiry,
			Valid:      req.Valid,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		logAudit(h.auditLogger, r, "masterdata.person_update", "person", personID, nil)
		return
	}
	if len(parts) == 2 && parts[1] == "disable" && r.Method == http.MethodPost {
		if err := h.service.DisablePerson(personID); err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		logAudit(h.auditLogger, r, "masterdata.person_disable", "person", personID, nil)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *MasterdataHandler) servePrices(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 {
		switch r.Method {
		case http.MethodGet:
			if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
				writeJSON(w, http.StatusOK, h.service.VisiblePrices(customerID))
				return
			}
			writeJSON(w, http.StatusOK, h.store.Snapshot().GasPrices)
		case http.MethodPost:
			var req struct {
				SourceCompany string  `json:"source_company"`
				SourceSite    string  `json:"source_site"`
				Scope         string  `json:"scope"`
				CustomerID    string  `json:"customer_id"`
				Price         float64 `json:"price"`
				ValidFrom     string  `json:"valid_from"`
				ValidTo       string  `json:"valid_to"`
				TaxIncluded   bool    `json:"tax_included"`
				Note          string  `json:"note"`
			}
			if !decodeJSON(w, r, &req) {
				return
			}
			priceID, err := h.service.AddGasPrice(masterdataapp.PriceInput{
				SourceCompany: req.SourceCompany,
				SourceSite:    req.SourceSite,
				Scope:         req.Scope,
				CustomerID:    req.CustomerID,
				Price:         req.Price,
				ValidFrom:     req.ValidFrom,
				ValidTo:       req.ValidTo,
				TaxIncluded:   req.TaxIncluded,
				Note:          req.Note,
			})
			if err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"success": true, "price_id": priceID})
			logAudit(h.auditLogger, r, "masterdata.price_add", "gas_price", priceID, nil)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	priceID := parts[0]
	if len(parts) == 2 && r.Method == http.MethodPost {
		switch parts[1] {
		case "publish":
			if err := h.service.PublishGasPrice(priceID); err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			logAudit(h.auditLogger, r, "masterdata.price_publish", "gas_price", priceID, nil)
			return
		case "off-shelf":
			if err := h.service.OffShelfGasPrice(priceID); err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			logAudit(h.auditLogger, r, "masterdata.price_off_shelf", "gas_price", priceID, nil)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}
