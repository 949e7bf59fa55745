package apihttp

import (
	"errors"
	"net/http"

	identityapp "lngtrade-cloud/internal/identity/application"
)

// AuthHandler handles session APIs under /api/v1/auth.
type AuthHandler struct {
	service *identityapp.Service
}

// NewAuthHandler constructs a handler.
func NewAuthHandler(service *identityapp.Service) (*AuthHandler, error) {
	if service == nil {
		return nil, errors.New("auth handler: nil service")
	}
	return &AuthHandler{service: service}, nil
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/auth/login":
		h.handleLogin(w, r)
	case "/api/v1/auth/register":
		h.handleRegister(w, r)
	case "/api/v1/auth/reset-password":
		h.handleReset(w, r)
	case "/api/v1/auth/logout":
		h.service.Logout()
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	case "/api/v1/auth/switch-role":
		h.handleSwitchRole(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone      string `json:"phone"`
		Password   string `json:"password"`
		VerifyCode string `json:"verify_code"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result := h.service.Login(identityapp.LoginInput{
		Phone:      req.Phone,
		Password:   req.Password,
		VerifyCode: req.VerifyCode,
	})
	if !result.Success {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   result.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   result.Token,
	})
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrganizationName string `json:"organization_name"`
		ContactName      string `json:"contact_name"`
		Phone            string `json:"phone"`
		Password         string `json:"password"`
		VerifyCode       string `json:"verify_code"`
		Role             string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result := h.service.Register(identityapp.RegisterInput{
		OrganizationName: req.OrganizationName,
		ContactName:      req.ContactName,
		Phone:            req.Phone,
		Password:         req.Password,
		VerifyCode:       req.VerifyCode,
		Role:             req.Role,
	})
	if !result.Success {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"error":   result.Error,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true})
}

func (h *AuthHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone       string `json:"phone"`
		VerifyCode  string `json:"verify_code"`
		NewPassword string `json:"new_password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result := h.service.ResetPassword(identityapp.ResetInput{
		Phone:       req.Phone,
		VerifyCode:  req.VerifyCode,
		NewPassword: req.NewPassword,
	})
	if !result.Success {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"error":   result.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AuthHandler) handleSwitchRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.service.SwitchRole(req.Role); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
