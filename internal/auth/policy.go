package auth

import (
	"net/http"
	"strings"
)

// Policy determines allowed roles by request.
type Policy struct {
	ExemptPaths    map[string]struct{}
	ExemptPrefixes []string
}

// NewDefaultPolicy builds a default policy with exemptions.
func NewDefaultPolicy(exemptPaths []string, exemptPrefixes []string) Policy {
	set := make(map[string]struct{}, len(exemptPaths))
	for _, path := range exemptPaths {
		set[path] = struct{}{}
	}
	return Policy{ExemptPaths: set, ExemptPrefixes: exemptPrefixes}
}

// IsExempt returns true when a request should skip auth/RBAC.
func (p Policy) IsExempt(r *http.Request) bool {
	if r == nil {
		return true
	}
	if _, ok := p.ExemptPaths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range p.ExemptPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

var anyRole = []Role{RoleTerminal, RoleMarket, RoleDispatch, RoleFinance, RoleCarrier, RoleDriver}

// AllowedRoles resolves the roles permitted for the request.
func (p Policy) AllowedRoles(r *http.Request) ([]Role, bool) {
	if r == nil {
		return nil, false
	}
	path := r.URL.Path
	method := r.Method

	switch {
	case path == "/api/v1/plans" && method == http.MethodPost:
		return []Role{RoleTerminal}, true
	case strings.HasSuffix(path, "/review") && strings.HasPrefix(path, "/api/v1/plans/"):
		return []Role{RoleMarket}, true
	case strings.HasSuffix(path, "/cancel") && strings.HasPrefix(path, "/api/v1/plans/"):
		return []Role{RoleTerminal, RoleMarket}, true
	case strings.HasPrefix(path, "/api/v1/orders/"):
		switch {
		case strings.HasSuffix(path, "/supplement/review"):
			return []Role{RoleDispatch}, true
		case strings.HasSuffix(path, "/supplement"):
			return []Role{RoleTerminal, RoleCarrier}, true
		case strings.HasSuffix(path, "/load"), strings.HasSuffix(path, "/unload"):
			return []Role{RoleDispatch, RoleDriver}, true
		case strings.HasSuffix(path, "/resolve-diff"):
			return []Role{RoleDispatch}, true
		case strings.HasSuffix(path, "/accept"):
			return []Role{RoleTerminal}, true
		case strings.HasSuffix(path, "/archive"), strings.HasSuffix(path, "/unarchive"):
			return []Role{RoleDispatch, RoleFinance}, true
		}
	case path == "/api/v1/deposits" && method == http.MethodPost:
		return []Role{RoleTerminal}, true
	case strings.HasSuffix(path, "/review") && strings.HasPrefix(path, "/api/v1/deposits/"):
		return []Role{RoleFinance}, true
	case strings.HasSuffix(path, "/stamp") && strings.HasPrefix(path, "/api/v1/statements/"):
		return []Role{RoleFinance, RoleTerminal}, true
	case strings.Contains(path, "/export.") && strings.HasPrefix(path, "/api/v1/statements/"):
		return []Role{RoleFinance}, true
	case path == "/api/v1/exports/ledger.xlsx":
		return []Role{RoleFinance}, true
	case path == "/api/v1/upstream-archives" && method == http.MethodPost:
		return []Role{RoleMarket}, true
	case path == "/api/v1/invoice-applications" && method == http.MethodPost:
		return []Role{RoleTerminal}, true
	case strings.HasSuffix(path, "/review") && strings.HasPrefix(path, "/api/v1/invoice-applications/"):
		return []Role{RoleFinance}, true
	case strings.HasSuffix(path, "/issue") && strings.HasPrefix(path, "/api/v1/invoices/"):
		return []Role{RoleFinance}, true
	case strings.HasPrefix(path, "/api/v1/onboarding/"):
		if strings.HasSuffix(path, "/review") {
			return []Role{RoleMarket}, true
		}
		return []Role{RoleTerminal}, true
	case strings.HasPrefix(path, "/api/v1/exceptions"):
		if method == http.MethodGet {
			return anyRole, true
		}
		return []Role{RoleMarket, RoleDispatch}, true
	case path == "/api/v1/reports/daily-plan" && method == http.MethodPost:
		return []Role{RoleMarket}, true
	case strings.HasPrefix(path, "/api/v1/masterdata/"):
		if method == http.MethodGet {
			return anyRole, true
		}
		return []Role{RoleMarket, RoleDispatch}, true
	}

	if strings.HasPrefix(path, "/api/") {
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			return anyRole, true
		}
		return []Role{RoleMarket, RoleDispatch, RoleFinance}, true
	}
	return nil, false
}
