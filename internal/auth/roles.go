package auth

// Role represents a user role.
type Role string

const (
	RoleTerminal Role = "terminal"
	RoleMarket   Role = "market"
	RoleDispatch Role = "dispatch"
	RoleFinance  Role = "finance"
	RoleCarrier  Role = "carrier"
	RoleDriver   Role = "driver"
)

// NormalizeRole validates and normalizes a role string.
func NormalizeRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleTerminal, RoleMarket, RoleDispatch, RoleFinance, RoleCarrier, RoleDriver:
		return Role(value), true
	default:
		return "", false
	}
}

// RoleIn returns true when role is one of allowed.
func RoleIn(role Role, allowed []Role) bool {
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}
