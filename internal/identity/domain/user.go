package identity

// Role keys understood by the platform.
const (
	RoleTerminal = "terminal"
	RoleMarket   = "market"
	RoleDispatch = "dispatch"
	RoleFinance  = "finance"
	RoleCarrier  = "carrier"
	RoleDriver   = "driver"
)

// User is an identity record. Passwords are plain text on purpose: the
// platform simulates authentication, it does not provide it.
type User struct {
	ID               string
	Phone            string
	Password         string
	ContactName      string
	OrganizationName string
	Role             string
	CustomerID       string
}

// NormalizeRole reports whether role is a known role key.
func NormalizeRole(role string) (string, bool) {
	switch role {
	case RoleTerminal, RoleMarket, RoleDispatch, RoleFinance, RoleCarrier, RoleDriver:
		return role, true
	}
	return "", false
}
