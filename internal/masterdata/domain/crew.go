package masterdata

// Person role values.
const (
	PersonRoleDriver = "driver"
	PersonRoleEscort = "escort"
)

// Vehicle is a transport vehicle with a certification validity flag.
type Vehicle struct {
	ID         string
	PlateNo    string
	Capacity   float64
	Valid      bool
	CertExpiry string
}

// Person is a driver or escort with a certification validity flag.
type Person struct {
	ID         string
	Name       string
	Role       string
	Valid      bool
	CertExpiry string
}
