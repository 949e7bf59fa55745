package masterdata

// Gas price scope values.
const (
	PriceScopePublic    = "public"
	PriceScopeExclusive = "exclusive"
)

// Gas price shelf status values.
const (
	PriceStatusDraft     = "draft"
	PriceStatusPublished = "published"
	PriceStatusOffShelf  = "off-shelf"
)

// GasPrice is a priced offer published by an upstream source company.
// Exclusive prices are visible only to the named customer.
type GasPrice struct {
	ID            string
	SourceCompany string
	SourceSite    string
	Scope         string
	CustomerID    string
	Price         float64
	ValidFrom     string
	ValidTo       string
	TaxIncluded   bool
	Note          string
	Status        string
}

// VisibleTo reports whether a terminal customer may see this price. Only
// published prices are visible; exclusives additionally require a customer
// match.
func (p GasPrice) VisibleTo(customerID string) bool {
	if p.Status != PriceStatusPublished {
		return false
	}
	if p.Scope == PriceScopePublic {
		return true
	}
	return p.Scope == PriceScopeExclusive && p.CustomerID == customerID
}
