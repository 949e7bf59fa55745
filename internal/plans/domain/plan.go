package plans

import "time"

// Plan status values. Approved is terminal-success and spawns an order;
// returned plans may be resubmitted or cancelled.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusReturned  = "returned"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
	StatusChanged   = "changed"
)

// Transport mode values.
const (
	TransportUpstream = "upstream"
	TransportSelf     = "self"
	TransportCarrier  = "carrier"
)

// Payment method values.
const (
	PaymentPrepaid  = "prepaid"
	PaymentPostpaid = "postpaid"
)

// Weigh difference settlement rules.
const (
	WeighRuleLoad   = "load"
	WeighRuleUnload = "unload"
	WeighRuleDelta  = "delta"
)

// Plan is a declaration of intent to purchase gas. TotalAmount is fixed at
// submission and changes only through an approved exception case.
type Plan struct {
	ID               string
	Number           string
	CustomerID       string
	CustomerName     string
	SiteID           string
	SiteName         string
	PriceID          string
	PlannedVolume    float64
	UnitPrice        float64
	EstimatedAmount  float64
	FreightFee       float64
	TotalAmount      float64
	TransportMode    string
	PaymentMethod    string
	WeighDiffRule    string
	AgreementChecked bool
	CarrierID        string
	VehicleID        string
	DriverID         string
	EscortID         string
	Status           string
	SubmittedAt      time.Time
	Reviewer         string
	RejectReason     string
}

// Reviewable reports whether the plan can be approved or rejected.
func (p Plan) Reviewable() bool {
	return p.Status == StatusSubmitted || p.Status == StatusReturned
}

// HoldsFunds reports whether the plan currently occupies account funds.
func (p Plan) HoldsFunds() bool {
	return p.Status == StatusSubmitted || p.Status == StatusReturned
}
