package orders

// Order status values. Settling is the exception branch entered when the
// load/unload difference exceeds the threshold or an exception case is
// approved against the order.
const (
	StatusPendingSupplement = "pending-supplement"
	StatusOrdered           = "ordered"
	StatusStocking          = "stocking"
	StatusLoaded            = "loaded"
	StatusTransporting      = "transporting"
	StatusArrived           = "arrived"
	StatusPendingAcceptance = "pending-acceptance"
	StatusAccepted          = "accepted"
	StatusSettling          = "settling"
	StatusSettled           = "settled"
	StatusArchived          = "archived"
)

// Supplement review status values.
const (
	SupplementPending  = "pending"
	SupplementApproved = "approved"
	SupplementRejected = "rejected"
)

// DefaultDiffThreshold is the fixed load/unload tolerance in tonnes.
const DefaultDiffThreshold = 0.5

// Order is the execution record spawned 1:1 from an approved plan.
// Weights are optional until the corresponding confirmation happens, hence
// the pointer fields.
type Order struct {
	ID                 string
	Number             string
	PlanID             string
	CustomerName       string
	SiteName           string
	TransportMode      string
	WeighDiffRule      string
	Status             string
	Threshold          float64
	UpstreamOrderNo    string
	LoadSiteName       string
	EstimatedLoadAt    string
	SupplementDocName  string
	SupplementStatus   string
	SupplementReviewer string
	SupplementNote     string
	LoadWeight         *float64
	UnloadWeight       *float64
	SettlementWeight   *float64
	DiffAbnormal       bool
	ExceptionNote      string
}

// Archivable reports whether the order can be archived.
func (o Order) Archivable() bool {
	return o.Status == StatusAccepted || o.Status == StatusSettled
}

// Clone returns a detached copy of the order.
func (o Order) Clone() Order {
	clone := o
	clone.LoadWeight = cloneFloat(o.LoadWeight)
	clone.UnloadWeight = cloneFloat(o.UnloadWeight)
	clone.SettlementWeight = cloneFloat(o.SettlementWeight)
	return clone
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	copy := *v
	return &copy
}

// Float returns a pointer to v, for literal weight fields.
func Float(v float64) *float64 {
	return &v
}
