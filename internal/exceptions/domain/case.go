package exceptions

import "time"

// Exception case types. The target entity is addressed by its business
// number, not by internal id.
const (
	TypePlanTerminate   = "plan-terminate"
	TypeOrderTerminate  = "order-terminate"
	TypePlanChange      = "plan-change"
	TypeOrderChange     = "order-change"
	TypeDeltaAdjustment = "delta-adjustment"
)

// Case status values.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Case is an ad-hoc correction request against a plan or order.
type Case struct {
	ID                  string
	Number              string
	Type                string
	TargetNo            string
	Reason              string
	ResponsibilityParty string
	Amount              float64
	Status              string
	CreatedAt           time.Time
	Reviewer            string
	ReviewedAt          time.Time
	Note                string
}

// TargetsPlan reports whether the case type addresses a plan.
func (c Case) TargetsPlan() bool {
	return c.Type == TypePlanTerminate || c.Type == TypePlanChange
}
