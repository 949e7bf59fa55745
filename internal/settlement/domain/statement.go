package settlement

import "time"

// Statement status values. Offline-confirmed is reachable only through
// external seeding and counts as double-confirmed for invoicing.
const (
	StatusDraft            = "draft"
	StatusPlatformStamped  = "platform-stamped"
	StatusDoubleConfirmed  = "double-confirmed"
	StatusOfflineConfirmed = "offline-confirmed"
)

// Stamp actor types.
const (
	ActorPlatform = "platform"
	ActorCustomer = "customer"
)

// StampLog is an immutable signature log entry.
type StampLog struct {
	ActorType string
	Actor     string
	StampedAt time.Time
}

// Statement is a period reconciliation summary signed in two phases:
// platform stamp from draft, then customer stamp from platform-stamped.
type Statement struct {
	ID           string
	Number       string
	CustomerName string
	Period       string
	Status       string
	TotalAmount  float64
	OrderNumbers []string
	StampLogs    []StampLog
}

// Confirmed reports whether the statement is eligible for invoicing.
func (s Statement) Confirmed() bool {
	return s.Status == StatusDoubleConfirmed || s.Status == StatusOfflineConfirmed
}

// Clone returns a detached copy of the statement.
func (s Statement) Clone() Statement {
	clone := s
	clone.OrderNumbers = append([]string(nil), s.OrderNumbers...)
	clone.StampLogs = append([]StampLog(nil), s.StampLogs...)
	return clone
}
