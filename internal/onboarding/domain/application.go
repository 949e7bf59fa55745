package onboarding

import "time"

// Onboarding application status values. Activated is a permanent terminal
// state; no operation regresses it.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusActivated = "activated"
)

// Organization types allowed to onboard.
const (
	OrgUpstream = "upstream"
	OrgTerminal = "terminal"
	OrgCarrier  = "carrier"
)

// Customer levels assigned on approval.
const (
	LevelA = "A"
	LevelB = "B"
	LevelC = "C"
)

// Application is a counterparty registration request.
type Application struct {
	ID                    string
	OrganizationName      string
	OrganizationType      string
	ContactName           string
	ContactPhone          string
	SubmittedAt           time.Time
	Status                string
	Level                 string
	Reviewer              string
	RejectReason          string
	ContractName          string
	ContractEffectiveDate string
}
