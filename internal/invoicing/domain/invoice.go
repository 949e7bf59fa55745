package invoicing

import "time"

// Invoice application status values.
const (
	ApplicationPendingReview = "pending-review"
	ApplicationApproved      = "approved"
	ApplicationRejected      = "rejected"
	ApplicationInvoiced      = "invoiced"
)

// Invoice status values.
const (
	InvoicePending = "pending"
	InvoiceIssued  = "issued"
)

// Application is a request to invoice a confirmed statement. Approval
// spawns exactly one pending Invoice linked by ApplicationID.
type Application struct {
	ID              string
	Number          string
	StatementID     string
	StatementNo     string
	CustomerName    string
	OrderNumbers    []string
	OriginalAmount  float64
	DiscountEnabled bool
	DiscountAmount  float64
	RequestedAmount float64
	InvoiceTitle    string
	TaxNo           string
	Applicant       string
	AppliedAt       time.Time
	Status          string
	Reviewer        string
	ReviewedAt      time.Time
	RejectReason    string
	Note            string
	InvoiceID       string
}

// Clone returns a detached copy of the application.
func (a Application) Clone() Application {
	clone := a
	clone.OrderNumbers = append([]string(nil), a.OrderNumbers...)
	return clone
}

// Invoice is an issued or pending invoice line.
type Invoice struct {
	ID             string
	Number         string
	CustomerName   string
	Amount         float64
	IssueDate      string
	StatementNo    string
	Status         string
	ApplicationID  string
	TaxRate        float64
	AttachmentName string
	IssuedBy       string
}
