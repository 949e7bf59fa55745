package funds

// Deposit status values.
const (
	DepositStatusPending   = "pending"
	DepositStatusConfirmed = "confirmed"
	DepositStatusRejected  = "rejected"
)

// DepositRecord is a customer-submitted prepayment claim. Confirmation is
// the only path that increases Account.Total.
type DepositRecord struct {
	ID           string
	CustomerName string
	Amount       float64
	PaidAt       string
	ReceiptName  string
	Status       string
	Reviewer     string
	RejectReason string
}
