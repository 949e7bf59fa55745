package funds

import "time"

// Ledger record types. Refund is part of the closed type set used by
// exports and reports even though no store operation produces it yet; the
// refund-to-external-account flow is not wired.
const (
	LedgerTypeDeposit = "deposit"
	LedgerTypeOccupy  = "occupy"
	LedgerTypeRelease = "release"
	LedgerTypeFreeze  = "freeze"
	LedgerTypeDeduct  = "deduct"
	LedgerTypeRefund  = "refund"
)

// LedgerRecord is an append-only audit trail entry. Records are never
// mutated or deleted; exactly one is written per account-affecting
// transition.
type LedgerRecord struct {
	ID        string
	Type      string
	Amount    float64
	RelatedNo string
	Note      string
	CreatedAt time.Time
}
