// Package postgres archives committed fund ledger records for finance audits.
// The in-memory store remains the operational source of truth; this trail is
// write-only from the application's point of view.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	funds "lngtrade-cloud/internal/funds/domain"
)

const defaultLedgerTable = "fund_ledgers"

// LedgerArchive is a Postgres sink for ledger records.
type LedgerArchive struct {
	db       *sql.DB
	table    string
	currency string
}

// ArchiveOption configures the archive.
type ArchiveOption func(*LedgerArchive)

// WithTable overrides the default table.
func WithTable(table string) ArchiveOption {
	return func(a *LedgerArchive) {
		if table != "" {
			a.table = table
		}
	}
}

// WithCurrency sets the currency code.
func WithCurrency(currency string) ArchiveOption {
	return func(a *LedgerArchive) {
		if currency != "" {
			a.currency = currency
		}
	}
}

// NewLedgerArchive constructs an archive with defaults.
func NewLedgerArchive(db *sql.DB, opts ...ArchiveOption) *LedgerArchive {
	archive := &LedgerArchive{
		db:       db,
		table:    defaultLedgerTable,
		currency: "CNY",
	}
	for _, opt := range opts {
		opt(archive)
	}
	return archive
}

// Save upserts one ledger record keyed by its id.
func (a *LedgerArchive) Save(ctx context.Context, record funds.LedgerRecord) error {
	if a == nil || a.db == nil {
		return errors.New("ledger archive: nil db")
	}
	if record.ID == "" {
		return errors.New("ledger archive: empty record id")
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	type,
	amount,
	currency,
	related_no,
	note,
	created_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7
)
ON CONFLICT (id)
DO UPDATE SET
	type = EXCLUDED.type,
	amount = EXCLUDED.amount,
	currency = EXCLUDED.currency,
	related_no = EXCLUDED.related_no,
	note = EXCLUDED.note`, a.table)

	_, err := a.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.Type,
		record.Amount,
		a.currency,
		record.RelatedNo,
		record.Note,
		record.CreatedAt.UTC(),
	)
	return err
}

// SaveAll archives records in order, stopping at the first failure.
func (a *LedgerArchive) SaveAll(ctx context.Context, records []funds.LedgerRecord) error {
	for _, record := range records {
		if err := a.Save(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
