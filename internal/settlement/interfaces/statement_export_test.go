package interfaces

import (
	"bytes"
	"testing"

	"lngtrade-cloud/internal/state"
)

func TestBuildStatementExports(t *testing.T) {
	seed := state.Seed()
	stmt := *seed.FindStatement("rc-202601-003")

	pdfBytes, err := BuildStatementPDF(stmt)
	if err != nil {
		t.Fatalf("BuildStatementPDF: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("not a PDF: %q", pdfBytes[:8])
	}

	xlsxBytes, err := BuildStatementXLSX(stmt)
	if err != nil {
		t.Fatalf("BuildStatementXLSX: %v", err)
	}
	// XLSX is a zip container.
	if !bytes.HasPrefix(xlsxBytes, []byte("PK")) {
		t.Fatalf("not an XLSX: %q", xlsxBytes[:4])
	}
}

func TestBuildLedgerXLSX(t *testing.T) {
	seed := state.Seed()

	out, err := BuildLedgerXLSX(seed.Account, seed.Ledgers)
	if err != nil {
		t.Fatalf("BuildLedgerXLSX: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Fatalf("not an XLSX: %q", out[:4])
	}
}
