package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	funds "lngtrade-cloud/internal/funds/domain"
	settlement "lngtrade-cloud/internal/settlement/domain"
)

// BuildStatementPDF renders a minimal PDF for a reconciliation statement.
func BuildStatementPDF(stmt settlement.Statement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Reconciliation Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Number: %s", stmt.Number))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", stmt.Period))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", stmt.Status))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Amount (CNY): %.2f", stmt.TotalAmount))
	pdf.Ln(8)

	// Orders table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(140, 6, "Order Number", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, no := range stmt.OrderNumbers {
		pdf.CellFormat(140, 6, no, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	// Stamp log table
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Actor Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, "Actor", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Stamped At", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, entry := range stmt.StampLogs {
		pdf.CellFormat(40, 6, entry.ActorType, "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, entry.Actor, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, entry.StampedAt.Format(time.RFC3339), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildStatementXLSX renders a minimal XLSX for a reconciliation statement.
func BuildStatementXLSX(stmt settlement.Statement) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	stampsSheet := "stamps"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(stampsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Reconciliation Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Number")
	_ = f.SetCellValue(summarySheet, "B3", stmt.Number)
	_ = f.SetCellValue(summarySheet, "A4", "Customer")
	_ = f.SetCellValue(summarySheet, "B4", stmt.CustomerName)
	_ = f.SetCellValue(summarySheet, "A5", "Period")
	_ = f.SetCellValue(summarySheet, "B5", stmt.Period)
	_ = f.SetCellValue(summarySheet, "A6", "Status")
	_ = f.SetCellValue(summarySheet, "B6", stmt.Status)
	_ = f.SetCellValue(summarySheet, "A7", "Total Amount")
	_ = f.SetCellValue(summarySheet, "B7", stmt.TotalAmount)
	for i, no := range stmt.OrderNumbers {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", 9+i), "Order")
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", 9+i), no)
	}

	_ = f.SetCellValue(stampsSheet, "A1", "Actor Type")
	_ = f.SetCellValue(stampsSheet, "B1", "Actor")
	_ = f.SetCellValue(stampsSheet, "C1", "Stamped At")
	for i, entry := range stmt.StampLogs {
		row := i + 2
		_ = f.SetCellValue(stampsSheet, fmt.Sprintf("A%d", row), entry.ActorType)
		_ = f.SetCellValue(stampsSheet, fmt.Sprintf("B%d", row), entry.Actor)
		_ = f.SetCellValue(stampsSheet, fmt.Sprintf("C%d", row), entry.StampedAt.Format(time.RFC3339))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildLedgerXLSX renders the fund ledger trail as an XLSX for finance.
func BuildLedgerXLSX(account funds.Account, records []funds.LedgerRecord) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "ledger"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Total")
	_ = f.SetCellValue(sheet, "B1", account.Total)
	_ = f.SetCellValue(sheet, "C1", "Available")
	_ = f.SetCellValue(sheet, "D1", account.Available)
	_ = f.SetCellValue(sheet, "E1", "Occupied")
	_ = f.SetCellValue(sheet, "F1", account.Occupied)
	_ = f.SetCellValue(sheet, "G1", "Frozen")
	_ = f.SetCellValue(sheet, "H1", account.Frozen)

	_ = f.SetCellValue(sheet, "A3", "Type")
	_ = f.SetCellValue(sheet, "B3", "Amount")
	_ = f.SetCellValue(sheet, "C3", "Related No")
	_ = f.SetCellValue(sheet, "D3", "Note")
	_ = f.SetCellValue(sheet, "E3", "Created At")
	for i, record := range records {
		row := i + 4
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), record.Type)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), record.Amount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), record.RelatedNo)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), record.Note)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), record.CreatedAt.Format(time.RFC3339))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
