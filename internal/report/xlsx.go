package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"invoiceqc/internal/domain"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// WriteXLSX renders a validation report as an XLSX workbook: a Results
// sheet with one row per invoice and a Summary sheet with the batch
// counters and error tallies.
func WriteXLSX(rep domain.ValidationReport) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(resultsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(resultsSheet, cell, h)
	}
	for i := range rep.PerInvoiceResults {
		row := resultToRow(&rep.PerInvoiceResults[i])
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(resultsSheet, cell, v)
		}
	}
	_ = f.SetColWidth(resultsSheet, "A", "A", 18)
	_ = f.SetColWidth(resultsSheet, "C", "C", 18)
	_ = f.SetColWidth(resultsSheet, "F", "G", 28)
	_ = f.SetColWidth(resultsSheet, "M", "N", 48)

	if err := writeSummarySheet(f, rep.Summary); err != nil {
		return nil, err
	}

	// Drop excelize's default sheet so Results opens first.
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, s domain.BatchSummary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	row := 1
	write := func(label string, value any) {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(summarySheet, labelCell, label)
		_ = f.SetCellValue(summarySheet, valueCell, value)
		row++
	}

	write("Total invoices", s.TotalInvoices)
	write("Valid invoices", s.ValidInvoices)
	write("Invalid invoices", s.InvalidInvoices)
	write("Duplicates detected", s.DuplicatesDetected)
	row++

	for _, e := range TopErrors(s, len(s.ErrorCounts)) {
		write(e.Code, e.Count)
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 40)
	return nil
}
