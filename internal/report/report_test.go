package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invoiceqc/internal/domain"
)

func f64(v float64) *float64 { return &v }

func sampleResult() domain.InvoiceValidationResult {
	date := domain.NewDate(2024, 1, 15)
	due := domain.NewDate(2024, 2, 14)
	return domain.InvoiceValidationResult{
		InvoiceID: "INV-2024-001",
		IsValid:   false,
		Errors:    []string{"business_rule:totals_mismatch"},
		Warnings:  []string{"anomaly:zero_value_invoice"},
		InvoiceData: &domain.Invoice{
			InvoiceNumber: "INV-2024-001",
			SellerName:    "Acme Corporation",
			BuyerName:     "Global Trading Inc",
			InvoiceDate:   &date,
			DueDate:       &due,
			Currency:      "USD",
			NetTotal:      f64(1000),
			TaxAmount:     f64(100),
			GrossTotal:    f64(1100),
			LineItems: []domain.LineItem{
				{Description: "Widget", Quantity: 10, UnitPrice: 100, LineTotal: 1000},
			},
		},
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 14)
	assert.Equal(t, "Invoice ID", row[0])
	assert.Equal(t, "Warnings", row[13])
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteResults([]domain.InvoiceValidationResult{sampleResult()}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "INV-2024-001", row[0])
	assert.Equal(t, "No", row[1])
	assert.Equal(t, "2024-01-15", row[3])
	assert.Equal(t, "2024-02-14", row[4])
	assert.Equal(t, "Acme Corporation", row[5])
	assert.Equal(t, "1000.00", row[8])
	assert.Equal(t, "1100.00", row[10])
	assert.Equal(t, "1", row[11])
	assert.Equal(t, "business_rule:totals_mismatch", row[12])
	assert.Equal(t, "anomaly:zero_value_invoice", row[13])
}

func TestWriteResults_NoInvoiceData(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	res := domain.InvoiceValidationResult{
		InvoiceID: "invoice-1",
		IsValid:   true,
		Errors:    []string{},
		Warnings:  []string{},
	}
	require.NoError(t, w.WriteResults([]domain.InvoiceValidationResult{res}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "invoice-1", row[0])
	assert.Equal(t, "Yes", row[1])
	assert.Empty(t, row[2])
	assert.Empty(t, row[10])
}

func TestWriteXLSX(t *testing.T) {
	rep := domain.ValidationReport{
		Summary: domain.BatchSummary{
			TotalInvoices:   1,
			InvalidInvoices: 1,
			ErrorCounts:     map[string]int{"business_rule:totals_mismatch": 1},
		},
		PerInvoiceResults: []domain.InvoiceValidationResult{sampleResult()},
	}

	data, err := WriteXLSX(rep)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{resultsSheet, summarySheet}, f.GetSheetList())

	id, err := f.GetCellValue(resultsSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-001", id)

	total, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "1", total)
}

func TestTopErrors(t *testing.T) {
	s := domain.BatchSummary{ErrorCounts: map[string]int{
		"missing_field:currency":        3,
		"business_rule:totals_mismatch": 5,
		"anomaly:duplicate_invoice":     3,
	}}

	top := TopErrors(s, 2)
	require.Len(t, top, 2)
	assert.Equal(t, ErrorCount{"business_rule:totals_mismatch", 5}, top[0])
	assert.Equal(t, ErrorCount{"anomaly:duplicate_invoice", 3}, top[1])
}

func TestFormatSummary(t *testing.T) {
	s := domain.BatchSummary{
		TotalInvoices:      3,
		ValidInvoices:      1,
		InvalidInvoices:    2,
		DuplicatesDetected: 1,
		ErrorCounts:        map[string]int{"missing_field:currency": 2},
	}

	out := FormatSummary(s)
	assert.Contains(t, out, "VALIDATION SUMMARY")
	assert.Contains(t, out, "Total invoices processed: 3")
	assert.Contains(t, out, "Duplicates detected:      1")
	assert.Contains(t, out, "missing_field:currency: 2")
}

func TestFormatSummary_Empty(t *testing.T) {
	out := FormatSummary(domain.BatchSummary{})
	assert.Contains(t, out, "Total invoices processed: 0")
	assert.NotContains(t, out, "Duplicates detected")
	assert.NotContains(t, out, "Top Error Types")
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"January Batch", "January_Batch"},
		{"a//b??c", "a_b_c"},
		{"___x___", "x"},
		{"already-clean_name", "already-clean_name"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in))
	}
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("January Batch", "csv")
	assert.Regexp(t, `^January_Batch_\d{4}-\d{2}-\d{2}\.csv$`, name)
}
