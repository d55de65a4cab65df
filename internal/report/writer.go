// Package report renders validation reports for people: CSV and XLSX
// exports plus the plain-text batch summary printed by the CLI.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"invoiceqc/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Invoice ID",
	"Valid",
	"Invoice Number",
	"Invoice Date",
	"Due Date",
	"Seller Name",
	"Buyer Name",
	"Currency",
	"Net Total",
	"Tax Amount",
	"Gross Total",
	"Line Item Count",
	"Errors",
	"Warnings",
}

// Writer wraps csv.Writer for exporting validation results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResults converts per-invoice validation results to CSV rows and
// writes them.
func (w *Writer) WriteResults(results []domain.InvoiceValidationResult) error {
	for i := range results {
		if err := w.csv.Write(resultToRow(&results[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// resultToRow converts one validation result to a string slice matching
// columns. Invoice columns stay empty when the result carries no invoice
// data.
func resultToRow(res *domain.InvoiceValidationResult) []string {
	row := make([]string, len(columns))

	row[0] = res.InvoiceID
	row[1] = formatBool(res.IsValid)
	row[12] = strings.Join(res.Errors, "; ")
	row[13] = strings.Join(res.Warnings, "; ")

	inv := res.InvoiceData
	if inv == nil {
		return row
	}

	row[2] = inv.InvoiceNumber
	row[3] = formatDate(inv.InvoiceDate)
	row[4] = formatDate(inv.DueDate)
	row[5] = inv.SellerName
	row[6] = inv.BuyerName
	row[7] = inv.Currency
	row[8] = formatMoney(inv.NetTotal)
	row[9] = formatMoney(inv.TaxAmount)
	row[10] = formatMoney(inv.GrossTotal)
	row[11] = strconv.Itoa(len(inv.LineItems))

	return row
}

func formatMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatDate(d *domain.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a batch name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_batch_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(batchName, ext string) string {
	sanitized := SanitizeFilename(batchName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
