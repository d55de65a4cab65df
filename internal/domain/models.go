package domain

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date (no time component) that marshals as "2006-01-02".
type Date struct {
	time.Time
}

// NewDate builds a Date in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	// Accept a full RFC 3339 timestamp too; only the date part is kept.
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, ErrFormat)
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// LineItem is a single row on an invoice.
type LineItem struct {
	Description   string   `json:"description"`
	Quantity      float64  `json:"quantity"`
	UnitPrice     float64  `json:"unit_price"`
	LineTotal     float64  `json:"line_total"`
	TaxRate       *float64 `json:"tax_rate"`
	UnitOfMeasure *string  `json:"unit_of_measure"`
}

// Invoice is the structured record produced by extraction (or supplied
// directly as JSON) and consumed by validation. Optional fields and fields
// that failed to normalize are nil; their absence surfaces as validation
// findings, never as extraction errors. The record is treated as immutable
// once built.
type Invoice struct {
	InvoiceNumber     string     `json:"invoice_number"`
	ExternalReference *string    `json:"external_reference"`
	SellerName        string     `json:"seller_name"`
	SellerTaxID       *string    `json:"seller_tax_id"`
	SellerAddress     *string    `json:"seller_address"`
	BuyerName         string     `json:"buyer_name"`
	BuyerTaxID        *string    `json:"buyer_tax_id"`
	BuyerAddress      *string    `json:"buyer_address"`
	InvoiceDate       *Date      `json:"invoice_date"`
	DueDate           *Date      `json:"due_date"`
	Currency          string     `json:"currency"`
	NetTotal          *float64   `json:"net_total"`
	TaxAmount         *float64   `json:"tax_amount"`
	GrossTotal        *float64   `json:"gross_total"`
	PaymentTerms      *string    `json:"payment_terms"`
	LineItems         []LineItem `json:"line_items"`
}

// InvoiceValidationResult is the validation outcome for one invoice.
// Errors and warnings hold rule codes in finding order; a code repeats once
// per occurrence (e.g. one entry per miscalculated line item).
type InvoiceValidationResult struct {
	InvoiceID   string   `json:"invoice_id"`
	IsValid     bool     `json:"is_valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	InvoiceData *Invoice `json:"invoice_data,omitempty"`
}

// BatchSummary aggregates one validation batch. ErrorCounts tallies every
// finding code, error and warning severity alike.
type BatchSummary struct {
	TotalInvoices      int            `json:"total_invoices"`
	ValidInvoices      int            `json:"valid_invoices"`
	InvalidInvoices    int            `json:"invalid_invoices"`
	DuplicatesDetected int            `json:"duplicates_detected"`
	ErrorCounts        map[string]int `json:"error_counts"`
}

// ValidationReport is the primary output shape for validation operations.
type ValidationReport struct {
	Summary           BatchSummary              `json:"summary"`
	PerInvoiceResults []InvoiceValidationResult `json:"per_invoice_results"`
}

// ExtractionFailure records one input file that could not be processed.
// It never aborts the rest of the batch.
type ExtractionFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}
