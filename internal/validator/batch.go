package validator

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"invoiceqc/internal/domain"
)

// Engine runs the rule registry over invoice batches.
type Engine struct {
	rules []Rule
	opts  Options
}

// NewEngine builds an engine with the full built-in registry.
func NewEngine(opts Options) *Engine {
	return &Engine{rules: Rules(), opts: opts}
}

// ValidateBatch runs the full registry with default options.
func ValidateBatch(invoices []domain.Invoice) ([]domain.InvoiceValidationResult, domain.BatchSummary) {
	return NewEngine(Options{}).ValidateBatch(invoices)
}

// ValidateBatch validates every invoice in input order and aggregates the
// batch summary. Batch-scoped state (the duplicate fingerprint set) is
// created fresh per call, so repeated calls with the same input produce the
// same output.
func (e *Engine) ValidateBatch(invoices []domain.Invoice) ([]domain.InvoiceValidationResult, domain.BatchSummary) {
	batch := NewContext(e.opts)
	results := make([]domain.InvoiceValidationResult, 0, len(invoices))
	summary := domain.BatchSummary{
		TotalInvoices: len(invoices),
		ErrorCounts:   make(map[string]int),
	}

	for i := range invoices {
		result := e.validateOne(&invoices[i], i, batch)

		if result.IsValid {
			summary.ValidInvoices++
		} else {
			summary.InvalidInvoices++
		}
		for _, code := range result.Errors {
			summary.ErrorCounts[code]++
		}
		for _, code := range result.Warnings {
			summary.ErrorCounts[code]++
			if code == duplicateInvoiceCode {
				summary.DuplicatesDetected++
			}
		}

		results = append(results, result)
	}

	return results, summary
}

// Report validates invoices and wraps the outcome in a ValidationReport.
func (e *Engine) Report(invoices []domain.Invoice) domain.ValidationReport {
	results, summary := e.ValidateBatch(invoices)
	return domain.ValidationReport{Summary: summary, PerInvoiceResults: results}
}

// validateOne runs every rule against a single invoice. idx is the 0-based
// batch position, used for the invoice-<n> identifier fallback.
func (e *Engine) validateOne(inv *domain.Invoice, idx int, batch *Context) domain.InvoiceValidationResult {
	id := strings.TrimSpace(inv.InvoiceNumber)
	if id == "" {
		id = fmt.Sprintf("invoice-%d", idx+1)
	}

	errs := make([]string, 0)
	warns := make([]string, 0)
	for _, rule := range e.rules {
		for _, f := range runRule(rule, inv, batch) {
			if f.Severity == domain.SeverityError {
				errs = append(errs, f.Code)
			} else {
				warns = append(warns, f.Code)
			}
		}
	}

	return domain.InvoiceValidationResult{
		InvoiceID:   id,
		IsValid:     len(errs) == 0,
		Errors:      errs,
		Warnings:    warns,
		InvoiceData: inv,
	}
}

// runRule isolates rule panics: a failing rule degrades to "not evaluated"
// for that invoice instead of aborting the batch.
func runRule(rule Rule, inv *domain.Invoice, batch *Context) (findings []Finding) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("rule", rule.Code).Interface("panic", r).Msg("validation rule panicked")
			findings = nil
		}
	}()
	return rule.Check(inv, batch)
}
