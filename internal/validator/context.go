package validator

import (
	"fmt"
	"strings"

	"invoiceqc/internal/domain"
)

// DefaultAmountTolerance is the absolute tolerance used for all
// float-equality business checks.
const DefaultAmountTolerance = 0.01

// Options tunes a validation run.
type Options struct {
	// AmountTolerance is the maximum absolute difference two amounts may
	// have and still be considered equal. Zero means DefaultAmountTolerance.
	AmountTolerance float64
	// Currencies is the accepted ISO 4217 set. Empty means
	// domain.DefaultCurrencies.
	Currencies []string
}

// Context carries state scoped to a single batch validation run. A fresh
// Context is created per ValidateBatch call; duplicate detection therefore
// never leaks across batches.
type Context struct {
	tolerance  float64
	currencies map[string]struct{}
	seen       map[string]struct{}
}

// NewContext builds a batch context from opts, applying defaults for zero
// values.
func NewContext(opts Options) *Context {
	tolerance := opts.AmountTolerance
	if tolerance <= 0 {
		tolerance = DefaultAmountTolerance
	}
	currencies := opts.Currencies
	if len(currencies) == 0 {
		currencies = domain.DefaultCurrencies
	}
	set := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		set[strings.ToUpper(c)] = struct{}{}
	}
	return &Context{
		tolerance:  tolerance,
		currencies: set,
		seen:       make(map[string]struct{}),
	}
}

// Tolerance returns the configured amount tolerance.
func (c *Context) Tolerance() float64 { return c.tolerance }

// CurrencySupported reports whether code (case-insensitive) is in the
// accepted currency set.
func (c *Context) CurrencySupported(code string) bool {
	_, ok := c.currencies[strings.ToUpper(code)]
	return ok
}

// fingerprint identifies an invoice for duplicate detection: lowercased and
// trimmed invoice number and seller name plus the gross total formatted to
// two decimals. ok is false when any part is missing, in which case the
// duplicate check does not apply.
func fingerprint(inv *domain.Invoice) (string, bool) {
	number := strings.ToLower(strings.TrimSpace(inv.InvoiceNumber))
	seller := strings.ToLower(strings.TrimSpace(inv.SellerName))
	if number == "" || seller == "" || inv.GrossTotal == nil {
		return "", false
	}
	return fmt.Sprintf("%s|%s|%.2f", number, seller, *inv.GrossTotal), true
}

// markSeen records the invoice's fingerprint and reports whether the same
// fingerprint was already present. Only the second and subsequent
// occurrences report true.
func (c *Context) markSeen(inv *domain.Invoice) (duplicate, ok bool) {
	key, ok := fingerprint(inv)
	if !ok {
		return false, false
	}
	if _, dup := c.seen[key]; dup {
		return true, true
	}
	c.seen[key] = struct{}{}
	return false, true
}
