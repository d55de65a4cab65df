// Package validator implements the invoice rule engine and batch validation.
// Rules are organized in four families (completeness, format, business,
// anomaly) and registered as an ordered slice so callers can introspect and
// iterate them uniformly.
package validator

import (
	"invoiceqc/internal/domain"
)

// Finding is a single triggered rule occurrence. A rule may emit several
// findings per invoice (e.g. one per miscalculated line item).
type Finding struct {
	Code     string          `json:"code"`
	Severity domain.Severity `json:"severity"`
	Message  string          `json:"message"`
}

// CheckFn evaluates one rule against an invoice. The batch Context carries
// state shared across a single validation run, such as the duplicate
// fingerprint set and the configured tolerance.
type CheckFn func(inv *domain.Invoice, batch *Context) []Finding

// Rule is a single built-in validation rule.
type Rule struct {
	Code        string              `json:"code"`
	Description string              `json:"description"`
	Category    domain.RuleCategory `json:"category"`
	Severity    domain.Severity     `json:"severity"`
	Check       CheckFn             `json:"-"`
}

// ruleCode joins a category prefix and a rule name, e.g.
// "missing_field:invoice_number".
func ruleCode(category domain.RuleCategory, name string) string {
	return string(category) + ":" + name
}

func newFinding(code string, severity domain.Severity, message string) Finding {
	return Finding{Code: code, Severity: severity, Message: message}
}
