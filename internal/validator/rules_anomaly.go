package validator

import (
	"fmt"

	"invoiceqc/internal/domain"
)

// duplicateInvoiceCode is referenced by the batch summary to count
// duplicates, so it lives outside the registry builder.
var duplicateInvoiceCode = ruleCode(domain.CategoryAnomaly, "duplicate_invoice")

// Anomaly rules flag suspicious but not necessarily wrong data. They are all
// warning severity: credit notes legitimately carry negative amounts and a
// recurring fingerprint may be a legitimate resend, so none of these make an
// invoice invalid on their own.
func anomalyRules() []Rule {
	negative := []struct {
		name  string
		field string
		value func(*domain.Invoice) *float64
	}{
		{"negative_net_total", "net_total", func(inv *domain.Invoice) *float64 { return inv.NetTotal }},
		{"negative_tax_amount", "tax_amount", func(inv *domain.Invoice) *float64 { return inv.TaxAmount }},
		{"negative_gross_total", "gross_total", func(inv *domain.Invoice) *float64 { return inv.GrossTotal }},
	}

	rules := make([]Rule, 0, len(negative)+2)
	for _, neg := range negative {
		neg := neg
		code := ruleCode(domain.CategoryAnomaly, neg.name)
		rules = append(rules, Rule{
			Code:        code,
			Description: fmt.Sprintf("The %s should not be negative", neg.field),
			Category:    domain.CategoryAnomaly,
			Severity:    domain.SeverityWarning,
			Check: func(inv *domain.Invoice, _ *Context) []Finding {
				v := neg.value(inv)
				if v == nil || *v >= 0 {
					return nil
				}
				return []Finding{newFinding(code, domain.SeverityWarning,
					fmt.Sprintf("%s is negative: %.2f", neg.field, *v))}
			},
		})
	}

	zeroCode := ruleCode(domain.CategoryAnomaly, "zero_value_invoice")
	rules = append(rules, Rule{
		Code:        zeroCode,
		Description: "A zero gross total usually indicates an extraction error",
		Category:    domain.CategoryAnomaly,
		Severity:    domain.SeverityWarning,
		Check: func(inv *domain.Invoice, _ *Context) []Finding {
			if inv.GrossTotal == nil || *inv.GrossTotal != 0 {
				return nil
			}
			return []Finding{newFinding(zeroCode, domain.SeverityWarning, "gross total is zero")}
		},
	})

	rules = append(rules, Rule{
		Code:        duplicateInvoiceCode,
		Description: "The same invoice number, seller, and gross total should appear once per batch",
		Category:    domain.CategoryAnomaly,
		Severity:    domain.SeverityWarning,
		Check: func(inv *domain.Invoice, batch *Context) []Finding {
			duplicate, ok := batch.markSeen(inv)
			if !ok || !duplicate {
				return nil
			}
			return []Finding{newFinding(duplicateInvoiceCode, domain.SeverityWarning,
				fmt.Sprintf("invoice %s from %s was already seen in this batch",
					inv.InvoiceNumber, inv.SellerName))}
		},
	})

	return rules
}
