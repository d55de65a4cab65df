package validator

import (
	"fmt"
	"strings"

	"invoiceqc/internal/domain"
)

func formatRules() []Rule {
	currencyCode := ruleCode(domain.CategoryFormat, "currency")
	totalsCode := ruleCode(domain.CategoryFormat, "totals")

	return []Rule{
		{
			Code:        currencyCode,
			Description: "Currency must be a supported ISO 4217 code",
			Category:    domain.CategoryFormat,
			Severity:    domain.SeverityError,
			Check: func(inv *domain.Invoice, batch *Context) []Finding {
				// An empty currency is the completeness rule's finding.
				if strings.TrimSpace(inv.Currency) == "" {
					return nil
				}
				if batch.CurrencySupported(inv.Currency) {
					return nil
				}
				return []Finding{newFinding(currencyCode, domain.SeverityError,
					fmt.Sprintf("currency %q is not a supported ISO 4217 code", inv.Currency))}
			},
		},
		{
			Code:        totalsCode,
			Description: "Net total, tax amount, and gross total must all be numeric",
			Category:    domain.CategoryFormat,
			Severity:    domain.SeverityError,
			Check: func(inv *domain.Invoice, _ *Context) []Finding {
				var missing []string
				if inv.NetTotal == nil {
					missing = append(missing, "net_total")
				}
				if inv.TaxAmount == nil {
					missing = append(missing, "tax_amount")
				}
				if inv.GrossTotal == nil {
					missing = append(missing, "gross_total")
				}
				if len(missing) == 0 {
					return nil
				}
				return []Finding{newFinding(totalsCode, domain.SeverityError,
					"totals are missing or non-numeric: "+strings.Join(missing, ", "))}
			},
		},
	}
}
