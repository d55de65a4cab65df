package validator

import (
	"strings"

	"invoiceqc/internal/domain"
)

// completenessRules checks that required fields are present and non-empty.
// They run first so missing data surfaces before the dependent checks skip.
func completenessRules() []Rule {
	required := []struct {
		field       string
		description string
		present     func(*domain.Invoice) bool
	}{
		{
			field:       "invoice_number",
			description: "Every invoice must have a non-empty invoice number",
			present:     func(inv *domain.Invoice) bool { return strings.TrimSpace(inv.InvoiceNumber) != "" },
		},
		{
			field:       "invoice_date",
			description: "Invoice date must be present",
			present:     func(inv *domain.Invoice) bool { return inv.InvoiceDate != nil },
		},
		{
			field:       "seller_name",
			description: "Seller name must not be empty",
			present:     func(inv *domain.Invoice) bool { return strings.TrimSpace(inv.SellerName) != "" },
		},
		{
			field:       "buyer_name",
			description: "Buyer name must not be empty",
			present:     func(inv *domain.Invoice) bool { return strings.TrimSpace(inv.BuyerName) != "" },
		},
		{
			field:       "currency",
			description: "Currency must be present",
			present:     func(inv *domain.Invoice) bool { return strings.TrimSpace(inv.Currency) != "" },
		},
	}

	rules := make([]Rule, 0, len(required))
	for _, req := range required {
		req := req
		code := ruleCode(domain.CategoryCompleteness, req.field)
		rules = append(rules, Rule{
			Code:        code,
			Description: req.description,
			Category:    domain.CategoryCompleteness,
			Severity:    domain.SeverityError,
			Check: func(inv *domain.Invoice, _ *Context) []Finding {
				if req.present(inv) {
					return nil
				}
				return []Finding{newFinding(code, domain.SeverityError, req.field+" is missing or empty")}
			},
		})
	}
	return rules
}
