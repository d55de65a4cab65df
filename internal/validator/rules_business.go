package validator

import (
	"fmt"
	"math"

	"invoiceqc/internal/domain"
)

// Business rules compare amounts the invoice asserts against amounts it
// implies. Each check skips when its inputs are absent; the format rules
// already report those.
func businessRules() []Rule {
	lineItemsCode := ruleCode(domain.CategoryBusiness, "line_items_mismatch")
	totalsCode := ruleCode(domain.CategoryBusiness, "totals_mismatch")
	dueDateCode := ruleCode(domain.CategoryBusiness, "invalid_due_date")
	itemCalcCode := ruleCode(domain.CategoryBusiness, "line_item_calculation_error")

	return []Rule{
		{
			Code:        lineItemsCode,
			Description: "Sum of line item totals should equal the net total",
			Category:    domain.CategoryBusiness,
			Severity:    domain.SeverityError,
			Check: func(inv *domain.Invoice, batch *Context) []Finding {
				if len(inv.LineItems) == 0 || inv.NetTotal == nil {
					return nil
				}
				var sum float64
				for i := range inv.LineItems {
					sum += inv.LineItems[i].LineTotal
				}
				if math.Abs(sum-*inv.NetTotal) <= batch.Tolerance() {
					return nil
				}
				return []Finding{newFinding(lineItemsCode, domain.SeverityError,
					fmt.Sprintf("line items sum to %.2f but net total is %.2f", sum, *inv.NetTotal))}
			},
		},
		{
			Code:        totalsCode,
			Description: "Net total plus tax amount should equal the gross total",
			Category:    domain.CategoryBusiness,
			Severity:    domain.SeverityError,
			Check: func(inv *domain.Invoice, batch *Context) []Finding {
				if inv.NetTotal == nil || inv.TaxAmount == nil || inv.GrossTotal == nil {
					return nil
				}
				expected := *inv.NetTotal + *inv.TaxAmount
				if math.Abs(expected-*inv.GrossTotal) <= batch.Tolerance() {
					return nil
				}
				return []Finding{newFinding(totalsCode, domain.SeverityError,
					fmt.Sprintf("net %.2f + tax %.2f = %.2f does not match gross total %.2f",
						*inv.NetTotal, *inv.TaxAmount, expected, *inv.GrossTotal))}
			},
		},
		{
			Code:        dueDateCode,
			Description: "Due date must not be earlier than the invoice date",
			Category:    domain.CategoryBusiness,
			Severity:    domain.SeverityError,
			Check: func(inv *domain.Invoice, _ *Context) []Finding {
				if inv.DueDate == nil || inv.InvoiceDate == nil {
					return nil
				}
				if !inv.DueDate.Before(inv.InvoiceDate.Time) {
					return nil
				}
				return []Finding{newFinding(dueDateCode, domain.SeverityError,
					fmt.Sprintf("due date %s is before invoice date %s", inv.DueDate, inv.InvoiceDate))}
			},
		},
		{
			Code:        itemCalcCode,
			Description: "Line item quantity times unit price should equal the line total",
			Category:    domain.CategoryBusiness,
			Severity:    domain.SeverityError,
			Check: func(inv *domain.Invoice, batch *Context) []Finding {
				var findings []Finding
				for i := range inv.LineItems {
					item := &inv.LineItems[i]
					expected := item.Quantity * item.UnitPrice
					if math.Abs(expected-item.LineTotal) <= batch.Tolerance() {
						continue
					}
					findings = append(findings, newFinding(itemCalcCode, domain.SeverityError,
						fmt.Sprintf("line item %d: %.2f x %.2f = %.2f does not match line total %.2f",
							i, item.Quantity, item.UnitPrice, expected, item.LineTotal)))
				}
				return findings
			},
		},
	}
}
