package extract

import (
	"regexp"
	"strings"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/normalize"
)

const (
	kindNet   = "net"
	kindTax   = "tax"
	kindGross = "gross"
)

type amountPattern struct {
	re   *regexp.Regexp
	kind string
}

// Ordered: the "Gesamtwert inkl. MwSt." gross pattern must precede the
// plain "Gesamtwert" net pattern or the gross line matches as net.
var amountPatterns = []amountPattern{
	{regexp.MustCompile(`(?i)(?:sub\s*total|net\s*(?:total|amount))\s*[:\s]*[$€£₹¥]?\s*([\d.,]+)`), kindNet},
	{regexp.MustCompile(`(?i)(?:tax|vat|gst)\s*(?:amount)?\s*[:\s]*[$€£₹¥]?\s*([\d.,]+)`), kindTax},
	{regexp.MustCompile(`(?i)(?:total|grand\s*total|amount\s*due|balance\s*due)\s*[:\s]*[$€£₹¥]?\s*([\d.,]+)`), kindGross},
	{regexp.MustCompile(`(?i)gesamtwert\s+inkl\.?\s*mwst\.?\s*(?:EUR|€)\s*([\d.,]+)`), kindGross},
	{regexp.MustCompile(`(?i)(?:mwst\.?|mehrwertsteuer|ust\.?|umsatzsteuer)\s*[\d.,]*\s*%?\s*(?:EUR|€)\s*([\d.,]+)`), kindTax},
	{regexp.MustCompile(`(?i)gesamtwert\s*(?:EUR|€)\s*([\d.,]+)`), kindNet},
}

// amounts extracts the currency and the net/tax/gross totals. A missing
// member of the triple is derived from the other two; when only a net value
// is found it is promoted to gross with zero tax.
func amounts(text string) (string, *float64, *float64, *float64) {
	var currency string
	var netTotal, taxAmount, grossTotal *float64

	upper := strings.ToUpper(text)
	for _, code := range domain.DefaultCurrencies {
		if strings.Contains(upper, code) {
			currency = code
			break
		}
	}
	// A bare symbol is more reliable than an incidental code match.
	for _, cs := range currencySymbols {
		if strings.Contains(text, cs.Symbol) {
			currency = cs.Code
			break
		}
	}

	for _, ap := range amountPatterns {
		m := ap.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := normalize.ParseNumber(m[1])
		if err != nil || v <= 0 {
			continue
		}
		switch ap.kind {
		case kindNet:
			if netTotal == nil {
				netTotal = floatPtr(v)
			}
		case kindTax:
			if taxAmount == nil {
				taxAmount = floatPtr(v)
			}
		case kindGross:
			if grossTotal == nil {
				grossTotal = floatPtr(v)
			}
		}
	}

	if grossTotal != nil && netTotal != nil && taxAmount == nil {
		taxAmount = floatPtr(*grossTotal - *netTotal)
	}
	if grossTotal != nil && taxAmount != nil && netTotal == nil {
		netTotal = floatPtr(*grossTotal - *taxAmount)
	}
	if grossTotal == nil && netTotal != nil {
		grossTotal = floatPtr(*netTotal)
		if taxAmount == nil {
			taxAmount = floatPtr(0)
		}
	}

	return currency, netTotal, taxAmount, grossTotal
}

func floatPtr(v float64) *float64 { return &v }
