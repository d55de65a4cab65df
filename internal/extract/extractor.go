// Package extract turns raw invoice text (and optional table data) into
// structured domain.Invoice records. Every field runs through an ordered
// strategy chain: labeled value, then synonym, then a pattern or positional
// fallback. Extraction is best-effort and never fails; a field no strategy
// can fill stays unset so validation can report it.
package extract

import (
	"regexp"
	"strings"
	"time"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/normalize"
)

func compileLabelPatterns(labels []string, suffix string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(labels))
	for _, label := range labels {
		res = append(res, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(label)+suffix))
	}
	return res
}

var (
	invoiceNumberLabelRes = compileLabelPatterns(invoiceNumberLabels, `\s*[:\s]*([A-Za-z0-9\-_/]+)`)

	invoiceNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(INV[-_]?\d{4,}[-\w]*)\b`),
		regexp.MustCompile(`(?i)\b(INVOICE[-_]?\d{4,}[-\w]*)\b`),
		regexp.MustCompile(`(?i)\b([A-Z]{2,4}[-_]\d{6,})\b`),
		regexp.MustCompile(`#\s*(\d{5,})`),
	}
)

const (
	kindInvoice = "invoice"
	kindDue     = "due"
	kindGeneric = "generic"
)

type datePattern struct {
	re   *regexp.Regexp
	kind string
}

var datePatterns = []datePattern{
	{regexp.MustCompile(`(?i)(?:invoice\s+date|date\s+of\s+invoice|dated?)\s*[:\s]*(\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4})`), kindInvoice},
	{regexp.MustCompile(`(?i)(?:due\s+date|payment\s+due|pay\s+by)\s*[:\s]*(\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4})`), kindDue},
	{regexp.MustCompile(`(\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4})`), kindGeneric},
	{regexp.MustCompile(`(\d{4}[-/.]\d{1,2}[-/.]\d{1,2})`), kindGeneric},
	{regexp.MustCompile(`(?i)(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})`), kindGeneric},
	{regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4})`), kindGeneric},
}

var (
	// First non-empty line after a party label is the name; a line
	// containing any of these starts a different invoice section.
	partySectionStops = []string{"invoice", "date", "total", "item", "description", "qty"}

	taxIDLabelRe = regexp.MustCompile(`(?i)\b(?:tax\s*id|vat|gst|tin|ein)\s*[:\s]*[A-Za-z0-9\-]+`)
	taxIDValueRe = regexp.MustCompile(`[:\s]*([A-Z0-9\-]{5,})`)

	// German invoices often open with "CompanyName Bestellung AUFNR...".
	germanHeaderRe = regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z0-9\s&.\-]+?)\s+(?:Bestellung|Lieferschein|Rechnung)\s+(?:AUFNR|Nr\.?|#)`)

	paymentTermsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:payment\s+terms?|terms?)\s*[:\s]*([^\n]{5,50})`),
		regexp.MustCompile(`(?i)(net\s+\d+\s*(?:days?)?)`),
		regexp.MustCompile(`(?i)(\d+/\d+\s+net\s+\d+)`),
		regexp.MustCompile(`(?i)(due\s+(?:on|upon)\s+receipt)`),
	}

	// Word-boundary anchors keep label fragments inside longer words
	// (e.g. the "ration" in "Corporation") from matching.
	externalRefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:p\.?o\.?\s*(?:number|no\.?|#)?|purchase\s+order)\s*[:\s]*([A-Za-z0-9\-_/]+)`),
		regexp.MustCompile(`(?i)\b(?:your\s+)?(?:reference|ref\.?)\s*[:\s]*([A-Za-z0-9\-_/]+)`),
		regexp.MustCompile(`(?i)\border\s*(?:number|no\.?|#)?\s*[:\s]*([A-Za-z0-9\-_/]+)`),
		regexp.MustCompile(`(?i)\bim\s+Auftrag\s+von\s+(\d+)`),
		regexp.MustCompile(`(?i)\bAuftragsnummer\s*[:\s]*([A-Za-z0-9\-_/]+)`),
		regexp.MustCompile(`(?i)\bBestellnummer\s*[:\s]*([A-Za-z0-9\-_/]+)`),
	}

	externalRefStopWords = map[string]struct{}{
		"the": {}, "and": {}, "for": {}, "tion": {}, "ration": {},
	}
)

// Extract parses raw invoice text and optional table data (rows of cells,
// one slice per detected table) into a structured record. It never returns
// an error; unextractable fields remain zero or nil.
func Extract(text string, tables [][][]string) *domain.Invoice {
	inv := &domain.Invoice{}

	inv.InvoiceNumber = invoiceNumber(text)
	inv.InvoiceDate, inv.DueDate = dates(text)

	name, taxID, addr := partyInfo(text, sellerLabels)
	if name == "" {
		name = sellerFromHeader(text)
	}
	inv.SellerName = name
	inv.SellerTaxID = taxID
	inv.SellerAddress = addr

	name, taxID, addr = partyInfo(text, buyerLabels)
	inv.BuyerName = name
	inv.BuyerTaxID = taxID
	inv.BuyerAddress = addr

	inv.Currency, inv.NetTotal, inv.TaxAmount, inv.GrossTotal = amounts(text)
	inv.LineItems = lineItems(text, tables)
	inv.PaymentTerms = paymentTerms(text)
	inv.ExternalReference = externalReference(text)

	return inv
}

func invoiceNumber(text string) string {
	for _, re := range invoiceNumberLabelRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	for _, re := range invoiceNumberPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func dates(text string) (*domain.Date, *domain.Date) {
	var invoiceDate, dueDate *domain.Date
	var generic []time.Time

	for _, dp := range datePatterns {
		for _, m := range dp.re.FindAllStringSubmatch(text, -1) {
			t, err := normalize.ParseDate(m[1])
			if err != nil {
				continue
			}
			switch dp.kind {
			case kindInvoice:
				if invoiceDate == nil {
					d := domain.DateOf(t)
					invoiceDate = &d
				}
			case kindDue:
				if dueDate == nil {
					d := domain.DateOf(t)
					dueDate = &d
				}
			default:
				generic = append(generic, t)
			}
		}
	}

	// Unlabeled dates: earliest is taken as the invoice date, latest as
	// the due date when more than one was found.
	if invoiceDate == nil && len(generic) > 0 {
		earliest := generic[0]
		for _, t := range generic[1:] {
			if t.Before(earliest) {
				earliest = t
			}
		}
		d := domain.DateOf(earliest)
		invoiceDate = &d
	}
	if dueDate == nil && len(generic) > 1 {
		latest := generic[0]
		for _, t := range generic[1:] {
			if t.After(latest) {
				latest = t
			}
		}
		d := domain.DateOf(latest)
		dueDate = &d
	}

	return invoiceDate, dueDate
}

// partyInfo scans for the first line containing one of the labels, then
// reads up to five following lines for the name, tax ID, and address.
func partyInfo(text string, labels []string) (string, *string, *string) {
	var name string
	var taxID, address *string

	lines := strings.Split(text, "\n")

	startIdx := -1
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, label := range labels {
			idx := strings.Index(lower, label)
			if idx < 0 {
				continue
			}
			startIdx = i
			remaining := strings.TrimSpace(line[idx+len(label):])
			remaining = strings.TrimSpace(strings.TrimLeft(remaining, ":"))
			if remaining != "" {
				name = remaining
			}
			break
		}
		if startIdx >= 0 {
			break
		}
	}
	if startIdx < 0 {
		return "", nil, nil
	}

	for i := startIdx + 1; i < len(lines) && i < startIdx+6; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		sectionEnd := false
		for _, stop := range partySectionStops {
			if strings.Contains(lower, stop) {
				sectionEnd = true
				break
			}
		}
		if sectionEnd {
			break
		}

		switch {
		case name == "":
			name = line
		case taxIDLabelRe.MatchString(line):
			if m := taxIDValueRe.FindStringSubmatch(line); m != nil {
				taxID = strPtr(m[1])
			}
		case address == nil && len(line) > 10:
			address = strPtr(line)
		}
	}

	return name, taxID, address
}

func sellerFromHeader(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		if m := germanHeaderRe.FindStringSubmatch(line); m != nil {
			seller := strings.TrimSpace(m[1])
			if len(seller) >= 3 {
				return seller
			}
		}
	}
	return ""
}

func paymentTerms(text string) *string {
	for _, re := range paymentTermsPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strPtr(strings.TrimSpace(m[1]))
		}
	}
	return nil
}

func externalReference(text string) *string {
	for _, re := range externalRefPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		ref := strings.TrimSpace(m[1])
		if len(ref) < 3 {
			continue
		}
		if _, bad := externalRefStopWords[strings.ToLower(ref)]; bad {
			continue
		}
		return strPtr(ref)
	}
	return nil
}

func strPtr(s string) *string { return &s }
