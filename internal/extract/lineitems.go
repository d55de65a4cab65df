package extract

import (
	"regexp"
	"strings"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/normalize"
)

const (
	maxLineItems      = 20
	maxDescriptionLen = 200
)

var (
	tableHeaderKeywords = []string{
		"description", "item", "qty", "quantity", "price", "amount", "total",
		"artikelbeschreibung", "menge", "preis", "bestellwert", "einheit", "pos",
	}

	subtotalRowKeywords = []string{"gesamtwert", "mwst", "summe", "total"}

	numericCellRe = regexp.MustCompile(`^[\d.,€$]+$`)

	// German numbered item lines: "1 LED-Monitore 12' 4 VE 1 VE=20 Stück 64,00".
	germanItemRe = regexp.MustCompile(`(?i)^(\d+)\s+(.+?)\s+\d+\s+VE.+?([\d,]+)\s*$`)

	trailingAmountRe = regexp.MustCompile(`[\d.,]+\s*$`)
	positionRe       = regexp.MustCompile(`^\d+$`)
	columnSplitRe    = regexp.MustCompile(`\s{2,}|\t`)

	textItemSkipKeywords = []string{
		"description", "subtotal", "grand", "gesamtwert",
		"mwst", "artikelbeschreibung", "pos.", "kostenstelle",
		"lief.art", "interne mat",
	}
)

// lineItems extracts items from table data when a recognizable header row
// exists, falling back to line-oriented text parsing otherwise.
func lineItems(text string, tables [][][]string) []domain.LineItem {
	items := itemsFromTables(tables)
	if len(items) == 0 {
		items = itemsFromText(text)
	}
	if len(items) > maxLineItems {
		items = items[:maxLineItems]
	}
	return items
}

func itemsFromTables(tables [][][]string) []domain.LineItem {
	var items []domain.LineItem

	for _, table := range tables {
		if len(table) < 2 {
			continue
		}

		headerIdx := -1
		for i, row := range table {
			rowText := strings.ToLower(strings.Join(row, " "))
			for _, kw := range tableHeaderKeywords {
				if strings.Contains(rowText, kw) {
					headerIdx = i
					break
				}
			}
			if headerIdx >= 0 {
				break
			}
		}
		if headerIdx < 0 {
			continue
		}

		header := make([]string, len(table[headerIdx]))
		for i, h := range table[headerIdx] {
			header[i] = strings.ToLower(h)
		}

		descIdx := findColumn(header, "desc", "item", "particular", "artikelbeschreibung", "artikel")
		qtyIdx := findColumn(header, "qty", "quantity", "menge")
		priceIdx := findPriceColumn(header)
		totalIdx := findColumn(header, "total", "amount", "bestellwert")

		for _, row := range table[headerIdx+1:] {
			if item, ok := parseTableRow(row, descIdx, qtyIdx, priceIdx, totalIdx); ok {
				items = append(items, item)
			}
		}
	}

	return items
}

func findColumn(header []string, keys ...string) int {
	for i, h := range header {
		for _, k := range keys {
			if strings.Contains(h, k) {
				return i
			}
		}
	}
	return -1
}

// The price column must not be the "Bestellwert" (line total) column even
// though both can contain "preis"-adjacent words.
func findPriceColumn(header []string) int {
	for i, h := range header {
		if strings.Contains(h, "bestellwert") {
			continue
		}
		for _, k := range []string{"price", "rate", "unit", "preis"} {
			if strings.Contains(h, k) {
				return i
			}
		}
	}
	return -1
}

func parseTableRow(row []string, descIdx, qtyIdx, priceIdx, totalIdx int) (domain.LineItem, bool) {
	empty := true
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			empty = false
			break
		}
	}
	if empty {
		return domain.LineItem{}, false
	}

	rowText := strings.ToLower(strings.Join(row, " "))
	for _, kw := range subtotalRowKeywords {
		if strings.Contains(rowText, kw) {
			return domain.LineItem{}, false
		}
	}

	var description string
	if descIdx >= 0 && descIdx < len(row) {
		description = strings.TrimSpace(row[descIdx])
	} else {
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell != "" && !numericCellRe.MatchString(cell) {
				description = cell
				break
			}
		}
	}
	if len(description) < 2 {
		return domain.LineItem{}, false
	}

	quantity := 1.0
	if qtyIdx >= 0 && qtyIdx < len(row) {
		if v, err := normalize.ParseNumber(row[qtyIdx]); err == nil {
			quantity = v
		}
	}

	unitPrice := 0.0
	if priceIdx >= 0 && priceIdx < len(row) {
		if v, err := normalize.ParseNumber(row[priceIdx]); err == nil {
			unitPrice = v
		}
	}

	var lineTotal *float64
	if totalIdx >= 0 && totalIdx < len(row) {
		if v, err := normalize.ParseNumber(row[totalIdx]); err == nil {
			lineTotal = floatPtr(v)
		}
	}
	if lineTotal == nil {
		// Fall back to the last cell that parses as a positive amount.
		for i := len(row) - 1; i >= 0; i-- {
			if v, err := normalize.ParseNumber(row[i]); err == nil && v > 0 {
				lineTotal = floatPtr(v)
				break
			}
		}
	}
	if lineTotal == nil {
		lineTotal = floatPtr(quantity * unitPrice)
	}

	if *lineTotal <= 0 && unitPrice <= 0 {
		return domain.LineItem{}, false
	}

	return domain.LineItem{
		Description: truncate(description, maxDescriptionLen),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   *lineTotal,
	}, true
}

func itemsFromText(text string) []domain.LineItem {
	var items []domain.LineItem

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 10 {
			continue
		}

		lower := strings.ToLower(line)
		skip := false
		for _, kw := range textItemSkipKeywords {
			if strings.Contains(lower, kw) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		if m := germanItemRe.FindStringSubmatch(line); m != nil {
			description := strings.TrimSpace(m[2])
			if v, err := normalize.ParseNumber(m[3]); err == nil && v > 0 && len(description) >= 3 {
				items = append(items, domain.LineItem{
					Description: truncate(description, maxDescriptionLen),
					Quantity:    1,
					UnitPrice:   v,
					LineTotal:   v,
				})
				continue
			}
		}

		if !trailingAmountRe.MatchString(line) {
			continue
		}

		// Column-ish lines: description then numeric columns separated by
		// runs of whitespace.
		parts := columnSplitRe.Split(line, -1)
		if len(parts) < 2 {
			continue
		}
		description := strings.TrimSpace(parts[0])
		if positionRe.MatchString(description) {
			description = strings.TrimSpace(parts[1])
		}
		if len(description) < 3 {
			continue
		}

		var amounts []float64
		for _, p := range parts[1:] {
			if v, err := normalize.ParseNumber(p); err == nil {
				amounts = append(amounts, v)
			}
		}
		if len(amounts) == 0 {
			continue
		}

		lineTotal := amounts[len(amounts)-1]
		unitPrice := lineTotal
		if len(amounts) >= 2 {
			unitPrice = amounts[len(amounts)-2]
		}
		quantity := 1.0
		if len(amounts) >= 3 {
			quantity = amounts[0]
		}

		if lineTotal > 0 {
			items = append(items, domain.LineItem{
				Description: truncate(description, maxDescriptionLen),
				Quantity:    quantity,
				UnitPrice:   unitPrice,
				LineTotal:   lineTotal,
			})
		}
	}

	return items
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
