// Package normalize converts raw invoice tokens into typed values. Invoice
// text mixes US/UK and European conventions ("1,257.04" vs "1.257,04"), so
// both number and date parsing are heuristic and locale-aware.
package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"invoiceqc/internal/domain"
)

// currencySymbols are stripped before numeric parsing.
const currencySymbols = "$€£₹¥"

// ParseNumber parses a numeric token in either US/UK or European convention.
//
// Decimal-separator detection:
//   - both "," and "." present: the rightmost of the two is the decimal
//     separator, the other a thousands separator;
//   - only "," present, exactly once and followed by 1-2 trailing digits:
//     decimal comma (European);
//   - otherwise "," is a thousands separator.
//
// The heuristic is lossy for some malformed inputs (a bare "1,234" is read
// as 1234, never 1.234); callers wanting a different resolution must supply
// an explicit locale hint rather than rely on smarter guessing here.
func ParseNumber(raw string) (float64, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(currencySymbols, r) {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return 0, fmt.Errorf("parsing number %q: %w", raw, domain.ErrFormat)
	}

	comma := strings.LastIndex(s, ",")
	period := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && period >= 0:
		if comma > period {
			// European: periods group thousands, comma is the decimal mark.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") == 1 && decimalTail(s, comma) {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing number %q: %w", raw, domain.ErrFormat)
	}
	return d.InexactFloat64(), nil
}

// decimalTail reports whether everything after the separator at pos is 1-2
// digits, i.e. the comma looks like a European decimal mark.
func decimalTail(s string, pos int) bool {
	tail := s[pos+1:]
	if len(tail) < 1 || len(tail) > 2 {
		return false
	}
	for _, r := range tail {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
