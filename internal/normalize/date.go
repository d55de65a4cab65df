package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"invoiceqc/internal/domain"
)

// dateLayouts are tried in order; the first successful parse wins. Ambiguous
// numeric dates ("03/04/2024") resolve to whichever listed layout matches
// first, with no further disambiguation.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

var (
	ordinalRe    = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)\b`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// ParseDate parses a date token against the explicit layout list, then falls
// back to a permissive pass that strips ordinal suffixes ("15th January
// 2024") and normalizes punctuation before retrying.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", raw, domain.ErrFormat)
	}

	if t, ok := tryLayouts(s); ok {
		return t, nil
	}

	loose := ordinalRe.ReplaceAllString(s, "$1")
	loose = strings.ReplaceAll(loose, ",", " ")
	loose = multiSpaceRe.ReplaceAllString(strings.TrimSpace(loose), " ")
	if t, ok := tryLayouts(loose); ok {
		return t, nil
	}
	for _, layout := range []string{"January 2 2006", "Jan 2 2006", "2006 January 2"} {
		if t, err := time.Parse(layout, loose); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("parsing date %q: %w", raw, domain.ErrFormat)
}

func tryLayouts(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
