package report

import (
	"fmt"
	"sort"
	"strings"

	"invoiceqc/internal/domain"
)

// ErrorCount pairs a finding code with its batch-wide occurrence count.
type ErrorCount struct {
	Code  string
	Count int
}

// TopErrors returns the n most frequent finding codes from a summary,
// sorted by count descending, ties broken by code for stable output.
func TopErrors(s domain.BatchSummary, n int) []ErrorCount {
	counts := make([]ErrorCount, 0, len(s.ErrorCounts))
	for code, count := range s.ErrorCounts {
		counts = append(counts, ErrorCount{Code: code, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Code < counts[j].Code
	})
	if n >= 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// FormatSummary renders a batch summary as human-readable text for CLI
// output.
func FormatSummary(s domain.BatchSummary) string {
	var b strings.Builder
	rule := strings.Repeat("=", 50)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "VALIDATION SUMMARY")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Total invoices processed: %d\n", s.TotalInvoices)
	fmt.Fprintf(&b, "Valid invoices:           %d\n", s.ValidInvoices)
	fmt.Fprintf(&b, "Invalid invoices:         %d\n", s.InvalidInvoices)
	fmt.Fprintln(&b)

	if s.DuplicatesDetected > 0 {
		fmt.Fprintf(&b, "Duplicates detected:      %d\n", s.DuplicatesDetected)
		fmt.Fprintln(&b)
	}

	if len(s.ErrorCounts) > 0 {
		fmt.Fprintln(&b, "Top Error Types:")
		fmt.Fprintln(&b, strings.Repeat("-", 40))
		for _, e := range TopErrors(s, 5) {
			fmt.Fprintf(&b, "  %s: %d\n", e.Code, e.Count)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
