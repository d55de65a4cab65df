package validator

import (
	"invoiceqc/internal/domain"
)

// Rules returns all built-in rules in evaluation order: completeness first
// so missing data surfaces before dependent checks skip, then format,
// business, and anomaly. The slice is freshly built per call; callers may
// not mutate shared state through it.
func Rules() []Rule {
	var rules []Rule
	rules = append(rules, completenessRules()...)
	rules = append(rules, formatRules()...)
	rules = append(rules, businessRules()...)
	rules = append(rules, anomalyRules()...)
	return rules
}

// RulesByCategory filters the registry to a single rule family.
func RulesByCategory(category domain.RuleCategory) []Rule {
	var out []Rule
	for _, r := range Rules() {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// Descriptions maps every rule code to its human-readable description.
func Descriptions() map[string]string {
	rules := Rules()
	out := make(map[string]string, len(rules))
	for _, r := range rules {
		out[r.Code] = r.Description
	}
	return out
}
