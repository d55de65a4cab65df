package domain

// Severity classifies a validation finding. Error findings make an invoice
// invalid; warnings are surfaced for review only.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// RuleCategory groups validation rules by the kind of check they perform.
// The category doubles as the rule-code prefix (e.g. "missing_field:currency").
type RuleCategory string

const (
	CategoryCompleteness RuleCategory = "missing_field"
	CategoryFormat       RuleCategory = "format_error"
	CategoryBusiness     RuleCategory = "business_rule"
	CategoryAnomaly      RuleCategory = "anomaly"
)

// DefaultCurrencies is the ISO 4217 set recognized during extraction and
// accepted by the currency format rule unless overridden in config.
var DefaultCurrencies = []string{
	"USD", "EUR", "GBP", "INR", "JPY", "CAD",
	"AUD", "CHF", "CNY", "SGD", "AED", "HKD",
}
