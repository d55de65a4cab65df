package extract

// Label sets used by the field strategies. English labels first, German
// synonyms after, both matched case-insensitively against the raw text.

var invoiceNumberLabels = []string{
	"invoice no",
	"invoice number",
	"invoice #",
	"invoice:",
	"inv no",
	"inv #",
	"bill no",
	"bill number",
	"document no",
	"doc no",
	"rechnungsnr",
	"rechnung nr",
	"bestellung",
	"aufnr",
	"bestellnummer",
}

var sellerLabels = []string{
	"from:",
	"seller:",
	"vendor:",
	"sold by:",
	"supplier:",
	"bill from:",
	"ship from:",
	"lieferant:",
	"verkäufer:",
	"absender:",
}

var buyerLabels = []string{
	"to:",
	"bill to:",
	"buyer:",
	"sold to:",
	"customer:",
	"ship to:",
	"invoice to:",
	"kundenanschrift",
	"empfänger:",
	"käufer:",
	"kunde:",
}

// currencySymbols maps a bare symbol in the text to its ISO code.
var currencySymbols = []struct {
	Symbol string
	Code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"₹", "INR"},
	{"¥", "JPY"},
}
