package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceqc/internal/domain"
)

func TestInvoiceNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labeled", "Invoice No: INV-2024-001234", "INV-2024-001234"},
		{"hash label", "Invoice # 12345678", "12345678"},
		{"pattern fallback", "Please pay INV-0001234 by next week", "INV-0001234"},
		{"absent", "This is a document without any identifiers", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, invoiceNumber(tc.text))
		})
	}
}

func TestDates_Labeled(t *testing.T) {
	invoiceDate, dueDate := dates("Invoice Date: 2024-01-15\nDue Date: 2024-02-14")

	require.NotNil(t, invoiceDate)
	require.NotNil(t, dueDate)
	assert.Equal(t, domain.NewDate(2024, 1, 15), *invoiceDate)
	assert.Equal(t, domain.NewDate(2024, 2, 14), *dueDate)
}

func TestDates_EuropeanNumeric(t *testing.T) {
	invoiceDate, _ := dates("Date: 15/01/2024")

	require.NotNil(t, invoiceDate)
	assert.Equal(t, domain.NewDate(2024, 1, 15), *invoiceDate)
}

func TestDates_Absent(t *testing.T) {
	invoiceDate, dueDate := dates("no dates in this document")

	assert.Nil(t, invoiceDate)
	assert.Nil(t, dueDate)
}

func TestAmounts_LabeledWithSymbol(t *testing.T) {
	text := "Sub Total: $1,000.00\nTax Amount: $100.00\nGrand Total: $1,100.00"

	currency, net, tax, gross := amounts(text)

	assert.Equal(t, "USD", currency)
	require.NotNil(t, net)
	assert.InDelta(t, 1000.00, *net, 0.001)
	require.NotNil(t, tax)
	assert.InDelta(t, 100.00, *tax, 0.001)
	assert.NotNil(t, gross)
}

func TestAmounts_CurrencyCode(t *testing.T) {
	currency, _, _, _ := amounts("Amount: EUR 500.00")
	assert.Equal(t, "EUR", currency)
}

func TestAmounts_CurrencySymbol(t *testing.T) {
	currency, _, _, _ := amounts("Total: €1500.00")
	assert.Equal(t, "EUR", currency)
}

func TestAmounts_DerivesMissingTax(t *testing.T) {
	text := "Net Total: 1000.00\nGrand Total: 1100.00"

	_, net, tax, gross := amounts(text)

	require.NotNil(t, net)
	require.NotNil(t, tax)
	require.NotNil(t, gross)
	assert.InDelta(t, *gross-*net, *tax, 0.001)
}

func TestAmounts_NetOnlyPromotesToGross(t *testing.T) {
	_, net, tax, gross := amounts("Net Total: 500.00")

	require.NotNil(t, net)
	require.NotNil(t, tax)
	require.NotNil(t, gross)
	assert.InDelta(t, 500.00, *gross, 0.001)
	assert.InDelta(t, 0.0, *tax, 0.001)
}

func TestPartyInfo_Seller(t *testing.T) {
	text := "From:\nAcme Corporation\nTax ID: US123456789\n123 Business Street\n"

	name, taxID, address := partyInfo(text, sellerLabels)

	assert.Equal(t, "Acme Corporation", name)
	require.NotNil(t, taxID)
	assert.Equal(t, "US123456789", *taxID)
	require.NotNil(t, address)
	assert.Equal(t, "123 Business Street", *address)
}

func TestPartyInfo_Buyer(t *testing.T) {
	text := "Bill To:\nGlobal Enterprises Inc\n456 Client Avenue\n"

	name, _, address := partyInfo(text, buyerLabels)

	assert.Equal(t, "Global Enterprises Inc", name)
	require.NotNil(t, address)
	assert.Equal(t, "456 Client Avenue", *address)
}

func TestPartyInfo_Absent(t *testing.T) {
	name, taxID, address := partyInfo("just a paragraph of prose", sellerLabels)

	assert.Empty(t, name)
	assert.Nil(t, taxID)
	assert.Nil(t, address)
}

func TestPaymentTerms(t *testing.T) {
	terms := paymentTerms("Payment Terms: Net 30")
	require.NotNil(t, terms)
	assert.Equal(t, "Net 30", *terms)

	terms = paymentTerms("Due upon receipt")
	require.NotNil(t, terms)

	assert.Nil(t, paymentTerms("nothing relevant here"))
}

func TestExternalReference(t *testing.T) {
	ref := externalReference("PO Number: PO-12345")
	require.NotNil(t, ref)
	assert.Equal(t, "PO-12345", *ref)

	ref = externalReference("Reference: REF-98765")
	require.NotNil(t, ref)
	assert.Equal(t, "REF-98765", *ref)

	assert.Nil(t, externalReference("This document has no external identifiers at all"))
}

func TestExternalReference_NoLabelFragmentInsideWords(t *testing.T) {
	// "Corporation" must not surface a reference via an embedded fragment.
	assert.Nil(t, externalReference("Acme Corporation\nBerlin"))
}

func TestLineItems_FromTable(t *testing.T) {
	tables := [][][]string{{
		{"Description", "Qty", "Unit Price", "Amount"},
		{"Widget A", "2", "10.00", "20.00"},
		{"Widget B", "1", "5.50", "5.50"},
		{"", "", "Total", "25.50"},
	}}

	items := lineItems("", tables)

	require.Len(t, items, 2)
	assert.Equal(t, "Widget A", items[0].Description)
	assert.InDelta(t, 2.0, items[0].Quantity, 0.001)
	assert.InDelta(t, 10.00, items[0].UnitPrice, 0.001)
	assert.InDelta(t, 20.00, items[0].LineTotal, 0.001)
	assert.Equal(t, "Widget B", items[1].Description)
}

func TestLineItems_GermanTextFallback(t *testing.T) {
	text := "Pos. Artikelbeschreibung Menge Einheit Bestellwert\n" +
		"1 LED-Monitore 12' 4 VE 1 VE=20 Stück 64,00\n" +
		"2 USB-Hubs aktiv 2 VE 1 VE=10 Stück 152,00\n" +
		"Gesamtwert EUR 216,00\n"

	items := lineItems(text, nil)

	require.Len(t, items, 2)
	assert.Equal(t, "LED-Monitore 12'", items[0].Description)
	assert.InDelta(t, 64.00, items[0].LineTotal, 0.001)
	assert.Equal(t, "USB-Hubs aktiv", items[1].Description)
	assert.InDelta(t, 152.00, items[1].LineTotal, 0.001)
}

func TestExtract_GermanInvoice(t *testing.T) {
	text := "Siemens AG Bestellung AUFNR4711 vom 02.05.2022\n" +
		"im Auftrag von 0293479054\n" +
		"Kundenanschrift\n" +
		"Muster GmbH\n" +
		"Beispielstraße 12, 80333 München\n" +
		"Pos. Artikelbeschreibung Menge Einheit Bestellwert\n" +
		"1 LED-Monitore 12' 4 VE 1 VE=20 Stück 64,00\n" +
		"2 USB-Hubs aktiv 2 VE 1 VE=10 Stück 152,00\n" +
		"Gesamtwert EUR 216,00\n" +
		"Mehrwertsteuer 19,00 % EUR 41,04\n" +
		"Gesamtwert inkl. MwSt. EUR 257,04\n"

	inv := Extract(text, nil)

	assert.Equal(t, "AUFNR4711", inv.InvoiceNumber)
	assert.Equal(t, "Siemens AG", inv.SellerName)
	assert.Equal(t, "Muster GmbH", inv.BuyerName)
	require.NotNil(t, inv.BuyerAddress)
	assert.Equal(t, "Beispielstraße 12, 80333 München", *inv.BuyerAddress)

	require.NotNil(t, inv.InvoiceDate)
	assert.Equal(t, domain.NewDate(2022, 5, 2), *inv.InvoiceDate)

	assert.Equal(t, "EUR", inv.Currency)
	require.NotNil(t, inv.NetTotal)
	assert.InDelta(t, 216.00, *inv.NetTotal, 0.001)
	require.NotNil(t, inv.TaxAmount)
	assert.InDelta(t, 41.04, *inv.TaxAmount, 0.001)
	require.NotNil(t, inv.GrossTotal)
	assert.InDelta(t, 257.04, *inv.GrossTotal, 0.001)

	require.NotNil(t, inv.ExternalReference)
	assert.Equal(t, "0293479054", *inv.ExternalReference)

	require.Len(t, inv.LineItems, 2)
}

func TestExtract_EmptyFieldsStayUnset(t *testing.T) {
	inv := Extract("some meaningless prose", nil)

	assert.Empty(t, inv.InvoiceNumber)
	assert.Empty(t, inv.SellerName)
	assert.Empty(t, inv.BuyerName)
	assert.Empty(t, inv.Currency)
	assert.Nil(t, inv.InvoiceDate)
	assert.Nil(t, inv.DueDate)
	assert.Nil(t, inv.NetTotal)
	assert.Nil(t, inv.TaxAmount)
	assert.Nil(t, inv.GrossTotal)
	assert.Nil(t, inv.PaymentTerms)
	assert.Nil(t, inv.ExternalReference)
	assert.Empty(t, inv.LineItems)
}
