package pdftext

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceqc/internal/domain"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Rechnung Nr. 4711 über 257,04 €"

	r, err := NewUTF8Reader(bytes.NewReader([]byte(input)))

	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Latin1(t *testing.T) {
	// "München" with 0xFC for ü, as Windows-1252/Latin-1 exports arrive.
	latin1 := []byte{'M', 0xFC, 'n', 'c', 'h', 'e', 'n'}

	r, err := NewUTF8Reader(bytes.NewReader(latin1))

	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "München", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Invoice No: INV-1")...)

	r, err := NewUTF8Reader(bytes.NewReader(input))

	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Invoice No: INV-1", string(got), "BOM is stripped")
}

func TestTextFromContent(t *testing.T) {
	content := []byte(`BT
/F1 12 Tf
72 720 Td
(Invoice No: ) Tj
[(INV-20) -3 (24-001)] TJ
0 -14 Td
(Gesamtwert EUR 216,00) Tj
ET`)

	got := textFromContent(content)

	assert.Equal(t, "Invoice No: INV-2024-001\nGesamtwert EUR 216,00", got)
}

func TestTextFromContent_EscapesAndNesting(t *testing.T) {
	content := []byte(`BT (Net \(EUR\) 1.234,56) Tj ET`)

	assert.Equal(t, "Net (EUR) 1.234,56", textFromContent(content))
}

func TestTextFromContent_OctalEscape(t *testing.T) {
	// \374 is WinAnsi for the u-umlaut.
	content := []byte(`BT (M\374nchen) Tj ET`)

	assert.Equal(t, "München", normalizeUTF8(textFromContent(content)))
}

func TestTextFromContent_Empty(t *testing.T) {
	assert.Empty(t, textFromContent([]byte("BT /F1 12 Tf ET")))
}

func TestForFile(t *testing.T) {
	d, err := ForFile("invoice.PDF")
	require.NoError(t, err)
	assert.IsType(t, &PDFDecoder{}, d)

	d, err = ForFile("invoice.txt")
	require.NoError(t, err)
	assert.IsType(t, &TextDecoder{}, d)

	_, err = ForFile("invoice.docx")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestTextDecoder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.txt")
	require.NoError(t, os.WriteFile(path, []byte("Invoice No: INV-1\nTotal: $10.00\n"), 0o644))

	text, tables, err := (&TextDecoder{}).Decode(context.Background(), path)

	require.NoError(t, err)
	assert.Nil(t, tables)
	assert.Contains(t, text, "INV-1")
}

func TestTextDecoder_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	_, _, err := (&TextDecoder{}).Decode(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrNoText)
}
