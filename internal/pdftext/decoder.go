// Package pdftext turns input files into the raw text (and, when available,
// table data) the field extractor consumes. PDF inputs are decoded with
// pdfcpu; plain-text inputs are transcoded to UTF-8 with charset detection.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"invoiceqc/internal/domain"
)

// Decoder produces extractor input from a file on disk. tables may be nil
// when the source format carries no table structure.
type Decoder interface {
	Decode(ctx context.Context, path string) (text string, tables [][][]string, err error)
}

// ForFile picks a decoder by file extension. Unknown extensions return
// domain.ErrUnsupportedFileType.
func ForFile(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return &PDFDecoder{}, nil
	case ".txt", ".text":
		return &TextDecoder{}, nil
	default:
		return nil, domain.ErrUnsupportedFileType
	}
}

// DecodeBytes decodes an in-memory upload, dispatching on the extension of
// its original filename.
func DecodeBytes(ctx context.Context, name string, data []byte) (string, [][][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return (&PDFDecoder{}).DecodeBytes(ctx, data)
	case ".txt", ".text":
		r, err := NewUTF8Reader(bytes.NewReader(data))
		if err != nil {
			return "", nil, fmt.Errorf("detecting encoding of %s: %w", name, err)
		}
		decoded, err := io.ReadAll(r)
		if err != nil {
			return "", nil, fmt.Errorf("reading %s: %w", name, err)
		}
		text := string(decoded)
		if strings.TrimSpace(text) == "" {
			return "", nil, fmt.Errorf("%s: %w", name, domain.ErrNoText)
		}
		return text, nil, nil
	default:
		return "", nil, domain.ErrUnsupportedFileType
	}
}
