package pdftext

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"invoiceqc/internal/domain"
)

// TextDecoder reads plain-text invoice exports, transcoding to UTF-8.
type TextDecoder struct{}

func (d *TextDecoder) Decode(ctx context.Context, path string) (string, [][][]string, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r, err := NewUTF8Reader(f)
	if err != nil {
		return "", nil, fmt.Errorf("detecting encoding of %s: %w", filepath.Base(path), err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", nil, fmt.Errorf("%s: %w", filepath.Base(path), domain.ErrNoText)
	}
	return text, nil, nil
}
