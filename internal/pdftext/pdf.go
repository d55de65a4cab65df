package pdftext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"

	"invoiceqc/internal/domain"
)

// PDFDecoder extracts text from PDF files via pdfcpu. pdfcpu exposes page
// content streams rather than positioned text, so tables are always nil and
// the extractor's text-based line item fallback applies.
type PDFDecoder struct{}

var contentPageRe = regexp.MustCompile(`_(\d+)\.txt$`)

// Decode validates the PDF, extracts every page's content stream into a
// scratch directory, and scrapes the text-showing operators in page order.
// An empty result maps to domain.ErrNoText so callers can report the file
// as unreadable rather than silently producing an empty invoice.
func (d *PDFDecoder) Decode(ctx context.Context, path string) (string, [][][]string, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	if err := api.ValidateFile(path, nil); err != nil {
		return "", nil, fmt.Errorf("validating %s: %w", filepath.Base(path), err)
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("counting pages of %s: %w", filepath.Base(path), err)
	}
	log.Debug().Str("file", filepath.Base(path)).Int("pages", pageCount).Msg("decoding pdf")

	tmpDir, err := os.MkdirTemp("", "invoiceqc-content-")
	if err != nil {
		return "", nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := api.ExtractContentFile(path, tmpDir, nil, nil); err != nil {
		return "", nil, fmt.Errorf("extracting content of %s: %w", filepath.Base(path), err)
	}

	pages, err := contentFiles(tmpDir)
	if err != nil {
		return "", nil, err
	}

	var text string
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		raw, err := os.ReadFile(page)
		if err != nil {
			return "", nil, fmt.Errorf("reading page content: %w", err)
		}
		pageText := normalizeUTF8(textFromContent(raw))
		if pageText != "" {
			if text != "" {
				text += "\n"
			}
			text += pageText
		}
	}

	if text == "" {
		return "", nil, fmt.Errorf("%s: %w", filepath.Base(path), domain.ErrNoText)
	}
	return text, nil, nil
}

// DecodeBytes decodes an in-memory PDF (e.g. an HTTP upload) by spooling it
// to a temp file, since pdfcpu's extraction API is file based.
func (d *PDFDecoder) DecodeBytes(ctx context.Context, data []byte) (string, [][][]string, error) {
	tmp, err := os.CreateTemp("", "invoiceqc-upload-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}

	return d.Decode(ctx, tmp.Name())
}

// contentFiles lists the extracted per-page content files in page order.
func contentFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("listing extracted content: %w", err)
	}
	sort.Slice(matches, func(i, j int) bool {
		return contentPageNum(matches[i]) < contentPageNum(matches[j])
	})
	return matches, nil
}

func contentPageNum(path string) int {
	m := contentPageRe.FindStringSubmatch(path)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
