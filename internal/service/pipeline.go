// Package service orchestrates the extraction pipeline: decoding input
// files, running the field extractor, and handing the resulting batch to
// the validation engine.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/extract"
	"invoiceqc/internal/pdftext"
	"invoiceqc/internal/validator"
)

// DefaultConcurrency bounds the extraction fan-out when no explicit limit
// is configured.
const DefaultConcurrency = 4

// Upload is an in-memory input file, e.g. from a multipart request.
type Upload struct {
	Name string
	Data []byte
}

// Pipeline runs extraction and validation over batches of input files.
// A file that cannot be decoded is recorded as an ExtractionFailure and
// never aborts the rest of the batch.
type Pipeline struct {
	engine      *validator.Engine
	concurrency int
}

// NewPipeline builds a pipeline around a validation engine. concurrency <= 0
// selects DefaultConcurrency.
func NewPipeline(engine *validator.Engine, concurrency int) *Pipeline {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Pipeline{engine: engine, concurrency: concurrency}
}

// ExtractDir extracts every supported file (*.pdf, *.txt) in dir,
// lexicographically ordered. An empty directory yields empty results, not
// an error.
func (p *Pipeline) ExtractDir(ctx context.Context, dir string) ([]domain.Invoice, []domain.ExtractionFailure, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".txt", ".text":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		log.Warn().Str("dir", dir).Msg("no input files found")
	}
	return p.ExtractFiles(ctx, paths)
}

// ExtractFiles extracts the given files concurrently, preserving input
// order in both the invoice slice and the failure list.
func (p *Pipeline) ExtractFiles(ctx context.Context, paths []string) ([]domain.Invoice, []domain.ExtractionFailure, error) {
	results := make([]fileResult, len(paths))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.concurrency)
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			results[i] = p.extractFile(gctx, path)
			return gctx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	return collect(results)
}

// ExtractUploads is ExtractFiles for in-memory inputs.
func (p *Pipeline) ExtractUploads(ctx context.Context, uploads []Upload) ([]domain.Invoice, []domain.ExtractionFailure, error) {
	results := make([]fileResult, len(uploads))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.concurrency)
	for i, up := range uploads {
		i, up := i, up
		eg.Go(func() error {
			text, tables, err := pdftext.DecodeBytes(gctx, up.Name, up.Data)
			if err != nil {
				results[i] = failure(up.Name, err)
				return gctx.Err()
			}
			results[i] = fileResult{invoice: extract.Extract(text, tables)}
			return gctx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	return collect(results)
}

// Run extracts the files and validates the extracted batch, producing the
// full report plus the list of files that could not be processed.
func (p *Pipeline) Run(ctx context.Context, paths []string) (domain.ValidationReport, []domain.ExtractionFailure, error) {
	invoices, failures, err := p.ExtractFiles(ctx, paths)
	if err != nil {
		return domain.ValidationReport{}, nil, err
	}
	return p.engine.Report(invoices), failures, nil
}

// RunDir is Run over every supported file in a directory.
func (p *Pipeline) RunDir(ctx context.Context, dir string) (domain.ValidationReport, []domain.ExtractionFailure, error) {
	invoices, failures, err := p.ExtractDir(ctx, dir)
	if err != nil {
		return domain.ValidationReport{}, nil, err
	}
	return p.engine.Report(invoices), failures, nil
}

// RunUploads extracts and validates in-memory inputs.
func (p *Pipeline) RunUploads(ctx context.Context, uploads []Upload) (domain.ValidationReport, []domain.ExtractionFailure, error) {
	invoices, failures, err := p.ExtractUploads(ctx, uploads)
	if err != nil {
		return domain.ValidationReport{}, nil, err
	}
	return p.engine.Report(invoices), failures, nil
}

// Validate runs the validation engine over an already-extracted batch.
func (p *Pipeline) Validate(invoices []domain.Invoice) domain.ValidationReport {
	return p.engine.Report(invoices)
}

type fileResult struct {
	invoice *domain.Invoice
	failure *domain.ExtractionFailure
}

func (p *Pipeline) extractFile(ctx context.Context, path string) fileResult {
	dec, err := pdftext.ForFile(path)
	if err != nil {
		return failure(filepath.Base(path), err)
	}
	text, tables, err := dec.Decode(ctx, path)
	if err != nil {
		return failure(filepath.Base(path), err)
	}
	log.Debug().Str("file", filepath.Base(path)).Msg("extracted invoice")
	return fileResult{invoice: extract.Extract(text, tables)}
}

func failure(name string, err error) fileResult {
	log.Warn().Str("file", name).Err(err).Msg("extraction failed")
	return fileResult{failure: &domain.ExtractionFailure{File: name, Reason: err.Error()}}
}

func collect(results []fileResult) ([]domain.Invoice, []domain.ExtractionFailure, error) {
	invoices := make([]domain.Invoice, 0, len(results))
	var failures []domain.ExtractionFailure
	for _, r := range results {
		switch {
		case r.invoice != nil:
			invoices = append(invoices, *r.invoice)
		case r.failure != nil:
			failures = append(failures, *r.failure)
		}
	}
	return invoices, failures, nil
}
