package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/service"
)

// ExtractHandler handles PDF upload, extraction, and validation.
type ExtractHandler struct {
	pipeline    *service.Pipeline
	maxUploadMB int64
}

// NewExtractHandler creates a new ExtractHandler. maxUploadMB caps the size
// of each uploaded file.
func NewExtractHandler(pipeline *service.Pipeline, maxUploadMB int64) *ExtractHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 25
	}
	return &ExtractHandler{pipeline: pipeline, maxUploadMB: maxUploadMB}
}

type extractResponse struct {
	ExtractedInvoices  []domain.Invoice                 `json:"extracted_invoices"`
	ValidationSummary  domain.BatchSummary              `json:"validation_summary"`
	PerInvoiceResults  []domain.InvoiceValidationResult `json:"per_invoice_results"`
	ExtractionFailures []domain.ExtractionFailure       `json:"extraction_failures"`
}

// ExtractAndValidate handles POST /extract-and-validate-pdfs. Uploaded
// files are extracted and the resulting batch validated; per-file failures
// are reported alongside the results and only an all-failed batch is an
// error (422).
func (h *ExtractHandler) ExtractAndValidate(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequestBody, err))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		HandleError(c, domain.ErrEmptyBatch)
		return
	}

	maxBytes := h.maxUploadMB << 20
	uploads := make([]service.Upload, 0, len(files))
	oversized := make([]domain.ExtractionFailure, 0)
	for _, fh := range files {
		if fh.Size > maxBytes {
			oversized = append(oversized, domain.ExtractionFailure{
				File:   fh.Filename,
				Reason: domain.ErrFileTooLarge.Error(),
			})
			continue
		}
		f, err := fh.Open()
		if err != nil {
			oversized = append(oversized, domain.ExtractionFailure{File: fh.Filename, Reason: err.Error()})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			oversized = append(oversized, domain.ExtractionFailure{File: fh.Filename, Reason: err.Error()})
			continue
		}
		uploads = append(uploads, service.Upload{Name: fh.Filename, Data: data})
	}

	invoices, failures, err := h.pipeline.ExtractUploads(c.Request.Context(), uploads)
	if err != nil {
		HandleError(c, err)
		return
	}
	failures = append(oversized, failures...)

	log.Info().
		Str("request_id", c.GetString("request_id")).
		Int("files", len(files)).
		Int("extracted", len(invoices)).
		Int("failed", len(failures)).
		Msg("extraction request processed")

	if len(invoices) == 0 {
		HandleError(c, domain.ErrNothingExtracted)
		return
	}

	report := h.pipeline.Validate(invoices)
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: extractResponse{
		ExtractedInvoices:  invoices,
		ValidationSummary:  report.Summary,
		PerInvoiceResults:  report.PerInvoiceResults,
		ExtractionFailures: failures,
	}})
}
