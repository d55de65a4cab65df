package domain

import "errors"

var (
	// ErrFormat marks a token that could not be normalized to a number or
	// date. Extraction converts it to a nil field instead of propagating.
	ErrFormat = errors.New("value does not match any supported format")

	// ErrNoText is returned when a decoded document yields no usable text.
	ErrNoText = errors.New("no text could be extracted from document")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyBatch          = errors.New("no invoices in request")
	ErrInvalidRequestBody  = errors.New("request body does not match expected shape")
	ErrNothingExtracted    = errors.New("no invoices could be extracted from input")
)
