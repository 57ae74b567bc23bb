// Package ingestion turns uploaded résumé files into plain text for the parser.
package ingestion

import (
	"errors"
	"fmt"
)

// ErrNoTextContent is returned when a document yields only whitespace.
var ErrNoTextContent = errors.New("no text content found")

// UnsupportedFormatError represents an upload whose type cannot be read
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	if e.ContentType != "" {
		return fmt.Sprintf("unsupported file type: %s (%s)", e.Filename, e.ContentType)
	}
	return fmt.Sprintf("unsupported file type: %s", e.Filename)
}

// ExtractionError represents a failure while reading text out of a document
type ExtractionError struct {
	Format string
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s", e.Format)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
