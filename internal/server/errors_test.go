package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "text", Message: "is required"}
	assert.Equal(t, "validation error: text - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrNotFound(t *testing.T) {
	id := uuid.New()
	err := &ErrNotFound{ID: id}
	assert.Equal(t, "parse result not found: "+id.String(), err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrStoreUnavailable(t *testing.T) {
	err := &ErrStoreUnavailable{}
	assert.Equal(t, "parse result storage is not configured", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "file", Message: "missing"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "UnsupportedFormatError",
			err:      &ingestion.UnsupportedFormatError{Filename: "photo.png", ContentType: "image/png"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "ExtractionError",
			err:      &ingestion.ExtractionError{Format: "pdf", Cause: errors.New("bad xref")},
			expected: http.StatusBadRequest,
		},
		{
			name:     "ErrNoTextContent wrapped",
			err:      fmt.Errorf("upload: %w", ingestion.ErrNoTextContent),
			expected: http.StatusBadRequest,
		},
		{
			name:     "MaxBytesError",
			err:      &http.MaxBytesError{Limit: 10},
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "wrapped MaxBytesError",
			err:      fmt.Errorf("failed to read upload: %w", &http.MaxBytesError{Limit: 10}),
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "ErrNotFound",
			err:      &ErrNotFound{ID: uuid.New()},
			expected: http.StatusNotFound,
		},
		{
			name:     "ErrStoreUnavailable",
			err:      &ErrStoreUnavailable{},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "generic error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Please provide either a file or text", errorMessage(errMissingInput))
	assert.Equal(t, "No text content found", errorMessage(ingestion.ErrNoTextContent))
	assert.Equal(t, "Internal server error", errorMessage(errors.New("connection refused")))
	assert.Equal(t, "Request body too large", errorMessage(&http.MaxBytesError{Limit: 1}))
	assert.Equal(t, "unsupported file type: a.png (image/png)",
		errorMessage(&ingestion.UnsupportedFormatError{Filename: "a.png", ContentType: "image/png"}))
}
