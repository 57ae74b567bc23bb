package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-parser/internal/ingestion"
)

// errMissingInput is returned when a parse request carries neither a file nor text.
var errMissingInput = &ErrValidation{Field: "file", Message: "Please provide either a file or text"}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a stored parse result does not exist
type ErrNotFound struct {
	ID uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("parse result not found: %s", e.ID)
}

// ErrStoreUnavailable indicates persistence is not configured
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "parse result storage is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation, *ingestion.UnsupportedFormatError, *ingestion.ExtractionError:
		return http.StatusBadRequest
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	case *http.MaxBytesError:
		return http.StatusRequestEntityTooLarge
	}

	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, ingestion.ErrNoTextContent):
		return http.StatusBadRequest
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the message shown to API clients for err.
// Internal errors are not echoed back.
func errorMessage(err error) string {
	var validation *ErrValidation
	switch {
	case errors.As(err, &validation):
		return validation.Message
	case errors.Is(err, ingestion.ErrNoTextContent):
		return "No text content found"
	}

	switch HTTPStatus(err) {
	case http.StatusInternalServerError:
		return "Internal server error"
	case http.StatusRequestEntityTooLarge:
		return "Request body too large"
	default:
		return err.Error()
	}
}
