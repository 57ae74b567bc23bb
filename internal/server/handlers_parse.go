package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/types"
	"github.com/rs/zerolog"
)

// parseInput is the text extracted from a parse request, plus where it came from.
type parseInput struct {
	source string
	text   string
}

// handleParse extracts text from an uploaded file or pasted text and returns the parsed résumé.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	input, err := s.readParseInput(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	result := s.parser.Parse(input.text)

	if s.store != nil {
		rec := db.NewParseResult(input.source, ingestion.ComputeHash(input.text), result)
		id, err := s.store.SaveParseResult(r.Context(), rec)
		if err != nil {
			// The parse itself succeeded; a storage failure only costs the id.
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to store parse result")
		} else {
			w.Header().Set("X-Parse-ID", id.String())
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGetParse returns a previously stored parse result.
func (s *Server) handleGetParse(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, r, &ErrStoreUnavailable{})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "id", Message: "Invalid parse id"})
		return
	}

	rec, err := s.store.GetParseResult(r.Context(), id)
	if err != nil {
		s.handleError(w, r, fmt.Errorf("failed to get parse result: %w", err))
		return
	}
	if rec == nil {
		s.handleError(w, r, &ErrNotFound{ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, rec.Result)
}

// readParseInput reads the request body according to its content type. The body is
// capped at maxUploadBytes; anything larger yields *http.MaxBytesError.
func (s *Server) readParseInput(w http.ResponseWriter, r *http.Request) (parseInput, error) {
	if r.ContentLength > s.maxUploadBytes {
		return parseInput{}, &http.MaxBytesError{Limit: s.maxUploadBytes}
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "multipart/form-data":
		return s.readMultipart(r)
	case "application/json":
		return readJSONText(r)
	case "text/plain":
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return parseInput{}, fmt.Errorf("failed to read body: %w", err)
		}
		return textInput(string(data))
	default:
		return parseInput{}, &ErrValidation{Field: "Content-Type", Message: "Unsupported content type"}
	}
}

func (s *Server) readMultipart(r *http.Request) (parseInput, error) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return parseInput{}, maxBytes
		}
		return parseInput{}, &ErrValidation{Field: "body", Message: "Invalid multipart form"}
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return textInput(r.FormValue("text"))
	}
	if err != nil {
		return parseInput{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return parseInput{}, fmt.Errorf("failed to read upload: %w", err)
	}

	doc, err := ingestion.ExtractText(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		return parseInput{}, err
	}
	return parseInput{source: header.Filename, text: doc.Text}, nil
}

func readJSONText(r *http.Request) (parseInput, error) {
	var req types.ParseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return parseInput{}, maxBytes
		}
		return parseInput{}, &ErrValidation{Field: "body", Message: "Invalid JSON body"}
	}
	if strings.TrimSpace(req.Text) == "" {
		return parseInput{}, errMissingInput
	}
	if err := req.Validate(); err != nil {
		return parseInput{}, &ErrValidation{Field: "text", Message: err.Error()}
	}
	return textInput(req.Text)
}

// textInput cleans pasted text the same way extracted documents are cleaned.
func textInput(text string) (parseInput, error) {
	if strings.TrimSpace(text) == "" {
		return parseInput{}, errMissingInput
	}
	doc, err := ingestion.ExtractText("", "text/plain", []byte(text))
	if err != nil {
		return parseInput{}, err
	}
	return parseInput{text: doc.Text}, nil
}
