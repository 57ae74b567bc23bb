package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-parser/internal/types"
)

// ParseResult is a stored parse of one document, keyed by the hash of its text.
type ParseResult struct {
	ID          uuid.UUID          `json:"id"`
	ContentHash string             `json:"content_hash"`
	SourceName  string             `json:"source_name"`
	Result      types.ParsedResume `json:"result"`
	CreatedAt   time.Time          `json:"created_at"`
}

// NewParseResult returns a record ready to be saved, with a fresh ID.
func NewParseResult(sourceName, contentHash string, result types.ParsedResume) *ParseResult {
	return &ParseResult{
		ID:          uuid.New(),
		ContentHash: contentHash,
		SourceName:  sourceName,
		Result:      result,
	}
}
