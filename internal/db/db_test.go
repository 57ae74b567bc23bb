package db

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-parser/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNewParseResult(t *testing.T) {
	resume := types.EmptyParsedResume()
	resume.PersonalInfo.FirstName = "Jane"

	rec := NewParseResult("cv.pdf", "abc123", resume)

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, "cv.pdf", rec.SourceName)
	assert.Equal(t, "abc123", rec.ContentHash)
	assert.Equal(t, "Jane", rec.Result.PersonalInfo.FirstName)
	assert.True(t, rec.CreatedAt.IsZero())
}

func TestNewParseResult_UniqueIDs(t *testing.T) {
	a := NewParseResult("a", "h1", types.EmptyParsedResume())
	b := NewParseResult("a", "h1", types.EmptyParsedResume())

	assert.NotEqual(t, a.ID, b.ID)
}

func TestSchemaStatements_Idempotent(t *testing.T) {
	for _, stmt := range schemaStatements {
		assert.Contains(t, stmt, "IF NOT EXISTS", "statement must be safe to rerun: %s", strings.SplitN(stmt, "\n", 2)[0])
	}
}
