package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHash(t *testing.T) {
	hash1 := ComputeHash("test content")
	hash2 := ComputeHash("different content")

	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, ComputeHash("test content"))
}

func TestNewMetadata(t *testing.T) {
	content := "Jane Doe\nEngineer · Zürich"

	metadata := NewMetadata(content, "cv.pdf", FormatPDF)

	assert.Equal(t, "cv.pdf", metadata.Filename)
	assert.Equal(t, "pdf", metadata.Format)
	assert.Equal(t, 2, metadata.Lines)
	assert.Equal(t, 26, metadata.Chars)
	assert.Equal(t, ComputeHash(content), metadata.Hash)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)
}

func TestNewMetadata_EmptyContent(t *testing.T) {
	metadata := NewMetadata("", "", FormatText)

	assert.Zero(t, metadata.Lines)
	assert.Zero(t, metadata.Chars)
	assert.Len(t, metadata.Hash, 64)
}

func TestMetadata_ToJSON(t *testing.T) {
	metadata := &Metadata{
		Filename:  "cv.docx",
		Format:    "docx",
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		Lines:     10,
		Chars:     200,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Equal(t, "cv.docx", decoded["filename"])
	assert.Equal(t, "docx", decoded["format"])
	assert.EqualValues(t, 10, decoded["lines"])
	assert.Contains(t, string(jsonBytes), "\n  ")
}
