package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nameSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {"name": {"type": "string"}}
}`

func TestValidateFile_EmbeddedSchema(t *testing.T) {
	doc, err := ingestion.ExtractText("resume.txt", "", []byte(sampleResume))
	require.NoError(t, err)
	_, jsonBytes, err := parseDocument(parsing.New(), doc, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	valid := writeFixture(t, dir, "resume.json", string(jsonBytes))
	invalid := writeFixture(t, dir, "other.json", `{"name": "x"}`)

	assert.NoError(t, validateFile(valid, ""))

	err = validateFile(invalid, "")
	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateFile_SchemaOverride(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFixture(t, dir, "name.schema.json", nameSchema)

	assert.NoError(t, validateFile(writeFixture(t, dir, "ok.json", `{"name": "x"}`), schemaPath))
	assert.Error(t, validateFile(writeFixture(t, dir, "bad.json", `{"age": 3}`), schemaPath))
}

func TestValidateFile_MissingFile(t *testing.T) {
	err := validateFile(filepath.Join(t.TempDir(), "missing.json"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read JSON file")
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFixture(t, dir, "name.schema.json", nameSchema)
	validateInputFile = writeFixture(t, dir, "ok.json", `{"name": "x"}`)
	validateSchemaFile = schemaPath
	t.Cleanup(func() { validateInputFile, validateSchemaFile = "", "" })

	var out bytes.Buffer
	validateCmd.SetOut(&out)
	t.Cleanup(func() { validateCmd.SetOut(nil) })

	require.NoError(t, runValidate(validateCmd, nil))
	assert.Contains(t, out.String(), "is valid")
}
