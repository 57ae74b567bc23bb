package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-parser/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Jane", "age": 30}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{name: "missing field", document: `{"age": 30}`},
		{name: "wrong type", document: `{"name": "Jane", "age": "thirty"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			schemaPath := writeFile(t, dir, "schema.json", personSchema)
			jsonPath := writeFile(t, dir, "doc.json", tt.document)

			err := ValidateJSON(schemaPath, jsonPath)
			require.Error(t, err)

			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type")
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Jane"}`)

	err := ValidateJSON(filepath.Join(dir, "missing_schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "malformed.json", "{ invalid json }")

	assert.Error(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "test"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(personSchema, `{"age": 30}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "expected SchemaLoadError, got %T", err)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}

func TestParsedResumeSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(ParsedResumeSchema()), &v))
	assert.Equal(t, "ParsedResume", v["title"])
}

func TestValidateParsedResume_EmptyRecord(t *testing.T) {
	assert.NoError(t, ValidateParsedResume(types.EmptyParsedResume()))
}

func TestValidateParsedResume_FilledRecord(t *testing.T) {
	resume := types.EmptyParsedResume()
	resume.PersonalInfo.FirstName = "John"
	resume.PersonalInfo.LastName = "Smith"
	resume.PersonalInfo.Phone = "+14155552671"
	resume.WorkExperience[0].Position = "Senior Software Engineer"
	resume.WorkExperience[0].StartDate = "2020-01"
	resume.Skills = append(resume.Skills, types.Skill{Skill: "Go"})
	resume.Certificates = append(resume.Certificates, types.Certificate{Name: "AWS Solutions Architect", Date: "2021"})
	resume.Languages = append(resume.Languages, types.Language{Language: "English", Proficiency: "Native"})

	assert.NoError(t, ValidateParsedResume(resume))
}

func TestValidateParsedResume_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *types.ParsedResume)
	}{
		{name: "bad start date", mutate: func(r *types.ParsedResume) { r.WorkExperience[0].StartDate = "Jan 2020" }},
		{name: "month out of range", mutate: func(r *types.ParsedResume) { r.Education[0].EndDate = "2020-13" }},
		{name: "phone with separators", mutate: func(r *types.ParsedResume) { r.PersonalInfo.Phone = "(555) 123-4567" }},
		{name: "missing placeholder", mutate: func(r *types.ParsedResume) { r.WorkExperience = []types.WorkExperience{} }},
		{name: "null list", mutate: func(r *types.ParsedResume) { r.Skills = nil }},
		{name: "empty skill", mutate: func(r *types.ParsedResume) { r.Skills = []types.Skill{{Skill: ""}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := types.EmptyParsedResume()
			tt.mutate(&resume)

			err := ValidateParsedResume(resume)
			require.Error(t, err)
			_, ok := err.(*ValidationError)
			assert.True(t, ok, "expected ValidationError, got %T", err)
		})
	}
}

func TestValidateParsedResumeJSON_UnknownField(t *testing.T) {
	data, err := json.Marshal(types.EmptyParsedResume())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	doc["extra"] = true
	data, err = json.Marshal(doc)
	require.NoError(t, err)

	assert.Error(t, ValidateParsedResumeJSON(data))
}
