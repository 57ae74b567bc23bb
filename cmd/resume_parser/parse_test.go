package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
Software Engineer
jane.doe@example.com

SKILLS
Go, Python, SQL
`

func TestReadInput_Stdin(t *testing.T) {
	doc, err := readInput("-", strings.NewReader("Jane Doe\r\njane@example.com\r\n"))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\njane@example.com", doc.Text)
	assert.Equal(t, string(ingestion.FormatText), doc.Metadata.Format)
}

func TestReadInput_EmptyStdin(t *testing.T) {
	_, err := readInput("-", strings.NewReader("   \n"))
	assert.ErrorIs(t, err, ingestion.ErrNoTextContent)
}

func TestReadInput_File(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "resume.txt", sampleResume)

	doc, err := readInput(path, nil)
	require.NoError(t, err)

	assert.Contains(t, doc.Text, "jane.doe@example.com")
	assert.Equal(t, "resume.txt", doc.Metadata.Filename)
}

func TestReadInput_MissingFile(t *testing.T) {
	_, err := readInput(filepath.Join(t.TempDir(), "nope.txt"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestParseDocument(t *testing.T) {
	doc, err := ingestion.ExtractText("resume.txt", "", []byte(sampleResume))
	require.NoError(t, err)

	recorder := &observability.Recorder{}
	result, jsonBytes, err := parseDocument(parsing.New(parsing.WithTracer(recorder)), doc, nil)
	require.NoError(t, err)

	assert.Equal(t, "jane.doe@example.com", result.PersonalInfo.Email)
	assert.True(t, bytes.HasPrefix(jsonBytes, []byte("{\n  \"personalInfo\"")))
	assert.Contains(t, recorder.Stages(), parsing.StageSkills)

	var decoded types.ParsedResume
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Equal(t, result, decoded)
}

func TestNewResultValidator(t *testing.T) {
	doc, err := ingestion.ExtractText("resume.txt", "", []byte(sampleResume))
	require.NoError(t, err)
	parser := parsing.New()

	t.Run("no validation", func(t *testing.T) {
		check, err := newResultValidator(false, "")
		require.NoError(t, err)
		assert.Nil(t, check)
	})

	t.Run("embedded schema accepts parser output", func(t *testing.T) {
		check, err := newResultValidator(true, "")
		require.NoError(t, err)
		_, _, err = parseDocument(parser, doc, check)
		assert.NoError(t, err)
	})

	t.Run("schema file replaces embedded schema", func(t *testing.T) {
		schemaPath := writeFixture(t, t.TempDir(), "strict.schema.json", `{"type": "object", "required": ["candidateId"]}`)
		check, err := newResultValidator(false, schemaPath)
		require.NoError(t, err)

		_, _, err = parseDocument(parser, doc, check)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not validate against schema")
	})

	t.Run("missing schema file", func(t *testing.T) {
		_, err := newResultValidator(true, filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read schema file")
	})
}

func TestParseCommand_InProcess(t *testing.T) {
	dir := t.TempDir()
	in := writeFixture(t, dir, "resume.txt", sampleResume)
	out := filepath.Join(dir, "out.json")
	meta := filepath.Join(dir, "out.meta.json")

	t.Cleanup(func() {
		parseInputFile, parseOutputFile, parseMetaFile = "", "", ""
		parseValidate, parseVerbose = false, false
		parseSchemaFile = ""
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"parse", "--in", in, "--out", out, "--meta", meta, "--verbose"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var result types.ParsedResume
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "jane.doe@example.com", result.PersonalInfo.Email)

	metaData, err := os.ReadFile(meta)
	require.NoError(t, err)
	assert.Contains(t, string(metaData), `"filename": "resume.txt"`)

	assert.Contains(t, stdout.String(), "Successfully parsed résumé")
	assert.Contains(t, stderr.String(), "PIPELINE STAGES")
}

func TestParseCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantError   bool
		errorString string
	}{
		{
			name:        "Missing --in flag",
			args:        []string{"parse"},
			wantError:   true,
			errorString: "required",
		},
		{
			name:        "Unknown file",
			args:        []string{"parse", "--in", "/does/not/exist.txt"},
			wantError:   true,
			errorString: "file not found",
		},
		{
			name:        "Unsupported type",
			args:        []string{"parse", "--in", "photo.png"},
			wantError:   true,
			errorString: "",
		},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorString != "" {
					assert.Contains(t, string(output), tt.errorString)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
