package ingestion

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Format names a supported document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var (
	extensionFormats = map[string]Format{
		".pdf":  FormatPDF,
		".docx": FormatDOCX,
		".html": FormatHTML,
		".htm":  FormatHTML,
		".txt":  FormatText,
		".text": FormatText,
		".md":   FormatText,
	}
	contentTypeFormats = map[string]Format{
		"application/pdf": FormatPDF,
		docxContentType:   FormatDOCX,
		"text/html":       FormatHTML,
		"text/plain":      FormatText,
		"text/markdown":   FormatText,
	}
	excessiveBlankLines = regexp.MustCompile(`\n\n\n+`)
)

// Document is the text of an upload together with its metadata.
type Document struct {
	Text     string
	Metadata Metadata
}

// DetectFormat picks a format from the file extension, falling back to the content type.
// A file with neither is read as plain text.
func DetectFormat(filename, contentType string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}

	mediaType := ""
	if contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return "", &UnsupportedFormatError{Filename: filename, ContentType: contentType}
		}
		mediaType = parsed
	}
	if f, ok := contentTypeFormats[mediaType]; ok {
		return f, nil
	}
	if ext == "" && (mediaType == "" || mediaType == "application/octet-stream") {
		return FormatText, nil
	}
	return "", &UnsupportedFormatError{Filename: filename, ContentType: contentType}
}

// ExtractText reads the text out of an uploaded document and cleans it.
func ExtractText(filename, contentType string, data []byte) (Document, error) {
	format, err := DetectFormat(filename, contentType)
	if err != nil {
		return Document{}, err
	}

	var raw string
	switch format {
	case FormatPDF:
		raw, err = extractPDF(data)
	case FormatDOCX:
		raw, err = extractDOCX(data)
	case FormatHTML:
		raw, err = extractHTML(data)
	default:
		raw = string(data)
	}
	if err != nil {
		return Document{}, &ExtractionError{Format: string(format), Cause: err}
	}

	text := CleanText(raw)
	if strings.TrimSpace(text) == "" {
		return Document{}, ErrNoTextContent
	}
	return Document{Text: text, Metadata: *NewMetadata(text, filename, format)}, nil
}

// CleanText normalizes extracted text while keeping its layout. Runs of spaces inside a line
// are left alone because the parser reads wide gaps as column boundaries.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ToValidUTF8(content, "\uFFFD")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = norm.NFC.String(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	result := strings.Join(lines, "\n")

	result = excessiveBlankLines.ReplaceAllString(result, "\n\n")
	return strings.Trim(result, "\n")
}

// cleanLine drops control characters, turns non-breaking spaces into spaces and trims the line end.
func cleanLine(line string) string {
	line = strings.Map(func(c rune) rune {
		switch {
		case c == '\t':
			return c
		case c == '\u00a0' || c == '\u2007' || c == '\u202f':
			return ' '
		case unicode.IsControl(c) || c == '\ufeff':
			return -1
		}
		return c
	}, line)
	return strings.TrimRight(line, " \t")
}

// ReadFile reads a résumé file from disk and extracts its text.
func ReadFile(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, fmt.Errorf("file not found: %w", err)
		}
		return Document{}, fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractText(filepath.Base(path), "", content)
}

// Supported reports whether a file name has an extension ExtractText can read.
func Supported(filename string) bool {
	_, ok := extensionFormats[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// WriteOutput writes a parse result as <name>.json, and its metadata as <name>.meta.json when given.
func WriteOutput(outDir, name string, result []byte, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	resultPath := filepath.Join(outDir, name+".json")
	if err := os.WriteFile(resultPath, result, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}

	if metadata == nil {
		return nil
	}
	metaPath := filepath.Join(outDir, name+".meta.json")
	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
