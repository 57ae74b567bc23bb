package ingestion

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_DOCX(t *testing.T) {
	data := buildDOCX(t, `
<w:p><w:r><w:t>John Smith</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Software </w:t></w:r><w:r><w:t>Engineer</w:t></w:r><w:r><w:tab/><w:t>2020 - Present</w:t></w:r></w:p>
<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>`)

	doc, err := ExtractText("cv.docx", "", data)
	require.NoError(t, err)

	assert.Equal(t, "John Smith\nSoftware Engineer        2020 - Present\nLine one\nLine two", doc.Text)
	assert.Equal(t, "docx", doc.Metadata.Format)
}

func TestExtractDOCX_MissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = extractDOCX(buf.Bytes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtractText_HTML(t *testing.T) {
	page := `<html><head><title>CV</title><style>p { color: red; }</style></head><body>
<nav>Home</nav>
<h1>Jane Doe</h1>
<p>Senior   Engineer<br>jane@example.com</p>
<ul><li>Go</li><li>Rust</li></ul>
<script>alert(1)</script>
<table><tr><td>Contact</td><td>Experience</td></tr></table>
</body></html>`

	doc, err := ExtractText("cv.html", "text/html", []byte(page))
	require.NoError(t, err)

	assert.Contains(t, doc.Text, "Jane Doe")
	assert.Contains(t, doc.Text, "Senior Engineer\njane@example.com")
	assert.Contains(t, doc.Text, "• Go\n• Rust")
	assert.Contains(t, doc.Text, "Contact        Experience")
	assert.NotContains(t, doc.Text, "Home")
	assert.NotContains(t, doc.Text, "alert")
	assert.NotContains(t, doc.Text, "color")
	assert.NotContains(t, doc.Text, "\n\n\n")
}

func TestLayoutRow(t *testing.T) {
	tests := []struct {
		name  string
		texts []pdf.Text
		want  string
	}{
		{
			name: "adjacent glyphs",
			texts: []pdf.Text{
				{X: 0, W: 5, FontSize: 10, S: "G"},
				{X: 5, W: 5, FontSize: 10, S: "o"},
			},
			want: "Go",
		},
		{
			name: "word gap becomes one space",
			texts: []pdf.Text{
				{X: 0, W: 5, FontSize: 10, S: "A"},
				{X: 8, W: 5, FontSize: 10, S: "B"},
			},
			want: "A B",
		},
		{
			name: "column gap becomes a wide run",
			texts: []pdf.Text{
				{X: 0, W: 10, FontSize: 10, S: "AB"},
				{X: 100, W: 5, FontSize: 10, S: "C"},
			},
			want: "AB" + "                  " + "C",
		},
		{
			name: "unsorted glyphs are ordered by position",
			texts: []pdf.Text{
				{X: 5, W: 5, FontSize: 10, S: "i"},
				{X: 0, W: 5, FontSize: 10, S: "H"},
			},
			want: "Hi",
		},
		{
			name: "missing widths are estimated",
			texts: []pdf.Text{
				{X: 0, S: "ab"},
				{X: 10, S: "c"},
			},
			want: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layoutRow(tt.texts))
		})
	}
}
