package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	// gapThreshold is the fraction of a space width above which two glyphs are treated as separate words.
	gapThreshold = 0.4
	// defaultGlyphWidth is used when a glyph carries no font size.
	defaultGlyphWidth = 5.0
)

// extractPDF rebuilds each page row by row so horizontal gaps survive as runs of spaces.
// The reader's plain-text stream is the fallback when rows yield nothing.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	text, err = pdfRows(r)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	return pdfPlainText(r)
}

func pdfRows(r *pdf.Reader) (string, error) {
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read rows on page %d: %w", i, err)
		}
		for _, row := range rows {
			b.WriteString(layoutRow(append([]pdf.Text(nil), row.Content...)))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func pdfPlainText(r *pdf.Reader) (string, error) {
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return buf.String(), nil
}

// layoutRow orders a row's glyphs left to right and fills the space between them with
// as many spaces as the gap is wide.
func layoutRow(texts []pdf.Text) string {
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var b strings.Builder
	cursor := math.Inf(-1)
	for _, t := range texts {
		width := glyphWidth(t)
		if !math.IsInf(cursor, -1) {
			if gap := t.X - cursor; gap > width*gapThreshold {
				b.WriteString(strings.Repeat(" ", max(1, int(math.Round(gap/width)))))
			}
		}
		b.WriteString(t.S)
		end := t.X + t.W
		if t.W <= 0 {
			end = t.X + width*float64(utf8.RuneCountInString(t.S))
		}
		cursor = max(cursor, end)
	}
	return b.String()
}

// glyphWidth approximates the width of one space in the glyph's font.
func glyphWidth(t pdf.Text) float64 {
	if t.FontSize <= 0 {
		return defaultGlyphWidth
	}
	return t.FontSize / 2
}
