package parsing

import (
	"strings"
	"unicode/utf8"
)

// prepareInput fixes line endings and replaces invalid UTF-8 so every later stage sees clean runes.
func prepareInput(text string) string {
	text = strings.ToValidUTF8(text, "�")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Normalize trims every line and collapses runs of three or more spaces.
// Line count is preserved, blank lines included, so line indexes stay comparable with the raw text.
func (r *Rules) Normalize(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = r.wideSpaces.ReplaceAllString(strings.TrimSpace(line), " ")
	}
	return strings.Join(lines, "\n")
}

// FlatText rejoins emails broken by stray whitespace and collapses intra-line spacing.
// It only feeds the contact-field patterns.
func (r *Rules) FlatText(raw string) string {
	text := r.splitEmailTight.ReplaceAllString(raw, "${1}@${2}.${3}")
	text = r.splitEmailLoose.ReplaceAllString(text, "${1}@${2}.${3}")
	return r.inlineSpace.ReplaceAllString(text, " ")
}

// isBulletLine checks if a trimmed line starts with a list marker.
func isBulletLine(line string) bool {
	first, _ := utf8.DecodeRuneInString(line)
	return first != utf8.RuneError && strings.ContainsRune(bulletMarkers, first)
}

// stripBullet removes leading list markers and the space after them.
func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, bulletMarkers+" \t"))
}

// truncateRunes returns at most n runes of s.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// splitLines splits text into lines without dropping blanks.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// leadingIndent counts leading spaces, with a tab counted as one column.
func leadingIndent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
