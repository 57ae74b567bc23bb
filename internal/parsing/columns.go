package parsing

import (
	"strings"
	"unicode/utf8"
)

var contactHintWords = []string{"contact", "phone", "email", "@", "+"}

// ColumnHint reports lines that look like two side-by-side columns.
// It is advisory: the parser never switches mode because of it.
type ColumnHint struct {
	HasHint           bool
	HintCount         int
	PersonalInfoHints []string
}

// DetectColumns looks for lines with a wide whitespace gap and collects left columns that carry contact details.
func (r *Rules) DetectColumns(raw string) ColumnHint {
	var hint ColumnHint
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		loc := r.columnGap.FindStringIndex(trimmed)
		if loc == nil {
			continue
		}
		left := strings.TrimSpace(trimmed[:loc[0]])
		right := strings.TrimSpace(trimmed[loc[1]:])
		if utf8.RuneCountInString(left) <= columnPartMinRunes || utf8.RuneCountInString(right) <= columnPartMinRunes {
			continue
		}
		hint.HintCount++
		if containsAny(strings.ToLower(left), contactHintWords) {
			hint.PersonalInfoHints = append(hint.PersonalInfoHints, left)
		}
	}
	hint.HasHint = hint.HintCount > 0
	return hint
}

// PersonalText builds the text handed to the personal-info extractor: contact hints
// first, then the head of the raw text. Without hints it is the raw text itself.
func (h ColumnHint) PersonalText(raw string) string {
	if len(h.PersonalInfoHints) == 0 {
		return raw
	}
	return strings.Join(h.PersonalInfoHints, "\n") + "\n" + truncateRunes(raw, personalTextPrefixRunes)
}
