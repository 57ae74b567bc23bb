package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SectionKind is a canonical résumé section.
type SectionKind int

// Section kinds recognised by the header vocabulary. SectionOther collects text outside any header.
const (
	SectionOther SectionKind = iota
	SectionEducation
	SectionExperience
	SectionSkills
	SectionProjects
	SectionCertifications
	SectionSummary
	SectionLanguages
	SectionInterests
)

var sectionKindNames = [...]string{
	SectionOther:          "other",
	SectionEducation:      "education",
	SectionExperience:     "experience",
	SectionSkills:         "skills",
	SectionProjects:       "projects",
	SectionCertifications: "certifications",
	SectionSummary:        "summary",
	SectionLanguages:      "languages",
	SectionInterests:      "interests",
}

func (k SectionKind) String() string {
	if k < 0 || int(k) >= len(sectionKindNames) {
		return "unknown"
	}
	return sectionKindNames[k]
}

// ParseSectionKind returns the kind for a canonical section name.
func ParseSectionKind(name string) (SectionKind, bool) {
	for i, n := range sectionKindNames {
		if n == name {
			return SectionKind(i), true
		}
	}
	return SectionOther, false
}

// SectionMap holds the text of each detected section. It is built once per parse and only read afterwards.
type SectionMap map[SectionKind]string

// Text returns the section text and whether the section was detected.
func (m SectionMap) Text(kind SectionKind) (string, bool) {
	text, ok := m[kind]
	return text, ok
}

// Kinds returns the detected kinds in declaration order.
func (m SectionMap) Kinds() []SectionKind {
	kinds := make([]SectionKind, 0, len(m))
	for i := range sectionKindNames {
		if _, ok := m[SectionKind(i)]; ok {
			kinds = append(kinds, SectionKind(i))
		}
	}
	return kinds
}

// SplitSections assigns every line of normalized text to the section opened by the closest
// header above it. Lines before the first header land in SectionOther, which is kept only
// when it carries more than a trivial amount of text.
func (r *Rules) SplitSections(normalized string) SectionMap {
	buffers := make(map[SectionKind][]string)
	current := SectionOther

	for _, line := range strings.Split(normalized, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !r.isHeaderLike(trimmed) {
			buffers[current] = append(buffers[current], line)
			continue
		}

		header, ok := r.matchHeader(trimmed)
		if !ok {
			buffers[current] = append(buffers[current], line)
			continue
		}

		current = header.kind
		if rest := headerRemainder(trimmed, header); utf8.RuneCountInString(rest) > headerRemainderMinRunes {
			buffers[current] = append(buffers[current], rest)
		}
	}

	sections := make(SectionMap, len(buffers))
	for kind, lines := range buffers {
		if len(lines) == 0 {
			continue
		}
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if kind == SectionOther && utf8.RuneCountInString(text) <= otherSectionMinRunes {
			continue
		}
		sections[kind] = text
	}
	return sections
}

// isHeaderLike reports whether a trimmed line is shaped like a section title.
func (r *Rules) isHeaderLike(line string) bool {
	n := utf8.RuneCountInString(line)
	if n < headerMinRunes || n > headerMaxRunes {
		return false
	}
	if r.listMarker.MatchString(line) || r.sentenceEnd.MatchString(line) {
		return false
	}

	var letters, upper, lower int
	for _, c := range line {
		if unicode.IsLetter(c) {
			letters++
		}
		if unicode.IsUpper(c) {
			upper++
		} else if unicode.IsLower(c) {
			lower++
		}
	}
	if float64(letters)/float64(n) < headerMinLetterRatio {
		return false
	}
	return upper == 0 || lower > 0 || n <= headerMaxAllCapsRunes
}

// matchHeader tries exact, prefix and bounded-substring matching against the vocabulary.
func (r *Rules) matchHeader(line string) (headerVariant, bool) {
	compact := strings.Join(strings.Fields(strings.ToLower(line)), "")
	if v, ok := r.headerExact[r.nonLetters.ReplaceAllString(compact, "")]; ok {
		return v, true
	}

	for _, v := range r.headers {
		if len(v.compact) < 4 || !strings.HasPrefix(compact, v.compact) {
			continue
		}
		if !letterAt(compact, len(v.compact)) {
			return v, true
		}
	}

	for _, v := range r.headers {
		if len(v.compact) < 4 {
			continue
		}
		for from := 1; from < len(compact); {
			idx := strings.Index(compact[from:], v.compact)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(v.compact)
			if !letterBefore(compact, start) && !letterAt(compact, end) {
				return v, true
			}
			from = start + 1
		}
	}
	return headerVariant{}, false
}

// headerRemainder returns the line content after the header words and any trailing colon.
func headerRemainder(line string, v headerVariant) string {
	loc := v.strip.FindStringIndex(line)
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(line[loc[1]:])
}

func letterAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	c, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(c)
}

func letterBefore(s string, i int) bool {
	if i <= 0 {
		return false
	}
	c, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(c)
}
