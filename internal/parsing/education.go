package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-parser/internal/types"
)

var institutionKeywords = []string{"university", "college", "institute", "school", "academy", "polytechnic", "hochschule"}

// ExtractEducation builds one entry per degree line in the education section. Each entry's
// block is the degree line plus up to three following lines, cut short by the next degree line.
// The whole normalized text is scanned only when no education section was detected.
func (r *Rules) ExtractEducation(normalized string, sections SectionMap) []types.Education {
	text, ok := sections.Text(SectionEducation)
	if !ok {
		text = normalized
	}
	lines := splitLines(text)

	type degreeAnchor struct {
		line int
		loc  []int
	}
	var anchors []degreeAnchor
	for i, line := range lines {
		if loc := r.findDegree(line); loc != nil {
			anchors = append(anchors, degreeAnchor{line: i, loc: loc})
		}
	}

	entries := []types.Education{}
	for i, a := range anchors {
		end := min(len(lines), a.line+educationLinesAfter+1)
		if i+1 < len(anchors) {
			end = min(end, anchors[i+1].line)
		}
		anchorLine := lines[a.line]
		block := append([]string{anchorLine[:a.loc[0]] + " | " + anchorLine[a.loc[1]:]}, lines[a.line+1:end]...)

		entry := types.NewEducation()
		entry.Degree = strings.TrimSpace(anchorLine[a.loc[0]:a.loc[1]])
		entry.Field = r.degreeFieldAfter(anchorLine[a.loc[1]:])
		entry.Institution = r.findInstitution(block)
		for _, line := range block {
			if dr, ok := r.findDateRange(line); ok {
				entry.StartDate, entry.EndDate = dr.Start, dr.End
				break
			}
		}
		for _, line := range block {
			if m := r.courses.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				entry.KeyCourses = r.splitList(m[1])
				break
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// findDegree returns the span of the first degree keyword on a line, or nil.
func (r *Rules) findDegree(line string) []int {
	for _, re := range r.degrees {
		if loc := re.FindStringIndex(line); loc != nil {
			return loc
		}
	}
	return nil
}

// findInstitution tries the named-institution pattern, then the acronym pattern, line by line.
func (r *Rules) findInstitution(block []string) string {
	for _, line := range block {
		if m := r.institutionNamed.FindStringSubmatch(line); m != nil {
			if name := r.cleanInstitution(m[1]); name != "" {
				return name
			}
		}
		if m := r.institutionAcronym.FindStringSubmatch(line); m != nil {
			if name := r.cleanInstitution(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

func (r *Rules) cleanInstitution(candidate string) string {
	name := r.trimTrailingMonths(strings.Trim(strings.TrimSpace(candidate), ",|-– "))
	if utf8.RuneCountInString(name) < 3 || r.fourDigits.MatchString(name) {
		return ""
	}
	if containsAny(strings.ToLower(name), institutionNoise) {
		return ""
	}
	return name
}

// degreeFieldAfter reads "in X" or "of X" right after the degree, stopping at an
// institution keyword, an acronym or a month name.
func (r *Rules) degreeFieldAfter(rest string) string {
	m := r.degreeField.FindStringSubmatch(rest)
	if m == nil {
		return ""
	}
	var words []string
	for _, w := range strings.Fields(m[1]) {
		lower := strings.ToLower(w)
		if containsAny(lower, institutionKeywords) || r.isMonthToken(w) || isAcronym(w) {
			break
		}
		words = append(words, w)
	}
	return strings.TrimRight(strings.Join(words, " "), " &")
}

func isAcronym(word string) bool {
	if utf8.RuneCountInString(word) < 2 {
		return false
	}
	for _, c := range word {
		if !unicode.IsUpper(c) {
			return false
		}
	}
	return true
}
