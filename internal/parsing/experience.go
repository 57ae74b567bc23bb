package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-parser/internal/types"
)

// anchor is a line carrying a date range; work entries are built around anchors.
type anchor struct {
	line  int
	dates dateRange
}

// ExtractWorkExperience builds one entry per date-range anchor in the experience section.
// The whole normalized text is scanned only when no experience section was detected.
func (r *Rules) ExtractWorkExperience(normalized string, sections SectionMap) []types.WorkExperience {
	text, ok := sections.Text(SectionExperience)
	if !ok {
		text = normalized
	}
	lines := splitLines(text)
	anchors := r.findAnchors(lines)

	entries := []types.WorkExperience{}
	claimed := make(map[int]bool)
	for i, a := range anchors {
		if claimed[a.line] {
			continue
		}
		lower := 0
		if i > 0 {
			lower = anchors[i-1].line + 1
		}
		lower = max(lower, a.line-experienceLinesBefore)

		entry := types.NewWorkExperience()
		entry.StartDate, entry.EndDate = a.dates.Start, a.dates.End

		first := a.line
		posIdx := r.findPosition(lines, a.line, lower, claimed)
		if posIdx >= 0 {
			entry.Position = strings.TrimSpace(lines[posIdx])
			first = min(first, posIdx)
		}
		company, companyIdx := r.findCompany(lines, a.line, lower, entry.Position, claimed)
		entry.Company = company
		if companyIdx >= 0 {
			first = min(first, companyIdx)
		}

		var last int
		entry.Responsibilities, last = r.collectDescription(lines, a.line)
		entry.Description = strings.Join(entry.Responsibilities, "\n")
		entry.Technologies = r.technologies(entry.Position + "\n" + entry.Description)

		for j := first; j <= last; j++ {
			claimed[j] = true
		}
		if entry.Company == "" && entry.Position == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// findAnchors returns the first date range of every line that has one.
func (r *Rules) findAnchors(lines []string) []anchor {
	var anchors []anchor
	for i, line := range lines {
		if dr, ok := r.findDateRange(line); ok {
			anchors = append(anchors, anchor{line: i, dates: dr})
		}
	}
	return anchors
}

// findPosition searches the lines above an anchor for a job title. A separator line is
// preferred over a keyword line, which is preferred over a merely capitalized line;
// within each tier the closest line wins.
func (r *Rules) findPosition(lines []string, idx, lower int, claimed map[int]bool) int {
	tiers := []func(line string) bool{
		func(line string) bool {
			n := utf8.RuneCountInString(line)
			return strings.ContainsAny(line, "/|") && n >= 5 && n <= 100
		},
		func(line string) bool {
			return containsAny(strings.ToLower(line), positionKeywords)
		},
		func(line string) bool {
			n := utf8.RuneCountInString(line)
			return r.titleShape.MatchString(line) && n >= 5 && n <= 80 && !r.fourDigits.MatchString(line)
		},
	}

	for _, accept := range tiers {
		for i := idx - 1; i >= lower && i >= 0; i-- {
			line := strings.TrimSpace(lines[i])
			if line == "" || claimed[i] || isBulletLine(line) || r.hasDateRange(line) || r.isSectionHeader(line) {
				continue
			}
			if accept(line) {
				return i
			}
		}
	}
	return -1
}

// findCompany reads the company from the anchor line, or from a standalone
// capitalized line just above it. It returns the line index used, or -1.
func (r *Rules) findCompany(lines []string, idx, lower int, position string, claimed map[int]bool) (string, int) {
	dateLine := lines[idx]
	for _, re := range []*regexp.Regexp{r.companyBeforeDate, r.companyBeforeYear} {
		m := re.FindStringSubmatch(dateLine)
		if m == nil {
			continue
		}
		if company := r.cleanCompany(m[1]); company != "" && company != position {
			return company, idx
		}
	}

	for i := idx - 1; i >= idx-companyLookback && i >= lower && i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		n := utf8.RuneCountInString(line)
		if line == "" || claimed[i] || isBulletLine(line) || n < 3 || line == position {
			continue
		}
		if r.companyLine.MatchString(line) && n <= 50 && !r.fourDigits.MatchString(line) && !r.isSectionHeader(line) {
			if company := r.cleanCompany(line); company != "" {
				return company, i
			}
		}
	}
	return "", -1
}

// cleanCompany strips separators and trailing month names from a company candidate.
func (r *Rules) cleanCompany(candidate string) string {
	company := strings.Trim(strings.TrimSpace(candidate), ",|-– ")
	company = r.trimTrailingMonths(company)
	if company == "" || r.isMonthToken(company) {
		return ""
	}
	return company
}

// collectDescription gathers bullet lines and longer sentences after an anchor. It stops at
// the next line with a four-digit year and before the header lines of the next entry.
// The second return value is the index of the last line consumed.
func (r *Rules) collectDescription(lines []string, idx int) ([]string, int) {
	description := []string{}
	last := idx
	end := min(len(lines), idx+experienceLinesAfter)
	for i := idx + 1; i < end; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if isBulletLine(line) {
			if item := stripBullet(line); item != "" {
				description = append(description, item)
			}
			last = i
			continue
		}
		if r.fourDigits.MatchString(line) || r.startsNextEntry(lines, i, end) {
			break
		}
		if utf8.RuneCountInString(line) >= descriptionMinRunes {
			description = append(description, line)
			last = i
		}
	}
	return description, last
}

// startsNextEntry reports whether the non-bullet line at i is followed, within the company
// lookback, by a date-range line with no bullet in between.
func (r *Rules) startsNextEntry(lines []string, i, end int) bool {
	seen := 0
	for k := i + 1; k < end && seen <= companyLookback; k++ {
		line := strings.TrimSpace(lines[k])
		if line == "" {
			continue
		}
		if isBulletLine(line) {
			return false
		}
		if r.hasDateRange(line) {
			return true
		}
		seen++
	}
	return false
}

// isSectionHeader reports whether a line would be read as a section header.
func (r *Rules) isSectionHeader(line string) bool {
	if !r.isHeaderLike(line) {
		return false
	}
	_, ok := r.matchHeader(line)
	return ok
}
