package parsing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-parser/internal/types"
)

const titleSeparators = " \t|-–,:"

type personName struct {
	first string
	last  string
	title string
	// raw is the matched text as it appears in the input.
	raw string
}

type nameStrategy struct {
	label string
	match func(*Rules, string) (personName, bool)
}

// nameStrategies run in order and the first match wins. Each one trades a little
// precision for recall compared with the one before it.
var nameStrategies = []nameStrategy{
	{label: "leading", match: (*Rules).nameAtStart},
	{label: "name-title", match: (*Rules).nameBeforeTitle},
	{label: "trailing-lines", match: (*Rules).nameInLastLines},
	{label: "standalone-line", match: (*Rules).nameOnOwnLine},
}

// ExtractPersonalInfo recovers contact details from flat text and the person's name from
// nameText (the raw text, optionally preceded by column hints). The second return value
// names the strategy that produced the name, or "" when none did.
func (r *Rules) ExtractPersonalInfo(nameText, flat string, sections SectionMap) (types.PersonalInfo, string) {
	info := types.PersonalInfo{Interests: []string{}}
	flat = headOf(flat, contactScanBytes)
	info.Email = strings.ToLower(r.email.FindString(flat))
	info.Phone = r.findPhone(flat)
	if m := r.linkedin.FindString(flat); m != "" {
		info.LinkedIn = "https://" + m
	}
	info.GitHub = r.findGitHub(flat)
	info.Website = r.findWebsite(flat)

	var strategy string
	for _, s := range nameStrategies {
		name, ok := s.match(r, nameText)
		if !ok {
			continue
		}
		info.FirstName, info.LastName = name.first, name.last
		info.ProfessionalTitle = name.title
		if info.ProfessionalTitle == "" {
			info.ProfessionalTitle = r.titleAfterName(nameText, name.raw)
		}
		strategy = s.label
		break
	}

	if summary, ok := sections.Text(SectionSummary); ok {
		info.Summary = strings.Join(strings.Fields(summary), " ")
	}
	if interests, ok := sections.Text(SectionInterests); ok {
		info.Interests = r.splitList(interests)
	}
	return info, strategy
}

// findPhone returns the first candidate with enough digits, separators removed.
func (r *Rules) findPhone(flat string) string {
	for _, re := range r.phones {
		for _, candidate := range re.FindAllString(flat, -1) {
			cleaned := r.phoneStrip.ReplaceAllString(candidate, "")
			if countDigits(cleaned) >= phoneMinDigits {
				return cleaned
			}
		}
	}
	return ""
}

func (r *Rules) findGitHub(flat string) string {
	if m := r.github.FindStringSubmatch(flat); m != nil {
		return "https://github.com/" + m[1]
	}
	if m := r.githubIO.FindString(flat); m != "" {
		return "https://" + m
	}
	return ""
}

// findWebsite returns the first URL that is not a profile or credential link.
func (r *Rules) findWebsite(flat string) string {
	for _, u := range r.url.FindAllString(flat, -1) {
		lower := strings.ToLower(u)
		if strings.Contains(lower, "github.") || containsAny(lower, websiteDenyHosts) {
			continue
		}
		u = strings.TrimRight(u, ".,;:")
		if !strings.HasPrefix(lower, "http") {
			u = "https://" + u
		}
		return u
	}
	return ""
}

// nameAtStart matches a two-token name at the very beginning of the text.
func (r *Rules) nameAtStart(text string) (personName, bool) {
	trimmed := strings.TrimSpace(text)
	patterns := []struct {
		re      *regexp.Regexp
		allCaps bool
	}{
		{r.nameAllCaps, true},
		{r.nameNormal, false},
		{r.nameMixed, false},
	}

	for _, p := range patterns {
		m := p.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		tokens := strings.Fields(m[1])
		if len(tokens) != 2 || r.deniedName(tokens) {
			continue
		}
		if idx := strings.Index(text, m[1]); idx < 0 || idx >= nameMaxOffset {
			continue
		}
		if next := firstWord(restOfLine(trimmed[len(m[0]):])); next != "" && r.jobWords[strings.ToLower(next)] {
			continue
		}
		if p.allCaps {
			tokens = []string{capitalize(tokens[0]), capitalize(tokens[1])}
		}
		return personName{first: tokens[0], last: tokens[1], raw: m[1]}, true
	}
	return personName{}, false
}

// nameBeforeTitle finds "Name   Job Title" anywhere, separated by a wide gap or blank line.
func (r *Rules) nameBeforeTitle(text string) (personName, bool) {
	for _, m := range r.nameWithTitle.FindAllStringSubmatch(headOf(text, contactScanBytes), -1) {
		title := m[2]
		if !containsAny(strings.ToLower(title), titleIndicators) {
			continue
		}
		tokens := strings.Fields(m[1])
		if r.deniedName(tokens) {
			continue
		}
		return personName{first: tokens[0], last: strings.Join(tokens[1:], " "), title: title, raw: m[1]}, true
	}
	return personName{}, false
}

// nameInLastLines handles résumés whose header block ended up at the bottom of the extracted text.
func (r *Rules) nameInLastLines(text string) (personName, bool) {
	lines := lastNonEmptyLines(text, trailingNameLines)
	for _, line := range lines {
		m := r.nameLead.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		raw := m[1]
		tokens := strings.Fields(raw)
		rest := line[len(m[0]):]
		// "Jane Doe Senior Developer": the first title word lands in the name capture.
		if len(tokens) == 3 && r.isTitleWord(tokens[2]) {
			cut := strings.LastIndex(raw, tokens[2])
			raw = strings.TrimRight(raw[:cut], " \t")
			tokens = tokens[:2]
			rest = line[cut:]
		}
		rest = strings.Trim(rest, titleSeparators)
		if rest != "" && !containsAny(strings.ToLower(rest), titleIndicators) {
			continue
		}
		if r.deniedName(tokens) {
			continue
		}
		name := personName{first: tokens[0], last: strings.Join(tokens[1:], " "), raw: raw}
		if rest != "" && r.looksLikeTitle(rest) {
			name.title = rest
		}
		return name, true
	}
	return personName{}, false
}

func (r *Rules) isTitleWord(token string) bool {
	lower := strings.ToLower(token)
	if r.jobWords[lower] {
		return true
	}
	for _, w := range titleIndicators {
		if lower == w {
			return true
		}
	}
	return false
}

// nameOnOwnLine accepts one of the first non-empty lines when it holds nothing but a name.
func (r *Rules) nameOnOwnLine(text string) (personName, bool) {
	lines := splitLines(text)
	if len(lines) > leadingNameLines {
		lines = lines[:leadingNameLines]
	}
	var candidates []string
	for _, line := range lines {
		if utf8.RuneCountInString(strings.TrimSpace(line)) >= 3 {
			candidates = append(candidates, line)
		}
		if len(candidates) == leadingNameCandidates {
			break
		}
	}

	for i, line := range candidates {
		trimmed := strings.TrimSpace(line)
		if r.hasSkipWord(trimmed) || !r.nameOnly.MatchString(trimmed) {
			continue
		}
		if i+1 < len(candidates) {
			next := candidates[i+1]
			if leadingIndent(next) >= nameLineIndentMax || containsAny(strings.ToLower(next), titleIndicators) {
				continue
			}
		}
		tokens := strings.Fields(trimmed)
		if r.deniedName(tokens) {
			continue
		}
		return personName{first: tokens[0], last: strings.Join(tokens[1:], " "), raw: trimmed}, true
	}
	return personName{}, false
}

// titleAfterName returns the job title written right after the name, on the same line or the next one.
func (r *Rules) titleAfterName(text, rawName string) string {
	if rawName == "" {
		return ""
	}
	idx := strings.Index(text, rawName)
	if idx < 0 {
		return ""
	}
	after := text[idx+len(rawName):]
	if rest := strings.Trim(restOfLine(after), titleSeparators); rest != "" {
		if r.looksLikeTitle(rest) {
			return rest
		}
		return ""
	}
	for _, line := range strings.SplitN(after, "\n", 4)[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r.looksLikeTitle(line) {
			return line
		}
		break
	}
	return ""
}

// looksLikeTitle reports whether a short line reads as a job title.
func (r *Rules) looksLikeTitle(line string) bool {
	n := utf8.RuneCountInString(line)
	if n < 3 || n > 60 || strings.ContainsAny(line, "@0123456789") {
		return false
	}
	return containsAny(strings.ToLower(line), positionKeywords)
}

func (r *Rules) deniedName(tokens []string) bool {
	if len(tokens) < 2 || len(tokens) > 3 {
		return true
	}
	for _, t := range tokens {
		lower := strings.ToLower(t)
		if r.commonWords[lower] || r.jobWords[lower] {
			return true
		}
	}
	return false
}

func (r *Rules) hasSkipWord(line string) bool {
	for _, w := range nameLineSkipWords {
		if containsPhrase(line, w) {
			return true
		}
	}
	return false
}

// splitList splits a free-text list on separators and line breaks.
func (r *Rules) splitList(text string) []string {
	items := []string{}
	for _, line := range splitLines(text) {
		for _, part := range r.listSeparator.Split(stripBullet(strings.TrimSpace(line)), -1) {
			part = strings.TrimSpace(part)
			if utf8.RuneCountInString(part) >= 2 {
				items = append(items, part)
			}
		}
	}
	return items
}

func lastNonEmptyLines(text string, n int) []string {
	lines := splitLines(text)
	var out []string
	for i := len(lines) - 1; i >= 0 && len(out) < n; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// headOf returns at most n leading bytes of s without splitting a rune.
func headOf(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func restOfLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimFunc(fields[0], func(c rune) bool { return !unicode.IsLetter(c) })
}

func capitalize(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}

func countDigits(s string) int {
	n := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			n++
		}
	}
	return n
}
