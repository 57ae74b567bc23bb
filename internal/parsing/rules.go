package parsing

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Window sizes and thresholds used by the extractors.
const (
	// experienceLinesBefore and experienceLinesAfter bound the context block around a date anchor.
	experienceLinesBefore = 5
	experienceLinesAfter  = 10
	// companyLookback is how many lines above a date anchor may hold a standalone company name.
	companyLookback = 2
	// educationLinesAfter is the number of lines after a degree anchor that belong to its block.
	educationLinesAfter = 3

	columnGapMin            = 8
	columnPartMinRunes      = 3
	personalTextPrefixRunes = 500
	otherSectionMinRunes    = 50
	headerRemainderMinRunes = 5
	headerMinRunes          = 3
	headerMaxRunes          = 50
	headerMinLetterRatio    = 0.6
	headerMaxAllCapsRunes   = 10
	phoneMinDigits          = 8
	nameMaxOffset           = 50
	trailingNameLines       = 10
	// contactScanBytes bounds the prefix searched for contact details and inline names.
	contactScanBytes = 64 << 10
	leadingNameLines        = 10
	leadingNameCandidates   = 3
	nameLineIndentMax       = 3
	descriptionMinRunes     = 10
	projectLineMinRunes     = 5
	projectTitleMaxRunes    = 100
	certificateLineMinRunes = 5
	certificateNameMinRunes = 3
	certificateBareMinRunes = 10
)

// monthPattern matches English month names and abbreviations, without the trailing dot.
const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

const yearPattern = `(?:19|20)\d{2}`

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "may": "05", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// sectionHeaders lists header variants per section. Order decides prefix and substring matching.
var sectionHeaders = []struct {
	kind     SectionKind
	variants []string
}{
	{SectionEducation, []string{"education", "academic background", "academic", "qualifications"}},
	{SectionExperience, []string{"experience", "work experience", "professional experience", "employment history", "employment", "work history"}},
	{SectionSkills, []string{"skills", "technical skills", "core competencies", "competencies"}},
	{SectionProjects, []string{"projects", "project experience"}},
	{SectionCertifications, []string{"certifications", "certificates", "certificate"}},
	{SectionSummary, []string{"summary", "profile", "about", "objective"}},
	{SectionLanguages, []string{"languages", "language"}},
	{SectionInterests, []string{"interests", "hobbies"}},
}

var (
	// commonNameWords never appear as a token of a person's name.
	commonNameWords = []string{
		"the", "and", "for", "with", "from", "to", "at", "in", "on", "of",
		"contact", "email", "phone", "address", "date", "birth", "number", "present",
		"linkedin", "github", "master", "bachelor", "degree", "university", "college",
		"projects", "experience", "education", "skills", "languages", "certifications",
		"interests", "summary", "profile", "resume", "curriculum", "vitae",
	}

	// jobTitleWords mark a token or a following word as a job title rather than a name.
	jobTitleWords = []string{
		"software", "engineer", "developer", "manager", "analyst", "specialist", "architect",
		"scientist", "director", "lead", "senior", "junior", "student", "working", "intern",
		"designer", "consultant", "coordinator", "assistant", "application", "web",
		"frontend", "backend", "fullstack", "devops", "mobile", "stack", "entwickler",
	}

	// titleIndicators are substrings that make a trailing segment read as a job title.
	titleIndicators = []string{
		"web", "software", "full", "react", "java", "python", "front", "back", "senior", "junior",
		"application", "developer", "engineer", "designer", "manager", "student", "working",
		"intern", "stack", "end", "native", "mobile", "devops", "architect", "specialist",
		"analyst", "assistant", "consultant", "scientist", "entwickler",
	}

	// nameLineSkipWords disqualify a top line from being a standalone name.
	nameLineSkipWords = []string{
		"resume", "cv", "curriculum vitae", "contact", "profile", "summary", "experience",
		"education", "skills", "projects", "projekte", "berufserfahrung", "email", "phone",
		"address", "linkedin", "github",
	}

	// positionKeywords identify a job-title line near a date anchor.
	positionKeywords = []string{
		"developer", "engineer", "manager", "analyst", "specialist", "architect", "scientist",
		"director", "lead", "senior", "junior", "consultant", "coordinator", "assistant",
		"full-stack", "full stack", "working student", "student", "intern", "designer",
		"administrator", "officer", "head of", "werkstudent", "entwickler",
	}

	institutionNoise = []string{"grade", "seminar", "course", "language", "visualization", "highest", "thesis"}

	certificateNoise = []string{"view", "badge", "credly"}

	// websiteDenyHosts are credential and course hosts that never count as a personal website.
	websiteDenyHosts = []string{
		"credly.com", "youracclaim.com", "credential.net", "coursera.org", "udemy.com",
		"edx.org", "linkedin.com", "github.com", "verify.",
	}

	// techVocabulary is the fallback skill list, also used to tag technologies in descriptions.
	techVocabulary = []string{
		"python", "java", "javascript", "typescript", "react", "vue", "angular", "node",
		"express", "django", "flask", "spring", "sql", "mongodb", "postgresql", "aws",
		"docker", "kubernetes", "git", "linux", "html", "css", "sass", "redux", "graphql",
		"rest", "api", "microservices", "ci/cd", "jenkins", "agile", "scrum", "tensorflow",
		"pytorch", "machine learning", "ai", "c++", "c#", ".net", "php", "ruby", "go",
		"rust", "swift", "kotlin",
	}

	languageNames = []string{
		"English", "German", "French", "Spanish", "Italian", "Portuguese", "Chinese",
		"Japanese", "Korean", "Arabic", "Hindi", "Russian", "Persian", "Farsi", "Turkish",
		"Dutch", "Polish", "Czech",
	}

	proficiencyLevels = []string{
		"A1", "A2", "B1", "B2", "C1", "C2", "Native Speaker", "Native", "Mother Tongue",
		"Fluent", "Proficient", "Advanced", "Intermediate", "Conversational", "Professional",
		"Elementary", "Beginner", "Basic",
	}

	bulletMarkers = "•-*·▪◦‣–●○■"
)

type headerVariant struct {
	kind    SectionKind
	compact string // lowercase, whitespace removed
	strip   *regexp.Regexp
}

type techTerm struct {
	display string
	re      *regexp.Regexp
}

// Rules is the compiled, read-only configuration shared by every parse call:
// header vocabulary, name and title word lists, and every regex the extractors use.
type Rules struct {
	headers     []headerVariant
	headerExact map[string]headerVariant
	commonWords map[string]bool
	jobWords    map[string]bool
	monthTokens map[string]bool
	techTerms   []techTerm
	languages   map[string]string
	proficiency map[string]string

	wideSpaces      *regexp.Regexp
	inlineSpace     *regexp.Regexp
	splitEmailTight *regexp.Regexp
	splitEmailLoose *regexp.Regexp
	columnGap       *regexp.Regexp
	listMarker      *regexp.Regexp
	sentenceEnd     *regexp.Regexp
	nonLetters      *regexp.Regexp

	email      *regexp.Regexp
	phones     []*regexp.Regexp
	phoneStrip *regexp.Regexp
	linkedin   *regexp.Regexp
	github     *regexp.Regexp
	githubIO   *regexp.Regexp
	url        *regexp.Regexp

	nameAllCaps   *regexp.Regexp
	nameNormal    *regexp.Regexp
	nameMixed     *regexp.Regexp
	nameWithTitle *regexp.Regexp
	nameLead      *regexp.Regexp
	nameOnly      *regexp.Regexp

	dateMonth   *regexp.Regexp
	dateNumeric *regexp.Regexp
	dateYear    *regexp.Regexp
	anyYear     *regexp.Regexp
	fourDigits  *regexp.Regexp

	titleShape        *regexp.Regexp
	companyBeforeDate *regexp.Regexp
	companyBeforeYear *regexp.Regexp
	companyLine       *regexp.Regexp

	degrees            []*regexp.Regexp
	degreeField        *regexp.Regexp
	institutionNamed   *regexp.Regexp
	institutionAcronym *regexp.Regexp
	courses            *regexp.Regexp

	skillLabel    *regexp.Regexp
	listSeparator *regexp.Regexp
	projectTitle  *regexp.Regexp
	issuedBy      *regexp.Regexp
	languageLine  *regexp.Regexp
}

var loadRules = sync.OnceValue(compileRules)

// DefaultRules returns the process-wide rule set. It is compiled on first use and never mutated.
func DefaultRules() *Rules {
	return loadRules()
}

func compileRules() *Rules {
	r := &Rules{
		headerExact: make(map[string]headerVariant),
		commonWords: wordSet(commonNameWords),
		jobWords:    wordSet(jobTitleWords),
		monthTokens: make(map[string]bool),
		languages:   make(map[string]string),
		proficiency: make(map[string]string),
	}

	for _, group := range sectionHeaders {
		for _, variant := range group.variants {
			words := strings.Fields(variant)
			quoted := make([]string, len(words))
			for i, w := range words {
				quoted[i] = regexp.QuoteMeta(w)
			}
			v := headerVariant{
				kind:    group.kind,
				compact: strings.Join(words, ""),
				strip:   regexp.MustCompile(`(?i)^.*?` + strings.Join(quoted, `\s*`) + `[:\s]*`),
			}
			r.headers = append(r.headers, v)
			r.headerExact[v.compact] = v
		}
	}

	for abbr := range monthNumbers {
		r.monthTokens[abbr] = true
	}
	for _, full := range []string{"january", "february", "march", "april", "june", "july", "august", "sept", "september", "october", "november", "december"} {
		r.monthTokens[full] = true
	}

	title := cases.Title(language.English)
	for _, term := range techVocabulary {
		r.techTerms = append(r.techTerms, techTerm{
			display: title.String(term),
			re:      regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(term) + `(?:$|[^\p{L}\p{N}_+#])`),
		})
	}
	for _, name := range languageNames {
		r.languages[strings.ToLower(name)] = name
	}
	for _, level := range proficiencyLevels {
		r.proficiency[strings.ToLower(level)] = level
	}

	r.wideSpaces = regexp.MustCompile(` {3,}`)
	r.inlineSpace = regexp.MustCompile(`[ \t]+`)
	r.splitEmailTight = regexp.MustCompile(`(\w+)\s*@\s*(\w+)\s*\.\s*(\w+)`)
	r.splitEmailLoose = regexp.MustCompile(`(\S+?)\s+@\s+(\S+?)\s+\.\s+(\S+)`)
	r.columnGap = regexp.MustCompile(fmt.Sprintf(`\s{%d,}`, columnGapMin))
	r.listMarker = regexp.MustCompile(`[•\-*+]\s+`)
	r.sentenceEnd = regexp.MustCompile(`[.!?]\s*$`)
	r.nonLetters = regexp.MustCompile(`[^a-z]+`)

	r.email = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	r.phones = []*regexp.Regexp{
		regexp.MustCompile(`\+?\d{1,3}[-. \t]?\d{1,4}[-. \t]?\d{1,4}[-. \t]?\d{4,}`),
		regexp.MustCompile(`\(\d{3}\)[ \t]?\d{3}[-. \t]?\d{4}`),
		regexp.MustCompile(`\d{3}[-. \t]?\d{3}[-. \t]?\d{4,}`),
	}
	r.phoneStrip = regexp.MustCompile(`[\s.\-()]`)
	r.linkedin = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	r.github = regexp.MustCompile(`(?i)github\.com/([\w-]+)`)
	r.githubIO = regexp.MustCompile(`(?i)\b[\w-]+\.github\.io\b`)
	r.url = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>()\[\]"']+`)

	r.nameAllCaps = regexp.MustCompile(`^(\p{Lu}{2,}[ \t]+\p{Lu}{2,}(?:[ \t]+\p{Lu}{2,})?)`)
	r.nameNormal = regexp.MustCompile(`^(\p{Lu}\p{Ll}+[ \t]+\p{Lu}\p{Ll}+(?:[ \t]+\p{Lu}\p{Ll}+)?)`)
	r.nameMixed = regexp.MustCompile(`^(\p{Lu}\p{L}+[ \t]{2,}\p{Lu}\p{L}+(?:[ \t]{2,}\p{Lu}\p{L}+)?)`)
	r.nameWithTitle = regexp.MustCompile(`(?:^|[^\p{L}])(\p{Lu}\p{Ll}+(?:[ \t]+\p{Lu}\p{Ll}+){1,2})\s{2,}(\p{Lu}\p{Ll}+(?:[ \t]+\p{Lu}\p{Ll}+)*)`)
	r.nameLead = regexp.MustCompile(`^(\p{Lu}\p{Ll}+(?:[ \t]+\p{Lu}\p{Ll}+){1,2})`)
	r.nameOnly = regexp.MustCompile(`^\p{Lu}\p{Ll}+(?:[ \t]+\p{Lu}\p{Ll}+){1,2}$`)

	month := `(` + monthPattern + `)`
	r.dateMonth = regexp.MustCompile(`(?i)\b` + month + `\b\.?\s+(` + yearPattern + `)\s*[-–—]\s*(?:(?:` + month + `\b\.?\s+)?(` + yearPattern + `|present)\b)?`)
	r.dateNumeric = regexp.MustCompile(`(?i)\b(\d{1,2})[/.](` + yearPattern + `)\s*[-–—]\s*(?:(?:(\d{1,2})[/.])?(` + yearPattern + `|present)\b)?`)
	r.dateYear = regexp.MustCompile(`(?i)\b(` + yearPattern + `)\s*[-–—]\s*(` + yearPattern + `|present)\b`)
	r.anyYear = regexp.MustCompile(`\b` + yearPattern + `\b`)
	r.fourDigits = regexp.MustCompile(`\d{4}`)

	company := `\p{Lu}[\p{L}\p{N}&.'-]*(?:[ \t]+\p{Lu}[\p{L}\p{N}&.'-]*){0,3}`
	r.titleShape = regexp.MustCompile(`^\p{Lu}[\p{L}\s/|()-]+$`)
	r.companyBeforeDate = regexp.MustCompile(`(` + company + `)[ \t,|-]+(?:(?i:` + monthPattern + `)\b|\d{1,2}[/.]` + yearPattern + `)`)
	r.companyBeforeYear = regexp.MustCompile(`(` + company + `)[ \t,|-]+` + yearPattern + `\b`)
	r.companyLine = regexp.MustCompile(`^\p{Lu}[\p{L}\p{N}&.'-]*(?:[ \t]+\p{Lu}[\p{L}\p{N}&.'-]*)*$`)

	r.degrees = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:bachelor(?:'?s)?\b|b\.?\s?sc\b\.?|b\.?\s?eng\b\.?|b\.s\.|b\.a\.)(?:\s+(?:of\s+)?(?:computer science|software engineering|business administration|science|engineering|arts))?`),
		regexp.MustCompile(`(?i)\b(?:master(?:'?s)?\b|m\.?\s?sc\b\.?|m\.?\s?eng\b\.?|m\.s\.|m\.a\.|mba\b)(?:\s+(?:of\s+)?(?:computer science|software engineering|business administration|data science|science|engineering|arts))?`),
		regexp.MustCompile(`(?i)\b(?:ph\.?\s?d\b\.?|doctorate\b|doctor of philosophy\b)(?:\s+(?:of\s+|in\s+)?(?:philosophy|science|engineering))?`),
	}
	r.degreeField = regexp.MustCompile(`^[ \t,]*(?i:in|of)[ \t]+(\p{Lu}[\p{L}&]*(?:[ \t]+(?:and[ \t]+|&[ \t]+)?\p{Lu}[\p{L}&]*){0,4})`)
	r.institutionNamed = regexp.MustCompile(`((?:\p{Lu}[\p{L}&.'-]*[ \t]+){0,4}\b(?i:university|college|institute|school|academy|polytechnic|hochschule)\b(?:[ \t]+(?:of|for)(?:[ \t]+(?:the[ \t]+)?\p{Lu}[\p{L}&.'-]*)+)?)`)
	r.institutionAcronym = regexp.MustCompile(`\b(\p{Lu}{2,}(?:[ \t]+\p{Lu}[\p{L}]+)+)`)
	r.courses = regexp.MustCompile(`(?i)^(?:key |relevant )?(?:courses|coursework|modules)[ \t]*[:\-–][ \t]*(.+)$`)

	r.skillLabel = regexp.MustCompile(`^[\p{L} &/+#.-]{2,30}:[ \t]*(.+)$`)
	r.listSeparator = regexp.MustCompile(`[,;|•·]`)
	r.projectTitle = regexp.MustCompile(`^(\p{Lu}[\p{L}\p{N}.+#-]*(?:[ \t]+\p{Lu}[\p{L}\p{N}.+#-]*){1,4})(?:\s|$)`)
	r.issuedBy = regexp.MustCompile(`(?i)[ \t]+(?:\||issued by)[ \t]+`)

	levels := make([]string, len(proficiencyLevels))
	for i, level := range proficiencyLevels {
		levels[i] = strings.ReplaceAll(regexp.QuoteMeta(level), " ", `[ \t]+`)
	}
	r.languageLine = regexp.MustCompile(`(?i)\b(` + strings.Join(languageNames, "|") + `)\b(?:[ \t]*[:(\-–—]?[ \t]*(` + strings.Join(levels, "|") + `)\b)?`)

	return r
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// containsAny reports whether lower contains any of the substrings.
func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// containsPhrase reports whether phrase occurs in text as whole words.
func containsPhrase(text, phrase string) bool {
	padded := " " + strings.Join(strings.FieldsFunc(strings.ToLower(text), isWordSeparator), " ") + " "
	return strings.Contains(padded, " "+phrase+" ")
}

func isWordSeparator(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
}

// isMonthToken reports whether word (any case, optional trailing dot) names a month.
func (r *Rules) isMonthToken(word string) bool {
	return r.monthTokens[strings.TrimSuffix(strings.ToLower(word), ".")]
}

// trimTrailingMonths drops month names and "Present" from the end of a word run.
func (r *Rules) trimTrailingMonths(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 {
		last := words[len(words)-1]
		if !r.isMonthToken(last) && !strings.EqualFold(last, "present") {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// technologies returns the vocabulary terms found in text, in vocabulary order.
func (r *Rules) technologies(text string) []string {
	found := []string{}
	if strings.TrimSpace(text) == "" {
		return found
	}
	for _, term := range r.techTerms {
		if term.re.MatchString(text) {
			found = append(found, term.display)
		}
	}
	return found
}
