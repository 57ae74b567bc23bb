package parsing

import (
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// ExtractLanguages matches known language names, each optionally followed by a proficiency.
// The languages section is tried first; when it is missing or yields nothing, the whole
// text is scanned.
func (r *Rules) ExtractLanguages(normalized string, sections SectionMap) []types.Language {
	if text, ok := sections.Text(SectionLanguages); ok {
		if found := r.languagesIn(text); len(found) > 0 {
			return found
		}
	}
	return r.languagesIn(normalized)
}

func (r *Rules) languagesIn(text string) []types.Language {
	languages := []types.Language{}
	index := make(map[string]int)
	for _, line := range splitLines(text) {
		for _, m := range r.languageLine.FindAllStringSubmatch(line, -1) {
			name := r.languages[strings.ToLower(m[1])]
			level := r.canonicalProficiency(m[2])
			if i, seen := index[name]; seen {
				if languages[i].Proficiency == "" {
					languages[i].Proficiency = level
				}
				continue
			}
			index[name] = len(languages)
			languages = append(languages, types.Language{Language: name, Proficiency: level})
		}
	}
	return languages
}

// canonicalProficiency maps a matched level to its display form, e.g. "c1" to "C1".
func (r *Rules) canonicalProficiency(level string) string {
	if level == "" {
		return ""
	}
	key := strings.ToLower(strings.Join(strings.Fields(level), " "))
	if display, ok := r.proficiency[key]; ok {
		return display
	}
	return level
}
