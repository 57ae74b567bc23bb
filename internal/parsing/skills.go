package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-parser/internal/types"
)

// ExtractSkills returns the literal items of the skills section. Without one, it tags
// vocabulary technologies mentioned in the experience and projects sections instead.
func (r *Rules) ExtractSkills(sections SectionMap) []types.Skill {
	if text, ok := sections.Text(SectionSkills); ok {
		return r.skillsFromSection(text)
	}

	var parts []string
	for _, kind := range []SectionKind{SectionExperience, SectionProjects} {
		if text, ok := sections.Text(kind); ok {
			parts = append(parts, text)
		}
	}
	skills := []types.Skill{}
	for _, tech := range r.technologies(strings.Join(parts, "\n")) {
		skills = append(skills, types.Skill{Skill: tech})
	}
	return skills
}

// skillsFromSection splits each line on list separators after dropping bullets and
// "Category:" labels. Items are kept in order, duplicates included.
func (r *Rules) skillsFromSection(text string) []types.Skill {
	skills := []types.Skill{}
	for _, line := range splitLines(text) {
		line = stripBullet(strings.TrimSpace(line))
		if m := r.skillLabel.FindStringSubmatch(line); m != nil {
			line = m[1]
		}
		for _, item := range r.listSeparator.Split(line, -1) {
			item = strings.TrimSpace(item)
			if utf8.RuneCountInString(item) < 2 {
				continue
			}
			skills = append(skills, types.Skill{Skill: item})
		}
	}
	return skills
}
