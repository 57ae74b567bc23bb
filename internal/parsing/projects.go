package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-parser/internal/types"
)

// ExtractProjects reads the projects section only. A short capitalized line starts a
// project and the lines after it, up to the next such line, describe it.
func (r *Rules) ExtractProjects(sections SectionMap) []types.Project {
	projects := []types.Project{}
	text, ok := sections.Text(SectionProjects)
	if !ok {
		return projects
	}

	var current *types.Project
	var description []string
	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.Join(description, " ")
		current.Technologies = r.technologies(current.Name + "\n" + current.Description)
		projects = append(projects, *current)
		current, description = nil, nil
	}

	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < projectLineMinRunes {
			continue
		}

		if !isBulletLine(line) && utf8.RuneCountInString(line) < projectTitleMaxRunes {
			if m := r.projectTitle.FindStringSubmatch(line); m != nil {
				if name := r.trimTrailingMonths(m[1]); name != "" {
					flush()
					p := types.NewProject(name)
					current = &p
					r.applyProjectDetails(current, line)
					continue
				}
			}
		}
		if current == nil {
			continue
		}

		if r.hasDateRange(line) && current.StartDate == "" {
			r.applyProjectDetails(current, line)
			if rest := strings.TrimSpace(r.stripDateRange(line)); utf8.RuneCountInString(rest) < projectLineMinRunes {
				continue
			}
		}
		if current.URL == "" {
			if u := r.url.FindString(line); u != "" {
				current.URL = strings.TrimRight(u, ".,;:")
				if strings.TrimSpace(line) == u {
					continue
				}
			}
		}
		description = append(description, stripBullet(line))
	}
	flush()
	return projects
}

// applyProjectDetails copies a date range and URL found on line into the project.
func (r *Rules) applyProjectDetails(p *types.Project, line string) {
	if dr, ok := r.findDateRange(line); ok {
		p.StartDate, p.EndDate = dr.Start, dr.End
	}
	if u := r.url.FindString(line); u != "" && p.URL == "" {
		p.URL = strings.TrimRight(u, ".,;:")
	}
}

// stripDateRange removes every date-range form from line.
func (r *Rules) stripDateRange(line string) string {
	for _, re := range []*regexp.Regexp{r.dateMonth, r.dateNumeric, r.dateYear} {
		line = re.ReplaceAllString(line, "")
	}
	return line
}
