// Package observability provides stage tracing for the parser and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-parser/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten cuts s to at most n runes, marking the cut with an ellipsis.
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func dateSpan(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	if end == "" {
		end = "now"
	}
	return fmt.Sprintf("%s → %s", orDash(start), end)
}

// PrintPersonalInfo outputs the contact block of a parsed résumé.
func (p *Printer) PrintPersonalInfo(info types.PersonalInfo) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(info.FullName())))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orDash(info.ProfessionalTitle)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(info.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(info.Phone)))
	if info.LinkedIn != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", info.LinkedIn))
	}
	if info.GitHub != "" {
		sb.WriteString(fmt.Sprintf("GitHub:   %s\n", info.GitHub))
	}
	if info.Website != "" {
		sb.WriteString(fmt.Sprintf("Website:  %s\n", info.Website))
	}
	if len(info.Interests) > 0 {
		sb.WriteString(fmt.Sprintf("Interests: %s\n", strings.Join(info.Interests, ", ")))
	}

	p.printBox("PERSONAL INFO", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWorkExperience outputs the first few work entries.
func (p *Printer) PrintWorkExperience(entries []types.WorkExperience) {
	var sb strings.Builder
	filled := 0
	for _, e := range entries {
		if !e.IsEmpty() {
			filled++
		}
	}
	sb.WriteString(fmt.Sprintf("Entries: %d\n", filled))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := entries[i]
		if e.IsEmpty() {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n• %s @ %s\n", orDash(e.Position), orDash(e.Company)))
		if span := dateSpan(e.StartDate, e.EndDate); span != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", span))
		}
		if len(e.Responsibilities) > 0 {
			sb.WriteString(fmt.Sprintf("  %d responsibilities\n", len(e.Responsibilities)))
		}
	}
	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(entries)-maxItemsToShow))
	}

	p.printBox("WORK EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEducation outputs the first few education entries.
func (p *Printer) PrintEducation(entries []types.Education) {
	var sb strings.Builder
	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := entries[i]
		if e.IsEmpty() {
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s\n", orDash(e.Degree)))
		sb.WriteString(fmt.Sprintf("  %s\n", orDash(e.Institution)))
		if span := dateSpan(e.StartDate, e.EndDate); span != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", span))
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("No degrees found")
	}

	p.printBox("EDUCATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCollections outputs counts and samples of skills, projects, certificates and languages.
func (p *Printer) PrintCollections(result types.ParsedResume) {
	var sb strings.Builder

	skills := make([]string, 0, len(result.Skills))
	for _, s := range result.Skills {
		skills = append(skills, s.Skill)
	}
	sb.WriteString(fmt.Sprintf("Skills (%d): %s\n", len(skills), strings.Join(skills[:min(len(skills), maxItemsToShow)], ", ")))

	projects := make([]string, 0, len(result.Projects))
	for _, pr := range result.Projects {
		projects = append(projects, pr.Name)
	}
	sb.WriteString(fmt.Sprintf("Projects (%d): %s\n", len(projects), strings.Join(projects[:min(len(projects), maxItemsToShow)], ", ")))

	certs := make([]string, 0, len(result.Certificates))
	for _, c := range result.Certificates {
		certs = append(certs, c.Name)
	}
	sb.WriteString(fmt.Sprintf("Certificates (%d): %s\n", len(certs), strings.Join(certs[:min(len(certs), maxItemsToShow)], ", ")))

	langs := make([]string, 0, len(result.Languages))
	for _, l := range result.Languages {
		if l.Proficiency != "" {
			langs = append(langs, fmt.Sprintf("%s (%s)", l.Language, l.Proficiency))
		} else {
			langs = append(langs, l.Language)
		}
	}
	sb.WriteString(fmt.Sprintf("Languages (%d): %s", len(langs), strings.Join(langs, ", ")))

	p.printBox("SKILLS & MORE", sb.String())
}

// PrintParsedResume outputs every block of a parsed résumé.
func (p *Printer) PrintParsedResume(result types.ParsedResume) {
	p.PrintPersonalInfo(result.PersonalInfo)
	p.PrintWorkExperience(result.WorkExperience)
	p.PrintEducation(result.Education)
	p.PrintCollections(result)
}

// PrintStages outputs recorded tracer events, one line per stage.
func (p *Printer) PrintStages(events []Event) {
	if len(events) == 0 {
		return
	}

	var sb strings.Builder
	for _, e := range events {
		if e.Err != nil {
			sb.WriteString(fmt.Sprintf("✗ %s: %v\n", e.Stage, e.Err))
			continue
		}
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Fields[k]))
		}
		sb.WriteString(fmt.Sprintf("✓ %s %s\n", e.Stage, strings.Join(parts, " ")))
	}

	p.printBox("PIPELINE STAGES", strings.TrimSuffix(sb.String(), "\n"))
}
