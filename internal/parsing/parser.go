// Package parsing turns unstructured résumé text into a types.ParsedResume using
// layered heuristics: line normalization, section detection, and per-field extractors
// with explicit fallback chains.
package parsing

import (
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/types"
)

// Stage names reported to the tracer, in execution order.
const (
	StageNormalize    = "normalize"
	StageFlatText     = "flat_text"
	StageColumns      = "columns"
	StageSections     = "sections"
	StagePersonalInfo = "personal_info"
	StageWork         = "work_experience"
	StageEducation    = "education"
	StageSkills       = "skills"
	StageProjects     = "projects"
	StageCertificates = "certificates"
	StageLanguages    = "languages"
)

// Parser runs the extraction pipeline. A Parser holds no per-call state and is safe for
// concurrent use.
type Parser struct {
	rules  *Rules
	tracer observability.Tracer
	// afterStage runs after each stage; tests use it to inject failures.
	afterStage func(stage string)
}

// Option configures a Parser.
type Option func(*Parser)

// WithTracer sets the tracer that receives stage-boundary events.
func WithTracer(t observability.Tracer) Option {
	return func(p *Parser) {
		if t != nil {
			p.tracer = t
		}
	}
}

// New creates a Parser using the default rules and no tracing.
func New(opts ...Option) *Parser {
	p := &Parser{
		rules:  DefaultRules(),
		tracer: observability.NopTracer{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// ParseResumeText parses text with the default parser. It never fails: the worst case
// is the empty default record.
func ParseResumeText(text string) types.ParsedResume {
	return defaultParser.Parse(text)
}

// Parse converts résumé text into a structured record. Any unexpected failure is
// reported to the tracer and turned into types.EmptyParsedResume.
func (p *Parser) Parse(text string) (result types.ParsedResume) {
	stage := StageNormalize
	defer func() {
		if v := recover(); v != nil {
			p.traceFailure(stage, &PipelineError{Stage: stage, Cause: asError(v)})
			result = types.EmptyParsedResume()
		}
	}()

	r := p.rules
	raw := prepareInput(text)
	normalized := r.Normalize(raw)
	p.done(stage, map[string]any{"lines": len(splitLines(normalized)), "chars": len(normalized)})

	stage = StageFlatText
	flat := r.FlatText(raw)
	p.done(stage, map[string]any{"chars": len(flat)})

	stage = StageColumns
	hint := r.DetectColumns(raw)
	p.done(stage, map[string]any{"has_hint": hint.HasHint, "hints": hint.HintCount, "personal_hints": len(hint.PersonalInfoHints)})

	stage = StageSections
	sections := r.SplitSections(normalized)
	names := make([]string, 0, len(sections))
	for _, kind := range sections.Kinds() {
		names = append(names, kind.String())
	}
	p.done(stage, map[string]any{"count": len(sections), "sections": names})

	result = types.EmptyParsedResume()

	stage = StagePersonalInfo
	info, strategy := r.ExtractPersonalInfo(hint.PersonalText(raw), flat, sections)
	result.PersonalInfo = info
	p.done(stage, map[string]any{"name_strategy": strategy, "has_email": info.Email != "", "has_phone": info.Phone != ""})

	stage = StageWork
	if work := r.ExtractWorkExperience(normalized, sections); len(work) > 0 {
		result.WorkExperience = work
	}
	p.done(stage, map[string]any{"entries": len(result.WorkExperience)})

	stage = StageEducation
	if education := r.ExtractEducation(normalized, sections); len(education) > 0 {
		result.Education = education
	}
	p.done(stage, map[string]any{"entries": len(result.Education)})

	stage = StageSkills
	result.Skills = r.ExtractSkills(sections)
	p.done(stage, map[string]any{"entries": len(result.Skills)})

	stage = StageProjects
	result.Projects = r.ExtractProjects(sections)
	p.done(stage, map[string]any{"entries": len(result.Projects)})

	stage = StageCertificates
	result.Certificates = r.ExtractCertificates(sections)
	p.done(stage, map[string]any{"entries": len(result.Certificates)})

	stage = StageLanguages
	result.Languages = r.ExtractLanguages(normalized, sections)
	p.done(stage, map[string]any{"entries": len(result.Languages)})

	return result
}

// done reports a finished stage. Tracer panics are swallowed so tracing can never change the result.
func (p *Parser) done(stage string, fields map[string]any) {
	func() {
		defer func() { _ = recover() }()
		p.tracer.TraceStage(stage, fields)
	}()
	if p.afterStage != nil {
		p.afterStage(stage)
	}
}

func (p *Parser) traceFailure(stage string, err error) {
	defer func() { _ = recover() }()
	p.tracer.TraceFailure(stage, err)
}
