// Package types provides type definitions for structured data used throughout the resume-parser system.
package types

// ParsedResume is the structured record produced from résumé text.
// Field names are consumed verbatim by the form-binding frontend.
type ParsedResume struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []Skill          `json:"skills"`
	Projects       []Project        `json:"projects"`
	Certificates   []Certificate    `json:"certificates"`
	Languages      []Language       `json:"languages"`
}

// PersonalInfo holds contact details and profile text.
type PersonalInfo struct {
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Location          string   `json:"location"`
	ProfessionalTitle string   `json:"professionalTitle"`
	ProfileImage      string   `json:"profileImage"`
	LinkedIn          string   `json:"linkedin"`
	GitHub            string   `json:"github"`
	Website           string   `json:"website"`
	Summary           string   `json:"summary"`
	Interests         []string `json:"interests"`
}

// WorkExperience is one employment entry. An empty EndDate means present or unknown.
type WorkExperience struct {
	Position         string   `json:"position"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Technologies     []string `json:"technologies"`
	Competencies     []string `json:"competencies"`
}

// Education is one degree entry.
type Education struct {
	Degree      string   `json:"degree"`
	Institution string   `json:"institution"`
	Location    string   `json:"location"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Field       string   `json:"field"`
	KeyCourses  []string `json:"keyCourses"`
}

// Skill is a single skill token.
type Skill struct {
	Skill string `json:"skill"`
}

// Project is one project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
}

// Certificate is one certification entry.
type Certificate struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

// Language is a spoken language with an optional proficiency level.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// NewWorkExperience returns an entry with every list initialised, so it encodes as [] rather than null.
func NewWorkExperience() WorkExperience {
	return WorkExperience{
		Responsibilities: []string{},
		Technologies:     []string{},
		Competencies:     []string{},
	}
}

// NewEducation returns an entry with every list initialised.
func NewEducation() Education {
	return Education{KeyCourses: []string{}}
}

// NewProject returns a project with every list initialised.
func NewProject(name string) Project {
	return Project{Name: name, Technologies: []string{}}
}

// EmptyParsedResume returns the default record: empty strings, one placeholder entry
// for work experience and education, and empty lists everywhere else.
func EmptyParsedResume() ParsedResume {
	return ParsedResume{
		PersonalInfo:   PersonalInfo{Interests: []string{}},
		WorkExperience: []WorkExperience{NewWorkExperience()},
		Education:      []Education{NewEducation()},
		Skills:         []Skill{},
		Projects:       []Project{},
		Certificates:   []Certificate{},
		Languages:      []Language{},
	}
}

// IsEmpty reports whether the entry is an all-empty placeholder.
func (w WorkExperience) IsEmpty() bool {
	return w.Position == "" && w.Company == "" && w.StartDate == "" && w.EndDate == "" &&
		w.Description == "" && len(w.Responsibilities) == 0
}

// IsEmpty reports whether the entry is an all-empty placeholder.
func (e Education) IsEmpty() bool {
	return e.Degree == "" && e.Institution == "" && e.StartDate == "" && e.EndDate == "" && e.Field == ""
}

// FullName joins first and last name with a single space.
func (p PersonalInfo) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
