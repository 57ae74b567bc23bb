package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-parser/internal/types"
)

// ExtractCertificates reads the certifications section only. The last year on a line
// splits it into name and date; lines without a year are kept as bare names when long
// enough and free of badge-link noise. A line holding only a URL belongs to the
// certificate above it.
func (r *Rules) ExtractCertificates(sections SectionMap) []types.Certificate {
	certificates := []types.Certificate{}
	text, ok := sections.Text(SectionCertifications)
	if !ok {
		return certificates
	}

	for _, line := range splitLines(text) {
		line = stripBullet(strings.TrimSpace(line))
		if utf8.RuneCountInString(line) < certificateLineMinRunes {
			continue
		}

		if u := r.url.FindString(line); u != "" && strings.TrimSpace(r.url.ReplaceAllString(line, "")) == "" {
			if n := len(certificates); n > 0 && certificates[n-1].URL == "" {
				certificates[n-1].URL = strings.TrimRight(u, ".,;:")
			}
			continue
		}

		if years := r.anyYear.FindAllStringIndex(line, -1); len(years) > 0 {
			loc := years[len(years)-1]
			name := r.trimTrailingMonths(strings.TrimRight(line[:loc[0]], " -–—|,:("))
			if utf8.RuneCountInString(name) <= certificateNameMinRunes {
				continue
			}
			cert := r.splitIssuer(name)
			cert.Date = line[loc[0]:loc[1]]
			certificates = append(certificates, cert)
			continue
		}

		if utf8.RuneCountInString(line) > certificateBareMinRunes && !containsAny(strings.ToLower(line), certificateNoise) {
			certificates = append(certificates, r.splitIssuer(line))
		}
	}
	return certificates
}

// splitIssuer separates "Name | Issuer" and "Name issued by Issuer".
func (r *Rules) splitIssuer(text string) types.Certificate {
	parts := r.issuedBy.Split(text, 2)
	cert := types.Certificate{Name: strings.TrimSpace(parts[0])}
	if len(parts) == 2 {
		cert.Issuer = strings.Trim(parts[1], " -–—|,:")
	}
	return cert
}
