// Package types provides type definitions for structured data used throughout the skillsync-engine system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

// CandidateProfile holds the structured candidate data produced by the
// upstream resume extractor. The engine never parses raw documents itself.
type CandidateProfile struct {
	ID             string           `json:"id"`
	Name           string           `json:"name,omitempty"`
	Skills         []string         `json:"skills"`
	Experience     []WorkExperience `json:"work_experience,omitempty"`
	Education      []Education      `json:"education,omitempty"`
	Projects       []Project        `json:"projects,omitempty"`
	Certifications []Certification  `json:"certifications,omitempty"`
	ParsedText     string           `json:"parsed_text,omitempty"` // full resume text, used for evidence and content hashing
	Embedding      []float64        `json:"embedding,omitempty"`
}

// WorkExperience represents a single work-history entry.
type WorkExperience struct {
	Company       string   `json:"company,omitempty"`
	Role          string   `json:"role,omitempty"`
	Description   string   `json:"description,omitempty"`
	Technologies  []string `json:"technologies,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       string   `json:"end_date,omitempty"`
	DurationYears float64  `json:"duration_years,omitempty"`
}

// dateLayouts are tried in order when parsing experience dates.
var dateLayouts = []string{"2006-01-02", "2006-01", "Jan 2006", "January 2006", "2006"}

// Years returns the duration of the experience in years.
// It prefers the explicit DurationYears field, then falls back to parsing
// start/end dates ("Present" or "Current" end dates resolve to now).
// Returns 0 when neither source is usable.
func (w WorkExperience) Years(now time.Time) float64 {
	if w.DurationYears > 0 {
		return w.DurationYears
	}
	start, ok := parseExperienceDate(w.StartDate, now)
	if !ok {
		return 0
	}
	end := now
	switch strings.ToLower(strings.TrimSpace(w.EndDate)) {
	case "", "present", "current":
		// keep now
	default:
		end, ok = parseExperienceDate(w.EndDate, now)
		if !ok {
			return 0
		}
	}
	if end.Before(start) {
		return 0
	}
	return end.Sub(start).Hours() / (24 * 365.25)
}

// SearchText returns the combined role/description/technology text used for
// case-insensitive skill relevance checks.
func (w WorkExperience) SearchText() string {
	parts := []string{w.Role, w.Description}
	parts = append(parts, w.Technologies...)
	return strings.ToLower(strings.Join(parts, " "))
}

func parseExperienceDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Education represents a single education record.
type Education struct {
	Degree         string  `json:"degree"`
	Institution    string  `json:"institution,omitempty"`
	GraduationYear int     `json:"graduation_year,omitempty"`
	GPA            float64 `json:"gpa,omitempty"`
}

// Project represents a candidate project.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	GithubLink   string   `json:"github_link,omitempty"`
}

// SearchText returns the combined name/description/technology text used for
// case-insensitive skill relevance checks.
func (p Project) SearchText() string {
	parts := []string{p.Name, p.Description}
	parts = append(parts, p.Technologies...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Certification represents a professional certification.
type Certification struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// SearchText returns the combined name/issuer/description text used for
// case-insensitive skill relevance checks.
func (c Certification) SearchText() string {
	return strings.ToLower(strings.Join([]string{c.Name, c.Issuer, c.Description}, " "))
}
