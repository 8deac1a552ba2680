package analysis

import (
	"encoding/json"
	"strings"
)

// NotSpecified replaces a role or location the analysis service did not report.
const NotSpecified = "Not specified"

// Severity tags a resume suggestion.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ParseSeverity maps free-form text to a Severity. Anything unrecognised is medium.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityLow:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// UnmarshalJSON keeps the closed set of severities when decoding.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSeverity(raw)
	return nil
}

// ContactInfo holds optional contact details. A nil field was not reported.
type ContactInfo struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
}

type ExperienceProfile struct {
	Years     *float64 `json:"years"`
	Positions []string `json:"positions"`
}

type EducationEntry struct {
	Text         string  `json:"text"`
	QualityScore float64 `json:"quality_score"`
}

type ProjectEntry struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ComplexityScore float64 `json:"complexity_score"`
}

type InterestSignal struct {
	Skill string  `json:"skill"`
	Score float64 `json:"score"`
}

type GrowthPotential struct {
	Score      float64  `json:"score"`
	Indicators []string `json:"indicators"`
}

type WritingQuality struct {
	Score                    float64 `json:"score"`
	WeakPhrasesFound         int     `json:"weak_phrases_found"`
	ActionVerbsFound         int     `json:"action_verbs_found"`
	QuantifiableAchievements int     `json:"quantifiable_achievements"`
	GenericTermsFound        int     `json:"generic_terms_found"`
}

// AtsBreakdown is the fixed set of ATS components, each on a 0-10 scale.
type AtsBreakdown struct {
	ContactInfo    float64 `json:"contact_info"`
	SkillsMatch    float64 `json:"skills_match"`
	Experience     float64 `json:"experience"`
	Education      float64 `json:"education"`
	Projects       float64 `json:"projects"`
	WritingQuality float64 `json:"writing_quality"`
}

// AtsScoring carries the overall score exactly as computed upstream; it is
// range-checked but never derived from the breakdown.
type AtsScoring struct {
	Overall   float64      `json:"overall"`
	Breakdown AtsBreakdown `json:"breakdown"`
}

type ResumeSuggestion struct {
	Kind     string   `json:"type"`
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// JobMatch is present only when a job description accompanied the resume.
type JobMatch struct {
	MatchPercentage float64  `json:"match_percentage"`
	MatchingSkills  []string `json:"matching_skills"`
	MissingSkills   []string `json:"missing_skills"`
	JobSkills       []string `json:"job_skills"`
}

// AnalysisResult is the canonical, normalized analysis of one resume. It is
// built fresh for every payload and is never patched afterwards.
type AnalysisResult struct {
	ContactInfo     ContactInfo        `json:"contact_info"`
	Skills          []string           `json:"skills"`
	Role            string             `json:"role"`
	Location        string             `json:"location"`
	ExperienceYears *float64           `json:"experience_years"`
	Experience      ExperienceProfile  `json:"experience"`
	Education       []EducationEntry   `json:"education"`
	Projects        []ProjectEntry     `json:"projects"`
	Interests       []InterestSignal   `json:"interests"`
	GrowthPotential GrowthPotential    `json:"growth_potential"`
	WritingQuality  WritingQuality     `json:"writing_quality"`
	Suggestions     []ResumeSuggestion `json:"resume_suggestions"`
	ATS             AtsScoring         `json:"ats_score"`
	JobMatch        *JobMatch          `json:"job_match,omitempty"`
}

// EffectiveExperienceYears prefers the directly reported years over the
// experience profile. The second value is false when neither is known.
func (r *AnalysisResult) EffectiveExperienceYears() (float64, bool) {
	if r.ExperienceYears != nil {
		return *r.ExperienceYears, true
	}

	if r.Experience.Years != nil {
		return *r.Experience.Years, true
	}

	return 0, false
}
