package analysis

import (
	"github.com/spigell/resume-matcher/internal/coerce"
)

const (
	defaultQualityScore    = 5
	defaultComplexityScore = 5
	defaultSuggestionKind  = "general"

	maxRangeScore   = 10
	maxRangePercent = 100
)

// Step describes how many entries of a list survived admission.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

func newStep(initial, left int) Step {
	return Step{Initial: initial, Dropped: initial - left, Left: left}
}

// Normalizer applies the per-entity cleaning rules. It holds no state besides
// its options and can be shared between goroutines.
type Normalizer struct {
	opts Options
}

func NewNormalizer(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

func (n *Normalizer) ContactInfo(v any) ContactInfo {
	m := coerce.Object(v)
	return ContactInfo{
		Name:     coerce.TextOrNull(m["name"]),
		Email:    coerce.TextOrNull(m["email"]),
		Phone:    coerce.TextOrNull(m["phone"]),
		LinkedIn: coerce.TextOrNull(m["linkedin"]),
	}
}

// Skills keeps non-blank skills in source order. Duplicates are kept.
func (n *Normalizer) Skills(v any) ([]string, Step) {
	items := coerce.ArrayOrEmpty(v)
	skills := coerce.Strings(items)
	return skills, newStep(len(items), len(skills))
}

func (n *Normalizer) Role(v any) string {
	return coerce.TextOrFallback(v, NotSpecified)
}

func (n *Normalizer) Location(v any) string {
	return coerce.TextOrFallback(v, NotSpecified)
}

// Years returns a non-negative number of years or nil when v is not a number.
func (n *Normalizer) Years(v any) *float64 {
	f, ok := coerce.Number(v)
	if !ok {
		return nil
	}
	if f < 0 {
		f = 0
	}
	return &f
}

func (n *Normalizer) Experience(v any) ExperienceProfile {
	m := coerce.Object(v)
	return ExperienceProfile{
		Years:     n.Years(m["years"]),
		Positions: coerce.Strings(m["positions"]),
	}
}

func (n *Normalizer) Education(v any) ([]EducationEntry, Step) {
	items := coerce.ArrayOrEmpty(v)
	entries := make([]EducationEntry, 0, len(items))
	for _, item := range items {
		m := coerce.Object(item)
		text := coerce.Text(m["text"])
		if text == "" {
			continue
		}
		entries = append(entries, EducationEntry{
			Text:         text,
			QualityScore: coerce.Score(m["quality_score"], defaultQualityScore),
		})
	}
	return entries, newStep(len(items), len(entries))
}

func (n *Normalizer) Projects(v any) ([]ProjectEntry, Step) {
	items := coerce.ArrayOrEmpty(v)
	entries := make([]ProjectEntry, 0, len(items))
	for _, item := range items {
		m := coerce.Object(item)
		title := coerce.Text(m["title"])
		if title == "" {
			continue
		}
		entries = append(entries, ProjectEntry{
			Title:           title,
			Description:     coerce.Text(m["description"]),
			ComplexityScore: coerce.Score(m["complexity_score"], defaultComplexityScore),
		})
	}
	return entries, newStep(len(items), len(entries))
}

// Interests keeps signals with a skill whose score reaches InterestMinScore.
func (n *Normalizer) Interests(v any) ([]InterestSignal, Step) {
	items := coerce.ArrayOrEmpty(v)
	signals := make([]InterestSignal, 0, len(items))
	for _, item := range items {
		m := coerce.Object(item)
		skill := coerce.Text(m["skill"])
		if skill == "" {
			continue
		}
		score := coerce.ClampScore(m["score"], 0, 0, maxRangeScore)
		if score < n.opts.InterestMinScore {
			continue
		}
		signals = append(signals, InterestSignal{Skill: skill, Score: score})
	}
	return signals, newStep(len(items), len(signals))
}

func (n *Normalizer) GrowthPotential(v any) (GrowthPotential, Step) {
	m := coerce.Object(v)
	raw := coerce.ArrayOrEmpty(m["indicators"])
	indicators := coerce.Strings(raw)
	return GrowthPotential{
		Score:      coerce.ClampScore(m["score"], 0, 0, maxRangeScore),
		Indicators: indicators,
	}, newStep(len(raw), len(indicators))
}

// WritingQuality keeps zero counts as reported; zero is a real observation.
func (n *Normalizer) WritingQuality(v any) WritingQuality {
	m := coerce.Object(v)
	return WritingQuality{
		Score:                    coerce.ClampScore(m["score"], 0, 0, maxRangeScore),
		WeakPhrasesFound:         coerce.Count(m["weak_phrases_found"]),
		ActionVerbsFound:         coerce.Count(m["action_verbs_found"]),
		QuantifiableAchievements: coerce.Count(m["quantifiable_achievements"]),
		GenericTermsFound:        coerce.Count(m["generic_terms_found"]),
	}
}

// Suggestions keeps suggestions with text in source order, optionally dropping
// low severity ones, then truncates to MaxSuggestions.
func (n *Normalizer) Suggestions(v any) ([]ResumeSuggestion, Step) {
	items := coerce.ArrayOrEmpty(v)
	suggestions := make([]ResumeSuggestion, 0, len(items))
	for _, item := range items {
		m := coerce.Object(item)
		text := coerce.Text(m["text"])
		if text == "" {
			continue
		}

		severity := ParseSeverity(coerce.Text(m["severity"]))
		if n.opts.DropLowSeveritySuggestions && severity == SeverityLow {
			continue
		}

		suggestions = append(suggestions, ResumeSuggestion{
			Kind:     coerce.TextOrFallback(m["type"], defaultSuggestionKind),
			Severity: severity,
			Text:     text,
		})
	}

	if n.opts.MaxSuggestions > 0 && len(suggestions) > n.opts.MaxSuggestions {
		suggestions = suggestions[:n.opts.MaxSuggestions]
	}

	return suggestions, newStep(len(items), len(suggestions))
}

// ATS range-checks the upstream scores without recomputing the overall value.
func (n *Normalizer) ATS(v any) AtsScoring {
	m := coerce.Object(v)
	b := coerce.Object(m["breakdown"])
	score := func(x any) float64 {
		return coerce.ClampScore(x, 0, 0, maxRangeScore)
	}

	return AtsScoring{
		Overall: score(m["overall"]),
		Breakdown: AtsBreakdown{
			ContactInfo:    score(b["contact_info"]),
			SkillsMatch:    score(b["skills_match"]),
			Experience:     score(b["experience"]),
			Education:      score(b["education"]),
			Projects:       score(b["projects"]),
			WritingQuality: score(b["writing_quality"]),
		},
	}
}

// JobMatch returns nil unless v is an object.
func (n *Normalizer) JobMatch(v any) *JobMatch {
	m := coerce.Object(v)
	if m == nil {
		return nil
	}

	return &JobMatch{
		MatchPercentage: coerce.ClampScore(m["match_percentage"], 0, 0, maxRangePercent),
		MatchingSkills:  coerce.Strings(m["matching_skills"]),
		MissingSkills:   coerce.Strings(m["missing_skills"]),
		JobSkills:       coerce.Strings(m["job_skills"]),
	}
}
