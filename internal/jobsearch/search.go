package jobsearch

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/spigell/resume-matcher/internal/analysis"
)

const (
	DefaultBaseURL   = "https://www.linkedin.com/jobs/search/"
	DefaultTopSkills = 3

	// RemoteLocation is left out of the query: no location filter already means anywhere.
	// The match is exact, other spellings are passed through as a location.
	RemoteLocation = "Remote"
)

// Options configure query synthesis.
type Options struct {
	TopSkills int    `mapstructure:"top-skills-for-query" validate:"gte=0"`
	BaseURL   string `mapstructure:"base-url" validate:"omitempty,url"`
}

func DefaultOptions() Options {
	return Options{TopSkills: DefaultTopSkills, BaseURL: DefaultBaseURL}
}

// SearchParams are the filters of one job search.
type SearchParams struct {
	// param is custom tag for reflect. Please see buildParams.
	Keywords        string          `param:"keywords"`
	Location        string          `param:"location"`
	ExperienceLevel ExperienceLevel `param:"f_E"`
}

// Synthesizer derives job searches from canonical analysis results.
type Synthesizer struct {
	opts Options
}

func NewSynthesizer(opts Options) *Synthesizer {
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = DefaultBaseURL
	}
	return &Synthesizer{opts: opts}
}

// Params builds the search filters for a result. The same result always
// yields the same params.
func (s *Synthesizer) Params(result *analysis.AnalysisResult) *SearchParams {
	params := &SearchParams{}

	if role := strings.TrimSpace(result.Role); role != "" && role != analysis.NotSpecified {
		params.Keywords = role
	}

	if location := strings.TrimSpace(result.Location); location != "" &&
		location != analysis.NotSpecified && location != RemoteLocation {
		params.Location = location
	}

	if skills := topSkills(result.Skills, s.opts.TopSkills); skills != "" {
		params.Keywords = strings.TrimSpace(params.Keywords + " " + skills)
	}

	if years, ok := result.EffectiveExperienceYears(); ok {
		params.ExperienceLevel = LevelFromYears(years)
	}

	return params
}

// URL returns the search URL for a result.
func (s *Synthesizer) URL(result *analysis.AnalysisResult) string {
	return s.Params(result).URL(s.opts.BaseURL)
}

// URL serializes the params onto base. Empty params still give a valid URL.
func (p *SearchParams) URL(base string) string {
	return strings.TrimSuffix(base, "?") + "?" + p.Values().Encode()
}

// Values returns the non-empty params as query values.
func (p *SearchParams) Values() url.Values {
	return buildParams(p)
}

func topSkills(skills []string, n int) string {
	if n <= 0 || len(skills) == 0 {
		return ""
	}
	if len(skills) > n {
		skills = skills[:n]
	}
	return strings.Join(skills, " ")
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	value := reflect.ValueOf(params).Elem()
	for _, field := range reflect.VisibleFields(value.Type()) {
		key := field.Tag.Get("param")
		if key == "" {
			continue
		}

		switch v := value.FieldByIndex(field.Index).Interface().(type) {
		case string:
			if v != "" {
				q.Set(key, v)
			}
		case ExperienceLevel:
			if code := v.Code(); code != "" {
				q.Set(key, code)
			}
		}
	}

	return q
}
