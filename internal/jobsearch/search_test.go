package jobsearch

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-matcher/internal/analysis"
)

func years(v float64) *float64 {
	return &v
}

func TestSynthesizerRemoteEngineer(t *testing.T) {
	result := &analysis.AnalysisResult{
		Role:            "Software Engineer",
		Location:        "Remote",
		Skills:          []string{"Python", "SQL", "Docker", "Excel"},
		ExperienceYears: years(3),
	}

	s := NewSynthesizer(DefaultOptions())
	q := s.Params(result).Values()

	assert.Equal(t, "Software Engineer Python SQL Docker", q.Get("keywords"))
	assert.False(t, q.Has("location"))
	assert.Equal(t, LevelAssociate.Code(), q.Get("f_E"))

	parsed, err := url.Parse(s.URL(result))
	require.NoError(t, err)
	assert.Equal(t, "www.linkedin.com", parsed.Host)
	assert.Equal(t, "/jobs/search/", parsed.Path)
	assert.Equal(t, "Software Engineer Python SQL Docker", parsed.Query().Get("keywords"))
	assert.Equal(t, "3", parsed.Query().Get("f_E"))
}

func TestSynthesizerFallsBackToProfileYears(t *testing.T) {
	result := &analysis.AnalysisResult{
		Role:       analysis.NotSpecified,
		Location:   "Berlin",
		Experience: analysis.ExperienceProfile{Years: years(12)},
	}

	params := NewSynthesizer(DefaultOptions()).Params(result)
	assert.Equal(t, LevelDirector, params.ExperienceLevel)
	assert.Equal(t, "director", params.ExperienceLevel.String())
	assert.Equal(t, "5", params.Values().Get("f_E"))
	assert.Equal(t, "Berlin", params.Values().Get("location"))
	assert.Empty(t, params.Keywords)
}

func TestSynthesizerDirectYearsWin(t *testing.T) {
	result := &analysis.AnalysisResult{
		ExperienceYears: years(1),
		Experience:      analysis.ExperienceProfile{Years: years(12)},
	}

	params := NewSynthesizer(DefaultOptions()).Params(result)
	assert.Equal(t, LevelEntry, params.ExperienceLevel)
}

func TestSynthesizerSentinelsDoNotLeak(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		location string
	}{
		{name: "not specified", role: analysis.NotSpecified, location: analysis.NotSpecified},
		{name: "remote", role: analysis.NotSpecified, location: "Remote"},
		{name: "blank", role: "  ", location: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &analysis.AnalysisResult{Role: tt.role, Location: tt.location}
			s := NewSynthesizer(DefaultOptions())

			link := s.URL(result)
			assert.NotContains(t, link, "Not+specified")
			assert.NotContains(t, strings.ToLower(link), "remote")
			assert.Empty(t, s.Params(result).Values())
		})
	}
}

func TestSynthesizerRemoteMatchIsExact(t *testing.T) {
	s := NewSynthesizer(DefaultOptions())

	for _, location := range []string{"remote", "REMOTE", "Remote, EU"} {
		params := s.Params(&analysis.AnalysisResult{Location: location})
		assert.Equal(t, location, params.Location)
		assert.Equal(t, location, params.Values().Get("location"))
	}

	params := s.Params(&analysis.AnalysisResult{Location: "  Remote "})
	assert.Empty(t, params.Location)
}

func TestSynthesizerEmptyResultGivesValidURL(t *testing.T) {
	link := NewSynthesizer(Options{}).URL(&analysis.AnalysisResult{})
	assert.Equal(t, DefaultBaseURL+"?", link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Empty(t, parsed.Query())
}

func TestSynthesizerSkillsOnly(t *testing.T) {
	result := &analysis.AnalysisResult{
		Role:   analysis.NotSpecified,
		Skills: []string{"Go", "Kubernetes"},
	}

	params := NewSynthesizer(DefaultOptions()).Params(result)
	assert.Equal(t, "Go Kubernetes", params.Keywords)
	assert.Equal(t, ExperienceLevel(0), params.ExperienceLevel)
	assert.False(t, params.Values().Has("f_E"))
}

func TestSynthesizerTopSkillsOption(t *testing.T) {
	result := &analysis.AnalysisResult{
		Role:   "Data Analyst",
		Skills: []string{"SQL", "Excel", "Tableau"},
	}

	assert.Equal(t, "Data Analyst SQL", NewSynthesizer(Options{TopSkills: 1}).Params(result).Keywords)
	assert.Equal(t, "Data Analyst", NewSynthesizer(Options{TopSkills: 0}).Params(result).Keywords)
	assert.Equal(t, "Data Analyst SQL Excel Tableau", NewSynthesizer(Options{TopSkills: 10}).Params(result).Keywords)
}

func TestSynthesizerIsDeterministic(t *testing.T) {
	result := &analysis.AnalysisResult{
		Role:            "Backend Developer",
		Location:        "Amsterdam",
		Skills:          []string{"Go", "Postgres", "Redis", "Kafka"},
		ExperienceYears: years(6),
	}

	s := NewSynthesizer(DefaultOptions())
	first := s.URL(result)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.URL(result))
	}
	assert.Equal(t, DefaultBaseURL+"?f_E=4&keywords=Backend+Developer+Go+Postgres+Redis&location=Amsterdam", first)
}

func TestSearchParamsURLCustomBase(t *testing.T) {
	params := &SearchParams{Keywords: "Go"}
	assert.Equal(t, "https://jobs.example.com/search?keywords=Go", params.URL("https://jobs.example.com/search?"))
}

func TestLevelFromYears(t *testing.T) {
	tests := []struct {
		years  float64
		expect ExperienceLevel
	}{
		{0, LevelEntry},
		{1.99, LevelEntry},
		{2, LevelAssociate},
		{4.9, LevelAssociate},
		{5, LevelMidSenior},
		{9.99, LevelMidSenior},
		{10, LevelDirector},
		{40, LevelDirector},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, LevelFromYears(tt.years), "years=%v", tt.years)
	}

	assert.Equal(t, "", ExperienceLevel(0).Code())
	assert.Equal(t, "unknown", ExperienceLevel(9).String())
}
