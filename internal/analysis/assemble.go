package analysis

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/utils"
)

const defaultMaxLogLength = 200

// rawPayload is the top level of the analysis service response. Every field is
// kept untyped so a wrong type degrades one entity instead of the whole payload.
type rawPayload struct {
	ContactInfo     any `json:"contact_info"`
	Skills          any `json:"skills"`
	Role            any `json:"role"`
	Location        any `json:"location"`
	ExperienceYears any `json:"experience_years"`
	Experience      any `json:"experience"`
	Education       any `json:"education"`
	Projects        any `json:"projects"`
	Interests       any `json:"interests"`
	GrowthPotential any `json:"growth_potential"`
	WritingQuality  any `json:"writing_quality"`
	Suggestions     any `json:"resume_suggestions"`
	ATS             any `json:"ats_score"`
	JobMatch        any `json:"job_match"`
}

// Assembler turns one raw payload into one AnalysisResult.
type Assembler struct {
	normalizer *Normalizer
	logger     *zap.Logger
	maxLogLen  int
}

func NewAssembler(opts Options, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Assembler{
		normalizer: NewNormalizer(opts),
		logger:     logger,
		maxLogLen:  defaultMaxLogLength,
	}
}

// Assemble decodes a JSON payload and normalizes it. Only a payload that is not
// a JSON object is rejected; every broken field inside it is defaulted.
func (a *Assembler) Assemble(data []byte) (AnalysisResult, error) {
	a.logger.Debug("assembling analysis payload",
		zap.Int("payload_length", utf8.RuneCount(data)),
		zap.String("payload_preview", utils.TruncateForLog(string(data), a.maxLogLen)),
	)

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return AnalysisResult{}, &PayloadError{Kind: "invalid json", Cause: err}
	}

	return a.AssembleValue(decoded)
}

// AssembleValue normalizes an already decoded payload.
func (a *Assembler) AssembleValue(v any) (AnalysisResult, error) {
	top, ok := v.(map[string]any)
	if !ok || top == nil {
		return AnalysisResult{}, &PayloadError{Kind: describe(v)}
	}

	var raw rawPayload
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &raw,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("create payload decoder: %w", err)
	}
	if err := decoder.Decode(top); err != nil {
		return AnalysisResult{}, &PayloadError{Kind: "undecodable object", Cause: err}
	}

	return a.build(&raw), nil
}

func (a *Assembler) build(raw *rawPayload) AnalysisResult {
	n := a.normalizer

	skills, skillsStep := n.Skills(raw.Skills)
	education, educationStep := n.Education(raw.Education)
	projects, projectsStep := n.Projects(raw.Projects)
	interests, interestsStep := n.Interests(raw.Interests)
	growth, growthStep := n.GrowthPotential(raw.GrowthPotential)
	suggestions, suggestionsStep := n.Suggestions(raw.Suggestions)

	result := AnalysisResult{
		ContactInfo:     n.ContactInfo(raw.ContactInfo),
		Skills:          skills,
		Role:            n.Role(raw.Role),
		Location:        n.Location(raw.Location),
		ExperienceYears: n.Years(raw.ExperienceYears),
		Experience:      n.Experience(raw.Experience),
		Education:       education,
		Projects:        projects,
		Interests:       interests,
		GrowthPotential: growth,
		WritingQuality:  n.WritingQuality(raw.WritingQuality),
		Suggestions:     suggestions,
		ATS:             n.ATS(raw.ATS),
		JobMatch:        n.JobMatch(raw.JobMatch),
	}

	for _, s := range []struct {
		name string
		step Step
	}{
		{"skills", skillsStep},
		{"education", educationStep},
		{"projects", projectsStep},
		{"interests", interestsStep},
		{"growth_indicators", growthStep},
		{"resume_suggestions", suggestionsStep},
	} {
		a.logger.Debug("entity admission",
			zap.String("name", s.name),
			zap.Int("initial", s.step.Initial),
			zap.Int("dropped", s.step.Dropped),
			zap.Int("left", s.step.Left),
		)
	}

	return result
}

// Assemble normalizes data with the given options and no logging.
func Assemble(data []byte, opts Options) (AnalysisResult, error) {
	return NewAssembler(opts, nil).Assemble(data)
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null payload"
	case []any:
		return "array payload"
	case float64:
		return "number payload"
	case string:
		return "string payload"
	case bool:
		return "boolean payload"
	default:
		return fmt.Sprintf("%T payload", v)
	}
}
