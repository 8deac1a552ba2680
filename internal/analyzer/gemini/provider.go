package gemini

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/utils"
)

type contentGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	jobMatchInstructions = "- job_match: {match_percentage 0-100, matching_skills, missing_skills, job_skills} comparing the resume to the job description\n"
)

// Provider asks Gemini to produce the analysis payload for a plain-text resume.
type Provider struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewProvider(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Provider {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (p *Provider) Name() string { return "gemini" }

func (p *Provider) Analyze(ctx context.Context, doc *analyzer.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}
	if !utf8.Valid(doc.Content) {
		return nil, fmt.Errorf("gemini provider needs a plain text resume, %q is binary", doc.Name)
	}

	prompt := buildPrompt(string(doc.Content), doc.JobDescription)

	p.logger.Debug("gemini generate content request",
		zap.String("file", doc.Name),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, p.maxLogLen)),
	)

	raw, err := p.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("gemini generate content response",
		zap.String("file", doc.Name),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, p.maxLogLen)),
	)

	return []byte(extractJSON(raw)), nil
}

func buildPrompt(resume, jobDescription string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME_TEXT}}\n{{JOB_DESCRIPTION}}\n{{JOB_MATCH_INSTRUCTIONS}}\nJSON Response:"
	}

	instructions, jd := "", ""
	if jobDescription = strings.TrimSpace(jobDescription); jobDescription != "" {
		instructions = jobMatchInstructions
		jd = "\nJob description:\n" + jobDescription + "\n"
	}

	prompt := strings.ReplaceAll(template, "{{JOB_MATCH_INSTRUCTIONS}}", instructions)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", strings.TrimSpace(resume))
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jd)
	return prompt
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
