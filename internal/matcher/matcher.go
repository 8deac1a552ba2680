// Package matcher runs the whole pass over one analysis payload: normalize it,
// derive the job search and classify the scores.
package matcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/banding"
	"github.com/spigell/resume-matcher/internal/jobsearch"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/schemas"
)

// Report is everything the presentation layer needs for one resume.
type Report struct {
	ID              string                  `json:"id"`
	Result          analysis.AnalysisResult `json:"result"`
	SearchURL       string                  `json:"search_url"`
	ExperienceLevel string                  `json:"experience_level,omitempty"`
	ATSBand         banding.Band            `json:"ats_band"`
	ATSMessage      string                  `json:"ats_message"`
	MatchBand       banding.Band            `json:"match_band,omitempty"`
	MatchMessage    string                  `json:"match_message,omitempty"`
}

// Pipeline is safe for concurrent use; runs share no mutable state.
type Pipeline struct {
	assembler   *analysis.Assembler
	synthesizer *jobsearch.Synthesizer
	logger      *zap.Logger
}

func New(opts analysis.Options, search jobsearch.Options, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}

	return &Pipeline{
		assembler:   analysis.NewAssembler(opts, log),
		synthesizer: jobsearch.NewSynthesizer(search),
		logger:      log,
	}
}

// Run builds a report from a raw payload. It fails only on a malformed payload.
func (p *Pipeline) Run(payload []byte) (*Report, error) {
	result, err := p.assembler.Assemble(payload)
	if err != nil {
		return nil, err
	}

	return p.Report(result), nil
}

// RunAll builds reports for several payloads at once, at most limit at a time
// when limit is positive. Reports keep the order of payloads and the first
// failing payload fails the whole batch.
func (p *Pipeline) RunAll(ctx context.Context, payloads [][]byte, limit int) ([]*Report, error) {
	reports := make([]*Report, len(payloads))

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, payload := range payloads {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			report, err := p.Run(payload)
			if err != nil {
				return fmt.Errorf("payload %d: %w", i, err)
			}
			// Each goroutine owns its own index.
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// Report derives the search and bands for an already canonical result.
func (p *Pipeline) Report(result analysis.AnalysisResult) *Report {
	id := uuid.NewString()
	log := logger.WithFields(p.logger, logger.ResultFields(result.Role, result.Location, analysis.NotSpecified)...).
		With(zap.String("report_id", id))

	if err := schemas.ValidateResult(result); err != nil {
		log.Warn("analysis result does not match schema", zap.Error(err))
	}

	params := p.synthesizer.Params(&result)
	ats := banding.ATS(result.ATS.Overall)

	report := &Report{
		ID:         id,
		Result:     result,
		SearchURL:  p.synthesizer.URL(&result),
		ATSBand:    ats,
		ATSMessage: banding.ATSMessage(ats),
	}

	if params.ExperienceLevel != 0 {
		report.ExperienceLevel = params.ExperienceLevel.String()
	}

	if result.JobMatch != nil {
		match := banding.JobMatch(result.JobMatch.MatchPercentage)
		report.MatchBand = match
		report.MatchMessage = banding.JobMatchMessage(match)
	}

	log.Info("analysis ready",
		zap.Int("skills", len(result.Skills)),
		zap.Int("suggestions", len(result.Suggestions)),
		zap.String("ats_band", string(report.ATSBand)),
		zap.String("match_band", string(report.MatchBand)),
	)

	return report
}

// DumpToTmpFile writes the report as indented JSON to a new temporary file.
func (r *Report) DumpToTmpFile() (string, error) {
	pattern := "analysis_*.json"
	if r.ID != "" {
		pattern = "analysis_" + r.ID + "_*.json"
	}

	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return file.Name(), nil
}
