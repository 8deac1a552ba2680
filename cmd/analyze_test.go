package cmd

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/jobsearch"
	"github.com/spigell/resume-matcher/internal/matcher"
	"github.com/spigell/resume-matcher/internal/session"
)

func newTestPipeline() *matcher.Pipeline {
	return matcher.New(analysis.DefaultOptions(), jobsearch.DefaultOptions(), nil)
}

func TestHandleActionWithoutAnalysis(t *testing.T) {
	src := &source{fromPayload: true}
	store := &session.Store[matcher.Report]{}

	for _, action := range []string{PromptSuggestions, PromptSearchURL, PromptDump} {
		t.Run(action, func(t *testing.T) {
			var out strings.Builder
			err := handleAction(context.Background(), action, src, newTestPipeline(), store, &out, zap.NewNop())
			if !errors.Is(err, errNoAnalysis) {
				t.Fatalf("expected errNoAnalysis, got %v", err)
			}
			if errors.Is(err, errExit) {
				t.Fatalf("an empty session must not end the loop")
			}
			if out.Len() != 0 {
				t.Fatalf("expected no output, got %q", out.String())
			}
		})
	}
}

func TestHandleActionReusesStoredReport(t *testing.T) {
	report, err := newTestPipeline().Run([]byte(`{"role": "sre", "resume_suggestions": [{"text": "Add metrics", "severity": "high"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := &session.Store[matcher.Report]{}
	store.Set(*report)
	src := &source{fromPayload: true}

	var out strings.Builder
	if err := handleAction(context.Background(), PromptSearchURL, src, newTestPipeline(), store, &out, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != report.SearchURL {
		t.Fatalf("expected %q, got %q", report.SearchURL, out.String())
	}

	out.Reset()
	if err := handleAction(context.Background(), PromptSuggestions, src, newTestPipeline(), store, &out, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "1. [high/general] Add metrics") {
		t.Fatalf("unexpected suggestions output: %q", out.String())
	}

	core, observed := observer.New(zapcore.InfoLevel)
	if err := handleAction(context.Background(), PromptDump, src, newTestPipeline(), store, &out, zap.New(core)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := observed.FilterMessage("dumping analysis to file").All()
	if len(entries) != 1 {
		t.Fatalf("expected one dump entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	filename, _ := fields["filename"].(string)
	t.Cleanup(func() { os.Remove(filename) })

	if fields["report_id"] != report.ID {
		t.Fatalf("expected dump of report %s, got %v", report.ID, fields["report_id"])
	}
	if !strings.Contains(filename, report.ID) {
		t.Fatalf("expected dump name %q to carry report id %s", filename, report.ID)
	}
}

func TestHandleActionExit(t *testing.T) {
	store := &session.Store[matcher.Report]{}
	var out strings.Builder

	err := handleAction(context.Background(), PromptExit, &source{}, newTestPipeline(), store, &out, zap.NewNop())
	if !errors.Is(err, errExit) {
		t.Fatalf("expected errExit, got %v", err)
	}
}
