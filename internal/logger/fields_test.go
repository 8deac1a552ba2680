package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  role  ", Value: "  Data Analyst  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "role" || fields[0].String != "Data Analyst" {
		t.Fatalf("unexpected role field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if ctx := entries[0].ContextMap(); ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Logging with the fallback logger must not panic.
	enriched.Info("another log")
}

func TestResultFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		role     string
		location string
		expect   map[string]string
	}{
		{
			name:     "both present",
			role:     "Software Engineer",
			location: "Berlin",
			expect:   map[string]string{FieldRole: "Software Engineer", FieldLocation: "Berlin"},
		},
		{
			name:     "placeholders dropped",
			role:     "Not specified",
			location: "not specified",
			expect:   map[string]string{},
		},
		{
			name:     "blank location",
			role:     "QA Engineer",
			location: "  ",
			expect:   map[string]string{FieldRole: "QA Engineer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fields := ResultFields(tt.role, tt.location, "Not specified")
			if len(fields) != len(tt.expect) {
				t.Fatalf("expected %d fields, got %d", len(tt.expect), len(fields))
			}
			for _, f := range fields {
				if tt.expect[f.Key] != f.String {
					t.Fatalf("unexpected field %s=%q", f.Key, f.String)
				}
			}
		})
	}
}

func TestWithProvider(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithProvider(zap.New(core), "gemini").Info("analyzing")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if ctx := entries[0].ContextMap(); ctx[FieldProvider] != "gemini" {
		t.Fatalf("expected provider gemini, got %q", ctx[FieldProvider])
	}

	WithProvider(nil, "").Info("must not panic")
}

func TestNew(t *testing.T) {
	for _, json := range []bool{true, false} {
		logger, err := New(json, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("expected debug level to be enabled")
		}
	}
}
