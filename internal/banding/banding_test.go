package banding

import "testing"

func TestATS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score  float64
		expect Band
	}{
		{10, Strong},
		{7, Strong},
		{6.99, Moderate},
		{5, Moderate},
		{4.99, Poor},
		{0, Poor},
	}

	for _, tt := range tests {
		if got := ATS(tt.score); got != tt.expect {
			t.Fatalf("ATS(%v): expected %q, got %q", tt.score, tt.expect, got)
		}
	}
}

func TestJobMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		percentage float64
		expect     Band
	}{
		{100, Strong},
		{70, Strong},
		{69.9, Moderate},
		{50, Moderate},
		{49.9, Low},
		{0, Low},
	}

	for _, tt := range tests {
		if got := JobMatch(tt.percentage); got != tt.expect {
			t.Fatalf("JobMatch(%v): expected %q, got %q", tt.percentage, tt.expect, got)
		}
	}
}

func TestMessages(t *testing.T) {
	t.Parallel()

	for _, b := range []Band{Strong, Moderate, Poor, Low} {
		if ATSMessage(b) == "" || JobMatchMessage(b) == "" {
			t.Fatalf("expected message for band %q", b)
		}
	}

	if ATSMessage(Strong) == ATSMessage(Poor) {
		t.Fatalf("expected distinct messages for strong and poor bands")
	}
}
