// Package coerce turns loosely typed JSON values into the primitives the
// analysis pipeline works with. Every helper is total: wrong types, missing
// values and non-finite numbers fall back to a default instead of failing.
package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultMinScore and DefaultMaxScore bound a score when no explicit range is given.
	DefaultMinScore = 1
	DefaultMaxScore = 10
)

// TextOrNull returns the trimmed text of v, or nil when v carries no text.
func TextOrNull(v any) *string {
	text, ok := text(v)
	if !ok {
		return nil
	}

	return &text
}

// TextOrFallback returns the trimmed text of v, or fallback when v carries no text.
func TextOrFallback(v any, fallback string) string {
	text, ok := text(v)
	if !ok {
		return fallback
	}

	return text
}

// Text returns the trimmed text of v or an empty string.
func Text(v any) string {
	return TextOrFallback(v, "")
}

// ClampScore returns v clamped into [lo, hi], or def when v is not a finite number.
// A reversed range is swapped so the result always lies inside it.
func ClampScore(v any, def, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	f, ok := Number(v)
	if !ok {
		return def
	}

	return math.Min(math.Max(f, lo), hi)
}

// Score is ClampScore with the default [1, 10] range.
func Score(v any, def float64) float64 {
	return ClampScore(v, def, DefaultMinScore, DefaultMaxScore)
}

// Count returns v as a non-negative integer. Fractions are truncated and
// anything that is not a finite number counts as zero.
func Count(v any) int {
	f, ok := Number(v)
	if !ok || f <= 0 {
		return 0
	}

	if f >= math.MaxInt32 {
		return math.MaxInt32
	}

	return int(f)
}

// ArrayOrEmpty returns v when it is a JSON array and an empty slice otherwise.
func ArrayOrEmpty(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []string:
		items := make([]any, 0, len(val))
		for _, s := range val {
			items = append(items, s)
		}
		return items
	case []map[string]any:
		items := make([]any, 0, len(val))
		for _, m := range val {
			items = append(items, m)
		}
		return items
	default:
		return []any{}
	}
}

// Object returns v when it is a JSON object, or nil.
func Object(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}

	return nil
}

// Strings keeps the non-blank text entries of a JSON array, trimmed and in order.
func Strings(v any) []string {
	items := ArrayOrEmpty(v)
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := text(item); ok {
			result = append(result, s)
		}
	}

	return result
}

// Number reports v as a finite float64. Only real JSON numbers qualify;
// numeric-looking strings are not numbers.
func Number(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint:
		f = float64(val)
	case json.Number:
		parsed, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

func text(v any) (string, bool) {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case *string:
		if val == nil {
			return "", false
		}
		s = *val
	case fmt.Stringer:
		s = val.String()
	case float64, int, int64:
		n, ok := Number(val)
		if !ok {
			return "", false
		}
		s = strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return "", false
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	return s, true
}
