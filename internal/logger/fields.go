package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRole is the structured log field key for the detected role.
	FieldRole = "role"
	// FieldLocation is the structured log field key for the detected location.
	FieldLocation = "location"
	// FieldProvider is the structured log field key for the analysis provider.
	FieldProvider = "analyzer_provider"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ResultFields describes an analysis result by role and location.
// Placeholder values are dropped so they never look like real data in logs.
func ResultFields(role, location string, placeholders ...string) []zap.Field {
	for _, p := range placeholders {
		if strings.EqualFold(strings.TrimSpace(role), p) {
			role = ""
		}
		if strings.EqualFold(strings.TrimSpace(location), p) {
			location = ""
		}
	}

	return StringFields(
		StringField{Key: FieldRole, Value: role},
		StringField{Key: FieldLocation, Value: location},
	)
}

// WithProvider attaches the analysis provider name to the logger.
func WithProvider(logger *zap.Logger, provider string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldProvider, Value: provider})...)
}
