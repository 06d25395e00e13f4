package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the model backend name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the model identifier.
	FieldModel = "ai_model"
	// FieldAnalysisID identifies a single screening run.
	FieldAnalysisID = "analysis_id"
	// FieldCandidate is the candidate name of a screening run.
	FieldCandidate = "candidate"
	// FieldJobTitle is the job title a candidate is screened for.
	FieldJobTitle = "job_title"
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

// WithFields attaches the fields to logger, falling back to a no-op logger
// when logger is nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// BackendFields describes the model backend a component talks to.
func BackendFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithBackend attaches the backend fields to the provided logger.
func WithBackend(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, BackendFields(provider, model)...)
}

// AnalysisFields describes a screening run.
func AnalysisFields(id, candidate, jobTitle string) []zap.Field {
	return StringFields(
		StringField{Key: FieldAnalysisID, Value: id},
		StringField{Key: FieldCandidate, Value: candidate},
		StringField{Key: FieldJobTitle, Value: jobTitle},
	)
}
