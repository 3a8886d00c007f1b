package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

func (s *Service) observeOperation(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	if s == nil {
		return
	}
	operation = normalizeOperation(operation)
	if operation == "" {
		operation = "unknown"
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	elapsed := s.now().Sub(startedAt)

	contextFields := cloneFields(fields)
	contextFields["operation"] = operation
	contextFields["status"] = status
	contextFields["duration_ms"] = elapsed.Milliseconds()
	if err != nil {
		contextFields["error"] = err.Error()
		enrichErrorFields(contextFields, err)
	}

	tags := map[string]string{
		"operation": operation,
		"status":    status,
	}
	if value := strings.TrimSpace(fmt.Sprint(contextFields["resource"])); value != "" && value != "<nil>" {
		tags["resource"] = value
	}

	s.recordCounter(ctx, "twiliosync."+operation+".total", 1, tags)
	s.recordHistogram(ctx, "twiliosync."+operation+".duration_ms", float64(elapsed.Milliseconds()), tags)

	if err != nil {
		s.logError(ctx, operation+" failed", contextFields)
		return
	}
	s.logInfo(ctx, operation+" succeeded", contextFields)
}

// enrichErrorFields copies the envelope's category, codes and remote
// identifiers into the log fields.
func enrichErrorFields(fields map[string]any, err error) {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) || richErr == nil {
		return
	}
	fields["error_category"] = richErr.Category.String()
	if richErr.TextCode != "" {
		fields["error_text_code"] = richErr.TextCode
	}
	if richErr.Code != 0 {
		fields["error_code"] = richErr.Code
	}
	for _, key := range []string{"twilio_code", "more_info", "status_code"} {
		if value, ok := richErr.Metadata[key]; ok {
			fields[key] = value
		}
	}
	if _, ok := fields["request_id"]; !ok {
		if value, ok := richErr.Metadata["request_id"]; ok {
			fields["request_id"] = value
		}
	}
}

func (s *Service) logInfo(ctx context.Context, message string, fields map[string]any) {
	s.logWithLevel(ctx, "info", message, fields)
}

func (s *Service) logError(ctx context.Context, message string, fields map[string]any) {
	s.logWithLevel(ctx, "error", message, fields)
}

func (s *Service) logDebug(ctx context.Context, message string, fields map[string]any) {
	s.logWithLevel(ctx, "debug", message, fields)
}

func (s *Service) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if s == nil || s.logger == nil {
		return
	}
	logger := s.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.Error(message, args...)
	case "debug":
		logger.Debug(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (s *Service) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if s == nil || s.metricsRecorder == nil {
		return
	}
	s.metricsRecorder.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (s *Service) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if s == nil || s.metricsRecorder == nil {
		return
	}
	s.metricsRecorder.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func normalizeOperation(operation string) string {
	operation = strings.TrimSpace(strings.ToLower(operation))
	operation = strings.ReplaceAll(operation, " ", "_")
	operation = strings.ReplaceAll(operation, "-", "_")
	return operation
}
