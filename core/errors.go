package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ServiceErrorBadInput        = "SYNC_BAD_INPUT"
	ServiceErrorNotFound        = "SYNC_NOT_FOUND"
	ServiceErrorConflict        = "SYNC_CONFLICT"
	ServiceErrorUnauthorized    = "SYNC_UNAUTHORIZED"
	ServiceErrorForbidden       = "SYNC_FORBIDDEN"
	ServiceErrorRateLimited     = "SYNC_RATE_LIMITED"
	ServiceErrorRemoteFailure   = "SYNC_REMOTE_FAILURE"
	ServiceErrorExternalFailure = "SYNC_EXTERNAL_FAILURE"
	ServiceErrorCredentials     = "SYNC_CREDENTIALS"
	ServiceErrorInternal        = "SYNC_INTERNAL_ERROR"
)

type ErrorMapper func(err error) *goerrors.Error

// RemoteErrorBody is the error document Sync returns on non-2xx responses.
type RemoteErrorBody struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

// IsNotFound reports whether err carries the not-found category, either from
// a 404 response or a wrapped envelope.
func IsNotFound(err error) bool {
	return goerrors.HasCategory(err, goerrors.CategoryNotFound)
}

func IsValidationError(err error) bool {
	return goerrors.HasCategory(err, goerrors.CategoryValidation)
}

func IsConflict(err error) bool {
	return goerrors.HasCategory(err, goerrors.CategoryConflict)
}

func validationError(field string, message string) error {
	return goerrors.NewValidation(fmt.Sprintf("core: %s %s", field, message), goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(ServiceErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}

func credentialError(name string, err error) error {
	return goerrors.Wrap(err, goerrors.CategoryAuth, "core: resolve credential "+name).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ServiceErrorCredentials).
		WithMetadata(map[string]any{"secret": name})
}

func internalError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ServiceErrorInternal)
}

// remoteError turns a non-2xx Sync response into an error envelope. The
// category follows the HTTP status; Twilio's own error code is kept in
// metadata.
func remoteError(res TransportResponse, operation string, resource string, resourceID string) error {
	body := RemoteErrorBody{}
	if len(res.Body) > 0 {
		_ = json.Unmarshal(res.Body, &body)
	}
	message := strings.TrimSpace(body.Message)
	if message == "" {
		message = strings.TrimSpace(http.StatusText(res.StatusCode))
	}
	if message == "" {
		message = fmt.Sprintf("unexpected status %d", res.StatusCode)
	}
	category := remoteCategory(res.StatusCode)
	metadata := map[string]any{
		"operation":   operation,
		"resource":    resource,
		"status_code": res.StatusCode,
	}
	if resourceID != "" {
		metadata["resource_id"] = resourceID
	}
	if body.Code != 0 {
		metadata["twilio_code"] = body.Code
	}
	if body.MoreInfo != "" {
		metadata["more_info"] = body.MoreInfo
	}
	if id := strings.TrimSpace(res.Headers["X-Request-Id"]); id != "" {
		metadata["request_id"] = id
	}
	return goerrors.New("core: sync "+operation+" failed: "+message, category).
		WithCode(res.StatusCode).
		WithTextCode(remoteTextCode(category)).
		WithMetadata(metadata)
}

func remoteCategory(status int) goerrors.Category {
	if status >= http.StatusInternalServerError {
		return goerrors.CategoryExternal
	}
	return goerrors.HTTPStatusToCategory(status)
}

func remoteTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ServiceErrorBadInput
	case goerrors.CategoryNotFound:
		return ServiceErrorNotFound
	case goerrors.CategoryConflict:
		return ServiceErrorConflict
	case goerrors.CategoryAuth:
		return ServiceErrorUnauthorized
	case goerrors.CategoryAuthz:
		return ServiceErrorForbidden
	case goerrors.CategoryRateLimit:
		return ServiceErrorRateLimited
	case goerrors.CategoryExternal:
		return ServiceErrorExternalFailure
	default:
		return ServiceErrorRemoteFailure
	}
}

func serviceErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureServiceErrorEnvelope(richErr)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureServiceErrorEnvelope(mapped)
}

func ensureServiceErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = serviceHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = remoteTextCode(err.Category)
		if err.Category == goerrors.CategoryInternal {
			err.TextCode = ServiceErrorInternal
		}
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func serviceHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
