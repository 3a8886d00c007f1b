package core

import (
	"context"
	"encoding/json"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

type remoteCall struct {
	operation  string
	resource   string
	resourceID string
	method     string
	path       []string
	form       map[string]string
	query      map[string]string
}

// call issues one request against the handle's transport. Non-2xx responses
// become error envelopes; nothing is retried.
func (s *Service) call(ctx context.Context, handle *ServiceHandle, rc remoteCall, fields map[string]any) (TransportResponse, error) {
	adapter := handle.Transport()
	if adapter == nil {
		return TransportResponse{}, internalError("core: service handle has no transport")
	}
	requestID := s.requestID()
	if fields != nil {
		fields["request_id"] = requestID
	}
	res, err := adapter.Do(ctx, TransportRequest{
		Method: rc.method,
		URL:    handle.ResourceURL(rc.path...),
		Headers: map[string]string{
			"Accept":       "application/json",
			"X-Request-Id": requestID,
		},
		Query:     rc.query,
		Form:      rc.form,
		Timeout:   s.config.Transport.RequestTimeout,
		RequestID: requestID,
		Metadata: map[string]any{
			"operation": rc.operation,
			"resource":  rc.resource,
		},
	})
	if err != nil {
		return TransportResponse{}, err
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		if res.Headers == nil {
			res.Headers = map[string]string{}
		}
		if _, ok := res.Headers["X-Request-Id"]; !ok {
			res.Headers["X-Request-Id"] = requestID
		}
		return TransportResponse{}, remoteError(res, rc.operation, rc.resource, rc.resourceID)
	}
	return res, nil
}

func decodeResponse[T any](res TransportResponse, operation string) (T, error) {
	var out T
	if len(res.Body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(res.Body, &out); err != nil {
		return out, goerrors.Wrap(err, goerrors.CategoryExternal, "core: decode sync "+operation+" response").
			WithCode(http.StatusBadGateway).
			WithTextCode(ServiceErrorExternalFailure)
	}
	return out, nil
}
