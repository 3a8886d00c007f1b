package core

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
)

var errEmptySecret = errors.New("secret value is empty")

// ServiceHandle is an authenticated reference bound to one Sync service
// instance. It is built once per Service and shared by every operation.
type ServiceHandle struct {
	AccountSID string
	ServiceSID string
	BaseURL    string
	transport  TransportAdapter
}

func (h *ServiceHandle) Transport() TransportAdapter {
	if h == nil {
		return nil
	}
	return h.transport
}

// ResourceURL joins escaped path segments under the service base URL.
func (h *ServiceHandle) ResourceURL(segments ...string) string {
	if h == nil {
		return ""
	}
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, strings.TrimRight(h.BaseURL, "/"))
	for _, segment := range segments {
		parts = append(parts, url.PathEscape(segment))
	}
	return strings.Join(parts, "/")
}

// handleCache memoizes the handle. A failed build is not cached, so the
// next call resolves credentials again.
type handleCache struct {
	mu     sync.Mutex
	handle *ServiceHandle
}

// ServiceHandle returns the cached handle, building it on first use from the
// account SID, auth token and service SID supplied by the credential
// resolver. Concurrent first calls serialize on the cache so at most one
// handle is ever stored.
func (s *Service) ServiceHandle(ctx context.Context) (*ServiceHandle, error) {
	if s == nil || s.handles == nil {
		return nil, internalError("core: service is not initialized")
	}
	s.handles.mu.Lock()
	defer s.handles.mu.Unlock()
	if s.handles.handle != nil {
		return s.handles.handle, nil
	}

	accountSID, err := s.resolveSecret(ctx, s.config.Secrets.AccountSID)
	if err != nil {
		return nil, err
	}
	authToken, err := s.resolveSecret(ctx, s.config.Secrets.AuthToken)
	if err != nil {
		return nil, err
	}
	serviceSID, err := s.resolveSecret(ctx, s.config.Secrets.ServiceSID)
	if err != nil {
		return nil, err
	}

	if s.transportFactory == nil {
		return nil, internalError("core: transport is not configured")
	}
	var signer Signer
	if s.signerFactory != nil {
		signer = s.signerFactory(accountSID, authToken)
	}
	adapter := s.transportFactory(s.config, signer)
	if adapter == nil {
		return nil, internalError("core: transport factory returned nil adapter")
	}

	handle := &ServiceHandle{
		AccountSID: accountSID,
		ServiceSID: serviceSID,
		BaseURL:    strings.TrimRight(s.config.BaseURL, "/") + "/Services/" + url.PathEscape(serviceSID),
		transport:  adapter,
	}
	s.handles.handle = handle
	s.logDebug(ctx, "sync service handle initialized", map[string]any{
		"service_sid": serviceSID,
		"transport":   adapter.Kind(),
	})
	return handle, nil
}
