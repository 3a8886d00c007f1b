// Package twiliosync is the entry point for the Twilio Sync client: it
// re-exports the core service and wires the REST transport by default.
package twiliosync

import (
	"net/http"

	"github.com/goliatone/go-twilio-sync/core"
	"github.com/goliatone/go-twilio-sync/transport"
)

type Config = core.Config

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies
type CredentialResolver = core.CredentialResolver
type CredentialResolverFunc = core.CredentialResolverFunc
type MetricsRecorder = core.MetricsRecorder
type TransportAdapter = core.TransportAdapter
type Signer = core.Signer

type Document = core.Document
type List = core.List
type ListItem = core.ListItem
type AccessToken = core.AccessToken
type ResourceInput = core.ResourceInput
type ListItemInput = core.ListItemInput
type ListItemsRequest = core.ListItemsRequest

var (
	WithLogger              = core.WithLogger
	WithLoggerProvider      = core.WithLoggerProvider
	WithMetricsRecorder     = core.WithMetricsRecorder
	WithErrorMapper         = core.WithErrorMapper
	WithConfigProvider      = core.WithConfigProvider
	WithOptionsResolver     = core.WithOptionsResolver
	WithCredentialResolver  = core.WithCredentialResolver
	WithTransportFactory    = core.WithTransportFactory
	WithTransport           = core.WithTransport
	WithSignerFactory       = core.WithSignerFactory
	WithClock               = core.WithClock
	WithRequestIDGenerator  = core.WithRequestIDGenerator
	IndexRef                = core.IndexRef
	ResourceInputFromRecord = core.ResourceInputFromRecord
	ListItemInputFromRecord = core.ListItemInputFromRecord
	IsNotFound              = core.IsNotFound
	IsValidationError       = core.IsValidationError
	IsConflict              = core.IsConflict
)

// WithHTTPClient routes Sync calls through client. Basic auth is still added
// per handle from the resolved account credentials.
func WithHTTPClient(client *http.Client) Option {
	if client == nil {
		return core.WithTransportFactory(transport.Factory(nil))
	}
	return core.WithTransportFactory(transport.Factory(client))
}

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// NewService builds a core.Service with the REST transport and basic auth
// signer installed. Caller options are applied afterwards and win.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, withDefaults(opts)...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, withDefaults(opts)...)
}

func withDefaults(opts []Option) []Option {
	out := make([]Option, 0, len(opts)+2)
	out = append(out,
		core.WithTransportFactory(transport.Factory(nil)),
		core.WithSignerFactory(transport.NewBasicAuthSigner),
	)
	return append(out, opts...)
}
