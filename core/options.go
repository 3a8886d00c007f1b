package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
	"github.com/google/uuid"
)

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type serviceBuilder struct {
	runtimeConfig    Config
	logger           Logger
	loggerProvider   LoggerProvider
	metricsRecorder  MetricsRecorder
	errorMapper      ErrorMapper
	configProvider   ConfigProvider
	optionsResolver  OptionsResolver
	credentials      CredentialResolver
	transportFactory TransportFactory
	signerFactory    SignerFactory
	now              func() time.Time
	requestID        func() string
}

type Option func(*serviceBuilder)

func WithLogger(logger Logger) Option {
	return func(b *serviceBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *serviceBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *serviceBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *serviceBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *serviceBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *serviceBuilder) {
		b.optionsResolver = resolver
	}
}

func WithCredentialResolver(resolver CredentialResolver) Option {
	return func(b *serviceBuilder) {
		b.credentials = resolver
	}
}

func WithTransportFactory(factory TransportFactory) Option {
	return func(b *serviceBuilder) {
		b.transportFactory = factory
	}
}

// WithTransport binds a fixed adapter to every handle. The adapter is
// responsible for its own authentication.
func WithTransport(adapter TransportAdapter) Option {
	return func(b *serviceBuilder) {
		if adapter == nil {
			b.transportFactory = nil
			return
		}
		b.transportFactory = func(Config, Signer) TransportAdapter { return adapter }
	}
}

func WithSignerFactory(factory SignerFactory) Option {
	return func(b *serviceBuilder) {
		b.signerFactory = factory
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *serviceBuilder) {
		b.now = now
	}
}

func WithRequestIDGenerator(generator func() string) Option {
	return func(b *serviceBuilder) {
		b.requestID = generator
	}
}

func defaultServiceBuilder(runtime Config) serviceBuilder {
	loggerProvider, logger := glog.Resolve("twiliosync", nil, nil)
	return serviceBuilder{
		runtimeConfig:   runtime,
		loggerProvider:  loggerProvider,
		logger:          logger,
		metricsRecorder: NopMetricsRecorder{},
		errorMapper:     defaultErrorMapper,
		configProvider:  NewCfgxConfigProvider(nil),
		optionsResolver: GoOptionsResolver{},
		now:             func() time.Time { return time.Now().UTC() },
		requestID:       uuid.NewString,
	}
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	return serviceErrorMapper(err)
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// NewStaticConfigLoader serves a fixed raw config map, typically decoded from
// a file or environment by the caller.
func NewStaticConfigLoader(values map[string]any) RawConfigLoader {
	return staticRawConfigLoader{Values: values}
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

// configToLayerMap flattens cfg into an options layer. Zero values are
// skipped unless includeZero is set, so an unset runtime field never masks a
// loaded one.
func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.ServiceName) != "" {
		layer["service_name"] = cfg.ServiceName
	}
	if includeZero || strings.TrimSpace(cfg.BaseURL) != "" {
		layer["base_url"] = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	}

	secrets := map[string]any{}
	for key, value := range map[string]string{
		"account_sid":    cfg.Secrets.AccountSID,
		"auth_token":     cfg.Secrets.AuthToken,
		"api_key_sid":    cfg.Secrets.APIKeySID,
		"api_key_secret": cfg.Secrets.APIKeySecret,
		"service_sid":    cfg.Secrets.ServiceSID,
	} {
		if includeZero || strings.TrimSpace(value) != "" {
			secrets[key] = strings.TrimSpace(value)
		}
	}
	if len(secrets) > 0 {
		layer["secrets"] = secrets
	}
	if includeZero || cfg.Token.TTL > 0 {
		layer["token"] = map[string]any{"ttl": cfg.Token.TTL}
	}
	if includeZero || cfg.Lists.DefaultPageSize > 0 {
		layer["lists"] = map[string]any{"default_page_size": cfg.Lists.DefaultPageSize}
	}
	if includeZero || cfg.Transport.RequestTimeout > 0 {
		layer["transport"] = map[string]any{"request_timeout": cfg.Transport.RequestTimeout}
	}
	return layer
}
