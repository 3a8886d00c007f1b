package core

import (
	"context"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// Service issues Sync access tokens and performs CRUD over documents, lists,
// and list items. It is safe for concurrent use.
type Service struct {
	config           Config
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
	handles          *handleCache
}

type ServiceDependencies struct {
	Logger             Logger
	LoggerProvider     LoggerProvider
	MetricsRecorder    MetricsRecorder
	ErrorMapper        ErrorMapper
	ConfigProvider     ConfigProvider
	OptionsResolver    OptionsResolver
	CredentialResolver CredentialResolver
	TransportFactory   TransportFactory
	SignerFactory      SignerFactory
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("twiliosync", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("twiliosync"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.now == nil {
		builder.now = func() time.Time { return time.Now().UTC() }
	}
	if builder.requestID == nil {
		builder.requestID = uuid.NewString
	}
	if builder.credentials == nil {
		return nil, mapBuildError(builder.errorMapper, internalError("core: credential resolver is required"))
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Service{
		config:           finalConfig,
		logger:           logger,
		loggerProvider:   provider,
		metricsRecorder:  builder.metricsRecorder,
		errorMapper:      builder.errorMapper,
		configProvider:   builder.configProvider,
		optionsResolver:  builder.optionsResolver,
		credentials:      builder.credentials,
		transportFactory: builder.transportFactory,
		signerFactory:    builder.signerFactory,
		now:              builder.now,
		requestID:        builder.requestID,
		handles:          &handleCache{},
	}, nil
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return NewService(cfg, opts...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:             s.logger,
		LoggerProvider:     s.loggerProvider,
		MetricsRecorder:    s.metricsRecorder,
		ErrorMapper:        s.errorMapper,
		ConfigProvider:     s.configProvider,
		OptionsResolver:    s.optionsResolver,
		CredentialResolver: s.credentials,
		TransportFactory:   s.transportFactory,
		SignerFactory:      s.signerFactory,
	}
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) resolveSecret(ctx context.Context, name string) (string, error) {
	value, err := s.credentials.GetSecret(ctx, name)
	if err != nil {
		return "", credentialError(name, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", credentialError(name, errEmptySecret)
	}
	return value, nil
}
