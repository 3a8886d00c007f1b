package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-twilio-sync/core"
)

const (
	resourceNotFoundException = "ResourceNotFoundException"
	accessDeniedException     = "AccessDeniedException"
)

// SecretsManagerAPI is the slice of the Secrets Manager client the resolver
// uses.
type SecretsManagerAPI interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerResolver reads secrets from AWS Secrets Manager. With a
// BundleID every name is looked up as a key of one JSON secret; otherwise
// each name is its own secret, addressed as Prefix+name.
type SecretsManagerResolver struct {
	api      SecretsManagerAPI
	prefix   string
	bundleID string
	logger   core.Logger
}

type SecretsManagerOption func(*SecretsManagerResolver)

func WithSecretPrefix(prefix string) SecretsManagerOption {
	return func(r *SecretsManagerResolver) {
		r.prefix = prefix
	}
}

func WithSecretBundle(secretID string) SecretsManagerOption {
	return func(r *SecretsManagerResolver) {
		r.bundleID = strings.TrimSpace(secretID)
	}
}

func WithSecretsManagerLogger(logger core.Logger) SecretsManagerOption {
	return func(r *SecretsManagerResolver) {
		r.logger = logger
	}
}

// NewSecretsManagerResolver builds a resolver from the default AWS config
// chain.
func NewSecretsManagerResolver(ctx context.Context, opts ...SecretsManagerOption) (*SecretsManagerResolver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("credentials: load aws config: %w", err)
	}
	return NewSecretsManagerResolverWithConfig(cfg, opts...)
}

func NewSecretsManagerResolverWithConfig(cfg aws.Config, opts ...SecretsManagerOption) (*SecretsManagerResolver, error) {
	if strings.TrimSpace(cfg.Region) == "" {
		return nil, fmt.Errorf("credentials: aws region is required")
	}
	return NewSecretsManagerResolverWithAPI(secretsmanager.NewFromConfig(cfg), opts...)
}

func NewSecretsManagerResolverWithAPI(api SecretsManagerAPI, opts ...SecretsManagerOption) (*SecretsManagerResolver, error) {
	if api == nil {
		return nil, fmt.Errorf("credentials: secrets manager api is required")
	}
	resolver := &SecretsManagerResolver{api: api}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(resolver)
	}
	resolver.logger = glog.Ensure(resolver.logger)
	return resolver, nil
}

func (r *SecretsManagerResolver) GetSecret(ctx context.Context, name string) (string, error) {
	if r == nil || r.api == nil {
		return "", fmt.Errorf("credentials: secrets manager resolver is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("credentials: secret name is required")
	}
	if r.bundleID == "" {
		return r.fetch(ctx, r.prefix+name)
	}

	raw, err := r.fetch(ctx, r.bundleID)
	if err != nil {
		return "", err
	}
	bundle := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &bundle); err != nil {
		return "", fmt.Errorf("credentials: secret bundle is not a json object: %w", err)
	}
	value, ok := bundle[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
	}
	text, ok := value.(string)
	if !ok {
		text = fmt.Sprint(value)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretEmpty, name)
	}
	return text, nil
}

func (r *SecretsManagerResolver) fetch(ctx context.Context, secretID string) (string, error) {
	r.logger.Debug("retrieving secret", "secret_name", secretID)
	output, err := r.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case resourceNotFoundException:
				return "", fmt.Errorf("%w: %s", ErrSecretNotFound, secretID)
			case accessDeniedException:
				return "", fmt.Errorf("%w: %s", ErrAccessDenied, secretID)
			}
		}
		r.logger.Error("failed to retrieve secret", "secret_name", secretID, "error", err)
		return "", fmt.Errorf("credentials: get secret %s: %w", secretID, err)
	}

	switch {
	case output.SecretString != nil && strings.TrimSpace(*output.SecretString) != "":
		return *output.SecretString, nil
	case len(output.SecretBinary) > 0:
		return string(output.SecretBinary), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrSecretEmpty, secretID)
	}
}

var _ core.CredentialResolver = (*SecretsManagerResolver)(nil)
