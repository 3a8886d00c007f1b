package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-twilio-sync/core"
)

// EnvResolver reads secrets from environment variables named Prefix+name.
type EnvResolver struct {
	Prefix string
	Lookup func(key string) (string, bool)
}

func NewEnvResolver(prefix string) *EnvResolver {
	return &EnvResolver{Prefix: prefix, Lookup: os.LookupEnv}
}

func (r *EnvResolver) GetSecret(_ context.Context, name string) (string, error) {
	if r == nil {
		return "", fmt.Errorf("credentials: env resolver is nil")
	}
	lookup := r.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	key := r.Prefix + name
	value, ok := lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretEmpty, key)
	}
	return value, nil
}

var _ core.CredentialResolver = (*EnvResolver)(nil)
