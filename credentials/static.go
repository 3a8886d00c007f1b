package credentials

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-twilio-sync/core"
)

// StaticResolver serves secrets from memory. It is meant for tests and for
// callers that load credentials through their own configuration.
type StaticResolver struct {
	mu      sync.RWMutex
	secrets map[string]string
}

func NewStaticResolver(secrets map[string]string) *StaticResolver {
	copied := make(map[string]string, len(secrets))
	for key, value := range secrets {
		copied[key] = value
	}
	return &StaticResolver{secrets: copied}
}

func (r *StaticResolver) Set(name string, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.secrets == nil {
		r.secrets = map[string]string{}
	}
	r.secrets[name] = value
}

func (r *StaticResolver) GetSecret(_ context.Context, name string) (string, error) {
	if r == nil {
		return "", fmt.Errorf("credentials: static resolver is nil")
	}
	r.mu.RLock()
	value, ok := r.secrets[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretEmpty, name)
	}
	return value, nil
}

var _ core.CredentialResolver = (*StaticResolver)(nil)
