package credentials

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-twilio-sync/core"
)

type FailurePolicy string

const (
	FailurePolicyStrict   FailurePolicy = "strict_fail"
	FailurePolicyFallback FailurePolicy = "fallback_allowed"
)

type Diagnostic struct {
	OccurredAt time.Time
	Secret     string
	Policy     FailurePolicy
	Outcome    string
	Primary    string
	Fallback   string
	Error      string
}

type DiagnosticHook func(event Diagnostic)

type FailoverOption func(*FailoverResolver)

// FailoverResolver asks the primary resolver first. Under the fallback
// policy a primary failure is retried once against the fallback resolver;
// under the strict policy it is returned as is.
type FailoverResolver struct {
	primary        core.CredentialResolver
	fallback       core.CredentialResolver
	policy         FailurePolicy
	diagnosticHook DiagnosticHook
	now            func() time.Time
}

func NewFailoverResolver(primary core.CredentialResolver, opts ...FailoverOption) (*FailoverResolver, error) {
	if primary == nil {
		return nil, fmt.Errorf("credentials: primary resolver is required")
	}
	resolver := &FailoverResolver{
		primary: primary,
		policy:  FailurePolicyStrict,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(resolver)
	}
	resolver.policy = normalizeFailurePolicy(resolver.policy)
	if resolver.policy == FailurePolicyFallback && resolver.fallback == nil {
		return nil, fmt.Errorf("credentials: fallback policy requires a fallback resolver")
	}
	if resolver.now == nil {
		resolver.now = func() time.Time { return time.Now().UTC() }
	}
	return resolver, nil
}

func WithFallbackResolver(resolver core.CredentialResolver) FailoverOption {
	return func(f *FailoverResolver) {
		f.fallback = resolver
	}
}

func WithFailurePolicy(policy FailurePolicy) FailoverOption {
	return func(f *FailoverResolver) {
		f.policy = normalizeFailurePolicy(policy)
	}
}

func WithDiagnostics(hook DiagnosticHook) FailoverOption {
	return func(f *FailoverResolver) {
		f.diagnosticHook = hook
	}
}

func WithFailoverClock(now func() time.Time) FailoverOption {
	return func(f *FailoverResolver) {
		f.now = now
	}
}

func (r *FailoverResolver) GetSecret(ctx context.Context, name string) (string, error) {
	if r == nil {
		return "", fmt.Errorf("credentials: failover resolver is nil")
	}
	value, err := r.primary.GetSecret(ctx, name)
	if err == nil {
		return value, nil
	}
	r.emit(name, "primary_failed", err)
	if r.policy == FailurePolicyStrict || r.fallback == nil {
		return "", fmt.Errorf("credentials: primary resolver failed with %s policy: %w", r.policy, err)
	}
	fallbackValue, fallbackErr := r.fallback.GetSecret(ctx, name)
	if fallbackErr != nil {
		r.emit(name, "fallback_failed", fallbackErr)
		return "", fmt.Errorf("credentials: primary resolver failed: %v; fallback resolver failed: %w", err, fallbackErr)
	}
	r.emit(name, "fallback_succeeded", err)
	return fallbackValue, nil
}

func (r *FailoverResolver) emit(secret string, outcome string, err error) {
	if r.diagnosticHook == nil {
		return
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.diagnosticHook(Diagnostic{
		OccurredAt: r.now().UTC(),
		Secret:     secret,
		Policy:     r.policy,
		Outcome:    outcome,
		Primary:    describeResolver(r.primary),
		Fallback:   describeResolver(r.fallback),
		Error:      msg,
	})
}

func normalizeFailurePolicy(policy FailurePolicy) FailurePolicy {
	normalized := FailurePolicy(strings.ToLower(strings.TrimSpace(string(policy))))
	switch normalized {
	case FailurePolicyFallback:
		return FailurePolicyFallback
	default:
		return FailurePolicyStrict
	}
}

func describeResolver(resolver core.CredentialResolver) string {
	if resolver == nil {
		return ""
	}
	return reflect.TypeOf(resolver).String()
}

var _ core.CredentialResolver = (*FailoverResolver)(nil)
