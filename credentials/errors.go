package credentials

import "errors"

var (
	// ErrSecretNotFound is returned when a resolver has no value for a name.
	ErrSecretNotFound = errors.New("credentials: secret not found")
	// ErrSecretEmpty is returned when a secret exists but holds no value.
	ErrSecretEmpty = errors.New("credentials: secret value is empty")
	// ErrAccessDenied is returned when the backing store refuses the read.
	ErrAccessDenied = errors.New("credentials: access denied to secret")
)
