package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL        = "https://sync.twilio.com/v1"
	DefaultListPageSize   = 50
	MaxListPageSize       = 1000
	DefaultTokenTTL       = time.Hour
	DefaultRequestTimeout = 30 * time.Second
)

const (
	SecretAccountSID   = "TWILIO_ACCOUNT_SID"
	SecretAuthToken    = "TWILIO_ACCOUNT_TOKEN"
	SecretAPIKeySID    = "TWILIO_API_KEY_SID"
	SecretAPIKeySecret = "TWILIO_API_KEY_SECRET"
	SecretServiceSID   = "TWILIO_SYNC_SERVICE_SID"
)

// SecretNames maps each credential to the name looked up on the resolver.
type SecretNames struct {
	AccountSID   string `koanf:"account_sid" mapstructure:"account_sid"`
	AuthToken    string `koanf:"auth_token" mapstructure:"auth_token"`
	APIKeySID    string `koanf:"api_key_sid" mapstructure:"api_key_sid"`
	APIKeySecret string `koanf:"api_key_secret" mapstructure:"api_key_secret"`
	ServiceSID   string `koanf:"service_sid" mapstructure:"service_sid"`
}

type TokenConfig struct {
	TTL time.Duration `koanf:"ttl" mapstructure:"ttl"`
}

type ListsConfig struct {
	DefaultPageSize int `koanf:"default_page_size" mapstructure:"default_page_size"`
}

type TransportConfig struct {
	RequestTimeout time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
}

type Config struct {
	ServiceName string          `koanf:"service_name" mapstructure:"service_name"`
	BaseURL     string          `koanf:"base_url" mapstructure:"base_url"`
	Secrets     SecretNames     `koanf:"secrets" mapstructure:"secrets"`
	Token       TokenConfig     `koanf:"token" mapstructure:"token"`
	Lists       ListsConfig     `koanf:"lists" mapstructure:"lists"`
	Transport   TransportConfig `koanf:"transport" mapstructure:"transport"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "twiliosync",
		BaseURL:     DefaultBaseURL,
		Secrets: SecretNames{
			AccountSID:   SecretAccountSID,
			AuthToken:    SecretAuthToken,
			APIKeySID:    SecretAPIKeySID,
			APIKeySecret: SecretAPIKeySecret,
			ServiceSID:   SecretServiceSID,
		},
		Token:     TokenConfig{TTL: DefaultTokenTTL},
		Lists:     ListsConfig{DefaultPageSize: DefaultListPageSize},
		Transport: TransportConfig{RequestTimeout: DefaultRequestTimeout},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		return fmt.Errorf("core: base_url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("core: base_url %q is invalid", base)
	}
	for field, value := range map[string]string{
		"secrets.account_sid":    c.Secrets.AccountSID,
		"secrets.auth_token":     c.Secrets.AuthToken,
		"secrets.api_key_sid":    c.Secrets.APIKeySID,
		"secrets.api_key_secret": c.Secrets.APIKeySecret,
		"secrets.service_sid":    c.Secrets.ServiceSID,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("core: %s is required", field)
		}
	}
	if c.Token.TTL <= 0 {
		return fmt.Errorf("core: token.ttl must be positive")
	}
	if c.Lists.DefaultPageSize <= 0 || c.Lists.DefaultPageSize > MaxListPageSize {
		return fmt.Errorf("core: lists.default_page_size must be between 1 and %d", MaxListPageSize)
	}
	if c.Transport.RequestTimeout < 0 {
		return fmt.Errorf("core: transport.request_timeout must not be negative")
	}
	return nil
}
