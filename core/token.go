package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenContentType = "twilio-fpa;v=1"

// IssueToken signs a fresh access token granting identity access to the
// configured Sync service. Tokens are never cached.
func (s *Service) IssueToken(ctx context.Context, identity string) (token AccessToken, err error) {
	startedAt := s.now()
	identity = strings.TrimSpace(identity)
	fields := map[string]any{"resource": ResourceToken, "identity": identity}
	defer func() { s.observeOperation(ctx, startedAt, "token.issue", err, fields) }()

	if identity == "" {
		err = s.mapError(validationError("identity", "is required"))
		return AccessToken{}, err
	}

	accountSID, err := s.resolveSecret(ctx, s.config.Secrets.AccountSID)
	if err != nil {
		return AccessToken{}, s.mapError(err)
	}
	apiKeySID, err := s.resolveSecret(ctx, s.config.Secrets.APIKeySID)
	if err != nil {
		return AccessToken{}, s.mapError(err)
	}
	apiKeySecret, err := s.resolveSecret(ctx, s.config.Secrets.APIKeySecret)
	if err != nil {
		return AccessToken{}, s.mapError(err)
	}
	serviceSID, err := s.resolveSecret(ctx, s.config.Secrets.ServiceSID)
	if err != nil {
		return AccessToken{}, s.mapError(err)
	}

	now := s.now()
	ttl := s.config.Token.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	claims := jwt.MapClaims{
		"jti": fmt.Sprintf("%s-%d", apiKeySID, now.Unix()),
		"iss": apiKeySID,
		"sub": accountSID,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"grants": map[string]any{
			"identity": identity,
			"data_sync": map[string]any{
				"service_sid": serviceSID,
			},
		},
	}

	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed.Header["cty"] = accessTokenContentType
	value, err := signed.SignedString([]byte(apiKeySecret))
	if err != nil {
		return AccessToken{}, s.mapError(internalError("core: sign access token: " + err.Error()))
	}
	fields["expires_at"] = now.Add(ttl).Unix()
	return AccessToken{Identity: identity, Token: value}, nil
}
