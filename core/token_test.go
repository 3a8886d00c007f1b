package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueToken_SignsSyncGrant(t *testing.T) {
	issuedAt := time.Now().UTC().Truncate(time.Second)
	creds := newCountingCredentials()
	svc, err := newTestService(nil, creds, WithClock(func() time.Time { return issuedAt }))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	token, err := svc.IssueToken(context.Background(), " user-1 ")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token.Identity != "user-1" {
		t.Fatalf("expected trimmed identity, got %q", token.Identity)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token.Token, claims, func(*jwt.Token) (any, error) {
		return []byte(testAPIKeySecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if parsed.Header["cty"] != accessTokenContentType {
		t.Fatalf("expected cty header, got %#v", parsed.Header["cty"])
	}
	if claims["iss"] != testAPIKeySID || claims["sub"] != testAccountSID {
		t.Fatalf("unexpected issuer/subject %#v/%#v", claims["iss"], claims["sub"])
	}
	expiresAt, err := claims.GetExpirationTime()
	if err != nil || !expiresAt.Time.Equal(issuedAt.Add(DefaultTokenTTL)) {
		t.Fatalf("expected exp at issue time + ttl, got %v err=%v", expiresAt, err)
	}
	grants, ok := claims["grants"].(map[string]any)
	if !ok {
		t.Fatalf("expected grants claim, got %#v", claims["grants"])
	}
	if grants["identity"] != "user-1" {
		t.Fatalf("expected identity grant, got %#v", grants["identity"])
	}
	dataSync, ok := grants["data_sync"].(map[string]any)
	if !ok || dataSync["service_sid"] != testServiceSID {
		t.Fatalf("expected data_sync grant for service, got %#v", grants["data_sync"])
	}
	if creds.count(SecretAuthToken) != 0 {
		t.Fatalf("expected token issuance not to use the auth token")
	}
}

func TestIssueToken_FreshTokenEveryCall(t *testing.T) {
	creds := newCountingCredentials()
	svc, err := newTestService(nil, creds)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.IssueToken(context.Background(), "user-1"); err != nil {
			t.Fatalf("issue token: %v", err)
		}
	}
	if got := creds.count(SecretAPIKeySecret); got != 2 {
		t.Fatalf("expected secrets resolved on every call, got %d", got)
	}
}

func TestIssueToken_RequiresIdentity(t *testing.T) {
	creds := newCountingCredentials()
	svc, err := newTestService(nil, creds)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.IssueToken(context.Background(), "  "); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if creds.total() != 0 {
		t.Fatalf("expected no credential lookups")
	}
}

func TestIssueToken_PropagatesCredentialFailure(t *testing.T) {
	creds := newCountingCredentials()
	creds.fail[SecretAPIKeySecret] = errors.New("denied")
	svc, err := newTestService(nil, creds)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.IssueToken(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected credential failure to propagate")
	}
}
