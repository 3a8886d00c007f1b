package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-twilio-sync/core"
	"github.com/google/go-cmp/cmp"
)

func TestRESTAdapter_EncodesFormAndSignsRequest(t *testing.T) {
	var (
		gotMethod      string
		gotContentType string
		gotRequestID   string
		gotUser        string
		gotPass        string
		gotForm        url.Values
		gotQuery       url.Values
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-Id")
		gotUser, gotPass, _ = r.BasicAuth()
		gotQuery = r.URL.Query()
		raw, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(raw))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"ET1"}`))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	adapter.Signer = NewBasicAuthSigner("AC123", "token")

	res, err := adapter.Do(context.Background(), core.TransportRequest{
		Method:    http.MethodPost,
		URL:       server.URL + "/v1/Services/IS1/Documents",
		Query:     map[string]string{"Order": "asc"},
		Form:      map[string]string{"UniqueName": "doc-1", "Data": `{"a":1}`, "Ttl": "60"},
		RequestID: "req-1",
	})
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", res.StatusCode)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %q", gotMethod)
	}
	if gotContentType != formContentType {
		t.Fatalf("expected form content type, got %q", gotContentType)
	}
	if gotRequestID != "req-1" {
		t.Fatalf("expected request id header, got %q", gotRequestID)
	}
	if gotUser != "AC123" || gotPass != "token" {
		t.Fatalf("expected basic auth AC123/token, got %q/%q", gotUser, gotPass)
	}
	if gotQuery.Get("Order") != "asc" {
		t.Fatalf("expected Order query, got %q", gotQuery.Encode())
	}
	want := url.Values{"UniqueName": {"doc-1"}, "Data": {`{"a":1}`}, "Ttl": {"60"}}
	if diff := cmp.Diff(want, gotForm); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestRESTAdapter_ResponseLimitReturnsRichError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("12345"))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	adapter.MaxResponseBodyBytes = 4

	_, err := adapter.Do(context.Background(), core.TransportRequest{Method: http.MethodGet, URL: server.URL})
	if err == nil {
		t.Fatalf("expected response body limit error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %q", rich.Category)
	}
	if rich.TextCode != core.ServiceErrorExternalFailure {
		t.Fatalf("expected %q text code, got %q", core.ServiceErrorExternalFailure, rich.TextCode)
	}
	if rich.Code != http.StatusBadGateway {
		t.Fatalf("expected %d code, got %d", http.StatusBadGateway, rich.Code)
	}
}

func TestRESTAdapter_NilClientReturnsRichError(t *testing.T) {
	adapter := &RESTAdapter{}
	_, err := adapter.Do(context.Background(), core.TransportRequest{URL: "https://sync.example.test"})
	if err == nil {
		t.Fatalf("expected nil client error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.TextCode != core.ServiceErrorInternal {
		t.Fatalf("expected %q text code, got %q", core.ServiceErrorInternal, rich.TextCode)
	}
}

func TestRESTAdapter_SignerFailureStopsRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	adapter.Signer = NewBasicAuthSigner("", "")

	_, err := adapter.Do(context.Background(), core.TransportRequest{Method: http.MethodGet, URL: server.URL})
	if err == nil {
		t.Fatalf("expected signer error")
	}
	if called {
		t.Fatalf("expected request not to reach the server")
	}
	if !goerrors.HasCategory(err, goerrors.CategoryAuth) {
		t.Fatalf("expected auth category, got %v", err)
	}
}

func TestFactory_BindsSignerToAdapter(t *testing.T) {
	factory := Factory(http.DefaultClient)
	signer := NewBasicAuthSigner("AC1", "secret")
	adapter := factory(core.DefaultConfig(), signer)

	rest, ok := adapter.(*RESTAdapter)
	if !ok {
		t.Fatalf("expected *RESTAdapter, got %T", adapter)
	}
	if rest.Kind() != KindREST {
		t.Fatalf("expected rest kind, got %q", rest.Kind())
	}
	if rest.Signer != signer {
		t.Fatalf("expected factory signer to be bound")
	}
}

func TestFactory_DefaultClientUsesConfiguredTimeout(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Transport.RequestTimeout = 5 * time.Second
	adapter := Factory(nil)(cfg, nil).(*RESTAdapter)
	client, ok := adapter.Client.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", adapter.Client)
	}
	if client.Timeout != cfg.Transport.RequestTimeout {
		t.Fatalf("expected timeout %s, got %s", cfg.Transport.RequestTimeout, client.Timeout)
	}
}
