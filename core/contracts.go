package core

import (
	"context"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// CredentialResolver supplies the named secrets the service needs. Missing
// or empty secrets must fail; implementations never substitute defaults.
type CredentialResolver interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

type CredentialResolverFunc func(ctx context.Context, name string) (string, error)

func (f CredentialResolverFunc) GetSecret(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// TransportRequest is one Sync REST call. Form, when set, is sent as an
// url-encoded body and takes precedence over Body.
type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Query                map[string]string
	Form                 map[string]string
	Body                 []byte
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
	RequestID            string
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// Signer decorates an outgoing request with account credentials.
type Signer interface {
	Sign(ctx context.Context, req *http.Request) error
}

// SignerFactory builds the signer bound to the account credentials resolved
// for a service handle.
type SignerFactory func(accountSID string, authToken string) Signer

// TransportFactory builds the adapter used by a service handle.
type TransportFactory func(cfg Config, signer Signer) TransportAdapter

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// DocumentService is the document surface of the Sync client.
type DocumentService interface {
	RetrieveDocument(ctx context.Context, id string) (Document, error)
	CreateDocument(ctx context.Context, in ResourceInput) (Document, error)
	UpdateDocument(ctx context.Context, in ResourceInput) (Document, error)
	UpsertDocument(ctx context.Context, in ResourceInput) (Document, error)
	DeleteDocument(ctx context.Context, id string) (Document, error)
}

// ListService is the list surface of the Sync client.
type ListService interface {
	RetrieveList(ctx context.Context, id string) (List, error)
	CreateList(ctx context.Context, in ResourceInput) (List, error)
	UpdateList(ctx context.Context, in ResourceInput) (List, error)
	UpsertList(ctx context.Context, in ResourceInput) (List, error)
	DeleteList(ctx context.Context, id string) (List, error)
}

// ListItemService is the list item surface of the Sync client.
type ListItemService interface {
	RetrieveListItem(ctx context.Context, listID string, index int) (ListItem, error)
	CreateListItem(ctx context.Context, in ListItemInput) (ListItem, error)
	UpdateListItem(ctx context.Context, in ListItemInput) (ListItem, error)
	UpsertListItem(ctx context.Context, in ListItemInput) (ListItem, error)
	DeleteListItem(ctx context.Context, listID string, index int) (ListItem, error)
	ListItems(ctx context.Context, req ListItemsRequest) ([]ListItem, error)
}

type TokenIssuer interface {
	IssueToken(ctx context.Context, identity string) (AccessToken, error)
}
