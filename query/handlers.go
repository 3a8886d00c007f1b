package query

import (
	"context"

	"github.com/goliatone/go-twilio-sync/core"
)

type DocumentReader interface {
	RetrieveDocument(ctx context.Context, id string) (core.Document, error)
}

type ListReader interface {
	RetrieveList(ctx context.Context, id string) (core.List, error)
}

type ListItemReader interface {
	RetrieveListItem(ctx context.Context, listID string, index int) (core.ListItem, error)
	ListItems(ctx context.Context, req core.ListItemsRequest) ([]core.ListItem, error)
}

type ReadService interface {
	DocumentReader
	ListReader
	ListItemReader
	core.TokenIssuer
}

type RetrieveDocumentQuery struct {
	reader DocumentReader
}

func NewRetrieveDocumentQuery(reader DocumentReader) *RetrieveDocumentQuery {
	return &RetrieveDocumentQuery{reader: reader}
}

func (q *RetrieveDocumentQuery) Query(ctx context.Context, msg RetrieveDocumentMessage) (core.Document, error) {
	if q == nil || q.reader == nil {
		return core.Document{}, queryDependencyError("query: document reader is required")
	}
	return q.reader.RetrieveDocument(ctx, msg.ID)
}

type RetrieveListQuery struct {
	reader ListReader
}

func NewRetrieveListQuery(reader ListReader) *RetrieveListQuery {
	return &RetrieveListQuery{reader: reader}
}

func (q *RetrieveListQuery) Query(ctx context.Context, msg RetrieveListMessage) (core.List, error) {
	if q == nil || q.reader == nil {
		return core.List{}, queryDependencyError("query: list reader is required")
	}
	return q.reader.RetrieveList(ctx, msg.ID)
}

type RetrieveListItemQuery struct {
	reader ListItemReader
}

func NewRetrieveListItemQuery(reader ListItemReader) *RetrieveListItemQuery {
	return &RetrieveListItemQuery{reader: reader}
}

func (q *RetrieveListItemQuery) Query(ctx context.Context, msg RetrieveListItemMessage) (core.ListItem, error) {
	if q == nil || q.reader == nil {
		return core.ListItem{}, queryDependencyError("query: list item reader is required")
	}
	return q.reader.RetrieveListItem(ctx, msg.ListID, msg.Index)
}

type ListItemsQuery struct {
	reader ListItemReader
}

func NewListItemsQuery(reader ListItemReader) *ListItemsQuery {
	return &ListItemsQuery{reader: reader}
}

func (q *ListItemsQuery) Query(ctx context.Context, msg ListItemsMessage) ([]core.ListItem, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: list item reader is required")
	}
	return q.reader.ListItems(ctx, msg.Request)
}

type IssueTokenQuery struct {
	issuer core.TokenIssuer
}

func NewIssueTokenQuery(issuer core.TokenIssuer) *IssueTokenQuery {
	return &IssueTokenQuery{issuer: issuer}
}

func (q *IssueTokenQuery) Query(ctx context.Context, msg IssueTokenMessage) (core.AccessToken, error) {
	if q == nil || q.issuer == nil {
		return core.AccessToken{}, queryDependencyError("query: token issuer is required")
	}
	return q.issuer.IssueToken(ctx, msg.Identity)
}
