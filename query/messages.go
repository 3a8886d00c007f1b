package query

import (
	"strings"

	"github.com/goliatone/go-twilio-sync/core"
)

const (
	TypeRetrieveDocument = "twiliosync.query.document.retrieve"
	TypeRetrieveList     = "twiliosync.query.list.retrieve"
	TypeRetrieveListItem = "twiliosync.query.list_item.retrieve"
	TypeListItems        = "twiliosync.query.list_item.list"
	TypeIssueToken       = "twiliosync.query.token.issue"
)

type RetrieveDocumentMessage struct {
	ID string
}

func (RetrieveDocumentMessage) Type() string { return TypeRetrieveDocument }

func (m RetrieveDocumentMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return queryValidationError("id", "is required")
	}
	return nil
}

type RetrieveListMessage struct {
	ID string
}

func (RetrieveListMessage) Type() string { return TypeRetrieveList }

func (m RetrieveListMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return queryValidationError("id", "is required")
	}
	return nil
}

type RetrieveListItemMessage struct {
	ListID string
	Index  int
}

func (RetrieveListItemMessage) Type() string { return TypeRetrieveListItem }

func (m RetrieveListItemMessage) Validate() error {
	if strings.TrimSpace(m.ListID) == "" {
		return queryValidationError("list_id", "is required")
	}
	if m.Index < 0 {
		return queryValidationError("index", "must be non-negative")
	}
	return nil
}

type ListItemsMessage struct {
	Request core.ListItemsRequest
}

func (ListItemsMessage) Type() string { return TypeListItems }

func (m ListItemsMessage) Validate() error {
	if strings.TrimSpace(m.Request.ListID) == "" {
		return queryValidationError("list_id", "is required")
	}
	if m.Request.PageSize < 0 {
		return queryValidationError("page_size", "must be >= 0")
	}
	return nil
}

// IssueTokenMessage asks for a Sync access token bound to Identity.
type IssueTokenMessage struct {
	Identity string
}

func (IssueTokenMessage) Type() string { return TypeIssueToken }

func (m IssueTokenMessage) Validate() error {
	if strings.TrimSpace(m.Identity) == "" {
		return queryValidationError("identity", "is required")
	}
	return nil
}
