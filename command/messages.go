package command

import (
	"strings"

	"github.com/goliatone/go-twilio-sync/core"
)

const (
	TypeCreateDocument = "twiliosync.command.document.create"
	TypeUpdateDocument = "twiliosync.command.document.update"
	TypeUpsertDocument = "twiliosync.command.document.upsert"
	TypeDeleteDocument = "twiliosync.command.document.delete"
	TypeCreateList     = "twiliosync.command.list.create"
	TypeUpdateList     = "twiliosync.command.list.update"
	TypeUpsertList     = "twiliosync.command.list.upsert"
	TypeDeleteList     = "twiliosync.command.list.delete"
	TypeCreateListItem = "twiliosync.command.list_item.create"
	TypeUpdateListItem = "twiliosync.command.list_item.update"
	TypeUpsertListItem = "twiliosync.command.list_item.upsert"
	TypeDeleteListItem = "twiliosync.command.list_item.delete"
)

type CreateDocumentMessage struct {
	Input core.ResourceInput
}

func (CreateDocumentMessage) Type() string { return TypeCreateDocument }

func (m CreateDocumentMessage) Validate() error {
	return validateResourceID(m.Input.ID)
}

type UpdateDocumentMessage struct {
	Input core.ResourceInput
}

func (UpdateDocumentMessage) Type() string { return TypeUpdateDocument }

func (m UpdateDocumentMessage) Validate() error {
	return validateResourceID(m.Input.ID)
}

// UpsertDocumentMessage is usually built from a raw record through
// core.ResourceInputFromRecord.
type UpsertDocumentMessage struct {
	Input core.ResourceInput
}

func (UpsertDocumentMessage) Type() string { return TypeUpsertDocument }

func (m UpsertDocumentMessage) Validate() error {
	return validateResourceID(m.Input.ID)
}

type DeleteDocumentMessage struct {
	ID string
}

func (DeleteDocumentMessage) Type() string { return TypeDeleteDocument }

func (m DeleteDocumentMessage) Validate() error {
	return validateResourceID(m.ID)
}

type CreateListMessage struct {
	Input core.ResourceInput
}

func (CreateListMessage) Type() string { return TypeCreateList }

func (m CreateListMessage) Validate() error {
	return validateResourceID(m.Input.ID)
}

type UpdateListMessage struct {
	Input core.ResourceInput
}

func (UpdateListMessage) Type() string { return TypeUpdateList }

func (m UpdateListMessage) Validate() error {
	return validateResourceID(m.Input.ID)
}

type UpsertListMessage struct {
	Input core.ResourceInput
}

func (UpsertListMessage) Type() string { return TypeUpsertList }

func (m UpsertListMessage) Validate() error {
	return validateResourceID(m.Input.ID)
}

type DeleteListMessage struct {
	ID string
}

func (DeleteListMessage) Type() string { return TypeDeleteList }

func (m DeleteListMessage) Validate() error {
	return validateResourceID(m.ID)
}

type CreateListItemMessage struct {
	Input core.ListItemInput
}

func (CreateListItemMessage) Type() string { return TypeCreateListItem }

func (m CreateListItemMessage) Validate() error {
	return validateListID(m.Input.ListID)
}

type UpdateListItemMessage struct {
	Input core.ListItemInput
}

func (UpdateListItemMessage) Type() string { return TypeUpdateListItem }

func (m UpdateListItemMessage) Validate() error {
	if err := validateListID(m.Input.ListID); err != nil {
		return err
	}
	if m.Input.Index == nil {
		return commandValidationError("index", "is required")
	}
	return validateIndex(*m.Input.Index)
}

// UpsertListItemMessage updates the item at Input.Index when it exists and
// appends a new item otherwise.
type UpsertListItemMessage struct {
	Input core.ListItemInput
}

func (UpsertListItemMessage) Type() string { return TypeUpsertListItem }

func (m UpsertListItemMessage) Validate() error {
	return validateListID(m.Input.ListID)
}

type DeleteListItemMessage struct {
	ListID string
	Index  int
}

func (DeleteListItemMessage) Type() string { return TypeDeleteListItem }

func (m DeleteListItemMessage) Validate() error {
	if err := validateListID(m.ListID); err != nil {
		return err
	}
	return validateIndex(m.Index)
}

func validateResourceID(id string) error {
	if strings.TrimSpace(id) == "" {
		return commandValidationError("id", "is required")
	}
	return nil
}

func validateListID(listID string) error {
	if strings.TrimSpace(listID) == "" {
		return commandValidationError("list_id", "is required")
	}
	return nil
}

func validateIndex(index int) error {
	if index < 0 {
		return commandValidationError("index", "must be non-negative")
	}
	return nil
}
