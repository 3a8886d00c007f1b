package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-twilio-sync/core"
)

type DocumentMutator interface {
	CreateDocument(ctx context.Context, in core.ResourceInput) (core.Document, error)
	UpdateDocument(ctx context.Context, in core.ResourceInput) (core.Document, error)
	UpsertDocument(ctx context.Context, in core.ResourceInput) (core.Document, error)
	DeleteDocument(ctx context.Context, id string) (core.Document, error)
}

type ListMutator interface {
	CreateList(ctx context.Context, in core.ResourceInput) (core.List, error)
	UpdateList(ctx context.Context, in core.ResourceInput) (core.List, error)
	UpsertList(ctx context.Context, in core.ResourceInput) (core.List, error)
	DeleteList(ctx context.Context, id string) (core.List, error)
}

type ListItemMutator interface {
	CreateListItem(ctx context.Context, in core.ListItemInput) (core.ListItem, error)
	UpdateListItem(ctx context.Context, in core.ListItemInput) (core.ListItem, error)
	UpsertListItem(ctx context.Context, in core.ListItemInput) (core.ListItem, error)
	DeleteListItem(ctx context.Context, listID string, index int) (core.ListItem, error)
}

type MutatingService interface {
	DocumentMutator
	ListMutator
	ListItemMutator
}

type CreateDocumentCommand struct {
	service DocumentMutator
}

func NewCreateDocumentCommand(service DocumentMutator) *CreateDocumentCommand {
	return &CreateDocumentCommand{service: service}
}

func (c *CreateDocumentCommand) Execute(ctx context.Context, msg CreateDocumentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: document service is required")
	}
	out, err := c.service.CreateDocument(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateDocumentCommand struct {
	service DocumentMutator
}

func NewUpdateDocumentCommand(service DocumentMutator) *UpdateDocumentCommand {
	return &UpdateDocumentCommand{service: service}
}

func (c *UpdateDocumentCommand) Execute(ctx context.Context, msg UpdateDocumentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: document service is required")
	}
	out, err := c.service.UpdateDocument(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpsertDocumentCommand struct {
	service DocumentMutator
}

func NewUpsertDocumentCommand(service DocumentMutator) *UpsertDocumentCommand {
	return &UpsertDocumentCommand{service: service}
}

func (c *UpsertDocumentCommand) Execute(ctx context.Context, msg UpsertDocumentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: document service is required")
	}
	out, err := c.service.UpsertDocument(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteDocumentCommand struct {
	service DocumentMutator
}

func NewDeleteDocumentCommand(service DocumentMutator) *DeleteDocumentCommand {
	return &DeleteDocumentCommand{service: service}
}

func (c *DeleteDocumentCommand) Execute(ctx context.Context, msg DeleteDocumentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: document service is required")
	}
	out, err := c.service.DeleteDocument(ctx, msg.ID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateListCommand struct {
	service ListMutator
}

func NewCreateListCommand(service ListMutator) *CreateListCommand {
	return &CreateListCommand{service: service}
}

func (c *CreateListCommand) Execute(ctx context.Context, msg CreateListMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: list service is required")
	}
	out, err := c.service.CreateList(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateListCommand struct {
	service ListMutator
}

func NewUpdateListCommand(service ListMutator) *UpdateListCommand {
	return &UpdateListCommand{service: service}
}

func (c *UpdateListCommand) Execute(ctx context.Context, msg UpdateListMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: list service is required")
	}
	out, err := c.service.UpdateList(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpsertListCommand struct {
	service ListMutator
}

func NewUpsertListCommand(service ListMutator) *UpsertListCommand {
	return &UpsertListCommand{service: service}
}

func (c *UpsertListCommand) Execute(ctx context.Context, msg UpsertListMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: list service is required")
	}
	out, err := c.service.UpsertList(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteListCommand struct {
	service ListMutator
}

func NewDeleteListCommand(service ListMutator) *DeleteListCommand {
	return &DeleteListCommand{service: service}
}

func (c *DeleteListCommand) Execute(ctx context.Context, msg DeleteListMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: list service is required")
	}
	out, err := c.service.DeleteList(ctx, msg.ID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateListItemCommand struct {
	service ListItemMutator
}

func NewCreateListItemCommand(service ListItemMutator) *CreateListItemCommand {
	return &CreateListItemCommand{service: service}
}

func (c *CreateListItemCommand) Execute(ctx context.Context, msg CreateListItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: list item service is required")
	}
	out, err := c.service.CreateListItem(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateListItemCommand struct {
	service ListItemMutator
}

func NewUpdateListItemCommand(service ListItemMutator) *UpdateListItemCommand {
	return &UpdateListItemCommand{service: service}
}

func (c *UpdateListItemCommand) Execute(ctx context.Context, msg UpdateListItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: list item service is required")
	}
	out, err := c.service.UpdateListItem(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpsertListItemCommand struct {
	service ListItemMutator
}

func NewUpsertListItemCommand(service ListItemMutator) *UpsertListItemCommand {
	return &UpsertListItemCommand{service: service}
}

func (c *UpsertListItemCommand) Execute(ctx context.Context, msg UpsertListItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: list item service is required")
	}
	out, err := c.service.UpsertListItem(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteListItemCommand struct {
	service ListItemMutator
}

func NewDeleteListItemCommand(service ListItemMutator) *DeleteListItemCommand {
	return &DeleteListItemCommand{service: service}
}

func (c *DeleteListItemCommand) Execute(ctx context.Context, msg DeleteListItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: list item service is required")
	}
	out, err := c.service.DeleteListItem(ctx, msg.ListID, msg.Index)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
