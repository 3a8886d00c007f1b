package twiliosync

import (
	"fmt"

	synccommand "github.com/goliatone/go-twilio-sync/command"
	syncquery "github.com/goliatone/go-twilio-sync/query"
)

type CommandQueryService interface {
	synccommand.MutatingService
	syncquery.ReadService
}

type Commands struct {
	CreateDocument *synccommand.CreateDocumentCommand
	UpdateDocument *synccommand.UpdateDocumentCommand
	UpsertDocument *synccommand.UpsertDocumentCommand
	DeleteDocument *synccommand.DeleteDocumentCommand
	CreateList     *synccommand.CreateListCommand
	UpdateList     *synccommand.UpdateListCommand
	UpsertList     *synccommand.UpsertListCommand
	DeleteList     *synccommand.DeleteListCommand
	CreateListItem *synccommand.CreateListItemCommand
	UpdateListItem *synccommand.UpdateListItemCommand
	UpsertListItem *synccommand.UpsertListItemCommand
	DeleteListItem *synccommand.DeleteListItemCommand
}

type Queries struct {
	RetrieveDocument *syncquery.RetrieveDocumentQuery
	RetrieveList     *syncquery.RetrieveListQuery
	RetrieveListItem *syncquery.RetrieveListItemQuery
	ListItems        *syncquery.ListItemsQuery
	IssueToken       *syncquery.IssueTokenQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("twiliosync: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		CreateDocument: synccommand.NewCreateDocumentCommand(service),
		UpdateDocument: synccommand.NewUpdateDocumentCommand(service),
		UpsertDocument: synccommand.NewUpsertDocumentCommand(service),
		DeleteDocument: synccommand.NewDeleteDocumentCommand(service),
		CreateList:     synccommand.NewCreateListCommand(service),
		UpdateList:     synccommand.NewUpdateListCommand(service),
		UpsertList:     synccommand.NewUpsertListCommand(service),
		DeleteList:     synccommand.NewDeleteListCommand(service),
		CreateListItem: synccommand.NewCreateListItemCommand(service),
		UpdateListItem: synccommand.NewUpdateListItemCommand(service),
		UpsertListItem: synccommand.NewUpsertListItemCommand(service),
		DeleteListItem: synccommand.NewDeleteListItemCommand(service),
	}
	facade.queries = Queries{
		RetrieveDocument: syncquery.NewRetrieveDocumentQuery(service),
		RetrieveList:     syncquery.NewRetrieveListQuery(service),
		RetrieveListItem: syncquery.NewRetrieveListItemQuery(service),
		ListItems:        syncquery.NewListItemsQuery(service),
		IssueToken:       syncquery.NewIssueTokenQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
