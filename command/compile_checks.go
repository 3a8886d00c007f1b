package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-twilio-sync/core"
)

var (
	_ gocmd.Commander[CreateDocumentMessage] = (*CreateDocumentCommand)(nil)
	_ gocmd.Commander[UpdateDocumentMessage] = (*UpdateDocumentCommand)(nil)
	_ gocmd.Commander[UpsertDocumentMessage] = (*UpsertDocumentCommand)(nil)
	_ gocmd.Commander[DeleteDocumentMessage] = (*DeleteDocumentCommand)(nil)
	_ gocmd.Commander[CreateListMessage]     = (*CreateListCommand)(nil)
	_ gocmd.Commander[UpdateListMessage]     = (*UpdateListCommand)(nil)
	_ gocmd.Commander[UpsertListMessage]     = (*UpsertListCommand)(nil)
	_ gocmd.Commander[DeleteListMessage]     = (*DeleteListCommand)(nil)
	_ gocmd.Commander[CreateListItemMessage] = (*CreateListItemCommand)(nil)
	_ gocmd.Commander[UpdateListItemMessage] = (*UpdateListItemCommand)(nil)
	_ gocmd.Commander[UpsertListItemMessage] = (*UpsertListItemCommand)(nil)
	_ gocmd.Commander[DeleteListItemMessage] = (*DeleteListItemCommand)(nil)

	_ MutatingService = (*core.Service)(nil)
)
