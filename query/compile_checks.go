package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-twilio-sync/core"
)

var (
	_ gocmd.Querier[RetrieveDocumentMessage, core.Document] = (*RetrieveDocumentQuery)(nil)
	_ gocmd.Querier[RetrieveListMessage, core.List]         = (*RetrieveListQuery)(nil)
	_ gocmd.Querier[RetrieveListItemMessage, core.ListItem] = (*RetrieveListItemQuery)(nil)
	_ gocmd.Querier[ListItemsMessage, []core.ListItem]      = (*ListItemsQuery)(nil)
	_ gocmd.Querier[IssueTokenMessage, core.AccessToken]    = (*IssueTokenQuery)(nil)

	_ ReadService = (*core.Service)(nil)
)
