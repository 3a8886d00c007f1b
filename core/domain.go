package core

import (
	"strings"
	"time"
)

const (
	ResourceDocument = "document"
	ResourceList     = "list"
	ResourceListItem = "list_item"
	ResourceToken    = "token"
)

const (
	OrderAscending  = "asc"
	OrderDescending = "desc"
)

// ResourceMeta holds the attributes Sync returns for documents and lists.
type ResourceMeta struct {
	SID         string     `json:"sid"`
	UniqueName  string     `json:"unique_name"`
	AccountSID  string     `json:"account_sid,omitempty"`
	ServiceSID  string     `json:"service_sid,omitempty"`
	URL         string     `json:"url,omitempty"`
	Revision    string     `json:"revision,omitempty"`
	DateExpires *time.Time `json:"date_expires,omitempty"`
	DateCreated *time.Time `json:"date_created,omitempty"`
	DateUpdated *time.Time `json:"date_updated,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
}

type Document struct {
	ResourceMeta
	Data map[string]any `json:"data,omitempty"`
}

type List struct {
	ResourceMeta
	Data map[string]any `json:"data,omitempty"`
}

type ListItem struct {
	Index       int            `json:"index"`
	ListSID     string         `json:"list_sid,omitempty"`
	AccountSID  string         `json:"account_sid,omitempty"`
	ServiceSID  string         `json:"service_sid,omitempty"`
	URL         string         `json:"url,omitempty"`
	Revision    string         `json:"revision,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	DateExpires *time.Time     `json:"date_expires,omitempty"`
	DateCreated *time.Time     `json:"date_created,omitempty"`
	DateUpdated *time.Time     `json:"date_updated,omitempty"`
	CreatedBy   string         `json:"created_by,omitempty"`
}

type AccessToken struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

// ResourceInput describes a document or list write. ID becomes the unique
// name; TTL is sent only when positive.
type ResourceInput struct {
	ID   string
	Data map[string]any
	TTL  int
}

// ListItemInput describes a list item write. Index is assigned by the
// remote service on create and required for update.
type ListItemInput struct {
	ListID string
	Index  *int
	Data   map[string]any
	TTL    int
}

type ListItemsRequest struct {
	ListID    string
	PageSize  int
	FromIndex *int
	Order     string
}

// IndexRef returns a pointer to index, for populating ListItemInput.Index.
func IndexRef(index int) *int {
	return &index
}

// ResourceInputFromRecord reads id and ttl from a raw JSON record. The whole
// record becomes the stored data.
func ResourceInputFromRecord(record map[string]any) ResourceInput {
	in := ResourceInput{
		ID:   recordString(record, "id"),
		Data: copyAnyMap(record),
	}
	if ttl, ok := positiveInteger(record["ttl"]); ok {
		in.TTL = ttl
	}
	return in
}

// ListItemInputFromRecord reads listId, index and ttl from a raw JSON record.
// A non-integer or negative index is left unset.
func ListItemInputFromRecord(record map[string]any) ListItemInput {
	in := ListItemInput{
		ListID: recordString(record, "listId"),
		Data:   copyAnyMap(record),
	}
	if index, ok := nonNegativeInteger(record["index"]); ok {
		in.Index = IndexRef(index)
	}
	if ttl, ok := positiveInteger(record["ttl"]); ok {
		in.TTL = ttl
	}
	return in
}

func recordString(record map[string]any, key string) string {
	if record == nil {
		return ""
	}
	value, ok := record[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func copyAnyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
