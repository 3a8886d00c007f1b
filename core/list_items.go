package core

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

const listItemsPath = "Items"

// listItemsPage is one page of the Items collection. Only the first page is
// read; following meta.next_page_url is left to the caller.
type listItemsPage struct {
	Items []ListItem     `json:"items"`
	Meta  map[string]any `json:"meta,omitempty"`
}

func validateListID(listID string) error {
	if strings.TrimSpace(listID) == "" {
		return validationError("list_id", "is required")
	}
	return nil
}

func validateIndex(index *int) error {
	if index == nil {
		return validationError("index", "is required")
	}
	if *index < 0 {
		return validationError("index", "must be a non-negative integer")
	}
	return nil
}

func itemFields(listID string, index *int) map[string]any {
	fields := map[string]any{"resource": ResourceListItem, "list_id": listID}
	if index != nil {
		fields["index"] = *index
	}
	return fields
}

func (s *Service) RetrieveListItem(ctx context.Context, listID string, index int) (item ListItem, err error) {
	startedAt := s.now()
	listID = strings.TrimSpace(listID)
	fields := itemFields(listID, &index)
	defer func() { s.observeOperation(ctx, startedAt, "list_item.retrieve", err, fields) }()

	if err = validateListID(listID); err != nil {
		return ListItem{}, s.mapError(err)
	}
	if err = validateIndex(&index); err != nil {
		return ListItem{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return ListItem{}, s.mapError(err)
	}
	item, err = s.fetchListItem(ctx, handle, listID, index, fields)
	if err != nil {
		return ListItem{}, s.mapError(err)
	}
	return item, nil
}

func (s *Service) CreateListItem(ctx context.Context, in ListItemInput) (item ListItem, err error) {
	startedAt := s.now()
	in.ListID = strings.TrimSpace(in.ListID)
	fields := itemFields(in.ListID, nil)
	defer func() { s.observeOperation(ctx, startedAt, "list_item.create", err, fields) }()

	if err = validateListID(in.ListID); err != nil {
		return ListItem{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return ListItem{}, s.mapError(err)
	}
	item, err = s.createListItem(ctx, handle, in, fields)
	if err != nil {
		return ListItem{}, s.mapError(err)
	}
	return item, nil
}

func (s *Service) UpdateListItem(ctx context.Context, in ListItemInput) (item ListItem, err error) {
	startedAt := s.now()
	in.ListID = strings.TrimSpace(in.ListID)
	fields := itemFields(in.ListID, in.Index)
	defer func() { s.observeOperation(ctx, startedAt, "list_item.update", err, fields) }()

	if err = validateListID(in.ListID); err != nil {
		return ListItem{}, s.mapError(err)
	}
	if err = validateIndex(in.Index); err != nil {
		return ListItem{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return ListItem{}, s.mapError(err)
	}
	item, err = s.updateListItem(ctx, handle, in, fields)
	if err != nil {
		return ListItem{}, s.mapError(err)
	}
	return item, nil
}

// DeleteListItem removes the item at index and returns its address.
func (s *Service) DeleteListItem(ctx context.Context, listID string, index int) (item ListItem, err error) {
	startedAt := s.now()
	listID = strings.TrimSpace(listID)
	fields := itemFields(listID, &index)
	defer func() { s.observeOperation(ctx, startedAt, "list_item.delete", err, fields) }()

	if err = validateListID(listID); err != nil {
		return ListItem{}, s.mapError(err)
	}
	if err = validateIndex(&index); err != nil {
		return ListItem{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return ListItem{}, s.mapError(err)
	}
	_, err = s.call(ctx, handle, remoteCall{
		operation:  "delete",
		resource:   ResourceListItem,
		resourceID: itemResourceID(listID, index),
		method:     http.MethodDelete,
		path:       []string{listsCollection.path, listID, listItemsPath, strconv.Itoa(index)},
	}, fields)
	if err != nil {
		return ListItem{}, s.mapError(err)
	}
	return ListItem{Index: index, ListSID: listID}, nil
}

// UpsertListItem updates the item when Index is set and the probe finds it.
// Without an index, or when the probe fails, a new item is appended to the
// list and Sync assigns its index.
func (s *Service) UpsertListItem(ctx context.Context, in ListItemInput) (item ListItem, err error) {
	startedAt := s.now()
	in.ListID = strings.TrimSpace(in.ListID)
	fields := itemFields(in.ListID, in.Index)
	defer func() { s.observeOperation(ctx, startedAt, "list_item.upsert", err, fields) }()

	if err = validateListID(in.ListID); err != nil {
		return ListItem{}, s.mapError(err)
	}
	if in.Index != nil && *in.Index < 0 {
		in.Index = nil
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return ListItem{}, s.mapError(err)
	}

	if in.Index != nil {
		if _, probeErr := s.fetchListItem(ctx, handle, in.ListID, *in.Index, nil); probeErr == nil {
			fields["upsert_action"] = "update"
			item, err = s.updateListItem(ctx, handle, in, fields)
			if err != nil {
				return ListItem{}, s.mapError(err)
			}
			return item, nil
		}
	}
	fields["upsert_action"] = "create"
	item, err = s.createListItem(ctx, handle, in, fields)
	if err != nil {
		return ListItem{}, s.mapError(err)
	}
	return item, nil
}

// ListItems returns a single page of items from the list.
func (s *Service) ListItems(ctx context.Context, req ListItemsRequest) (items []ListItem, err error) {
	startedAt := s.now()
	req.ListID = strings.TrimSpace(req.ListID)
	fields := itemFields(req.ListID, nil)
	defer func() { s.observeOperation(ctx, startedAt, "list_item.list", err, fields) }()

	if err = validateListID(req.ListID); err != nil {
		return nil, s.mapError(err)
	}
	query := req.query(s.config.Lists.DefaultPageSize)
	fields["page_size"] = query["PageSize"]
	fields["order"] = query["Order"]

	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	res, err := s.call(ctx, handle, remoteCall{
		operation:  "list",
		resource:   ResourceListItem,
		resourceID: req.ListID,
		method:     http.MethodGet,
		path:       []string{listsCollection.path, req.ListID, listItemsPath},
		query:      query,
	}, fields)
	if err != nil {
		return nil, s.mapError(err)
	}
	page, err := decodeResponse[listItemsPage](res, "list")
	if err != nil {
		return nil, s.mapError(err)
	}
	items = page.Items
	if items == nil {
		items = []ListItem{}
	}
	fields["count"] = len(items)
	return items, nil
}

func (s *Service) fetchListItem(ctx context.Context, handle *ServiceHandle, listID string, index int, fields map[string]any) (ListItem, error) {
	res, err := s.call(ctx, handle, remoteCall{
		operation:  "retrieve",
		resource:   ResourceListItem,
		resourceID: itemResourceID(listID, index),
		method:     http.MethodGet,
		path:       []string{listsCollection.path, listID, listItemsPath, strconv.Itoa(index)},
	}, fields)
	if err != nil {
		return ListItem{}, err
	}
	return decodeResponse[ListItem](res, "retrieve")
}

func (s *Service) createListItem(ctx context.Context, handle *ServiceHandle, in ListItemInput, fields map[string]any) (ListItem, error) {
	form, err := buildItemPayload(in).form(false)
	if err != nil {
		return ListItem{}, err
	}
	res, err := s.call(ctx, handle, remoteCall{
		operation:  "create",
		resource:   ResourceListItem,
		resourceID: in.ListID,
		method:     http.MethodPost,
		path:       []string{listsCollection.path, in.ListID, listItemsPath},
		form:       form,
	}, fields)
	if err != nil {
		return ListItem{}, err
	}
	item, err := decodeResponse[ListItem](res, "create")
	if err != nil {
		return ListItem{}, err
	}
	if fields != nil {
		fields["index"] = item.Index
	}
	return item, nil
}

func (s *Service) updateListItem(ctx context.Context, handle *ServiceHandle, in ListItemInput, fields map[string]any) (ListItem, error) {
	form, err := buildItemPayload(in).form(false)
	if err != nil {
		return ListItem{}, err
	}
	index := *in.Index
	res, err := s.call(ctx, handle, remoteCall{
		operation:  "update",
		resource:   ResourceListItem,
		resourceID: itemResourceID(in.ListID, index),
		method:     http.MethodPost,
		path:       []string{listsCollection.path, in.ListID, listItemsPath, strconv.Itoa(index)},
		form:       form,
	}, fields)
	if err != nil {
		return ListItem{}, err
	}
	return decodeResponse[ListItem](res, "update")
}

func itemResourceID(listID string, index int) string {
	return listID + "/" + strconv.Itoa(index)
}
