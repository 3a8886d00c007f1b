package core

import (
	"context"
	"strings"
)

func (s *Service) RetrieveList(ctx context.Context, id string) (list List, err error) {
	startedAt := s.now()
	id = strings.TrimSpace(id)
	fields := map[string]any{"resource": ResourceList, "resource_id": id}
	defer func() { s.observeOperation(ctx, startedAt, "list.retrieve", err, fields) }()

	if err = validateResourceID(id); err != nil {
		return List{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return List{}, s.mapError(err)
	}
	list, err = retrieveResource[List](ctx, s, handle, listsCollection, id, fields)
	if err != nil {
		return List{}, s.mapError(err)
	}
	return list, nil
}

func (s *Service) CreateList(ctx context.Context, in ResourceInput) (list List, err error) {
	startedAt := s.now()
	in.ID = strings.TrimSpace(in.ID)
	fields := map[string]any{"resource": ResourceList, "resource_id": in.ID}
	defer func() { s.observeOperation(ctx, startedAt, "list.create", err, fields) }()

	if err = validateResourceID(in.ID); err != nil {
		return List{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return List{}, s.mapError(err)
	}
	list, err = createResource[List](ctx, s, handle, listsCollection, in, fields)
	if err != nil {
		return List{}, s.mapError(err)
	}
	return withListData(list, in), nil
}

func (s *Service) UpdateList(ctx context.Context, in ResourceInput) (list List, err error) {
	startedAt := s.now()
	in.ID = strings.TrimSpace(in.ID)
	fields := map[string]any{"resource": ResourceList, "resource_id": in.ID}
	defer func() { s.observeOperation(ctx, startedAt, "list.update", err, fields) }()

	if err = validateResourceID(in.ID); err != nil {
		return List{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return List{}, s.mapError(err)
	}
	list, err = updateResource[List](ctx, s, handle, listsCollection, in, fields)
	if err != nil {
		return List{}, s.mapError(err)
	}
	return withListData(list, in), nil
}

func (s *Service) DeleteList(ctx context.Context, id string) (list List, err error) {
	startedAt := s.now()
	id = strings.TrimSpace(id)
	fields := map[string]any{"resource": ResourceList, "resource_id": id}
	defer func() { s.observeOperation(ctx, startedAt, "list.delete", err, fields) }()

	if err = validateResourceID(id); err != nil {
		return List{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return List{}, s.mapError(err)
	}
	if err = deleteResource(ctx, s, handle, listsCollection, id, fields); err != nil {
		return List{}, s.mapError(err)
	}
	return List{ResourceMeta: ResourceMeta{UniqueName: id}}, nil
}

func (s *Service) UpsertList(ctx context.Context, in ResourceInput) (list List, err error) {
	startedAt := s.now()
	in.ID = strings.TrimSpace(in.ID)
	fields := map[string]any{"resource": ResourceList, "resource_id": in.ID}
	defer func() { s.observeOperation(ctx, startedAt, "list.upsert", err, fields) }()

	if err = validateResourceID(in.ID); err != nil {
		return List{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return List{}, s.mapError(err)
	}
	list, err = upsertResource[List](ctx, s, handle, listsCollection, in, fields)
	if err != nil {
		return List{}, s.mapError(err)
	}
	return withListData(list, in), nil
}

// withListData fills Data from the input when the remote echo leaves it out.
func withListData(list List, in ResourceInput) List {
	if list.Data == nil && in.Data != nil {
		list.Data = copyAnyMap(in.Data)
	}
	if list.UniqueName == "" {
		list.UniqueName = in.ID
	}
	return list
}
