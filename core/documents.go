package core

import (
	"context"
	"strings"
)

func (s *Service) RetrieveDocument(ctx context.Context, id string) (document Document, err error) {
	startedAt := s.now()
	id = strings.TrimSpace(id)
	fields := map[string]any{"resource": ResourceDocument, "resource_id": id}
	defer func() { s.observeOperation(ctx, startedAt, "document.retrieve", err, fields) }()

	if err = validateResourceID(id); err != nil {
		return Document{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return Document{}, s.mapError(err)
	}
	document, err = retrieveResource[Document](ctx, s, handle, documentsCollection, id, fields)
	if err != nil {
		return Document{}, s.mapError(err)
	}
	return document, nil
}

func (s *Service) CreateDocument(ctx context.Context, in ResourceInput) (document Document, err error) {
	startedAt := s.now()
	in.ID = strings.TrimSpace(in.ID)
	fields := map[string]any{"resource": ResourceDocument, "resource_id": in.ID}
	defer func() { s.observeOperation(ctx, startedAt, "document.create", err, fields) }()

	if err = validateResourceID(in.ID); err != nil {
		return Document{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return Document{}, s.mapError(err)
	}
	document, err = createResource[Document](ctx, s, handle, documentsCollection, in, fields)
	if err != nil {
		return Document{}, s.mapError(err)
	}
	return document, nil
}

func (s *Service) UpdateDocument(ctx context.Context, in ResourceInput) (document Document, err error) {
	startedAt := s.now()
	in.ID = strings.TrimSpace(in.ID)
	fields := map[string]any{"resource": ResourceDocument, "resource_id": in.ID}
	defer func() { s.observeOperation(ctx, startedAt, "document.update", err, fields) }()

	if err = validateResourceID(in.ID); err != nil {
		return Document{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return Document{}, s.mapError(err)
	}
	document, err = updateResource[Document](ctx, s, handle, documentsCollection, in, fields)
	if err != nil {
		return Document{}, s.mapError(err)
	}
	return document, nil
}

// DeleteDocument removes the document and returns its identity. Sync answers
// deletes with an empty body.
func (s *Service) DeleteDocument(ctx context.Context, id string) (document Document, err error) {
	startedAt := s.now()
	id = strings.TrimSpace(id)
	fields := map[string]any{"resource": ResourceDocument, "resource_id": id}
	defer func() { s.observeOperation(ctx, startedAt, "document.delete", err, fields) }()

	if err = validateResourceID(id); err != nil {
		return Document{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return Document{}, s.mapError(err)
	}
	if err = deleteResource(ctx, s, handle, documentsCollection, id, fields); err != nil {
		return Document{}, s.mapError(err)
	}
	return Document{ResourceMeta: ResourceMeta{UniqueName: id}}, nil
}

// UpsertDocument updates the document when it exists and creates it
// otherwise. Concurrent writers can still race between probe and write.
func (s *Service) UpsertDocument(ctx context.Context, in ResourceInput) (document Document, err error) {
	startedAt := s.now()
	in.ID = strings.TrimSpace(in.ID)
	fields := map[string]any{"resource": ResourceDocument, "resource_id": in.ID}
	defer func() { s.observeOperation(ctx, startedAt, "document.upsert", err, fields) }()

	if err = validateResourceID(in.ID); err != nil {
		return Document{}, s.mapError(err)
	}
	handle, err := s.ServiceHandle(ctx)
	if err != nil {
		return Document{}, s.mapError(err)
	}
	document, err = upsertResource[Document](ctx, s, handle, documentsCollection, in, fields)
	if err != nil {
		return Document{}, s.mapError(err)
	}
	return document, nil
}
