package core

import (
	"context"
	"net/http"
	"strings"
)

// collection addresses a top-level Sync resource type.
type collection struct {
	path     string
	resource string
}

var (
	documentsCollection = collection{path: "Documents", resource: ResourceDocument}
	listsCollection     = collection{path: "Lists", resource: ResourceList}
)

func validateResourceID(id string) error {
	if strings.TrimSpace(id) == "" {
		return validationError("id", "is required")
	}
	return nil
}

func retrieveResource[T any](
	ctx context.Context,
	s *Service,
	handle *ServiceHandle,
	c collection,
	id string,
	fields map[string]any,
) (T, error) {
	res, err := s.call(ctx, handle, remoteCall{
		operation:  "retrieve",
		resource:   c.resource,
		resourceID: id,
		method:     http.MethodGet,
		path:       []string{c.path, id},
	}, fields)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeResponse[T](res, "retrieve")
}

func createResource[T any](
	ctx context.Context,
	s *Service,
	handle *ServiceHandle,
	c collection,
	in ResourceInput,
	fields map[string]any,
) (T, error) {
	var zero T
	form, err := buildResourcePayload(in).form(true)
	if err != nil {
		return zero, err
	}
	res, err := s.call(ctx, handle, remoteCall{
		operation:  "create",
		resource:   c.resource,
		resourceID: in.ID,
		method:     http.MethodPost,
		path:       []string{c.path},
		form:       form,
	}, fields)
	if err != nil {
		return zero, err
	}
	return decodeResponse[T](res, "create")
}

func updateResource[T any](
	ctx context.Context,
	s *Service,
	handle *ServiceHandle,
	c collection,
	in ResourceInput,
	fields map[string]any,
) (T, error) {
	var zero T
	payload := buildResourcePayload(in)
	form, err := payload.form(false)
	if err != nil {
		return zero, err
	}
	res, err := s.call(ctx, handle, remoteCall{
		operation:  "update",
		resource:   c.resource,
		resourceID: payload.UniqueName,
		method:     http.MethodPost,
		path:       []string{c.path, payload.UniqueName},
		form:       form,
	}, fields)
	if err != nil {
		return zero, err
	}
	return decodeResponse[T](res, "update")
}

func deleteResource(
	ctx context.Context,
	s *Service,
	handle *ServiceHandle,
	c collection,
	id string,
	fields map[string]any,
) error {
	_, err := s.call(ctx, handle, remoteCall{
		operation:  "delete",
		resource:   c.resource,
		resourceID: id,
		method:     http.MethodDelete,
		path:       []string{c.path, id},
	}, fields)
	return err
}

// upsertResource probes for the resource and updates it when the probe
// succeeds. Any probe failure is read as absence and leads to a create. The
// probe and the write are not atomic.
func upsertResource[T any](
	ctx context.Context,
	s *Service,
	handle *ServiceHandle,
	c collection,
	in ResourceInput,
	fields map[string]any,
) (T, error) {
	if _, probeErr := retrieveResource[T](ctx, s, handle, c, in.ID, nil); probeErr == nil {
		fields["upsert_action"] = "update"
		return updateResource[T](ctx, s, handle, c, in, fields)
	} else if !IsNotFound(probeErr) {
		s.logDebug(ctx, "upsert probe failed, creating", map[string]any{
			"resource":    c.resource,
			"resource_id": in.ID,
			"error":       probeErr.Error(),
		})
	}
	fields["upsert_action"] = "create"
	return createResource[T](ctx, s, handle, c, in, fields)
}
