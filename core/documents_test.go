package core

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const documentBody = `{"sid":"ET1","unique_name":"doc-1","revision":"0","data":{"name":"a"}}`

func TestCreateDocument_SendsUniqueNameDataAndTTL(t *testing.T) {
	transport := newScriptedTransport(transportStep{status: http.StatusCreated, body: documentBody})
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	doc, err := svc.CreateDocument(context.Background(), ResourceInput{
		ID:   " doc-1 ",
		Data: map[string]any{"name": "a"},
		TTL:  60,
	})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	if doc.UniqueName != "doc-1" || doc.SID != "ET1" {
		t.Fatalf("unexpected document %#v", doc)
	}

	requests := transport.recorded()
	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	req := requests[0]
	if req.Method != http.MethodPost {
		t.Fatalf("expected POST, got %q", req.Method)
	}
	if req.URL != DefaultBaseURL+"/Services/"+testServiceSID+"/Documents" {
		t.Fatalf("unexpected url %q", req.URL)
	}
	want := map[string]string{"UniqueName": "doc-1", "Data": `{"name":"a"}`, "Ttl": "60"}
	if diff := cmp.Diff(want, req.Form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	if req.Headers["X-Request-Id"] != "req-test" || req.RequestID != "req-test" {
		t.Fatalf("expected request id propagation, got %#v", req.Headers)
	}
	if req.Timeout != DefaultRequestTimeout {
		t.Fatalf("expected default request timeout, got %s", req.Timeout)
	}
}

func TestUpdateDocument_AddressesByIDWithoutUniqueName(t *testing.T) {
	transport := newScriptedTransport(transportStep{status: http.StatusOK, body: documentBody})
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.UpdateDocument(context.Background(), ResourceInput{ID: "doc 1", Data: map[string]any{"name": "b"}}); err != nil {
		t.Fatalf("update document: %v", err)
	}
	req := transport.recorded()[0]
	if got := pathOf(req); got != "/Services/"+testServiceSID+"/Documents/doc%201" {
		t.Fatalf("unexpected path %q", got)
	}
	if _, ok := req.Form["UniqueName"]; ok {
		t.Fatalf("expected update to omit UniqueName, got %#v", req.Form)
	}
	if _, ok := req.Form["Ttl"]; ok {
		t.Fatalf("expected update without ttl to omit Ttl, got %#v", req.Form)
	}
}

func TestDocumentOperations_ValidateBeforeRemoteCalls(t *testing.T) {
	transport := newScriptedTransport()
	creds := newCountingCredentials()
	svc, err := newTestService(transport, creds)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["retrieve"] = svc.RetrieveDocument(ctx, "")
	_, checks["create"] = svc.CreateDocument(ctx, ResourceInput{Data: map[string]any{"a": 1}})
	_, checks["update"] = svc.UpdateDocument(ctx, ResourceInput{ID: "   "})
	_, checks["delete"] = svc.DeleteDocument(ctx, "")
	_, checks["upsert"] = svc.UpsertDocument(ctx, ResourceInput{})

	for name, err := range checks {
		if !IsValidationError(err) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
	if len(transport.recorded()) != 0 {
		t.Fatalf("expected no remote calls, got %d", len(transport.recorded()))
	}
	if creds.total() != 0 {
		t.Fatalf("expected no credential lookups, got %d", creds.total())
	}
}

func TestRetrieveDocument_PropagatesNotFound(t *testing.T) {
	transport := newScriptedTransport(notFoundStep())
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.RetrieveDocument(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteDocument_ReturnsIdentity(t *testing.T) {
	transport := newScriptedTransport(transportStep{status: http.StatusNoContent})
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	doc, err := svc.DeleteDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("delete document: %v", err)
	}
	if doc.UniqueName != "doc-1" {
		t.Fatalf("expected deleted identity, got %#v", doc)
	}
	if transport.recorded()[0].Method != http.MethodDelete {
		t.Fatalf("expected DELETE, got %q", transport.recorded()[0].Method)
	}
}

func TestUpsertDocument_UpdatesWhenProbeSucceeds(t *testing.T) {
	transport := newScriptedTransport(
		transportStep{status: http.StatusOK, body: documentBody},
		transportStep{status: http.StatusOK, body: documentBody},
	)
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.UpsertDocument(context.Background(), ResourceInput{ID: "doc-1", Data: map[string]any{"name": "a"}}); err != nil {
		t.Fatalf("upsert document: %v", err)
	}
	requests := transport.recorded()
	if len(requests) != 2 {
		t.Fatalf("expected probe and write, got %d requests", len(requests))
	}
	if requests[0].Method != http.MethodGet {
		t.Fatalf("expected GET probe, got %q", requests[0].Method)
	}
	if requests[1].Method != http.MethodPost || pathOf(requests[1]) != "/Services/"+testServiceSID+"/Documents/doc-1" {
		t.Fatalf("expected update POST, got %s %s", requests[1].Method, pathOf(requests[1]))
	}
}

func TestUpsertDocument_CreatesWhenProbeFails(t *testing.T) {
	for name, probe := range map[string]transportStep{
		"not found":    notFoundStep(),
		"server error": {status: http.StatusInternalServerError, body: `{"code":20500,"message":"boom","status":500}`},
	} {
		t.Run(name, func(t *testing.T) {
			transport := newScriptedTransport(probe, transportStep{status: http.StatusCreated, body: documentBody})
			svc, err := newTestService(transport, nil)
			if err != nil {
				t.Fatalf("new service: %v", err)
			}
			if _, err := svc.UpsertDocument(context.Background(), ResourceInput{ID: "doc-1"}); err != nil {
				t.Fatalf("upsert document: %v", err)
			}
			requests := transport.recorded()
			if len(requests) != 2 {
				t.Fatalf("expected probe and create, got %d requests", len(requests))
			}
			if pathOf(requests[1]) != "/Services/"+testServiceSID+"/Documents" {
				t.Fatalf("expected create on collection, got %s", pathOf(requests[1]))
			}
			if requests[1].Form["UniqueName"] != "doc-1" {
				t.Fatalf("expected create to carry unique name, got %#v", requests[1].Form)
			}
		})
	}
}

func TestUpsertDocument_PropagatesWriteFailure(t *testing.T) {
	transport := newScriptedTransport(
		notFoundStep(),
		transportStep{status: http.StatusConflict, body: `{"code":54301,"message":"Unique name already exists","status":409}`},
	)
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.UpsertDocument(context.Background(), ResourceInput{ID: "doc-1"}); !IsConflict(err) {
		t.Fatalf("expected conflict from create, got %v", err)
	}
}
