package core

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const itemBody = `{"index":0,"list_sid":"ES1","revision":"0","data":{"v":1}}`

func TestCreateListItem_OmitsUniqueName(t *testing.T) {
	transport := newScriptedTransport(transportStep{status: http.StatusCreated, body: itemBody})
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	item, err := svc.CreateListItem(context.Background(), ListItemInput{ListID: "L1", Data: map[string]any{"v": 1}, TTL: 30})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.Index != 0 || item.ListSID != "ES1" {
		t.Fatalf("unexpected item %#v", item)
	}
	req := transport.recorded()[0]
	if pathOf(req) != "/Services/"+testServiceSID+"/Lists/L1/Items" {
		t.Fatalf("unexpected path %s", pathOf(req))
	}
	want := map[string]string{"Data": `{"v":1}`, "Ttl": "30"}
	if diff := cmp.Diff(want, req.Form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestListItemOperations_ValidateBeforeRemoteCalls(t *testing.T) {
	transport := newScriptedTransport()
	creds := newCountingCredentials()
	svc, err := newTestService(transport, creds)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["retrieve empty list"] = svc.RetrieveListItem(ctx, "", 0)
	_, checks["retrieve negative index"] = svc.RetrieveListItem(ctx, "L1", -1)
	_, checks["create empty list"] = svc.CreateListItem(ctx, ListItemInput{})
	_, checks["update missing index"] = svc.UpdateListItem(ctx, ListItemInput{ListID: "L1"})
	_, checks["update negative index"] = svc.UpdateListItem(ctx, ListItemInput{ListID: "L1", Index: IndexRef(-3)})
	_, checks["update empty list"] = svc.UpdateListItem(ctx, ListItemInput{Index: IndexRef(0)})
	_, checks["delete empty list"] = svc.DeleteListItem(ctx, " ", 1)
	_, checks["delete negative index"] = svc.DeleteListItem(ctx, "L1", -1)
	_, checks["upsert empty list"] = svc.UpsertListItem(ctx, ListItemInput{})
	_, checks["list empty list"] = svc.ListItems(ctx, ListItemsRequest{})

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

func TestListItemOperations_AcceptIndexZero(t *testing.T) {
	transport := newScriptedTransport(
		transportStep{status: http.StatusOK, body: itemBody},
		transportStep{status: http.StatusOK, body: itemBody},
		transportStep{status: http.StatusNoContent},
	)
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.RetrieveListItem(ctx, "L1", 0); err != nil {
		t.Fatalf("retrieve item 0: %v", err)
	}
	if _, err := svc.UpdateListItem(ctx, ListItemInput{ListID: "L1", Index: IndexRef(0), Data: map[string]any{"v": 2}}); err != nil {
		t.Fatalf("update item 0: %v", err)
	}
	deleted, err := svc.DeleteListItem(ctx, "L1", 0)
	if err != nil {
		t.Fatalf("delete item 0: %v", err)
	}
	if deleted.Index != 0 || deleted.ListSID != "L1" {
		t.Fatalf("expected deleted identity, got %#v", deleted)
	}

	requests := transport.recorded()
	wantPath := "/Services/" + testServiceSID + "/Lists/L1/Items/0"
	for i, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		if requests[i].Method != method || pathOf(requests[i]) != wantPath {
			t.Fatalf("request %d: expected %s %s, got %s %s", i, method, wantPath, requests[i].Method, pathOf(requests[i]))
		}
	}
}

func TestUpsertListItem_FallsBackToItemCreate(t *testing.T) {
	transport := newScriptedTransport(notFoundStep(), transportStep{status: http.StatusCreated, body: `{"index":7,"list_sid":"ES1"}`})
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	item, err := svc.UpsertListItem(context.Background(), ListItemInput{ListID: "L1", Index: IndexRef(3), Data: map[string]any{"v": 1}})
	if err != nil {
		t.Fatalf("upsert item: %v", err)
	}
	if item.Index != 7 {
		t.Fatalf("expected assigned index 7, got %d", item.Index)
	}
	requests := transport.recorded()
	if len(requests) != 2 {
		t.Fatalf("expected probe and create, got %d", len(requests))
	}
	if pathOf(requests[0]) != "/Services/"+testServiceSID+"/Lists/L1/Items/3" {
		t.Fatalf("unexpected probe path %s", pathOf(requests[0]))
	}
	if requests[1].Method != http.MethodPost || pathOf(requests[1]) != "/Services/"+testServiceSID+"/Lists/L1/Items" {
		t.Fatalf("expected item create, got %s %s", requests[1].Method, pathOf(requests[1]))
	}
}

func TestUpsertListItem_UpdatesWhenProbeSucceeds(t *testing.T) {
	transport := newScriptedTransport(
		transportStep{status: http.StatusOK, body: itemBody},
		transportStep{status: http.StatusOK, body: `{"index":0,"data":{"v":2}}`},
	)
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	item, err := svc.UpsertListItem(context.Background(), ListItemInput{ListID: "L1", Index: IndexRef(0), Data: map[string]any{"v": 2}})
	if err != nil {
		t.Fatalf("upsert item: %v", err)
	}
	if item.Data["v"] != float64(2) {
		t.Fatalf("expected updated data, got %#v", item.Data)
	}
	requests := transport.recorded()
	if len(requests) != 2 || pathOf(requests[1]) != "/Services/"+testServiceSID+"/Lists/L1/Items/0" {
		t.Fatalf("expected update on item 0, got %#v", requests)
	}
}

func TestUpsertListItem_WithoutIndexCreatesDirectly(t *testing.T) {
	transport := newScriptedTransport(transportStep{status: http.StatusCreated, body: itemBody})
	svc, err := newTestService(transport, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.UpsertListItem(context.Background(), ListItemInput{ListID: "L1"}); err != nil {
		t.Fatalf("upsert item: %v", err)
	}
	requests := transport.recorded()
	if len(requests) != 1 || requests[0].Method != http.MethodPost {
		t.Fatalf("expected a single create, got %#v", requests)
	}
}

func TestListItems_QueryParameters(t *testing.T) {
	cases := []struct {
		name string
		req  ListItemsRequest
		want map[string]string
	}{
		{
			name: "defaults",
			req:  ListItemsRequest{ListID: "L1"},
			want: map[string]string{"PageSize": "50", "Order": "asc"},
		},
		{
			name: "explicit page size and desc",
			req:  ListItemsRequest{ListID: "L1", PageSize: 10, Order: "DESC"},
			want: map[string]string{"PageSize": "10", "Order": "desc"},
		},
		{
			name: "exclusive from",
			req:  ListItemsRequest{ListID: "L1", FromIndex: IndexRef(5), Order: "sideways"},
			want: map[string]string{"PageSize": "50", "Order": "asc", "From": "5", "Bounds": "exclusive"},
		},
		{
			name: "zero from is ignored",
			req:  ListItemsRequest{ListID: "L1", FromIndex: IndexRef(0), PageSize: -4},
			want: map[string]string{"PageSize": "50", "Order": "asc"},
		},
		{
			name: "page size capped",
			req:  ListItemsRequest{ListID: "L1", PageSize: 5000},
			want: map[string]string{"PageSize": "1000", "Order": "asc"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transport := newScriptedTransport(transportStep{status: http.StatusOK, body: `{"items":[],"meta":{}}`})
			svc, err := newTestService(transport, nil)
			if err != nil {
				t.Fatalf("new service: %v", err)
			}
			items, err := svc.ListItems(context.Background(), tc.req)
			if err != nil {
				t.Fatalf("list items: %v", err)
			}
			if items == nil {
				t.Fatalf("expected empty slice, got nil")
			}
			if diff := cmp.Diff(tc.want, transport.recorded()[0].Query); diff != "" {
				t.Fatalf("query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListItems_UsesConfiguredDefaultPageSize(t *testing.T) {
	transport := newScriptedTransport(transportStep{
		status: http.StatusOK,
		body:   `{"items":[{"index":1,"data":{"v":1}},{"index":2,"data":{"v":2}}],"meta":{"page_size":20}}`,
	})
	svc, err := NewService(Config{Lists: ListsConfig{DefaultPageSize: 20}},
		WithCredentialResolver(newCountingCredentials()),
		WithTransport(transport),
		WithLogger(stubLogger{}),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	items, err := svc.ListItems(context.Background(), ListItemsRequest{ListID: "L1"})
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 || items[0].Index != 1 || items[1].Index != 2 {
		t.Fatalf("unexpected items %#v", items)
	}
	if got := transport.recorded()[0].Query["PageSize"]; got != "20" {
		t.Fatalf("expected configured page size 20, got %q", got)
	}
}
