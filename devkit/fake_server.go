package devkit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goliatone/go-twilio-sync/core"
)

// Twilio error codes returned by the fake service.
const (
	ErrorCodeAuthenticate     = 20003
	ErrorCodeNotFound         = 20404
	ErrorCodeInvalidData      = 54008
	ErrorCodeUniqueNameExists = 54301
)

type fakeDocument struct {
	meta core.ResourceMeta
	data map[string]any
}

type fakeList struct {
	meta      core.ResourceMeta
	items     map[int]core.ListItem
	nextIndex int
}

// FakeServer emulates the Documents, Lists and Items endpoints of one Sync
// service. Requests must carry basic auth matching the configured account.
type FakeServer struct {
	mu         sync.Mutex
	accountSID string
	authToken  string
	serviceSID string
	documents  map[string]*fakeDocument
	lists      map[string]*fakeList
	sequence   int
	requests   int
	now        func() time.Time
	server     *httptest.Server
}

func NewFakeServer(accountSID string, authToken string, serviceSID string) *FakeServer {
	f := &FakeServer{
		accountSID: accountSID,
		authToken:  authToken,
		serviceSID: serviceSID,
		documents:  map[string]*fakeDocument{},
		lists:      map[string]*fakeList{},
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
	f.server = httptest.NewServer(f.Router())
	return f
}

// BaseURL is the value to use as core.Config.BaseURL.
func (f *FakeServer) BaseURL() string {
	return f.server.URL + "/v1"
}

func (f *FakeServer) Client() *http.Client {
	return f.server.Client()
}

func (f *FakeServer) Close() {
	f.server.Close()
}

// RequestCount reports how many authenticated requests reached a handler.
func (f *FakeServer) RequestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

// DocumentData returns the stored data of the document with the given unique
// name or SID.
func (f *FakeServer) DocumentData(id string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.findDocument(id)
	if doc == nil {
		return nil, false
	}
	return cloneData(doc.data), true
}

func (f *FakeServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Route("/v1/Services/{ServiceSid}", func(r chi.Router) {
		r.Use(f.basicAuthMiddleware)

		r.Post("/Documents", f.createDocument)
		r.Get("/Documents/{ID}", f.getDocument)
		r.Post("/Documents/{ID}", f.updateDocument)
		r.Delete("/Documents/{ID}", f.deleteDocument)

		r.Post("/Lists", f.createList)
		r.Get("/Lists/{ID}", f.getList)
		r.Post("/Lists/{ID}", f.updateList)
		r.Delete("/Lists/{ID}", f.deleteList)

		r.Get("/Lists/{ID}/Items", f.listItems)
		r.Post("/Lists/{ID}/Items", f.createItem)
		r.Get("/Lists/{ID}/Items/{Index}", f.getItem)
		r.Post("/Lists/{ID}/Items/{Index}", f.updateItem)
		r.Delete("/Lists/{ID}/Items/{Index}", f.deleteItem)
	})
	return r
}

func (f *FakeServer) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != f.accountSID || pass != f.authToken {
			w.Header().Set("WWW-Authenticate", `Basic realm="Twilio API"`)
			writeError(w, http.StatusUnauthorized, ErrorCodeAuthenticate, "Authenticate")
			return
		}
		if chi.URLParam(r, "ServiceSid") != f.serviceSID {
			writeError(w, http.StatusNotFound, ErrorCodeNotFound,
				fmt.Sprintf("The requested resource /Services/%s was not found", chi.URLParam(r, "ServiceSid")))
			return
		}
		f.mu.Lock()
		f.requests++
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeServer) createDocument(w http.ResponseWriter, r *http.Request) {
	data, ttl, ok := parseWriteForm(w, r)
	if !ok {
		return
	}
	uniqueName := r.FormValue("UniqueName")

	f.mu.Lock()
	defer f.mu.Unlock()
	if uniqueName != "" && f.findDocument(uniqueName) != nil {
		writeError(w, http.StatusConflict, ErrorCodeUniqueNameExists, "Unique name already exists")
		return
	}
	doc := &fakeDocument{meta: f.newMeta("ET", uniqueName, "Documents", ttl), data: data}
	if doc.data == nil {
		doc.data = map[string]any{}
	}
	f.documents[doc.meta.SID] = doc
	writeJSON(w, http.StatusCreated, documentView(doc))
}

func (f *FakeServer) getDocument(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.findDocument(chi.URLParam(r, "ID"))
	if doc == nil {
		writeNotFound(w, "Documents", chi.URLParam(r, "ID"))
		return
	}
	writeJSON(w, http.StatusOK, documentView(doc))
}

func (f *FakeServer) updateDocument(w http.ResponseWriter, r *http.Request) {
	data, ttl, ok := parseWriteForm(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.findDocument(chi.URLParam(r, "ID"))
	if doc == nil {
		writeNotFound(w, "Documents", chi.URLParam(r, "ID"))
		return
	}
	if data != nil {
		doc.data = data
	}
	f.touch(&doc.meta, ttl)
	writeJSON(w, http.StatusOK, documentView(doc))
}

func (f *FakeServer) deleteDocument(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.findDocument(chi.URLParam(r, "ID"))
	if doc == nil {
		writeNotFound(w, "Documents", chi.URLParam(r, "ID"))
		return
	}
	delete(f.documents, doc.meta.SID)
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeServer) createList(w http.ResponseWriter, r *http.Request) {
	_, ttl, ok := parseWriteForm(w, r)
	if !ok {
		return
	}
	uniqueName := r.FormValue("UniqueName")

	f.mu.Lock()
	defer f.mu.Unlock()
	if uniqueName != "" && f.findList(uniqueName) != nil {
		writeError(w, http.StatusConflict, ErrorCodeUniqueNameExists, "Unique name already exists")
		return
	}
	list := &fakeList{meta: f.newMeta("ES", uniqueName, "Lists", ttl), items: map[int]core.ListItem{}}
	f.lists[list.meta.SID] = list
	writeJSON(w, http.StatusCreated, core.List{ResourceMeta: list.meta})
}

func (f *FakeServer) getList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.findList(chi.URLParam(r, "ID"))
	if list == nil {
		writeNotFound(w, "Lists", chi.URLParam(r, "ID"))
		return
	}
	writeJSON(w, http.StatusOK, core.List{ResourceMeta: list.meta})
}

func (f *FakeServer) updateList(w http.ResponseWriter, r *http.Request) {
	_, ttl, ok := parseWriteForm(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.findList(chi.URLParam(r, "ID"))
	if list == nil {
		writeNotFound(w, "Lists", chi.URLParam(r, "ID"))
		return
	}
	f.touch(&list.meta, ttl)
	writeJSON(w, http.StatusOK, core.List{ResourceMeta: list.meta})
}

func (f *FakeServer) deleteList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.findList(chi.URLParam(r, "ID"))
	if list == nil {
		writeNotFound(w, "Lists", chi.URLParam(r, "ID"))
		return
	}
	delete(f.lists, list.meta.SID)
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeServer) createItem(w http.ResponseWriter, r *http.Request) {
	data, ttl, ok := parseWriteForm(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.findList(chi.URLParam(r, "ID"))
	if list == nil {
		writeNotFound(w, "Lists", chi.URLParam(r, "ID"))
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	now := f.now()
	item := core.ListItem{
		Index:       list.nextIndex,
		ListSID:     list.meta.SID,
		AccountSID:  f.accountSID,
		ServiceSID:  f.serviceSID,
		URL:         fmt.Sprintf("%s/Items/%d", list.meta.URL, list.nextIndex),
		Revision:    "0",
		Data:        data,
		DateCreated: &now,
		DateUpdated: &now,
		DateExpires: expiry(now, ttl),
		CreatedBy:   "system",
	}
	list.items[item.Index] = item
	list.nextIndex++
	writeJSON(w, http.StatusCreated, item)
}

func (f *FakeServer) getItem(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, item, ok := f.lookupItem(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (f *FakeServer) updateItem(w http.ResponseWriter, r *http.Request) {
	data, ttl, ok := parseWriteForm(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	list, item, ok := f.lookupItem(w, r)
	if !ok {
		return
	}
	if data != nil {
		item.Data = data
	}
	now := f.now()
	item.DateUpdated = &now
	if ttl > 0 {
		item.DateExpires = expiry(now, ttl)
	}
	item.Revision = nextRevision(item.Revision)
	list.items[item.Index] = item
	writeJSON(w, http.StatusOK, item)
}

func (f *FakeServer) deleteItem(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list, item, ok := f.lookupItem(w, r)
	if !ok {
		return
	}
	delete(list.items, item.Index)
	w.WriteHeader(http.StatusNoContent)
}

// listItems serves one page. From is inclusive unless Bounds=exclusive.
func (f *FakeServer) listItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pageSize := 50
	if value, err := strconv.Atoi(query.Get("PageSize")); err == nil && value > 0 {
		pageSize = value
	}
	descending := strings.EqualFold(query.Get("Order"), core.OrderDescending)
	from, hasFrom := -1, false
	if value, err := strconv.Atoi(query.Get("From")); err == nil {
		from, hasFrom = value, true
	}
	exclusive := strings.EqualFold(query.Get("Bounds"), "exclusive")

	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.findList(chi.URLParam(r, "ID"))
	if list == nil {
		writeNotFound(w, "Lists", chi.URLParam(r, "ID"))
		return
	}
	indexes := make([]int, 0, len(list.items))
	for index := range list.items {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	if descending {
		sort.Sort(sort.Reverse(sort.IntSlice(indexes)))
	}

	items := []core.ListItem{}
	for _, index := range indexes {
		if hasFrom {
			if !descending && (index < from || (exclusive && index == from)) {
				continue
			}
			if descending && (index > from || (exclusive && index == from)) {
				continue
			}
		}
		items = append(items, list.items[index])
		if len(items) == pageSize {
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"meta": map[string]any{
			"page_size": pageSize,
			"key":       "items",
			"page":      0,
		},
	})
}

func (f *FakeServer) lookupItem(w http.ResponseWriter, r *http.Request) (*fakeList, core.ListItem, bool) {
	list := f.findList(chi.URLParam(r, "ID"))
	if list == nil {
		writeNotFound(w, "Lists", chi.URLParam(r, "ID"))
		return nil, core.ListItem{}, false
	}
	index, err := strconv.Atoi(chi.URLParam(r, "Index"))
	if err != nil {
		writeNotFound(w, "Items", chi.URLParam(r, "Index"))
		return nil, core.ListItem{}, false
	}
	item, ok := list.items[index]
	if !ok {
		writeNotFound(w, "Items", chi.URLParam(r, "Index"))
		return nil, core.ListItem{}, false
	}
	return list, item, true
}

func (f *FakeServer) findDocument(id string) *fakeDocument {
	if doc, ok := f.documents[id]; ok {
		return doc
	}
	for _, doc := range f.documents {
		if doc.meta.UniqueName != "" && doc.meta.UniqueName == id {
			return doc
		}
	}
	return nil
}

func (f *FakeServer) findList(id string) *fakeList {
	if list, ok := f.lists[id]; ok {
		return list
	}
	for _, list := range f.lists {
		if list.meta.UniqueName != "" && list.meta.UniqueName == id {
			return list
		}
	}
	return nil
}

func (f *FakeServer) newMeta(prefix string, uniqueName string, collection string, ttl int) core.ResourceMeta {
	f.sequence++
	sid := fmt.Sprintf("%s%030d", prefix, f.sequence)
	if uniqueName == "" {
		uniqueName = sid
	}
	now := f.now()
	return core.ResourceMeta{
		SID:         sid,
		UniqueName:  uniqueName,
		AccountSID:  f.accountSID,
		ServiceSID:  f.serviceSID,
		URL:         fmt.Sprintf("%s/Services/%s/%s/%s", f.BaseURL(), f.serviceSID, collection, sid),
		Revision:    "0",
		DateCreated: &now,
		DateUpdated: &now,
		DateExpires: expiry(now, ttl),
		CreatedBy:   "system",
	}
}

func (f *FakeServer) touch(meta *core.ResourceMeta, ttl int) {
	now := f.now()
	meta.DateUpdated = &now
	if ttl > 0 {
		meta.DateExpires = expiry(now, ttl)
	}
	meta.Revision = nextRevision(meta.Revision)
}

// parseWriteForm reads the Data and Ttl form fields. A missing Data field
// yields nil data; malformed JSON is answered with a 400.
func parseWriteForm(w http.ResponseWriter, r *http.Request) (map[string]any, int, bool) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeInvalidData, "Unable to parse form data: "+err.Error())
		return nil, 0, false
	}
	var data map[string]any
	if raw := r.PostFormValue("Data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeInvalidData, "Invalid data: "+err.Error())
			return nil, 0, false
		}
	}
	ttl := 0
	if raw := r.PostFormValue("Ttl"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			writeError(w, http.StatusBadRequest, ErrorCodeInvalidData, "Invalid Ttl: "+raw)
			return nil, 0, false
		}
		ttl = value
	}
	return data, ttl, true
}

func documentView(doc *fakeDocument) core.Document {
	return core.Document{ResourceMeta: doc.meta, Data: cloneData(doc.data)}
}

func expiry(now time.Time, ttl int) *time.Time {
	if ttl <= 0 {
		return nil
	}
	expires := now.Add(time.Duration(ttl) * time.Second)
	return &expires
}

func nextRevision(revision string) string {
	value, _ := strconv.Atoi(revision)
	return strconv.Itoa(value + 1)
}

func cloneData(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func writeNotFound(w http.ResponseWriter, collection string, id string) {
	writeError(w, http.StatusNotFound, ErrorCodeNotFound,
		fmt.Sprintf("The requested resource /%s/%s was not found", collection, id))
}

func writeError(w http.ResponseWriter, status int, code int, message string) {
	writeJSON(w, status, core.RemoteErrorBody{
		Code:     code,
		Message:  message,
		MoreInfo: fmt.Sprintf("https://www.twilio.com/docs/errors/%d", code),
		Status:   status,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
