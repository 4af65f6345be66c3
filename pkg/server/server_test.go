package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxlayout/pkg/cache"
	"github.com/matzehuels/boxlayout/pkg/geom"
	"github.com/matzehuels/boxlayout/pkg/pipeline"
	"github.com/matzehuels/boxlayout/pkg/store"
)

const toolbar = `
name = "toolbar"
width = 100
height = 20

[[children]]
id = "open"
width = 30
manager = "pack"
options = { side = "left", fill = "y" }
`

const toolbarYAML = `
name: toolbar
width: 100
height: 20
children:
  - id: open
    width: 30
    manager: pack
    options: {side: left, fill: y}
`

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	logger := log.New(io.Discard)
	st := store.NewMemoryStore()
	srv := httptest.NewServer(New(pipeline.NewRunner(cache.NewMemoryCache(), nil, logger), st, logger))
	t.Cleanup(srv.Close)
	return srv, st
}

func do(t *testing.T, method, url, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body := decode[map[string]string](t, resp); body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestLayoutLifecycle(t *testing.T) {
	srv, st := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/v1/layouts", "application/toml", toolbar)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	created := decode[CreateResponse](t, resp)
	if created.Cached {
		t.Error("first create should not be cached")
	}
	if got := resp.Header.Get("Location"); got != "/v1/layouts/"+created.ID {
		t.Errorf("Location = %q", got)
	}
	open, ok := created.Result.Find("open")
	if !ok || open.Rect != geom.R(0, 0, 30, 20) {
		t.Errorf("open = %+v, %v", open, ok)
	}
	if st.Len() != 1 {
		t.Errorf("store holds %d records, want 1", st.Len())
	}

	// The same document in YAML lays out identically but is cached separately.
	resp = do(t, http.MethodPost, srv.URL+"/v1/layouts?format=yml", "", toolbarYAML)
	again := decode[CreateResponse](t, resp)
	if again.Cached || again.ID == created.ID {
		t.Errorf("yaml create = cached %v id %s", again.Cached, again.ID)
	}
	if diff := cmp.Diff(created.Result, again.Result); diff != "" {
		t.Errorf("yaml result differs (-toml +yaml):\n%s", diff)
	}
	resp = do(t, http.MethodPost, srv.URL+"/v1/layouts", "", toolbar)
	if !decode[CreateResponse](t, resp).Cached {
		t.Error("repeated create should hit the layout cache")
	}

	resp = do(t, http.MethodGet, srv.URL+"/v1/layouts/"+created.ID, "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	rec := decode[store.Record](t, resp)
	if rec.Format != "toml" || rec.Document != toolbar || rec.Name != "toolbar" {
		t.Errorf("record = %+v", rec)
	}

	resp = do(t, http.MethodGet, srv.URL+"/v1/layouts/"+created.ID+"/render/svg?labels=1", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", resp.Header.Get("X-Cache"))
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `id="box-open"`) {
		t.Errorf("svg missing box-open:\n%s", body)
	}
	resp = do(t, http.MethodGet, srv.URL+"/v1/layouts/"+created.ID+"/render/svg?labels=1", "", "")
	if resp.Header.Get("X-Cache") != "HIT" {
		t.Errorf("second render X-Cache = %q, want HIT", resp.Header.Get("X-Cache"))
	}

	resp = do(t, http.MethodDelete, srv.URL+"/v1/layouts/"+created.ID, "", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	resp = do(t, http.MethodGet, srv.URL+"/v1/layouts/"+created.ID, "", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	missing := "5f1c1c34-2f5e-4d57-9a43-3f0b8a0d7e21"

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"malformed toml", http.MethodPost, "/v1/layouts", "", "width = [", http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad manager options", http.MethodPost, "/v1/layouts", "", "[[children]]\nmanager = \"pack\"\noptions = { side = \"up\" }\n", http.StatusUnprocessableEntity, "CONFIGURATION"},
		{"duplicate ids", http.MethodPost, "/v1/layouts", "", "[[children]]\nid = \"a\"\nmanager = \"pack\"\n[[children]]\nid = \"a\"\n", http.StatusUnprocessableEntity, "INVALID_DOCUMENT"},
		{"unknown format", http.MethodPost, "/v1/layouts?format=xml", "", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown content type", http.MethodPost, "/v1/layouts", "image/png", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"invalid id", http.MethodGet, "/v1/layouts/nope", "", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"missing layout", http.MethodGet, "/v1/layouts/" + missing, "", "", http.StatusNotFound, "NOT_FOUND"},
		{"bad render format", http.MethodGet, "/v1/layouts/" + missing + "/render/gif", "", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad scale", http.MethodGet, "/v1/layouts/" + missing + "/render/png?scale=-2", "", "", http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if got := decode[ErrorResponse](t, resp); got.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", got.Code, tt.code, got.Message)
			}
		})
	}
}

func TestStatusOfUnknownError(t *testing.T) {
	if got := statusOf(io.ErrUnexpectedEOF); got != http.StatusInternalServerError {
		t.Errorf("statusOf(plain error) = %d, want 500", got)
	}
	if body := errorBody(io.ErrUnexpectedEOF); body.Code != "INTERNAL_ERROR" || strings.Contains(body.Message, "EOF") {
		t.Errorf("errorBody(plain error) = %+v", body)
	}
}
