package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mindlayout/pkg/core/layout"
	"github.com/matzehuels/mindlayout/pkg/pipeline"
	"github.com/matzehuels/mindlayout/pkg/store"
)

const sampleTree = `{
  "data": {"text": "Plan"},
  "children": [
    {"data": {"text": "Goals"}, "children": [{"data": {"text": "Ship"}}]},
    {"data": {"text": "Risks", "expand": false}, "children": [{"data": {"text": "Hidden"}}]}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	s := New(Config{
		Runner: pipeline.NewRunner(nil, nil, logger),
		Store:  store.NewMemoryStore(),
		Logger: logger,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestRequestIDPropagates(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "0f8fad5b-d9cb-469f-a165-70867728950e")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", resp.Header.Get(RequestIDHeader))
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/v1/layout",
		`{"tree": `+sampleTree+`, "options": {"strategy": "organization"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	x := decode[layout.Export](t, resp)
	assert.Equal(t, "organization", x.Strategy)
	assert.Len(t, x.Nodes, 4, "collapsed children are not laid out")
	assert.True(t, x.Nodes[0].Root)
	assert.NotEmpty(t, x.Connectors)
}

func TestLayoutErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"tree":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing tree", `{"options": {}}`, http.StatusBadRequest, "INVALID_TREE"},
		{"bad strategy", `{"tree": ` + sampleTree + `, "options": {"strategy": "radial"}}`, http.StatusBadRequest, "INVALID_STRATEGY"},
		{"bad line style", `{"tree": ` + sampleTree + `, "options": {"line_style": "zigzag"}}`, http.StatusBadRequest, "INVALID_THEME"},
		{"negative width", `{"tree": {"data": {"text": "x", "width": -5}}}`, http.StatusBadRequest, "INVALID_TREE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/v1/layout", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode[errorBody](t, resp)
			assert.Equal(t, tt.code, string(body.Error.Code))
			assert.NotEmpty(t, body.Error.RequestID)
		})
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)
	body := `{"tree": ` + sampleTree + `, "options": {"title": "Plan"}}`

	resp := do(t, http.MethodPost, ts.URL+"/v1/render/svg", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	data, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(data), "<svg")

	resp = do(t, http.MethodPost, ts.URL+"/v1/render/png", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ = io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	resp = do(t, http.MethodPost, ts.URL+"/v1/render/dot", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(data), "digraph G")

	resp = do(t, http.MethodPost, ts.URL+"/v1/render/pdf", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_FORMAT", string(decode[errorBody](t, resp).Error.Code))
}

func TestMapsCRUD(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/maps",
		`{"title": "Roadmap", "strategy": "logical", "tree": `+sampleTree+`}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[store.Map](t, resp)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "/v1/maps/"+created.ID, resp.Header.Get("Location"))
	assert.NotEmpty(t, created.Tree.Data.ID, "node ids are assigned on create")

	resp = do(t, http.MethodGet, ts.URL+"/v1/maps/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[store.Map](t, resp)
	assert.Equal(t, "Roadmap", got.Title)
	assert.Equal(t, "Plan", got.Tree.Data.Text)

	resp = do(t, http.MethodGet, ts.URL+"/v1/maps", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[map[string][]store.Summary](t, resp)
	require.Len(t, list["maps"], 1)
	assert.Equal(t, created.ID, list["maps"][0].ID)

	resp = do(t, http.MethodPut, ts.URL+"/v1/maps/"+created.ID,
		`{"title": "Roadmap v2", "tree": {"data": {"text": "Solo"}}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Roadmap v2", decode[store.Map](t, resp).Title)

	resp = do(t, http.MethodGet, ts.URL+"/v1/maps/"+created.ID+"/render/json?strategy=mindmap", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var out struct {
		Strategy string `json:"strategy"`
		Nodes    []any  `json:"nodes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "mindmap", out.Strategy)
	assert.Len(t, out.Nodes, 1)

	resp = do(t, http.MethodDelete, ts.URL+"/v1/maps/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/v1/maps/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", string(decode[errorBody](t, resp).Error.Code))
}

func TestMapsErrors(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/v1/maps/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", string(decode[errorBody](t, resp).Error.Code))

	resp = do(t, http.MethodPost, ts.URL+"/v1/maps", `{"title": "", "tree": {"data": {"text": "x"}}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/v1/maps?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPut, ts.URL+"/v1/maps/0f8fad5b-d9cb-469f-a165-70867728950e",
		`{"title": "ghost", "tree": {"data": {"text": "x"}}}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
