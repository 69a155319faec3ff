package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vertexkit/vsearch/internal/discovery"
)

// fakeSearcher is a test double for the searcher interface. It records the
// last call and returns the configured results or error.
type fakeSearcher struct {
	lastDataStore string
	lastOpts      *discovery.SearchOptions
	results       []*discoveryenginepb.SearchResponse_SearchResult
	err           error
}

func (f *fakeSearcher) Search(_ context.Context, dataStoreID string, opts *discovery.SearchOptions) ([]*discoveryenginepb.SearchResponse_SearchResult, error) {
	f.lastDataStore = dataStoreID
	f.lastOpts = opts
	return f.results, f.err
}

// newTestServer builds a minimal *Server with an isolated metrics registry,
// suitable for calling handlers directly.
func newTestServer() *Server {
	return newTestServerWith(&fakeSearcher{})
}

// newTestServerWith builds a *Server around the given searcher.
func newTestServerWith(sc searcher) *Server {
	return &Server{
		searcher: sc,
		cfg:      &Config{},
		log:      slog.Default(),
		metrics:  newServerMetrics(prometheus.NewRegistry()),
	}
}

// ---------------------------------------------------------------------------
// POST /api/search — validation error paths
// ---------------------------------------------------------------------------

func TestHandleSearch_InvalidBody(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	s.handleSearch(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleSearch_MissingFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"no data store", `{"query":"q"}`},
		{"no query", `{"dataStore":"ds-1"}`},
		{"empty body", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServer()
			req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			s.handleSearch(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d — body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleSearch_InvalidOptionsGet400(t *testing.T) {
	t.Parallel()

	sc := &fakeSearcher{err: fmt.Errorf("%w: unknown search result mode", discovery.ErrInvalidConfig)}
	s := newTestServerWith(sc)

	body := `{"dataStore":"ds-1","query":"q","mode":"pages"}`
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleSearch(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid options, got %d", w.Code)
	}
}

func TestHandleSearch_UpstreamFailureGets502(t *testing.T) {
	t.Parallel()

	sc := &fakeSearcher{err: errors.New("rpc error: unavailable")}
	s := newTestServerWith(sc)

	body := `{"dataStore":"ds-1","query":"q"}`
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleSearch(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d — body: %s", w.Code, w.Body.String())
	}
}

// ---------------------------------------------------------------------------
// POST /api/search — happy path
// ---------------------------------------------------------------------------

func TestHandleSearch_OK(t *testing.T) {
	t.Parallel()

	sc := &fakeSearcher{
		results: []*discoveryenginepb.SearchResponse_SearchResult{
			{Id: "doc-1"},
			{Id: "doc-2"},
		},
	}
	s := newTestServerWith(sc)

	body := `{"dataStore":"ds-1","query":"state locking","pageSize":5,"mode":"chunks","snippet":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleSearch(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: expected application/json, got %q", ct)
	}

	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Results) != 2 {
		t.Errorf("expected 2 results, got count=%d len=%d", resp.Count, len(resp.Results))
	}

	// The request body must map onto the search options faithfully.
	if sc.lastDataStore != "ds-1" {
		t.Errorf("data store: %q", sc.lastDataStore)
	}
	if sc.lastOpts.Query != "state locking" || sc.lastOpts.PageSize != 5 {
		t.Errorf("options: %+v", sc.lastOpts)
	}
	if sc.lastOpts.ResultMode != discovery.SearchModeChunks || !sc.lastOpts.ReturnSnippet {
		t.Errorf("mode/snippet: %+v", sc.lastOpts)
	}
}

func TestHandleSearch_EmptyResults(t *testing.T) {
	t.Parallel()

	s := newTestServerWith(&fakeSearcher{})

	body := `{"dataStore":"ds-1","query":"nothing matches"}`
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleSearch(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("expected 0 results, got %d", resp.Count)
	}
	// Results must encode as [] rather than null.
	if resp.Results == nil {
		t.Error("results: expected empty slice, got nil")
	}
}
