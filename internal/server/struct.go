package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vertexkit/vsearch/internal/discovery"
)

// Config holds the HTTP server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1).
	Host string
	// Port is the TCP port to listen on (default: 8080).
	Port int
	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration
	// ShutdownTimeout is the maximum duration for a graceful shutdown.
	ShutdownTimeout time.Duration
	// Logger is the structured logger used by the server and its handlers.
	// If nil, [slog.Default] is used.
	Logger *slog.Logger
	// Pingers is the ordered list of dependency probes run by GET /api/ready.
	// If empty, /api/ready returns 200 with no checks (liveness-only mode).
	Pingers []Pinger
	// RateLimit is the sustained request rate allowed per IP on rate-limited
	// endpoints (requests/second). Defaults to 10 if zero.
	RateLimit float64
	// RateBurst is the maximum instantaneous burst per IP. Defaults to 20 if zero.
	RateBurst int
	// APIKey is the Bearer token required on all protected /api/* routes.
	// If empty, authentication is disabled (development mode).
	APIKey string
	// Registry is the Prometheus registry metrics are registered into.
	// If nil, a private registry is created. /metrics always serves the
	// registry in use.
	Registry *prometheus.Registry
}

// searcher is the interface handleSearch calls to execute a query.
// *discovery.Client satisfies it; tests inject a fake.
type searcher interface {
	// Search executes a search against the named data store.
	Search(ctx context.Context, dataStoreID string, opts *discovery.SearchOptions) ([]*discoveryenginepb.SearchResponse_SearchResult, error)
}

// Server is the HTTP search proxy in front of Discovery Engine.
type Server struct {
	// searcher executes search requests; set to a *discovery.Client in
	// production, overridden by a fake in tests.
	searcher searcher
	// cfg holds the resolved server configuration.
	cfg *Config
	// httpServer is the underlying net/http server.
	httpServer *http.Server
	// log is the structured logger for this server instance.
	log *slog.Logger
	// pingers is the ordered list of dependency probes for GET /api/ready.
	pingers []Pinger
	// metrics holds the Prometheus instruments owned by this server.
	metrics *serverMetrics
	// stopRL stops the rate limiter's background eviction goroutine on shutdown.
	stopRL func()
}

// searchRequest is the JSON body for POST /api/search.
type searchRequest struct {
	// DataStore is the data store ID to search.
	DataStore string `json:"dataStore"`
	// Query is the search query text.
	Query string `json:"query"`
	// Filter is an optional filter expression.
	Filter string `json:"filter,omitempty"`
	// PageSize is the number of results to return. Zero lets the service pick.
	PageSize int `json:"pageSize,omitempty"`
	// Mode selects the result shape: "documents" (default) or "chunks".
	Mode string `json:"mode,omitempty"`
	// MaxExtractiveAnswers is the extractive answer count per document.
	MaxExtractiveAnswers int `json:"maxExtractiveAnswers,omitempty"`
	// MaxExtractiveSegments is the extractive segment count per document.
	MaxExtractiveSegments int `json:"maxExtractiveSegments,omitempty"`
	// Snippet attaches snippets to results.
	Snippet bool `json:"snippet,omitempty"`
}

// searchResponse is the JSON body returned by POST /api/search. Results are
// protojson-encoded SearchResult messages so no field is lost in transit.
type searchResponse struct {
	// Count is the number of results returned.
	Count int `json:"count"`
	// Results holds the protojson encoding of each search result.
	Results []json.RawMessage `json:"results"`
}
