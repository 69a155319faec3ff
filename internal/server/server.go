// Package server implements the HTTP search proxy in front of Discovery
// Engine. It exposes POST /api/search behind Bearer auth and a per-IP rate
// limit, plus liveness, readiness, and Prometheus metrics endpoints.
// The server is started by the `vsearch serve` CLI command.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/vertexkit/vsearch/internal/discovery"
	"github.com/vertexkit/vsearch/internal/logging"
)

// New constructs a Server that proxies searches through client.
func New(client searcher, cfg *Config) (*Server, error) {
	if client == nil {
		return nil, fmt.Errorf("server: search client must not be nil")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 60 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = defaultRateBurst
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		searcher: client,
		cfg:      cfg,
		log:      log,
		pingers:  cfg.Pingers,
		metrics:  newServerMetrics(reg),
	}

	rl, stopRL := newRateLimiter(cfg.RateLimit, cfg.RateBurst, log)
	s.stopRL = stopRL

	if cfg.APIKey == "" {
		log.Warn("server: VSEARCH_API_KEY not set, API authentication is disabled")
	}

	// Protected routes get auth and the per-IP rate limit; probes and
	// metrics stay open so orchestrators can scrape them.
	protected := func(h http.Handler) http.Handler {
		return authMiddleware(cfg.APIKey, rl.middleware(h))
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/search", protected(s.instrument("search", http.HandlerFunc(s.handleSearch))))
	mux.Handle("GET /api/health", s.instrument("health", http.HandlerFunc(s.handleHealth)))
	mux.Handle("GET /api/ready", s.instrument("ready", http.HandlerFunc(s.handleReady)))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      requestLogger(log, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

// Start begins listening and serving HTTP requests. It blocks until the
// context is cancelled, then performs a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	defer s.stopRL()

	errCh := make(chan error, 1)

	go func() {
		s.log.Info("server: listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: graceful shutdown failed: %w", err)
		}
		return nil
	}
}

// handleSearch handles POST /api/search. It validates the request, executes
// the search through the injected client, and returns protojson-encoded
// results. Invalid requests get 400; upstream failures get 502.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	start := time.Now()

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.searchRequestsTotal.WithLabelValues(outcomeInvalid).Inc()
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.DataStore == "" {
		s.metrics.searchRequestsTotal.WithLabelValues(outcomeInvalid).Inc()
		http.Error(w, "dataStore is required", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		s.metrics.searchRequestsTotal.WithLabelValues(outcomeInvalid).Inc()
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	opts := &discovery.SearchOptions{
		Query:                     req.Query,
		Filter:                    req.Filter,
		PageSize:                  req.PageSize,
		MaxExtractiveAnswerCount:  req.MaxExtractiveAnswers,
		MaxExtractiveSegmentCount: req.MaxExtractiveSegments,
		ReturnSnippet:             req.Snippet,
		ResultMode:                discovery.SearchResultMode(req.Mode),
	}

	results, err := s.searcher.Search(r.Context(), req.DataStore, opts)
	if err != nil {
		if errors.Is(err, discovery.ErrInvalidConfig) {
			s.metrics.searchRequestsTotal.WithLabelValues(outcomeInvalid).Inc()
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.metrics.searchRequestsTotal.WithLabelValues(outcomeError).Inc()
		log.Error("search failed",
			slog.String("data_store", req.DataStore),
			slog.Any("error", err),
		)
		http.Error(w, "search failed", http.StatusBadGateway)
		return
	}

	resp := searchResponse{Count: len(results), Results: make([]json.RawMessage, 0, len(results))}
	for _, res := range results {
		b, err := protojson.Marshal(res)
		if err != nil {
			s.metrics.searchRequestsTotal.WithLabelValues(outcomeError).Inc()
			log.Error("search result encode error", slog.Any("error", err))
			http.Error(w, "encoding failed", http.StatusInternalServerError)
			return
		}
		resp.Results = append(resp.Results, b)
	}

	s.metrics.searchRequestsTotal.WithLabelValues(outcomeOK).Inc()
	s.metrics.searchDurationSeconds.WithLabelValues(outcomeOK).Observe(time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("search response encode error", slog.Any("error", err))
	}
}

// handleHealth handles GET /api/health for liveness checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
