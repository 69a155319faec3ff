package discovery

import (
	"context"
	"errors"
	"fmt"

	discoveryengine "cloud.google.com/go/discoveryengine/apiv1alpha"
	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Config holds the identifiers every request is scoped to.
type Config struct {
	// Project is the GCP project ID.
	Project string

	// Location is the Discovery Engine location ("global", "us", "eu", ...).
	// Non-global locations are dialed through their regional endpoint.
	Location string

	// Collection is the collection ID (default: "default_collection").
	Collection string

	// Endpoint overrides the API endpoint entirely. Mostly useful for tests
	// against an emulator; normally derived from Location.
	Endpoint string
}

// Client is the configuration and request builder for Vertex AI Search.
// It constructs validated request payloads and forwards them to the injected
// service capabilities. Client holds no mutable state beyond the stateless
// client handles, so it is safe to reuse across calls.
type Client struct {
	// cfg holds the resolved identifiers.
	cfg *Config

	// svc holds the five injected remote capabilities.
	svc *Services

	// closers releases the underlying generated clients when dialed.
	closers []func() error
}

// New constructs a Client from explicit services. Use Dial to connect to the
// real API; New exists so tests can inject fakes.
func New(cfg *Config, svc *Services) (*Client, error) {
	if cfg == nil || cfg.Project == "" {
		return nil, errors.New("discovery: project is required")
	}
	if cfg.Location == "" {
		return nil, errors.New("discovery: location is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = "default_collection"
	}
	if svc == nil {
		svc = &Services{}
	}
	return &Client{cfg: cfg, svc: svc}, nil
}

// Dial constructs a Client backed by the real generated service clients.
// Credentials are resolved via Application Default Credentials; extra
// option.ClientOption values are passed through to every client.
func Dial(ctx context.Context, cfg *Config, opts ...option.ClientOption) (*Client, error) {
	c, err := New(cfg, nil)
	if err != nil {
		return nil, err
	}

	if ep := c.endpoint(); ep != "" {
		opts = append([]option.ClientOption{option.WithEndpoint(ep)}, opts...)
	}

	ds, err := discoveryengine.NewDataStoreClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("discovery: create data store client: %w", err)
	}
	c.closers = append(c.closers, ds.Close)

	doc, err := discoveryengine.NewDocumentClient(ctx, opts...)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("discovery: create document client: %w", err)
	}
	c.closers = append(c.closers, doc.Close)

	eng, err := discoveryengine.NewEngineClient(ctx, opts...)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("discovery: create engine client: %w", err)
	}
	c.closers = append(c.closers, eng.Close)

	chk, err := discoveryengine.NewChunkClient(ctx, opts...)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("discovery: create chunk client: %w", err)
	}
	c.closers = append(c.closers, chk.Close)

	srch, err := discoveryengine.NewSearchClient(ctx, opts...)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("discovery: create search client: %w", err)
	}
	c.closers = append(c.closers, srch.Close)

	c.svc = &Services{
		DataStores: &dataStoreClient{c: ds},
		Documents:  &documentClient{c: doc},
		Engines:    &engineClient{c: eng},
		Chunks:     &chunkClient{c: chk},
		Search:     &searchClient{c: srch},
	}
	return c, nil
}

// Close releases the underlying generated clients. Safe on a Client built
// with New (no-op).
func (c *Client) Close() error {
	var firstErr error
	for _, cl := range c.closers {
		if err := cl(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

// endpoint returns the API endpoint for the configured location.
// The global location uses the library default.
func (c *Client) endpoint() string {
	if c.cfg.Endpoint != "" {
		return c.cfg.Endpoint
	}
	if c.cfg.Location == "global" {
		return ""
	}
	return fmt.Sprintf("%s-discoveryengine.googleapis.com:443", c.cfg.Location)
}

// ---------------------------------------------------------------------------
// Adapters from the generated clients to the capability interfaces.
// The generated methods take variadic gax call options and return concrete
// operation/iterator types, so each needs a one-method shim.
// ---------------------------------------------------------------------------

type dataStoreClient struct {
	c *discoveryengine.DataStoreClient
}

func (a *dataStoreClient) CreateDataStore(ctx context.Context, req *discoveryenginepb.CreateDataStoreRequest) (Operation, error) {
	op, err := a.c.CreateDataStore(ctx, req)
	if err != nil {
		return nil, err
	}
	return op, nil
}

type documentClient struct {
	c *discoveryengine.DocumentClient
}

func (a *documentClient) ImportDocuments(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (Operation, error) {
	op, err := a.c.ImportDocuments(ctx, req)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (a *documentClient) GetDocument(ctx context.Context, req *discoveryenginepb.GetDocumentRequest) (*discoveryenginepb.Document, error) {
	return a.c.GetDocument(ctx, req)
}

func (a *documentClient) ListDocuments(ctx context.Context, req *discoveryenginepb.ListDocumentsRequest) ([]*discoveryenginepb.Document, error) {
	it := a.c.ListDocuments(ctx, req)
	var docs []*discoveryenginepb.Document
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}

func (a *documentClient) GetProcessedDocument(ctx context.Context, req *discoveryenginepb.GetProcessedDocumentRequest) (*discoveryenginepb.ProcessedDocument, error) {
	return a.c.GetProcessedDocument(ctx, req)
}

type engineClient struct {
	c *discoveryengine.EngineClient
}

func (a *engineClient) CreateEngine(ctx context.Context, req *discoveryenginepb.CreateEngineRequest) (EngineOperation, error) {
	op, err := a.c.CreateEngine(ctx, req)
	if err != nil {
		return nil, err
	}
	return op, nil
}

type chunkClient struct {
	c *discoveryengine.ChunkClient
}

func (a *chunkClient) GetChunk(ctx context.Context, req *discoveryenginepb.GetChunkRequest) (*discoveryenginepb.Chunk, error) {
	return a.c.GetChunk(ctx, req)
}

func (a *chunkClient) ListChunks(ctx context.Context, req *discoveryenginepb.ListChunksRequest) ([]*discoveryenginepb.Chunk, error) {
	it := a.c.ListChunks(ctx, req)
	var chunks []*discoveryenginepb.Chunk
	for {
		chunk, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return chunks, nil
		}
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
}

type searchClient struct {
	c *discoveryengine.SearchClient
}

// defaultSearchPageSize caps result collection when the request does not set
// an explicit page size, since the generated iterator pages through the
// entire result set otherwise.
const defaultSearchPageSize = 10

func (a *searchClient) Search(ctx context.Context, req *discoveryenginepb.SearchRequest) ([]*discoveryenginepb.SearchResponse_SearchResult, error) {
	limit := int(req.GetPageSize())
	if limit <= 0 {
		limit = defaultSearchPageSize
	}

	it := a.c.Search(ctx, req)
	results := make([]*discoveryenginepb.SearchResponse_SearchResult, 0, limit)
	for len(results) < limit {
		res, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
