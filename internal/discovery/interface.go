// Package discovery is a thin helper layer over the Vertex AI Search
// (Discovery Engine) API. It validates caller-supplied options, assembles
// request payloads field-for-field per the service contract, and delegates
// execution to the generated client stubs. All parsing, chunking, indexing,
// and ranking happens inside the remote service — this package never
// re-implements any of it.
//
// Each remote capability is modelled as a narrow interface so the builder
// logic can be tested against fakes without contacting the real service.
// The generated clients are adapted to these interfaces in clients.go.
package discovery

import (
	"context"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"github.com/googleapis/gax-go/v2"
)

// Operation is the minimal surface of a Discovery Engine long-running
// operation handle. Callers receive it uninspected and are responsible for
// polling completion themselves (e.g. via gcloud); this layer never polls.
type Operation interface {
	// Name returns the fully qualified operation resource name.
	Name() string

	// Done reports whether the operation has completed.
	Done() bool
}

// EngineOperation extends Operation with the blocking wait used by engine
// creation — the one place this layer suspends on a remote operation.
type EngineOperation interface {
	Operation

	// Wait blocks until the operation completes and returns the final Engine.
	Wait(ctx context.Context, opts ...gax.CallOption) (*discoveryenginepb.Engine, error)
}

// DataStoreService is the capability interface for data store administration.
// *discoveryengine.DataStoreClient is adapted to it in clients.go.
// Implementations must be safe to call from multiple goroutines.
type DataStoreService interface {
	// CreateDataStore submits a data store creation request and returns the
	// long-running operation handle without waiting for completion.
	CreateDataStore(ctx context.Context, req *discoveryenginepb.CreateDataStoreRequest) (Operation, error)
}

// DocumentService is the capability interface for document import and
// retrieval within a data store branch.
// Implementations must be safe to call from multiple goroutines.
type DocumentService interface {
	// ImportDocuments submits a bulk import job and returns the operation
	// handle without waiting for completion.
	ImportDocuments(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (Operation, error)

	// GetDocument fetches a single document by resource name.
	GetDocument(ctx context.Context, req *discoveryenginepb.GetDocumentRequest) (*discoveryenginepb.Document, error)

	// ListDocuments returns all documents under the given branch parent.
	ListDocuments(ctx context.Context, req *discoveryenginepb.ListDocumentsRequest) ([]*discoveryenginepb.Document, error)

	// GetProcessedDocument fetches a processed rendition (parsed, chunked,
	// or PNG-converted) of a document.
	GetProcessedDocument(ctx context.Context, req *discoveryenginepb.GetProcessedDocumentRequest) (*discoveryenginepb.ProcessedDocument, error)
}

// EngineService is the capability interface for search engine administration.
// Implementations must be safe to call from multiple goroutines.
type EngineService interface {
	// CreateEngine submits an engine creation request and returns a handle
	// that supports blocking until the remote operation resolves.
	CreateEngine(ctx context.Context, req *discoveryenginepb.CreateEngineRequest) (EngineOperation, error)
}

// ChunkService is the capability interface for retrieving chunks produced by
// layout-aware parsing.
// Implementations must be safe to call from multiple goroutines.
type ChunkService interface {
	// GetChunk fetches a single chunk by resource name.
	GetChunk(ctx context.Context, req *discoveryenginepb.GetChunkRequest) (*discoveryenginepb.Chunk, error)

	// ListChunks returns all chunks under the given document parent.
	ListChunks(ctx context.Context, req *discoveryenginepb.ListChunksRequest) ([]*discoveryenginepb.Chunk, error)
}

// SearchService is the capability interface for executing search requests.
// Implementations must be safe to call from multiple goroutines.
type SearchService interface {
	// Search executes the request and returns one page of results.
	Search(ctx context.Context, req *discoveryenginepb.SearchRequest) ([]*discoveryenginepb.SearchResponse_SearchResult, error)
}

// Services bundles the five remote capabilities injected into a Client.
// Production code fills it via Dial; tests inject fakes.
type Services struct {
	// DataStores handles data store creation.
	DataStores DataStoreService
	// Documents handles import and document retrieval.
	Documents DocumentService
	// Engines handles engine creation.
	Engines EngineService
	// Chunks handles chunk retrieval.
	Chunks ChunkService
	// Search executes assembled search requests.
	Search SearchService
}
