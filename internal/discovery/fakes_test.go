package discovery

import (
	"context"
	"testing"
	"time"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ---------------------------------------------------------------------------
// Fakes for the five service capabilities. Each fake records the last request
// it saw so tests can assert on the exact payload shape.
// ---------------------------------------------------------------------------

// fakeOp is a minimal Operation handle.
type fakeOp struct {
	name string
	done bool
}

func (f *fakeOp) Name() string { return f.name }
func (f *fakeOp) Done() bool   { return f.done }

// fakeEngineOp is an EngineOperation whose Wait returns configurable values.
type fakeEngineOp struct {
	fakeOp
	engine  *discoveryenginepb.Engine
	waitErr error
	// waited records that the blocking wait actually happened.
	waited bool
}

func (f *fakeEngineOp) Wait(_ context.Context, _ ...gax.CallOption) (*discoveryenginepb.Engine, error) {
	f.waited = true
	return f.engine, f.waitErr
}

type fakeDataStores struct {
	lastReq *discoveryenginepb.CreateDataStoreRequest
	op      Operation
	err     error
}

func (f *fakeDataStores) CreateDataStore(_ context.Context, req *discoveryenginepb.CreateDataStoreRequest) (Operation, error) {
	f.lastReq = req
	return f.op, f.err
}

type fakeDocuments struct {
	lastImportReq    *discoveryenginepb.ImportDocumentsRequest
	lastGetReq       *discoveryenginepb.GetDocumentRequest
	lastListReq      *discoveryenginepb.ListDocumentsRequest
	lastProcessedReq *discoveryenginepb.GetProcessedDocumentRequest

	importOp  Operation
	doc       *discoveryenginepb.Document
	docs      []*discoveryenginepb.Document
	processed *discoveryenginepb.ProcessedDocument
	err       error
}

func (f *fakeDocuments) ImportDocuments(_ context.Context, req *discoveryenginepb.ImportDocumentsRequest) (Operation, error) {
	f.lastImportReq = req
	return f.importOp, f.err
}

func (f *fakeDocuments) GetDocument(_ context.Context, req *discoveryenginepb.GetDocumentRequest) (*discoveryenginepb.Document, error) {
	f.lastGetReq = req
	return f.doc, f.err
}

func (f *fakeDocuments) ListDocuments(_ context.Context, req *discoveryenginepb.ListDocumentsRequest) ([]*discoveryenginepb.Document, error) {
	f.lastListReq = req
	return f.docs, f.err
}

func (f *fakeDocuments) GetProcessedDocument(_ context.Context, req *discoveryenginepb.GetProcessedDocumentRequest) (*discoveryenginepb.ProcessedDocument, error) {
	f.lastProcessedReq = req
	return f.processed, f.err
}

type fakeEngines struct {
	lastReq *discoveryenginepb.CreateEngineRequest
	op      EngineOperation
	err     error
}

func (f *fakeEngines) CreateEngine(_ context.Context, req *discoveryenginepb.CreateEngineRequest) (EngineOperation, error) {
	f.lastReq = req
	return f.op, f.err
}

type fakeChunks struct {
	lastGetReq  *discoveryenginepb.GetChunkRequest
	lastListReq *discoveryenginepb.ListChunksRequest
	chunk       *discoveryenginepb.Chunk
	chunks      []*discoveryenginepb.Chunk
	err         error
}

func (f *fakeChunks) GetChunk(_ context.Context, req *discoveryenginepb.GetChunkRequest) (*discoveryenginepb.Chunk, error) {
	f.lastGetReq = req
	return f.chunk, f.err
}

func (f *fakeChunks) ListChunks(_ context.Context, req *discoveryenginepb.ListChunksRequest) ([]*discoveryenginepb.Chunk, error) {
	f.lastListReq = req
	return f.chunks, f.err
}

type fakeSearch struct {
	lastReq *discoveryenginepb.SearchRequest
	results []*discoveryenginepb.SearchResponse_SearchResult
	err     error
}

func (f *fakeSearch) Search(_ context.Context, req *discoveryenginepb.SearchRequest) ([]*discoveryenginepb.SearchResponse_SearchResult, error) {
	f.lastReq = req
	return f.results, f.err
}

// timestampFor parses an RFC3339 instant into a protobuf timestamp.
func timestampFor(t *testing.T, rfc3339 string) *timestamppb.Timestamp {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		t.Fatalf("parse %q: %v", rfc3339, err)
	}
	return timestamppb.New(ts)
}

// newTestClient builds a Client over the given fakes with a fixed identity.
// Nil fields are left nil — tests only wire the capability they exercise.
func newTestClient(t *testing.T, svc *Services) *Client {
	t.Helper()
	c, err := New(&Config{
		Project:    "test-project",
		Location:   "global",
		Collection: "default_collection",
	}, svc)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}
