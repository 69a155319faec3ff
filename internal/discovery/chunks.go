package discovery

import (
	"context"
	"fmt"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

// GetChunk fetches a single chunk by its full resource name.
func (c *Client) GetChunk(ctx context.Context, name string) (*discoveryenginepb.Chunk, error) {
	chunk, err := c.svc.Chunks.GetChunk(ctx, &discoveryenginepb.GetChunkRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("discovery: get chunk %q: %w", name, err)
	}
	return chunk, nil
}

// ListChunks returns all chunks of the document with the given full resource
// name. Chunks exist only for data stores configured with layout parsing and
// chunking enabled.
func (c *Client) ListChunks(ctx context.Context, documentName string) ([]*discoveryenginepb.Chunk, error) {
	chunks, err := c.svc.Chunks.ListChunks(ctx, &discoveryenginepb.ListChunksRequest{Parent: documentName})
	if err != nil {
		return nil, fmt.Errorf("discovery: list chunks of %q: %w", documentName, err)
	}
	return chunks, nil
}
