package discovery

import (
	"context"
	"fmt"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

// ProcessedDocumentType selects which rendition GetProcessedDocument fetches.
type ProcessedDocumentType string

const (
	// ProcessedParsed is the parsed document rendition.
	ProcessedParsed ProcessedDocumentType = "parsed"
	// ProcessedChunked is the chunked document rendition.
	ProcessedChunked ProcessedDocumentType = "chunked"
	// ProcessedPNG is the PNG-converted page rendition.
	ProcessedPNG ProcessedDocumentType = "png"
)

// ListDocuments returns all documents in the data store's default branch.
func (c *Client) ListDocuments(ctx context.Context, dataStoreID string) ([]*discoveryenginepb.Document, error) {
	docs, err := c.svc.Documents.ListDocuments(ctx, &discoveryenginepb.ListDocumentsRequest{
		Parent: c.BranchPath(dataStoreID),
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: list documents in %q: %w", dataStoreID, err)
	}
	return docs, nil
}

// GetDocument fetches a single document by its full resource name.
func (c *Client) GetDocument(ctx context.Context, name string) (*discoveryenginepb.Document, error) {
	doc, err := c.svc.Documents.GetDocument(ctx, &discoveryenginepb.GetDocumentRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("discovery: get document %q: %w", name, err)
	}
	return doc, nil
}

// GetProcessedDocument fetches a processed rendition of a document.
// The response format is always JSON; kind selects the rendition.
func (c *Client) GetProcessedDocument(ctx context.Context, name string, kind ProcessedDocumentType) (*discoveryenginepb.ProcessedDocument, error) {
	var pbType discoveryenginepb.GetProcessedDocumentRequest_ProcessedDocumentType
	switch kind {
	case ProcessedParsed:
		pbType = discoveryenginepb.GetProcessedDocumentRequest_PARSED_DOCUMENT
	case ProcessedChunked:
		pbType = discoveryenginepb.GetProcessedDocumentRequest_CHUNKED_DOCUMENT
	case ProcessedPNG:
		pbType = discoveryenginepb.GetProcessedDocumentRequest_PNG_CONVERTED_DOCUMENT
	default:
		return nil, fmt.Errorf("%w: unknown processed document type %q — valid values: parsed, chunked, png",
			ErrInvalidConfig, kind)
	}

	doc, err := c.svc.Documents.GetProcessedDocument(ctx, &discoveryenginepb.GetProcessedDocumentRequest{
		Name:                    name,
		ProcessedDocumentType:   pbType,
		ProcessedDocumentFormat: discoveryenginepb.GetProcessedDocumentRequest_JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: get processed document %q: %w", name, err)
	}
	return doc, nil
}
