package discovery

import (
	"context"
	"fmt"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

// Fixed data schema tags the service expects per import source.
const (
	gcsDataSchema      = "document"
	bigqueryDataSchema = "custom"
)

// ImportSource selects where a bulk import reads from. Exactly one of the
// GCS URI or the BigQuery dataset+table pair must be set.
type ImportSource struct {
	// GCSURI is a Cloud Storage URI of JSONL document metadata
	// (e.g. "gs://bucket/documents.jsonl").
	GCSURI string

	// BigQueryDataset and BigQueryTable identify a table in the client's
	// project containing custom-schema documents.
	BigQueryDataset string
	BigQueryTable   string
}

// validate enforces the mutual exclusivity of the two source kinds.
func (s ImportSource) validate() error {
	hasGCS := s.GCSURI != ""
	hasBQ := s.BigQueryDataset != "" || s.BigQueryTable != ""

	switch {
	case hasGCS && hasBQ:
		return fmt.Errorf("%w: a GCS URI and a BigQuery source are mutually exclusive", ErrInvalidConfig)
	case !hasGCS && !hasBQ:
		return fmt.Errorf("%w: either a GCS URI or a BigQuery dataset and table is required", ErrInvalidConfig)
	case hasBQ && (s.BigQueryDataset == "" || s.BigQueryTable == ""):
		return fmt.Errorf("%w: a BigQuery source requires both dataset and table", ErrInvalidConfig)
	}
	return nil
}

// ImportDocuments submits a bulk import job into the data store's default
// branch. Reconciliation is always incremental: added and changed documents
// are merged, documents missing from the batch are never deleted.
//
// The returned operation handle is not inspected; the caller is responsible
// for polling completion.
func (c *Client) ImportDocuments(ctx context.Context, dataStoreID string, src ImportSource) (Operation, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}

	req := &discoveryenginepb.ImportDocumentsRequest{
		Parent:             c.BranchPath(dataStoreID),
		ReconciliationMode: discoveryenginepb.ImportDocumentsRequest_INCREMENTAL,
	}

	if src.GCSURI != "" {
		req.Source = &discoveryenginepb.ImportDocumentsRequest_GcsSource{
			GcsSource: &discoveryenginepb.GcsSource{
				InputUris:  []string{src.GCSURI},
				DataSchema: gcsDataSchema,
			},
		}
	} else {
		req.Source = &discoveryenginepb.ImportDocumentsRequest_BigquerySource{
			BigquerySource: &discoveryenginepb.BigQuerySource{
				ProjectId:  c.cfg.Project,
				DatasetId:  src.BigQueryDataset,
				TableId:    src.BigQueryTable,
				DataSchema: bigqueryDataSchema,
			},
		}
	}

	op, err := c.svc.Documents.ImportDocuments(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("discovery: import documents into %q: %w", dataStoreID, err)
	}
	return op, nil
}
