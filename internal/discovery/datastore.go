package discovery

import (
	"context"
	"fmt"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

// CreateDataStore submits a data store creation request. The data store is
// created with the generic industry vertical, the search solution type, and
// a content-required policy; processing and schema are optional and passed
// through unmodified.
//
// The returned operation handle is not polled — data store provisioning can
// take several minutes and the caller decides whether to wait.
func (c *Client) CreateDataStore(ctx context.Context, dataStoreID string, processing *discoveryenginepb.DocumentProcessingConfig, schema *discoveryenginepb.Schema) (Operation, error) {
	if dataStoreID == "" {
		return nil, fmt.Errorf("%w: data store ID is required", ErrInvalidConfig)
	}

	req := &discoveryenginepb.CreateDataStoreRequest{
		Parent: c.CollectionPath(),
		DataStore: &discoveryenginepb.DataStore{
			Name:                     c.DataStorePath(dataStoreID),
			DisplayName:              dataStoreID,
			IndustryVertical:         discoveryenginepb.IndustryVertical_GENERIC,
			SolutionTypes:            []discoveryenginepb.SolutionType{discoveryenginepb.SolutionType_SOLUTION_TYPE_SEARCH},
			ContentConfig:            discoveryenginepb.DataStore_CONTENT_REQUIRED,
			DocumentProcessingConfig: processing,
			StartingSchema:           schema,
		},
		DataStoreId: dataStoreID,
	}

	op, err := c.svc.DataStores.CreateDataStore(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("discovery: create data store %q: %w", dataStoreID, err)
	}
	return op, nil
}
