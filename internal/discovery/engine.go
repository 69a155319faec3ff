package discovery

import (
	"context"
	"fmt"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

// CreateEngine creates a search engine over the given data stores and blocks
// until the remote operation completes, returning the final Engine. The
// engine is always created at the enterprise search tier with the LLM add-on
// so extractive answers and chunk retrieval are available.
//
// This is the one call in this layer that waits on a long-running operation.
func (c *Client) CreateEngine(ctx context.Context, engineID, displayName string, dataStoreIDs []string) (*discoveryenginepb.Engine, error) {
	if engineID == "" {
		return nil, fmt.Errorf("%w: engine ID is required", ErrInvalidConfig)
	}
	if len(dataStoreIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one data store ID is required", ErrInvalidConfig)
	}
	if displayName == "" {
		displayName = engineID
	}

	req := &discoveryenginepb.CreateEngineRequest{
		Parent: c.CollectionPath(),
		Engine: &discoveryenginepb.Engine{
			DisplayName:  displayName,
			SolutionType: discoveryenginepb.SolutionType_SOLUTION_TYPE_SEARCH,
			DataStoreIds: dataStoreIDs,
			EngineConfig: &discoveryenginepb.Engine_SearchEngineConfig_{
				SearchEngineConfig: &discoveryenginepb.Engine_SearchEngineConfig{
					SearchTier:   discoveryenginepb.SearchTier_SEARCH_TIER_ENTERPRISE,
					SearchAddOns: []discoveryenginepb.SearchAddOn{discoveryenginepb.SearchAddOn_SEARCH_ADD_ON_LLM},
				},
			},
		},
		EngineId: engineID,
	}

	op, err := c.svc.Engines.CreateEngine(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("discovery: create engine %q: %w", engineID, err)
	}

	engine, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery: wait for engine %q: %w", engineID, err)
	}
	return engine, nil
}
