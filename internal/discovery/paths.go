package discovery

import "fmt"

// defaultBranch is the branch every document operation targets. Discovery
// Engine currently exposes a single branch per data store.
const defaultBranch = "default_branch"

// defaultServingConfig is the serving config every search request targets.
const defaultServingConfig = "default_serving_config"

// CollectionPath returns the collection resource path that parents data
// store and engine creation requests.
func (c *Client) CollectionPath() string {
	return fmt.Sprintf("projects/%s/locations/%s/collections/%s",
		c.cfg.Project, c.cfg.Location, c.cfg.Collection)
}

// DataStorePath returns the full resource path of a data store.
func (c *Client) DataStorePath(dataStoreID string) string {
	return fmt.Sprintf("%s/dataStores/%s", c.CollectionPath(), dataStoreID)
}

// BranchPath returns the default-branch path that parents document import,
// list, and chunk operations. Note: the service's branch paths are not
// collection-scoped, matching the generated clients' path helpers.
func (c *Client) BranchPath(dataStoreID string) string {
	return fmt.Sprintf("projects/%s/locations/%s/dataStores/%s/branches/%s",
		c.cfg.Project, c.cfg.Location, dataStoreID, defaultBranch)
}

// DocumentPath returns the full resource path of a document in the data
// store's default branch.
func (c *Client) DocumentPath(dataStoreID, documentID string) string {
	return fmt.Sprintf("%s/documents/%s", c.BranchPath(dataStoreID), documentID)
}

// ChunkPath returns the full resource path of a chunk of a document.
func (c *Client) ChunkPath(dataStoreID, documentID, chunkID string) string {
	return fmt.Sprintf("%s/chunks/%s", c.DocumentPath(dataStoreID, documentID), chunkID)
}

// ProcessingConfigPath returns the documentProcessingConfig singleton path
// for a data store.
func (c *Client) ProcessingConfigPath(dataStoreID string) string {
	return fmt.Sprintf("%s/documentProcessingConfig", c.DataStorePath(dataStoreID))
}

// ServingConfigPath returns the default serving config path used by search
// requests against a data store.
func (c *Client) ServingConfigPath(dataStoreID string) string {
	return fmt.Sprintf("%s/servingConfigs/%s", c.DataStorePath(dataStoreID), defaultServingConfig)
}
