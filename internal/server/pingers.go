package server

import (
	"context"
	"fmt"

	"github.com/vertexkit/vsearch/internal/discovery"
)

// DiscoveryPinger probes Discovery Engine by issuing a minimal one-result
// search against a known data store. It satisfies the Pinger interface and
// is used by GET /api/ready.
type DiscoveryPinger struct {
	// client executes the probe search.
	client searcher
	// dataStoreID is the data store the probe runs against.
	dataStoreID string
}

// NewDiscoveryPinger constructs a DiscoveryPinger probing the given data store.
func NewDiscoveryPinger(client searcher, dataStoreID string) *DiscoveryPinger {
	return &DiscoveryPinger{client: client, dataStoreID: dataStoreID}
}

// Name returns the dependency label used in readiness responses.
func (p *DiscoveryPinger) Name() string { return "discovery" }

// Ping issues a one-result search. The query text is irrelevant; any
// non-error response means the service is reachable and the data store
// exists. The probe consumes a search request against quota, which is why
// readiness probes carry a short timeout and are not rate-exempt.
func (p *DiscoveryPinger) Ping(ctx context.Context) error {
	_, err := p.client.Search(ctx, p.dataStoreID, &discovery.SearchOptions{
		Query:    "ping",
		PageSize: 1,
	})
	if err != nil {
		return fmt.Errorf("search probe failed: %w", err)
	}
	return nil
}

// journalPinger is the subset of the operations journal used for readiness.
type journalPinger interface {
	// Ping checks the journal database is reachable.
	Ping(ctx context.Context) error
}

// JournalPinger probes the local operations journal database.
// It satisfies the Pinger interface and is used by GET /api/ready.
type JournalPinger struct {
	// journal is the journal to probe.
	journal journalPinger
}

// NewJournalPinger constructs a JournalPinger for the given journal.
func NewJournalPinger(j journalPinger) *JournalPinger {
	return &JournalPinger{journal: j}
}

// Name returns the dependency label used in readiness responses.
func (p *JournalPinger) Name() string { return "journal" }

// Ping checks the journal database connection.
func (p *JournalPinger) Ping(ctx context.Context) error {
	if err := p.journal.Ping(ctx); err != nil {
		return fmt.Errorf("journal probe failed: %w", err)
	}
	return nil
}
