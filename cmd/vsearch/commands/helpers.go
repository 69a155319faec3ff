package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/vertexkit/vsearch/internal/discovery"
	"github.com/vertexkit/vsearch/internal/journal"
)

// dialClient dials a discovery client from environment configuration.
// GOOGLE_CLOUD_PROJECT is required; VSEARCH_LOCATION defaults to "global".
// Callers own the returned client and must Close it.
func dialClient(ctx context.Context) (*discovery.Client, error) {
	project := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if project == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT is required (set it or add google.project to the config file)")
	}
	location := os.Getenv("VSEARCH_LOCATION")
	if location == "" {
		location = "global"
	}

	client, err := discovery.Dial(ctx, &discovery.Config{
		Project:    project,
		Location:   location,
		Collection: os.Getenv("VSEARCH_COLLECTION"),
		Endpoint:   os.Getenv("VSEARCH_ENDPOINT"),
	})
	if err != nil {
		return nil, fmt.Errorf("dial discovery: %w", err)
	}
	return client, nil
}

// openJournal opens the operations journal, honouring VSEARCH_JOURNAL_DB.
// Returns a nil journal when journalling is disabled or unavailable; the
// CLI treats the journal as best-effort and never fails a command over it.
func openJournal(log *slog.Logger) (journal.OperationJournal, func()) {
	dbPath := os.Getenv("VSEARCH_JOURNAL_DB")
	if dbPath == "disabled" {
		log.Debug("journal: disabled via VSEARCH_JOURNAL_DB=disabled")
		return nil, func() {}
	}
	if dbPath == "" {
		var err error
		dbPath, err = journal.DefaultDBPath()
		if err != nil {
			log.Warn("journal: could not resolve default DB path, disabling", slog.Any("error", err))
			return nil, func() {}
		}
	}

	j, err := journal.Open(dbPath)
	if err != nil {
		log.Warn("journal: failed to open, disabling", slog.Any("error", err))
		return nil, func() {}
	}
	return j, func() { _ = j.Close() }
}

// recordOp writes an entry to the journal if one is open. Failures are
// logged, never returned.
func recordOp(ctx context.Context, log *slog.Logger, j journal.OperationJournal, kind journal.Kind, resource, opName string) {
	if j == nil {
		return
	}
	if err := j.Record(ctx, kind, resource, opName); err != nil {
		log.Warn("journal: record failed", slog.Any("error", err))
	}
}

// envOrDefault returns the environment variable value or a fallback.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt returns the environment variable parsed as an int, or a fallback
// when unset or malformed.
func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// envBool returns the environment variable parsed as a bool, or a fallback
// when unset or malformed.
func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// printProto writes the protojson rendering of m to stdout with stable
// multiline indentation.
func printProto(m proto.Message) error {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	fmt.Println(string(b))
	return nil
}
