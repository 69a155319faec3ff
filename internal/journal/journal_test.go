package journal

import (
	"context"
	"testing"
)

// openTestJournal opens an in-memory SQLiteJournal for use in tests.
func openTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory journal: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func Test_Journal_RecordAndRecent(t *testing.T) {
	t.Parallel()
	j := openTestJournal(t)
	ctx := context.Background()

	if err := j.Record(ctx, KindDataStoreCreate, "ds-1", "operations/op-1"); err != nil {
		t.Fatalf("record datastore: %v", err)
	}
	if err := j.Record(ctx, KindImport, "ds-1", "operations/op-2"); err != nil {
		t.Fatalf("record import: %v", err)
	}

	entries, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Kind != KindImport || entries[0].OperationName != "operations/op-2" {
		t.Errorf("entry[0]: want import/op-2, got %s/%s", entries[0].Kind, entries[0].OperationName)
	}
	if entries[1].Kind != KindDataStoreCreate || entries[1].Resource != "ds-1" {
		t.Errorf("entry[1]: want datastore_create/ds-1, got %s/%s", entries[1].Kind, entries[1].Resource)
	}
}

func Test_Journal_RecentLimitRespected(t *testing.T) {
	t.Parallel()
	j := openTestJournal(t)
	ctx := context.Background()

	for range 6 {
		if err := j.Record(ctx, KindImport, "ds-b", ""); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	entries, err := j.Recent(ctx, 4)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("want 4 entries, got %d", len(entries))
	}
}

func Test_Journal_EmptyOperationName(t *testing.T) {
	t.Parallel()
	j := openTestJournal(t)
	ctx := context.Background()

	// Engine creation blocks until done, so no operation name is kept.
	if err := j.Record(ctx, KindEngineCreate, "eng-1", ""); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := j.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 || entries[0].OperationName != "" {
		t.Errorf("want single entry with empty operation name, got %+v", entries)
	}
}

func Test_Journal_EmptyReturnsNil(t *testing.T) {
	t.Parallel()
	j := openTestJournal(t)

	entries, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent empty: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("want 0 entries, got %d", len(entries))
	}
}
