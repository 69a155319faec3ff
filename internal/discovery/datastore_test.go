package discovery

import (
	"context"
	"errors"
	"testing"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

func TestCreateDataStore_RequestShape(t *testing.T) {
	t.Parallel()
	stores := &fakeDataStores{op: &fakeOp{name: "operations/create-ds-1"}}
	c := newTestClient(t, &Services{DataStores: stores})

	proc, err := c.BuildProcessingConfig("my-store", DefaultProcessingOptions())
	if err != nil {
		t.Fatalf("build processing config: %v", err)
	}

	op, err := c.CreateDataStore(context.Background(), "my-store", proc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Name() != "operations/create-ds-1" {
		t.Errorf("operation handle not passed through: %q", op.Name())
	}

	req := stores.lastReq
	if want := "projects/test-project/locations/global/collections/default_collection"; req.GetParent() != want {
		t.Errorf("parent:\n got %q\nwant %q", req.GetParent(), want)
	}
	if req.GetDataStoreId() != "my-store" {
		t.Errorf("data store id: %q", req.GetDataStoreId())
	}

	ds := req.GetDataStore()
	if ds.GetDisplayName() != "my-store" {
		t.Errorf("display name: %q", ds.GetDisplayName())
	}
	if ds.GetIndustryVertical() != discoveryenginepb.IndustryVertical_GENERIC {
		t.Errorf("industry vertical: %v", ds.GetIndustryVertical())
	}
	if got := ds.GetSolutionTypes(); len(got) != 1 || got[0] != discoveryenginepb.SolutionType_SOLUTION_TYPE_SEARCH {
		t.Errorf("solution types: %v", got)
	}
	if ds.GetContentConfig() != discoveryenginepb.DataStore_CONTENT_REQUIRED {
		t.Errorf("content config: %v", ds.GetContentConfig())
	}
	if ds.GetDocumentProcessingConfig() == nil {
		t.Error("processing config not attached")
	}
	if ds.GetStartingSchema() != nil {
		t.Error("starting schema attached although none was given")
	}
}

func TestCreateDataStore_RequiresID(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, &Services{DataStores: &fakeDataStores{}})

	_, err := c.CreateDataStore(context.Background(), "", nil, nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("want ErrInvalidConfig, got %v", err)
	}
}

func TestCreateDataStore_RemoteErrorPropagates(t *testing.T) {
	t.Parallel()
	stores := &fakeDataStores{err: errors.New("permission denied")}
	c := newTestClient(t, &Services{DataStores: stores})

	_, err := c.CreateDataStore(context.Background(), "my-store", nil, nil)
	if err == nil {
		t.Fatal("want error, got nil")
	}
}
