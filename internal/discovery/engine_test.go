package discovery

import (
	"context"
	"errors"
	"testing"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

func TestCreateEngine_WaitsForCompletion(t *testing.T) {
	t.Parallel()
	op := &fakeEngineOp{engine: &discoveryenginepb.Engine{DisplayName: "My Engine"}}
	engines := &fakeEngines{op: op}
	c := newTestClient(t, &Services{Engines: engines})

	engine, err := c.CreateEngine(context.Background(), "eng-1", "My Engine", []string{"ds-1", "ds-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !op.waited {
		t.Error("engine creation returned without waiting for the operation")
	}
	if engine.GetDisplayName() != "My Engine" {
		t.Errorf("engine not taken from Wait result: %q", engine.GetDisplayName())
	}

	req := engines.lastReq
	if req.GetEngineId() != "eng-1" {
		t.Errorf("engine id: %q", req.GetEngineId())
	}
	eng := req.GetEngine()
	if got := eng.GetDataStoreIds(); len(got) != 2 || got[0] != "ds-1" || got[1] != "ds-2" {
		t.Errorf("data store ids: %v", got)
	}
	if eng.GetSolutionType() != discoveryenginepb.SolutionType_SOLUTION_TYPE_SEARCH {
		t.Errorf("solution type: %v", eng.GetSolutionType())
	}

	sec := eng.GetSearchEngineConfig()
	if sec.GetSearchTier() != discoveryenginepb.SearchTier_SEARCH_TIER_ENTERPRISE {
		t.Errorf("search tier: %v", sec.GetSearchTier())
	}
	if got := sec.GetSearchAddOns(); len(got) != 1 || got[0] != discoveryenginepb.SearchAddOn_SEARCH_ADD_ON_LLM {
		t.Errorf("search add-ons: %v", got)
	}
}

func TestCreateEngine_DisplayNameDefaultsToID(t *testing.T) {
	t.Parallel()
	engines := &fakeEngines{op: &fakeEngineOp{engine: &discoveryenginepb.Engine{}}}
	c := newTestClient(t, &Services{Engines: engines})

	if _, err := c.CreateEngine(context.Background(), "eng-1", "", []string{"ds-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := engines.lastReq.GetEngine().GetDisplayName(); got != "eng-1" {
		t.Errorf("display name: %q", got)
	}
}

func TestCreateEngine_Validation(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, &Services{Engines: &fakeEngines{}})

	if _, err := c.CreateEngine(context.Background(), "", "name", []string{"ds"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("missing engine id: want ErrInvalidConfig, got %v", err)
	}
	if _, err := c.CreateEngine(context.Background(), "eng", "name", nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("missing data stores: want ErrInvalidConfig, got %v", err)
	}
}

func TestCreateEngine_WaitErrorPropagates(t *testing.T) {
	t.Parallel()
	engines := &fakeEngines{op: &fakeEngineOp{waitErr: errors.New("deadline exceeded")}}
	c := newTestClient(t, &Services{Engines: engines})

	_, err := c.CreateEngine(context.Background(), "eng-1", "", []string{"ds-1"})
	if err == nil {
		t.Fatal("want error, got nil")
	}
}
