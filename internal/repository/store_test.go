package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

const storedNetwork = `name:%s
station:CEN:Central
station:MKT:Market
station:STA:Stadium
station:AIR:Airport
line:Red:0:0:MKT-CEN
line:Ring:1:0:CEN-STA-MKT
line:Shuttle:0:1:STA-AIR
`

func testNetwork(t *testing.T, name string) *network.Network {
	t.Helper()
	n, err := network.Parse(strings.NewReader(strings.Replace(storedNetwork, "%s", name, 1)))
	if err != nil {
		t.Fatalf("failed to parse network: %v", err)
	}
	return n
}

// exerciseStore runs the same checks against any NetworkStore
func exerciseStore(t *testing.T, store NetworkStore, name string) {
	t.Helper()
	ctx := context.Background()

	n := testNetwork(t, name)
	if err := store.SaveNetwork(ctx, n); err != nil {
		t.Fatalf("SaveNetwork: %v", err)
	}

	loaded, err := store.LoadNetwork(ctx, name)
	if err != nil {
		t.Fatalf("LoadNetwork: %v", err)
	}
	if loaded.String() != n.String() {
		t.Errorf("loaded network differs:\n%s\nwant:\n%s", loaded, n)
	}

	// saving again replaces the stored copy
	smaller := network.New(name)
	st, _ := network.NewStation("ONE", "Only")
	smaller.AddStation(st)
	if err := store.SaveNetwork(ctx, smaller); err != nil {
		t.Fatalf("SaveNetwork (replace): %v", err)
	}
	loaded, err = store.LoadNetwork(ctx, name)
	if err != nil {
		t.Fatalf("LoadNetwork after replace: %v", err)
	}
	if len(loaded.Stations()) != 1 || len(loaded.Lines()) != 0 {
		t.Errorf("replace left old rows behind:\n%s", loaded)
	}

	names, err := store.ListNetworks(ctx)
	if err != nil {
		t.Fatalf("ListNetworks: %v", err)
	}
	listed := false
	for _, got := range names {
		if got == name {
			listed = true
		}
	}
	if !listed {
		t.Errorf("ListNetworks = %v, missing %q", names, name)
	}

	if _, err := store.LoadNetwork(ctx, name+"-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	first := PlanRecord{
		ID:        uuid.New(),
		Network:   name,
		Objective: "stops",
		From:      "MKT",
		To:        "AIR",
		Outcome:   "found",
		Segments:  2,
		Stops:     3,
		Transfers: 1,
		CreatedAt: time.Now().Add(-time.Minute),
	}
	second := first
	second.ID = uuid.Nil
	second.CreatedAt = time.Time{}
	second.Outcome = "unreachable"
	for _, rec := range []PlanRecord{first, second} {
		if err := store.RecordPlan(ctx, rec); err != nil {
			t.Fatalf("RecordPlan: %v", err)
		}
	}

	plans, err := store.RecentPlans(ctx, 2)
	if err != nil {
		t.Fatalf("RecentPlans: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("got %d plans, want 2", len(plans))
	}
	if plans[0].Outcome != "unreachable" || plans[0].ID == uuid.Nil {
		t.Errorf("newest plan = %+v", plans[0])
	}
	if plans[1].ID != first.ID || plans[1].Stops != 3 || plans[1].To != "AIR" {
		t.Errorf("older plan = %+v, want %+v", plans[1], first)
	}
}
