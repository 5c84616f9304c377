package metrics

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRunningStats(t *testing.T) {
	var r RunningStats
	if r.StdDev() != 0 {
		t.Error("empty stats should have zero stddev")
	}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		r.Update(v)
	}
	if r.Count != 8 {
		t.Errorf("Count = %d, want 8", r.Count)
	}
	if math.Abs(r.Mean-5) > 1e-9 {
		t.Errorf("Mean = %v, want 5", r.Mean)
	}
	if math.Abs(r.StdDev()-2) > 1e-9 {
		t.Errorf("StdDev = %v, want 2", r.StdDev())
	}
}

func TestJourneyStats(t *testing.T) {
	s := NewJourneyStats()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Found("stops", 3, 1)
		}()
	}
	wg.Wait()
	s.Found("transfers", 6, 1)
	s.Unreachable("transfers")

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("got %d summaries, want 2", len(snap))
	}
	if snap[0].Objective != "stops" || snap[0].Journeys != 10 || snap[0].StopsMean != 3 || snap[0].StopsStdDev != 0 {
		t.Errorf("stops summary = %+v", snap[0])
	}
	if snap[1].Objective != "transfers" || snap[1].Journeys != 1 || snap[1].Unreachable != 1 {
		t.Errorf("transfers summary = %+v", snap[1])
	}
}

func TestObservePlan(t *testing.T) {
	before := testutil.ToFloat64(plansTotal.WithLabelValues("stops", "found"))
	ObservePlan("stops", "found", 2*time.Millisecond)
	ObservePlan("stops", "found", time.Millisecond)
	if got := testutil.ToFloat64(plansTotal.WithLabelValues("stops", "found")); got != before+2 {
		t.Errorf("plans_total = %v, want %v", got, before+2)
	}

	SetNetwork(9, 3)
	if got := testutil.ToFloat64(networkStations); got != 9 {
		t.Errorf("network_stations = %v, want 9", got)
	}
	SetDisruptions(1, 2)
	if got := testutil.ToFloat64(disruptionsActive.WithLabelValues("station")); got != 2 {
		t.Errorf("disruptions_active{kind=station} = %v, want 2", got)
	}
}
