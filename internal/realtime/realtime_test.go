package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
	"github.com/mini-rodalies-3d/metroplanner/internal/planner"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func alertEntity(id string, effect gtfs.Alert_Effect, routes, stops []string, periods ...*gtfs.TimeRange) *gtfs.FeedEntity {
	alert := &gtfs.Alert{
		Effect:       effect.Enum(),
		Cause:        gtfs.Alert_MAINTENANCE.Enum(),
		ActivePeriod: periods,
		HeaderText: &gtfs.TranslatedString{Translation: []*gtfs.TranslatedString_Translation{
			{Text: proto.String("Obres"), Language: proto.String("ca")},
			{Text: proto.String("Works"), Language: proto.String("en")},
		}},
	}
	for _, r := range routes {
		alert.InformedEntity = append(alert.InformedEntity, &gtfs.EntitySelector{RouteId: proto.String(r)})
	}
	for _, s := range stops {
		alert.InformedEntity = append(alert.InformedEntity, &gtfs.EntitySelector{StopId: proto.String(s)})
	}
	return &gtfs.FeedEntity{Id: proto.String(id), Alert: alert}
}

func period(from, to time.Time) *gtfs.TimeRange {
	return &gtfs.TimeRange{Start: proto.Uint64(uint64(from.Unix())), End: proto.Uint64(uint64(to.Unix()))}
}

func testFeed() *gtfs.FeedMessage {
	return &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfs.FeedEntity{
			alertEntity("closed-line", gtfs.Alert_NO_SERVICE, []string{"Shuttle"}, nil),
			alertEntity("closed-station", gtfs.Alert_NO_SERVICE, nil, []string{"CEN"}, period(now.Add(-time.Hour), now.Add(time.Hour))),
			alertEntity("delays", gtfs.Alert_SIGNIFICANT_DELAYS, []string{"Red"}, nil),
			alertEntity("expired", gtfs.Alert_NO_SERVICE, []string{"Ring"}, nil, period(now.Add(-2*time.Hour), now.Add(-time.Hour))),
			{Id: proto.String("vehicle-only")},
		},
	}
}

func TestDecodeAlerts(t *testing.T) {
	alerts := DecodeAlerts(testFeed(), now)
	if len(alerts) != 3 {
		t.Fatalf("got %d active alerts, want 3: %+v", len(alerts), alerts)
	}

	first := alerts[0]
	if first.ID != "closed-line" || first.Effect != "NO_SERVICE" || first.Cause != "MAINTENANCE" {
		t.Errorf("first alert = %+v", first)
	}
	if first.Header != "Works" {
		t.Errorf("Header = %q, want English translation", first.Header)
	}
	if first.Start != nil || first.End != nil {
		t.Error("alert without periods should have no window")
	}
	if second := alerts[1]; second.Start == nil || !second.Start.Equal(now.Add(-time.Hour)) {
		t.Errorf("active period not decoded: %+v", second)
	}
	if alerts[2].Closes() {
		t.Error("delay alert must not close anything")
	}
}

func TestDisruptionsApply(t *testing.T) {
	n, err := network.ParseFile("../network/testdata/city.network")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	d := NewDisruptions(DecodeAlerts(testFeed(), now), now)
	if got := strings.Join(d.Lines(), ","); got != "Shuttle" {
		t.Errorf("closed lines = %s", got)
	}
	if got := strings.Join(d.Stations(), ","); got != "CEN" {
		t.Errorf("closed stations = %s", got)
	}

	view := d.Apply(n, "City (disrupted)")
	if network.Lookup(view, "CEN") != nil {
		t.Error("closed station still in view")
	}

	// HBR -> PRK still works on Red without calling at Central
	p := planner.NewStopsPlanner(view)
	r, err := p.FindRoute(n.Station("HBR"), n.Station("PRK"))
	if err != nil {
		t.Fatalf("FindRoute: %v", err)
	}
	if r.Stops() != 3 {
		t.Errorf("expected 3 stops once Central is skipped, got %d:\n%s", r.Stops(), r)
	}

	empty := NewDisruptions(nil, now)
	if empty.Apply(n, "x") != network.View(n) {
		t.Error("empty disruptions should return the view unchanged")
	}
}

func TestMonitorPoll(t *testing.T) {
	body, err := proto.Marshal(testFeed())
	if err != nil {
		t.Fatalf("failed to marshal feed: %v", err)
	}
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	m := NewMonitor(NewClient(srv.URL), time.Hour)
	m.now = func() time.Time { return now }

	if !m.Current().Empty() {
		t.Fatal("new monitor should have no disruptions")
	}
	if err := m.Poll(context.Background()); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if !m.Current().ClosedLines["Shuttle"] {
		t.Errorf("Shuttle should be closed: %+v", m.Current())
	}

	fail.Store(true)
	if err := m.Poll(context.Background()); err == nil {
		t.Error("expected error from failing feed")
	}
	if !m.Current().ClosedLines["Shuttle"] {
		t.Error("failed poll must keep previous disruptions")
	}
}

func TestMonitorRunStops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not protobuf at all"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewMonitor(NewClient(srv.URL), 10*time.Millisecond).Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestMonitorRunWithoutInterval(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		w.Write([]byte("not protobuf at all"))
	}))
	defer srv.Close()

	done := make(chan struct{})
	go func() {
		NewMonitor(NewClient(srv.URL), 0).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return when the interval is not positive")
	}
	if got := polls.Load(); got != 1 {
		t.Errorf("polled %d times, want 1", got)
	}
}
