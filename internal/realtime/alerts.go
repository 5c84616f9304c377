// Package realtime reads GTFS-RT service alerts and turns the ones that stop
// service into closed lines and stations.
package realtime

import (
	"sort"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

// Alert is a service alert extracted from a GTFS-RT feed
type Alert struct {
	ID          string
	Cause       string
	Effect      string
	Header      string
	Description string
	Start       *time.Time
	End         *time.Time
	Routes      []string
	Stops       []string
}

// Closes reports whether the alert takes its routes and stops out of service
func (a Alert) Closes() bool {
	return a.Effect == gtfs.Alert_NO_SERVICE.String()
}

// DecodeAlerts extracts the alerts of a feed that are active at now.
// An alert without active periods is always active.
func DecodeAlerts(feed *gtfs.FeedMessage, now time.Time) []Alert {
	var alerts []Alert
	for _, entity := range feed.GetEntity() {
		alert := entity.GetAlert()
		if alert == nil || entity.GetId() == "" {
			continue
		}

		start, end, active := activeWindow(alert.GetActivePeriod(), now)
		if !active {
			continue
		}

		parsed := Alert{
			ID:          entity.GetId(),
			Cause:       alert.GetCause().String(),
			Effect:      alert.GetEffect().String(),
			Header:      translation(alert.GetHeaderText()),
			Description: translation(alert.GetDescriptionText()),
			Start:       start,
			End:         end,
		}
		for _, ie := range alert.GetInformedEntity() {
			if route := ie.GetRouteId(); route != "" && ie.GetStopId() == "" {
				parsed.Routes = append(parsed.Routes, route)
			}
			if stop := ie.GetStopId(); stop != "" {
				parsed.Stops = append(parsed.Stops, stop)
			}
		}
		alerts = append(alerts, parsed)
	}
	return alerts
}

// activeWindow returns the period containing now, if any
func activeWindow(periods []*gtfs.TimeRange, now time.Time) (*time.Time, *time.Time, bool) {
	if len(periods) == 0 {
		return nil, nil, true
	}
	ts := uint64(now.Unix())
	for _, p := range periods {
		if p.Start != nil && ts < p.GetStart() {
			continue
		}
		if p.End != nil && ts >= p.GetEnd() {
			continue
		}
		var start, end *time.Time
		if p.Start != nil {
			t := time.Unix(int64(p.GetStart()), 0).UTC()
			start = &t
		}
		if p.End != nil {
			t := time.Unix(int64(p.GetEnd()), 0).UTC()
			end = &t
		}
		return start, end, true
	}
	return nil, nil, false
}

// translation prefers English, then the untagged text, then the first one
func translation(ts *gtfs.TranslatedString) string {
	var untagged, first string
	for _, tr := range ts.GetTranslation() {
		switch tr.GetLanguage() {
		case "en":
			return tr.GetText()
		case "":
			if untagged == "" {
				untagged = tr.GetText()
			}
		}
		if first == "" {
			first = tr.GetText()
		}
	}
	if untagged != "" {
		return untagged
	}
	return first
}

// Disruptions is the set of lines and stations out of service
type Disruptions struct {
	ClosedLines    map[string]bool
	ClosedStations map[string]bool
	Alerts         []Alert
	FetchedAt      time.Time
}

// NewDisruptions collects the closures of the given alerts.
// Route ids are matched against line codes and stop ids against station codes.
func NewDisruptions(alerts []Alert, fetchedAt time.Time) Disruptions {
	d := Disruptions{
		ClosedLines:    make(map[string]bool),
		ClosedStations: make(map[string]bool),
		Alerts:         alerts,
		FetchedAt:      fetchedAt,
	}
	for _, a := range alerts {
		if !a.Closes() {
			continue
		}
		for _, r := range a.Routes {
			d.ClosedLines[r] = true
		}
		for _, s := range a.Stops {
			d.ClosedStations[s] = true
		}
	}
	return d
}

// Empty reports whether nothing is closed
func (d Disruptions) Empty() bool {
	return len(d.ClosedLines) == 0 && len(d.ClosedStations) == 0
}

// Lines returns the closed line codes, sorted
func (d Disruptions) Lines() []string { return sortedKeys(d.ClosedLines) }

// Stations returns the closed station codes, sorted
func (d Disruptions) Stations() []string { return sortedKeys(d.ClosedStations) }

// Apply returns the view with closed lines and stations removed.
// The view is returned unchanged when nothing is closed.
func (d Disruptions) Apply(v network.View, name string) network.View {
	if d.Empty() {
		return v
	}
	return network.Exclude(v, name, d.ClosedLines, d.ClosedStations)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
