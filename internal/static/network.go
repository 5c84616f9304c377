// Package static turns static GTFS feeds into planner networks.
package static

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
	"github.com/mini-rodalies-3d/metroplanner/internal/static/gtfs"
)

// ErrNoLines is returned when no route of the feed produced a line
var ErrNoLines = errors.New("feed contains no usable lines")

// Options control BuildNetwork
type Options struct {
	// Name of the resulting network; the first agency name when empty
	Name string
	// RouteTypes to import; subway only when empty
	RouteTypes []int
}

// BuildNetwork derives stations and lines from a GTFS feed.
//
// Platforms collapse onto their parent station. Each route becomes a line
// following its longest trip in direction 0. A trip ending where it started
// makes a circular line, and a route running in only one direction makes a
// one-way line.
func BuildNetwork(feed *gtfs.Feed, opts Options) (*network.Network, error) {
	routeTypes := opts.RouteTypes
	if len(routeTypes) == 0 {
		routeTypes = []int{gtfs.RouteTypeSubway}
	}
	name := opts.Name
	if name == "" && len(feed.Agencies) > 0 {
		name = feed.Agencies[0].AgencyName
	}

	stops := make(map[string]gtfs.Stop, len(feed.Stops))
	for _, s := range feed.Stops {
		stops[s.StopID] = s
	}
	tripsByRoute := make(map[string][]gtfs.Trip)
	for _, t := range feed.Trips {
		tripsByRoute[t.RouteID] = append(tripsByRoute[t.RouteID], t)
	}

	b := &builder{net: network.New(name), stops: stops}
	for _, route := range feed.Routes {
		if !slices.Contains(routeTypes, route.RouteType) {
			continue
		}
		trip, oneWay, ok := representativeTrip(tripsByRoute[route.RouteID], feed.StopTimes)
		if !ok {
			log.Printf("Warning: route %s has no trips with stop times, skipping", route.RouteID)
			continue
		}
		if err := b.addLine(route, feed.StopTimes[trip.TripID], oneWay); err != nil {
			log.Printf("Warning: skipping route %s: %v", route.RouteID, err)
		}
	}

	if len(b.net.Lines()) == 0 {
		return nil, ErrNoLines
	}
	log.Printf("Built network %q: %d stations, %d lines", name, len(b.net.Stations()), len(b.net.Lines()))
	return b.net, nil
}

// representativeTrip picks the trip with the most stops in the lowest
// direction present. The route is one-way when no trip runs the other way.
func representativeTrip(trips []gtfs.Trip, stopTimes map[string][]gtfs.StopTime) (gtfs.Trip, bool, bool) {
	var best gtfs.Trip
	bestStops := 0
	for _, t := range trips {
		n := len(stopTimes[t.TripID])
		if n == 0 {
			continue
		}
		switch {
		case bestStops == 0,
			t.DirectionID < best.DirectionID,
			t.DirectionID == best.DirectionID && n > bestStops:
			best, bestStops = t, n
		}
	}
	if bestStops == 0 {
		return gtfs.Trip{}, false, false
	}

	oneWay := true
	for _, t := range trips {
		if t.DirectionID != best.DirectionID && len(stopTimes[t.TripID]) > 0 {
			oneWay = false
			break
		}
	}
	return best, oneWay, true
}

type builder struct {
	net   *network.Network
	stops map[string]gtfs.Stop
}

// station returns the network station for a GTFS stop. Stations not yet in
// the network are created and kept in pending until their line is added.
func (b *builder) station(stopID string, pending map[string]*network.Station) (*network.Station, error) {
	stop, ok := b.stops[stopID]
	if !ok {
		return nil, fmt.Errorf("unknown stop %s", stopID)
	}
	if parent, ok := b.stops[stop.ParentStation]; ok && stop.ParentStation != "" {
		stop = parent
	}
	if s := b.net.Station(stop.StopID); s != nil {
		return s, nil
	}
	if s, ok := pending[stop.StopID]; ok {
		return s, nil
	}
	name := stop.StopName
	if name == "" {
		name = stop.StopID
	}
	s, err := network.NewStation(stop.StopID, name)
	if err != nil {
		return nil, err
	}
	pending[stop.StopID] = s
	return s, nil
}

// addLine builds the line for a route and adds it with its new stations.
// The network is left untouched when the line cannot be built.
func (b *builder) addLine(route gtfs.Route, times []gtfs.StopTime, oneWay bool) error {
	pending := make(map[string]*network.Station)
	var seq []*network.Station
	for _, st := range times {
		s, err := b.station(st.StopID, pending)
		if err != nil {
			return err
		}
		if len(seq) > 0 && seq[len(seq)-1] == s {
			continue
		}
		seq = append(seq, s)
	}

	circular := len(seq) > 2 && seq[0] == seq[len(seq)-1]
	if circular {
		seq = seq[:len(seq)-1]
	}

	code := route.RouteShortName
	if code == "" || b.net.Line(code) != nil {
		code = route.RouteID
	}
	if b.net.Line(code) != nil {
		return fmt.Errorf("%w: line %s", network.ErrDuplicate, code)
	}
	l, err := network.NewLine(code, circular, oneWay)
	if err != nil {
		return err
	}
	for _, s := range seq {
		if !l.CanAdd(s) {
			log.Printf("Warning: route %s visits %s twice, keeping the first visit", route.RouteID, s.Code())
			continue
		}
		if err := l.Add(s); err != nil {
			return err
		}
	}

	for _, s := range l.Stops() {
		if _, ok := pending[s.Code()]; !ok {
			continue
		}
		if err := b.net.AddStation(s); err != nil {
			return err
		}
	}
	return b.net.AddLine(l)
}
