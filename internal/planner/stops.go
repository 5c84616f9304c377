package planner

import (
	"fmt"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

// StopsPlanner finds the route with the fewest station-to-station hops.
//
// Stations are searched breadth first. The neighbours of a station on a line
// are the previous and next stops, with the terminals joined on circular
// lines; the previous stop is skipped on one-way lines. Ties go to the first
// station discovered, in line order, previous before next.
type StopsPlanner struct {
	view network.View
}

// NewStopsPlanner creates a planner over the given view
func NewStopsPlanner(v network.View) *StopsPlanner {
	return &StopsPlanner{view: v}
}

func (p *StopsPlanner) Name() string { return "fewest stops" }

func (p *StopsPlanner) Objective() Objective { return MinStops }

// FindRoute returns the route from one station to another using the fewest stops
func (p *StopsPlanner) FindRoute(from, to *network.Station) (*Route, error) {
	from, to, err := resolve(p.view, from, to)
	if err != nil {
		return nil, err
	}
	if from.Equal(to) {
		return NewRoute(), nil
	}

	records := p.search(from, to)
	if rec, ok := records[to.Code()]; !ok || rec.color == white {
		return NewRoute(), nil
	}
	return p.reconstruct(records, from, to)
}

func (p *StopsPlanner) search(from, to *network.Station) map[string]*stationRecord {
	records := stationRecords(p.view)
	origin := records[from.Code()]
	origin.color = gray
	origin.distance = 0
	dest := records[to.Code()]

	queue := []*network.Station{from}
	for len(queue) > 0 && dest.color == white {
		current := queue[0]
		queue = queue[1:]
		rec := records[current.Code()]

		discover := func(next *network.Station, via *network.Line) {
			nr, ok := records[next.Code()]
			if !ok || nr.color != white {
				return
			}
			nr.color = gray
			nr.distance = rec.distance + 1
			nr.parent = current
			nr.line = via
			queue = append(queue, next)
		}

		for _, l := range p.view.Lines() {
			i := l.Index(current)
			if i == -1 {
				continue
			}
			prev, next := neighbours(l, i)
			if prev != nil && !l.OneWay() {
				discover(prev, l)
			}
			if next != nil {
				discover(next, l)
			}
			if dest.color != white {
				break
			}
		}
		rec.color = black
	}
	return records
}

// neighbours returns the stops before and after position i, joining the
// terminals of a circular line. Either may be nil at the end of a linear line.
func neighbours(l *network.Line, i int) (prev, next *network.Station) {
	n := l.Count()
	switch {
	case i > 0:
		prev = stopAt(l, i-1)
	case l.Circular():
		prev = l.TerminalB()
	}
	switch {
	case i+1 < n:
		next = stopAt(l, i+1)
	case l.Circular():
		next = l.TerminalA()
	}
	return prev, next
}

// reconstruct walks the parent chain back from the destination, folding
// consecutive hops on the same line into one segment
func (p *StopsPlanner) reconstruct(records map[string]*stationRecord, from, to *network.Station) (*Route, error) {
	var path []*network.Station
	for s := to; s != nil; s = records[s.Code()].parent {
		path = append(path, s)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if len(path) < 2 || !path[0].Equal(from) {
		return nil, fmt.Errorf("broken search path from %s to %s", from.Code(), to.Code())
	}

	route := NewRoute()
	var current *Segment
	for i := 1; i < len(path); i++ {
		line := records[path[i].Code()].line
		if current != nil && current.line.Code() == line.Code() {
			current.to = path[i]
			current.orient()
			continue
		}
		if current != nil {
			if err := route.Add(current); err != nil {
				return nil, err
			}
		}
		seg, err := newLeg(line, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		current = seg
	}
	if err := route.Add(current); err != nil {
		return nil, err
	}
	return route, nil
}
