// Package planner finds journeys between two stations of a metro network.
//
// Two strategies are available: one minimises the number of stops travelled,
// the other the number of line changes. Both are breadth-first searches whose
// state lives only for the duration of one call, so a planner can be shared
// between goroutines as long as the network it reads is not modified.
package planner

import (
	"fmt"
	"strings"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

// Planner computes a route between two stations.
//
// FindRoute returns an empty route when from and to are the same station and
// also when the destination cannot be reached. Use Plan to tell them apart.
type Planner interface {
	FindRoute(from, to *network.Station) (*Route, error)
	// Name is a short human-readable label, e.g. "fewest stops"
	Name() string
	Objective() Objective
}

// Objective selects what a planner minimises
type Objective string

const (
	MinStops     Objective = "stops"
	MinTransfers Objective = "transfers"
)

// ParseObjective accepts "stops" or "transfers" (case insensitive).
// An empty string selects MinStops.
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(MinStops):
		return MinStops, nil
	case string(MinTransfers):
		return MinTransfers, nil
	default:
		return "", fmt.Errorf("%w: unknown objective %q", ErrInvalidArgument, s)
	}
}

// New returns the planner for an objective, bound to a network view
func New(objective Objective, v network.View) (Planner, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil network", ErrInvalidArgument)
	}
	switch objective {
	case MinStops:
		return NewStopsPlanner(v), nil
	case MinTransfers:
		return NewTransfersPlanner(v), nil
	default:
		return nil, fmt.Errorf("%w: unknown objective %q", ErrInvalidArgument, objective)
	}
}

// resolve checks both endpoints and maps them onto the view's own stations
func resolve(v network.View, from, to *network.Station) (*network.Station, *network.Station, error) {
	if from == nil || to == nil {
		return nil, nil, fmt.Errorf("%w: stations must not be nil", ErrInvalidArgument)
	}
	f := network.Lookup(v, from.Code())
	if f == nil {
		return nil, nil, fmt.Errorf("%w: %w: %s", ErrInvalidArgument, network.ErrUnknownStation, from.Code())
	}
	t := network.Lookup(v, to.Code())
	if t == nil {
		return nil, nil, fmt.Errorf("%w: %w: %s", ErrInvalidArgument, network.ErrUnknownStation, to.Code())
	}
	return f, t, nil
}

// newLeg builds an oriented segment riding l from one station to another
func newLeg(l *network.Line, from, to *network.Station) (*Segment, error) {
	seg, err := NewSegment(l, from, to, l.TerminalB())
	if err != nil {
		return nil, err
	}
	seg.orient()
	return seg, nil
}
