package network

import "fmt"

// View is the read-only surface the planners search over
type View interface {
	Stations() []*Station
	Lines() []*Line
}

// Network holds the stations and lines of one transit system.
// Stations and lines keep their insertion order.
type Network struct {
	name string

	stations     []*Station
	stationIndex map[string]*Station
	lines        []*Line
	lineIndex    map[string]*Line
}

// New creates an empty network
func New(name string) *Network {
	return &Network{
		name:         name,
		stationIndex: make(map[string]*Station),
		lineIndex:    make(map[string]*Line),
	}
}

// Name returns the network name
func (n *Network) Name() string { return n.name }

// SetName renames the network
func (n *Network) SetName(name string) { n.name = name }

// Stations returns all stations in insertion order
func (n *Network) Stations() []*Station { return n.stations }

// Lines returns all lines in insertion order
func (n *Network) Lines() []*Line { return n.lines }

// Station looks up a station by code; nil if absent
func (n *Network) Station(code string) *Station { return n.stationIndex[code] }

// Line looks up a line by code; nil if absent
func (n *Network) Line(code string) *Line { return n.lineIndex[code] }

// AddStation registers a station. Codes must be unique.
func (n *Network) AddStation(s *Station) error {
	if s == nil {
		return fmt.Errorf("%w: nil station", ErrInvalidStation)
	}
	if _, ok := n.stationIndex[s.code]; ok {
		return fmt.Errorf("%w: station %s", ErrDuplicate, s.code)
	}
	n.stations = append(n.stations, s)
	n.stationIndex[s.code] = s
	return nil
}

// AddLine registers a line. Codes must be unique and every stop on the line
// must already be a station of this network.
func (n *Network) AddLine(l *Line) error {
	if l == nil {
		return fmt.Errorf("%w: nil line", ErrInvalidLine)
	}
	if _, ok := n.lineIndex[l.code]; ok {
		return fmt.Errorf("%w: line %s", ErrDuplicate, l.code)
	}
	for _, s := range l.stops {
		if n.stationIndex[s.code] != s {
			return fmt.Errorf("%w: line %s stops at %s which is not in network %q", ErrUnknownStation, l.code, s.code, n.name)
		}
	}
	n.lines = append(n.lines, l)
	n.lineIndex[l.code] = l
	return nil
}

// LinesAt returns the lines of the view that stop at the station, in view order
func LinesAt(v View, s *Station) []*Line {
	var out []*Line
	for _, l := range v.Lines() {
		if l.Contains(s) {
			out = append(out, l)
		}
	}
	return out
}

// Lookup finds a station of the view by code; nil if absent
func Lookup(v View, code string) *Station {
	if n, ok := v.(*Network); ok {
		return n.Station(code)
	}
	for _, s := range v.Stations() {
		if s.code == code {
			return s
		}
	}
	return nil
}
