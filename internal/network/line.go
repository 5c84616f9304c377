package network

import "fmt"

// Line is an ordered sequence of distinct stations.
//
// A circular line has an implicit connection from its last stop back to its
// first. A one-way line may only be travelled in the direction of increasing
// index (plus the wrap when it is also circular).
type Line struct {
	code     string
	circular bool
	oneWay   bool

	stops []*Station
	index map[string]int // station code -> position in stops
}

// NewLine creates an empty line
func NewLine(code string, circular, oneWay bool) (*Line, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: code must not be empty", ErrInvalidLine)
	}
	return &Line{
		code:     code,
		circular: circular,
		oneWay:   oneWay,
		index:    make(map[string]int),
	}, nil
}

// Code returns the unique line code
func (l *Line) Code() string { return l.code }

// Circular reports whether the last stop connects back to the first
func (l *Line) Circular() bool { return l.circular }

// OneWay reports whether travel is restricted to increasing index
func (l *Line) OneWay() bool { return l.oneWay }

// Count returns the number of stops
func (l *Line) Count() int { return len(l.stops) }

// IsEmpty reports whether the line has no stops
func (l *Line) IsEmpty() bool { return len(l.stops) == 0 }

// TerminalA returns the first stop, or nil for an empty line
func (l *Line) TerminalA() *Station {
	if l.IsEmpty() {
		return nil
	}
	return l.stops[0]
}

// TerminalB returns the last stop, or nil for an empty line
func (l *Line) TerminalB() *Station {
	if l.IsEmpty() {
		return nil
	}
	return l.stops[len(l.stops)-1]
}

// Stop returns the station at position i
func (l *Line) Stop(i int) (*Station, error) {
	if i < 0 || i >= len(l.stops) {
		return nil, fmt.Errorf("%w: line %s has %d stops, got index %d", ErrIndexOutOfRange, l.code, len(l.stops), i)
	}
	return l.stops[i], nil
}

// Index returns the position of the station on the line, or -1 if absent
func (l *Line) Index(s *Station) int {
	if s == nil {
		return -1
	}
	if i, ok := l.index[s.code]; ok {
		return i
	}
	return -1
}

// Contains reports whether the station is one of the line's stops
func (l *Line) Contains(s *Station) bool {
	return l.Index(s) != -1
}

// Stops returns a copy of the ordered stop list
func (l *Line) Stops() []*Station {
	out := make([]*Station, len(l.stops))
	copy(out, l.stops)
	return out
}

// CanAdd reports whether Add would accept the station
func (l *Line) CanAdd(s *Station) bool {
	return s != nil && !l.Contains(s)
}

// Add appends a station to the end of the line.
// Nil stations and stations already on the line are rejected.
func (l *Line) Add(s *Station) error {
	if s == nil {
		return fmt.Errorf("%w: cannot add nil station to line %s", ErrInvalidStation, l.code)
	}
	if l.Contains(s) {
		return fmt.Errorf("%w: station %s already on line %s", ErrDuplicate, s.code, l.code)
	}
	l.index[s.code] = len(l.stops)
	l.stops = append(l.stops, s)
	return nil
}

func (l *Line) String() string {
	return l.code
}
