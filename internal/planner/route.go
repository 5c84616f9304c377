package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

// Errors returned by the planners and the route types
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNilSegment       = errors.New("nil route segment")
	ErrDuplicateSegment = errors.New("duplicate route segment")
)

// Segment is one ride on a single line, from one station to another.
// Direction is the terminal the train is heading towards.
type Segment struct {
	line      *network.Line
	from      *network.Station
	to        *network.Station
	direction *network.Station
	circular  bool
}

// NewSegment creates a segment. None of the arguments may be nil.
func NewSegment(line *network.Line, from, to, direction *network.Station) (*Segment, error) {
	if line == nil || from == nil || to == nil || direction == nil {
		return nil, fmt.Errorf("%w: segment fields must not be nil", ErrInvalidArgument)
	}
	return &Segment{line: line, from: from, to: to, direction: direction}, nil
}

func (s *Segment) Line() *network.Line         { return s.line }
func (s *Segment) From() *network.Station      { return s.from }
func (s *Segment) To() *network.Station        { return s.to }
func (s *Segment) Direction() *network.Station { return s.direction }

// UsesCircular reports whether the ride crosses the wrap of a circular line
func (s *Segment) UsesCircular() bool { return s.circular }

func (s *Segment) SetLine(l *network.Line) error {
	if l == nil {
		return fmt.Errorf("%w: segment line", ErrInvalidArgument)
	}
	s.line = l
	return nil
}

func (s *Segment) SetFrom(st *network.Station) error {
	if st == nil {
		return fmt.Errorf("%w: segment from station", ErrInvalidArgument)
	}
	s.from = st
	return nil
}

func (s *Segment) SetTo(st *network.Station) error {
	if st == nil {
		return fmt.Errorf("%w: segment to station", ErrInvalidArgument)
	}
	s.to = st
	return nil
}

func (s *Segment) SetDirection(st *network.Station) error {
	if st == nil {
		return fmt.Errorf("%w: segment direction", ErrInvalidArgument)
	}
	s.direction = st
	return nil
}

func (s *Segment) SetCircular(circular bool) { s.circular = circular }

// Equal compares segments field by field; lines and stations by code
func (s *Segment) Equal(o *Segment) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.line.Code() == o.line.Code() &&
		s.from.Equal(o.from) &&
		s.to.Equal(o.to) &&
		s.direction.Equal(o.direction) &&
		s.circular == o.circular
}

// Stops counts the station-to-station hops of the ride
func (s *Segment) Stops() int {
	return hops(s.line, s.line.Index(s.from), s.line.Index(s.to), s.circular)
}

// orient recomputes direction and the circular flag from the current
// from/to stations
func (s *Segment) orient() {
	s.direction, s.circular = orientation(s.line, s.line.Index(s.from), s.line.Index(s.to))
}

func (s *Segment) String() string {
	text := fmt.Sprintf("Take %s from %s to %s, direction %s", s.line.Code(), s.from, s.to, s.direction)
	if s.circular {
		text += " (via the circular connection)"
	}
	return text
}

// Route is an ordered list of segments. The same segment cannot appear twice.
// An empty route means there is nothing to travel: origin and destination are
// the same station, or no journey exists.
type Route struct {
	segments []*Segment
}

// NewRoute creates an empty route
func NewRoute() *Route {
	return &Route{}
}

// Len returns the number of segments
func (r *Route) Len() int { return len(r.segments) }

// IsEmpty reports whether the route has no segments
func (r *Route) IsEmpty() bool { return len(r.segments) == 0 }

// Segments returns the segments in travel order
func (r *Route) Segments() []*Segment {
	out := make([]*Segment, len(r.segments))
	copy(out, r.segments)
	return out
}

// CanAdd reports whether Add would accept the segment
func (r *Route) CanAdd(s *Segment) bool {
	if s == nil {
		return false
	}
	for _, existing := range r.segments {
		if existing.Equal(s) {
			return false
		}
	}
	return true
}

// Add appends a segment
func (r *Route) Add(s *Segment) error {
	if s == nil {
		return ErrNilSegment
	}
	if !r.CanAdd(s) {
		return fmt.Errorf("%w: %s", ErrDuplicateSegment, s)
	}
	r.segments = append(r.segments, s)
	return nil
}

// Stops returns the total number of hops over all segments
func (r *Route) Stops() int {
	total := 0
	for _, s := range r.segments {
		total += s.Stops()
	}
	return total
}

// Transfers returns the number of line changes
func (r *Route) Transfers() int {
	if len(r.segments) == 0 {
		return 0
	}
	return len(r.segments) - 1
}

func (r *Route) String() string {
	var b strings.Builder
	for i, s := range r.segments {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.String())
	}
	return b.String()
}
