package planner

import (
	"math"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

// Infinity is the distance of a station the search has not reached
const Infinity = math.MaxInt

// color is the discovery state of a node during a breadth-first search
type color int

const (
	white color = iota // undiscovered
	gray               // discovered, waiting in the queue
	black              // expanded
)

func (c color) String() string {
	switch c {
	case white:
		return "undiscovered"
	case gray:
		return "frontier"
	case black:
		return "settled"
	default:
		return "unknown"
	}
}

// stationRecord is the per-station state of a stops search
type stationRecord struct {
	color    color
	parent   *network.Station
	distance int
	line     *network.Line // line used to arrive here
}

// lineRecord is the per-line state of a transfers search
type lineRecord struct {
	color  color
	parent *network.Line
	entry  *network.Station // station where the line was boarded
}

// stationRecords creates fresh records for every station of the view,
// keyed by station code
func stationRecords(v network.View) map[string]*stationRecord {
	stations := v.Stations()
	records := make(map[string]*stationRecord, len(stations))
	for _, s := range stations {
		records[s.Code()] = &stationRecord{color: white, distance: Infinity}
	}
	return records
}

// lineRecords creates fresh records for every line of the view, keyed by
// line code
func lineRecords(v network.View) map[string]*lineRecord {
	lines := v.Lines()
	records := make(map[string]*lineRecord, len(lines))
	for _, l := range lines {
		records[l.Code()] = &lineRecord{color: white}
	}
	return records
}
