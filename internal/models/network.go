package models

import "github.com/mini-rodalies-3d/metroplanner/internal/network"

// StationRef identifies a station in responses
type StationRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Station is a station with the lines calling at it
type Station struct {
	StationRef
	Lines []string `json:"lines"`
}

// Line describes a line and its ordered stops
type Line struct {
	Code      string       `json:"code"`
	Circular  bool         `json:"circular"`
	OneWay    bool         `json:"oneWay"`
	TerminalA *StationRef  `json:"terminalA,omitempty"`
	TerminalB *StationRef  `json:"terminalB,omitempty"`
	Stops     []StationRef `json:"stops"`
}

// NewStationRef converts a network station; nil stays nil
func NewStationRef(s *network.Station) *StationRef {
	if s == nil {
		return nil
	}
	return &StationRef{Code: s.Code(), Name: s.Name()}
}

// NewStation converts a station and lists the lines of v calling at it
func NewStation(v network.View, s *network.Station) Station {
	out := Station{StationRef: *NewStationRef(s), Lines: []string{}}
	for _, l := range network.LinesAt(v, s) {
		out.Lines = append(out.Lines, l.Code())
	}
	return out
}

// NewLine converts a network line
func NewLine(l *network.Line) Line {
	out := Line{
		Code:      l.Code(),
		Circular:  l.Circular(),
		OneWay:    l.OneWay(),
		TerminalA: NewStationRef(l.TerminalA()),
		TerminalB: NewStationRef(l.TerminalB()),
		Stops:     make([]StationRef, 0, l.Count()),
	}
	for _, s := range l.Stops() {
		out.Stops = append(out.Stops, *NewStationRef(s))
	}
	return out
}
