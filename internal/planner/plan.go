package planner

import "github.com/mini-rodalies-3d/metroplanner/internal/network"

// Outcome tells why a journey has the route it has
type Outcome int

const (
	// Trivial: origin and destination are the same station
	Trivial Outcome = iota
	// Found: the route takes the traveller to the destination
	Found
	// Unreachable: no route exists
	Unreachable
)

func (o Outcome) String() string {
	switch o {
	case Trivial:
		return "trivial"
	case Found:
		return "found"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Journey is the result of Plan
type Journey struct {
	From      *network.Station
	To        *network.Station
	Outcome   Outcome
	Route     *Route
	Stops     int
	Transfers int
}

// Plan runs the planner and classifies the result
func Plan(p Planner, from, to *network.Station) (Journey, error) {
	route, err := p.FindRoute(from, to)
	if err != nil {
		return Journey{}, err
	}
	j := Journey{
		From:      from,
		To:        to,
		Route:     route,
		Stops:     route.Stops(),
		Transfers: route.Transfers(),
	}
	switch {
	case from.Equal(to):
		j.Outcome = Trivial
	case route.IsEmpty():
		j.Outcome = Unreachable
	default:
		j.Outcome = Found
	}
	return j, nil
}
