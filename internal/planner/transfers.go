package planner

import (
	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

// TransfersPlanner finds the route with the fewest line changes.
//
// Lines are searched breadth first. Every line through the origin is boarded
// at the origin; a line discovered from another is boarded at the first stop
// they share, scanning outward from where the earlier line was boarded. The
// search ends as soon as a boarded line can carry the traveller to the
// destination.
type TransfersPlanner struct {
	view network.View
}

// NewTransfersPlanner creates a planner over the given view
func NewTransfersPlanner(v network.View) *TransfersPlanner {
	return &TransfersPlanner{view: v}
}

func (p *TransfersPlanner) Name() string { return "fewest transfers" }

func (p *TransfersPlanner) Objective() Objective { return MinTransfers }

// FindRoute returns the route from one station to another using the fewest transfers
func (p *TransfersPlanner) FindRoute(from, to *network.Station) (*Route, error) {
	from, to, err := resolve(p.view, from, to)
	if err != nil {
		return nil, err
	}
	if from.Equal(to) {
		return NewRoute(), nil
	}

	records, target := p.search(from, to)
	if target == nil {
		return NewRoute(), nil
	}
	return p.reconstruct(records, target, from, to)
}

// reaches reports whether a rider boarding l at position entry can get off at to
func reaches(l *network.Line, entry int, to *network.Station) bool {
	t := l.Index(to)
	if t == -1 {
		return false
	}
	return !(l.OneWay() && !l.Circular() && t < entry)
}

func (p *TransfersPlanner) search(from, to *network.Station) (map[string]*lineRecord, *network.Line) {
	lines := p.view.Lines()
	records := lineRecords(p.view)

	var target *network.Line
	var queue []*network.Line
	for _, l := range lines {
		i := l.Index(from)
		if i == -1 {
			continue
		}
		rec := records[l.Code()]
		rec.color = gray
		rec.entry = from
		queue = append(queue, l)
		if reaches(l, i, to) {
			target = l
		}
	}

	for len(queue) > 0 && target == nil {
		current := queue[0]
		queue = queue[1:]
		rec := records[current.Code()]

	expand:
		for _, i := range outwardIndices(current, current.Index(rec.entry)) {
			stop := stopAt(current, i)
			for _, l := range lines {
				j := l.Index(stop)
				if j == -1 {
					continue
				}
				lr := records[l.Code()]
				if lr.color != white {
					continue
				}
				lr.color = gray
				lr.parent = current
				lr.entry = stop
				queue = append(queue, l)
				if reaches(l, j, to) {
					target = l
					break expand
				}
			}
		}
		if target == nil {
			rec.color = black
		}
	}
	return records, target
}

// reconstruct follows the parent chain from the target line back to a line
// through the origin. Each change happens at the entry of the later line.
func (p *TransfersPlanner) reconstruct(records map[string]*lineRecord, target *network.Line, from, to *network.Station) (*Route, error) {
	var chain []*network.Line
	for l := target; l != nil; l = records[l.Code()].parent {
		chain = append(chain, l)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	route := NewRoute()
	start := from
	for k, l := range chain {
		end := to
		if k+1 < len(chain) {
			end = records[chain[k+1].Code()].entry
		}
		seg, err := newLeg(l, start, end)
		if err != nil {
			return nil, err
		}
		if err := route.Add(seg); err != nil {
			return nil, err
		}
		start = end
	}
	return route, nil
}
